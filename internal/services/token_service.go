package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cashflow-api/internal/config"
	"cashflow-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	bearerPrefix = "bearer "
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token is expired")
	ErrInvalidIssuer     = errors.New("invalid issuer")
	ErrInvalidTokenType  = errors.New("invalid token type")
	ErrEmptyToken        = errors.New("empty token")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
)

// tokenService issues and verifies RS256 JWTs. Access tokens carry the
// user's identity; refresh tokens carry only the user ID
type tokenService struct {
	cfg config.JWTConfig
}

// NewTokenService creates a token service from JWT configuration
func NewTokenService(jwtConfig *config.JWTConfig) TokenServiceInterface {
	return &tokenService{cfg: *jwtConfig}
}

// GenerateAccessToken signs a short-lived token identifying the user
func (ts *tokenService) GenerateAccessToken(user *models.User) (string, time.Time, error) {
	if user == nil {
		return "", time.Time{}, errors.New("user cannot be nil")
	}

	claims := models.CustomClaims{
		UserID:    user.ID.String(),
		Email:     user.Email,
		TokenType: TokenTypeAccess,
	}
	claims.Subject = user.Email

	return ts.sign(&claims, ts.cfg.AccessTokenDuration)
}

// GenerateRefreshToken signs a long-lived token for session renewal
func (ts *tokenService) GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error) {
	if userID == uuid.Nil {
		return "", time.Time{}, errors.New("user ID cannot be nil")
	}

	claims := models.CustomClaims{
		UserID:    userID.String(),
		TokenType: TokenTypeRefresh,
	}
	claims.Subject = userID.String()

	return ts.sign(&claims, ts.cfg.RefreshTokenDuration)
}

func (ts *tokenService) sign(claims *models.CustomClaims, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims.Issuer = ts.cfg.Issuer
	claims.ID = uuid.NewString()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(ts.cfg.PrivateKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign %s token: %w", claims.TokenType, err)
	}

	return signed, expiresAt, nil
}

// ValidateAccessToken verifies signature, expiry, issuer and token type
func (ts *tokenService) ValidateAccessToken(tokenString string) (*models.CustomClaims, error) {
	return ts.verify(tokenString, TokenTypeAccess)
}

// ValidateRefreshToken verifies a refresh token the same way
func (ts *tokenService) ValidateRefreshToken(tokenString string) (*models.CustomClaims, error) {
	return ts.verify(tokenString, TokenTypeRefresh)
}

func (ts *tokenService) verify(tokenString string, wantType string) (*models.CustomClaims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// RS256 only, so verifiers never need the signing key
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.cfg.PublicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*models.CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != ts.cfg.Issuer {
		return nil, ErrInvalidIssuer
	}
	if claims.TokenType != wantType {
		return nil, ErrInvalidTokenType
	}

	return claims, nil
}

// ExtractTokenFromHeader pulls the bearer token out of an Authorization
// header value, accepting any casing of the scheme
func (ts *tokenService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(authHeader), bearerPrefix) {
		return "", ErrInvalidAuthHeader
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if token == "" {
		return "", ErrInvalidAuthHeader
	}

	return token, nil
}

// GetJTI reads the token ID without verifying the signature. Used when
// blacklisting tokens that no longer validate
func (ts *tokenService) GetJTI(tokenString string) (string, error) {
	claims, err := ts.peek(tokenString)
	if err != nil {
		return "", err
	}
	return claims.ID, nil
}

// GetTokenExpiry reads the expiry without verifying the signature
func (ts *tokenService) GetTokenExpiry(tokenString string) (time.Time, error) {
	claims, err := ts.peek(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}

func (ts *tokenService) peek(tokenString string) (*models.CustomClaims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &models.CustomClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*models.CustomClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
