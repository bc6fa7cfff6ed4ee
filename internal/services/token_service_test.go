package services

import (
	"crypto/rsa"
	"testing"
	"time"

	"cashflow-api/internal/config"
	"cashflow-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TokenServiceTestSuite defines the test suite for TokenService
type TokenServiceTestSuite struct {
	suite.Suite
	privateKey      *rsa.PrivateKey
	publicKey       *rsa.PublicKey
	service         TokenServiceInterface
	issuer          string
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// SetupTest runs before each test
func (s *TokenServiceTestSuite) SetupTest() {
	var err error
	s.privateKey, s.publicKey, err = config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.issuer = "test-issuer"
	s.accessDuration = 24 * time.Hour
	s.refreshDuration = 7 * 24 * time.Hour

	s.service = NewTokenService(&config.JWTConfig{
		PrivateKey:           s.privateKey,
		PublicKey:            s.publicKey,
		Issuer:               s.issuer,
		AccessTokenDuration:  s.accessDuration,
		RefreshTokenDuration: s.refreshDuration,
	})
}

// TestTokenServiceSuite runs the test suite
func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

// Test GenerateAccessToken
func (s *TokenServiceTestSuite) TestGenerateAccessToken() {
	user := &models.User{
		ID:    uuid.New(),
		Email: "test@example.com",
	}

	token, expiresAt, err := s.service.GenerateAccessToken(user)
	s.NoError(err)
	s.NotEmpty(token)
	s.True(expiresAt.After(time.Now()))
	s.True(expiresAt.Before(time.Now().Add(25 * time.Hour)))
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken_NilUser() {
	token, _, err := s.service.GenerateAccessToken(nil)
	s.Error(err)
	s.Empty(token)
}

// Test GenerateRefreshToken
func (s *TokenServiceTestSuite) TestGenerateRefreshToken() {
	userID := uuid.New()

	token, expiresAt, err := s.service.GenerateRefreshToken(userID)
	s.NoError(err)
	s.NotEmpty(token)
	s.True(expiresAt.After(time.Now()))
	s.True(expiresAt.Before(time.Now().Add(8 * 24 * time.Hour)))
}

// Test ValidateAccessToken
func (s *TokenServiceTestSuite) TestValidateAccessToken_ValidToken() {
	user := &models.User{
		ID:    uuid.New(),
		Email: "test@example.com",
	}

	token, _, err := s.service.GenerateAccessToken(user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)
	s.NoError(err)
	s.Equal(user.ID.String(), claims.UserID)
	s.Equal(user.Email, claims.Email)
	s.Equal(TokenTypeAccess, claims.TokenType)
	s.Equal(s.issuer, claims.Issuer)
	s.NotEmpty(claims.ID)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Empty() {
	claims, err := s.service.ValidateAccessToken("")
	s.ErrorIs(err, ErrEmptyToken)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Malformed() {
	claims, err := s.service.ValidateAccessToken("not.a.token")
	s.Error(err)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_RejectsRefreshToken() {
	token, _, err := s.service.GenerateRefreshToken(uuid.New())
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidTokenType)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongKey() {
	otherPrivate, _, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	otherService := NewTokenService(&config.JWTConfig{
		PrivateKey:           otherPrivate,
		PublicKey:            &otherPrivate.PublicKey,
		Issuer:               s.issuer,
		AccessTokenDuration:  s.accessDuration,
		RefreshTokenDuration: s.refreshDuration,
	})

	user := &models.User{ID: uuid.New(), Email: "test@example.com"}
	token, _, err := otherService.GenerateAccessToken(user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)
	s.Error(err)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongIssuer() {
	otherService := NewTokenService(&config.JWTConfig{
		PrivateKey:           s.privateKey,
		PublicKey:            s.publicKey,
		Issuer:               "someone-else",
		AccessTokenDuration:  s.accessDuration,
		RefreshTokenDuration: s.refreshDuration,
	})

	user := &models.User{ID: uuid.New(), Email: "test@example.com"}
	token, _, err := otherService.GenerateAccessToken(user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidIssuer)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Expired() {
	expiredService := NewTokenService(&config.JWTConfig{
		PrivateKey:           s.privateKey,
		PublicKey:            s.publicKey,
		Issuer:               s.issuer,
		AccessTokenDuration:  -time.Hour,
		RefreshTokenDuration: s.refreshDuration,
	})

	user := &models.User{ID: uuid.New(), Email: "test@example.com"}
	token, _, err := expiredService.GenerateAccessToken(user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)
	s.Error(err)
	s.Nil(claims)
}

// Test ValidateRefreshToken
func (s *TokenServiceTestSuite) TestValidateRefreshToken_ValidToken() {
	userID := uuid.New()
	token, _, err := s.service.GenerateRefreshToken(userID)
	s.Require().NoError(err)

	claims, err := s.service.ValidateRefreshToken(token)
	s.NoError(err)
	s.Equal(userID.String(), claims.UserID)
	s.Equal(TokenTypeRefresh, claims.TokenType)
}

func (s *TokenServiceTestSuite) TestValidateRefreshToken_RejectsAccessToken() {
	user := &models.User{ID: uuid.New(), Email: "test@example.com"}
	token, _, err := s.service.GenerateAccessToken(user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateRefreshToken(token)
	s.ErrorIs(err, ErrInvalidTokenType)
	s.Nil(claims)
}

// Test ExtractTokenFromHeader
func (s *TokenServiceTestSuite) TestExtractTokenFromHeader_Valid() {
	token, err := s.service.ExtractTokenFromHeader("Bearer abc.def.ghi")
	s.NoError(err)
	s.Equal("abc.def.ghi", token)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader_CaseInsensitiveScheme() {
	token, err := s.service.ExtractTokenFromHeader("bearer abc.def.ghi")
	s.NoError(err)
	s.Equal("abc.def.ghi", token)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader_MissingScheme() {
	token, err := s.service.ExtractTokenFromHeader("abc.def.ghi")
	s.ErrorIs(err, ErrInvalidAuthHeader)
	s.Empty(token)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader_Empty() {
	token, err := s.service.ExtractTokenFromHeader("")
	s.Error(err)
	s.Empty(token)
}

// Test GetJTI and GetTokenExpiry
func (s *TokenServiceTestSuite) TestGetJTI() {
	user := &models.User{ID: uuid.New(), Email: "test@example.com"}
	token, _, err := s.service.GenerateAccessToken(user)
	s.Require().NoError(err)

	jti, err := s.service.GetJTI(token)
	s.NoError(err)
	s.NotEmpty(jti)

	claims, err := s.service.ValidateAccessToken(token)
	s.Require().NoError(err)
	s.Equal(claims.ID, jti)
}

func (s *TokenServiceTestSuite) TestGetTokenExpiry() {
	user := &models.User{ID: uuid.New(), Email: "test@example.com"}
	token, expiresAt, err := s.service.GenerateAccessToken(user)
	s.Require().NoError(err)

	expiry, err := s.service.GetTokenExpiry(token)
	s.NoError(err)
	s.WithinDuration(expiresAt, expiry, time.Second)
}
