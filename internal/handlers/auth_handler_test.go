package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cashflow-api/internal/dto"
	"cashflow-api/internal/models"
	"cashflow-api/internal/services"
	"cashflow-api/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	echo            *echo.Echo
	ctrl            *gomock.Controller
	authService     *service_mocks.MockAuthServiceInterface
	passwordService *service_mocks.MockPasswordServiceInterface
	handler         *AuthHandler
	userID          uuid.UUID
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.ctrl = gomock.NewController(s.T())
	s.authService = service_mocks.NewMockAuthServiceInterface(s.ctrl)
	s.passwordService = service_mocks.NewMockPasswordServiceInterface(s.ctrl)
	s.handler = NewAuthHandler(s.authService, s.passwordService)
	s.userID = uuid.New()
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthHandlerTestSuite) newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	return c, rec
}

func (s *AuthHandlerTestSuite) storedUser() *models.User {
	return &models.User{
		ID:        s.userID,
		Email:     "avery@example.com",
		FirstName: "Avery",
		LastName:  "Quinn",
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now(),
	}
}

// Register

func (s *AuthHandlerTestSuite) TestRegister_Successful() {
	body := `{"email":"avery@example.com","password":"Sup3rSecret99","firstName":"Avery","lastName":"Quinn"}`
	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/auth/register", body)

	s.authService.EXPECT().Register(gomock.Any()).Return(s.storedUser(), nil).Times(1)

	err := s.handler.Register(c)
	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)

	var response struct {
		Data dto.UserProfileResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(s.userID.String(), response.Data.ID)
	s.Equal("avery@example.com", response.Data.Email)
}

func (s *AuthHandlerTestSuite) TestRegister_EmailConflict() {
	body := `{"email":"avery@example.com","password":"Sup3rSecret99","firstName":"Avery","lastName":"Quinn"}`
	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/auth/register", body)

	s.authService.EXPECT().Register(gomock.Any()).Return(nil, services.ErrUserAlreadyExists).Times(1)

	err := s.handler.Register(c)
	s.NoError(err)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *AuthHandlerTestSuite) TestRegister_ShortPasswordRejectedByValidation() {
	body := `{"email":"avery@example.com","password":"short","firstName":"Avery","lastName":"Quinn"}`
	c, _ := s.newJSONContext(http.MethodPost, "/api/v1/auth/register", body)

	err := s.handler.Register(c)
	s.Error(err)
}

// Login

func (s *AuthHandlerTestSuite) TestLogin_Successful() {
	body := `{"email":"avery@example.com","password":"Sup3rSecret99"}`
	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/auth/login", body)

	tokens := &dto.TokenResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}
	s.authService.EXPECT().Login(gomock.Any()).Return(tokens, nil).Times(1)

	err := s.handler.Login(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response dto.TokenResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("access", response.AccessToken)
	s.Equal("Bearer", response.TokenType)
}

func (s *AuthHandlerTestSuite) TestLogin_WrongCredentials() {
	body := `{"email":"avery@example.com","password":"WrongPass123"}`
	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/auth/login", body)

	s.authService.EXPECT().Login(gomock.Any()).Return(nil, services.ErrInvalidCredentials).Times(1)

	err := s.handler.Login(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthHandlerTestSuite) TestLogin_LockedAccount() {
	body := `{"email":"avery@example.com","password":"Sup3rSecret99"}`
	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/auth/login", body)

	s.authService.EXPECT().Login(gomock.Any()).Return(nil, services.ErrAccountLocked).Times(1)

	err := s.handler.Login(c)
	s.NoError(err)
	s.Equal(http.StatusForbidden, rec.Code)
}

// RefreshToken

func (s *AuthHandlerTestSuite) TestRefreshToken_InvalidToken() {
	body := `{"refreshToken":"stale-token"}`
	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/auth/refresh", body)

	s.authService.EXPECT().RefreshTokens("stale-token").Return(nil, services.ErrInvalidRefreshToken).Times(1)

	err := s.handler.RefreshToken(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

// Logout

func (s *AuthHandlerTestSuite) TestLogout_Successful() {
	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/auth/logout", "")
	c.Request().Header.Set("Authorization", "Bearer some-access-token")

	s.authService.EXPECT().Logout("some-access-token").Return(nil).Times(1)

	err := s.handler.Logout(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

// Me

func (s *AuthHandlerTestSuite) TestMe_Successful() {
	c, rec := s.newJSONContext(http.MethodGet, "/api/v1/auth/me", "")
	c.Set("user_id", s.userID)

	s.authService.EXPECT().GetProfile(s.userID).Return(s.storedUser(), nil).Times(1)

	err := s.handler.Me(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response struct {
		Data dto.UserProfileResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(s.userID.String(), response.Data.ID)
	s.Equal("Avery", response.Data.FirstName)
}

func (s *AuthHandlerTestSuite) TestMe_MissingUserContext() {
	c, rec := s.newJSONContext(http.MethodGet, "/api/v1/auth/me", "")

	err := s.handler.Me(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

// ChangePassword

func (s *AuthHandlerTestSuite) TestChangePassword_Successful() {
	body := `{"currentPassword":"OldSecret123","newPassword":"NewSecret456"}`
	c, rec := s.newJSONContext(http.MethodPut, "/api/v1/auth/password", body)
	c.Set("user_id", s.userID)

	s.passwordService.EXPECT().UpdatePassword(s.userID, "OldSecret123", "NewSecret456").Return(nil).Times(1)

	err := s.handler.ChangePassword(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthHandlerTestSuite) TestChangePassword_WrongCurrentPassword() {
	body := `{"currentPassword":"WrongOld123","newPassword":"NewSecret456"}`
	c, rec := s.newJSONContext(http.MethodPut, "/api/v1/auth/password", body)
	c.Set("user_id", s.userID)

	s.passwordService.EXPECT().UpdatePassword(s.userID, "WrongOld123", "NewSecret456").Return(services.ErrCurrentPasswordWrong).Times(1)

	err := s.handler.ChangePassword(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}
