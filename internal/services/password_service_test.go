package services

import (
	"strings"
	"testing"

	"cashflow-api/internal/models"
	"cashflow-api/internal/repositories"
	"cashflow-api/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// PasswordServiceTestSuite defines the test suite for PasswordService
type PasswordServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockUserRepo *repository_mocks.MockUserRepositoryInterface
	service      PasswordServiceInterface
}

// SetupTest runs before each test
func (s *PasswordServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUserRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.service = NewPasswordService(s.mockUserRepo)
}

// TearDownTest runs after each test
func (s *PasswordServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestPasswordServiceSuite runs the test suite
func TestPasswordServiceSuite(t *testing.T) {
	suite.Run(t, new(PasswordServiceTestSuite))
}

// Test ValidatePassword
func (s *PasswordServiceTestSuite) TestValidatePassword_ValidPassword() {
	err := s.service.ValidatePassword("SecurePass123")
	s.NoError(err)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooShort() {
	err := s.service.ValidatePassword("Short1")
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooLong() {
	err := s.service.ValidatePassword("Aa1" + strings.Repeat("x", MaxPasswordLength))
	s.ErrorIs(err, ErrPasswordTooLong)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MissingUppercase() {
	err := s.service.ValidatePassword("securepass123")
	s.ErrorIs(err, ErrPasswordNoUppercase)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MissingLowercase() {
	err := s.service.ValidatePassword("SECUREPASS123")
	s.ErrorIs(err, ErrPasswordNoLowercase)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MissingNumber() {
	err := s.service.ValidatePassword("SecurePassword")
	s.ErrorIs(err, ErrPasswordNoNumber)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_Empty() {
	err := s.service.ValidatePassword("")
	s.ErrorIs(err, ErrPasswordEmpty)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_WithSpaces() {
	err := s.service.ValidatePassword("Secure Pass123")
	s.NoError(err)
}

// Test HashPassword
func (s *PasswordServiceTestSuite) TestHashPassword_Success() {
	password := "SecurePass123"

	hash, err := s.service.HashPassword(password)
	s.NoError(err)
	s.NotEmpty(hash)
	s.NotEqual(password, hash)
	s.True(strings.HasPrefix(hash, "$2a$"))
}

func (s *PasswordServiceTestSuite) TestHashPassword_InvalidPassword() {
	hash, err := s.service.HashPassword("weak")
	s.Error(err)
	s.Empty(hash)
}

func (s *PasswordServiceTestSuite) TestHashPassword_DifferentHashesForSamePassword() {
	password := "SecurePass123"

	hash1, err := s.service.HashPassword(password)
	s.NoError(err)
	hash2, err := s.service.HashPassword(password)
	s.NoError(err)

	s.NotEqual(hash1, hash2)
}

// Test ComparePassword
func (s *PasswordServiceTestSuite) TestComparePassword_Match() {
	password := "SecurePass123"
	hash, err := s.service.HashPassword(password)
	s.Require().NoError(err)

	s.True(s.service.ComparePassword(password, hash))
}

func (s *PasswordServiceTestSuite) TestComparePassword_NoMatch() {
	hash, err := s.service.HashPassword("SecurePass123")
	s.Require().NoError(err)

	s.False(s.service.ComparePassword("WrongPass456", hash))
}

func (s *PasswordServiceTestSuite) TestComparePassword_InvalidHash() {
	s.False(s.service.ComparePassword("SecurePass123", "not-a-hash"))
}

// Test UpdatePassword
func (s *PasswordServiceTestSuite) TestUpdatePassword_Success() {
	userID := uuid.New()
	currentPassword := "CurrentPass123"
	newPassword := "ReplacementPass456"

	currentHash, err := s.service.HashPassword(currentPassword)
	s.Require().NoError(err)

	user := &models.User{ID: userID, PasswordHash: currentHash}

	s.mockUserRepo.EXPECT().GetByID(userID).Return(user, nil).Times(1)
	s.mockUserRepo.EXPECT().UpdatePasswordHash(userID, gomock.Any()).Return(nil).Times(1)

	err = s.service.UpdatePassword(userID, currentPassword, newPassword)
	s.NoError(err)
}

func (s *PasswordServiceTestSuite) TestUpdatePassword_WrongCurrentPassword() {
	userID := uuid.New()
	currentHash, err := s.service.HashPassword("CurrentPass123")
	s.Require().NoError(err)

	user := &models.User{ID: userID, PasswordHash: currentHash}
	s.mockUserRepo.EXPECT().GetByID(userID).Return(user, nil).Times(1)

	err = s.service.UpdatePassword(userID, "WrongPass123", "ReplacementPass456")
	s.ErrorIs(err, ErrCurrentPasswordWrong)
}

func (s *PasswordServiceTestSuite) TestUpdatePassword_SamePassword() {
	err := s.service.UpdatePassword(uuid.New(), "SecurePass123", "SecurePass123")
	s.ErrorIs(err, ErrSamePassword)
}

func (s *PasswordServiceTestSuite) TestUpdatePassword_WeakNewPassword() {
	err := s.service.UpdatePassword(uuid.New(), "CurrentPass123", "weak")
	s.Error(err)
}

func (s *PasswordServiceTestSuite) TestUpdatePassword_UserNotFound() {
	userID := uuid.New()
	s.mockUserRepo.EXPECT().GetByID(userID).Return(nil, repositories.ErrUserNotFound).Times(1)

	err := s.service.UpdatePassword(userID, "CurrentPass123", "ReplacementPass456")
	s.ErrorIs(err, ErrUserNotFound)
}
