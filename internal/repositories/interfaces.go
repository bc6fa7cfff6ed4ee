package repositories

import (
	"time"

	"cashflow-api/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePasswordHash(userID uuid.UUID, passwordHash string) error
	UpdateFailedLoginAttempts(user *models.User) error
	ResetFailedLoginAttempts(userID uuid.UUID) error
	Delete(userID uuid.UUID) error
}

// EntryRepositoryInterface defines the contract for cashflow entry repository operations
type EntryRepositoryInterface interface {
	Create(entry *models.CashflowEntry) error
	GetByID(id uuid.UUID) (*models.CashflowEntry, error)
	Update(entry *models.CashflowEntry) error
	Delete(id uuid.UUID) error
	ListByUser(filters models.EntryFilters) ([]models.CashflowEntry, int64, error)
	AllByUser(userID uuid.UUID) ([]models.CashflowEntry, error)
	AllByUserSince(userID uuid.UUID, since time.Time) ([]models.CashflowEntry, error)
	CountByUser(userID uuid.UUID) (int64, error)
	Categories(userID uuid.UUID) ([]string, error)
}

type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByID(id uuid.UUID) (*models.RefreshToken, error)
	GetByTokenHash(tokenHash string) (*models.RefreshToken, error)
	Update(token *models.RefreshToken) error
	Revoke(tokenID uuid.UUID) error
	RevokeAllForUser(userID uuid.UUID) error
	DeleteExpired() (int64, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for blacklisted token repository operations
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	GetByJTI(jti string) (*models.BlacklistedToken, error)
	DeleteExpired() (int64, error)
}
