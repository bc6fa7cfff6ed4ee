package services

import (
	"time"

	"cashflow-api/internal/dto"
	"cashflow-api/internal/models"

	"github.com/google/uuid"
)

// AggregatorServiceInterface defines the pure ledger aggregation operations.
// Every method is a deterministic function of its inputs plus, for the daily
// window, the evaluation date.
type AggregatorServiceInterface interface {
	// CategoryTotals groups expense entries by category and returns the
	// largest groups, sorted descending by total
	CategoryTotals(entries []models.CashflowEntry) []models.CategoryTotal

	// MonthlySeries buckets all entries by calendar year-month and returns
	// income, expense and balance per month in chronological order
	MonthlySeries(entries []models.CashflowEntry) []models.MonthlyPoint

	// TotalsComparison sums income and expense across the whole entry set
	TotalsComparison(entries []models.CashflowEntry) models.TotalsBreakdown

	// DailyWindow returns exactly windowDays points, one per calendar day
	// ending today, zero-filled for days with no activity
	DailyWindow(entries []models.CashflowEntry, windowDays int) []models.DailyActivityPoint

	// WindowStart returns the first day of a windowDays window ending on
	// the evaluation date, the anchor DailyWindow derives its days from
	WindowStart(windowDays int) time.Time
}

// ReportServiceInterface assembles the dashboard views for a user
type ReportServiceInterface interface {
	Dashboard(userID uuid.UUID, windowDays int) (*models.DashboardReport, error)
	DailyActivity(userID uuid.UUID, windowDays int) ([]models.DailyActivityPoint, error)
}

// EntryServiceInterface defines cashflow entry business operations
type EntryServiceInterface interface {
	CreateEntry(userID uuid.UUID, req *dto.CreateEntryRequest) (*models.CashflowEntry, error)
	GetEntry(userID, entryID uuid.UUID) (*models.CashflowEntry, error)
	UpdateEntry(userID, entryID uuid.UUID, req *dto.UpdateEntryRequest) (*models.CashflowEntry, error)
	DeleteEntry(userID, entryID uuid.UUID) error
	ListEntries(userID uuid.UUID, filters models.EntryFilters) ([]models.CashflowEntry, int64, error)
	ListCategories(userID uuid.UUID) ([]string, error)
}

// ExportServiceInterface produces raw-ledger exports
type ExportServiceInterface interface {
	ExportEntriesCSV(userID uuid.UUID) ([]byte, error)
}

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshTokens(refreshToken string) (*dto.TokenResponse, error)
	Logout(accessToken string) error
	GetProfile(userID uuid.UUID) (*models.User, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ValidateRefreshToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
	UpdatePassword(userID uuid.UUID, currentPassword, newPassword string) error
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
