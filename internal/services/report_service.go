package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cashflow-api/internal/models"
	"cashflow-api/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindowDays = errors.New("window days must be a positive integer")
	ErrUserNotFound      = errors.New("user not found")
)

type reportService struct {
	entryRepo  repositories.EntryRepositoryInterface
	userRepo   repositories.UserRepositoryInterface
	aggregator AggregatorServiceInterface

	defaultWindowDays int
	maxWindowDays     int
	metrics           MetricsRecorderInterface
}

func NewReportService(
	entryRepo repositories.EntryRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	aggregator AggregatorServiceInterface,
	defaultWindowDays int,
	maxWindowDays int,
	metrics MetricsRecorderInterface,
) ReportServiceInterface {
	if defaultWindowDays <= 0 {
		defaultWindowDays = 7
	}
	return &reportService{
		entryRepo:         entryRepo,
		userRepo:          userRepo,
		aggregator:        aggregator,
		defaultWindowDays: defaultWindowDays,
		maxWindowDays:     maxWindowDays,
		metrics:           metrics,
	}
}

// Dashboard loads the user's full ledger and computes all four derived views
// in a single pass over one snapshot
func (s *reportService) Dashboard(userID uuid.UUID, windowDays int) (*models.DashboardReport, error) {
	start := time.Now()

	windowDays, err := s.resolveWindowDays(windowDays)
	if err != nil {
		return nil, err
	}

	entries, err := s.loadEntries(userID)
	if err != nil {
		return nil, err
	}

	report := &models.DashboardReport{
		CategoryTotals: s.aggregator.CategoryTotals(entries),
		MonthlySeries:  s.aggregator.MonthlySeries(entries),
		Totals:         s.aggregator.TotalsComparison(entries),
		DailyWindow:    s.aggregator.DailyWindow(entries, windowDays),
		WindowDays:     windowDays,
		EntryCount:     len(entries),
	}

	if s.metrics != nil {
		s.metrics.IncrementCounter("report_generated", map[string]string{"view": "dashboard"})
		s.metrics.RecordProcessingTime("report_generation", time.Since(start))
	}

	slog.Info("dashboard report generated",
		"user_id", userID,
		"entry_count", len(entries),
		"window_days", windowDays,
		"duration_ms", time.Since(start).Milliseconds())

	return report, nil
}

// DailyActivity computes only the rolling daily window view. Unlike the
// dashboard it fetches just the window's date range
func (s *reportService) DailyActivity(userID uuid.UUID, windowDays int) ([]models.DailyActivityPoint, error) {
	windowDays, err := s.resolveWindowDays(windowDays)
	if err != nil {
		return nil, err
	}

	if err := s.verifyUser(userID); err != nil {
		return nil, err
	}

	since := s.aggregator.WindowStart(windowDays)

	entries, err := s.entryRepo.AllByUserSince(userID, since)
	if err != nil {
		slog.Error("failed to load ledger window",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCounter("report_generated", map[string]string{"view": "daily_activity"})
	}

	return s.aggregator.DailyWindow(entries, windowDays), nil
}

func (s *reportService) resolveWindowDays(windowDays int) (int, error) {
	if windowDays == 0 {
		return s.defaultWindowDays, nil
	}
	if windowDays < 0 {
		return 0, ErrInvalidWindowDays
	}
	if s.maxWindowDays > 0 && windowDays > s.maxWindowDays {
		return 0, fmt.Errorf("%w: at most %d days", ErrInvalidWindowDays, s.maxWindowDays)
	}
	return windowDays, nil
}

func (s *reportService) verifyUser(userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			slog.Warn("report requested for unknown user", "user_id", userID)
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to verify user: %w", err)
	}
	return nil
}

func (s *reportService) loadEntries(userID uuid.UUID) ([]models.CashflowEntry, error) {
	if err := s.verifyUser(userID); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.AllByUser(userID)
	if err != nil {
		slog.Error("failed to load ledger for report",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	return entries, nil
}
