package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cashflow-api/internal/dto"
	"cashflow-api/internal/models"
	"cashflow-api/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

var (
	ErrEntryNotFound  = errors.New("cashflow entry not found")
	ErrEntryNotOwned  = errors.New("cashflow entry belongs to another user")
	ErrInvalidAmount  = errors.New("amount is not a valid decimal")
	ErrInvalidDate    = errors.New("occurred_on is not a valid calendar date")
	ErrNothingToApply = errors.New("update request contains no changes")
)

// EntryService handles cashflow entry business logic
type EntryService struct {
	entryRepo repositories.EntryRepositoryInterface
	logger    *slog.Logger
	metrics   MetricsRecorderInterface
}

// NewEntryService creates a new cashflow entry service
func NewEntryService(
	entryRepo repositories.EntryRepositoryInterface,
	logger *slog.Logger,
	metrics MetricsRecorderInterface,
) EntryServiceInterface {
	return &EntryService{
		entryRepo: entryRepo,
		logger:    logger,
		metrics:   metrics,
	}
}

// CreateEntry records a new ledger entry for the user
func (s *EntryService) CreateEntry(userID uuid.UUID, req *dto.CreateEntryRequest) (*models.CashflowEntry, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	occurredOn, err := time.Parse(time.DateOnly, req.OccurredOn)
	if err != nil {
		return nil, ErrInvalidDate
	}

	entry := &models.CashflowEntry{
		UserID:     userID,
		Kind:       req.Kind,
		Category:   req.Category,
		Amount:     amount,
		Note:       req.Note,
		OccurredOn: occurredOn,
	}

	if err := s.entryRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCounter("entry_created", map[string]string{"kind": entry.Kind})
		s.recordLedgerSize(userID)
	}

	s.logger.Info("cashflow entry created",
		"entry_id", entry.ID,
		"user_id", userID,
		"kind", entry.Kind,
		"category", entry.Category,
		"occurred_on", entry.DateKey())

	return entry, nil
}

// GetEntry fetches a single entry, enforcing ownership
func (s *EntryService) GetEntry(userID, entryID uuid.UUID) (*models.CashflowEntry, error) {
	return s.getOwnedEntry(userID, entryID)
}

// UpdateEntry applies a partial update to an owned entry
func (s *EntryService) UpdateEntry(userID, entryID uuid.UUID, req *dto.UpdateEntryRequest) (*models.CashflowEntry, error) {
	entry, err := s.getOwnedEntry(userID, entryID)
	if err != nil {
		return nil, err
	}

	changed := false

	if req.Kind != nil {
		entry.Kind = *req.Kind
		changed = true
	}
	if req.Category != nil {
		entry.Category = *req.Category
		changed = true
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		entry.Amount = amount
		changed = true
	}
	if req.Note != nil {
		entry.Note = *req.Note
		changed = true
	}
	if req.OccurredOn != nil {
		occurredOn, err := time.Parse(time.DateOnly, *req.OccurredOn)
		if err != nil {
			return nil, ErrInvalidDate
		}
		entry.OccurredOn = occurredOn
		changed = true
	}

	if !changed {
		return nil, ErrNothingToApply
	}

	if err := s.entryRepo.Update(entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	s.logger.Info("cashflow entry updated",
		"entry_id", entry.ID,
		"user_id", userID)

	return entry, nil
}

// DeleteEntry removes an owned entry
func (s *EntryService) DeleteEntry(userID, entryID uuid.UUID) error {
	entry, err := s.getOwnedEntry(userID, entryID)
	if err != nil {
		return err
	}

	if err := s.entryRepo.Delete(entry.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCounter("entry_deleted", map[string]string{"kind": entry.Kind})
		s.recordLedgerSize(userID)
	}

	s.logger.Info("cashflow entry deleted",
		"entry_id", entry.ID,
		"user_id", userID)

	return nil
}

func (s *EntryService) recordLedgerSize(userID uuid.UUID) {
	count, err := s.entryRepo.CountByUser(userID)
	if err != nil {
		return
	}
	s.metrics.RecordGauge("ledger_entries", float64(count), nil)
}

// ListEntries returns a filtered, paginated page of the user's ledger
func (s *EntryService) ListEntries(userID uuid.UUID, filters models.EntryFilters) ([]models.CashflowEntry, int64, error) {
	filters.UserID = userID

	if filters.Limit <= 0 {
		filters.Limit = DefaultPageSize
	}
	if filters.Limit > MaxPageSize {
		filters.Limit = MaxPageSize
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	entries, total, err := s.entryRepo.ListByUser(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list entries: %w", err)
	}

	return entries, total, nil
}

// ListCategories returns the distinct categories the user has recorded
func (s *EntryService) ListCategories(userID uuid.UUID) ([]string, error) {
	categories, err := s.entryRepo.Categories(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

func (s *EntryService) getOwnedEntry(userID, entryID uuid.UUID) (*models.CashflowEntry, error) {
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	if entry.UserID != userID {
		s.logger.Warn("entry access denied",
			"entry_id", entryID,
			"owner_id", entry.UserID,
			"requestor_id", userID)
		return nil, ErrEntryNotOwned
	}

	return entry, nil
}
