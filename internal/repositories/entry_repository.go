package repositories

import (
	"errors"
	"fmt"
	"time"

	"cashflow-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEntryNotFound = errors.New("cashflow entry not found")
)

// EntryRepository handles database operations for cashflow entries
type EntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new cashflow entry repository
func NewEntryRepository(db *gorm.DB) EntryRepositoryInterface {
	return &EntryRepository{
		db: db,
	}
}

// Create creates a new cashflow entry in the database
func (r *EntryRepository) Create(entry *models.CashflowEntry) error {
	if entry == nil {
		return errors.New("entry cannot be nil")
	}

	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create cashflow entry: %w", err)
	}

	return nil
}

// GetByID retrieves a cashflow entry by its ID
func (r *EntryRepository) GetByID(id uuid.UUID) (*models.CashflowEntry, error) {
	var entry models.CashflowEntry
	if err := r.db.Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get cashflow entry by ID: %w", err)
	}

	return &entry, nil
}

// Update updates a cashflow entry in the database
func (r *EntryRepository) Update(entry *models.CashflowEntry) error {
	if entry == nil {
		return errors.New("entry cannot be nil")
	}

	if err := r.db.Save(entry).Error; err != nil {
		return fmt.Errorf("failed to update cashflow entry: %w", err)
	}

	return nil
}

// Delete removes a cashflow entry
func (r *EntryRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.CashflowEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cashflow entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// ListByUser retrieves entries for a user with optional filters and pagination,
// newest occurrence first.
func (r *EntryRepository) ListByUser(filters models.EntryFilters) ([]models.CashflowEntry, int64, error) {
	var entries []models.CashflowEntry
	var total int64

	query := r.applyFilters(filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cashflow entries: %w", err)
	}

	query = query.Order("occurred_on DESC, created_at DESC")
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list cashflow entries: %w", err)
	}

	return entries, total, nil
}

// AllByUser loads every entry for a user. Reporting works on the full ledger,
// so no pagination applies here.
func (r *EntryRepository) AllByUser(userID uuid.UUID) ([]models.CashflowEntry, error) {
	var entries []models.CashflowEntry

	if err := r.db.Where("user_id = ?", userID).
		Order("occurred_on ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load cashflow entries: %w", err)
	}

	return entries, nil
}

// AllByUserSince loads every entry for a user dated on or after the given day
func (r *EntryRepository) AllByUserSince(userID uuid.UUID, since time.Time) ([]models.CashflowEntry, error) {
	var entries []models.CashflowEntry

	if err := r.db.Where("user_id = ? AND occurred_on >= ?", userID, since).
		Order("occurred_on ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load cashflow entries since %s: %w", since.Format(time.DateOnly), err)
	}

	return entries, nil
}

// CountByUser counts all entries belonging to a user
func (r *EntryRepository) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.CashflowEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cashflow entries: %w", err)
	}

	return count, nil
}

// Categories returns the distinct category names a user has recorded
func (r *EntryRepository) Categories(userID uuid.UUID) ([]string, error) {
	var categories []string
	if err := r.db.Model(&models.CashflowEntry{}).
		Where("user_id = ?", userID).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

func (r *EntryRepository) applyFilters(filters models.EntryFilters) *gorm.DB {
	query := r.db.Model(&models.CashflowEntry{}).Where("user_id = ?", filters.UserID)

	if filters.Kind != "" {
		query = query.Where("kind = ?", filters.Kind)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.StartDate != nil {
		query = query.Where("occurred_on >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("occurred_on <= ?", *filters.EndDate)
	}

	return query
}
