package dto

import (
	"time"

	"cashflow-api/internal/models"

	"github.com/google/uuid"
)

// CreateEntryRequest contains the fields for recording a new ledger entry.
// Amount stays a string end to end so the wire value is parsed exactly.
type CreateEntryRequest struct {
	Kind       string `json:"kind" validate:"required,entry_kind"`
	Category   string `json:"category" validate:"required,min=1,max=100"`
	Amount     string `json:"amount" validate:"required,money_amount"`
	Note       string `json:"note" validate:"max=500"`
	OccurredOn string `json:"occurredOn" validate:"required,calendar_date"`
}

// UpdateEntryRequest contains optional replacement fields for an entry.
// Nil fields are left untouched.
type UpdateEntryRequest struct {
	Kind       *string `json:"kind,omitempty" validate:"omitempty,entry_kind"`
	Category   *string `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Amount     *string `json:"amount,omitempty" validate:"omitempty,money_amount"`
	Note       *string `json:"note,omitempty" validate:"omitempty,max=500"`
	OccurredOn *string `json:"occurredOn,omitempty" validate:"omitempty,calendar_date"`
}

// EntryFilters contains query-string filters for listing entries
type EntryFilters struct {
	Kind      string `query:"kind"`
	Category  string `query:"category"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Offset    int    `query:"offset"`
	Limit     int    `query:"limit"`
}

// EntryResponse represents a single ledger entry
type EntryResponse struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	Category   string    `json:"category"`
	Amount     string    `json:"amount"`
	Note       string    `json:"note,omitempty"`
	OccurredOn string    `json:"occurredOn"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
	Total  int64 `json:"total"`
}

// ListEntriesResponse represents a page of the user's ledger
type ListEntriesResponse struct {
	Entries    []EntryResponse `json:"entries"`
	Pagination PaginationInfo  `json:"pagination"`
}

// CategoriesResponse lists the distinct categories a user has recorded
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// NewEntryResponse converts a ledger entry model into its API shape
func NewEntryResponse(entry *models.CashflowEntry) EntryResponse {
	return EntryResponse{
		ID:         entry.ID,
		Kind:       entry.Kind,
		Category:   entry.Category,
		Amount:     entry.Amount.StringFixed(2),
		Note:       entry.Note,
		OccurredOn: entry.DateKey(),
		CreatedAt:  entry.CreatedAt,
		UpdatedAt:  entry.UpdatedAt,
	}
}

// NewEntryResponses converts a slice of entries
func NewEntryResponses(entries []models.CashflowEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = NewEntryResponse(&entries[i])
	}
	return responses
}
