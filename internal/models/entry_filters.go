package models

import (
	"time"

	"github.com/google/uuid"
)

// EntryFilters contains filtering options for cashflow entry queries.
// A nil pointer or empty string means the dimension is not filtered.
type EntryFilters struct {
	UserID    uuid.UUID
	Kind      string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Offset    int
	Limit     int
}
