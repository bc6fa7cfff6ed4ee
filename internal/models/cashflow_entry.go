package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	EntryKindIncome  = "income"
	EntryKindExpense = "expense"

	MaxCategoryLength = 100
	MaxNoteLength     = 500
)

var (
	ErrInvalidEntryKind  = errors.New("entry kind must be income or expense")
	ErrNegativeAmount    = errors.New("entry amount must not be negative")
	ErrCategoryRequired  = errors.New("entry category is required")
	ErrCategoryTooLong   = errors.New("entry category is too long")
	ErrNoteTooLong       = errors.New("entry note is too long")
	ErrOccurredOnMissing = errors.New("entry date is required")
)

// CashflowEntry is one recorded income or expense transaction. The sign of a
// movement is carried by Kind, not by Amount; OccurredOn is the calendar date
// the transaction is attributed to and is the grouping key for all
// time-bucketed reporting.
type CashflowEntry struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind       string          `gorm:"type:varchar(10);not null;index" json:"kind"`
	Category   string          `gorm:"type:varchar(100);not null" json:"category"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Note       string          `gorm:"type:text" json:"note,omitempty"`
	OccurredOn time.Time       `gorm:"type:date;not null;index" json:"occurred_on"`
	CreatedAt  time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (e *CashflowEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return e.Validate()
}

func (e *CashflowEntry) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return e.Validate()
}

// Validate enforces the write-side contract. Reporting is deliberately more
// permissive than this (it never rejects stored rows); validation only guards
// what enters the table through the API.
func (e *CashflowEntry) Validate() error {
	if e.UserID == uuid.Nil {
		return errors.New("entry owner is required")
	}

	if !IsValidEntryKind(e.Kind) {
		return ErrInvalidEntryKind
	}

	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if e.Category == "" {
		return ErrCategoryRequired
	}

	if len(e.Category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}

	if len(e.Note) > MaxNoteLength {
		return ErrNoteTooLong
	}

	if e.OccurredOn.IsZero() {
		return ErrOccurredOnMissing
	}

	return nil
}

// IsIncome returns true for income entries.
func (e *CashflowEntry) IsIncome() bool {
	return e.Kind == EntryKindIncome
}

// IsExpense returns true for expense entries.
func (e *CashflowEntry) IsExpense() bool {
	return e.Kind == EntryKindExpense
}

// DateKey returns the calendar-date grouping key for the entry.
func (e *CashflowEntry) DateKey() string {
	return e.OccurredOn.Format(time.DateOnly)
}

// TableName keeps the table name of the hosted schema this tracker was
// originally backed by.
func (e *CashflowEntry) TableName() string {
	return "cashflow"
}

// IsValidEntryKind checks if the kind is one of the two known tags.
func IsValidEntryKind(kind string) bool {
	switch kind {
	case EntryKindIncome, EntryKindExpense:
		return true
	default:
		return false
	}
}
