package validation

import (
	"reflect"
	"strings"
	"time"

	"cashflow-api/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("entry_kind", validateEntryKind)
	_ = v.RegisterValidation("money_amount", validateMoneyAmount)
	_ = v.RegisterValidation("calendar_date", validateCalendarDate)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateEntryKind validates that an entry kind is one of the recognized kinds.
// Kinds are case sensitive, "Income" is not "income".
func validateEntryKind(fl validator.FieldLevel) bool {
	return models.IsValidEntryKind(fl.Field().String())
}

// validateMoneyAmount validates that a money amount is a non-negative decimal
// with at most 2 fractional digits
func validateMoneyAmount(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return false
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}

	if amount.IsNegative() {
		return false
	}

	return amount.Exponent() >= -2
}

// validateCalendarDate validates a date in YYYY-MM-DD form, rejecting
// impossible days such as 2025-02-30
func validateCalendarDate(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return false
	}

	_, err := time.Parse(time.DateOnly, raw)
	return err == nil
}
