package handlers

import (
	"cashflow-api/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator on top of the shared validator
// instance, so the custom entry rules apply to every bound request
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new custom validator
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.GetValidator().GetValidate()}
}

// Validate implements the echo.Validator interface. Validation errors are
// returned raw so the central error handler can shape the field breakdown.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
