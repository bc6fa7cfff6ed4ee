package handlers

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromContext extracts the authenticated user ID set by the auth
// middleware. Returns ErrUnauthorized if it is missing or invalid.
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}

// getDateParam parses an optional YYYY-MM-DD query parameter. Returns nil
// when absent, an error when present but malformed.
func getDateParam(c echo.Context, name string) (*time.Time, error) {
	param := c.QueryParam(name)
	if param == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.DateOnly, param)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return &parsed, nil
}
