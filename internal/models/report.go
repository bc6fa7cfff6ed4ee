package models

import "github.com/shopspring/decimal"

// Derived reporting views. These are recomputed wholesale from the current
// entry set on every request; they carry no identity and are never persisted.

// CategoryTotal is one slice of the expense breakdown: a category and the sum
// of all expense amounts recorded against it.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyPoint is one calendar month of the trend series. Month is the
// numeric year-month key ("2025-10"); Label is the display form ("Oct 2025")
// and is never used for grouping or ordering.
type MonthlyPoint struct {
	Month   string          `json:"month"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// TotalsBreakdown compares all-time income against all-time expense.
type TotalsBreakdown struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// DailyActivityPoint is one calendar day of the rolling activity window.
type DailyActivityPoint struct {
	Date    string          `json:"date"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// DashboardReport bundles the four derived views consumed by the dashboard.
type DashboardReport struct {
	CategoryTotals []CategoryTotal      `json:"category_totals"`
	MonthlySeries  []MonthlyPoint       `json:"monthly_series"`
	Totals         TotalsBreakdown      `json:"totals"`
	DailyWindow    []DailyActivityPoint `json:"daily_window"`
	WindowDays     int                  `json:"window_days"`
	EntryCount     int                  `json:"entry_count"`
}
