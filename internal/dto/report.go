package dto

import "cashflow-api/internal/models"

// Reporting DTOs. Monetary values are serialized as fixed two-decimal
// strings; the underlying decimals are already rounded by the aggregator.

// CategoryTotalResponse is one slice of the expense breakdown
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// MonthlyPointResponse is one calendar month of the trend series
type MonthlyPointResponse struct {
	Month   string `json:"month"`
	Label   string `json:"label"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// TotalsResponse compares all-time income against all-time expense
type TotalsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// DailyPointResponse is one calendar day of the rolling activity window
type DailyPointResponse struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// DashboardResponse bundles the four derived dashboard views
type DashboardResponse struct {
	CategoryTotals []CategoryTotalResponse `json:"categoryTotals"`
	MonthlySeries  []MonthlyPointResponse  `json:"monthlySeries"`
	Totals         TotalsResponse          `json:"totals"`
	DailyWindow    []DailyPointResponse    `json:"dailyWindow"`
	WindowDays     int                     `json:"windowDays"`
	EntryCount     int                     `json:"entryCount"`
}

// DailyActivityResponse carries the standalone daily window view
type DailyActivityResponse struct {
	DailyWindow []DailyPointResponse `json:"dailyWindow"`
	WindowDays  int                  `json:"windowDays"`
}

// NewDashboardResponse converts a computed report into its API shape
func NewDashboardResponse(report *models.DashboardReport) *DashboardResponse {
	return &DashboardResponse{
		CategoryTotals: newCategoryTotals(report.CategoryTotals),
		MonthlySeries:  newMonthlySeries(report.MonthlySeries),
		Totals: TotalsResponse{
			Income:  report.Totals.Income.StringFixed(2),
			Expense: report.Totals.Expense.StringFixed(2),
		},
		DailyWindow: NewDailyWindow(report.DailyWindow),
		WindowDays:  report.WindowDays,
		EntryCount:  report.EntryCount,
	}
}

func newCategoryTotals(totals []models.CategoryTotal) []CategoryTotalResponse {
	out := make([]CategoryTotalResponse, len(totals))
	for i, t := range totals {
		out[i] = CategoryTotalResponse{
			Category: t.Category,
			Total:    t.Total.StringFixed(2),
		}
	}
	return out
}

func newMonthlySeries(series []models.MonthlyPoint) []MonthlyPointResponse {
	out := make([]MonthlyPointResponse, len(series))
	for i, p := range series {
		out[i] = MonthlyPointResponse{
			Month:   p.Month,
			Label:   p.Label,
			Income:  p.Income.StringFixed(2),
			Expense: p.Expense.StringFixed(2),
			Balance: p.Balance.StringFixed(2),
		}
	}
	return out
}

// NewDailyWindow converts daily activity points into their API shape
func NewDailyWindow(window []models.DailyActivityPoint) []DailyPointResponse {
	out := make([]DailyPointResponse, len(window))
	for i, p := range window {
		out[i] = DailyPointResponse{
			Date:    p.Date,
			Label:   p.Label,
			Income:  p.Income.StringFixed(2),
			Expense: p.Expense.StringFixed(2),
		}
	}
	return out
}
