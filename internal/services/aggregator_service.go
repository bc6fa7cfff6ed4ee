package services

import (
	"sort"
	"time"

	"cashflow-api/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTopCategories is the number of expense categories the breakdown keeps
const DefaultTopCategories = 6

type aggregatorService struct {
	topCategories int

	// now supplies the evaluation date for the daily window; injectable so
	// tests can pin it
	now func() time.Time
}

// NewAggregatorService creates a new AggregatorServiceInterface instance
func NewAggregatorService(topCategories int) AggregatorServiceInterface {
	if topCategories <= 0 {
		topCategories = DefaultTopCategories
	}
	return &aggregatorService{
		topCategories: topCategories,
		now:           time.Now,
	}
}

// NewAggregatorServiceAt creates an aggregator whose daily window is anchored
// by the given clock instead of the wall clock
func NewAggregatorServiceAt(topCategories int, now func() time.Time) AggregatorServiceInterface {
	svc := NewAggregatorService(topCategories).(*aggregatorService)
	svc.now = now
	return svc
}

// CategoryTotals groups expense entries by exact category string, sums each
// group and returns the top groups sorted descending by total. Categories are
// case sensitive, "Food" and "food" are distinct groups. Ties keep the order
// categories were first encountered in the input.
func (s *aggregatorService) CategoryTotals(entries []models.CashflowEntry) []models.CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for i := range entries {
		entry := &entries[i]
		if !entry.IsExpense() {
			continue
		}
		if _, seen := sums[entry.Category]; !seen {
			order = append(order, entry.Category)
		}
		sums[entry.Category] = sums[entry.Category].Add(entry.Amount)
	}

	totals := make([]models.CategoryTotal, 0, len(order))
	for _, category := range order {
		totals = append(totals, models.CategoryTotal{
			Category: category,
			Total:    sums[category],
		})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})

	if len(totals) > s.topCategories {
		totals = totals[:s.topCategories]
	}

	// Rounding happens once, at emission
	for i := range totals {
		totals[i].Total = totals[i].Total.Round(2)
	}

	return totals
}

// MonthlySeries buckets all entries by numeric calendar year-month and emits
// one point per month in chronological order. The display label is derived
// from the key, never used for grouping or sorting.
func (s *aggregatorService) MonthlySeries(entries []models.CashflowEntry) []models.MonthlyPoint {
	type monthlySums struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}

	sums := make(map[int]*monthlySums)
	keys := make([]int, 0)

	for i := range entries {
		entry := &entries[i]

		key := entry.OccurredOn.Year()*12 + int(entry.OccurredOn.Month()) - 1
		bucket, exists := sums[key]
		if !exists {
			bucket = &monthlySums{income: decimal.Zero, expense: decimal.Zero}
			sums[key] = bucket
			keys = append(keys, key)
		}

		switch {
		case entry.IsIncome():
			bucket.income = bucket.income.Add(entry.Amount)
		case entry.IsExpense():
			bucket.expense = bucket.expense.Add(entry.Amount)
		}
	}

	sort.Ints(keys)

	series := make([]models.MonthlyPoint, 0, len(keys))
	for _, key := range keys {
		bucket := sums[key]
		month := time.Date(key/12, time.Month(key%12+1), 1, 0, 0, 0, 0, time.UTC)

		series = append(series, models.MonthlyPoint{
			Month:   month.Format("2006-01"),
			Label:   month.Format("Jan 2006"),
			Income:  bucket.income.Round(2),
			Expense: bucket.expense.Round(2),
			Balance: bucket.income.Sub(bucket.expense).Round(2),
		})
	}

	return series
}

// TotalsComparison sums income and expense across all entries regardless of
// date or category
func (s *aggregatorService) TotalsComparison(entries []models.CashflowEntry) models.TotalsBreakdown {
	income := decimal.Zero
	expense := decimal.Zero

	for i := range entries {
		entry := &entries[i]
		switch {
		case entry.IsIncome():
			income = income.Add(entry.Amount)
		case entry.IsExpense():
			expense = expense.Add(entry.Amount)
		}
	}

	return models.TotalsBreakdown{
		Income:  income.Round(2),
		Expense: expense.Round(2),
	}
}

// DailyWindow returns exactly windowDays points covering the consecutive
// calendar days ending today, oldest first. Entries dated outside the window
// contribute nothing; days without entries stay at zero.
func (s *aggregatorService) DailyWindow(entries []models.CashflowEntry, windowDays int) []models.DailyActivityPoint {
	if windowDays < 1 {
		windowDays = 1
	}

	start := s.WindowStart(windowDays)

	window := make([]models.DailyActivityPoint, windowDays)
	index := make(map[string]int, windowDays)
	for i := 0; i < windowDays; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(time.DateOnly)
		window[i] = models.DailyActivityPoint{
			Date:    key,
			Label:   day.Format("Jan 2"),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		index[key] = i
	}

	for i := range entries {
		entry := &entries[i]
		pos, inWindow := index[entry.DateKey()]
		if !inWindow {
			continue
		}

		switch {
		case entry.IsIncome():
			window[pos].Income = window[pos].Income.Add(entry.Amount)
		case entry.IsExpense():
			window[pos].Expense = window[pos].Expense.Add(entry.Amount)
		}
	}

	for i := range window {
		window[i].Income = window[i].Income.Round(2)
		window[i].Expense = window[i].Expense.Round(2)
	}

	return window
}

// WindowStart returns the first calendar day of a windowDays window ending
// on the evaluation date. Callers fetching data for DailyWindow use the
// same anchor so the two cannot straddle a midnight boundary
func (s *aggregatorService) WindowStart(windowDays int) time.Time {
	if windowDays < 1 {
		windowDays = 1
	}

	today := s.now()
	return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -(windowDays - 1))
}
