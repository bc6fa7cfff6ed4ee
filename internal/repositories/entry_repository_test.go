package repositories

import (
	"testing"
	"time"

	"cashflow-api/internal/database"
	"cashflow-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestEntryRepository(t *testing.T) {
	suite.Run(t, new(EntryRepositorySuite))
}

type EntryRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo EntryRepositoryInterface
	user *models.User
}

func (s *EntryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewEntryRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "ledger@example.com")
}

func (s *EntryRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *EntryRepositorySuite) date(value string) time.Time {
	d, err := time.Parse(time.DateOnly, value)
	s.Require().NoError(err)
	return d
}

func (s *EntryRepositorySuite) TestEntryRepository_Create() {
	entry := &models.CashflowEntry{
		UserID:     s.user.ID,
		Kind:       models.EntryKindExpense,
		Category:   "Food",
		Amount:     decimal.RequireFromString("12.50"),
		OccurredOn: s.date("2025-10-05"),
	}

	err := s.repo.Create(entry)
	s.NoError(err)
	s.NotEqual(uuid.Nil, entry.ID)
	s.NotZero(entry.CreatedAt)
}

func (s *EntryRepositorySuite) TestEntryRepository_GetByID() {
	created := database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindIncome, "Salary", "50000", s.date("2025-10-01"))

	found, err := s.repo.GetByID(created.ID)
	s.NoError(err)
	s.Equal(created.ID, found.ID)
	s.Equal("Salary", found.Category)
	s.True(found.Amount.Equal(decimal.RequireFromString("50000")))

	_, err = s.repo.GetByID(uuid.New())
	s.Equal(ErrEntryNotFound, err)
}

func (s *EntryRepositorySuite) TestEntryRepository_Update() {
	created := database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "25.00", s.date("2025-10-05"))

	created.Category = "Groceries"
	created.Amount = decimal.RequireFromString("30.00")
	s.NoError(s.repo.Update(created))

	found, err := s.repo.GetByID(created.ID)
	s.NoError(err)
	s.Equal("Groceries", found.Category)
	s.True(found.Amount.Equal(decimal.RequireFromString("30.00")))
}

func (s *EntryRepositorySuite) TestEntryRepository_Delete() {
	created := database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "25.00", s.date("2025-10-05"))

	s.NoError(s.repo.Delete(created.ID))

	_, err := s.repo.GetByID(created.ID)
	s.Equal(ErrEntryNotFound, err)

	err = s.repo.Delete(uuid.New())
	s.Equal(ErrEntryNotFound, err)
}

func (s *EntryRepositorySuite) TestEntryRepository_ListByUser_OrderAndPagination() {
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "10", s.date("2025-10-01"))
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Rent", "900", s.date("2025-10-03"))
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindIncome, "Salary", "50000", s.date("2025-10-02"))

	entries, total, err := s.repo.ListByUser(models.EntryFilters{UserID: s.user.ID})
	s.NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(entries, 3)
	// Newest occurrence first
	s.Equal("Rent", entries[0].Category)
	s.Equal("Salary", entries[1].Category)
	s.Equal("Food", entries[2].Category)

	entries, total, err = s.repo.ListByUser(models.EntryFilters{UserID: s.user.ID, Offset: 1, Limit: 1})
	s.NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(entries, 1)
	s.Equal("Salary", entries[0].Category)
}

func (s *EntryRepositorySuite) TestEntryRepository_ListByUser_Filters() {
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "10", s.date("2025-10-01"))
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "20", s.date("2025-11-15"))
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindIncome, "Salary", "50000", s.date("2025-10-02"))

	entries, total, err := s.repo.ListByUser(models.EntryFilters{UserID: s.user.ID, Kind: models.EntryKindExpense})
	s.NoError(err)
	s.Equal(int64(2), total)
	s.Len(entries, 2)

	start := s.date("2025-11-01")
	entries, total, err = s.repo.ListByUser(models.EntryFilters{UserID: s.user.ID, Category: "Food", StartDate: &start})
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(entries, 1)
	s.True(entries[0].Amount.Equal(decimal.RequireFromString("20")))
}

func (s *EntryRepositorySuite) TestEntryRepository_ListByUser_ScopedToUser() {
	other := database.CreateTestUser(s.T(), s.db, "other@example.com")
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "10", s.date("2025-10-01"))
	database.CreateTestEntry(s.T(), s.db, other, models.EntryKindExpense, "Food", "99", s.date("2025-10-01"))

	entries, total, err := s.repo.ListByUser(models.EntryFilters{UserID: s.user.ID})
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(entries, 1)
	s.Equal(s.user.ID, entries[0].UserID)
}

func (s *EntryRepositorySuite) TestEntryRepository_AllByUser() {
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "10", s.date("2025-10-05"))
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindIncome, "Salary", "50000", s.date("2025-10-01"))

	entries, err := s.repo.AllByUser(s.user.ID)
	s.NoError(err)
	s.Require().Len(entries, 2)
	// Oldest occurrence first
	s.Equal("Salary", entries[0].Category)
	s.Equal("Food", entries[1].Category)
}

func (s *EntryRepositorySuite) TestEntryRepository_AllByUserSince() {
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "10", s.date("2025-10-01"))
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "20", s.date("2025-10-06"))

	entries, err := s.repo.AllByUserSince(s.user.ID, s.date("2025-10-06"))
	s.NoError(err)
	s.Require().Len(entries, 1)
	s.True(entries[0].Amount.Equal(decimal.RequireFromString("20")))
}

func (s *EntryRepositorySuite) TestEntryRepository_CountByUser() {
	count, err := s.repo.CountByUser(s.user.ID)
	s.NoError(err)
	s.Equal(int64(0), count)

	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "10", s.date("2025-10-01"))
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindIncome, "Salary", "50000", s.date("2025-10-02"))

	count, err = s.repo.CountByUser(s.user.ID)
	s.NoError(err)
	s.Equal(int64(2), count)
}

func (s *EntryRepositorySuite) TestEntryRepository_Categories() {
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "10", s.date("2025-10-01"))
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Food", "20", s.date("2025-10-02"))
	database.CreateTestEntry(s.T(), s.db, s.user, models.EntryKindExpense, "Rent", "900", s.date("2025-10-03"))

	categories, err := s.repo.Categories(s.user.ID)
	s.NoError(err)
	s.Equal([]string{"Food", "Rent"}, categories)
}
