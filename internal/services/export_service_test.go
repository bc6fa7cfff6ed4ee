package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"cashflow-api/internal/models"
	"cashflow-api/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExportServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	entryRepo *repository_mocks.MockEntryRepositoryInterface
	service   ExportServiceInterface
	userID    uuid.UUID
}

func (s *ExportServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.entryRepo = repository_mocks.NewMockEntryRepositoryInterface(s.ctrl)
	s.service = NewExportService(s.entryRepo, nil)
	s.userID = uuid.New()
}

func (s *ExportServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestExportServiceSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}

func (s *ExportServiceTestSuite) TestExportEntriesCSV_WritesHeaderAndRows() {
	entries := []models.CashflowEntry{
		{
			ID:         uuid.New(),
			UserID:     s.userID,
			Kind:       models.EntryKindIncome,
			Category:   "Salary",
			Amount:     decimal.RequireFromString("2500"),
			OccurredOn: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         uuid.New(),
			UserID:     s.userID,
			Kind:       models.EntryKindExpense,
			Category:   "Food",
			Amount:     decimal.RequireFromString("42.5"),
			Note:       "lunch, with colleagues",
			OccurredOn: time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	s.entryRepo.EXPECT().AllByUser(s.userID).Return(entries, nil).Times(1)

	data, err := s.service.ExportEntriesCSV(s.userID)
	s.Require().NoError(err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(records, 3)

	s.Equal([]string{"id", "kind", "category", "amount", "note", "occurred_on", "created_at"}, records[0])

	s.Equal(entries[0].ID.String(), records[1][0])
	s.Equal("income", records[1][1])
	s.Equal("Salary", records[1][2])
	s.Equal("2500.00", records[1][3])
	s.Equal("2025-10-01", records[1][5])

	// Commas in notes survive because the writer quotes them
	s.Equal("lunch, with colleagues", records[2][4])
	s.Equal("42.50", records[2][3])
}

func (s *ExportServiceTestSuite) TestExportEntriesCSV_EmptyLedger() {
	s.entryRepo.EXPECT().AllByUser(s.userID).Return([]models.CashflowEntry{}, nil).Times(1)

	data, err := s.service.ExportEntriesCSV(s.userID)
	s.Require().NoError(err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	s.Require().NoError(err)
	s.Len(records, 1)
}

func (s *ExportServiceTestSuite) TestExportEntriesCSV_RepositoryFailure() {
	s.entryRepo.EXPECT().AllByUser(s.userID).Return(nil, errors.New("connection reset")).Times(1)

	data, err := s.service.ExportEntriesCSV(s.userID)

	s.Error(err)
	s.Nil(data)
}
