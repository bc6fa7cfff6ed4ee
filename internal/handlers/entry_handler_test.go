package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cashflow-api/internal/dto"
	"cashflow-api/internal/models"
	"cashflow-api/internal/services"
	"cashflow-api/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type EntryHandlerTestSuite struct {
	suite.Suite
	echo         *echo.Echo
	ctrl         *gomock.Controller
	entryService *service_mocks.MockEntryServiceInterface
	handler      *EntryHandler
	userID       uuid.UUID
}

func TestEntryHandlerSuite(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}

func (s *EntryHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.ctrl = gomock.NewController(s.T())
	s.entryService = service_mocks.NewMockEntryServiceInterface(s.ctrl)
	s.handler = NewEntryHandler(s.entryService)
	s.userID = uuid.New()
}

func (s *EntryHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EntryHandlerTestSuite) newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *EntryHandlerTestSuite) storedEntry() *models.CashflowEntry {
	return &models.CashflowEntry{
		ID:         uuid.New(),
		UserID:     s.userID,
		Kind:       models.EntryKindExpense,
		Category:   "Food",
		Amount:     decimal.RequireFromString("42.50"),
		Note:       gofakeit.Sentence(3),
		OccurredOn: time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
	}
}

// Create

func (s *EntryHandlerTestSuite) TestCreate_Successful() {
	body := `{"kind":"expense","category":"Food","amount":"42.50","occurredOn":"2025-10-03"}`
	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/entries", body)

	stored := s.storedEntry()
	s.entryService.EXPECT().
		CreateEntry(s.userID, gomock.Any()).
		DoAndReturn(func(userID uuid.UUID, req *dto.CreateEntryRequest) (*models.CashflowEntry, error) {
			s.Equal("expense", req.Kind)
			s.Equal("Food", req.Category)
			s.Equal("42.50", req.Amount)
			s.Equal("2025-10-03", req.OccurredOn)
			return stored, nil
		}).
		Times(1)

	err := s.handler.Create(c)
	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.EntryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(stored.ID, response.ID)
	s.Equal("42.50", response.Amount)
	s.Equal("2025-10-03", response.OccurredOn)
}

func (s *EntryHandlerTestSuite) TestCreate_InvalidKindRejectedByValidation() {
	body := `{"kind":"transfer","category":"Food","amount":"42.50","occurredOn":"2025-10-03"}`
	c, _ := s.newJSONContext(http.MethodPost, "/api/v1/entries", body)

	err := s.handler.Create(c)
	s.Error(err)
}

func (s *EntryHandlerTestSuite) TestCreate_UppercaseKindRejected() {
	// Kinds are case sensitive
	body := `{"kind":"Expense","category":"Food","amount":"42.50","occurredOn":"2025-10-03"}`
	c, _ := s.newJSONContext(http.MethodPost, "/api/v1/entries", body)

	err := s.handler.Create(c)
	s.Error(err)
}

func (s *EntryHandlerTestSuite) TestCreate_TooManyDecimalPlacesRejected() {
	body := `{"kind":"expense","category":"Food","amount":"42.505","occurredOn":"2025-10-03"}`
	c, _ := s.newJSONContext(http.MethodPost, "/api/v1/entries", body)

	err := s.handler.Create(c)
	s.Error(err)
}

func (s *EntryHandlerTestSuite) TestCreate_MalformedDateRejected() {
	body := `{"kind":"expense","category":"Food","amount":"42.50","occurredOn":"03/10/2025"}`
	c, _ := s.newJSONContext(http.MethodPost, "/api/v1/entries", body)

	err := s.handler.Create(c)
	s.Error(err)
}

func (s *EntryHandlerTestSuite) TestCreate_MissingUserContext() {
	body := `{"kind":"expense","category":"Food","amount":"42.50","occurredOn":"2025-10-03"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	err := s.handler.Create(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

// Get

func (s *EntryHandlerTestSuite) TestGet_Successful() {
	stored := s.storedEntry()
	c, rec := s.newJSONContext(http.MethodGet, "/api/v1/entries/"+stored.ID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(stored.ID.String())

	s.entryService.EXPECT().GetEntry(s.userID, stored.ID).Return(stored, nil).Times(1)

	err := s.handler.Get(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *EntryHandlerTestSuite) TestGet_NotFound() {
	entryID := uuid.New()
	c, rec := s.newJSONContext(http.MethodGet, "/api/v1/entries/"+entryID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(entryID.String())

	s.entryService.EXPECT().GetEntry(s.userID, entryID).Return(nil, services.ErrEntryNotFound).Times(1)

	err := s.handler.Get(c)
	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *EntryHandlerTestSuite) TestGet_NotOwnedIsForbidden() {
	entryID := uuid.New()
	c, rec := s.newJSONContext(http.MethodGet, "/api/v1/entries/"+entryID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(entryID.String())

	s.entryService.EXPECT().GetEntry(s.userID, entryID).Return(nil, services.ErrEntryNotOwned).Times(1)

	err := s.handler.Get(c)
	s.NoError(err)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *EntryHandlerTestSuite) TestGet_MalformedID() {
	c, rec := s.newJSONContext(http.MethodGet, "/api/v1/entries/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := s.handler.Get(c)
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// Update

func (s *EntryHandlerTestSuite) TestUpdate_Successful() {
	stored := s.storedEntry()
	body := `{"note":"brunch"}`
	c, rec := s.newJSONContext(http.MethodPut, "/api/v1/entries/"+stored.ID.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(stored.ID.String())

	stored.Note = "brunch"
	s.entryService.EXPECT().
		UpdateEntry(s.userID, stored.ID, gomock.Any()).
		DoAndReturn(func(userID, entryID uuid.UUID, req *dto.UpdateEntryRequest) (*models.CashflowEntry, error) {
			s.Require().NotNil(req.Note)
			s.Equal("brunch", *req.Note)
			s.Nil(req.Amount)
			return stored, nil
		}).
		Times(1)

	err := s.handler.Update(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *EntryHandlerTestSuite) TestUpdate_EmptyBodyRejected() {
	stored := s.storedEntry()
	c, rec := s.newJSONContext(http.MethodPut, "/api/v1/entries/"+stored.ID.String(), `{}`)
	c.SetParamNames("id")
	c.SetParamValues(stored.ID.String())

	s.entryService.EXPECT().
		UpdateEntry(s.userID, stored.ID, gomock.Any()).
		Return(nil, services.ErrNothingToApply).
		Times(1)

	err := s.handler.Update(c)
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// Delete

func (s *EntryHandlerTestSuite) TestDelete_Successful() {
	entryID := uuid.New()
	c, rec := s.newJSONContext(http.MethodDelete, "/api/v1/entries/"+entryID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(entryID.String())

	s.entryService.EXPECT().DeleteEntry(s.userID, entryID).Return(nil).Times(1)

	err := s.handler.Delete(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

// List

func (s *EntryHandlerTestSuite) TestList_PassesFiltersAndPagination() {
	c, rec := s.newJSONContext(http.MethodGet, "/api/v1/entries?kind=expense&category=Food&startDate=2025-10-01&limit=10&offset=20", "")

	entries := []models.CashflowEntry{*s.storedEntry()}
	s.entryService.EXPECT().
		ListEntries(s.userID, gomock.Any()).
		DoAndReturn(func(userID uuid.UUID, filters models.EntryFilters) ([]models.CashflowEntry, int64, error) {
			s.Equal("expense", filters.Kind)
			s.Equal("Food", filters.Category)
			s.Require().NotNil(filters.StartDate)
			s.Equal("2025-10-01", filters.StartDate.Format(time.DateOnly))
			s.Nil(filters.EndDate)
			s.Equal(10, filters.Limit)
			s.Equal(20, filters.Offset)
			return entries, 31, nil
		}).
		Times(1)

	err := s.handler.List(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response dto.ListEntriesResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Entries, 1)
	s.Equal(int64(31), response.Pagination.Total)
	s.Equal(10, response.Pagination.Limit)
}

func (s *EntryHandlerTestSuite) TestList_DefaultsLimit() {
	c, rec := s.newJSONContext(http.MethodGet, "/api/v1/entries", "")

	s.entryService.EXPECT().
		ListEntries(s.userID, gomock.Any()).
		DoAndReturn(func(userID uuid.UUID, filters models.EntryFilters) ([]models.CashflowEntry, int64, error) {
			s.Equal(services.DefaultPageSize, filters.Limit)
			return []models.CashflowEntry{}, 0, nil
		}).
		Times(1)

	err := s.handler.List(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *EntryHandlerTestSuite) TestList_InvalidKind() {
	c, rec := s.newJSONContext(http.MethodGet, "/api/v1/entries?kind=transfer", "")

	err := s.handler.List(c)
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *EntryHandlerTestSuite) TestList_MalformedStartDate() {
	c, rec := s.newJSONContext(http.MethodGet, "/api/v1/entries?startDate=01-10-2025", "")

	err := s.handler.List(c)
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// Categories

func (s *EntryHandlerTestSuite) TestCategories() {
	c, rec := s.newJSONContext(http.MethodGet, "/api/v1/entries/categories", "")

	s.entryService.EXPECT().ListCategories(s.userID).Return([]string{"Food", "Rent"}, nil).Times(1)

	err := s.handler.Categories(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response dto.CategoriesResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal([]string{"Food", "Rent"}, response.Categories)
}
