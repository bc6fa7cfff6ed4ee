package handlers

import (
	"net/http"

	"cashflow-api/internal/dto"
	"cashflow-api/internal/errors"
	"cashflow-api/internal/models"
	"cashflow-api/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EntryHandler handles cashflow entry endpoints
type EntryHandler struct {
	entryService services.EntryServiceInterface
}

// NewEntryHandler creates a new cashflow entry handler
func NewEntryHandler(entryService services.EntryServiceInterface) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

// Create records a new ledger entry
// @Summary Create a cashflow entry
// @Tags Entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} errors.ErrorResponse "Validation error"
// @Router /entries [post]
func (h *EntryHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	entry, err := h.entryService.CreateEntry(userID, &req)
	if err != nil {
		return h.mapEntryError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewEntryResponse(entry))
}

// Get returns a single owned entry
// @Summary Get a cashflow entry
// @Tags Entries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} errors.ErrorResponse "Entry not found"
// @Router /entries/{id} [get]
func (h *EntryHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid entry ID"))
	}

	entry, err := h.entryService.GetEntry(userID, entryID)
	if err != nil {
		return h.mapEntryError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewEntryResponse(entry))
}

// Update applies a partial update to an owned entry
// @Summary Update a cashflow entry
// @Tags Entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body dto.UpdateEntryRequest true "Fields to change"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} errors.ErrorResponse "Entry not found"
// @Router /entries/{id} [put]
func (h *EntryHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid entry ID"))
	}

	var req dto.UpdateEntryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	entry, err := h.entryService.UpdateEntry(userID, entryID, &req)
	if err != nil {
		return h.mapEntryError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewEntryResponse(entry))
}

// Delete removes an owned entry
// @Summary Delete a cashflow entry
// @Tags Entries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "Entry not found"
// @Router /entries/{id} [delete]
func (h *EntryHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid entry ID"))
	}

	if err := h.entryService.DeleteEntry(userID, entryID); err != nil {
		return h.mapEntryError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Entry deleted successfully",
	})
}

// List returns a filtered page of the caller's ledger
// @Summary List cashflow entries
// @Tags Entries
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Filter by kind (income or expense)"
// @Param category query string false "Filter by exact category"
// @Param startDate query string false "Earliest occurrence date (YYYY-MM-DD)"
// @Param endDate query string false "Latest occurrence date (YYYY-MM-DD)"
// @Param offset query int false "Page offset"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListEntriesResponse
// @Router /entries [get]
func (h *EntryHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters := models.EntryFilters{
		Kind:     c.QueryParam("kind"),
		Category: c.QueryParam("category"),
		Offset:   getIntParam(c, "offset", 0),
		Limit:    getIntParam(c, "limit", services.DefaultPageSize),
	}
	if filters.Limit <= 0 {
		filters.Limit = services.DefaultPageSize
	}
	if filters.Limit > services.MaxPageSize {
		filters.Limit = services.MaxPageSize
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	startDate, err := getDateParam(c, "startDate")
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	}
	filters.StartDate = startDate

	endDate, err := getDateParam(c, "endDate")
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	}
	filters.EndDate = endDate

	if filters.Kind != "" && !models.IsValidEntryKind(filters.Kind) {
		return SendError(c, errors.EntryInvalidKind)
	}

	entries, total, err := h.entryService.ListEntries(userID, filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.NewEntryResponses(entries),
		Pagination: dto.PaginationInfo{
			Offset: filters.Offset,
			Limit:  filters.Limit,
			Total:  total,
		},
	})
}

// Categories returns the caller's distinct categories
// @Summary List recorded categories
// @Tags Entries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CategoriesResponse
// @Router /entries/categories [get]
func (h *EntryHandler) Categories(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.entryService.ListCategories(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: categories})
}

func (h *EntryHandler) mapEntryError(c echo.Context, err error) error {
	switch err {
	case services.ErrEntryNotFound:
		return SendError(c, errors.EntryNotFound)
	case services.ErrEntryNotOwned:
		return SendError(c, errors.EntryNotOwned)
	case services.ErrInvalidAmount:
		return SendError(c, errors.EntryInvalidAmount)
	case services.ErrInvalidDate:
		return SendError(c, errors.EntryInvalidDate)
	case services.ErrNothingToApply:
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("No fields to update"))
	default:
		return SendSystemError(c, err)
	}
}
