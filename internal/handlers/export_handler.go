package handlers

import (
	"fmt"
	"net/http"
	"time"

	"cashflow-api/internal/errors"
	"cashflow-api/internal/services"

	"github.com/labstack/echo/v4"
)

// ExportHandler handles raw ledger export endpoints
type ExportHandler struct {
	exportService services.ExportServiceInterface
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService services.ExportServiceInterface) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// EntriesCSV streams the caller's complete ledger as a CSV download
// @Summary Export entries as CSV
// @Tags Export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV document"
// @Router /export/entries.csv [get]
func (h *ExportHandler) EntriesCSV(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	data, err := h.exportService.ExportEntriesCSV(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	filename := fmt.Sprintf("cashflow-%s.csv", time.Now().UTC().Format(time.DateOnly))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	return c.Blob(http.StatusOK, "text/csv", data)
}
