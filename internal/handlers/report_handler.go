package handlers

import (
	stderrors "errors"
	"net/http"

	"cashflow-api/internal/dto"
	"cashflow-api/internal/errors"
	"cashflow-api/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandler handles aggregated reporting endpoints
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Dashboard returns the four derived views of the caller's ledger
// @Summary Get the dashboard report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param windowDays query int false "Length of the daily activity window"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} errors.ErrorResponse "Invalid window"
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	windowDays := getIntParam(c, "windowDays", 0)

	report, err := h.reportService.Dashboard(userID, windowDays)
	if err != nil {
		return h.mapReportError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewDashboardResponse(report))
}

// DailyActivity returns only the rolling daily window
// @Summary Get the daily activity window
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param windowDays query int false "Length of the daily activity window"
// @Success 200 {object} dto.DailyActivityResponse
// @Failure 400 {object} errors.ErrorResponse "Invalid window"
// @Router /reports/daily [get]
func (h *ReportHandler) DailyActivity(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	windowDays := getIntParam(c, "windowDays", 0)

	window, err := h.reportService.DailyActivity(userID, windowDays)
	if err != nil {
		return h.mapReportError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DailyActivityResponse{
		DailyWindow: dto.NewDailyWindow(window),
		WindowDays:  len(window),
	})
}

func (h *ReportHandler) mapReportError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrInvalidWindowDays):
		return SendError(c, errors.ReportInvalidWindow, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrUserNotFound):
		return SendError(c, errors.AuthMissingToken)
	default:
		return SendSystemError(c, err)
	}
}
