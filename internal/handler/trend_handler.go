package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"trendradar/internal/auth"
	"trendradar/internal/query"
	"trendradar/internal/service"
)

// TrendHandler handles trend endpoints.
type TrendHandler struct {
	trendService service.TrendService
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(trendService service.TrendService) *TrendHandler {
	return &TrendHandler{trendService: trendService}
}

// BulkRequest carries the id list for bulk review operations.
type BulkRequest struct {
	TrendIDs []FlexID `json:"trend_ids"`
}

// List godoc
// @Summary List trends with filters and pagination
// @Description Filter keys accept repeated parameters for multi-value matching.
// @Tags trends
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Param department_name query []string false "Department filter"
// @Param category query []string false "Category filter"
// @Param sub_category query []string false "Subcategory tag filter"
// @Param time_horizon query []string false "Time horizon filter"
// @Param scope query []string false "Scope filter"
// @Param status query []string false "Status filter (admin only sees pending)"
// @Param impact_label query []string false "Impact label filter"
// @Success 200 {object} service.TrendPage
// @Failure 401 {object} errors.ErrorResponse
// @Router /trends [get]
func (h *TrendHandler) List(c echo.Context) error {
	filter := query.ParseTrendFilter(c.QueryParams())
	page, err := h.trendService.List(c.Request().Context(), auth.CurrentUser(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get a single trend
// @Tags trends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trend ID"
// @Success 200 {object} map[string]policy.TrendView
// @Failure 404 {object} errors.ErrorResponse
// @Router /trends/{id} [get]
func (h *TrendHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondValidation(c, "invalid trend id")
	}
	trend, err := h.trendService.Get(c.Request().Context(), auth.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"trend": trend})
}

// Stats godoc
// @Summary Aggregate statistics over the filtered trend set
// @Tags trends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]service.TrendStats
// @Failure 401 {object} errors.ErrorResponse
// @Router /trends/stats [get]
func (h *TrendHandler) Stats(c echo.Context) error {
	filter := query.ParseTrendFilter(c.QueryParams())
	stats, err := h.trendService.Stats(c.Request().Context(), auth.CurrentUser(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"stats": stats})
}

// Approve godoc
// @Summary Confirm a pending trend
// @Tags trends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trend ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trends/{id}/approve [put]
func (h *TrendHandler) Approve(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondValidation(c, "invalid trend id")
	}
	trend, err := h.trendService.Approve(c.Request().Context(), auth.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "trend approved successfully",
		"trend":   trend,
	})
}

// Disapprove godoc
// @Summary Reject a trend, deleting it permanently
// @Tags trends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trend ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trends/{id}/disapprove [delete]
func (h *TrendHandler) Disapprove(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondValidation(c, "invalid trend id")
	}
	if err := h.trendService.Disapprove(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "trend disapproved and deleted successfully",
	})
}

// BulkApprove godoc
// @Summary Confirm a batch of trends
// @Tags trends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkRequest true "Trend ids"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /trends/bulk-approve [put]
func (h *TrendHandler) BulkApprove(c echo.Context) error {
	var req BulkRequest
	if err := c.Bind(&req); err != nil {
		return respondValidation(c, "invalid request body")
	}
	if len(req.TrendIDs) == 0 {
		return respondValidation(c, "trend_ids is required")
	}

	count := h.trendService.BulkApprove(c.Request().Context(), auth.CurrentUser(c), flexIDs(req.TrendIDs))
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%d trends approved successfully", count),
	})
}

// BulkDisapprove godoc
// @Summary Delete a batch of trends
// @Tags trends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkRequest true "Trend ids"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /trends/bulk-disapprove [delete]
func (h *TrendHandler) BulkDisapprove(c echo.Context) error {
	var req BulkRequest
	if err := c.Bind(&req); err != nil {
		return respondValidation(c, "invalid request body")
	}
	if len(req.TrendIDs) == 0 {
		return respondValidation(c, "trend_ids is required")
	}

	count := h.trendService.BulkDisapprove(c.Request().Context(), flexIDs(req.TrendIDs))
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%d trends disapproved and deleted successfully", count),
	})
}
