package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trendradar/internal/service"
)

// TaxonomyHandler handles the reference lookup endpoints.
type TaxonomyHandler struct {
	taxonomyService service.TaxonomyService
}

// NewTaxonomyHandler creates a new taxonomy handler.
func NewTaxonomyHandler(taxonomyService service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// ListDepartments godoc
// @Summary List departments
// @Tags taxonomy
// @Produce json
// @Security BearerAuth
// @Param active_only query bool false "Only active departments"
// @Success 200 {object} map[string][]model.Department
// @Router /departments [get]
func (h *TaxonomyHandler) ListDepartments(c echo.Context) error {
	activeOnly := c.QueryParam("active_only") == "true"
	departments, err := h.taxonomyService.ListDepartments(c.Request().Context(), activeOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"departments": departments})
}

// GetDepartment godoc
// @Summary Get a department
// @Tags taxonomy
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} map[string]model.Department
// @Failure 404 {object} errors.ErrorResponse
// @Router /departments/{id} [get]
func (h *TaxonomyHandler) GetDepartment(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondValidation(c, "invalid department id")
	}
	department, err := h.taxonomyService.GetDepartment(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"department": department})
}

// ListCategories godoc
// @Summary List categories
// @Tags taxonomy
// @Produce json
// @Security BearerAuth
// @Param department query string false "Filter by department name"
// @Success 200 {object} map[string][]model.Category
// @Router /categories [get]
func (h *TaxonomyHandler) ListCategories(c echo.Context) error {
	categories, err := h.taxonomyService.ListCategories(c.Request().Context(), c.QueryParam("department"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"categories": categories})
}

// GetCategory godoc
// @Summary Get a category
// @Tags taxonomy
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]model.Category
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [get]
func (h *TaxonomyHandler) GetCategory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondValidation(c, "invalid category id")
	}
	category, err := h.taxonomyService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"category": category})
}

// ListSubCategories godoc
// @Summary List subcategories
// @Tags taxonomy
// @Produce json
// @Security BearerAuth
// @Param category_name query string false "Filter by category name"
// @Success 200 {object} map[string][]model.SubCategory
// @Router /subcategories [get]
func (h *TaxonomyHandler) ListSubCategories(c echo.Context) error {
	subcategories, err := h.taxonomyService.ListSubCategories(c.Request().Context(), c.QueryParam("category_name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"subcategories": subcategories})
}

// GetSubCategory godoc
// @Summary Get a subcategory
// @Tags taxonomy
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subcategory ID"
// @Success 200 {object} map[string]model.SubCategory
// @Failure 404 {object} errors.ErrorResponse
// @Router /subcategories/{id} [get]
func (h *TaxonomyHandler) GetSubCategory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondValidation(c, "invalid subcategory id")
	}
	subcategory, err := h.taxonomyService.GetSubCategory(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"subcategory": subcategory})
}
