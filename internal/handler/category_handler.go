package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tadasmn/gonotes/internal/auth"
	"github.com/tadasmn/gonotes/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest carries a category name for create and rename.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// List godoc
// @Summary List the caller's categories
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	categories, err := h.categoryService.List(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category name"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// Rename godoc
// @Summary Rename a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body CategoryRequest true "New name"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *CategoryHandler) Rename(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	categoryID, err := pathID(c)
	if err != nil {
		return err
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.Rename(c.Request().Context(), userID, categoryID, req.Name)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a category and the notes filed under it
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	categoryID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.categoryService.Delete(c.Request().Context(), userID, categoryID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "category deleted",
	})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
