package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
)

type CategoryHandler struct {
	service ports.CategoryService
	log     zerolog.Logger
}

func NewCategoryHandler(service ports.CategoryService, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, log: log}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *CategoryHandler) bindName(c echo.Context) (string, bool) {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return "", false
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := c.Validate(&req); err != nil {
		return "", false
	}
	return req.Name, true
}

// Create
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      categoryRequest  true  "Category name"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /category/create-category [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	name, ok := h.bindName(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name is required"})
	}

	category, err := h.service.Create(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryExists) {
			return failure(c, http.StatusOK, "Category Already Exists", nil)
		}
		h.log.Error().Err(err).Str("name", name).Msg("create category failed")
		return failure(c, http.StatusInternalServerError, "Error in Category", err)
	}
	return success(c, http.StatusCreated, "new category created", echo.Map{"category": category})
}

// Update renames a category. An unknown id answers category: null.
//
// @Summary      Rename a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string           true  "Category id"
// @Param        body  body      categoryRequest  true  "New name"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /category/update-category/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	name, ok := h.bindName(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name is required"})
	}

	category, err := h.service.Update(c.Request().Context(), c.Param("id"), name)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryExists) {
			return failure(c, http.StatusOK, "Category Already Exists", nil)
		}
		h.log.Error().Err(err).Str("category_id", c.Param("id")).Msg("update category failed")
		return failure(c, http.StatusInternalServerError, "Error while updating category", err)
	}
	return success(c, http.StatusOK, "Category Updated Successfully", echo.Map{"category": category})
}

// List
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /category/get-category [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list categories failed")
		return failure(c, http.StatusInternalServerError, "Error while getting all categories", err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return success(c, http.StatusOK, "All Categories List", echo.Map{"category": categories})
}

// Single
//
// @Summary      Get a category by slug
// @Tags         categories
// @Produce      json
// @Param        slug  path      string  true  "Category slug"
// @Success      200   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /category/single-category/{slug} [get]
func (h *CategoryHandler) Single(c echo.Context) error {
	category, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		h.log.Error().Err(err).Str("slug", c.Param("slug")).Msg("get category failed")
		return failure(c, http.StatusInternalServerError, "Error While getting Single Category", err)
	}
	return success(c, http.StatusOK, "Get SIngle Category SUccessfully", echo.Map{"category": category})
}

// Delete
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /category/delete-category/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		h.log.Error().Err(err).Str("category_id", c.Param("id")).Msg("delete category failed")
		return failure(c, http.StatusInternalServerError, "error while deleting category", err)
	}
	return success(c, http.StatusOK, "Categry Deleted Successfully", nil)
}
