package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// categoryHandler handles HTTP requests related to billing categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

// registerCategoryRoutes registers category routes, nested under projects for create and list.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := &categoryHandler{categoryService: categoryService}

	rg.POST("/projects/:id/categories", h.createCategory)
	rg.GET("/projects/:id/categories", h.listCategories)

	categories := rg.Group("/categories")
	{
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}
}

// createCategory godoc
// @Summary Create a category
// @Description Adds a billing category to a project. The currency defaults to USD.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Name already used in this project"
// @Security BearerAuth
// @Router /projects/{id}/categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := h.categoryService.CreateCategory(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List a project's categories
// @Tags categories
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} dto.CategoryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	categories, err := h.categoryService.ListCategories(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// updateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := h.categoryService.UpdateCategory(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Work records of the category become uncategorized.
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.categoryService.DeleteCategory(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}
