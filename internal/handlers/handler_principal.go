package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
	"github.com/subhoajk39-commits/invvvoice/internal/middleware"
)

// principalHandler handles HTTP requests related to principals.
type principalHandler struct {
	principalService portssvc.PrincipalSvcFacade
}

// registerPrincipalRoutes registers routes related to principals.
func registerPrincipalRoutes(rg *gin.RouterGroup, principalService portssvc.PrincipalSvcFacade) {
	h := &principalHandler{principalService: principalService}

	principals := rg.Group("/principals")
	{
		principals.POST("", h.createPrincipal)
		principals.GET("", h.listPrincipals)
		principals.GET("/:id", h.getPrincipal)
		principals.PATCH("/:id/role", h.updatePrincipalRole)
		principals.DELETE("/:id", h.deletePrincipal)
	}
}

// createPrincipal godoc
// @Summary Provision a principal
// @Description Admins provision standard users; super admins may assign any role.
// @Tags principals
// @Accept json
// @Produce json
// @Param principal body dto.CreatePrincipalRequest true "Principal details"
// @Success 201 {object} dto.PrincipalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /principals [post]
func (h *principalHandler) createPrincipal(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.CreatePrincipalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	principal, err := h.principalService.CreatePrincipal(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create principal")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Principal created", slog.String("created_principal_id", principal.PrincipalID))
	c.JSON(http.StatusCreated, dto.ToPrincipalResponse(principal))
}

// listPrincipals godoc
// @Summary List principals
// @Description Lists the principals visible to the caller, ordered by username.
// @Tags principals
// @Produce json
// @Param search query string false "Username substring"
// @Param role query string false "Role filter (super_admin, admin, user)"
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListPrincipalsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /principals [get]
func (h *principalHandler) listPrincipals(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var params dto.ListPrincipalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	principals, err := h.principalService.ListPrincipals(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list principals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPrincipalsResponse(principals))
}

// getPrincipal godoc
// @Summary Get a principal
// @Tags principals
// @Produce json
// @Param id path string true "Principal ID"
// @Success 200 {object} dto.PrincipalResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /principals/{id} [get]
func (h *principalHandler) getPrincipal(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	principal, err := h.principalService.GetPrincipal(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve principal")
		return
	}
	c.JSON(http.StatusOK, dto.ToPrincipalResponse(principal))
}

// updatePrincipalRole godoc
// @Summary Change a principal's role
// @Description Super admins only.
// @Tags principals
// @Accept json
// @Produce json
// @Param id path string true "Principal ID"
// @Param role body dto.UpdatePrincipalRoleRequest true "New role"
// @Success 200 {object} dto.PrincipalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /principals/{id}/role [patch]
func (h *principalHandler) updatePrincipalRole(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.UpdatePrincipalRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	principal, err := h.principalService.UpdatePrincipalRole(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update role")
		return
	}
	c.JSON(http.StatusOK, dto.ToPrincipalResponse(principal))
}

// deletePrincipal godoc
// @Summary Delete a principal
// @Description Removes a principal together with the projects and work it owns.
// @Tags principals
// @Param id path string true "Principal ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /principals/{id} [delete]
func (h *principalHandler) deletePrincipal(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.principalService.DeletePrincipal(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete principal")
		return
	}
	c.Status(http.StatusNoContent)
}
