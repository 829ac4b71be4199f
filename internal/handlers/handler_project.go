package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// maxAttachmentSize bounds project attachment uploads.
const maxAttachmentSize = 10 << 20

// projectHandler handles HTTP requests related to projects.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

// registerProjectRoutes registers routes related to projects.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := &projectHandler{projectService: projectService}

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PUT("/:id", h.updateProject)
		projects.DELETE("/:id", h.deleteProject)
		projects.POST("/:id/attachment", h.uploadAttachment)
	}
}

// createProject godoc
// @Summary Create a project
// @Description The caller becomes creator and manager. Admins and super admins only.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	project, err := h.projectService.CreateProject(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List projects
// @Description Lists the projects visible to the caller, newest start date first.
// @Tags projects
// @Produce json
// @Success 200 {array} dto.ProjectResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	projects, err := h.projectService.ListProjects(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProjectResponse(projects))
}

// getProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	project, err := h.projectService.GetProject(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// updateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	project, err := h.projectService.UpdateProject(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// deleteProject godoc
// @Summary Delete a project
// @Description Deletes the project with its categories and work records. Invoices keep their snapshot.
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.projectService.DeleteProject(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}

// uploadAttachment godoc
// @Summary Upload a project attachment
// @Description Replaces the project's attachment. Multipart field "file", at most 10 MiB.
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID"
// @Param file formData file true "Attachment"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/attachment [post]
func (h *projectHandler) uploadAttachment(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		respondBindError(c, err)
		return
	}
	if header.Size > maxAttachmentSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: fmt.Sprintf("Attachment exceeds %d bytes", maxAttachmentSize)})
		return
	}
	file, err := header.Open()
	if err != nil {
		respondBindError(c, err)
		return
	}
	defer file.Close()
	content, err := io.ReadAll(io.LimitReader(file, maxAttachmentSize))
	if err != nil {
		respondBindError(c, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}
	project, err := h.projectService.UploadAttachment(c.Request.Context(), actor, c.Param("id"), header.Filename, content, contentType)
	if err != nil {
		respondError(c, err, "Failed to upload attachment")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}
