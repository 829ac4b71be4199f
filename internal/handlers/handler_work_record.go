package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// workRecordHandler handles work submission, slots and the work aggregator.
type workRecordHandler struct {
	workRecordService portssvc.WorkRecordSvcFacade
	reportingService  portssvc.ReportingSvc
}

// registerWorkRecordRoutes registers work record and slot routes.
func registerWorkRecordRoutes(rg *gin.RouterGroup, workRecordService portssvc.WorkRecordSvcFacade, reportingService portssvc.ReportingSvc) {
	h := &workRecordHandler{workRecordService: workRecordService, reportingService: reportingService}

	records := rg.Group("/work-records")
	{
		records.POST("", h.submitWork)
		records.GET("", h.aggregate)
		records.DELETE("/:id", h.deleteWorkRecord)
	}

	slots := rg.Group("/slots")
	{
		slots.GET("", h.listOpenSlots)
		slots.POST("", h.createSlots)
		slots.POST("/fill", h.fillSlots)
	}
}

// submitWork godoc
// @Summary Submit work
// @Description Records a batch of work for the caller. Lines that cannot be recorded are skipped and counted.
// @Tags work-records
// @Accept json
// @Produce json
// @Param submission body dto.SubmitWorkRequest true "Work entries"
// @Success 201 {object} dto.SubmitWorkResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Project not visible"
// @Security BearerAuth
// @Router /work-records [post]
func (h *workRecordHandler) submitWork(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.SubmitWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	created, skipped, err := h.workRecordService.SubmitWork(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to submit work")
		return
	}
	c.JSON(http.StatusCreated, dto.SubmitWorkResponse{
		Created: dto.ToListWorkRecordResponse(created),
		Skipped: skipped,
	})
}

// aggregate godoc
// @Summary List work records
// @Description Returns a page of the work records visible to the caller and a summary of the whole filtered set.
// @Tags work-records
// @Produce json
// @Param projectID query string false "Project ID"
// @Param principalID query string false "Principal ID"
// @Param project query string false "Project name contains"
// @Param q query string false "Free text search"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param revenueMonth query string false "YYYY-MM"
// @Param pageSize query int false "Page size" default(50)
// @Param pageToken query string false "Token of the next page"
// @Success 200 {object} dto.AggregateResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /work-records [get]
func (h *workRecordHandler) aggregate(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var params dto.WorkRecordFilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.reportingService.Aggregate(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list work records")
		return
	}
	c.JSON(http.StatusOK, dto.ToAggregateResponse(result))
}

// deleteWorkRecord godoc
// @Summary Delete a work record
// @Tags work-records
// @Param id path string true "Work record ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /work-records/{id} [delete]
func (h *workRecordHandler) deleteWorkRecord(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.workRecordService.DeleteWorkRecord(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete work record")
		return
	}
	c.Status(http.StatusNoContent)
}

// listOpenSlots godoc
// @Summary List open slots
// @Description Lists unclaimed slots in projects visible to the caller.
// @Tags slots
// @Produce json
// @Success 200 {array} dto.WorkRecordResponse
// @Security BearerAuth
// @Router /slots [get]
func (h *workRecordHandler) listOpenSlots(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	slots, err := h.workRecordService.ListOpenSlots(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to list slots")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWorkRecordDetailResponse(slots))
}

// createSlots godoc
// @Summary Create slots
// @Description Pre-creates unassigned slots in a project. Managers only.
// @Tags slots
// @Accept json
// @Produce json
// @Param slots body dto.CreateSlotsRequest true "Project and count"
// @Success 201 {array} dto.WorkRecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /slots [post]
func (h *workRecordHandler) createSlots(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.CreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	slots, err := h.workRecordService.CreateSlots(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create slots")
		return
	}
	c.JSON(http.StatusCreated, dto.ToListWorkRecordResponse(slots))
}

// fillSlots godoc
// @Summary Fill slots
// @Description Claims open slots for the caller. Slots that cannot be claimed are counted as skipped.
// @Tags slots
// @Accept json
// @Produce json
// @Param slots body dto.FillSlotsRequest true "Slots to claim"
// @Success 200 {object} dto.FillSlotsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /slots/fill [post]
func (h *workRecordHandler) fillSlots(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.FillSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	filled, skipped, err := h.workRecordService.FillSlots(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to fill slots")
		return
	}
	c.JSON(http.StatusOK, dto.FillSlotsResponse{Filled: filled, Skipped: skipped})
}
