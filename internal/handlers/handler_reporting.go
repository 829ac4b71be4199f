package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.dashboard)
		reports.GET("/principals/:id", h.principalReport)
		reports.GET("/principals/:id/export", h.exportPrincipalReport)
	}
}

// dashboard godoc
// @Summary Manager dashboard
// @Description Summary statistics over the caller's scope with project, team and invoice totals.
// @Tags reports
// @Produce json
// @Param projectID query string false "Project ID"
// @Param principalID query string false "Principal ID"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param revenueMonth query string false "YYYY-MM"
// @Success 200 {object} dto.DashboardResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var params dto.WorkRecordFilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	dashboard, err := h.reportingService.Dashboard(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}

// principalReport godoc
// @Summary Principal report
// @Description Activity of one principal within the caller's scope.
// @Tags reports
// @Produce json
// @Param id path string true "Principal ID"
// @Success 200 {object} dto.PrincipalReportResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/principals/{id} [get]
func (h *reportingHandler) principalReport(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	report, err := h.reportingService.PrincipalReport(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build report")
		return
	}
	c.JSON(http.StatusOK, dto.ToPrincipalReportResponse(report))
}

// exportPrincipalReport godoc
// @Summary Export a principal report
// @Description Downloads the principal report as a file. Only json is supported.
// @Tags reports
// @Produce json
// @Param id path string true "Principal ID"
// @Param format query string false "Export format" Enums(json)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/principals/{id}/export [get]
func (h *reportingHandler) exportPrincipalReport(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if format := c.DefaultQuery("format", "json"); format != "json" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported export format: " + format})
		return
	}
	report, err := h.reportingService.PrincipalReport(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build report")
		return
	}
	content, err := json.MarshalIndent(dto.ToPrincipalReportResponse(report), "", "  ")
	if err != nil {
		respondError(c, err, "Failed to export report")
		return
	}
	sendAttachment(c, report.Principal.Username+"_report.json", "application/json", content)
}
