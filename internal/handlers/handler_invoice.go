package handlers

import (
	"log/slog"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
	"github.com/subhoajk39-commits/invvvoice/internal/middleware"
)

const (
	headerInvoiceID      = "X-Invoice-ID"
	headerInvoiceWarning = "X-Invoice-Warning"
	zipContentType       = "application/zip"
	bulkArchiveName      = "invoices.zip"
)

// invoiceHandler handles invoice synthesis and the invoice archive.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := &invoiceHandler{invoiceService: invoiceService}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("/generate", h.generateInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id/download", h.downloadInvoice)
		invoices.DELETE("/:id", h.deleteInvoice)
		invoices.POST("/bulk-delete", h.bulkDelete)
		invoices.POST("/bulk-download", h.bulkDownload)
	}
}

// sendAttachment streams content as a file download.
func sendAttachment(c *gin.Context, fileName, contentType string, content []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	c.Data(http.StatusOK, contentType, content)
}

// generateInvoice godoc
// @Summary Generate an invoice
// @Description Renders the filtered work records visible to the caller into an xlsx invoice and archives it.
// @Description X-Invoice-ID carries the archived invoice id. X-Invoice-Warning is set when archiving failed.
// @Tags invoices
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param selection body dto.GenerateInvoiceRequest true "Record selection"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "No records to invoice"
// @Security BearerAuth
// @Router /invoices/generate [post]
func (h *invoiceHandler) generateInvoice(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	generated, err := h.invoiceService.GenerateInvoice(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to generate invoice")
		return
	}

	if generated.Artifact != nil {
		c.Header(headerInvoiceID, generated.Artifact.InvoiceID)
	}
	if generated.PersistErr != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("invoice generated but not archived",
			slog.String("file", generated.FileName), slog.Any("error", generated.PersistErr))
		c.Header(headerInvoiceWarning, "invoice was generated but could not be archived")
	}
	sendAttachment(c, generated.FileName, generated.ContentType, generated.Content)
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists archived invoices visible to the caller, newest first.
// @Tags invoices
// @Produce json
// @Param projectID query string false "Project ID"
// @Param month query string false "YYYY-MM"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// downloadInvoice godoc
// @Summary Download an invoice
// @Tags invoices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Invoice ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/download [get]
func (h *invoiceHandler) downloadInvoice(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	artifact, content, err := h.invoiceService.DownloadInvoice(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to download invoice")
		return
	}
	sendAttachment(c, artifact.FileName, domain.InvoiceContentType, content)
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Removes the archived file, then the invoice record.
// @Tags invoices
// @Param id path string true "Invoice ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// bulkDelete godoc
// @Summary Delete several invoices
// @Description Invoices outside the caller's scope or failing to delete are counted as skipped.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoices body dto.BulkInvoiceRequest true "Invoice IDs"
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/bulk-delete [post]
func (h *invoiceHandler) bulkDelete(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.BulkInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	deleted, skipped, err := h.invoiceService.BulkDeleteInvoices(c.Request.Context(), actor, req.InvoiceIDs)
	if err != nil {
		respondError(c, err, "Failed to delete invoices")
		return
	}
	c.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: deleted, Skipped: skipped})
}

// bulkDownload godoc
// @Summary Download several invoices
// @Description Returns a zip archive of the requested invoices visible to the caller.
// @Tags invoices
// @Accept json
// @Produce application/zip
// @Param invoices body dto.BulkInvoiceRequest true "Invoice IDs"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "None of the invoices is visible"
// @Security BearerAuth
// @Router /invoices/bulk-download [post]
func (h *invoiceHandler) bulkDownload(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.BulkInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	archive, err := h.invoiceService.BulkDownloadInvoices(c.Request.Context(), actor, req.InvoiceIDs)
	if err != nil {
		respondError(c, err, "Failed to download invoices")
		return
	}
	sendAttachment(c, bulkArchiveName, zipContentType, archive)
}
