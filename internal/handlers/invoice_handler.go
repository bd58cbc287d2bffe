package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/lumina-api/internal/services"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
	printService   *services.PrintService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, printService *services.PrintService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, printService: printService}
}

// @Summary List Invoices
// @Tags Invoices
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search query string false "Matches number, client or project"
// @Param status query string false "pending, partial or paid"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) Index(c *gin.Context) {
	query := listQuery(c, "status")
	invoices, total, err := h.invoiceService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices":   invoices,
		"pagination": pagination(query, total),
	})
}

// @Summary Next invoice number
// @Tags Invoices
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /invoices/next-number [get]
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	number, err := h.invoiceService.NextNumber(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoiceNo": number})
}

// @Summary Get Invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} models.Invoice
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Show(c *gin.Context) {
	invoice, err := h.invoiceService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// @Summary Create Invoice
// @Description New invoices are pending unless paymentStatus is paid
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body services.InvoiceInput true "Invoice"
// @Success 201 {object} models.Invoice
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input services.InvoiceInput
	if !bindInput(c, "invoice", &input) {
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"invoice": invoice})
}

// @Summary Update Invoice
// @Description Totals are recomputed; paymentStatus overrides the current status
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body services.InvoiceInput true "Invoice"
// @Success 200 {object} models.Invoice
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	var input services.InvoiceInput
	if !bindInput(c, "invoice", &input) {
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// @Summary Delete Invoice
// @Description Payments recorded against the invoice are kept
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} map[string]string
// @Failure 428 {object} map[string]string
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	if err := h.invoiceService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}

// @Summary Invoice payments
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invoices/{id}/payments [get]
func (h *InvoiceHandler) Payments(c *gin.Context) {
	payments, err := h.invoiceService.Payments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// @Summary Recalculate Invoice
// @Description Rebuilds paid, balance and status from the recorded payments
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} models.Invoice
// @Security BearerAuth
// @Router /invoices/{id}/recalculate [post]
func (h *InvoiceHandler) Recalculate(c *gin.Context) {
	invoice, err := h.invoiceService.Recalculate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// @Summary Print Invoice
// @Tags Invoices
// @Produce html
// @Param id path string true "Invoice ID"
// @Success 200 {string} string "HTML document"
// @Security BearerAuth
// @Router /invoices/{id}/print [get]
func (h *InvoiceHandler) Print(c *gin.Context) {
	page, err := h.printService.InvoiceHTML(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	renderHTML(c, page)
}

// @Summary Invoice PDF
// @Description Native PDF by default; engine=wkhtmltopdf converts the print view instead
// @Tags Invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Param engine query string false "native or wkhtmltopdf"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *gin.Context) {
	invoice, err := h.invoiceService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	sendPDF(c, h.printService, invoice.InvoiceNo+".pdf",
		func(ctx context.Context) ([]byte, error) { return h.printService.InvoiceHTML(ctx, invoice.ID) },
		func(ctx context.Context) ([]byte, error) { return h.printService.InvoicePDF(ctx, invoice.ID) })
}
