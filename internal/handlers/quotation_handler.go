package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/lumina-api/internal/services"
)

type QuotationHandler struct {
	quotationService *services.QuotationService
	invoiceService   *services.InvoiceService
	printService     *services.PrintService
}

func NewQuotationHandler(quotationService *services.QuotationService, invoiceService *services.InvoiceService, printService *services.PrintService) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		invoiceService:   invoiceService,
		printService:     printService,
	}
}

// @Summary List Quotations
// @Tags Quotations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search query string false "Matches number, client or project"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /quotations [get]
func (h *QuotationHandler) Index(c *gin.Context) {
	query := listQuery(c)
	quotations, total, err := h.quotationService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotations": quotations,
		"pagination": pagination(query, total),
	})
}

// @Summary Next quotation number
// @Tags Quotations
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /quotations/next-number [get]
func (h *QuotationHandler) NextNumber(c *gin.Context) {
	number, err := h.quotationService.NextNumber(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotationNo": number})
}

// @Summary Get Quotation
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} models.Quotation
// @Security BearerAuth
// @Router /quotations/{id} [get]
func (h *QuotationHandler) Show(c *gin.Context) {
	quotation, err := h.quotationService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotation": quotation})
}

// @Summary Create Quotation
// @Description Blank items are dropped and every amount is recomputed
// @Tags Quotations
// @Accept json
// @Produce json
// @Param request body services.QuotationInput true "Quotation"
// @Success 201 {object} models.Quotation
// @Security BearerAuth
// @Router /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	var input services.QuotationInput
	if !bindInput(c, "quotation", &input) {
		return
	}

	quotation, err := h.quotationService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"quotation": quotation})
}

// @Summary Update Quotation
// @Tags Quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body services.QuotationInput true "Quotation"
// @Success 200 {object} models.Quotation
// @Security BearerAuth
// @Router /quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	var input services.QuotationInput
	if !bindInput(c, "quotation", &input) {
		return
	}

	quotation, err := h.quotationService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotation": quotation})
}

// @Summary Delete Quotation
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} map[string]string
// @Failure 428 {object} map[string]string
// @Security BearerAuth
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	if err := h.quotationService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quotation deleted"})
}

// @Summary Convert Quotation
// @Description Creates a pending invoice from the quotation's client fields and items
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 201 {object} models.Invoice
// @Security BearerAuth
// @Router /quotations/{id}/convert [post]
func (h *QuotationHandler) Convert(c *gin.Context) {
	invoice, err := h.invoiceService.ConvertQuotation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"invoice": invoice})
}

// @Summary Print Quotation
// @Tags Quotations
// @Produce html
// @Param id path string true "Quotation ID"
// @Success 200 {string} string "HTML document"
// @Security BearerAuth
// @Router /quotations/{id}/print [get]
func (h *QuotationHandler) Print(c *gin.Context) {
	page, err := h.printService.QuotationHTML(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	renderHTML(c, page)
}

// @Summary Quotation PDF
// @Description Native PDF by default; engine=wkhtmltopdf converts the print view instead
// @Tags Quotations
// @Produce application/pdf
// @Param id path string true "Quotation ID"
// @Param engine query string false "native or wkhtmltopdf"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /quotations/{id}/pdf [get]
func (h *QuotationHandler) PDF(c *gin.Context) {
	ctx := c.Request.Context()
	quotation, err := h.quotationService.FindByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	sendPDF(c, h.printService, quotation.QuotationNo+".pdf",
		func(ctx context.Context) ([]byte, error) { return h.printService.QuotationHTML(ctx, quotation.ID) },
		func(ctx context.Context) ([]byte, error) { return h.printService.QuotationPDF(ctx, quotation.ID) })
}

type renderFunc func(ctx context.Context) ([]byte, error)

// sendPDF writes a document PDF. engine=wkhtmltopdf renders the HTML print view through
// the external binary; anything else draws it natively.
func sendPDF(c *gin.Context, printService *services.PrintService, filename string, page, native renderFunc) {
	ctx := c.Request.Context()
	var (
		data []byte
		err  error
	)
	if c.Query("engine") == "wkhtmltopdf" {
		var body []byte
		if body, err = page(ctx); err == nil {
			data, err = printService.RenderPDF(body)
		}
	} else {
		data, err = native(ctx)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, filename, "application/pdf", data)
}
