package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/lumina-api/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	printService   *services.PrintService
}

func NewPaymentHandler(paymentService *services.PaymentService, printService *services.PrintService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, printService: printService}
}

// @Summary List Payments
// @Tags Payments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search query string false "Matches invoice number or method"
// @Param invoice_id query string false "Filter by invoice"
// @Param method query string false "Filter by method"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) Index(c *gin.Context) {
	query := listQuery(c, "invoice_id", "method")
	payments, total, err := h.paymentService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": pagination(query, total),
	})
}

// @Summary Payment methods
// @Tags Payments
// @Produce json
// @Success 200 {object} map[string][]string
// @Security BearerAuth
// @Router /payments/methods [get]
func (h *PaymentHandler) Methods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": h.paymentService.Methods()})
}

// @Summary Get Payment
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} models.Payment
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *PaymentHandler) Show(c *gin.Context) {
	payment, err := h.paymentService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// @Summary Record Payment
// @Description Stores the payment and applies it to the invoice when that invoice exists
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body services.PaymentInput true "Payment"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var input services.PaymentInput
	if !bindInput(c, "payment", &input) {
		return
	}

	payment, invoice, err := h.paymentService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment, "invoice": invoice})
}

// @Summary Update Payment
// @Description Edits the payment only; use /invoices/{id}/recalculate to rebuild the invoice
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body services.PaymentInput true "Payment"
// @Success 200 {object} models.Payment
// @Security BearerAuth
// @Router /payments/{id} [put]
func (h *PaymentHandler) Update(c *gin.Context) {
	var input services.PaymentInput
	if !bindInput(c, "payment", &input) {
		return
	}

	payment, err := h.paymentService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// @Summary Delete Payment
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} map[string]string
// @Failure 428 {object} map[string]string
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	if err := h.paymentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}

// @Summary Print Receipt
// @Tags Payments
// @Produce html
// @Param id path string true "Payment ID"
// @Success 200 {string} string "HTML document"
// @Security BearerAuth
// @Router /payments/{id}/print [get]
func (h *PaymentHandler) Print(c *gin.Context) {
	page, err := h.printService.ReceiptHTML(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	renderHTML(c, page)
}
