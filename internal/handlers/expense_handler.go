package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/lumina-api/internal/services"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// @Summary List Expenses
// @Tags Expenses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search query string false "Matches description, category or notes"
// @Param category query string false "Filter by category"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) Index(c *gin.Context) {
	query := listQuery(c, "category")
	expenses, total, err := h.expenseService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses":   expenses,
		"pagination": pagination(query, total),
	})
}

// @Summary Expense categories
// @Tags Expenses
// @Produce json
// @Success 200 {object} map[string][]string
// @Security BearerAuth
// @Router /expenses/categories [get]
func (h *ExpenseHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.expenseService.Categories()})
}

// @Summary Get Expense
// @Tags Expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} models.Expense
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Show(c *gin.Context) {
	expense, err := h.expenseService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// @Summary Create Expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body services.ExpenseInput true "Expense"
// @Success 201 {object} models.Expense
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var input services.ExpenseInput
	if !bindInput(c, "expense", &input) {
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// @Summary Update Expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body services.ExpenseInput true "Expense"
// @Success 200 {object} models.Expense
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	var input services.ExpenseInput
	if !bindInput(c, "expense", &input) {
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// @Summary Delete Expense
// @Tags Expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} map[string]string
// @Failure 428 {object} map[string]string
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	if err := h.expenseService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
