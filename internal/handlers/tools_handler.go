package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sjperalta/lumina-api/internal/ledger"
)

type ToolsHandler struct{}

func NewToolsHandler() *ToolsHandler {
	return &ToolsHandler{}
}

// @Summary Amount in words
// @Description Spells an amount in riyals and halalas and formats it as currency
// @Tags Tools
// @Produce json
// @Param amount query string true "Amount, e.g. 1500.50"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /tools/amount-in-words [get]
func (h *ToolsHandler) AmountInWords(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a number"})
		return
	}

	value := amount.InexactFloat64()
	words, err := ledger.AmountInWords(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"amount":    amount.StringFixed(2),
		"words":     words,
		"formatted": ledger.FormatCurrency(value),
	})
}
