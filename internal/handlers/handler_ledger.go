package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/SscSPs/bookkeeping_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests that record ledger transactions.
type ledgerHandler struct {
	ledgerService portssvc.TransactionSvc
}

// RegisterLedgerRoutes registers routes related to transactions.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.TransactionSvc) {
	h := &ledgerHandler{ledgerService: ledgerService}

	rg.POST("/transactions", h.recordTransaction)
}

// recordTransaction handles POST /transactions.
func (h *ledgerHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to record transaction",
		slog.Int64("debit_account_id", req.DebitAccountID),
		slog.Int64("credit_account_id", req.CreditAccountID),
		slog.String("amount", req.Amount.String()))

	id, err := h.ledgerService.RecordTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RecordTransactionResponse{ID: id})
}
