package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/SscSPs/bookkeeping_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.TransactionSvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.TransactionSvc) *accountHandler {
	return &accountHandler{
		accountService: as,
		ledgerService:  ls,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.TransactionSvc) {
	h := newAccountHandler(accountService, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.GET("/:id/transactions", h.listTransactionsByAccount)
	}
}

// createAccount handles POST /accounts.
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to create account",
		slog.String("account_name", req.Name),
		slog.String("account_type", req.AccountType))

	id, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateAccountResponse{ID: id})
}

// listAccounts handles GET /accounts.
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount handles GET /accounts/:id.
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID, ok := accountIDParam(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount handles PUT /accounts/:id.
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountID, ok := accountIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to update account",
		slog.Int64("account_id", accountID),
		slog.Bool("is_active", req.Active()))

	rows, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateAccountResponse{RowsAffected: rows})
}

// listTransactionsByAccount handles GET /accounts/:id/transactions.
func (h *accountHandler) listTransactionsByAccount(c *gin.Context) {
	accountID, ok := accountIDParam(c)
	if !ok {
		return
	}

	txns, err := h.ledgerService.ListTransactionsByAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ListTransactionsResponse{Transactions: make([]dto.TransactionResponse, len(txns))}
	for i := range txns {
		resp.Transactions[i] = dto.ToTransactionResponse(&txns[i])
	}
	c.JSON(http.StatusOK, resp)
}

// accountIDParam parses the :id path segment, writing a 400 when it is not a positive integer.
func accountIDParam(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondBindError(c, fmt.Errorf("account id must be a positive integer, got %q", raw))
		return 0, false
	}
	return id, true
}
