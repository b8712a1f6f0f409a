package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/application/service"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"github.com/hardwarepos/pos-api/internal/domain/repository"
	"github.com/hardwarepos/pos-api/internal/presentation/http/dto/response"
	"github.com/hardwarepos/pos-api/pkg/pagination"
)

// TransactionHandler serves the committed ledger
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List handles listing transactions with optional kind/status/party filters
func (h *TransactionHandler) List(c *gin.Context) {
	page, perPage := pageParams(c)
	filter := repository.TransactionFilter{Page: page, PageSize: perPage}

	switch c.Query("kind") {
	case "sale":
		kind := enum.TransactionKindSale
		filter.Kind = &kind
	case "purchase":
		kind := enum.TransactionKindPurchase
		filter.Kind = &kind
	}
	switch c.Query("status") {
	case "pending":
		status := enum.TransactionStatusPending
		filter.Status = &status
	case "paid":
		status := enum.TransactionStatusPaid
		filter.Status = &status
	}
	if raw := c.Query("customer_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.CustomerID = &id
		}
	}
	if raw := c.Query("supplier_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.SupplierID = &id
		}
	}

	txns, total, err := h.transactionService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult[entity.Transaction](
		txns, pagination.NewPagination(page, perPage, total))
	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Get handles fetching one transaction with lines, payments and parties
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	txn, err := h.transactionService.GetWithDetails(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transaction retrieved successfully", txn)
}
