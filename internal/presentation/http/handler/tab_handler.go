package handler

import (
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/application/service"
	"github.com/hardwarepos/pos-api/internal/application/workspace"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"github.com/hardwarepos/pos-api/internal/presentation/http/dto/request"
	"github.com/hardwarepos/pos-api/internal/presentation/http/dto/response"
)

// TabHandler exposes the terminal workspace: open tabs, draft lines, review
// and commit. Drafts live in memory; only Commit touches storage.
type TabHandler struct {
	tabs       *workspace.Manager
	stock      *service.StockService
	settlement *service.SettlementService
	operatorID uuid.UUID
}

// NewTabHandler creates a new tab handler
func NewTabHandler(tabs *workspace.Manager, stock *service.StockService, settlement *service.SettlementService, operatorID uuid.UUID) *TabHandler {
	return &TabHandler{tabs: tabs, stock: stock, settlement: settlement, operatorID: operatorID}
}

// List handles listing all open tabs
func (h *TabHandler) List(c *gin.Context) {
	response.OK(c, "Tabs retrieved successfully", h.tabs.List())
}

// Open handles opening a new tab
func (h *TabHandler) Open(c *gin.Context) {
	var req request.OpenTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	kind := enum.TransactionKindSale
	if req.Kind == "purchase" {
		kind = enum.TransactionKindPurchase
	}

	id, cart := h.tabs.Open(kind)
	response.Created(c, "Tab opened successfully", response.NewCartView(id, cart))
}

// Get handles fetching one tab's draft
func (h *TabHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	cart, err := h.tabs.Get(id)
	if err != nil {
		response.NotFound(c, "Tab not found")
		return
	}
	response.OK(c, "Tab retrieved successfully", response.NewCartView(id, cart))
}

// Activate handles switching the active tab
func (h *TabHandler) Activate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.tabs.SetActive(id); err != nil {
		response.NotFound(c, "Tab not found")
		return
	}
	response.OK(c, "Tab activated successfully", h.tabs.List())
}

// Close handles discarding a tab
func (h *TabHandler) Close(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.tabs.Close(id); err != nil {
		response.NotFound(c, "Tab not found")
		return
	}
	response.OK(c, "Tab closed successfully", h.tabs.List())
}

// AddLine handles drafting a line onto a tab
func (h *TabHandler) AddLine(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	cart, err := h.tabs.Get(id)
	if err != nil {
		response.NotFound(c, "Tab not found")
		return
	}

	if cart.Kind() == enum.TransactionKindPurchase {
		h.addPurchaseLine(c, id, cart)
		return
	}
	h.addSaleLine(c, id, cart)
}

func (h *TabHandler) addSaleLine(c *gin.Context, id uuid.UUID, cart *workspace.Cart) {
	var req request.AddSaleLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	batch, granted, err := h.stock.Reserve(c.Request.Context(), req.BatchID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	if batch.Status != enum.BatchStatusActive || batch.ExpiredAsOf(time.Now()) {
		response.BadRequest(c, "Batch is not sellable")
		return
	}
	product, err := h.stock.GetProduct(c.Request.Context(), batch.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}

	unitPrice := batch.SellingPrice
	if req.UnitPrice != nil {
		unitPrice = int64(math.Round(*req.UnitPrice * 100))
	}

	if _, err := cart.AddLine(workspace.Line{
		BatchID:     batch.ID,
		ProductID:   product.ID,
		Title:       product.Title,
		BatchNumber: batch.BatchNumber,
		Quantity:    granted,
		UnitPrice:   unitPrice,
		MinPrice:    batch.MinSellingPrice,
		ListPrice:   batch.SellingPrice,
		Available:   batch.CurrentQuantity,
		ExpiryDate:  batch.ExpiryDate,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line added successfully", response.NewCartView(id, cart))
}

func (h *TabHandler) addPurchaseLine(c *gin.Context, id uuid.UUID, cart *workspace.Cart) {
	var req request.AddPurchaseLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.stock.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if _, err := cart.AddLine(workspace.Line{
		BatchID:         uuid.New(),
		ProductID:       product.ID,
		Title:           product.Title,
		BatchNumber:     req.BatchNumber,
		Quantity:        req.Quantity,
		UnitPrice:       req.BuyingPriceCents(),
		SellingPrice:    req.SellingPriceCents(),
		MinSellingPrice: req.MinSellingPriceCents(),
		ExpiryDate:      req.ExpiryDate,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line added successfully", response.NewCartView(id, cart))
}

// UpdateLine handles quantity/price edits on a drafted line
func (h *TabHandler) UpdateLine(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	batchID, ok := parseUUIDParam(c, "batchId")
	if !ok {
		return
	}
	cart, err := h.tabs.Get(id)
	if err != nil {
		response.NotFound(c, "Tab not found")
		return
	}

	var req request.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Price first: a quantity edit may remove the line, and a removal must
	// not fail the request halfway through.
	if req.UnitPrice != nil {
		if err := cart.SetUnitPrice(batchID, int64(math.Round(*req.UnitPrice*100))); err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.Quantity != nil {
		if _, err := cart.SetQuantity(batchID, *req.Quantity); err != nil {
			response.Error(c, err)
			return
		}
	}
	response.OK(c, "Line updated successfully", response.NewCartView(id, cart))
}

// RemoveLine handles dropping a drafted line
func (h *TabHandler) RemoveLine(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	batchID, ok := parseUUIDParam(c, "batchId")
	if !ok {
		return
	}
	cart, err := h.tabs.Get(id)
	if err != nil {
		response.NotFound(c, "Tab not found")
		return
	}
	if err := cart.RemoveLine(batchID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line removed successfully", response.NewCartView(id, cart))
}

// Review handles freezing a draft for confirmation
func (h *TabHandler) Review(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	cart, err := h.tabs.Get(id)
	if err != nil {
		response.NotFound(c, "Tab not found")
		return
	}
	if err := cart.Review(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, "Tab ready for settlement", response.NewCartView(id, cart))
}

// Reopen handles returning a reviewed or failed draft to editing
func (h *TabHandler) Reopen(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	cart, err := h.tabs.Get(id)
	if err != nil {
		response.NotFound(c, "Tab not found")
		return
	}
	if err := cart.Reopen(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, "Tab reopened for editing", response.NewCartView(id, cart))
}

// Commit handles settling a reviewed tab
func (h *TabHandler) Commit(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	cart, err := h.tabs.Get(id)
	if err != nil {
		response.NotFound(c, "Tab not found")
		return
	}

	var req request.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tender := service.TenderInput{
		Cash:          req.Tender.CashCents(),
		Card:          req.Tender.CardCents(),
		CardReference: req.Tender.CardReference,
		Bank:          req.Tender.BankCents(),
		BankReference: req.Tender.BankReference,
		Cheque:        req.Tender.ChequeCents(),
		ChequeNumber:  req.Tender.ChequeNumber,
	}
	if req.Tender.ChequeDueDate != nil {
		due, err := time.Parse("2006-01-02", *req.Tender.ChequeDueDate)
		if err != nil {
			response.BadRequest(c, "Invalid cheque due date, expected YYYY-MM-DD")
			return
		}
		tender.ChequeDueDate = &due
	}

	input := &service.CommitInput{
		Cart:       cart,
		UserID:     h.operatorID,
		CustomerID: req.CustomerID,
		SupplierID: req.SupplierID,
		Discount:   req.DiscountCents(),
		Tender:     tender,
		Notes:      req.Notes,
	}
	if req.NewCustomer != nil {
		input.NewCustomer = &service.NewCustomerInput{
			Name:   req.NewCustomer.Name,
			Mobile: req.NewCustomer.Mobile,
			City:   req.NewCustomer.City,
		}
	}

	txn, err := h.settlement.Commit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	// The settled tab is done; drop it so the workspace stays tidy.
	_ = h.tabs.Close(id)

	response.Created(c, "Transaction committed successfully", txn)
}
