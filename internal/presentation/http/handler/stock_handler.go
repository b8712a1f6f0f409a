package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hardwarepos/pos-api/internal/application/service"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/presentation/http/dto/request"
	"github.com/hardwarepos/pos-api/internal/presentation/http/dto/response"
)

// StockHandler handles catalog and inventory HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// CreateProduct handles registering a catalog item
func (h *StockHandler) CreateProduct(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product := &entity.Product{
		Title:     req.Title,
		Note:      req.Note,
		Code:      req.Code,
		Barcode:   req.Barcode,
		HasExpiry: req.HasExpiry,
		UnitID:    req.UnitID,
	}
	if err := h.stockService.CreateProduct(c.Request.Context(), product); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created successfully", product)
}

// ListProducts handles the billing search box
func (h *StockHandler) ListProducts(c *gin.Context) {
	products, err := h.stockService.SearchProducts(c.Request.Context(), c.Query("search"), 20)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}

// GetProduct handles fetching one catalog item
func (h *StockHandler) GetProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.stockService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// ListBatches handles listing a product's stock batches. With ?sellable=true
// only active batches with stock on hand are returned.
func (h *StockHandler) ListBatches(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var (
		batches []entity.StockBatch
		err     error
	)
	if c.Query("sellable") == "true" {
		batches, err = h.stockService.SellableBatches(c.Request.Context(), id)
	} else {
		batches, err = h.stockService.ListBatches(c.Request.Context(), id)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Batches retrieved successfully", batches)
}

// GetBatch handles fetching one batch
func (h *StockHandler) GetBatch(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	batch, err := h.stockService.GetBatch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Batch retrieved successfully", batch)
}

// ExpireBatch handles marking a batch expired ahead of its expiry date
func (h *StockHandler) ExpireBatch(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	batch, err := h.stockService.MarkExpired(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Batch marked as expired", batch)
}

// BatchMovements handles the audit trail of one batch
func (h *StockHandler) BatchMovements(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	movements, err := h.stockService.BatchHistory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Movements retrieved successfully", movements)
}
