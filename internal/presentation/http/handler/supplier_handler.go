package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hardwarepos/pos-api/internal/application/service"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/presentation/http/dto/request"
	"github.com/hardwarepos/pos-api/internal/presentation/http/dto/response"
)

// SupplierHandler handles supplier-related HTTP requests
type SupplierHandler struct {
	supplierService *service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// Create handles registering a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req request.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	supplier := &entity.Supplier{
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Code:        req.Code,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
	}
	if err := h.supplierService.Create(c.Request.Context(), supplier); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Supplier created successfully", supplier)
}

// Get handles fetching one supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	supplier, err := h.supplierService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier retrieved successfully", supplier)
}

// Search handles the goods receipt panel's supplier typeahead
func (h *SupplierHandler) Search(c *gin.Context) {
	suppliers, err := h.supplierService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Suppliers retrieved successfully", suppliers)
}

// Repay handles paying down what the shop owes a supplier
func (h *SupplierHandler) Repay(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.RepayCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.RepayCredit(c.Request.Context(), id, req.AmountCents())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Repayment recorded successfully", supplier)
}
