package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hardwarepos/pos-api/internal/application/service"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/presentation/http/dto/request"
	"github.com/hardwarepos/pos-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles registering a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer := &entity.Customer{
		Name:          req.Name,
		Mobile:        req.Mobile,
		Company:       req.Company,
		StreetAddress: req.StreetAddress,
		City:          req.City,
	}
	if err := h.customerService.Create(c.Request.Context(), customer); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Customer created successfully", customer)
}

// Get handles fetching one customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer retrieved successfully", customer)
}

// Search handles the settlement panel's customer typeahead
func (h *CustomerHandler) Search(c *gin.Context) {
	customers, err := h.customerService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customers retrieved successfully", customers)
}

// Repay handles paying down a customer's outstanding balance
func (h *CustomerHandler) Repay(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.RepayCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.RepayCredit(c.Request.Context(), id, req.AmountCents())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Repayment recorded successfully", customer)
}
