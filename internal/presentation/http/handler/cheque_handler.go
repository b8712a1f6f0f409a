package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hardwarepos/pos-api/internal/application/service"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"github.com/hardwarepos/pos-api/internal/domain/enum"
	"github.com/hardwarepos/pos-api/internal/domain/repository"
	"github.com/hardwarepos/pos-api/internal/presentation/http/dto/request"
	"github.com/hardwarepos/pos-api/internal/presentation/http/dto/response"
	"github.com/hardwarepos/pos-api/pkg/pagination"
)

// ChequeHandler handles cheque registry HTTP requests
type ChequeHandler struct {
	chequeService *service.ChequeService
}

// NewChequeHandler creates a new cheque handler
func NewChequeHandler(chequeService *service.ChequeService) *ChequeHandler {
	return &ChequeHandler{chequeService: chequeService}
}

func parseChequeStatus(raw string) (enum.ChequeStatus, bool) {
	switch raw {
	case "pending":
		return enum.ChequeStatusPending, true
	case "paid":
		return enum.ChequeStatusPaid, true
	case "bounced":
		return enum.ChequeStatusBounced, true
	}
	return 0, false
}

// List handles listing cheques with optional status/customer filters
func (h *ChequeHandler) List(c *gin.Context) {
	page, perPage := pageParams(c)
	filter := repository.ChequeFilter{Page: page, PageSize: perPage}

	if status, ok := parseChequeStatus(c.Query("status")); ok {
		filter.Status = &status
	}
	if raw := c.Query("customer_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.CustomerID = &id
		}
	}

	cheques, total, err := h.chequeService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult[entity.Cheque](
		cheques, pagination.NewPagination(page, perPage, total))
	response.SuccessWithPagination(c, 200, "Cheques retrieved successfully", result)
}

// Get handles fetching one cheque
func (h *ChequeHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	cheque, err := h.chequeService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cheque retrieved successfully", cheque)
}

// DueYesterday handles the daily follow-up list
func (h *ChequeHandler) DueYesterday(c *gin.Context) {
	cheques, err := h.chequeService.DueYesterday(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Due cheques retrieved successfully", cheques)
}

// UpdateStatus handles settling one cheque as paid or bounced
func (h *ChequeHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.ChequeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	status, _ := parseChequeStatus(req.Status)

	cheque, err := h.chequeService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cheque status updated successfully", cheque)
}

// BatchUpdateStatus handles settling several cheques in one request
func (h *ChequeHandler) BatchUpdateStatus(c *gin.Context) {
	var req request.BatchChequeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	status, _ := parseChequeStatus(req.Status)

	results := h.chequeService.BatchUpdateStatus(c.Request.Context(), req.ChequeIDs, status)
	response.OK(c, "Cheque statuses processed", results)
}
