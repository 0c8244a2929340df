package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billpilot_backend/internal/logger"
	"billpilot_backend/internal/services"
	"billpilot_backend/internal/services/dto"
)

type CustomerHandler struct {
	*BaseHandler
	customerService services.CustomerService
}

func NewCustomerHandler(base *BaseHandler, customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{BaseHandler: base, customerService: customerService}
}

// Create handles POST /customer/create
func (h *CustomerHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCustomerRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	customer, err := h.customerService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "customer created", "customer_id", customer.ID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "customer": customer})
}

// Get handles GET /customer/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "customer": customer})
}

// List handles GET /customer/all
func (h *CustomerHandler) List(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	limit, offset := h.Pagination(c)

	customers, total, err := h.customerService.List(userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"customers": customers,
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

// Update handles PATCH /customer/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	customer, err := h.customerService.Update(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "customer": customer})
}

// Delete handles DELETE /customer/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.customerService.Delete(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "customer deleted", "customer_id", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer has been deleted"})
}
