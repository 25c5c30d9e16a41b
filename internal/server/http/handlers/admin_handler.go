package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/server/http/dto"
)

// AdminHandler manages the staff-facing endpoints.
type AdminHandler struct {
	facade StorefrontFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade StorefrontFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PATCH /api/admin/orders/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// SyncStatus handles GET /api/admin/orders/:id/sync.
func (h *AdminHandler) SyncStatus(c *gin.Context) {
	status, err := h.facade.SyncStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toSyncStatusResponse(status))
}

// SalesSummary handles GET /api/admin/analytics/sales.
func (h *AdminHandler) SalesSummary(c *gin.Context) {
	summary, err := h.facade.SalesSummary(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, summary)
}
