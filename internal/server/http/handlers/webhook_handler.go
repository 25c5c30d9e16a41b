package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/server/http/dto"
)

// WebhookHandler accepts inbound notifications from the POS system.
type WebhookHandler struct {
	facade StorefrontFacade
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade StorefrontFacade) *WebhookHandler {
	return &WebhookHandler{facade: facade}
}

// Receive handles POST /api/pos/webhook. The POS expects a fast 2xx; the
// notification is acknowledged before any reconciliation happens.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.facade.HandlePOSWebhook(c.Request.Context(), model.WebhookEvent{
		Type:       model.POSEventType(req.Type),
		OrderID:    req.OrderID,
		PosOrderID: req.PosOrderID,
		Status:     model.OrderStatus(req.Status),
		Timestamp:  time.Now(),
		Data:       req.Data,
	})

	c.Status(http.StatusAccepted)
}
