package dto

// WebhookRequest is an inbound POS notification on POST /api/pos/webhook.
type WebhookRequest struct {
	Type       string            `json:"type" binding:"required"`
	OrderID    string            `json:"order_id"`
	PosOrderID string            `json:"pos_order_id"`
	Status     string            `json:"status"`
	Data       map[string]string `json:"data"`
}
