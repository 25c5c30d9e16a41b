package dto

import (
	"time"

	"github.com/sunitsen/flame/internal/domain/model"
)

// CheckoutItemRequest is one cart line in a checkout request.
type CheckoutItemRequest struct {
	MenuItemID   string   `json:"menu_item_id" binding:"required"`
	MenuItemName string   `json:"menu_item_name" binding:"required"`
	Quantity     int      `json:"quantity" binding:"required"`
	UnitPrice    float64  `json:"unit_price"`
	AddOns       []string `json:"add_ons"`
	SpiceLevel   int      `json:"spice_level"`
	KitchenNotes string   `json:"kitchen_notes"`
	Calories     int      `json:"calories"`
}

// AddressRequest is the delivery destination in a checkout request.
type AddressRequest struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// PaymentRequest carries card details for the checkout charge.
type PaymentRequest struct {
	CardName   string `json:"card_name" binding:"required"`
	CardNumber string `json:"card_number" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
}

// CheckoutRequest is the body of POST /api/orders.
type CheckoutRequest struct {
	Items     []CheckoutItemRequest `json:"items" binding:"required"`
	OrderType string                `json:"order_type" binding:"required"`
	Address   *AddressRequest       `json:"delivery_address"`
	Payment   PaymentRequest        `json:"payment" binding:"required"`
	PromoCode string                `json:"promo_code"`
}

// ReorderRequest is the body of POST /api/orders/:id/reorder.
type ReorderRequest struct {
	Payment PaymentRequest `json:"payment" binding:"required"`
}

// UpdateStatusRequest is the body of PATCH /api/admin/orders/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse is the customer-facing order representation.
type OrderResponse struct {
	ID            string             `json:"id"`
	OrderNumber   string             `json:"order_number"`
	Items         []model.OrderItem  `json:"items"`
	OrderType     string             `json:"order_type"`
	Address       *model.Address     `json:"delivery_address,omitempty"`
	Subtotal      float64            `json:"subtotal"`
	Tax           float64            `json:"tax"`
	DeliveryFee   float64            `json:"delivery_fee"`
	Discount      float64            `json:"discount"`
	Total         float64            `json:"total"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	IsSynced      bool               `json:"is_synced"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// POSEventResponse is one entry of an order's sync event log.
type POSEventResponse struct {
	ID         string     `json:"id"`
	EventType  string     `json:"event_type"`
	Status     string     `json:"status"`
	RetryCount int        `json:"retry_count"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SyncStatusResponse is the admin sync introspection view.
type SyncStatusResponse struct {
	IsSynced           bool               `json:"is_synced"`
	PosOrderID         string             `json:"pos_order_id,omitempty"`
	LastSyncAttempt    *time.Time         `json:"last_sync_attempt,omitempty"`
	LastSuccessfulSync *time.Time         `json:"last_successful_sync,omitempty"`
	Error              string             `json:"error,omitempty"`
	Events             []POSEventResponse `json:"events"`
}
