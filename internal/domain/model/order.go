package model

import "time"

// OrderStatus describes the customer-facing order lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCanceled       OrderStatus = "canceled"
)

// Terminal reports whether no further status transitions are possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}

// OrderType distinguishes delivery from pickup orders.
type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

// PaymentStatus describes payment lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Address is a delivery destination snapshot.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// OrderItem is an immutable line-item snapshot taken at order time.
type OrderItem struct {
	ID           string   `json:"id"`
	MenuItemID   string   `json:"menu_item_id"`
	MenuItemName string   `json:"menu_item_name"`
	Quantity     int      `json:"quantity"`
	UnitPrice    float64  `json:"unit_price"`
	TotalPrice   float64  `json:"total_price"`
	AddOns       []string `json:"add_ons,omitempty"`
	SpiceLevel   int      `json:"spice_level,omitempty"`
	KitchenNotes string   `json:"kitchen_notes,omitempty"`
	Calories     int      `json:"calories,omitempty"`
}

// Order is the aggregate persisted by the order store. Status is the only
// field mutated after creation; cancellation is a status, not a deletion.
type Order struct {
	ID            string        `json:"id"`
	OrderNumber   string        `json:"order_number"`
	UserID        string        `json:"user_id"`
	Items         []OrderItem   `json:"items"`
	OrderType     OrderType     `json:"order_type"`
	Address       *Address      `json:"delivery_address,omitempty"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	DeliveryFee   float64       `json:"delivery_fee"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	PromoCode     string        `json:"promo_code,omitempty"`
	SyncStatus    POSSyncStatus `json:"pos_sync_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

// CheckTotals verifies the monetary invariant
// total = subtotal + tax + deliveryFee - discount, total >= 0.
func (o *Order) CheckTotals() bool {
	const epsilon = 1e-9
	expected := o.Subtotal + o.Tax + o.DeliveryFee - o.Discount
	return o.Total >= 0 && diff(o.Total, expected) < epsilon
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
