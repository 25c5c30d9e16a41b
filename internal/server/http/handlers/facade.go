package handlers

import (
	"context"

	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/usecase"
)

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, input usecase.CheckoutInput) (*model.Order, error)
	Order(ctx context.Context, orderID string) (*model.Order, error)
	Orders(ctx context.Context, userID string) ([]model.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*model.Order, error)
	Reorder(ctx context.Context, userID, orderID string, payment model.PaymentDetails) (*model.Order, error)
}

// PromotionFacade exposes discount code operations.
type PromotionFacade interface {
	ValidatePromo(ctx context.Context, code string, subtotal float64) (*model.Promotion, float64, error)
	CreatePromotion(ctx context.Context, promo *model.Promotion) error
}

// AdminFacade exposes the staff-facing surface.
type AdminFacade interface {
	AllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error)
	SyncStatus(ctx context.Context, orderID string) (*model.POSSyncStatus, error)
	SalesSummary(ctx context.Context) (*model.SalesAnalytics, error)
}

// WebhookFacade accepts inbound POS notifications.
type WebhookFacade interface {
	HandlePOSWebhook(ctx context.Context, event model.WebhookEvent)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	OrderFacade
	PromotionFacade
	AdminFacade
	WebhookFacade
}
