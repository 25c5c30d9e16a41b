package app

import (
	"context"

	"github.com/sunitsen/flame/internal/adapter/pos"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/usecase"
)

// StorefrontFacade aggregates the use cases behind the HTTP surface.
type StorefrontFacade struct {
	orders     *usecase.OrderUseCase
	promotions *usecase.PromotionUseCase
	analytics  *usecase.AnalyticsUseCase
	adapter    pos.Adapter
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(orders *usecase.OrderUseCase, promotions *usecase.PromotionUseCase, analytics *usecase.AnalyticsUseCase, adapter pos.Adapter) *StorefrontFacade {
	return &StorefrontFacade{orders: orders, promotions: promotions, analytics: analytics, adapter: adapter}
}

func (f *StorefrontFacade) Checkout(ctx context.Context, input usecase.CheckoutInput) (*model.Order, error) {
	return f.orders.Checkout(ctx, input)
}

func (f *StorefrontFacade) Order(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) CancelOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Cancel(ctx, orderID)
}

func (f *StorefrontFacade) Reorder(ctx context.Context, userID, orderID string, payment model.PaymentDetails) (*model.Order, error) {
	return f.orders.Reorder(ctx, userID, orderID, payment)
}

func (f *StorefrontFacade) ValidatePromo(ctx context.Context, code string, subtotal float64) (*model.Promotion, float64, error) {
	return f.promotions.Validate(ctx, code, subtotal)
}

func (f *StorefrontFacade) CreatePromotion(ctx context.Context, promo *model.Promotion) error {
	return f.promotions.Create(ctx, promo)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StorefrontFacade) SyncStatus(ctx context.Context, orderID string) (*model.POSSyncStatus, error) {
	return f.orders.SyncStatus(ctx, orderID)
}

func (f *StorefrontFacade) SalesSummary(ctx context.Context) (*model.SalesAnalytics, error) {
	return f.analytics.SalesSummary(ctx)
}

func (f *StorefrontFacade) HandlePOSWebhook(ctx context.Context, event model.WebhookEvent) {
	f.adapter.OnWebhook(ctx, event)
}
