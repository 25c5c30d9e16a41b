package test

import (
	"context"
	"sync"
	"time"

	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/usecase"
)

// StorefrontFacadeStub provides controllable behaviour for HTTP handlers.
type StorefrontFacadeStub struct {
	CheckoutFn    func(context.Context, usecase.CheckoutInput) (*model.Order, error)
	OrderFn       func(context.Context, string) (*model.Order, error)
	OrdersFn      func(context.Context, string) ([]model.Order, error)
	CancelFn      func(context.Context, string) (*model.Order, error)
	ReorderFn     func(context.Context, string, string, model.PaymentDetails) (*model.Order, error)
	ValidateFn    func(context.Context, string, float64) (*model.Promotion, float64, error)
	CreatePromoFn func(context.Context, *model.Promotion) error
	AllOrdersFn   func(context.Context) ([]model.Order, error)
	UpdateFn      func(context.Context, string, model.OrderStatus) (*model.Order, error)
	SyncFn        func(context.Context, string) (*model.POSSyncStatus, error)
	SummaryFn     func(context.Context) (*model.SalesAnalytics, error)

	mu       sync.Mutex
	Webhooks []model.WebhookEvent
}

// Checkout delegates to the override or returns a default pending order.
func (s *StorefrontFacadeStub) Checkout(ctx context.Context, input usecase.CheckoutInput) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, input)
	}
	return &model.Order{ID: "order-1", UserID: input.UserID, Status: model.OrderStatusPending}, nil
}

// Order returns the configured order or a default one.
func (s *StorefrontFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPending}, nil
}

// Orders returns the configured order list.
func (s *StorefrontFacadeStub) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: "order-1", UserID: userID}}, nil
}

// CancelOrder delegates to the override.
func (s *StorefrontFacadeStub) CancelOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCanceled}, nil
}

// Reorder delegates to the override.
func (s *StorefrontFacadeStub) Reorder(ctx context.Context, userID, orderID string, payment model.PaymentDetails) (*model.Order, error) {
	if s.ReorderFn != nil {
		return s.ReorderFn(ctx, userID, orderID, payment)
	}
	return &model.Order{ID: "order-2", UserID: userID, Status: model.OrderStatusPending}, nil
}

// ValidatePromo delegates to the override.
func (s *StorefrontFacadeStub) ValidatePromo(ctx context.Context, code string, subtotal float64) (*model.Promotion, float64, error) {
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, code, subtotal)
	}
	return &model.Promotion{Code: code}, 1, nil
}

// CreatePromotion delegates to the override.
func (s *StorefrontFacadeStub) CreatePromotion(ctx context.Context, promo *model.Promotion) error {
	if s.CreatePromoFn != nil {
		return s.CreatePromoFn(ctx, promo)
	}
	promo.ID = "promo-1"
	return nil
}

// AllOrders delegates to the override.
func (s *StorefrontFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{{ID: "order-1"}}, nil
}

// UpdateOrderStatus delegates to the override.
func (s *StorefrontFacadeStub) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, orderID, status)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

// SyncStatus delegates to the override.
func (s *StorefrontFacadeStub) SyncStatus(ctx context.Context, orderID string) (*model.POSSyncStatus, error) {
	if s.SyncFn != nil {
		return s.SyncFn(ctx, orderID)
	}
	now := time.Unix(0, 0)
	return &model.POSSyncStatus{IsSynced: true, PosOrderID: "POS-1", LastSuccessfulSync: &now, Events: []model.POSEvent{}}, nil
}

// SalesSummary delegates to the override.
func (s *StorefrontFacadeStub) SalesSummary(ctx context.Context) (*model.SalesAnalytics, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx)
	}
	return &model.SalesAnalytics{TotalOrders: 1, TotalRevenue: 10}, nil
}

// HandlePOSWebhook records inbound webhook events.
func (s *StorefrontFacadeStub) HandlePOSWebhook(ctx context.Context, event model.WebhookEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Webhooks = append(s.Webhooks, event)
}

// ReceivedWebhooks returns a copy of the recorded webhook events.
func (s *StorefrontFacadeStub) ReceivedWebhooks() []model.WebhookEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.WebhookEvent, len(s.Webhooks))
	copy(out, s.Webhooks)
	return out
}
