package test

import (
	"context"
	"sync"

	"github.com/sunitsen/flame/internal/domain/model"
)

// AdapterStub implements the POS adapter contract with overridable behaviour.
type AdapterStub struct {
	SendFn          func(context.Context, *model.Order) (string, error)
	UpdateFn        func(context.Context, string, model.OrderStatus) error
	CancelFn        func(context.Context, string) error
	RecordPaymentFn func(context.Context, string, string, float64) error

	mu       sync.Mutex
	Sent     []string
	Updates  []string
	Cancels  []string
	Payments []string
	Webhooks []model.WebhookEvent
}

// SendOrder records the call and delegates to the override.
func (s *AdapterStub) SendOrder(ctx context.Context, order *model.Order) (string, error) {
	s.mu.Lock()
	s.Sent = append(s.Sent, order.ID)
	s.mu.Unlock()
	if s.SendFn != nil {
		return s.SendFn(ctx, order)
	}
	return "POS-" + order.ID, nil
}

// UpdateOrderStatus records the call and delegates to the override.
func (s *AdapterStub) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	s.mu.Lock()
	s.Updates = append(s.Updates, orderID+":"+string(status))
	s.mu.Unlock()
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, orderID, status)
	}
	return nil
}

// CancelOrder records the call and delegates to the override.
func (s *AdapterStub) CancelOrder(ctx context.Context, orderID string) error {
	s.mu.Lock()
	s.Cancels = append(s.Cancels, orderID)
	s.mu.Unlock()
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID)
	}
	return nil
}

// RecordPayment records the call and delegates to the override.
func (s *AdapterStub) RecordPayment(ctx context.Context, orderID, transactionID string, amount float64) error {
	s.mu.Lock()
	s.Payments = append(s.Payments, orderID+":"+transactionID)
	s.mu.Unlock()
	if s.RecordPaymentFn != nil {
		return s.RecordPaymentFn(ctx, orderID, transactionID, amount)
	}
	return nil
}

// OnWebhook records inbound events.
func (s *AdapterStub) OnWebhook(ctx context.Context, event model.WebhookEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Webhooks = append(s.Webhooks, event)
}

// ReceivedWebhooks returns a copy of the recorded webhook events.
func (s *AdapterStub) ReceivedWebhooks() []model.WebhookEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.WebhookEvent, len(s.Webhooks))
	copy(out, s.Webhooks)
	return out
}

// PublisherStub collects published POS events.
type PublisherStub struct {
	Err error

	mu     sync.Mutex
	Events []*model.POSEvent
}

// Publish records the event or returns the configured error.
func (s *PublisherStub) Publish(ctx context.Context, event *model.POSEvent) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
	return nil
}

// Published returns a copy of the collected events.
func (s *PublisherStub) Published() []*model.POSEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.POSEvent, len(s.Events))
	copy(out, s.Events)
	return out
}

// AborterStub records retry abort requests.
type AborterStub struct {
	mu    sync.Mutex
	Calls []string
}

// Abort records the order id and the kept event id.
func (s *AborterStub) Abort(ctx context.Context, orderID, keepID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, orderID+":"+keepID)
}

// Aborted returns a copy of the recorded abort calls.
func (s *AborterStub) Aborted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Calls))
	copy(out, s.Calls)
	return out
}
