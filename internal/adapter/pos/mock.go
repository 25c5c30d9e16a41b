package pos

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/pkg/clock"
)

// MockAdapter simulates a POS integration for development and testing:
// injected latency and a configurable randomized failure rate on SendOrder.
// Unlike a naive mock, re-sending an already registered order returns the
// existing POS order id instead of creating a duplicate.
type MockAdapter struct {
	publisher EventPublisher
	clock     clock.Clock
	logger    *slog.Logger

	failureRate float64
	latency     time.Duration

	randMu sync.Mutex
	rand   *rand.Rand

	mu      sync.RWMutex
	records map[string]*posRecord
}

type posRecord struct {
	posOrderID string
	status     model.OrderStatus
}

// MockOption tweaks simulation parameters.
type MockOption func(*MockAdapter)

// WithFailureRate overrides the SendOrder failure probability.
func WithFailureRate(rate float64) MockOption {
	return func(m *MockAdapter) { m.failureRate = rate }
}

// WithLatency overrides the simulated network delay.
func WithLatency(d time.Duration) MockOption {
	return func(m *MockAdapter) { m.latency = d }
}

// WithRand injects a seeded random source for deterministic tests.
func WithRand(r *rand.Rand) MockOption {
	return func(m *MockAdapter) { m.rand = r }
}

// NewMockAdapter constructs the simulated adapter. Default failure rate is
// 10% on SendOrder.
func NewMockAdapter(publisher EventPublisher, clk clock.Clock, logger *slog.Logger, opts ...MockOption) *MockAdapter {
	m := &MockAdapter{
		publisher:   publisher,
		clock:       clk,
		logger:      logger,
		failureRate: 0.1,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		records:     make(map[string]*posRecord),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendOrder registers the order with the simulated POS.
func (m *MockAdapter) SendOrder(ctx context.Context, order *model.Order) (string, error) {
	if err := m.delay(ctx); err != nil {
		return "", err
	}

	m.mu.RLock()
	existing, ok := m.records[order.ID]
	m.mu.RUnlock()
	if ok {
		return existing.posOrderID, nil
	}

	if m.roll() < m.failureRate {
		return "", ErrUnavailable
	}

	posOrderID := m.newPosOrderID()
	m.mu.Lock()
	m.records[order.ID] = &posRecord{posOrderID: posOrderID, status: order.Status}
	m.mu.Unlock()

	event := m.newEvent(order.ID, model.POSEventOrderCreated, map[string]string{
		"pos_order_id": posOrderID,
		"order_number": order.OrderNumber,
	})
	if err := m.publisher.Publish(ctx, event); err != nil {
		return posOrderID, fmt.Errorf("queue order_created event: %w", err)
	}
	return posOrderID, nil
}

// UpdateOrderStatus propagates a status change to the simulated POS.
func (m *MockAdapter) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if err := m.delay(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	record, ok := m.records[orderID]
	if ok {
		record.status = status
	}
	m.mu.Unlock()
	if !ok {
		return domainErrors.ErrNotFoundInPOS
	}

	event := m.newEvent(orderID, model.POSEventOrderStatusUpdated, map[string]string{
		"status": string(status),
	})
	return m.publisher.Publish(ctx, event)
}

// CancelOrder marks the order canceled in the simulated POS.
func (m *MockAdapter) CancelOrder(ctx context.Context, orderID string) error {
	if err := m.delay(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	record, ok := m.records[orderID]
	if ok {
		record.status = model.OrderStatusCanceled
	}
	m.mu.Unlock()
	if !ok {
		return domainErrors.ErrNotFoundInPOS
	}

	event := m.newEvent(orderID, model.POSEventOrderCanceled, map[string]string{})
	return m.publisher.Publish(ctx, event)
}

// RecordPayment notifies the simulated POS about a settled payment.
func (m *MockAdapter) RecordPayment(ctx context.Context, orderID, transactionID string, amount float64) error {
	m.mu.RLock()
	_, ok := m.records[orderID]
	m.mu.RUnlock()
	if !ok {
		return domainErrors.ErrNotFoundInPOS
	}

	event := m.newEvent(orderID, model.POSEventPaymentProcessed, map[string]string{
		"transaction_id": transactionID,
		"amount":         strconv.FormatFloat(amount, 'f', 2, 64),
	})
	return m.publisher.Publish(ctx, event)
}

// OnWebhook acknowledges an inbound POS notification. Reconciliation hook,
// no side effects yet.
func (m *MockAdapter) OnWebhook(_ context.Context, event model.WebhookEvent) {
	m.logger.Info("received POS webhook",
		slog.String("type", string(event.Type)),
		slog.String("order_id", event.OrderID),
		slog.String("pos_order_id", event.PosOrderID),
	)
}

func (m *MockAdapter) newEvent(orderID string, eventType model.POSEventType, payload map[string]string) *model.POSEvent {
	return &model.POSEvent{
		ID:        "evt-" + uuid.NewString(),
		OrderID:   orderID,
		EventType: eventType,
		Payload:   payload,
		Status:    model.POSEventPending,
		CreatedAt: m.clock.Now(),
	}
}

func (m *MockAdapter) newPosOrderID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("POS-%d-%s", m.clock.Now().UnixMilli(), suffix)
}

func (m *MockAdapter) roll() float64 {
	m.randMu.Lock()
	defer m.randMu.Unlock()
	return m.rand.Float64()
}

func (m *MockAdapter) delay(ctx context.Context) error {
	if m.latency <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.clock.After(m.latency):
		return nil
	}
}
