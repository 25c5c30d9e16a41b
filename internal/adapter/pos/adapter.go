// Package pos is the boundary to the external point-of-sale system. The
// Adapter interface is the capability set callers depend on; concrete
// connectors (the simulated one here, or real Square/Toast/Clover
// integrations) implement it.
package pos

import (
	"context"
	"errors"

	"github.com/sunitsen/flame/internal/domain/model"
)

// ErrUnavailable indicates the POS system rejected or never received the
// immediate synchronous attempt. Order acceptance does not depend on it.
var ErrUnavailable = errors.New("POS system temporarily unavailable")

// ErrWebhookUnavailable indicates a failed delivery of a queued event to the
// webhook sink. Transient; retried within the budget.
var ErrWebhookUnavailable = errors.New("webhook endpoint unavailable")

// Adapter translates internal order operations into calls against an
// external POS system. Every successful mutating call also enqueues a POS
// event for asynchronous, retried webhook delivery.
type Adapter interface {
	// SendOrder registers the order with the POS and returns the
	// POS-assigned order id. A failed call enqueues nothing; queue-driven
	// retries apply only to already-enqueued events.
	SendOrder(ctx context.Context, order *model.Order) (string, error)

	// UpdateOrderStatus propagates a status change. Fails with
	// errors.ErrNotFoundInPOS when SendOrder never succeeded for the order.
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error

	// CancelOrder marks the order canceled in the POS. Same precondition
	// as UpdateOrderStatus.
	CancelOrder(ctx context.Context, orderID string) error

	// RecordPayment notifies the POS that payment settled for the order.
	RecordPayment(ctx context.Context, orderID, transactionID string, amount float64) error

	// OnWebhook accepts inbound notifications from the POS. Fire-and-forget;
	// currently a reconciliation hook with no side effects.
	OnWebhook(ctx context.Context, event model.WebhookEvent)
}

// EventPublisher is the port through which the adapter hands events to the
// synchronization queue.
type EventPublisher interface {
	Publish(ctx context.Context, event *model.POSEvent) error
}
