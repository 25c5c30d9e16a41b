package model

import "time"

// POSEventType enumerates order lifecycle transitions propagated to the POS.
type POSEventType string

const (
	POSEventOrderCreated       POSEventType = "order_created"
	POSEventOrderStatusUpdated POSEventType = "order_status_updated"
	POSEventOrderCanceled      POSEventType = "order_canceled"
	POSEventPaymentProcessed   POSEventType = "payment_processed"
)

// POSEventStatus is the delivery state machine of a queued event.
// pending -> sent | failed; both sent and failed are terminal.
type POSEventStatus string

const (
	POSEventPending POSEventStatus = "pending"
	POSEventSent    POSEventStatus = "sent"
	POSEventFailed  POSEventStatus = "failed"
)

// POSEvent is one outbound synchronization event. The queue owns its
// lifecycle; the order only reflects the aggregated sync status.
type POSEvent struct {
	ID         string            `json:"id"`
	OrderID    string            `json:"order_id"`
	EventType  POSEventType      `json:"event_type"`
	Payload    map[string]string `json:"payload"`
	Status     POSEventStatus    `json:"status"`
	RetryCount int               `json:"retry_count"`
	CreatedAt  time.Time         `json:"created_at"`
	SentAt     *time.Time        `json:"sent_at,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Settled reports whether the event reached a terminal state.
func (e *POSEvent) Settled() bool {
	return e.Status == POSEventSent || e.Status == POSEventFailed
}

// POSSyncStatus is the order-visible projection of POS delivery outcomes,
// embedded 1:1 on Order. Events are append-only in creation order.
type POSSyncStatus struct {
	IsSynced           bool       `json:"is_synced"`
	PosOrderID         string     `json:"pos_order_id,omitempty"`
	LastSyncAttempt    *time.Time `json:"last_sync_attempt,omitempty"`
	LastSuccessfulSync *time.Time `json:"last_successful_sync,omitempty"`
	Error              string     `json:"error,omitempty"`
	Events             []POSEvent `json:"events"`
}

// WebhookEvent is an inbound notification from the external POS system.
type WebhookEvent struct {
	Type       POSEventType      `json:"type"`
	OrderID    string            `json:"order_id"`
	PosOrderID string            `json:"pos_order_id"`
	Status     OrderStatus       `json:"status,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	Data       map[string]string `json:"data,omitempty"`
}
