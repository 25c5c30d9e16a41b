package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/domain/repository"
	"github.com/sunitsen/flame/internal/pkg/clock"
	"github.com/sunitsen/flame/internal/worker"
)

// SyncEngine binds the POS adapter to the delivery queue and the durable
// event log. It is the adapter's EventPublisher and the dispatcher's
// OutcomeRecorder: every published event is persisted before it is queued,
// and every state transition is written back and reflected onto the order's
// sync projection.
type SyncEngine struct {
	queue  *worker.EventQueue
	orders repository.OrderRepository
	events repository.POSEventRepository
	clock  clock.Clock
	logger *slog.Logger
}

// NewSyncEngine constructs the synchronization engine.
func NewSyncEngine(queue *worker.EventQueue, orders repository.OrderRepository, events repository.POSEventRepository, clk clock.Clock, logger *slog.Logger) *SyncEngine {
	return &SyncEngine{queue: queue, orders: orders, events: events, clock: clk, logger: logger}
}

// Publish appends the event to the durable log and hands it to the queue.
func (e *SyncEngine) Publish(ctx context.Context, event *model.POSEvent) error {
	if err := e.events.Append(ctx, event); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	if !e.queue.Enqueue(event) {
		return errors.New("event queue is closed")
	}
	return nil
}

// Record persists an event state transition and recomputes the owning
// order's sync projection.
func (e *SyncEngine) Record(ctx context.Context, event *model.POSEvent) {
	if err := e.events.Update(ctx, event); err != nil {
		e.logger.Error("persist event transition failed",
			slog.String("event_id", event.ID),
			slog.String("error", err.Error()),
		)
	}

	order, err := e.orders.Get(ctx, event.OrderID)
	if err != nil {
		e.logger.Error("load order for sync projection failed",
			slog.String("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
		return
	}

	now := e.clock.Now()
	sync := ProjectSyncStatus(order, order.SyncStatus.Events)
	sync.LastSyncAttempt = &now
	order.SyncStatus = sync

	if err := e.orders.Put(ctx, order); err != nil {
		e.logger.Error("persist sync projection failed",
			slog.String("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
	}
}

// Recover re-enqueues events left pending by a previous process, so
// in-flight retries survive restarts.
func (e *SyncEngine) Recover(ctx context.Context) error {
	pending, err := e.events.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("list pending events: %w", err)
	}
	for i := range pending {
		event := pending[i]
		if !e.queue.Enqueue(&event) {
			return errors.New("event queue is closed")
		}
	}
	if len(pending) > 0 {
		e.logger.Info("recovered pending POS events", slog.Int("count", len(pending)))
	}
	return nil
}
