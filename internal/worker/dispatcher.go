package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sunitsen/flame/internal/adapter/pos"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/pkg/clock"
)

// OutcomeRecorder is notified after every event state transition (retry,
// sent, failed) so the durable log and the order's sync projection stay
// current.
type OutcomeRecorder interface {
	Record(ctx context.Context, event *model.POSEvent)
}

// Dispatcher drives delivery of queued POS events with exponential-backoff
// redelivery until success or retry-budget exhaustion. A bounded worker pool
// drains one shared queue; events for different orders may complete out of
// order, and a delayed retry can be overtaken by a later event for the same
// order.
type Dispatcher struct {
	queue    *EventQueue
	sink     pos.Sink
	recorder OutcomeRecorder
	clock    clock.Clock
	logger   *slog.Logger

	maxRetries int
	baseDelay  time.Duration
	timeout    time.Duration
	workers    int

	abortMu sync.Mutex
	aborted map[string]string // order id -> event id kept alive

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs the retry dispatcher. Worker count is clamped
// to [1, 4].
func NewDispatcher(queue *EventQueue, sink pos.Sink, recorder OutcomeRecorder, clk clock.Clock, maxRetries int, baseDelay, timeout time.Duration, workers int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if workers > 4 {
		workers = 4
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		queue:      queue,
		sink:       sink,
		recorder:   recorder,
		clock:      clk,
		logger:     logger,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		timeout:    timeout,
		workers:    workers,
		aborted:    make(map[string]string),
	}
}

// Start launches the worker pool.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop cancels in-flight retries and waits for all workers to finish.
// Queued but undelivered events stay pending in the durable log and are
// recovered on the next start.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Abort discards pending deliveries for an order that reached a terminal
// status, keeping the event identified by keepID (the terminal transition
// itself). Discarded events are settled as failed.
func (d *Dispatcher) Abort(ctx context.Context, orderID, keepID string) {
	d.abortMu.Lock()
	d.aborted[orderID] = keepID
	d.abortMu.Unlock()

	for _, event := range d.queue.Remove(orderID, keepID) {
		d.settleAborted(ctx, event)
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		// Once the run context is canceled, queued events must not be
		// attempted: they stay pending in the durable log for recovery.
		if ctx.Err() != nil {
			return
		}
		event, ok := d.queue.TryDequeue()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-d.queue.Wait():
				continue
			}
		}
		d.deliver(ctx, event)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event *model.POSEvent) {
	if keep, ok := d.abortedFor(event.OrderID); ok && event.ID != keep {
		d.settleAborted(ctx, event)
		return
	}

	attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
	err := d.sink.Deliver(attemptCtx, event)
	cancel()

	if err == nil {
		now := d.clock.Now()
		event.Status = model.POSEventSent
		event.SentAt = &now
		event.Error = ""
		d.record(ctx, event)
		return
	}

	// An attempt interrupted by shutdown is not a delivery failure: it must
	// not consume retry budget or settle the event. Recovery requeues it.
	if ctx.Err() != nil {
		return
	}

	event.RetryCount++
	event.Error = err.Error()

	if event.RetryCount < d.maxRetries {
		d.record(ctx, event)
		delay := d.baseDelay << (event.RetryCount - 1)
		d.logger.Warn("event delivery failed, retry scheduled",
			slog.String("event_id", event.ID),
			slog.String("order_id", event.OrderID),
			slog.Int("retry_count", event.RetryCount),
			slog.Duration("delay", delay),
		)
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			select {
			case <-ctx.Done():
			case <-d.clock.After(delay):
				d.queue.Enqueue(event)
			}
		}()
		return
	}

	event.Status = model.POSEventFailed
	d.logger.Error("event delivery failed permanently",
		slog.String("event_id", event.ID),
		slog.String("order_id", event.OrderID),
		slog.Int("retry_count", event.RetryCount),
		slog.String("error", event.Error),
	)
	d.record(ctx, event)
}

func (d *Dispatcher) settleAborted(ctx context.Context, event *model.POSEvent) {
	event.Status = model.POSEventFailed
	event.Error = "aborted: order reached terminal status"
	d.record(ctx, event)
}

func (d *Dispatcher) abortedFor(orderID string) (string, bool) {
	d.abortMu.Lock()
	defer d.abortMu.Unlock()
	keep, ok := d.aborted[orderID]
	return keep, ok
}

func (d *Dispatcher) record(ctx context.Context, event *model.POSEvent) {
	if d.recorder == nil {
		return
	}
	d.recorder.Record(ctx, event)
}
