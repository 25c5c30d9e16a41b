package usecase_test

import (
	. "github.com/sunitsen/flame/internal/usecase"

	"context"
	"testing"
	"time"

	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/pkg/clock"
	testhelpers "github.com/sunitsen/flame/internal/test"
	"github.com/sunitsen/flame/internal/worker"
)

func newSyncFixture(t *testing.T) (*SyncEngine, *worker.EventQueue, *testhelpers.OrderRepositoryStub, *testhelpers.EventRepositoryStub, *clock.Manual) {
	t.Helper()
	queue := worker.NewEventQueue()
	t.Cleanup(queue.Close)
	orders := testhelpers.NewOrderRepositoryStub()
	events := testhelpers.NewEventRepositoryStub()
	clk := clock.NewManual(time.Unix(1000, 0))
	engine := NewSyncEngine(queue, orders, events, clk, discardLogger())
	return engine, queue, orders, events, clk
}

func TestSyncEnginePublishAppendsAndEnqueues(t *testing.T) {
	engine, queue, _, events, _ := newSyncFixture(t)

	event := &model.POSEvent{ID: "e1", OrderID: "o1", EventType: model.POSEventOrderCreated, Status: model.POSEventPending}
	if err := engine.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	stored := events.All()
	if len(stored) != 1 || stored[0].ID != "e1" {
		t.Fatalf("expected event appended to the log, got %+v", stored)
	}

	queued, ok := queue.TryDequeue()
	if !ok || queued.ID != "e1" {
		t.Fatalf("expected event on the queue, got %v %v", queued, ok)
	}
}

func TestSyncEnginePublishFailsWhenQueueClosed(t *testing.T) {
	engine, queue, _, _, _ := newSyncFixture(t)
	queue.Close()

	event := &model.POSEvent{ID: "e1", OrderID: "o1", EventType: model.POSEventOrderCreated, Status: model.POSEventPending}
	if err := engine.Publish(context.Background(), event); err == nil {
		t.Fatal("expected error publishing to a closed queue")
	}
}

func TestSyncEnginePublishFailsWhenAppendFails(t *testing.T) {
	engine, queue, _, events, _ := newSyncFixture(t)
	events.AppendErr = context.DeadlineExceeded

	event := &model.POSEvent{ID: "e1", OrderID: "o1", EventType: model.POSEventOrderCreated, Status: model.POSEventPending}
	if err := engine.Publish(context.Background(), event); err == nil {
		t.Fatal("expected append error to surface")
	}
	if _, ok := queue.TryDequeue(); ok {
		t.Fatal("event must not be queued when the durable append failed")
	}
}

func TestSyncEngineRecordProjectsOntoOrder(t *testing.T) {
	engine, _, orders, events, clk := newSyncFixture(t)

	order := &model.Order{ID: "o1", Status: model.OrderStatusPending}
	if err := orders.Put(context.Background(), order); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	event := &model.POSEvent{ID: "e1", OrderID: "o1", EventType: model.POSEventOrderCreated, Status: model.POSEventPending}
	if err := events.Append(context.Background(), event); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	now := clk.Now()
	event.Status = model.POSEventSent
	event.SentAt = &now
	engine.Record(context.Background(), event)

	stored := events.All()
	if stored[0].Status != model.POSEventSent {
		t.Errorf("expected event transition persisted, got %s", stored[0].Status)
	}

	updated, err := orders.Get(context.Background(), "o1")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if updated.SyncStatus.LastSyncAttempt == nil {
		t.Error("expected last sync attempt stamped")
	}
}

func TestSyncEngineRecoverRequeuesPending(t *testing.T) {
	engine, queue, _, events, _ := newSyncFixture(t)

	pending := &model.POSEvent{ID: "e1", OrderID: "o1", EventType: model.POSEventOrderCreated, Status: model.POSEventPending, CreatedAt: time.Unix(1, 0)}
	sent := &model.POSEvent{ID: "e2", OrderID: "o1", EventType: model.POSEventOrderStatusUpdated, Status: model.POSEventSent, CreatedAt: time.Unix(2, 0)}
	for _, e := range []*model.POSEvent{pending, sent} {
		if err := events.Append(context.Background(), e); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}

	if err := engine.Recover(context.Background()); err != nil {
		t.Fatalf("recover: %v", err)
	}

	queued, ok := queue.TryDequeue()
	if !ok || queued.ID != "e1" {
		t.Fatalf("expected pending event requeued, got %v %v", queued, ok)
	}
	if _, ok := queue.TryDequeue(); ok {
		t.Fatal("settled events must not be requeued")
	}
}
