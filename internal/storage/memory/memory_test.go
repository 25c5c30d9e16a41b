package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
)

func TestOrderPutGetRoundtrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	order := &model.Order{
		ID:          "order-1",
		OrderNumber: "ORD-1",
		UserID:      "user-1",
		Status:      model.OrderStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := store.Orders().Put(ctx, order); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := store.Orders().Get(ctx, "order-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.OrderNumber != "ORD-1" || got.UserID != "user-1" {
		t.Fatalf("unexpected order %+v", got)
	}

	if _, err := store.Orders().Get(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderListOrdering(t *testing.T) {
	store := New()
	ctx := context.Background()
	base := time.Now()

	for i, id := range []string{"a", "b", "c"} {
		order := &model.Order{ID: id, OrderNumber: "ORD-" + id, UserID: "u", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := store.Orders().Put(ctx, order); err != nil {
			t.Fatalf("put failed: %v", err)
		}
	}

	orders, err := store.Orders().ListByUser(ctx, "u")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	if orders[0].ID != "c" || orders[2].ID != "a" {
		t.Fatalf("expected createdAt descending, got %s..%s", orders[0].ID, orders[2].ID)
	}

	all, err := store.Orders().ListAll(ctx)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" {
		t.Fatalf("expected same ordering for all orders")
	}
}

func TestEventAppendUpdateAndGetLoadsEvents(t *testing.T) {
	store := New()
	ctx := context.Background()

	order := &model.Order{ID: "order-1", CreatedAt: time.Now()}
	if err := store.Orders().Put(ctx, order); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	event := &model.POSEvent{
		ID:        "evt-1",
		OrderID:   "order-1",
		EventType: model.POSEventOrderCreated,
		Status:    model.POSEventPending,
		CreatedAt: time.Now(),
	}
	if err := store.Events().Append(ctx, event); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	event.Status = model.POSEventSent
	event.RetryCount = 1
	if err := store.Events().Update(ctx, event); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := store.Orders().Get(ctx, "order-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.SyncStatus.Events) != 1 {
		t.Fatalf("expected 1 event attached, got %d", len(got.SyncStatus.Events))
	}
	if got.SyncStatus.Events[0].Status != model.POSEventSent {
		t.Fatalf("expected updated status to be visible, got %s", got.SyncStatus.Events[0].Status)
	}

	if err := store.Events().Update(ctx, &model.POSEvent{ID: "ghost"}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown event, got %v", err)
	}
}

func TestEventListPendingSortedAcrossOrders(t *testing.T) {
	store := New()
	ctx := context.Background()
	base := time.Now()

	events := []*model.POSEvent{
		{ID: "e2", OrderID: "o2", Status: model.POSEventPending, CreatedAt: base.Add(time.Second)},
		{ID: "e1", OrderID: "o1", Status: model.POSEventPending, CreatedAt: base},
		{ID: "e3", OrderID: "o1", Status: model.POSEventSent, CreatedAt: base.Add(2 * time.Second)},
	}
	for _, e := range events {
		if err := store.Events().Append(ctx, e); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	pending, err := store.Events().ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending events, got %d", len(pending))
	}
	if pending[0].ID != "e1" || pending[1].ID != "e2" {
		t.Fatalf("expected creation order, got %s, %s", pending[0].ID, pending[1].ID)
	}
}

func TestPromotionLifecycle(t *testing.T) {
	store := New()
	ctx := context.Background()

	promo := &model.Promotion{ID: "p1", Code: "SAVE10", DiscountType: model.DiscountFixed, DiscountValue: 10}
	if err := store.Promotions().Create(ctx, promo); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.Promotions().Create(ctx, promo); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected duplicate code rejection, got %v", err)
	}

	got, err := store.Promotions().GetByCode(ctx, "save10")
	if err != nil {
		t.Fatalf("codes must be case-insensitive: %v", err)
	}
	if got.ID != "p1" {
		t.Fatalf("unexpected promotion %+v", got)
	}

	if err := store.Promotions().IncrementUsage(ctx, "p1"); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	got, _ = store.Promotions().GetByCode(ctx, "SAVE10")
	if got.UsedCount != 1 {
		t.Fatalf("expected used count 1, got %d", got.UsedCount)
	}
}
