package usecase_test

import (
	. "github.com/sunitsen/flame/internal/usecase"

	"errors"
	"testing"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name      string
		orderType model.OrderType
		from      model.OrderStatus
		to        model.OrderStatus
		ok        bool
	}{
		{name: "pending to confirmed", orderType: model.OrderTypeDelivery, from: model.OrderStatusPending, to: model.OrderStatusConfirmed, ok: true},
		{name: "confirmed to preparing", orderType: model.OrderTypeDelivery, from: model.OrderStatusConfirmed, to: model.OrderStatusPreparing, ok: true},
		{name: "preparing to ready", orderType: model.OrderTypePickup, from: model.OrderStatusPreparing, to: model.OrderStatusReady, ok: true},
		{name: "delivery leaves via courier", orderType: model.OrderTypeDelivery, from: model.OrderStatusReady, to: model.OrderStatusOutForDelivery, ok: true},
		{name: "delivery completes after courier", orderType: model.OrderTypeDelivery, from: model.OrderStatusOutForDelivery, to: model.OrderStatusCompleted, ok: true},
		{name: "pickup completes from ready", orderType: model.OrderTypePickup, from: model.OrderStatusReady, to: model.OrderStatusCompleted, ok: true},
		{name: "pickup never goes out for delivery", orderType: model.OrderTypePickup, from: model.OrderStatusReady, to: model.OrderStatusOutForDelivery, ok: false},
		{name: "delivery cannot complete from ready", orderType: model.OrderTypeDelivery, from: model.OrderStatusReady, to: model.OrderStatusCompleted, ok: false},
		{name: "cancel while pending", orderType: model.OrderTypeDelivery, from: model.OrderStatusPending, to: model.OrderStatusCanceled, ok: true},
		{name: "cancel while confirmed", orderType: model.OrderTypePickup, from: model.OrderStatusConfirmed, to: model.OrderStatusCanceled, ok: true},
		{name: "cancel while preparing", orderType: model.OrderTypeDelivery, from: model.OrderStatusPreparing, to: model.OrderStatusCanceled, ok: true},
		{name: "cannot cancel when ready", orderType: model.OrderTypeDelivery, from: model.OrderStatusReady, to: model.OrderStatusCanceled, ok: false},
		{name: "cannot cancel in transit", orderType: model.OrderTypeDelivery, from: model.OrderStatusOutForDelivery, to: model.OrderStatusCanceled, ok: false},
		{name: "no skipping stages", orderType: model.OrderTypeDelivery, from: model.OrderStatusPending, to: model.OrderStatusReady, ok: false},
		{name: "no going backwards", orderType: model.OrderTypeDelivery, from: model.OrderStatusReady, to: model.OrderStatusPreparing, ok: false},
		{name: "completed is terminal", orderType: model.OrderTypeDelivery, from: model.OrderStatusCompleted, to: model.OrderStatusCanceled, ok: false},
		{name: "canceled is terminal", orderType: model.OrderTypeDelivery, from: model.OrderStatusCanceled, to: model.OrderStatusPending, ok: false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.orderType, tt.from, tt.to)
			if tt.ok && err != nil {
				t.Fatalf("expected transition to be allowed, got %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected transition to be rejected")
				}
				if !errors.Is(err, domainErrors.ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	got := ValidTransitionsFrom(model.OrderTypePickup, model.OrderStatusReady)
	if len(got) != 1 || got[0] != model.OrderStatusCompleted {
		t.Fatalf("expected pickup ready -> [completed], got %v", got)
	}

	got = ValidTransitionsFrom(model.OrderTypeDelivery, model.OrderStatusReady)
	if len(got) != 1 || got[0] != model.OrderStatusOutForDelivery {
		t.Fatalf("expected delivery ready -> [out_for_delivery], got %v", got)
	}

	if got := ValidTransitionsFrom(model.OrderTypeDelivery, model.OrderStatusCompleted); len(got) != 0 {
		t.Fatalf("expected no transitions from completed, got %v", got)
	}
}
