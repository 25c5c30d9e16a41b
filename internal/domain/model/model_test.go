package model

import (
	"testing"
	"time"
)

func TestOrderCheckTotals(t *testing.T) {
	order := Order{
		Subtotal:    20.00,
		Tax:         1.60,
		DeliveryFee: 5.99,
		Discount:    0,
		Total:       27.59,
	}
	if !order.CheckTotals() {
		t.Fatalf("expected totals to balance, got total %.2f", order.Total)
	}

	order.Total = 30.00
	if order.CheckTotals() {
		t.Fatal("expected mismatched total to fail the invariant")
	}

	order.Discount = 50
	order.Total = -22.41
	if order.CheckTotals() {
		t.Fatal("negative total must never satisfy the invariant")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusCompleted, OrderStatusCanceled} {
		if !status.Terminal() {
			t.Fatalf("expected %s to be terminal", status)
		}
	}
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusPreparing, OrderStatusOutForDelivery} {
		if status.Terminal() {
			t.Fatalf("expected %s to be non-terminal", status)
		}
	}
}

func TestPOSEventSettled(t *testing.T) {
	event := POSEvent{Status: POSEventPending}
	if event.Settled() {
		t.Fatal("pending event must not be settled")
	}
	event.Status = POSEventSent
	if !event.Settled() {
		t.Fatal("sent event must be settled")
	}
	event.Status = POSEventFailed
	if !event.Settled() {
		t.Fatal("failed event must be settled")
	}
}

func TestPromotionDiscountFor(t *testing.T) {
	percent := Promotion{DiscountType: DiscountPercentage, DiscountValue: 10, MaxDiscountAmount: 5}
	if got := percent.DiscountFor(30); got != 3 {
		t.Fatalf("expected 10%% of 30 = 3, got %v", got)
	}
	if got := percent.DiscountFor(100); got != 5 {
		t.Fatalf("expected cap at 5, got %v", got)
	}

	fixed := Promotion{DiscountType: DiscountFixed, DiscountValue: 8, MinOrderAmount: 20}
	if got := fixed.DiscountFor(10); got != 0 {
		t.Fatalf("expected no discount below minimum, got %v", got)
	}
	if got := fixed.DiscountFor(25); got != 8 {
		t.Fatalf("expected fixed discount 8, got %v", got)
	}
	if got := fixed.DiscountFor(20); got != 8 {
		t.Fatalf("expected discount at exact minimum, got %v", got)
	}

	small := Promotion{DiscountType: DiscountFixed, DiscountValue: 15}
	if got := small.DiscountFor(10); got != 10 {
		t.Fatalf("discount must not exceed subtotal, got %v", got)
	}
}

func TestPromotionRedeemable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	promo := Promotion{
		IsActive:   true,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
		UsageLimit: 2,
		UsedCount:  1,
	}
	if !promo.Redeemable(now) {
		t.Fatal("expected promotion to be redeemable")
	}

	promo.UsedCount = 2
	if promo.Redeemable(now) {
		t.Fatal("exhausted usage limit must not be redeemable")
	}

	promo.UsedCount = 0
	promo.IsActive = false
	if promo.Redeemable(now) {
		t.Fatal("inactive promotion must not be redeemable")
	}

	promo.IsActive = true
	if promo.Redeemable(now.Add(2 * time.Hour)) {
		t.Fatal("expired promotion must not be redeemable")
	}
}
