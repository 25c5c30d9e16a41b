package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sunitsen/flame/internal/adapter/pos"
	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/domain/repository"
	"github.com/sunitsen/flame/internal/pkg/clock"
)

// RetryAborter discards pending POS deliveries for an order that reached a
// terminal status. Implemented by the worker dispatcher.
type RetryAborter interface {
	Abort(ctx context.Context, orderID, keepID string)
}

// CheckoutItem is one cart line submitted at checkout, a snapshot of the
// menu item and its customizations with the price computed by the cart.
type CheckoutItem struct {
	MenuItemID   string
	MenuItemName string
	Quantity     int
	UnitPrice    float64
	AddOns       []string
	SpiceLevel   int
	KitchenNotes string
	Calories     int
}

// CheckoutInput is everything needed to place an order.
type CheckoutInput struct {
	UserID    string
	Items     []CheckoutItem
	OrderType model.OrderType
	Address   *model.Address
	Payment   model.PaymentDetails
	PromoCode string
}

// OrderUseCase owns the order lifecycle: checkout, status transitions,
// cancellation, and the POS synchronization hand-off. POS sync is advisory
// to the customer-facing flow: an order is accepted even when the POS is
// unreachable.
type OrderUseCase struct {
	orders     repository.OrderRepository
	promotions *PromotionUseCase
	payments   *PaymentProcessor
	adapter    pos.Adapter
	aborter    RetryAborter
	clock      clock.Clock
	logger     *slog.Logger

	taxRate     float64
	deliveryFee float64
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, promotions *PromotionUseCase, payments *PaymentProcessor, adapter pos.Adapter, aborter RetryAborter, clk clock.Clock, logger *slog.Logger, taxRate, deliveryFee float64) *OrderUseCase {
	return &OrderUseCase{
		orders:      orders,
		promotions:  promotions,
		payments:    payments,
		adapter:     adapter,
		aborter:     aborter,
		clock:       clk,
		logger:      logger,
		taxRate:     taxRate,
		deliveryFee: deliveryFee,
	}
}

// Checkout validates the cart, charges the payment, persists the order, and
// makes the immediate best-effort POS registration attempt. A failed attempt
// leaves the order unsynced; the admin sync view surfaces it for follow-up.
func (u *OrderUseCase) Checkout(ctx context.Context, input CheckoutInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}
	if input.OrderType != model.OrderTypeDelivery && input.OrderType != model.OrderTypePickup {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrInvalidOrderType, input.OrderType)
	}
	if input.OrderType == model.OrderTypeDelivery && input.Address == nil {
		return nil, domainErrors.ErrMissingAddress
	}

	var subtotal float64
	items := make([]model.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %s", domainErrors.ErrInvalidQuantity, item.MenuItemName)
		}
		if item.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: %s", domainErrors.ErrInvalidPrice, item.MenuItemName)
		}
		totalPrice := roundCents(item.UnitPrice * float64(item.Quantity))
		subtotal += totalPrice
		items = append(items, model.OrderItem{
			ID:           "order-item-" + uuid.NewString(),
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   totalPrice,
			AddOns:       item.AddOns,
			SpiceLevel:   item.SpiceLevel,
			KitchenNotes: item.KitchenNotes,
			Calories:     item.Calories,
		})
	}
	subtotal = roundCents(subtotal)

	var promo *model.Promotion
	var discount float64
	if input.PromoCode != "" {
		var err error
		promo, discount, err = u.promotions.Validate(ctx, input.PromoCode, subtotal)
		if err != nil {
			return nil, err
		}
		discount = roundCents(discount)
	}

	tax := roundCents(subtotal * u.taxRate)
	var deliveryFee float64
	if input.OrderType == model.OrderTypeDelivery {
		deliveryFee = u.deliveryFee
	}
	total := roundCents(subtotal + tax + deliveryFee - discount)

	transactionID, err := u.payments.Process(ctx, total, input.Payment)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	order := &model.Order{
		ID:            "order-" + uuid.NewString(),
		OrderNumber:   u.newOrderNumber(now),
		UserID:        input.UserID,
		Items:         items,
		OrderType:     input.OrderType,
		Address:       input.Address,
		Subtotal:      subtotal,
		Tax:           tax,
		DeliveryFee:   deliveryFee,
		Discount:      discount,
		Total:         total,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPaid,
		TransactionID: transactionID,
		SyncStatus:    model.POSSyncStatus{Events: []model.POSEvent{}},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if promo != nil {
		order.PromoCode = promo.Code
	}

	// The registration outcome is stamped on the order before the single
	// persisting write. Writing it in a second Put would race with the sync
	// engine's projection once the dispatcher picks up the queued events.
	u.registerWithPOS(ctx, order)

	if err := u.orders.Put(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if promo != nil {
		if err := u.promotions.MarkUsed(ctx, promo.ID); err != nil {
			u.logger.Warn("increment promotion usage failed",
				slog.String("promo", promo.Code),
				slog.String("error", err.Error()),
			)
		}
	}

	return order, nil
}

// registerWithPOS makes the one-shot synchronous registration attempt and
// records its outcome on the order. Failure never fails the checkout.
func (u *OrderUseCase) registerWithPOS(ctx context.Context, order *model.Order) {
	posOrderID, err := u.adapter.SendOrder(ctx, order)
	attemptedAt := u.clock.Now()
	order.SyncStatus.LastSyncAttempt = &attemptedAt

	if err != nil {
		order.SyncStatus.IsSynced = false
		order.SyncStatus.Error = err.Error()
		u.logger.Warn("initial POS registration failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	order.SyncStatus.IsSynced = true
	order.SyncStatus.PosOrderID = posOrderID
	order.SyncStatus.LastSuccessfulSync = &attemptedAt
	order.SyncStatus.Error = ""

	if err := u.adapter.RecordPayment(ctx, order.ID, order.TransactionID, order.Total); err != nil {
		u.logger.Warn("queue payment_processed event failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}

// UpdateStatus transitions the order and propagates the change to the POS.
// The transition is persisted even when the POS call fails; the failure is
// reflected on the sync status for the admin dashboard.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := CanTransition(order.OrderType, order.Status, status); err != nil {
		return nil, err
	}

	now := u.clock.Now()
	order.Status = status
	order.UpdatedAt = now
	if status == model.OrderStatusCompleted {
		order.CompletedAt = &now
	}
	if err := u.orders.Put(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	var posErr error
	if status == model.OrderStatusCanceled {
		posErr = u.adapter.CancelOrder(ctx, orderID)
	} else {
		posErr = u.adapter.UpdateOrderStatus(ctx, orderID, status)
	}

	attemptedAt := u.clock.Now()
	order.SyncStatus.LastSyncAttempt = &attemptedAt
	if posErr != nil {
		order.SyncStatus.IsSynced = false
		order.SyncStatus.Error = posErr.Error()
	} else {
		order.SyncStatus.IsSynced = true
		order.SyncStatus.LastSuccessfulSync = &attemptedAt
		order.SyncStatus.Error = ""
	}
	if err := u.orders.Put(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order sync status: %w", err)
	}

	if status.Terminal() && posErr == nil {
		u.abortStaleRetries(ctx, orderID)
	}

	return order, nil
}

// Cancel transitions the order to canceled.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID string) (*model.Order, error) {
	return u.UpdateStatus(ctx, orderID, model.OrderStatusCanceled)
}

// abortStaleRetries drops pending deliveries that can no longer matter,
// keeping the event produced by the terminal transition itself.
func (u *OrderUseCase) abortStaleRetries(ctx context.Context, orderID string) {
	if u.aborter == nil {
		return
	}
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return
	}
	var keepID string
	relevant := relevantEventType(order.Status)
	for i := range order.SyncStatus.Events {
		event := &order.SyncStatus.Events[i]
		if event.EventType == relevant {
			keepID = event.ID
		}
	}
	u.aborter.Abort(ctx, orderID, keepID)
}

// Get returns one order with its full event log.
func (u *OrderUseCase) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return u.orders.Get(ctx, orderID)
}

// ListByUser returns the user's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAll returns every order, newest first.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// SyncStatus is the read-only introspection surface for support tooling.
func (u *OrderUseCase) SyncStatus(ctx context.Context, orderID string) (*model.POSSyncStatus, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	status := order.SyncStatus
	return &status, nil
}

// Reorder places a new order with the same line items as a previous one.
func (u *OrderUseCase) Reorder(ctx context.Context, userID, orderID string, payment model.PaymentDetails) (*model.Order, error) {
	previous, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if previous.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}

	items := make([]CheckoutItem, 0, len(previous.Items))
	for _, item := range previous.Items {
		items = append(items, CheckoutItem{
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			AddOns:       item.AddOns,
			SpiceLevel:   item.SpiceLevel,
			KitchenNotes: item.KitchenNotes,
			Calories:     item.Calories,
		})
	}

	return u.Checkout(ctx, CheckoutInput{
		UserID:    userID,
		Items:     items,
		OrderType: previous.OrderType,
		Address:   previous.Address,
		Payment:   payment,
	})
}

func (u *OrderUseCase) newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
