package usecase

import (
	"fmt"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
)

// transition defines a valid status change, optionally restricted to one
// order type.
type transition struct {
	from     model.OrderStatus
	to       model.OrderStatus
	onlyType model.OrderType // empty means any
}

// validTransitions is the authoritative order state machine. Canceled is
// reachable until preparation finishes; pickup orders skip the
// out_for_delivery leg.
var validTransitions = []transition{
	{from: model.OrderStatusPending, to: model.OrderStatusConfirmed},
	{from: model.OrderStatusPending, to: model.OrderStatusCanceled},
	{from: model.OrderStatusConfirmed, to: model.OrderStatusPreparing},
	{from: model.OrderStatusConfirmed, to: model.OrderStatusCanceled},
	{from: model.OrderStatusPreparing, to: model.OrderStatusReady},
	{from: model.OrderStatusPreparing, to: model.OrderStatusCanceled},
	{from: model.OrderStatusReady, to: model.OrderStatusOutForDelivery, onlyType: model.OrderTypeDelivery},
	{from: model.OrderStatusReady, to: model.OrderStatusCompleted, onlyType: model.OrderTypePickup},
	{from: model.OrderStatusOutForDelivery, to: model.OrderStatusCompleted},
}

// CanTransition reports whether an order of the given type may move between
// the two statuses.
func CanTransition(orderType model.OrderType, from, to model.OrderStatus) error {
	for _, t := range validTransitions {
		if t.from != from || t.to != to {
			continue
		}
		if t.onlyType != "" && t.onlyType != orderType {
			continue
		}
		return nil
	}
	return fmt.Errorf("%w: %s -> %s for %s order", domainErrors.ErrInvalidTransition, from, to, orderType)
}

// ValidTransitionsFrom returns every status reachable from the given one.
func ValidTransitionsFrom(orderType model.OrderType, from model.OrderStatus) []model.OrderStatus {
	var result []model.OrderStatus
	for _, t := range validTransitions {
		if t.from != from {
			continue
		}
		if t.onlyType != "" && t.onlyType != orderType {
			continue
		}
		result = append(result, t.to)
	}
	return result
}
