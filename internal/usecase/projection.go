package usecase

import (
	"github.com/sunitsen/flame/internal/domain/model"
)

// relevantEventType maps the order's current lifecycle stage to the event
// type whose delivery decides the synced flag.
func relevantEventType(status model.OrderStatus) model.POSEventType {
	switch status {
	case model.OrderStatusPending:
		return model.POSEventOrderCreated
	case model.OrderStatusCanceled:
		return model.POSEventOrderCanceled
	default:
		return model.POSEventOrderStatusUpdated
	}
}

// ProjectSyncStatus derives the order-visible sync state from the event
// log: isSynced holds iff the latest event for the order's current stage
// was delivered; error reflects the most recent terminal failure and is
// cleared by a subsequent success. Pure; the caller persists the result.
func ProjectSyncStatus(order *model.Order, events []model.POSEvent) model.POSSyncStatus {
	status := order.SyncStatus
	status.Events = events

	relevant := relevantEventType(order.Status)

	var lastRelevant *model.POSEvent
	var lastFailed *model.POSEvent
	for i := range events {
		event := &events[i]
		if event.EventType == relevant {
			lastRelevant = event
		}
		if event.Status == model.POSEventFailed {
			lastFailed = event
		}
		if event.Status == model.POSEventSent && event.SentAt != nil {
			if status.LastSuccessfulSync == nil || event.SentAt.After(*status.LastSuccessfulSync) {
				status.LastSuccessfulSync = event.SentAt
			}
		}
	}

	switch {
	case lastRelevant != nil && lastRelevant.Status == model.POSEventSent:
		status.IsSynced = true
		status.Error = ""
	case lastRelevant != nil:
		status.IsSynced = false
		if lastFailed != nil {
			status.Error = lastFailed.Error
		}
	default:
		// No event for the current stage yet; the immediate-call outcome
		// recorded by the caller stands.
		status.IsSynced = false
	}

	return status
}
