package repository

import (
	"context"

	"github.com/sunitsen/flame/internal/domain/model"
)

// POSEventRepository is the durable, append-only log of outbound POS events.
// Events are retained for audit even after their order reaches a terminal
// status; pending entries survive process restarts.
type POSEventRepository interface {
	Append(ctx context.Context, event *model.POSEvent) error
	Update(ctx context.Context, event *model.POSEvent) error
	ListByOrder(ctx context.Context, orderID string) ([]model.POSEvent, error)
	ListPending(ctx context.Context) ([]model.POSEvent, error)
}
