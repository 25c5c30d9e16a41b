package repository

import (
	"context"

	"github.com/sunitsen/flame/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Orders are
// never deleted; cancellation is a status transition. Concurrent writes to
// the same order are last-write-wins.
type OrderRepository interface {
	Put(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
}
