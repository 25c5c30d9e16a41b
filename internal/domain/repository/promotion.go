package repository

import (
	"context"

	"github.com/sunitsen/flame/internal/domain/model"
)

// PromotionRepository stores redeemable discount codes.
type PromotionRepository interface {
	Create(ctx context.Context, promo *model.Promotion) error
	GetByCode(ctx context.Context, code string) (*model.Promotion, error)
	IncrementUsage(ctx context.Context, id string) error
}
