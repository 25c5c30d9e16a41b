package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/domain/repository"
	"github.com/sunitsen/flame/internal/pkg/clock"
)

// PromotionUseCase manages discount codes.
type PromotionUseCase struct {
	promotions repository.PromotionRepository
	clock      clock.Clock
}

// NewPromotionUseCase constructs PromotionUseCase.
func NewPromotionUseCase(promotions repository.PromotionRepository, clk clock.Clock) *PromotionUseCase {
	return &PromotionUseCase{promotions: promotions, clock: clk}
}

// Create registers a new promotion.
func (u *PromotionUseCase) Create(ctx context.Context, promo *model.Promotion) error {
	if promo.Code == "" {
		return domainErrors.ErrInvalidPromoCode
	}
	if promo.DiscountType != model.DiscountPercentage && promo.DiscountType != model.DiscountFixed {
		return fmt.Errorf("unknown discount type: %s", promo.DiscountType)
	}
	if promo.DiscountValue <= 0 {
		return fmt.Errorf("discount value must be positive")
	}
	if promo.ID == "" {
		promo.ID = uuid.NewString()
	}
	return u.promotions.Create(ctx, promo)
}

// Validate resolves a code and computes the discount it grants on the given
// subtotal.
func (u *PromotionUseCase) Validate(ctx context.Context, code string, subtotal float64) (*model.Promotion, float64, error) {
	promo, err := u.promotions.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, 0, domainErrors.ErrInvalidPromoCode
		}
		return nil, 0, err
	}
	if !promo.Redeemable(u.clock.Now()) {
		return nil, 0, domainErrors.ErrInvalidPromoCode
	}
	discount := promo.DiscountFor(subtotal)
	if discount <= 0 {
		return nil, 0, domainErrors.ErrPromoNotApplicable
	}
	return promo, discount, nil
}

// MarkUsed increments the redemption counter after a successful checkout.
func (u *PromotionUseCase) MarkUsed(ctx context.Context, id string) error {
	return u.promotions.IncrementUsage(ctx, id)
}
