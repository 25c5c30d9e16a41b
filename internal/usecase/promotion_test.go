package usecase_test

import (
	. "github.com/sunitsen/flame/internal/usecase"

	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/pkg/clock"
	testhelpers "github.com/sunitsen/flame/internal/test"
)

func newPromotionFixture(t *testing.T) (*PromotionUseCase, *testhelpers.PromotionRepositoryStub, *clock.Manual) {
	t.Helper()
	repo := testhelpers.NewPromotionRepositoryStub()
	clk := clock.NewManual(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewPromotionUseCase(repo, clk), repo, clk
}

func seedPromo(t *testing.T, repo *testhelpers.PromotionRepositoryStub, promo model.Promotion) {
	t.Helper()
	if err := repo.Create(context.Background(), &promo); err != nil {
		t.Fatalf("seed promotion: %v", err)
	}
}

func TestPromotionCreateValidation(t *testing.T) {
	uc, _, _ := newPromotionFixture(t)

	if err := uc.Create(context.Background(), &model.Promotion{}); !errors.Is(err, domainErrors.ErrInvalidPromoCode) {
		t.Fatalf("expected ErrInvalidPromoCode for empty code, got %v", err)
	}

	err := uc.Create(context.Background(), &model.Promotion{Code: "X", DiscountType: "bogus", DiscountValue: 5})
	if err == nil {
		t.Fatal("expected error for unknown discount type")
	}

	err = uc.Create(context.Background(), &model.Promotion{Code: "X", DiscountType: model.DiscountFixed, DiscountValue: 0})
	if err == nil {
		t.Fatal("expected error for non-positive discount value")
	}

	promo := &model.Promotion{Code: "SAVE10", DiscountType: model.DiscountPercentage, DiscountValue: 10}
	if err := uc.Create(context.Background(), promo); err != nil {
		t.Fatalf("create: %v", err)
	}
	if promo.ID == "" {
		t.Error("expected generated promotion id")
	}

	dup := &model.Promotion{Code: "save10", DiscountType: model.DiscountPercentage, DiscountValue: 5}
	if err := uc.Create(context.Background(), dup); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for duplicate code, got %v", err)
	}
}

func TestPromotionValidate(t *testing.T) {
	uc, repo, clk := newPromotionFixture(t)
	now := clk.Now()

	seedPromo(t, repo, model.Promotion{
		ID: "p1", Code: "SAVE10",
		DiscountType: model.DiscountPercentage, DiscountValue: 10,
		MinOrderAmount: 15,
		ValidFrom:      now.Add(-time.Hour), ValidUntil: now.Add(time.Hour),
		IsActive: true,
	})

	promo, discount, err := uc.Validate(context.Background(), "SAVE10", 20)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if promo.ID != "p1" {
		t.Errorf("unexpected promotion: %+v", promo)
	}
	if discount != 2 {
		t.Errorf("expected discount 2, got %v", discount)
	}

	if _, _, err := uc.Validate(context.Background(), "NOPE", 20); !errors.Is(err, domainErrors.ErrInvalidPromoCode) {
		t.Fatalf("expected ErrInvalidPromoCode for unknown code, got %v", err)
	}

	// Below the minimum order amount the code resolves but grants nothing.
	if _, _, err := uc.Validate(context.Background(), "SAVE10", 10); !errors.Is(err, domainErrors.ErrPromoNotApplicable) {
		t.Fatalf("expected ErrPromoNotApplicable, got %v", err)
	}
}

func TestPromotionValidateRejectsExpired(t *testing.T) {
	uc, repo, clk := newPromotionFixture(t)
	now := clk.Now()

	seedPromo(t, repo, model.Promotion{
		ID: "p1", Code: "OLD",
		DiscountType: model.DiscountFixed, DiscountValue: 5,
		ValidFrom: now.Add(-2 * time.Hour), ValidUntil: now.Add(-time.Hour),
		IsActive: true,
	})

	if _, _, err := uc.Validate(context.Background(), "OLD", 50); !errors.Is(err, domainErrors.ErrInvalidPromoCode) {
		t.Fatalf("expected ErrInvalidPromoCode for expired code, got %v", err)
	}
}

func TestPromotionValidateRejectsExhausted(t *testing.T) {
	uc, repo, clk := newPromotionFixture(t)
	now := clk.Now()

	seedPromo(t, repo, model.Promotion{
		ID: "p1", Code: "LIMITED",
		DiscountType: model.DiscountFixed, DiscountValue: 5,
		ValidFrom: now.Add(-time.Hour), ValidUntil: now.Add(time.Hour),
		IsActive:   true,
		UsageLimit: 2, UsedCount: 2,
	})

	if _, _, err := uc.Validate(context.Background(), "LIMITED", 50); !errors.Is(err, domainErrors.ErrInvalidPromoCode) {
		t.Fatalf("expected ErrInvalidPromoCode for exhausted code, got %v", err)
	}
}

func TestPromotionMarkUsed(t *testing.T) {
	uc, repo, clk := newPromotionFixture(t)
	now := clk.Now()

	seedPromo(t, repo, model.Promotion{
		ID: "p1", Code: "SAVE5",
		DiscountType: model.DiscountFixed, DiscountValue: 5,
		ValidFrom: now.Add(-time.Hour), ValidUntil: now.Add(time.Hour),
		IsActive: true,
	})

	if err := uc.MarkUsed(context.Background(), "p1"); err != nil {
		t.Fatalf("mark used: %v", err)
	}

	promo, err := repo.GetByCode(context.Background(), "SAVE5")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if promo.UsedCount != 1 {
		t.Errorf("expected used count 1, got %d", promo.UsedCount)
	}
}
