package model

import "time"

// DiscountType selects how a promotion reduces the order total.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Promotion is a redeemable discount code.
type Promotion struct {
	ID                string       `json:"id"`
	Code              string       `json:"code"`
	Name              string       `json:"name"`
	DiscountType      DiscountType `json:"discount_type"`
	DiscountValue     float64      `json:"discount_value"`
	MinOrderAmount    float64      `json:"min_order_amount"`
	MaxDiscountAmount float64      `json:"max_discount_amount"`
	ValidFrom         time.Time    `json:"valid_from"`
	ValidUntil        time.Time    `json:"valid_until"`
	IsActive          bool         `json:"is_active"`
	UsageLimit        int          `json:"usage_limit"`
	UsedCount         int          `json:"used_count"`
}

// DiscountFor computes the discount a promotion grants on a subtotal.
// Returns 0 when the promotion does not apply.
func (p *Promotion) DiscountFor(subtotal float64) float64 {
	if subtotal < p.MinOrderAmount {
		return 0
	}
	var discount float64
	switch p.DiscountType {
	case DiscountPercentage:
		discount = subtotal * p.DiscountValue / 100
	case DiscountFixed:
		discount = p.DiscountValue
	}
	if p.MaxDiscountAmount > 0 && discount > p.MaxDiscountAmount {
		discount = p.MaxDiscountAmount
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

// Redeemable reports whether the promotion can be applied at the given time.
func (p *Promotion) Redeemable(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if now.Before(p.ValidFrom) || now.After(p.ValidUntil) {
		return false
	}
	if p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit {
		return false
	}
	return true
}
