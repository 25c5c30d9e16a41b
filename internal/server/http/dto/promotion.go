package dto

import "time"

// ValidatePromoRequest is the body of POST /api/promotions/validate.
type ValidatePromoRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"required"`
}

// ValidatePromoResponse reports the discount a code would apply.
type ValidatePromoResponse struct {
	Code     string  `json:"code"`
	Name     string  `json:"name,omitempty"`
	Discount float64 `json:"discount"`
}

// CreatePromotionRequest is the body of POST /api/admin/promotions.
type CreatePromotionRequest struct {
	Code           string    `json:"code" binding:"required"`
	Name           string    `json:"name"`
	DiscountType   string    `json:"discount_type" binding:"required"`
	DiscountValue  float64   `json:"discount_value" binding:"required"`
	MinOrderAmount float64   `json:"min_order_amount"`
	MaxDiscount    float64   `json:"max_discount_amount"`
	UsageLimit     int       `json:"usage_limit"`
	ValidFrom      time.Time `json:"valid_from" binding:"required"`
	ValidUntil     time.Time `json:"valid_until" binding:"required"`
}

// PromotionResponse is the admin view of a promotion.
type PromotionResponse struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name,omitempty"`
	DiscountType   string    `json:"discount_type"`
	DiscountValue  float64   `json:"discount_value"`
	MinOrderAmount float64   `json:"min_order_amount"`
	MaxDiscount    float64   `json:"max_discount_amount"`
	UsageLimit     int       `json:"usage_limit"`
	UsedCount      int       `json:"used_count"`
	IsActive       bool      `json:"is_active"`
	ValidFrom      time.Time `json:"valid_from"`
	ValidUntil     time.Time `json:"valid_until"`
}
