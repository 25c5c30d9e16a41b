package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/server/http/dto"
)

// PromotionHandler manages discount code endpoints.
type PromotionHandler struct {
	facade StorefrontFacade
}

// NewPromotionHandler constructs PromotionHandler.
func NewPromotionHandler(facade StorefrontFacade) *PromotionHandler {
	return &PromotionHandler{facade: facade}
}

// Validate handles POST /api/promotions/validate.
func (h *PromotionHandler) Validate(c *gin.Context) {
	var req dto.ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo, discount, err := h.facade.ValidatePromo(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidPromoCode):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrPromoNotApplicable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ValidatePromoResponse{
		Code:     promo.Code,
		Name:     promo.Name,
		Discount: discount,
	})
}

// Create handles POST /api/admin/promotions.
func (h *PromotionHandler) Create(c *gin.Context) {
	var req dto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo := &model.Promotion{
		Code:              req.Code,
		Name:              req.Name,
		DiscountType:      model.DiscountType(req.DiscountType),
		DiscountValue:     req.DiscountValue,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscountAmount: req.MaxDiscount,
		UsageLimit:        req.UsageLimit,
		ValidFrom:         req.ValidFrom,
		ValidUntil:        req.ValidUntil,
		IsActive:          true,
	}

	if err := h.facade.CreatePromotion(c.Request.Context(), promo); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrInvalidPromoCode):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, toPromotionResponse(promo))
}
