package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/server/http/dto"
	"github.com/sunitsen/flame/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		Items:         order.Items,
		OrderType:     string(order.OrderType),
		Address:       order.Address,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		DeliveryFee:   order.DeliveryFee,
		Discount:      order.Discount,
		Total:         order.Total,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		IsSynced:      order.SyncStatus.IsSynced,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func toSyncStatusResponse(status *model.POSSyncStatus) dto.SyncStatusResponse {
	events := make([]dto.POSEventResponse, 0, len(status.Events))
	for _, e := range status.Events {
		events = append(events, dto.POSEventResponse{
			ID:         e.ID,
			EventType:  string(e.EventType),
			Status:     string(e.Status),
			RetryCount: e.RetryCount,
			SentAt:     e.SentAt,
			Error:      e.Error,
			CreatedAt:  e.CreatedAt,
		})
	}
	return dto.SyncStatusResponse{
		IsSynced:           status.IsSynced,
		PosOrderID:         status.PosOrderID,
		LastSyncAttempt:    status.LastSyncAttempt,
		LastSuccessfulSync: status.LastSuccessfulSync,
		Error:              status.Error,
		Events:             events,
	}
}

func toPromotionResponse(promo *model.Promotion) dto.PromotionResponse {
	return dto.PromotionResponse{
		ID:             promo.ID,
		Code:           promo.Code,
		Name:           promo.Name,
		DiscountType:   string(promo.DiscountType),
		DiscountValue:  promo.DiscountValue,
		MinOrderAmount: promo.MinOrderAmount,
		MaxDiscount:    promo.MaxDiscountAmount,
		UsageLimit:     promo.UsageLimit,
		UsedCount:      promo.UsedCount,
		IsActive:       promo.IsActive,
		ValidFrom:      promo.ValidFrom,
		ValidUntil:     promo.ValidUntil,
	}
}
