package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/server/http/dto"
	"github.com/sunitsen/flame/internal/usecase"
)

// OrderHandler manages customer order endpoints.
type OrderHandler struct {
	facade StorefrontFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade StorefrontFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.facade.Checkout(c.Request.Context(), toCheckoutInput(CurrentUserID(c), req))
	if err != nil {
		status, message := checkoutErrorStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	if order.UserID != CurrentUserID(c) {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	if order.UserID != CurrentUserID(c) {
		c.Status(http.StatusNotFound)
		return
	}

	canceled, err := h.facade.CancelOrder(c.Request.Context(), order.ID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(canceled))
}

// Reorder handles POST /api/orders/:id/reorder.
func (h *OrderHandler) Reorder(c *gin.Context) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.facade.Reorder(c.Request.Context(), CurrentUserID(c), c.Param("id"), toPaymentDetails(req.Payment))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		status, message := checkoutErrorStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func toCheckoutInput(userID string, req dto.CheckoutRequest) usecase.CheckoutInput {
	items := make([]usecase.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.CheckoutItem{
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			AddOns:       item.AddOns,
			SpiceLevel:   item.SpiceLevel,
			KitchenNotes: item.KitchenNotes,
			Calories:     item.Calories,
		})
	}

	var address *model.Address
	if req.Address != nil {
		address = &model.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			ZipCode: req.Address.ZipCode,
			Country: req.Address.Country,
		}
	}

	return usecase.CheckoutInput{
		UserID:    userID,
		Items:     items,
		OrderType: model.OrderType(req.OrderType),
		Address:   address,
		Payment:   toPaymentDetails(req.Payment),
		PromoCode: req.PromoCode,
	}
}

func toPaymentDetails(req dto.PaymentRequest) model.PaymentDetails {
	return model.PaymentDetails{
		CardName:   req.CardName,
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
	}
}

func checkoutErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domainErrors.ErrEmptyCart),
		errors.Is(err, domainErrors.ErrMissingAddress),
		errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrInvalidPrice),
		errors.Is(err, domainErrors.ErrInvalidCard),
		errors.Is(err, domainErrors.ErrInvalidOrderType):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domainErrors.ErrInvalidPromoCode),
		errors.Is(err, domainErrors.ErrPromoNotApplicable):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domainErrors.ErrPaymentDeclined):
		return http.StatusPaymentRequired, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
