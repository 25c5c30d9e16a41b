package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrNotFoundInPOS      = errors.New("order not found in POS system")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrMissingAddress     = errors.New("delivery address is required")
	ErrInvalidQuantity    = errors.New("invalid item quantity")
	ErrInvalidPrice       = errors.New("invalid item price")
	ErrInvalidOrderType   = errors.New("unknown order type")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrInvalidCard        = errors.New("invalid payment details")
	ErrInvalidPromoCode   = errors.New("invalid promotion code")
	ErrPromoNotApplicable = errors.New("promotion not applicable to this order")
	ErrAlreadyExists      = errors.New("already exists")
)
