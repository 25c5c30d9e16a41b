package model

// PaymentDetails carries card data submitted at checkout. Never persisted.
type PaymentDetails struct {
	CardName   string `json:"card_name"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// PaymentResult is the outcome of a payment attempt.
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}
