package usecase

// SetPayments swaps the payment processor so external tests can exercise
// decline paths without reaching into unexported state.
func (u *OrderUseCase) SetPayments(p *PaymentProcessor) { u.payments = p }
