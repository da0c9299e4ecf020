package request

// CreatePaymentRequest represents a payment creation request
type CreatePaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	Method string `json:"method" binding:"required"`
	PaidAt string `json:"paid_at"`
}

// UpdatePaymentRequest represents a payment update request
type UpdatePaymentRequest struct {
	Amount *string `json:"amount"`
	Method *string `json:"method"`
	PaidAt *string `json:"paid_at"`
}
