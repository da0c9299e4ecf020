package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/domain/enum"
	"github.com/ventasapp/ventas-api/internal/domain/repository"
	"github.com/ventasapp/ventas-api/pkg/apperror"
)

// minimum accepted payment amount
var minPaymentAmount = decimal.New(1, -2)

// PaymentService handles payment operations
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, invoiceRepo repository.InvoiceRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
	}
}

// CreatePaymentInput represents the create payment input
type CreatePaymentInput struct {
	UserID    uuid.UUID
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	Method    enum.PaymentMethod
	PaidAt    time.Time
}

// CreatePayment records a payment against an invoice. Overpayment is
// allowed; the invoice balance simply goes negative.
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error) {
	if input.Amount.LessThan(minPaymentAmount) {
		return nil, apperror.NewBadRequestError("Payment amount must be at least 0.01")
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.UserID, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	payment := &entity.Payment{
		InvoiceID: input.InvoiceID,
		Amount:    input.Amount,
		Method:    input.Method,
		PaidAt:    paidAt,
	}

	if err := s.paymentRepo.Create(ctx, input.UserID, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, userID, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments lists an invoice's payments
func (s *PaymentService) ListPayments(ctx context.Context, userID, invoiceID uuid.UUID) ([]entity.Payment, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.paymentRepo.ListByInvoice(ctx, userID, invoiceID)
}

// UpdatePaymentInput represents the update payment input
type UpdatePaymentInput struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Amount *decimal.Decimal
	Method *enum.PaymentMethod
	PaidAt *time.Time
}

// UpdatePayment updates a recorded payment
func (s *PaymentService) UpdatePayment(ctx context.Context, input *UpdatePaymentInput) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	if input.Amount != nil {
		if input.Amount.LessThan(minPaymentAmount) {
			return nil, apperror.NewBadRequestError("Payment amount must be at least 0.01")
		}
		payment.Amount = *input.Amount
	}
	if input.Method != nil {
		if !input.Method.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid payment method")
		}
		payment.Method = *input.Method
	}
	if input.PaidAt != nil {
		payment.PaidAt = *input.PaidAt
	}

	if err := s.paymentRepo.Update(ctx, input.UserID, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// DeletePayment removes a recorded payment
func (s *PaymentService) DeletePayment(ctx context.Context, userID, id uuid.UUID) error {
	payment, err := s.paymentRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NewNotFoundError("Payment")
	}

	return s.paymentRepo.Delete(ctx, userID, id)
}
