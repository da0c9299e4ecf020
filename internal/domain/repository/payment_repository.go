package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
)

// PaymentRepository defines the interface for payment data operations.
// Ownership is checked through the payment's invoice; implementations
// recompute the invoice's ledger inside the same transaction as any
// payment write.
type PaymentRepository interface {
	Create(ctx context.Context, userID uuid.UUID, payment *entity.Payment) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Payment, error)
	ListByInvoice(ctx context.Context, userID, invoiceID uuid.UUID) ([]entity.Payment, error)
	Update(ctx context.Context, userID uuid.UUID, payment *entity.Payment) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
