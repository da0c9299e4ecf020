package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	domainRepo "github.com/ventasapp/ventas-api/internal/domain/repository"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, userID uuid.UUID, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureInvoiceOwned(tx, userID, payment.InvoiceID); err != nil {
			return err
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return recomputeLedger(tx, payment.InvoiceID)
	})
}

func (r *paymentRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("payments.id = ? AND invoices.user_id = ?", id, userID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, userID, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("payments.invoice_id = ? AND invoices.user_id = ?", invoiceID, userID).
		Order("payments.paid_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Update(ctx context.Context, userID uuid.UUID, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureInvoiceOwned(tx, userID, payment.InvoiceID); err != nil {
			return err
		}
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		return recomputeLedger(tx, payment.InvoiceID)
	})
}

func (r *paymentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment entity.Payment
		err := tx.Joins("JOIN invoices ON invoices.id = payments.invoice_id").
			Where("payments.id = ? AND invoices.user_id = ?", id, userID).
			First(&payment).Error
		if err != nil {
			return err
		}
		if err := tx.Delete(&entity.Payment{}, "id = ?", id).Error; err != nil {
			return err
		}
		return recomputeLedger(tx, payment.InvoiceID)
	})
}
