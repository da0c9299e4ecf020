package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	domainRepo "github.com/ventasapp/ventas-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		return recomputeLedger(tx, invoice.ID)
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithDetails(ctx context.Context, userID, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Lines.Product").
		Preload("Payments").
		First(&invoice, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&entity.InvoiceLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Invoice{}, "id = ? AND user_id = ?", id, userID).Error
	})
}

func (r *invoiceRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Where("user_id = ?", userID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.StartDate != nil {
		query = query.Where("issue_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("issue_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting, newest issue date first by default
	sortBy := "issue_date"
	switch params.SortBy {
	case "issue_date", "created_at", "total", "balance", "status":
		sortBy = params.SortBy
	}
	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}
	order := sortBy + " " + sortOrder
	if sortBy != "created_at" {
		order += ", created_at " + sortOrder
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Order(order).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) CountPayments(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("payments.invoice_id = ? AND invoices.user_id = ?", id, userID).
		Count(&count).Error
	return count, err
}

func (r *invoiceRepository) GetLine(ctx context.Context, userID, invoiceID, lineID uuid.UUID) (*entity.InvoiceLine, error) {
	var line entity.InvoiceLine
	err := r.db.WithContext(ctx).
		Joins("JOIN invoices ON invoices.id = invoice_lines.invoice_id").
		Where("invoice_lines.id = ? AND invoice_lines.invoice_id = ? AND invoices.user_id = ?", lineID, invoiceID, userID).
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *invoiceRepository) AddLine(ctx context.Context, userID uuid.UUID, line *entity.InvoiceLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureInvoiceOwned(tx, userID, line.InvoiceID); err != nil {
			return err
		}
		if err := tx.Create(line).Error; err != nil {
			return err
		}
		return recomputeLedger(tx, line.InvoiceID)
	})
}

func (r *invoiceRepository) UpdateLine(ctx context.Context, userID uuid.UUID, line *entity.InvoiceLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureInvoiceOwned(tx, userID, line.InvoiceID); err != nil {
			return err
		}
		if err := tx.Save(line).Error; err != nil {
			return err
		}
		return recomputeLedger(tx, line.InvoiceID)
	})
}

func (r *invoiceRepository) RemoveLine(ctx context.Context, userID, invoiceID, lineID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureInvoiceOwned(tx, userID, invoiceID); err != nil {
			return err
		}
		result := tx.Where("id = ? AND invoice_id = ?", lineID, invoiceID).Delete(&entity.InvoiceLine{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return recomputeLedger(tx, invoiceID)
	})
}

// ensureInvoiceOwned verifies the invoice exists and belongs to the user
func ensureInvoiceOwned(tx *gorm.DB, userID, invoiceID uuid.UUID) error {
	var count int64
	if err := tx.Model(&entity.Invoice{}).
		Where("id = ? AND user_id = ?", invoiceID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
