package repository

import (
	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recomputeLedger rereads an invoice's lines and payments and writes the
// derived total, balance and status back. It must run inside the same
// transaction as the line or payment write that triggered it; the invoice
// row is locked for the remainder of the transaction so concurrent writers
// serialize instead of both reading stale sums.
//
// SQLite has no SELECT ... FOR UPDATE and already serializes writers, so
// the lock clause is skipped there.
func recomputeLedger(tx *gorm.DB, invoiceID uuid.UUID) error {
	var invoice entity.Invoice
	query := tx.Where("id = ?", invoiceID)
	if tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(&invoice).Error; err != nil {
		return err
	}

	var lines []entity.InvoiceLine
	if err := tx.Where("invoice_id = ?", invoiceID).Find(&lines).Error; err != nil {
		return err
	}

	var payments []entity.Payment
	if err := tx.Where("invoice_id = ?", invoiceID).Find(&payments).Error; err != nil {
		return err
	}

	ledger := entity.ComputeLedger(lines, payments)

	return tx.Model(&entity.Invoice{}).Where("id = ?", invoiceID).
		Updates(map[string]interface{}{
			"total":   ledger.Total,
			"balance": ledger.Balance,
			"status":  ledger.Status,
		}).Error
}
