package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventasapp/ventas-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment records money received against an invoice
type Payment struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount    decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method    enum.PaymentMethod `gorm:"size:10;not null;default:'CASH'" json:"method"`
	PaidAt    time.Time          `gorm:"type:date;not null" json:"paid_at"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
