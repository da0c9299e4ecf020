package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventasapp/ventas-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a bill issued to a client. Total, Balance and Status
// are derived cache fields: they are recomputed from the invoice's lines
// and payments after every line or payment write and are never edited
// directly by a handler.
type Invoice struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"client_id"`
	IssueDate    time.Time          `gorm:"type:date;not null" json:"issue_date"`
	Total        decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	Balance      decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0" json:"balance"`
	Installments int                `gorm:"default:1" json:"installments"`
	Status       enum.InvoiceStatus `gorm:"size:10;not null;default:'PENDING'" json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Client   *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Lines    []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines,omitempty"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLine is one line item on an invoice. UnitPrice snapshots the
// product's price at the moment the line is created and never changes
// afterwards, so later product price edits do not rewrite history.
type InvoiceLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Invoice Invoice  `gorm:"foreignKey:InvoiceID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice line
func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLine model
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

// Subtotal returns quantity times the snapshot unit price
func (l *InvoiceLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Ledger carries the derived bookkeeping fields of an invoice
type Ledger struct {
	Total   decimal.Decimal
	Balance decimal.Decimal
	Status  enum.InvoiceStatus
}

// ComputeLedger derives an invoice's total, outstanding balance and status
// from its current lines and payments. The result depends only on the
// inputs, so recomputation is idempotent and safe to run redundantly.
//
// An invoice becomes PAID only when the balance is covered AND the total
// is positive: a zero-line invoice stays PENDING. Overpayment drives the
// balance negative and the invoice stays PAID. LATE and CANCELLED are
// never produced here.
func ComputeLedger(lines []InvoiceLine, payments []Payment) Ledger {
	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].Subtotal())
	}

	paid := decimal.Zero
	for i := range payments {
		paid = paid.Add(payments[i].Amount)
	}

	balance := total.Sub(paid)

	status := enum.InvoiceStatusPending
	if balance.LessThanOrEqual(decimal.Zero) && total.GreaterThan(decimal.Zero) {
		status = enum.InvoiceStatusPaid
	}

	return Ledger{Total: total, Balance: balance, Status: status}
}
