package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/domain/enum"
	"github.com/ventasapp/ventas-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations.
// Every method takes the owning user's ID explicitly. Implementations
// recompute the invoice's total, balance and status inside the same
// transaction as any line write.
type InvoiceRepository interface {
	// Create persists the invoice together with any inline lines
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Invoice, error)
	// GetWithDetails loads the invoice with its client, lines and payments
	GetWithDetails(ctx context.Context, userID, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	// Delete removes the invoice and its lines
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// CountPayments returns the number of payments recorded against the invoice
	CountPayments(ctx context.Context, userID, id uuid.UUID) (int64, error)

	GetLine(ctx context.Context, userID, invoiceID, lineID uuid.UUID) (*entity.InvoiceLine, error)
	AddLine(ctx context.Context, userID uuid.UUID, line *entity.InvoiceLine) error
	UpdateLine(ctx context.Context, userID uuid.UUID, line *entity.InvoiceLine) error
	RemoveLine(ctx context.Context, userID, invoiceID, lineID uuid.UUID) error
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.InvoiceStatus
	ClientID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
