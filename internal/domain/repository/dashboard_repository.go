package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
)

// DashboardRepository defines interface for dashboard aggregation queries
type DashboardRepository interface {
	// GetClientCount returns the number of clients the user owns
	GetClientCount(ctx context.Context, userID uuid.UUID) (int64, error)

	// GetPendingInvoiceCount returns the number of pending invoices
	GetPendingInvoiceCount(ctx context.Context, userID uuid.UUID) (int64, error)

	// GetOutstandingTotal returns the summed balance of pending invoices
	GetOutstandingTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)

	// GetRecentInvoices returns the most recently created invoices
	GetRecentInvoices(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Invoice, error)
}
