package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations.
// Every method takes the owning user's ID explicitly.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error)
	// CountInvoiceLines returns the number of invoice lines referencing the product
	CountInvoiceLines(ctx context.Context, userID, id uuid.UUID) (int64, error)
}
