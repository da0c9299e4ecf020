package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations.
// Every method takes the owning user's ID explicitly; rows belonging to
// other users are invisible through this interface.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error)
	// CountInvoices returns the number of invoices referencing the client
	CountInvoices(ctx context.Context, userID, id uuid.UUID) (int64, error)
}
