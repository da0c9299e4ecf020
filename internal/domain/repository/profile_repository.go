package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
)

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	Create(ctx context.Context, profile *entity.Profile) error
	Update(ctx context.Context, profile *entity.Profile) error
}
