package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/domain/repository"
)

// ProfileService handles store profile operations
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetProfile returns the user's profile, creating an empty one on first access
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &entity.Profile{UserID: userID}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

// UpdateProfileInput represents the update profile input
type UpdateProfileInput struct {
	UserID    uuid.UUID
	StoreName *string
}

// UpdateProfile updates the user's profile
func (s *ProfileService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.Profile, error) {
	profile, err := s.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.StoreName != nil {
		profile.StoreName = *input.StoreName
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
