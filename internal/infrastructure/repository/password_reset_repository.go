package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ventasapp/ventas-api/internal/domain/entity"
	domainRepo "github.com/ventasapp/ventas-api/internal/domain/repository"
	"gorm.io/gorm"
)

type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetTokenRepository creates a new password reset token repository
func NewPasswordResetTokenRepository(db *gorm.DB) domainRepo.PasswordResetTokenRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *passwordResetRepository) GetByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	var reset entity.PasswordResetToken
	err := r.db.WithContext(ctx).First(&reset, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reset, err
}

func (r *passwordResetRepository) MarkAsUsed(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Model(&entity.PasswordResetToken{}).
		Where("token = ?", token).
		Update("used", true).Error
}

func (r *passwordResetRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Delete(&entity.PasswordResetToken{}, "email = ?", email).Error
}

func (r *passwordResetRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).Delete(&entity.PasswordResetToken{}, "expires_at < ?", time.Now()).Error
}
