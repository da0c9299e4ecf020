package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/domain/enum"
	domainRepo "github.com/ventasapp/ventas-api/internal/domain/repository"
	"gorm.io/gorm"
)

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *gorm.DB) domainRepo.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetClientCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Client{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) GetPendingInvoiceCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("user_id = ? AND status = ?", userID, enum.InvoiceStatusPending).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) GetOutstandingTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Select("COALESCE(SUM(balance), 0) as total").
		Where("user_id = ? AND status = ?", userID, enum.InvoiceStatusPending).
		Scan(&result).Error
	return result.Total, err
}

func (r *dashboardRepository) GetRecentInvoices(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Client").
		Order("issue_date DESC, created_at DESC").
		Limit(limit).
		Find(&invoices).Error
	return invoices, err
}
