package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/domain/repository"
)

// recentInvoiceLimit is how many invoices the dashboard shows
const recentInvoiceLimit = 5

// DashboardSummary aggregates the user's headline numbers
type DashboardSummary struct {
	ClientCount         int64            `json:"client_count"`
	PendingInvoiceCount int64            `json:"pending_invoice_count"`
	OutstandingTotal    decimal.Decimal  `json:"outstanding_total"`
	RecentInvoices      []entity.Invoice `json:"recent_invoices"`
}

// DashboardService handles dashboard aggregation
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetSummary returns the user's dashboard numbers
func (s *DashboardService) GetSummary(ctx context.Context, userID uuid.UUID) (*DashboardSummary, error) {
	clients, err := s.dashboardRepo.GetClientCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := s.dashboardRepo.GetPendingInvoiceCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	outstanding, err := s.dashboardRepo.GetOutstandingTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.dashboardRepo.GetRecentInvoices(ctx, userID, recentInvoiceLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		ClientCount:         clients,
		PendingInvoiceCount: pending,
		OutstandingTotal:    outstanding,
		RecentInvoices:      recent,
	}, nil
}
