package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventasapp/ventas-api/internal/domain/enum"
	"github.com/ventasapp/ventas-api/internal/infrastructure/repository"
)

func TestDashboardService_GetSummary(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	invoiceSvc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewClientRepository(db),
		repository.NewProductRepository(db),
	)
	paymentSvc := NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewInvoiceRepository(db),
	)
	svc := NewDashboardService(repository.NewDashboardRepository(db))
	ctx := context.Background()

	client := seedClient(t, db, owner)
	product := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")

	// A pending invoice of 20.00 and a fully paid one of 10.00
	pendingInvoice, err := invoiceSvc.CreateInvoice(ctx, &CreateInvoiceInput{
		UserID:   owner.ID,
		ClientID: client.ID,
		Lines:    []InvoiceLineInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	paidInvoice, err := invoiceSvc.CreateInvoice(ctx, &CreateInvoiceInput{
		UserID:   owner.ID,
		ClientID: client.ID,
		Lines:    []InvoiceLineInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = paymentSvc.CreatePayment(ctx, &CreatePaymentInput{
		UserID:    owner.ID,
		InvoiceID: paidInvoice.ID,
		Amount:    mustDecimal(t, "10.00"),
		Method:    enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	// Another user's data must not leak into the summary
	seedClient(t, db, other)

	summary, err := svc.GetSummary(ctx, owner.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.ClientCount)
	assert.Equal(t, int64(1), summary.PendingInvoiceCount)
	assert.True(t, summary.OutstandingTotal.Equal(mustDecimal(t, "20.00")))
	require.Len(t, summary.RecentInvoices, 2)

	ids := []interface{}{summary.RecentInvoices[0].ID, summary.RecentInvoices[1].ID}
	assert.Contains(t, ids, pendingInvoice.ID)
	assert.Contains(t, ids, paidInvoice.ID)
}

func TestDashboardService_RecentInvoicesOrderedByIssueDate(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	invoiceSvc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewClientRepository(db),
		repository.NewProductRepository(db),
	)
	svc := NewDashboardService(repository.NewDashboardRepository(db))
	ctx := context.Background()

	client := seedClient(t, db, owner)

	// Created first but issued later, must lead the list
	recent, err := invoiceSvc.CreateInvoice(ctx, &CreateInvoiceInput{
		UserID:    owner.ID,
		ClientID:  client.ID,
		IssueDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	backdated, err := invoiceSvc.CreateInvoice(ctx, &CreateInvoiceInput{
		UserID:    owner.ID,
		ClientID:  client.ID,
		IssueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	summary, err := svc.GetSummary(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, summary.RecentInvoices, 2)
	assert.Equal(t, recent.ID, summary.RecentInvoices[0].ID)
	assert.Equal(t, backdated.ID, summary.RecentInvoices[1].ID)
}

func TestDashboardService_EmptySummary(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	svc := NewDashboardService(repository.NewDashboardRepository(db))

	summary, err := svc.GetSummary(context.Background(), owner.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.ClientCount)
	assert.Equal(t, int64(0), summary.PendingInvoiceCount)
	assert.True(t, summary.OutstandingTotal.IsZero())
	assert.Empty(t, summary.RecentInvoices)
}
