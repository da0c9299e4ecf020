package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/domain/enum"
	"github.com/ventasapp/ventas-api/internal/infrastructure/repository"
	"github.com/ventasapp/ventas-api/pkg/apperror"
	"gorm.io/gorm"
)

func newPaymentTestServices(t *testing.T) (*PaymentService, *InvoiceService, *gorm.DB, *entity.User) {
	t.Helper()

	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceSvc := NewInvoiceService(
		invoiceRepo,
		repository.NewClientRepository(db),
		repository.NewProductRepository(db),
	)
	paymentSvc := NewPaymentService(repository.NewPaymentRepository(db), invoiceRepo)
	return paymentSvc, invoiceSvc, db, owner
}

func createTestInvoice(t *testing.T, svc *InvoiceService, db *gorm.DB, owner *entity.User) *entity.Invoice {
	t.Helper()

	ctx := context.Background()
	client := seedClient(t, db, owner)
	yerba := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")
	termo := seedProduct(t, db, owner, "Termo 1L", "5.00")

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		UserID:   owner.ID,
		ClientID: client.ID,
		Lines: []InvoiceLineInput{
			{ProductID: yerba.ID, Quantity: 2},
			{ProductID: termo.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.True(t, invoice.Total.Equal(mustDecimal(t, "25.00")))
	return invoice
}

func TestPaymentService_FullPaymentSettlesInvoice(t *testing.T) {
	paymentSvc, invoiceSvc, db, owner := newPaymentTestServices(t)
	ctx := context.Background()

	invoice := createTestInvoice(t, invoiceSvc, db, owner)

	_, err := paymentSvc.CreatePayment(ctx, &CreatePaymentInput{
		UserID:    owner.ID,
		InvoiceID: invoice.ID,
		Amount:    mustDecimal(t, "25.00"),
		Method:    enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	got, err := invoiceSvc.GetInvoice(ctx, owner.ID, invoice.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
	assert.Equal(t, enum.InvoiceStatusPaid, got.Status)
}

func TestPaymentService_PartialPaymentsAccumulate(t *testing.T) {
	paymentSvc, invoiceSvc, db, owner := newPaymentTestServices(t)
	ctx := context.Background()

	invoice := createTestInvoice(t, invoiceSvc, db, owner)

	for _, amount := range []string{"10.00", "10.00"} {
		_, err := paymentSvc.CreatePayment(ctx, &CreatePaymentInput{
			UserID:    owner.ID,
			InvoiceID: invoice.ID,
			Amount:    mustDecimal(t, amount),
			Method:    enum.PaymentMethodTransfer,
		})
		require.NoError(t, err)
	}

	got, err := invoiceSvc.GetInvoice(ctx, owner.ID, invoice.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(mustDecimal(t, "5.00")))
	assert.Equal(t, enum.InvoiceStatusPending, got.Status)
}

func TestPaymentService_OverpaymentStaysPaid(t *testing.T) {
	paymentSvc, invoiceSvc, db, owner := newPaymentTestServices(t)
	ctx := context.Background()

	invoice := createTestInvoice(t, invoiceSvc, db, owner)

	_, err := paymentSvc.CreatePayment(ctx, &CreatePaymentInput{
		UserID:    owner.ID,
		InvoiceID: invoice.ID,
		Amount:    mustDecimal(t, "30.00"),
		Method:    enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	got, err := invoiceSvc.GetInvoice(ctx, owner.ID, invoice.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(mustDecimal(t, "-5.00")))
	assert.Equal(t, enum.InvoiceStatusPaid, got.Status)
}

func TestPaymentService_RejectsAmountBelowMinimum(t *testing.T) {
	paymentSvc, invoiceSvc, db, owner := newPaymentTestServices(t)
	ctx := context.Background()

	invoice := createTestInvoice(t, invoiceSvc, db, owner)

	_, err := paymentSvc.CreatePayment(ctx, &CreatePaymentInput{
		UserID:    owner.ID,
		InvoiceID: invoice.ID,
		Amount:    mustDecimal(t, "0.00"),
		Method:    enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestPaymentService_RejectsInvalidMethod(t *testing.T) {
	paymentSvc, invoiceSvc, db, owner := newPaymentTestServices(t)
	ctx := context.Background()

	invoice := createTestInvoice(t, invoiceSvc, db, owner)

	_, err := paymentSvc.CreatePayment(ctx, &CreatePaymentInput{
		UserID:    owner.ID,
		InvoiceID: invoice.ID,
		Amount:    mustDecimal(t, "10.00"),
		Method:    enum.PaymentMethod("CHEQUE"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestPaymentService_RejectsForeignInvoice(t *testing.T) {
	paymentSvc, invoiceSvc, db, owner := newPaymentTestServices(t)
	ctx := context.Background()

	invoice := createTestInvoice(t, invoiceSvc, db, owner)
	other := seedUser(t, db, "other@example.com")

	_, err := paymentSvc.CreatePayment(ctx, &CreatePaymentInput{
		UserID:    other.ID,
		InvoiceID: invoice.ID,
		Amount:    mustDecimal(t, "10.00"),
		Method:    enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestPaymentService_DeleteReopensInvoice(t *testing.T) {
	paymentSvc, invoiceSvc, db, owner := newPaymentTestServices(t)
	ctx := context.Background()

	invoice := createTestInvoice(t, invoiceSvc, db, owner)

	payment, err := paymentSvc.CreatePayment(ctx, &CreatePaymentInput{
		UserID:    owner.ID,
		InvoiceID: invoice.ID,
		Amount:    mustDecimal(t, "25.00"),
		Method:    enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	got, err := invoiceSvc.GetInvoice(ctx, owner.ID, invoice.ID)
	require.NoError(t, err)
	require.Equal(t, enum.InvoiceStatusPaid, got.Status)

	require.NoError(t, paymentSvc.DeletePayment(ctx, owner.ID, payment.ID))

	got, err = invoiceSvc.GetInvoice(ctx, owner.ID, invoice.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(mustDecimal(t, "25.00")))
	assert.Equal(t, enum.InvoiceStatusPending, got.Status)
}

func TestPaymentService_UpdateAmountRecomputes(t *testing.T) {
	paymentSvc, invoiceSvc, db, owner := newPaymentTestServices(t)
	ctx := context.Background()

	invoice := createTestInvoice(t, invoiceSvc, db, owner)

	payment, err := paymentSvc.CreatePayment(ctx, &CreatePaymentInput{
		UserID:    owner.ID,
		InvoiceID: invoice.ID,
		Amount:    mustDecimal(t, "10.00"),
		Method:    enum.PaymentMethodCash,
		PaidAt:    time.Now(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, payment.ID)

	newAmount := mustDecimal(t, "25.00")
	_, err = paymentSvc.UpdatePayment(ctx, &UpdatePaymentInput{
		UserID: owner.ID,
		ID:     payment.ID,
		Amount: &newAmount,
	})
	require.NoError(t, err)

	got, err := invoiceSvc.GetInvoice(ctx, owner.ID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, got.Status)
}

func TestPaymentService_ListByInvoice(t *testing.T) {
	paymentSvc, invoiceSvc, db, owner := newPaymentTestServices(t)
	ctx := context.Background()

	invoice := createTestInvoice(t, invoiceSvc, db, owner)

	for _, amount := range []string{"5.00", "10.00"} {
		_, err := paymentSvc.CreatePayment(ctx, &CreatePaymentInput{
			UserID:    owner.ID,
			InvoiceID: invoice.ID,
			Amount:    mustDecimal(t, amount),
			Method:    enum.PaymentMethodCash,
		})
		require.NoError(t, err)
	}

	payments, err := paymentSvc.ListPayments(ctx, owner.ID, invoice.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}
