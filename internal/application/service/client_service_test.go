package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/infrastructure/repository"
	"github.com/ventasapp/ventas-api/pkg/apperror"
	"github.com/ventasapp/ventas-api/pkg/pagination"
)

func TestClientService_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	svc := NewClientService(repository.NewClientRepository(db))
	ctx := context.Background()

	phone := "+54 11 5555-0001"
	created, err := svc.CreateClient(ctx, &CreateClientInput{
		UserID:  owner.ID,
		Name:    "Maria",
		Surname: "Gomez",
		Email:   "maria@example.com",
		Phone:   &phone,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.GetClient(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.Name)
	assert.Equal(t, "Maria Gomez", got.FullName())
	require.NotNil(t, got.Phone)
	assert.Equal(t, phone, *got.Phone)
}

func TestClientService_GetIsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	svc := NewClientService(repository.NewClientRepository(db))
	ctx := context.Background()

	client := seedClient(t, db, owner)

	_, err := svc.GetClient(ctx, other.ID, client.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestClientService_Update(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	svc := NewClientService(repository.NewClientRepository(db))
	ctx := context.Background()

	client := seedClient(t, db, owner)

	newName := "Ana"
	updated, err := svc.UpdateClient(ctx, &UpdateClientInput{
		UserID: owner.ID,
		ID:     client.ID,
		Name:   &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "Gomez", updated.Surname)
}

func TestClientService_List(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	svc := NewClientService(repository.NewClientRepository(db))
	ctx := context.Background()

	seedClient(t, db, owner)
	seedClient(t, db, other)

	params := pagination.DefaultPagination()
	result, err := svc.ListClients(ctx, owner.ID, params, "")
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Pagination.Total)
}

func TestClientService_ListSearchIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	svc := NewClientService(repository.NewClientRepository(db))
	ctx := context.Background()

	maria := seedClient(t, db, owner)
	_, err := svc.CreateClient(ctx, &CreateClientInput{
		UserID:  owner.ID,
		Name:    "Pedro",
		Surname: "Lopez",
		Email:   "pedro@example.com",
	})
	require.NoError(t, err)

	result, err := svc.ListClients(ctx, owner.ID, pagination.DefaultPagination(), "gomez")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, maria.ID, result.Items[0].ID)

	result, err = svc.ListClients(ctx, owner.ID, pagination.DefaultPagination(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestClientService_Delete(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	svc := NewClientService(repository.NewClientRepository(db))
	ctx := context.Background()

	client := seedClient(t, db, owner)

	require.NoError(t, svc.DeleteClient(ctx, owner.ID, client.ID))

	_, err := svc.GetClient(ctx, owner.ID, client.ID)
	assert.Error(t, err)
}

func TestClientService_DeleteBlockedByInvoices(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	svc := NewClientService(repository.NewClientRepository(db))
	invoiceRepo := repository.NewInvoiceRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, owner)
	product := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")

	invoice := &entity.Invoice{
		UserID:       owner.ID,
		ClientID:     client.ID,
		Installments: 1,
		Lines: []entity.InvoiceLine{
			{ProductID: product.ID, Quantity: 1, UnitPrice: product.Price},
		},
	}
	require.NoError(t, invoiceRepo.Create(ctx, invoice))

	err := svc.DeleteClient(ctx, owner.ID, client.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	// Still retrievable after the rejected delete
	_, err = svc.GetClient(ctx, owner.ID, client.ID)
	assert.NoError(t, err)
}
