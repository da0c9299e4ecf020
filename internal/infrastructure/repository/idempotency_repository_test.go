package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newIdempotencyTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.IdempotencyKey{}))
	return db
}

func TestIdempotencyRepository_RoundTrip(t *testing.T) {
	repo := NewIdempotencyRepository(newIdempotencyTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	err := repo.Create(ctx, &entity.IdempotencyKey{
		Key:          "pay-123",
		UserID:       userID,
		Endpoint:     "POST /api/v1/invoices/:id/payments",
		ResponseCode: 201,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	got, err := repo.GetByKey(ctx, "pay-123", userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	// Another user never sees the cached response
	other, err := repo.GetByKey(ctx, "pay-123", uuid.New())
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestIdempotencyRepository_ExpiredKeysAreInvisible(t *testing.T) {
	repo := NewIdempotencyRepository(newIdempotencyTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	err := repo.Create(ctx, &entity.IdempotencyKey{
		Key:          "pay-stale",
		UserID:       userID,
		Endpoint:     "POST /api/v1/invoices/:id/payments",
		ResponseCode: 201,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	got, err := repo.GetByKey(ctx, "pay-stale", userID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIdempotencyRepository_ReusedKeyOverwritesStaleRow(t *testing.T) {
	repo := NewIdempotencyRepository(newIdempotencyTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	err := repo.Create(ctx, &entity.IdempotencyKey{
		Key:          "pay-reuse",
		UserID:       userID,
		Endpoint:     "POST /api/v1/invoices/:id/payments",
		ResponseCode: 201,
		ResponseBody: `{"first":true}`,
		ExpiresAt:    time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	err = repo.Create(ctx, &entity.IdempotencyKey{
		Key:          "pay-reuse",
		UserID:       userID,
		Endpoint:     "POST /api/v1/invoices/:id/payments",
		ResponseCode: 201,
		ResponseBody: `{"second":true}`,
		ExpiresAt:    time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	got, err := repo.GetByKey(ctx, "pay-reuse", userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"second":true}`, got.ResponseBody)
}
