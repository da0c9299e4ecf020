package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a unique in-memory database per test to avoid
// cross-test collisions via the shared cache.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.User{},
		&entity.PasswordResetToken{},
		&entity.Client{},
		&entity.Product{},
		&entity.Invoice{},
		&entity.InvoiceLine{},
		&entity.Payment{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		FirstName: "Test",
		LastName:  "User",
		Username:  email,
		Email:     email,
		Password:  "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedClient(t *testing.T, db *gorm.DB, user *entity.User) *entity.Client {
	t.Helper()

	client := &entity.Client{
		UserID:  user.ID,
		Name:    "Maria",
		Surname: "Gomez",
		Email:   "maria@example.com",
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func seedProduct(t *testing.T, db *gorm.DB, user *entity.User, name, price string) *entity.Product {
	t.Helper()

	p, err := decimal.NewFromString(price)
	require.NoError(t, err)

	product := &entity.Product{
		UserID: user.ID,
		Name:   name,
		Price:  p,
		Stock:  10,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
