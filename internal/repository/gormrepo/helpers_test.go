package gormrepo

import (
	"path/filepath"
	"testing"

	"reunion-shop/internal/domain"
	"reunion-shop/internal/infra/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := filepath.Join(t.TempDir(), "repo.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func ptr[T any](v T) *T { return &v }

func createProduct(t *testing.T, db *gorm.DB, name string, active bool, variants ...domain.Variant) *domain.Product {
	p := &domain.Product{Name: name, IsActive: active, Variants: variants}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createOrder(t *testing.T, db *gorm.DB, o domain.Order) *domain.Order {
	if o.DeliveryMethod == "" {
		o.DeliveryMethod = domain.DeliveryPickup
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = domain.PaymentPending
	}
	if o.FulfillmentStatus == "" {
		o.FulfillmentStatus = domain.FulfillmentPresale
	}
	if o.Phone == "" {
		o.Phone = "13800138000"
	}
	require.NoError(t, db.Create(&o).Error)
	return &o
}
