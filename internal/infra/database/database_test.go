package database

import (
	"testing"

	"reunion-shop/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDialectorFor(t *testing.T) {
	d, err := dialectorFor(&config.Config{DBDriver: "mysql", MySQLUser: "u", MySQLHost: "h", MySQLPort: "3306", MySQLDatabase: "db"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = dialectorFor(&config.Config{DBDriver: "postgres", DatabaseURL: "postgres://u:p@localhost:5432/db"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = dialectorFor(&config.Config{DBDriver: "postgres"})
	assert.Error(t, err)

	_, err = dialectorFor(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	for _, table := range []string{"products", "product_variants", "orders", "order_items"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("orders", "idx_orders_order_code"))
}
