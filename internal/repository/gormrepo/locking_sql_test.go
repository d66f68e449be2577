package gormrepo

import (
	"strings"
	"testing"

	"reunion-shop/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLite drops locking clauses, so the variant lock is checked against the
// SQL the production dialects would send. No connection is made.
func TestLockActiveVariants_SQL(t *testing.T) {
	dialects := map[string]gorm.Dialector{
		"mysql": mysql.New(mysql.Config{
			DSN:                       "shop:shop@tcp(127.0.0.1:3306)/reunion?parseTime=true",
			SkipInitializeWithVersion: true,
		}),
		"postgres": postgres.New(postgres.Config{
			DSN: "host=127.0.0.1 user=shop password=shop dbname=reunion port=5432 sslmode=disable",
		}),
	}

	for name, dialector := range dialects {
		t.Run(name, func(t *testing.T) {
			db, err := gorm.Open(dialector, &gorm.Config{
				DryRun:               true,
				DisableAutomaticPing: true,
				Logger:               logger.Default.LogMode(logger.Silent),
			})
			require.NoError(t, err)

			sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				var variants []domain.Variant
				return lockActiveVariants(tx, []string{"b", "a"}).Find(&variants)
			})

			upper := strings.ToUpper(sql)
			assert.Contains(t, upper, "ORDER BY ID")
			assert.True(t, strings.HasSuffix(strings.TrimSpace(upper), "FOR UPDATE"), sql)
			assert.Less(t, strings.Index(upper, "ORDER BY ID"), strings.Index(upper, "FOR UPDATE"))
			assert.Contains(t, sql, "is_active")
		})
	}
}
