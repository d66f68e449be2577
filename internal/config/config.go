package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver       string
	DatabaseURL    string
	MySQLUser      string
	MySQLPassword  string
	MySQLHost      string
	MySQLPort      string
	MySQLDatabase  string
	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisURL           string
	CatalogCacheTTL    int
	CatalogRefreshSpec string

	RabbitMQURL   string
	OrderExchange string

	AdminPassword string
	AdminSecret   string
	ForceHTTP     bool

	OrderCodeMaxAttempts int
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "release"),

		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MySQLUser:      getEnv("MYSQL_USER", "root"),
		MySQLPassword:  getEnv("MYSQL_PASSWORD", ""),
		MySQLHost:      getEnv("MYSQL_HOST", "localhost"),
		MySQLPort:      getEnv("MYSQL_PORT", "3306"),
		MySQLDatabase:  getEnv("MYSQL_DATABASE", "reunion"),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 50),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),

		RedisURL:           getEnv("REDIS_URL", ""),
		CatalogCacheTTL:    getEnvAsInt("CATALOG_CACHE_TTL", 60),
		CatalogRefreshSpec: getEnv("CATALOG_REFRESH_SPEC", "0 */5 * * * *"),

		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		OrderExchange: getEnv("ORDER_EXCHANGE", "order.exchange"),

		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminSecret:   getEnv("ADMIN_SECRET", "hffx-secret"),
		ForceHTTP:     getEnvAsBool("FORCE_HTTP", false),

		OrderCodeMaxAttempts: getEnvAsInt("ORDER_CODE_MAX_ATTEMPTS", 5),
	}
}

// SecureCookies reports whether the admin cookie should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return !c.ForceHTTP && c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
