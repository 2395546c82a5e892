package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	envKeys := []string{
		"DEBTTRACK_APP_NAME",
		"DEBTTRACK_APP_ENV",
		"DEBTTRACK_APP_PORT",
		"DEBTTRACK_DATABASE_HOST",
		"DEBTTRACK_DATABASE_PORT",
		"DEBTTRACK_DATABASE_PASSWORD",
		"DEBTTRACK_REDIS_HOST",
		"DEBTTRACK_JWT_SECRET",
		"DEBTTRACK_JWT_EXPIRATION",
		"DEBTTRACK_DEBT_DEFAULT_LIMIT",
		"DEBTTRACK_DEBT_MAX_LIMIT",
	}

	originalEnv := map[string]string{}
	for _, k := range envKeys {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for _, k := range envKeys {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "debttrack", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, 168*time.Hour, cfg.JWT.Expiration)
		assert.Equal(t, "debttrack", cfg.JWT.Issuer)
		assert.Equal(t, "0.01", cfg.Debt.MinAmount)
		assert.Equal(t, "999999999.99", cfg.Debt.MaxAmount)
		assert.Equal(t, 1, cfg.Debt.DefaultPage)
		assert.Equal(t, 10, cfg.Debt.DefaultLimit)
		assert.Equal(t, 100, cfg.Debt.MaxLimit)
		assert.Equal(t, 600*time.Second, cfg.Debt.ListCacheTTL)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("DEBTTRACK_APP_PORT", "9090")
		os.Setenv("DEBTTRACK_DATABASE_HOST", "db.internal")
		os.Setenv("DEBTTRACK_DATABASE_PASSWORD", "s3cret")
		os.Setenv("DEBTTRACK_JWT_EXPIRATION", "1h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "s3cret", cfg.Database.Password)
		assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	})

	t.Run("rejects default jwt secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("DEBTTRACK_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("rejects default limit above max limit", func(t *testing.T) {
		clearEnv()
		os.Setenv("DEBTTRACK_DEBT_DEFAULT_LIMIT", "500")
		os.Setenv("DEBTTRACK_DEBT_MAX_LIMIT", "100")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_limit")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "debttrack",
		Password: "pw",
		DBName:   "debttrack",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=debttrack password=pw dbname=debttrack sslmode=disable",
		cfg.DSN())
	assert.Equal(t,
		"postgres://debttrack:pw@localhost:5432/debttrack?sslmode=disable",
		cfg.URL())
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())
}
