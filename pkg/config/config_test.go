package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Sales.RecentLimit)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("SALES_RECENT_LIMIT", "10")
	t.Setenv("DB_MIGRATE_ON_START", "true")
	t.Setenv("HTTP_PORT", "9090")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Sales.RecentLimit)
	assert.True(t, cfg.DB.MigrateOnStart)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestValidate_DriverInvalido(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Driver: "mongo"}, Sales: SalesConfig{RecentLimit: 5}}
	require.Error(t, cfg.Validate())
}

func TestValidate_MemoriaNoEnProduccion(t *testing.T) {
	cfg := &Config{App: AppConfig{Env: "production"}, Store: StoreConfig{Driver: StoreDriverMemory}}
	require.Error(t, cfg.Validate())
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "lotes", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/lotes?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
