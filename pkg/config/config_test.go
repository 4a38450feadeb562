package config_test

import (
	"testing"

	"github.com/jhoicas/Carnes-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "10", cfg.Billing.TaxRate.String())
	assert.Equal(t, "INV", cfg.Billing.InvoicePrefix)
	assert.Equal(t, 14, cfg.Billing.PaymentTermDays)
	assert.Equal(t, 1000, cfg.Log.BufferSize)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("BILLING_TAX_RATE", "13")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_BUFFER_SIZE", "50")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "13", cfg.Billing.TaxRate.String())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 50, cfg.Log.BufferSize)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "carnes", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/carnes?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
