package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 90, cfg.Pharmacy.ExpiryWarningDays)
	assert.Equal(t, 20, cfg.Pharmacy.StockCritical)
	assert.Equal(t, 50, cfg.Pharmacy.StockLow)
	assert.Equal(t, 100, cfg.Pharmacy.MaxResults)
	assert.Equal(t, "facturas", cfg.Pharmacy.InvoiceDir)
	assert.Equal(t, "Farmacia PharmGest", cfg.Pharmacy.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("EXPIRY_WARNING_DAYS", "30")
	t.Setenv("STOCK_CRITICAL", "5")
	t.Setenv("STOCK_LOW", "10")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 30, cfg.Pharmacy.ExpiryWarningDays)
	assert.Equal(t, 5, cfg.Pharmacy.StockCritical)
	assert.Equal(t, 10, cfg.Pharmacy.StockLow)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_InvalidThresholds(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STOCK_CRITICAL", "80")
	t.Setenv("STOCK_LOW", "50")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN_EscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "farma", Password: "p@ss:w/rd", DBName: "pharmgest", SSLMode: "disable"}
	assert.Equal(t, "postgres://farma:p%40ss%3Aw%2Frd@db:5432/pharmgest?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
