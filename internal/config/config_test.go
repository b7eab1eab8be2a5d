package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "DATABASE_DSN", "INVOICES_TAX_EXCLUSIVE", "INVOICES_NUMBER_FORMAT", "INVOICES_UNITS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Invoices.TaxExclusive)
	assert.False(t, cfg.Invoices.DiscountAfterTax)
	assert.Equal(t, "#INV/%%YEAR%%%%MONTH%%%%DAY%%-%%ID%%", cfg.Invoices.NumberFormat)
	assert.Equal(t, "classic", cfg.Invoices.Template)
	assert.Nil(t, cfg.Invoices.Units)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("INVOICES_TAX_EXCLUSIVE", "0")
	t.Setenv("INVOICES_DISCOUNT_AFTER_TAX", "yes")
	t.Setenv("INVOICES_UNITS", "hour, day\n\npiece")
	cfg := Load()
	assert.Equal(t, "/tmp/x.db", cfg.Database.DSN())
	assert.False(t, cfg.Invoices.TaxExclusive)
	assert.True(t, cfg.Invoices.DiscountAfterTax)
	assert.Equal(t, []string{"hour", "day", "piece"}, cfg.Invoices.Units)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Driver: "postgres", Host: "h", Port: 5, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5 user=u password=p dbname=d sslmode=disable", d.DSN())
	assert.Equal(t, "postgres://u:p@h:5/d?sslmode=disable", d.URL())
	d.DSNOverride = "postgres://other"
	assert.Equal(t, "postgres://other", d.DSN())
}
