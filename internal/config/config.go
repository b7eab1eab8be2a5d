// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Invoices InvoicesConfig
	Log      LogConfig
}

// DatabaseConfig holds connection settings for postgres or sqlite.
type DatabaseConfig struct {
	Driver   string // postgres or sqlite
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite file
	// DSN overrides every other field when set.
	DSNOverride string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev        bool
	Migrations bool
	DBDebug    bool
}

// InvoicesConfig holds the global invoice settings. Project overrides are
// stored in the database.
type InvoicesConfig struct {
	TaxExclusive      bool
	DiscountAfterTax  bool
	TotalIncludingTax bool
	DisableTaxes      bool
	PublicLinks       bool
	NumberFormat      string
	Template          string
	Units             []string
	Language          string
	FinanceEnabled    bool
	ProductsEnabled   bool
	Secret            string
	CompanyName       string
	CompanyInfo       string
	Currency          string
}

// LogConfig mirrors logger.LogConfig so config stays free of logger imports.
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.DSNOverride != "" {
		return d.DSNOverride
	}
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format, as expected by
// golang-migrate.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", "postgres"),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "invoices"),
			Password:    getEnv("DB_PASSWORD", "invoices123"),
			DBName:      getEnv("DB_NAME", "invoices"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			Path:        getEnv("DB_PATH", "invoices.db"),
			DSNOverride: os.Getenv("DATABASE_DSN"),
		},
		App: AppConfig{
			Dev:        getEnvBool("DEV", true),
			Migrations: getEnvBool("MIGRATIONS", false),
			DBDebug:    getEnvBool("DB_DEBUG", false),
		},
		Invoices: InvoicesConfig{
			TaxExclusive:      getEnvBool("INVOICES_TAX_EXCLUSIVE", true),
			DiscountAfterTax:  getEnvBool("INVOICES_DISCOUNT_AFTER_TAX", false),
			TotalIncludingTax: getEnvBool("INVOICES_TOTAL_INCLUDING_TAX", false),
			DisableTaxes:      getEnvBool("INVOICES_DISABLE_TAXES", false),
			PublicLinks:       getEnvBool("INVOICES_PUBLIC_LINKS", false),
			NumberFormat:      getEnv("INVOICES_NUMBER_FORMAT", "#INV/%%YEAR%%%%MONTH%%%%DAY%%-%%ID%%"),
			Template:          getEnv("INVOICES_TEMPLATE", "classic"),
			Units:             getEnvList("INVOICES_UNITS"),
			Language:          getEnv("INVOICES_LANGUAGE", "en"),
			FinanceEnabled:    getEnvBool("INVOICES_FINANCE_ENABLED", false),
			ProductsEnabled:   getEnvBool("INVOICES_PRODUCTS_ENABLED", false),
			Secret:            os.Getenv("INVOICES_SECRET"),
			CompanyName:       os.Getenv("INVOICES_COMPANY_NAME"),
			CompanyInfo:       os.Getenv("INVOICES_COMPANY_INFO"),
			Currency:          getEnv("INVOICES_CURRENCY", "EUR"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			Output: getEnv("LOG_OUTPUT", "stderr"),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}

// getEnvList splits a comma or newline separated value.
func getEnvList(key string) []string {
	return SplitList(os.Getenv(key))
}

// SplitList splits on commas and newlines, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' }) {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
