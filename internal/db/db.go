// Package db opens the database, migrates the schema and seeds the
// authorization profiles and document templates.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/go-invoicing/internal/config"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnknownDriver is returned for a DB_DRIVER other than postgres or sqlite.
var ErrUnknownDriver = errors.New("unknown database driver")

// Options tune Open.
type Options struct {
	Attempts int
	Delay    time.Duration
	Debug    bool
	Log      zerolog.Logger
}

// DefaultOptions retries for about twenty seconds, leaving postgres time to
// start next to the application.
func DefaultOptions() Options {
	return Options{Attempts: 10, Delay: 2 * time.Second}
}

func dialector(cfg config.DatabaseConfig) (gorm.Dialector, string, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(cfg.DSN()), cfg.DSN(), nil
	case "postgres", "":
		dsn := NormalizeDSN(cfg.DSN())
		return postgres.Open(dsn), dsn, nil
	}
	return nil, "", fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

// Open connects with retries and checks the connection. Gorm logs only when
// opts.Debug is set.
func Open(ctx context.Context, cfg config.DatabaseConfig, opts Options) (*gorm.DB, error) {
	d, dsn, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	level := logger.Silent
	if opts.Debug {
		level = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(level), TranslateError: true}
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}

	var db *gorm.DB
	for i := 1; i <= opts.Attempts; i++ {
		db, err = gorm.Open(d, gcfg)
		if err == nil {
			err = db.WithContext(ctx).Exec("SELECT 1").Error
		}
		if err == nil {
			break
		}
		opts.Log.Warn().Err(err).Int("attempt", i).Int("of", opts.Attempts).Msg("database not ready")
		if i < opts.Attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	opts.Log.Info().Str("driver", cfg.Driver).Str("dsn", MaskDSN(dsn)).Msg("database connected")
	return db, nil
}

// Migrate creates or updates every table with gorm's AutoMigrate.
func Migrate(db *gorm.DB) error {
	for _, m := range models.All() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	for _, table := range []string{"invoices", "invoice_lines", "invoice_payments", "project_members"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}
