package main

import (
	"context"
	"fmt"
	"time"

	"github.com/diewo77/go-invoicing/auth"
	"github.com/diewo77/go-invoicing/internal/config"
	"github.com/diewo77/go-invoicing/internal/db"
	"github.com/diewo77/go-invoicing/internal/finance"
	"github.com/diewo77/go-invoicing/internal/logger"
	"github.com/diewo77/go-invoicing/internal/notify"
	"github.com/diewo77/go-invoicing/internal/policy"
	"github.com/diewo77/go-invoicing/internal/report"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/diewo77/go-invoicing/internal/settings"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var version = "0.1.0"

// app is what every command works with once the database is open.
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	settings *settings.Provider
	source   *settings.DBSource
	svc      *services.InvoiceService
	log      zerolog.Logger
	user     uint
}

// ctx returns the command context acting as the --user.
func (a *app) ctx(cmd *cobra.Command) context.Context {
	return auth.WithUserID(cmd.Context(), a.user)
}

type rootOptions struct {
	envFile   string
	user      uint
	publicURL string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	root := &cobra.Command{
		Use:           "invoices",
		Short:         "Manage invoices, payments and invoice reports",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd, opts)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().UintVar(&opts.user, "user", 0, "id of the acting user")
	root.PersistentFlags().StringVar(&opts.publicURL, "public-url", "", "base address of public invoice links")

	root.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newGrantCmd(a),
		newProjectCmd(a),
		newSettingCmd(a),
		newNumberCmd(a),
		newCreateCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newStatusCmd(a),
		newCopyCmd(a),
		newCommentCmd(a),
		newDeleteCmd(a),
		newLineCmd(a),
		newPayCmd(a),
		newUnpayCmd(a),
		newReportCmd(a),
		newLinkCmd(a),
		newSumsCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command, opts *rootOptions) error {
	// A missing dotenv file is not an error.
	_ = godotenv.Load(opts.envFile)

	a.cfg = config.Load()
	lc := logger.DefaultConfig()
	lc.Level, lc.Format, lc.Output = a.cfg.Log.Level, a.cfg.Log.Format, a.cfg.Log.Output
	if err := logger.Setup(lc); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.log = logger.WithComponent("cli")
	a.user = opts.user

	dbOpts := db.DefaultOptions()
	dbOpts.Debug = a.cfg.App.DBDebug
	dbOpts.Log = logger.WithComponent("db")
	conn, err := db.Open(cmd.Context(), a.cfg.Database, dbOpts)
	if err != nil {
		return err
	}
	a.db = conn

	a.source = settings.NewDBSource(conn)
	a.settings = settings.New(a.cfg.Invoices, a.source)
	a.svc, err = services.NewInvoiceService(services.Dependencies{
		Store:    store.New(conn),
		Settings: a.settings,
		Auth:     policy.NewDBPolicy(conn, time.Minute),
		Notifier: notify.Multi{
			notify.LogNotifier{Log: logger.WithComponent("notify")},
			notify.StoreNotifier{DB: conn},
		},
		Finance:  finance.NewLedger(conn),
		Renderer: report.PDFRenderer{},
		BaseURL:  opts.publicURL,
		Log:      logger.WithComponent("invoices"),
	})
	return err
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
