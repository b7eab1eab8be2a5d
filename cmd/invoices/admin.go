package main

import (
	"fmt"
	"strings"

	"github.com/diewo77/go-invoicing/internal/db"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	var sqlMode, down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case down:
				if err := db.MigrateSQLDown(a.cfg.Database.DSN()); err != nil {
					return err
				}
			case sqlMode:
				if err := db.MigrateSQL(a.cfg.Database.DSN()); err != nil {
					return err
				}
			default:
				if err := db.Migrate(a.db); err != nil {
					return err
				}
			}
			a.log.Info().Bool("sql", sqlMode || down).Bool("down", down).Msg("migrations applied")
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
	cmd.Flags().BoolVar(&sqlMode, "sql", false, "apply the embedded SQL migrations (postgres only)")
	cmd.Flags().BoolVar(&down, "down", false, "roll back the embedded SQL migrations")
	return cmd
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default permissions, profiles and templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.Seed(a.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seeded")
			return nil
		},
	}
}

func newGrantCmd(a *app) *cobra.Command {
	var project uint
	cmd := &cobra.Command{
		Use:   "grant USER PROFILE",
		Short: "Give a user a profile in a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user", args[0])
			if err != nil {
				return err
			}
			if err := db.Grant(a.db, userID, project, args[1]); err != nil {
				return err
			}
			a.log.Info().Uint("user_id", userID).Uint("project_id", project).Str("profile", args[1]).Msg("profile granted")
			fmt.Fprintf(cmd.OutOrStdout(), "user %d is %s in project %d\n", userID, args[1], project)
			return nil
		},
	}
	cmd.Flags().UintVar(&project, "project", 0, "project id")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME [IDENTIFIER]",
		Short: "Create a project",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := models.Project{Name: args[0], Identifier: strings.ToLower(strings.ReplaceAll(args[0], " ", "-"))}
			if len(args) == 2 {
				p.Identifier = args[1]
			}
			if err := a.db.WithContext(cmd.Context()).Create(&p).Error; err != nil {
				return fmt.Errorf("create project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", p.ID, p.Identifier)
			return nil
		},
	})
	return cmd
}

func newSettingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Override invoice settings per project",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set PROJECT NAME VALUE",
		Short: "Store a project setting",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID("project", args[0])
			if err != nil {
				return err
			}
			if err := a.source.Set(cmd.Context(), projectID, args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[1], args[2])
			return nil
		},
	})
	return cmd
}
