package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		templates []uint
		out       string
	)
	cmd := &cobra.Command{
		Use:   "report ID",
		Short: "Render an invoice to PDF, or to a zip of PDFs for several templates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}
			r, err := a.svc.Report(a.ctx(cmd), id, templates)
			if err != nil {
				return err
			}
			if out == "" {
				out = r.Filename
			} else if fi, err := os.Stat(out); err == nil && fi.IsDir() {
				out = filepath.Join(out, r.Filename)
			}
			if err := os.WriteFile(out, r.Content, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			a.log.Info().Uint("invoice_id", id).Str("file", out).Int("bytes", len(r.Content)).Msg("report written")
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().UintSliceVar(&templates, "template", nil, "template ids, defaults to the invoice template")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or directory")
	return cmd
}

func newLinkCmd(a *app) *cobra.Command {
	var templates []uint
	cmd := &cobra.Command{
		Use:   "link ID",
		Short: "Print the public link of an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}
			link, err := a.svc.PublicLink(a.ctx(cmd), id, templates)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	cmd.Flags().UintSliceVar(&templates, "template", nil, "template ids")
	return cmd
}

func newSumsCmd(a *app) *cobra.Command {
	var (
		status, period   string
		project, contact uint
	)
	cmd := &cobra.Command{
		Use:   "sums",
		Short: "Total invoice amounts per currency by status or by period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.ctx(cmd)
			var sums []store.CurrencySum
			switch {
			case status != "" && period != "":
				return fmt.Errorf("--status and --period are exclusive")
			case period != "":
				var err error
				if sums, err = a.svc.SumByPeriod(ctx, period, project, contact); err != nil {
					return err
				}
			default:
				st := billing.StatusSent
				if status != "" {
					var err error
					if st, err = parseStatus(status); err != nil {
						return err
					}
				}
				res, err := a.svc.SumByStatus(ctx, st, project, contact)
				if err != nil {
					return err
				}
				sums = res.Sums
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", st, res.Count)
			}
			for _, s := range sums {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", money.FormatCurrency(s.Amount, s.Currency), s.Count)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&status, "status", "", "status key, defaults to sent")
	f.StringVar(&period, "period", "", "today, this_week, last_month, this_year, ...")
	f.UintVar(&project, "project", 0, "only this project")
	f.UintVar(&contact, "contact", 0, "only this contact")
	return cmd
}
