package main

import (
	"fmt"

	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/spf13/cobra"
)

func newPayCmd(a *app) *cobra.Command {
	var (
		in   services.PaymentInput
		date string
	)
	cmd := &cobra.Command{
		Use:   "pay ID",
		Short: "Record a payment against an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}
			if date == "" {
				in.PaymentDate = a.svc.Today()
			} else if in.PaymentDate, err = parseDate(date); err != nil {
				return err
			}
			ctx := a.ctx(cmd)
			p, err := a.svc.AddPayment(ctx, id, in)
			if err != nil {
				return err
			}
			inv, err := a.svc.Get(ctx, id)
			if err != nil {
				return err
			}
			a.log.Info().Uint("invoice_id", id).Uint("payment_id", p.ID).Str("amount", p.Amount.StringFixed(2)).Msg("payment recorded")
			fmt.Fprintf(cmd.OutOrStdout(), "payment %d recorded, remaining %s\n", p.ID, money.FormatCurrency(inv.RemainingBalance(), inv.Currency))
			printInvoice(cmd, inv)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Amount, "amount", "", "amount received")
	f.StringVar(&date, "date", "", "payment date (YYYY-MM-DD), defaults to today")
	f.StringVar(&in.Description, "description", "", "description")
	f.UintVar(&in.AccountID, "account", 0, "finance account for the matching operation")
	f.UintVar(&in.CategoryID, "category", 0, "finance category for the matching operation")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newUnpayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unpay ID PAYMENT_ID",
		Short: "Remove a payment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}
			paymentID, err := parseID("payment", args[1])
			if err != nil {
				return err
			}
			ctx := a.ctx(cmd)
			if err := a.svc.RemovePayment(ctx, id, paymentID); err != nil {
				return err
			}
			inv, err := a.svc.Get(ctx, id)
			if err != nil {
				return err
			}
			printInvoice(cmd, inv)
			return nil
		},
	}
}
