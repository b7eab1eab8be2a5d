package main

import (
	"fmt"

	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/spf13/cobra"
)

func printInvoice(cmd *cobra.Command, inv *models.Invoice) {
	fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", inv.ID, inv.String())
}

func newNumberCmd(a *app) *cobra.Command {
	var project uint
	cmd := &cobra.Command{
		Use:   "number",
		Short: "Print the number the next invoice of a project would get",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := a.svc.NextNumber(a.ctx(cmd), project)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().UintVar(&project, "project", 0, "project id")
	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	var (
		in                services.InvoiceInput
		contact, assigned uint
		date, due, status string
		lines             []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.ContactID = optionalID(contact)
			in.AssignedToID = optionalID(assigned)
			if date != "" {
				d, err := parseDate(date)
				if err != nil {
					return err
				}
				in.InvoiceDate = d
			}
			var err error
			if in.DueDate, err = optionalDate(due); err != nil {
				return err
			}
			if status != "" {
				st, err := parseStatus(status)
				if err != nil {
					return err
				}
				in.Status = &st
			}
			for _, raw := range lines {
				l, err := parseLine(raw)
				if err != nil {
					return err
				}
				in.Lines = append(in.Lines, l)
			}
			inv, err := a.svc.Create(a.ctx(cmd), in)
			if err != nil {
				return err
			}
			a.log.Info().Uint("invoice_id", inv.ID).Str("number", inv.Number).Msg("invoice created")
			printInvoice(cmd, inv)
			return nil
		},
	}
	f := cmd.Flags()
	f.UintVar(&in.ProjectID, "project", 0, "project id")
	f.StringVar(&in.Number, "number", "", "invoice number, generated when empty")
	f.StringVar(&in.Subject, "subject", "", "subject")
	f.StringVar(&in.Description, "description", "", "description")
	f.StringVar(&in.OrderNumber, "order", "", "customer order number")
	f.StringVar(&in.Currency, "currency", "", "currency code, defaults to the project setting")
	f.StringVar(&in.Language, "language", "", "document language")
	f.StringVar(&in.Discount, "discount", "", "invoice discount percentage")
	f.UintVar(&contact, "contact", 0, "billed contact id")
	f.UintVar(&assigned, "assigned", 0, "assignee user id")
	f.StringVar(&date, "date", "", "invoice date (YYYY-MM-DD), defaults to today")
	f.StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	f.StringVar(&status, "status", "", "initial status key, defaults to draft")
	f.StringArrayVar(&lines, "line", nil, "line as description;quantity;price[;tax[;discount]], repeatable")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		f       store.Filter
		scope   string
		status  string
		overdue bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch store.Scope(scope) {
			case store.ScopeAll, store.ScopeOpen, store.ScopePaid, store.ScopeSentOrPaid:
				f.Scope = store.Scope(scope)
			default:
				return fmt.Errorf("unknown scope %q", scope)
			}
			if status != "" {
				st, err := parseStatus(status)
				if err != nil {
					return err
				}
				f.Status = &st
			}
			if overdue {
				today := a.svc.Today()
				f.OverdueOn = &today
			}
			invoices, err := a.svc.List(a.ctx(cmd), f)
			if err != nil {
				return err
			}
			for i := range invoices {
				printInvoice(cmd, &invoices[i])
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.UintVar(&f.ProjectID, "project", 0, "only this project")
	fl.UintVar(&f.ContactID, "contact", 0, "only this contact")
	fl.StringVar(&f.Search, "search", "", "match number, subject or order number")
	fl.StringVar(&scope, "scope", "", "open, paid or sent_or_paid")
	fl.StringVar(&status, "status", "", "only this status key")
	fl.BoolVar(&overdue, "overdue", false, "only sent invoices due today or earlier")
	fl.IntVar(&f.Limit, "limit", 0, "maximum number of invoices")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print an invoice as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}
			text, err := a.svc.Text(a.ctx(cmd), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Change the status of an invoice",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}
			st, err := parseStatus(args[1])
			if err != nil {
				return err
			}
			inv, err := a.svc.SetStatus(a.ctx(cmd), id, st)
			if err != nil {
				return err
			}
			printInvoice(cmd, inv)
			return nil
		},
	}
}

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy ID",
		Short: "Create a new invoice from an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}
			ctx := a.ctx(cmd)
			in, err := a.svc.Duplicate(ctx, id)
			if err != nil {
				return err
			}
			inv, err := a.svc.Create(ctx, in)
			if err != nil {
				return err
			}
			a.log.Info().Uint("source_id", id).Uint("invoice_id", inv.ID).Msg("invoice copied")
			printInvoice(cmd, inv)
			return nil
		},
	}
}

func newCommentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comment ID TEXT",
		Short: "Comment on an invoice",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}
			c, err := a.svc.AddComment(a.ctx(cmd), id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "comment %d added\n", c.ID)
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an invoice with its lines and payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}
			if err := a.svc.Delete(a.ctx(cmd), id); err != nil {
				return err
			}
			a.log.Info().Uint("invoice_id", id).Msg("invoice deleted")
			fmt.Fprintf(cmd.OutOrStdout(), "invoice %d deleted\n", id)
			return nil
		},
	}
}

func newLineCmd(a *app) *cobra.Command {
	var units string
	cmd := &cobra.Command{
		Use:   "line",
		Short: "Add or remove invoice lines",
	}
	add := &cobra.Command{
		Use:   "add ID LINE",
		Short: "Append a line given as description;quantity;price[;tax[;discount]]",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}
			in, err := parseLine(args[1])
			if err != nil {
				return err
			}
			in.Units = units
			l, err := a.svc.AddLine(a.ctx(cmd), id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "line %d added\n", l.ID)
			return nil
		},
	}
	add.Flags().StringVar(&units, "units", "", "units label")
	rm := &cobra.Command{
		Use:   "rm ID LINE_ID",
		Short: "Remove a line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}
			lineID, err := parseID("line", args[1])
			if err != nil {
				return err
			}
			if err := a.svc.RemoveLine(a.ctx(cmd), id, lineID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "line %d removed\n", lineID)
			return nil
		},
	}
	cmd.AddCommand(add, rm)
	return cmd
}
