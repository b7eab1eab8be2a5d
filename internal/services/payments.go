package services

import (
	"context"
	"fmt"
	"time"

	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/finance"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/diewo77/go-invoicing/internal/notify"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/validation"
)

// PaymentInput is a payment as submitted. AccountID and CategoryID choose
// the finance operation recorded with the payment; either left zero means
// no operation.
type PaymentInput struct {
	Amount      string
	PaymentDate time.Time
	Description string
	AccountID   uint
	CategoryID  uint
}

func parsePayment(in PaymentInput, p *models.InvoicePayment) error {
	b := validation.NewBuilder()
	amount, err := money.Parse(in.Amount)
	if err != nil {
		b.Fail("amount", code(in.Amount), err)
	} else {
		validation.Positive("amount", amount, b.Violations())
	}
	if in.PaymentDate.IsZero() {
		b.Fail("payment_date", "required", nil)
	}
	if err := b.Err(); err != nil {
		return err
	}
	p.Amount = amount
	p.PaymentDate = in.PaymentDate
	p.Description = in.Description
	return nil
}

// settle recomputes the amount, derives balance, status and paid date from
// the payments and checks the result.
func (s *InvoiceService) settle(ctx context.Context, st store.Store, inv *models.Invoice) error {
	if err := s.recompute(ctx, inv); err != nil {
		return err
	}
	r := billing.Settle(inv.Amount, inv.CalcPayments())
	inv.Balance = r.Balance
	inv.StatusID = billing.NewStatus(r.Status)
	inv.PaidDate = r.PaidDate
	if err := checkStatus(inv); err != nil {
		return err
	}
	return st.SaveInvoice(ctx, inv)
}

// payable loads an invoice whose payments the acting user may edit.
func (s *InvoiceService) payable(ctx context.Context, st store.Store, id uint) (*models.Invoice, error) {
	inv, err := st.FindInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.auth.CanEditPayments(ctx, inv.ProjectID) {
		return nil, ErrForbidden
	}
	return inv, nil
}

// AddPayment records a payment and moves the invoice to SENT or PAID.
func (s *InvoiceService) AddPayment(ctx context.Context, invoiceID uint, in PaymentInput) (*models.InvoicePayment, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	p := &models.InvoicePayment{AuthorID: userID}
	if err := parsePayment(in, p); err != nil {
		return nil, err
	}
	var inv *models.Invoice
	err = s.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		if inv, err = s.payable(ctx, tx, invoiceID); err != nil {
			return err
		}
		p.InvoiceID = inv.ID
		if err := s.actualizeOperation(ctx, tx, inv, p, in); err != nil {
			return err
		}
		if err := tx.CreatePayment(ctx, p); err != nil {
			return err
		}
		inv.Payments = append(inv.Payments, *p)
		return s.settle(ctx, tx, inv)
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Uint("invoice_id", inv.ID).Str("amount", p.Amount.String()).Msg("payment added")
	s.notify(ctx, notify.Event{
		Kind:       notify.KindPaymentCreated,
		InvoiceID:  inv.ID,
		Number:     inv.Number,
		Title:      fmt.Sprintf("Payment %s - %s", p.PaymentDate.Format("2006-01-02"), money.FormatCurrency(p.Amount, inv.Currency)),
		Message:    inv.String(),
		Recipients: inv.NotifiedUsers(),
	})
	return p, nil
}

// UpdatePayment changes a payment and settles the invoice again.
func (s *InvoiceService) UpdatePayment(ctx context.Context, invoiceID, paymentID uint, in PaymentInput) (*models.InvoicePayment, error) {
	var p *models.InvoicePayment
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		inv, err := s.payable(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if p, err = tx.FindPayment(ctx, invoiceID, paymentID); err != nil {
			return err
		}
		if err := parsePayment(in, p); err != nil {
			return err
		}
		if err := s.actualizeOperation(ctx, tx, inv, p, in); err != nil {
			return err
		}
		if err := tx.SavePayment(ctx, p); err != nil {
			return err
		}
		for i := range inv.Payments {
			if inv.Payments[i].ID == p.ID {
				inv.Payments[i] = *p
			}
		}
		return s.settle(ctx, tx, inv)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RemovePayment deletes a payment with its finance operation and settles
// the invoice again.
func (s *InvoiceService) RemovePayment(ctx context.Context, invoiceID, paymentID uint) error {
	return s.store.WithTx(ctx, func(tx store.Store) error {
		inv, err := tx.FindInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		p, err := tx.FindPayment(ctx, invoiceID, paymentID)
		if err != nil {
			return err
		}
		linked := s.finance != nil && p.OperationID != nil
		if !s.auth.CanDestroyPayment(ctx, inv.ProjectID, linked) {
			return ErrForbidden
		}
		if err := s.dropOperation(ctx, tx, inv, p); err != nil {
			return err
		}
		if err := tx.DeletePayment(ctx, invoiceID, paymentID); err != nil {
			return err
		}
		kept := inv.Payments[:0]
		for _, q := range inv.Payments {
			if q.ID != paymentID {
				kept = append(kept, q)
			}
		}
		inv.Payments = kept
		return s.settle(ctx, tx, inv)
	})
}

// actualizeOperation keeps the finance operation of p in line with the
// submitted account and category: incomplete choices delete it, a first
// complete choice creates it, later ones update it.
func (s *InvoiceService) actualizeOperation(ctx context.Context, tx store.Store, inv *models.Invoice, p *models.InvoicePayment, in PaymentInput) error {
	if s.finance == nil {
		return nil
	}
	userID, _ := currentUser(ctx)
	e := finance.Entry{
		ProjectID:   inv.ProjectID,
		InvoiceID:   inv.ID,
		AuthorID:    userID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Amount:      p.Amount,
		Date:        p.PaymentDate,
		Description: p.Description,
	}
	switch {
	case !e.Complete():
		return s.dropOperation(ctx, tx, inv, p)
	case p.OperationID == nil:
		if !s.auth.CanAddOperations(ctx, inv.ProjectID) {
			return nil
		}
		id, err := s.finance.Create(ctx, tx, e)
		if err != nil {
			return err
		}
		p.OperationID = &id
		return nil
	default:
		return s.finance.Update(ctx, tx, *p.OperationID, e)
	}
}

// dropOperation deletes the operation linked to p when the acting user may.
func (s *InvoiceService) dropOperation(ctx context.Context, tx store.Store, inv *models.Invoice, p *models.InvoicePayment) error {
	if s.finance == nil || p.OperationID == nil {
		return nil
	}
	if !s.auth.CanDeleteOperations(ctx, inv.ProjectID) {
		return nil
	}
	if err := s.finance.Delete(ctx, tx, *p.OperationID); err != nil {
		return err
	}
	p.OperationID = nil
	return nil
}
