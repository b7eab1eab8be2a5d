package services

import (
	"context"
	"fmt"

	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/numbering"
	"github.com/diewo77/go-invoicing/internal/store"
)

// StatusSums are the per-currency amounts of the invoices in one status.
type StatusSums struct {
	Sums  []store.CurrencySum
	Count int64
}

// SumByStatus totals the visible invoices in status st. Zero projectID or
// contactID mean any.
func (s *InvoiceService) SumByStatus(ctx context.Context, st billing.Status, projectID, contactID uint) (StatusSums, error) {
	f, err := s.visible(ctx, store.Filter{ProjectID: projectID, ContactID: contactID, Status: &st})
	if err != nil {
		return StatusSums{}, err
	}
	sums, err := s.store.SumByCurrency(ctx, f)
	if err != nil {
		return StatusSums{}, err
	}
	out := StatusSums{Sums: sums}
	for _, c := range sums {
		out.Count += c.Count
	}
	return out, nil
}

// SumByPeriod totals the sent or paid invoices dated within a named period
// (this_month, last_year, ...).
func (s *InvoiceService) SumByPeriod(ctx context.Context, period string, projectID, contactID uint) ([]store.CurrencySum, error) {
	r, ok := numbering.ParsePeriod(period, s.now())
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
	return s.SumByRange(ctx, r, projectID, contactID)
}

// SumByRange totals the sent or paid invoices dated within r.
func (s *InvoiceService) SumByRange(ctx context.Context, r numbering.Range, projectID, contactID uint) ([]store.CurrencySum, error) {
	f, err := s.visible(ctx, store.Filter{
		ProjectID: projectID,
		ContactID: contactID,
		Scope:     store.ScopeSentOrPaid,
		From:      &r.From,
		To:        &r.To,
	})
	if err != nil {
		return nil, err
	}
	return s.store.SumByCurrency(ctx, f)
}
