package services

import (
	"context"
	"strings"

	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/validation"
	"github.com/shopspring/decimal"
)

// LineInput is a line as submitted. Tax and Discount may be blank.
type LineInput struct {
	Position    int
	Description string
	Price       string
	Quantity    string
	Tax         string
	Discount    string
	Units       string
	ProductID   *uint
}

// parseLine validates in, recording violations under prefix.
func parseLine(in LineInput, b *validation.Builder, prefix string) models.InvoiceLine {
	l := models.InvoiceLine{
		Position:    in.Position,
		Description: strings.TrimSpace(in.Description),
		Units:       in.Units,
		ProductID:   in.ProductID,
	}
	if l.ProductID == nil {
		validation.Required(prefix+"description", l.Description, b.Violations())
	}
	var err error
	if l.Price, err = money.Parse(in.Price); err != nil {
		b.Fail(prefix+"price", code(in.Price), err)
	} else {
		validation.NotNegative(prefix+"price", l.Price, b.Violations())
	}
	if l.Quantity, err = money.Parse(in.Quantity); err != nil {
		b.Fail(prefix+"quantity", code(in.Quantity), err)
	} else {
		validation.NotNegative(prefix+"quantity", l.Quantity, b.Violations())
	}
	if l.Tax, err = money.ParseOptional(in.Tax); err != nil {
		b.Fail(prefix+"tax", "not_a_number", err)
	} else if l.Tax.Valid {
		validation.Percent(prefix+"tax", l.Tax.Decimal, b.Violations())
	}
	if l.Discount, err = money.ParseDefault(in.Discount, decimal.Zero); err != nil {
		b.Fail(prefix+"discount", "not_a_number", err)
	} else {
		validation.Percent(prefix+"discount", l.Discount, b.Violations())
	}
	return l
}

func code(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "required"
	}
	return "not_a_number"
}

// AddLine appends a line and stores the recomputed amount.
func (s *InvoiceService) AddLine(ctx context.Context, invoiceID uint, in LineInput) (*models.InvoiceLine, error) {
	b := validation.NewBuilder()
	line := parseLine(in, b, "")
	if err := b.Err(); err != nil {
		return nil, err
	}
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		inv, err := s.editable(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		line.InvoiceID = inv.ID
		if line.Position == 0 {
			line.Position = len(inv.Lines) + 1
		}
		if err := tx.CreateLine(ctx, &line); err != nil {
			return err
		}
		inv.Lines = append(inv.Lines, line)
		return s.persist(ctx, tx, inv, true)
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// UpdateLine replaces the fields of a line and stores the recomputed amount.
func (s *InvoiceService) UpdateLine(ctx context.Context, invoiceID, lineID uint, in LineInput) (*models.InvoiceLine, error) {
	b := validation.NewBuilder()
	parsed := parseLine(in, b, "")
	if err := b.Err(); err != nil {
		return nil, err
	}
	var line *models.InvoiceLine
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		inv, err := s.editable(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if line, err = tx.FindLine(ctx, invoiceID, lineID); err != nil {
			return err
		}
		line.Description = parsed.Description
		line.Price = parsed.Price
		line.Quantity = parsed.Quantity
		line.Tax = parsed.Tax
		line.Discount = parsed.Discount
		line.Units = parsed.Units
		line.ProductID = parsed.ProductID
		if parsed.Position != 0 {
			line.Position = parsed.Position
		}
		if err := tx.SaveLine(ctx, line); err != nil {
			return err
		}
		for i := range inv.Lines {
			if inv.Lines[i].ID == line.ID {
				inv.Lines[i] = *line
			}
		}
		return s.persist(ctx, tx, inv, true)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// RemoveLine deletes a line. The line leaves the in-memory set before the
// amount is recomputed.
func (s *InvoiceService) RemoveLine(ctx context.Context, invoiceID, lineID uint) error {
	return s.store.WithTx(ctx, func(tx store.Store) error {
		inv, err := s.editable(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if err := tx.DeleteLine(ctx, invoiceID, lineID); err != nil {
			return err
		}
		kept := inv.Lines[:0]
		for _, l := range inv.Lines {
			if l.ID != lineID {
				kept = append(kept, l)
			}
		}
		inv.Lines = kept
		return s.persist(ctx, tx, inv, true)
	})
}
