package services

import (
	"context"

	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/shopspring/decimal"
)

// SourceDocument is a document an invoice can be started from, such as an
// order or a deal. Implementations return zero values for what they lack.
type SourceDocument interface {
	SourceContactID() *uint
	SourceCurrency() string
	SourceOrderNumber() string
	SourceSubject() string
	SourceDescription() string
	SourceLines() []SourceLine
}

// SourceLine is one line of a SourceDocument. A nil Quantity copies as 1,
// a nil Tax or Discount is left blank.
type SourceLine struct {
	Position    int
	Description string
	Price       decimal.Decimal
	Quantity    decimal.NullDecimal
	Tax         decimal.NullDecimal
	Discount    decimal.NullDecimal
	ProductID   *uint
}

// FromSource builds the input of a new invoice of projectID out of src. Line
// prices are taken net of the source line discount.
func FromSource(src SourceDocument, projectID uint) InvoiceInput {
	in := InvoiceInput{
		ProjectID:   projectID,
		ContactID:   src.SourceContactID(),
		Currency:    src.SourceCurrency(),
		OrderNumber: src.SourceOrderNumber(),
		Subject:     src.SourceSubject(),
		Description: src.SourceDescription(),
	}
	for _, l := range src.SourceLines() {
		discount := decimal.Zero
		if l.Discount.Valid {
			discount = l.Discount.Decimal
		}
		quantity := "1"
		if l.Quantity.Valid {
			quantity = l.Quantity.Decimal.String()
		}
		in.Lines = append(in.Lines, LineInput{
			Position:    l.Position,
			Description: l.Description,
			Price:       l.Price.Mul(decimal.NewFromInt(1).Sub(money.Rate(discount))).String(),
			Quantity:    quantity,
			Tax:         nullString(l.Tax),
			Discount:    nullString(l.Discount),
			ProductID:   l.ProductID,
		})
	}
	return in
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// Duplicate returns the input of a copy of a visible invoice: every
// attribute but the number, with its lines. The copy gets a fresh number,
// author and public key when created. A PAID status is not carried over
// since the copy has no payments.
func (s *InvoiceService) Duplicate(ctx context.Context, id uint) (InvoiceInput, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return InvoiceInput{}, err
	}
	return copyInput(inv), nil
}

func copyInput(inv *models.Invoice) InvoiceInput {
	in := InvoiceInput{
		ProjectID:    inv.ProjectID,
		Subject:      inv.Subject,
		Description:  inv.Description,
		OrderNumber:  inv.OrderNumber,
		Currency:     inv.Currency,
		Language:     inv.Language,
		ContactID:    inv.ContactID,
		AssignedToID: inv.AssignedToID,
		TemplateID:   inv.TemplateID,
		InvoiceDate:  inv.InvoiceDate,
		DueDate:      inv.DueDate,
		Discount:     inv.Discount.String(),
	}
	if inv.StatusID != nil && *inv.StatusID != billing.StatusPaid {
		in.Status = billing.NewStatus(*inv.StatusID)
	}
	for _, l := range inv.Lines {
		in.Lines = append(in.Lines, LineInput{
			Position:    l.Position,
			Description: l.Description,
			Price:       l.Price.String(),
			Quantity:    l.Quantity.String(),
			Tax:         nullString(l.Tax),
			Discount:    l.Discount.String(),
			Units:       l.Units,
			ProductID:   l.ProductID,
		})
	}
	return in
}
