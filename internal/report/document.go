// Package report renders invoices to documents: plain text, PDF, and zip
// bundles of several templates.
package report

import (
	"time"

	"github.com/diewo77/go-invoicing/i18n"
	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/shopspring/decimal"
)

// Line is one rendered invoice line.
type Line struct {
	Position    int
	Description string
	Units       string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Discount    decimal.Decimal
	// Tax is the formatted rate, empty when the line is untaxed.
	Tax   string
	Total decimal.Decimal
}

// Payment is one rendered payment.
type Payment struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
}

// Document is everything a template needs, fully computed.
type Document struct {
	Language    string
	Number      string
	Subject     string
	Description string
	OrderNumber string
	Currency    string
	Status      billing.Status
	InvoiceDate time.Time
	DueDate     *time.Time

	CompanyName string
	CompanyInfo string
	BillTo      string
	ContactName string

	Lines    []Line
	Payments []Payment

	Discount       decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Amount         decimal.Decimal
	Balance        decimal.Decimal
	Remaining      decimal.Decimal
	TaxGroups      []billing.TaxGroup

	TotalWithTax bool
	HasTaxes     bool
	HasUnits     bool

	// PublicLink is set when public links are enabled.
	PublicLink string
}

// Options carries the document settings that do not live on the invoice.
type Options struct {
	Language    string
	CompanyName string
	CompanyInfo string
	PublicLink  string
}

// NewDocument builds a document from an invoice and its recomputed snapshot.
func NewDocument(inv *models.Invoice, snap billing.Snapshot, opts Options) Document {
	lang := opts.Language
	if inv.Language != "" {
		lang = inv.Language
	}
	d := Document{
		Language:       i18n.Normalize(lang),
		Number:         inv.Number,
		Subject:        inv.Subject,
		Description:    inv.Description,
		OrderNumber:    inv.OrderNumber,
		Currency:       inv.Currency,
		Status:         billing.StatusDraft,
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate,
		CompanyName:    opts.CompanyName,
		CompanyInfo:    opts.CompanyInfo,
		Discount:       inv.Discount,
		Subtotal:       snap.Subtotal,
		DiscountAmount: snap.DiscountAmount,
		TaxAmount:      snap.TaxAmount,
		Amount:         snap.Amount,
		Balance:        snap.Balance,
		Remaining:      snap.RemainingBalance,
		TaxGroups:      snap.TaxGroups,
		TotalWithTax:   snap.TotalWithTax,
		HasTaxes:       snap.HasTaxes,
		HasUnits:       snap.HasUnits,
		PublicLink:     opts.PublicLink,
	}
	if snap.Status != nil {
		d.Status = *snap.Status
	}
	if inv.Contact != nil {
		d.ContactName = inv.Contact.Name()
		d.BillTo = billTo(inv.Contact)
	}
	for _, l := range inv.Lines {
		d.Lines = append(d.Lines, Line{
			Position:    l.Position,
			Description: l.Description,
			Units:       l.Units,
			Quantity:    l.Quantity,
			Price:       l.Price,
			Discount:    l.Discount,
			Tax:         l.TaxString(),
			Total:       l.Total(),
		})
	}
	for _, p := range inv.Payments {
		d.Payments = append(d.Payments, Payment{Date: p.PaymentDate, Amount: p.Amount, Description: p.Description})
	}
	return d
}

func billTo(c *models.Contact) string {
	out := c.Name()
	for _, part := range []string{c.Address, c.City, c.Country} {
		if part != "" {
			out += "\n" + part
		}
	}
	return out
}

// T translates key in the document language.
func (d Document) T(key string) string {
	return i18n.T(d.Language, key)
}

// StatusLabel is the translated status.
func (d Document) StatusLabel() string {
	return d.T(d.Status.Label())
}
