package report

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixture() (*models.Invoice, billing.Snapshot) {
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	inv := &models.Invoice{
		Number:      "INV-7",
		Subject:     "Consulting",
		Currency:    "EUR",
		InvoiceDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     &due,
		Discount:    dec("10"),
		StatusID:    billing.NewStatus(billing.StatusSent),
		Contact:     &models.Contact{Company: "Acme", City: "Lyon"},
		Lines: []models.InvoiceLine{
			{Position: 1, Description: "Design", Price: dec("1000"), Quantity: dec("1"), Tax: decimal.NewNullDecimal(dec("20"))},
			{Position: 2, Description: "Build", Price: dec("1000"), Quantity: dec("1"), Tax: decimal.NewNullDecimal(dec("10"))},
		},
		Payments: []models.InvoicePayment{
			{Amount: dec("70"), PaymentDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Description: "wire"},
		},
	}
	snap := billing.Recompute(billing.Input{
		Lines:    inv.CalcLines(),
		Discount: inv.Discount,
		Status:   inv.StatusID,
		Balance:  dec("70"),
	}, billing.Mode{TaxExclusive: true, DiscountAfterTax: true}, true)
	return inv, snap
}

func TestNewDocument(t *testing.T) {
	inv, snap := fixture()
	d := NewDocument(inv, snap, Options{Language: "fr", CompanyName: "Me"})
	assert.Equal(t, "fr", d.Language)
	assert.Equal(t, "Acme", d.ContactName)
	assert.Equal(t, "Acme\nLyon", d.BillTo)
	assert.Equal(t, "Envoyée", d.StatusLabel())
	require.Len(t, d.Lines, 2)
	assert.Equal(t, "20.00%", d.Lines[0].Tax)
	assert.Equal(t, "2070.00", d.Amount.StringFixed(2))
	assert.Equal(t, "2000.00", d.Remaining.StringFixed(2))
}

func TestTextRoundTrip(t *testing.T) {
	inv, snap := fixture()
	for _, lang := range []string{"en", "fr", "de"} {
		t.Run(lang, func(t *testing.T) {
			d := NewDocument(inv, snap, Options{Language: lang})
			text, err := Text(d)
			require.NoError(t, err)
			assert.Contains(t, text, "#INV-7")
			assert.Contains(t, text, "Design")

			got, err := ParseTotals(lang, text)
			require.NoError(t, err)
			assert.True(t, got.Amount.Equal(snap.Amount.Round(2)), "amount %s", got.Amount)
			assert.True(t, got.Subtotal.Equal(dec("2000")))
			assert.True(t, got.Balance.Equal(dec("70")))
			assert.True(t, got.Remaining.Equal(dec("2000")))
		})
	}
}

func TestTextListsTaxGroupsAndDiscount(t *testing.T) {
	inv, snap := fixture()
	text, err := Text(NewDocument(inv, snap, Options{Language: "en"}))
	require.NoError(t, err)
	assert.Contains(t, text, "Tax 20.00%: 200.00")
	assert.Contains(t, text, "Tax 10.00%: 100.00")
	assert.Contains(t, text, "Discount 10.00%: 230.00")
	assert.Contains(t, text, "Amount: 2070.00 EUR")
}

func TestParseTotalsIncomplete(t *testing.T) {
	_, err := ParseTotals("en", "Amount: 1.00 EUR\n")
	assert.Error(t, err)
	_, err = ParseTotals("en", "Subtotal: x\nAmount: 1\nPaid: 0\nBalance due: 1\n")
	assert.Error(t, err)
}

func TestPDFRendererLayouts(t *testing.T) {
	inv, snap := fixture()
	d := NewDocument(inv, snap, Options{Language: "en", CompanyName: "Me", CompanyInfo: "1 rue X\nParis"})
	r := PDFRenderer{Uncompressed: true}
	for _, layout := range Layouts() {
		t.Run(layout, func(t *testing.T) {
			out, err := r.Render(context.Background(), d, models.InvoiceTemplate{Name: layout, Layout: layout})
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
			assert.True(t, bytes.Contains(out, []byte("EUR 2070.00")), "totals are printed")
		})
	}
}

func TestPDFRendererUnknownLayout(t *testing.T) {
	inv, snap := fixture()
	_, err := PDFRenderer{}.Render(context.Background(), NewDocument(inv, snap, Options{}), models.InvoiceTemplate{Name: "x", Layout: "fancy"})
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

type fakeRenderer struct{ fail string }

func (f fakeRenderer) Render(_ context.Context, d Document, t models.InvoiceTemplate) ([]byte, error) {
	if t.Name == f.fail {
		return nil, errors.New("render failed")
	}
	return []byte(t.Name + ":" + d.Number), nil
}

func TestBuildSingleTemplate(t *testing.T) {
	rep, err := Build(context.Background(), fakeRenderer{}, Document{Number: "N1"}, []models.InvoiceTemplate{{Name: "classic"}})
	require.NoError(t, err)
	assert.Equal(t, "classic.pdf", rep.Filename)
	assert.Equal(t, ContentTypePDF, rep.ContentType)
	assert.Equal(t, "classic:N1", string(rep.Content))
}

func TestBuildZip(t *testing.T) {
	templates := []models.InvoiceTemplate{{Name: "classic"}, {Name: "modern"}, {Name: "modern_left"}}
	rep, err := Build(context.Background(), fakeRenderer{}, Document{Number: "N1"}, templates)
	require.NoError(t, err)
	assert.Equal(t, ZipFilename, rep.Filename)
	assert.Equal(t, ContentTypeZip, rep.ContentType)

	zr, err := zip.NewReader(bytes.NewReader(rep.Content), int64(len(rep.Content)))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)
	for i, f := range zr.File {
		assert.Equal(t, templates[i].Name+".pdf", f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		assert.Equal(t, templates[i].Name+":N1", string(body))
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(context.Background(), fakeRenderer{}, Document{}, nil)
	assert.ErrorIs(t, err, ErrNoTemplates)

	_, err = Build(context.Background(), fakeRenderer{fail: "modern"}, Document{},
		[]models.InvoiceTemplate{{Name: "classic"}, {Name: "modern"}})
	assert.EqualError(t, err, "render failed")
}

func TestLinks(t *testing.T) {
	l := NewLinks("s3cret", true)
	tok := l.Token(12, "key", []uint{3, 1})
	assert.Equal(t, tok, l.Token(12, "key", []uint{1, 3}), "template order is irrelevant")
	assert.NoError(t, l.Verify(tok, 12, "key", []uint{1, 3}))
	assert.ErrorIs(t, l.Verify(tok, 12, "rotated", []uint{1, 3}), ErrInvalidToken)
	assert.ErrorIs(t, l.Verify(tok, 12, "key", []uint{1}), ErrInvalidToken)
	assert.ErrorIs(t, l.Verify(tok, 13, "key", []uint{1, 3}), ErrInvalidToken)

	disabled := NewLinks("s3cret", false)
	assert.ErrorIs(t, disabled.Verify(tok, 12, "key", []uint{1, 3}), ErrPublicLinksDisabled)
	assert.Empty(t, disabled.URL("/invoices/reports", 12, "key", []uint{1}))

	u := l.URL("/invoices/reports", 12, "key", []uint{1})
	assert.True(t, strings.HasPrefix(u, "/invoices/reports?"))
	assert.Contains(t, u, "token="+l.Token(12, "key", []uint{1}))
}

func TestExpandMacros(t *testing.T) {
	inv, snap := fixture()
	d := NewDocument(inv, snap, Options{PublicLink: "https://x/y"})
	got := ExpandMacros("Invoice {%invoice.number%} for {%contact.name%}, due {%invoice.due_date%}: {%invoice.public_link%}",
		d, MacroValues{})
	assert.Equal(t, "Invoice INV-7 for Acme, due 2024-04-01: https://x/y", got)
}
