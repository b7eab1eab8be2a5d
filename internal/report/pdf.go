package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/jung-kurt/gofpdf"
)

// Layouts understood by PDFRenderer.
const (
	LayoutClassic           = "classic"
	LayoutModern            = "modern"
	LayoutModernLeft        = "modern_left"
	LayoutModernBlankHeader = "modern_blank_header"
)

// ErrUnknownLayout is returned for a template whose layout is not listed above.
var ErrUnknownLayout = errors.New("unknown invoice layout")

// Layouts lists the supported layouts.
func Layouts() []string {
	return []string{LayoutClassic, LayoutModern, LayoutModernLeft, LayoutModernBlankHeader}
}

// Renderer turns a document into bytes for one template.
type Renderer interface {
	Render(ctx context.Context, d Document, t models.InvoiceTemplate) ([]byte, error)
}

// PDFRenderer draws A4 invoices with gofpdf.
type PDFRenderer struct {
	// Uncompressed leaves page streams readable, for inspection in tests.
	Uncompressed bool
}

type layout struct {
	band      bool    // colored title band
	left      bool    // company block on the left
	topMargin float64 // space kept blank for pre-printed letterhead
}

var layouts = map[string]layout{
	LayoutClassic:           {},
	LayoutModern:            {band: true},
	LayoutModernLeft:        {band: true, left: true},
	LayoutModernBlankHeader: {band: true, topMargin: 40},
}

func (r PDFRenderer) Render(ctx context.Context, d Document, t models.InvoiceTemplate) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := t.Layout
	if name == "" {
		name = LayoutClassic
	}
	l, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, t.Layout)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!r.Uncompressed)
	pdf.SetTitle(d.T("label_invoice")+" "+d.Number, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	if l.topMargin > 0 {
		pdf.SetY(pdf.GetY() + l.topMargin)
	}

	header(pdf, tr, d, l)
	lines(pdf, tr, d)
	totals(pdf, tr, d)
	payments(pdf, tr, d)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf %s: %w", t.Name, err)
	}
	return buf.Bytes(), nil
}

func header(pdf *gofpdf.Fpdf, tr func(string) string, d Document, l layout) {
	title := d.T("label_invoice") + " #" + d.Number
	if l.band {
		pdf.SetFillColor(52, 73, 94)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(190, 12, tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
	} else {
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(40, 10, tr(title))
		pdf.Ln(10)
	}
	pdf.Ln(2)

	top := pdf.GetY()
	companyX, metaX := 105.0, 10.0
	if l.left {
		companyX, metaX = 10.0, 105.0
	}

	pdf.SetXY(companyX, top)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 6, tr(d.CompanyName), "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, s := range strings.Split(d.CompanyInfo, "\n") {
		if s != "" {
			pdf.CellFormat(95, 5, tr(s), "", 2, "L", false, 0, "")
		}
	}
	companyEnd := pdf.GetY()

	pdf.SetXY(metaX, top)
	pdf.SetFont("Arial", "", 10)
	meta := [][2]string{
		{d.T("label_invoice_date"), d.InvoiceDate.Format("2006-01-02")},
		{d.T("label_invoice_status"), d.StatusLabel()},
	}
	if d.DueDate != nil {
		meta = append(meta, [2]string{d.T("label_invoice_due_date"), d.DueDate.Format("2006-01-02")})
	}
	if d.OrderNumber != "" {
		meta = append(meta, [2]string{d.T("label_invoice_order_number"), d.OrderNumber})
	}
	for _, m := range meta {
		pdf.SetX(metaX)
		pdf.CellFormat(95, 6, tr(m[0]+": "+m[1]), "", 2, "L", false, 0, "")
	}
	if d.BillTo != "" {
		pdf.Ln(2)
		pdf.SetX(metaX)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(95, 6, tr(d.T("label_invoice_bill_to")+":"), "", 2, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, s := range strings.Split(d.BillTo, "\n") {
			pdf.SetX(metaX)
			pdf.CellFormat(95, 5, tr(s), "", 2, "L", false, 0, "")
		}
	}

	y := pdf.GetY()
	if companyEnd > y {
		y = companyEnd
	}
	pdf.SetXY(10, y+6)
	if d.Subject != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.MultiCell(190, 6, tr(d.Subject), "", "L", false)
		pdf.Ln(2)
	}
}

func lines(pdf *gofpdf.Fpdf, tr func(string) string, d Document) {
	widths := []float64{80, 25, 30, 25, 30}
	cols := []string{d.T("label_invoice_line"), d.T("label_invoice_quantity"), d.T("label_invoice_price"),
		d.T("label_invoice_tax"), d.T("label_invoice_total")}
	if !d.HasTaxes {
		widths = []float64{105, 25, 30, 30}
		cols = append(cols[:3], cols[4])
	}

	pdf.SetFont("Arial", "B", 9)
	for i, c := range cols {
		pdf.CellFormat(widths[i], 8, tr(c), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, l := range d.Lines {
		qty := l.Quantity.String()
		if d.HasUnits && l.Units != "" {
			qty += " " + l.Units
		}
		cells := []string{l.Description, qty, money.Format(l.Price)}
		if d.HasTaxes {
			cells = append(cells, l.Tax)
		}
		cells = append(cells, money.Format(l.Total))
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func totalRow(pdf *gofpdf.Fpdf, tr func(string) string, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Arial", style, 10)
	pdf.CellFormat(150, 7, tr(label+":"), "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, tr(value), "", 1, "R", false, 0, "")
}

func totals(pdf *gofpdf.Fpdf, tr func(string) string, d Document) {
	totalRow(pdf, tr, d.T("label_invoice_subtotal"), money.Format(d.Subtotal), false)
	if d.HasTaxes {
		for _, g := range d.TaxGroups {
			totalRow(pdf, tr, d.T("label_invoice_tax")+" "+money.Format(g.Rate)+"%", money.Format(g.Amount), false)
		}
	}
	if !d.Discount.IsZero() {
		totalRow(pdf, tr, d.T("label_invoice_discount")+" "+money.Format(d.Discount)+"%", money.Format(d.DiscountAmount), false)
	}
	totalRow(pdf, tr, d.T("label_invoice_amount"), money.FormatCurrency(d.Amount, d.Currency), true)
	if !d.Balance.IsZero() {
		totalRow(pdf, tr, d.T("label_invoice_balance"), money.FormatCurrency(d.Balance, d.Currency), false)
		totalRow(pdf, tr, d.T("label_invoice_remaining"), money.FormatCurrency(d.Remaining, d.Currency), true)
	}
}

func payments(pdf *gofpdf.Fpdf, tr func(string) string, d Document) {
	if len(d.Payments) == 0 {
		return
	}
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(40, 7, tr(d.T("label_invoice_payments")))
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 9)
	for _, p := range d.Payments {
		pdf.CellFormat(30, 6, p.Date.Format("2006-01-02"), "", 0, "L", false, 0, "")
		pdf.CellFormat(120, 6, tr(p.Description), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, money.FormatCurrency(p.Amount, d.Currency), "", 1, "R", false, 0, "")
	}
}
