package report

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/shopspring/decimal"
)

var funcs = template.FuncMap{
	"money":   money.Format,
	"date":    func(t interface{ Format(string) string }) string { return t.Format("2006-01-02") },
	"percent": func(d decimal.Decimal) string { return money.FormatPercent(decimal.NewNullDecimal(d)) },
}

var textTemplate = template.Must(template.New("invoice").Funcs(funcs).Parse(
	`{{.T "label_invoice"}} #{{.Number}}
{{.T "label_invoice_status"}}: {{.StatusLabel}}
{{.T "label_invoice_date"}}: {{date .InvoiceDate}}
{{- if .DueDate}}
{{.T "label_invoice_due_date"}}: {{date .DueDate}}
{{- end}}
{{- if .OrderNumber}}
{{.T "label_invoice_order_number"}}: {{.OrderNumber}}
{{- end}}
{{- if .BillTo}}

{{.T "label_invoice_bill_to"}}:
{{.BillTo}}
{{- end}}
{{- if .Subject}}

{{.Subject}}
{{- end}}

{{range .Lines -}}
{{.Description}} | {{.Quantity}}{{if .Units}} {{.Units}}{{end}} x {{money .Price}}{{if .Tax}} | {{.Tax}}{{end}} | {{money .Total}}
{{end}}
{{.T "label_invoice_subtotal"}}: {{money .Subtotal}}
{{- if .HasTaxes}}{{range .TaxGroups}}
{{$.T "label_invoice_tax"}} {{percent .Rate}}: {{money .Amount}}
{{- end}}{{end}}
{{- if not .Discount.IsZero}}
{{.T "label_invoice_discount"}} {{percent .Discount}}: {{money .DiscountAmount}}
{{- end}}
{{.T "label_invoice_amount"}}: {{money .Amount}} {{.Currency}}
{{.T "label_invoice_balance"}}: {{money .Balance}} {{.Currency}}
{{.T "label_invoice_remaining"}}: {{money .Remaining}} {{.Currency}}
`))

// Text renders the document as plain text.
func Text(d Document) (string, error) {
	var buf bytes.Buffer
	if err := textTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render text: %w", err)
	}
	return buf.String(), nil
}

// Totals are the figures read back from a rendered document.
type Totals struct {
	Subtotal  decimal.Decimal
	Amount    decimal.Decimal
	Balance   decimal.Decimal
	Remaining decimal.Decimal
}

// ParseTotals reads the totals block of a text rendition in lang.
func ParseTotals(lang, text string) (Totals, error) {
	d := Document{Language: lang}
	targets := map[string]*decimal.Decimal{}
	var t Totals
	targets[d.T("label_invoice_subtotal")] = &t.Subtotal
	targets[d.T("label_invoice_amount")] = &t.Amount
	targets[d.T("label_invoice_balance")] = &t.Balance
	targets[d.T("label_invoice_remaining")] = &t.Remaining

	found := 0
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		label, rest, ok := strings.Cut(sc.Text(), ": ")
		if !ok {
			continue
		}
		dst, ok := targets[label]
		if !ok {
			continue
		}
		value, _, _ := strings.Cut(strings.TrimSpace(rest), " ")
		v, err := money.Parse(value)
		if err != nil {
			return Totals{}, fmt.Errorf("parse %s: %w", label, err)
		}
		*dst = v
		found++
	}
	if found < len(targets) {
		return Totals{}, fmt.Errorf("totals block incomplete: %d of %d figures", found, len(targets))
	}
	return t, nil
}
