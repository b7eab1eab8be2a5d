package billing

import (
	"strings"

	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/shopspring/decimal"
)

// TaxGroup is the tax contributed by all lines sharing one rate.
type TaxGroup struct {
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// Totals are the derived figures of one invoice. Only Amount is rounded;
// the other fields keep full precision and are rounded for display.
type Totals struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Amount         decimal.Decimal
	TaxGroups      []TaxGroup
}

// DiscountRate is the factor applied to line taxes: 1 when the discount is
// charged after tax, 1 − discount/100 otherwise.
func DiscountRate(discount decimal.Decimal, m Mode) decimal.Decimal {
	if m.DiscountAfterTax {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(1).Sub(money.Rate(discount))
}

// Compute aggregates lines under the invoice discount and mode.
func Compute(lines []Line, discount decimal.Decimal, m Mode) Totals {
	rate := DiscountRate(discount, m)
	pct := money.Rate(discount)

	var t Totals
	t.Subtotal = decimal.Zero
	t.TaxAmount = decimal.Zero
	t.DiscountAmount = decimal.Zero

	gross := decimal.Zero
	for _, l := range lines {
		total := l.Total()
		tax := l.TaxAmount(m)
		t.TaxAmount = t.TaxAmount.Add(tax.Mul(rate))
		if m.DiscountAfterTax {
			t.Subtotal = t.Subtotal.Add(total)
			gross = gross.Add(total).Add(tax)
		} else {
			lineDiscount := total.Mul(pct)
			t.Subtotal = t.Subtotal.Add(total.Sub(lineDiscount))
			t.DiscountAmount = t.DiscountAmount.Add(lineDiscount)
		}
	}
	if m.DiscountAfterTax {
		t.DiscountAmount = gross.Mul(pct)
	}

	t.Amount = money.Round(t.Subtotal)
	if m.TaxExclusive {
		t.Amount = t.Amount.Add(money.Round(t.TaxAmount))
	}
	if m.DiscountAfterTax {
		t.Amount = t.Amount.Sub(money.Round(t.DiscountAmount))
	}
	t.TaxGroups = TaxGroups(lines, discount, m)
	return t
}

// TaxGroups groups taxed lines by rate in order of first appearance.
func TaxGroups(lines []Line, discount decimal.Decimal, m Mode) []TaxGroup {
	rate := DiscountRate(discount, m)
	var groups []TaxGroup
	index := map[string]int{}
	for _, l := range lines {
		if !l.HasTax() {
			continue
		}
		// 20 and 20.00 are the same rate
		key := l.Tax.Decimal.String()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, TaxGroup{Rate: l.Tax.Decimal, Amount: decimal.Zero})
		}
		groups[i].Amount = groups[i].Amount.Add(l.TaxAmount(m).Mul(rate))
	}
	return groups
}

// HasTaxes reports whether any line carries a non-zero tax.
func HasTaxes(lines []Line) bool {
	for _, l := range lines {
		if l.Tax.Valid && !l.Tax.Decimal.IsZero() {
			return true
		}
	}
	return false
}

// HasUnits reports whether any line names a unit.
func HasUnits(lines []Line) bool {
	for _, l := range lines {
		if u := strings.TrimSpace(l.Units); u != "" && u != "0" {
			return true
		}
	}
	return false
}
