// Package billing computes invoice figures: line totals, taxes, discounts,
// the cached amount and the payment-driven status. Everything here is a pure
// function of already validated decimals.
package billing

import (
	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/shopspring/decimal"
)

// Mode carries the two global flags that change how an invoice adds up.
type Mode struct {
	// TaxExclusive adds tax on top of prices; otherwise prices embed the tax.
	TaxExclusive bool
	// DiscountAfterTax applies the invoice discount to the taxed total.
	DiscountAfterTax bool
}

// Line is the calculator's view of an invoice line.
type Line struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Discount decimal.Decimal     // percent
	Tax      decimal.NullDecimal // percent, null when not set
	Units    string
}

// Total is price × quantity × (1 − discount/100).
func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(l.Quantity).Mul(decimal.NewFromInt(1).Sub(money.Rate(l.Discount)))
}

// TaxRate returns the line tax percentage, zero when unset.
func (l Line) TaxRate() decimal.Decimal {
	if !l.Tax.Valid {
		return decimal.Zero
	}
	return l.Tax.Decimal
}

// TaxAmount is the line tax before any invoice discount rate.
func (l Line) TaxAmount(m Mode) decimal.Decimal {
	if m.TaxExclusive {
		return l.taxExclusive()
	}
	return l.taxInclusive()
}

func (l Line) taxExclusive() decimal.Decimal {
	return l.Total().Mul(money.Rate(l.TaxRate()))
}

// total × (1 − 1/(1 + tax/100))
func (l Line) taxInclusive() decimal.Decimal {
	one := decimal.NewFromInt(1)
	return l.Total().Mul(one.Sub(one.Div(one.Add(money.Rate(l.TaxRate())))))
}

// HasTax reports a positive tax rate.
func (l Line) HasTax() bool {
	return l.Tax.Valid && l.Tax.Decimal.IsPositive()
}
