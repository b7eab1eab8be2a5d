package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the fully derived state of an invoice at one point in time.
type Snapshot struct {
	Totals
	Balance          decimal.Decimal
	RemainingBalance decimal.Decimal
	Status           *Status
	PaidDate         *time.Time
	// TotalWithTax is set when documents should print the taxed total.
	TotalWithTax bool
	HasTaxes     bool
	HasUnits     bool
}

// Input bundles what Recompute reads.
type Input struct {
	Lines    []Line
	Discount decimal.Decimal
	Status   *Status
	Balance  decimal.Decimal
	PaidDate *time.Time
}

// Recompute derives totals from the lines and reuses the cached balance and
// status; Settle is the step that moves those.
func Recompute(in Input, m Mode, totalWithTax bool) Snapshot {
	t := Compute(in.Lines, in.Discount, m)
	return Snapshot{
		Totals:           t,
		Balance:          in.Balance,
		RemainingBalance: Remaining(t.Amount, in.Balance),
		Status:           in.Status,
		PaidDate:         in.PaidDate,
		TotalWithTax:     totalWithTax,
		HasTaxes:         HasTaxes(in.Lines),
		HasUnits:         HasUnits(in.Lines),
	}
}
