package billing

import (
	"errors"
	"time"

	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/shopspring/decimal"
)

// ErrInconsistentStatusTransition is returned when a status write
// contradicts the amount and balance of the invoice.
var ErrInconsistentStatusTransition = errors.New("status is inconsistent with invoice balance")

// Status is the stored invoice status ordinal.
type Status int

const (
	StatusEstimate Status = iota
	StatusDraft
	StatusSent
	StatusPaid
	StatusCanceled
)

var statusKeys = map[Status]string{
	StatusEstimate: "estimate",
	StatusDraft:    "draft",
	StatusSent:     "sent",
	StatusPaid:     "paid",
	StatusCanceled: "canceled",
}

// String returns the status key, e.g. "paid".
func (s Status) String() string {
	if k, ok := statusKeys[s]; ok {
		return k
	}
	return "unknown"
}

// Label is the translation key of the status.
func (s Status) Label() string {
	return "label_invoice_status_" + s.String()
}

// Valid reports whether s is one of the known ordinals.
func (s Status) Valid() bool {
	_, ok := statusKeys[s]
	return ok
}

// ParseStatus accepts a status key ("sent") and returns its ordinal.
func ParseStatus(key string) (Status, bool) {
	for s, k := range statusKeys {
		if k == key {
			return s, true
		}
	}
	return 0, false
}

// NewStatus returns a pointer to s, for the nullable status column.
func NewStatus(s Status) *Status { return &s }

// Is reports whether a nullable status is set to s.
func Is(status *Status, s Status) bool {
	return status != nil && *status == s
}

// IsDraft treats an unset status as a draft. ESTIMATE is ordinal zero but
// is not the default.
func IsDraft(status *Status) bool {
	return status == nil || *status == StatusDraft
}

// IsOpen is true unless the invoice is paid or canceled.
func IsOpen(status *Status) bool {
	return !Is(status, StatusPaid) && !Is(status, StatusCanceled)
}

// Payment is the status engine's view of a recorded payment.
type Payment struct {
	Amount decimal.Decimal
	Date   time.Time
}

// Settlement is the payment-derived state of an invoice.
type Settlement struct {
	Balance  decimal.Decimal
	Status   Status
	PaidDate *time.Time
}

// Balance is Σ payments capped at amount.
func Balance(amount decimal.Decimal, payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return money.Min(sum, amount)
}

// Remaining is amount − balance.
func Remaining(amount, balance decimal.Decimal) decimal.Decimal {
	return amount.Sub(balance)
}

// Settle derives balance, status and paid date from the payments. A fully
// covered invoice is PAID on its latest payment date, anything else is SENT.
func Settle(amount decimal.Decimal, payments []Payment) Settlement {
	s := Settlement{Balance: Balance(amount, payments)}
	if s.Balance.GreaterThanOrEqual(amount) {
		s.Status = StatusPaid
		s.PaidDate = latest(payments)
		return s
	}
	s.Status = StatusSent
	return s
}

func latest(payments []Payment) *time.Time {
	var last *time.Time
	for i := range payments {
		d := payments[i].Date
		if last == nil || d.After(*last) {
			last = &d
		}
	}
	return last
}

// CheckStatus rejects a non-PAID status on a fully paid invoice and a PAID
// status while money is still owed.
func CheckStatus(status *Status, amount, balance decimal.Decimal) error {
	remaining := Remaining(amount, balance)
	paid := Is(status, StatusPaid)
	if !paid && remaining.IsZero() && balance.IsPositive() {
		return ErrInconsistentStatusTransition
	}
	if paid && remaining.IsPositive() && amount.IsPositive() {
		return ErrInconsistentStatusTransition
	}
	return nil
}

// Overdue is true for a SENT invoice whose due date is today or earlier.
func Overdue(status *Status, due *time.Time, today time.Time) bool {
	if !Is(status, StatusSent) || due == nil {
		return false
	}
	y, m, d := today.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, due.Location())
	return !due.After(end)
}
