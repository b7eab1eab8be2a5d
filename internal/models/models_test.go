package models

import (
	"testing"
	"time"

	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/shopspring/decimal"
)

func status(s billing.Status) *billing.Status { return &s }

func TestInvoice_Status(t *testing.T) {
	tests := []struct {
		name   string
		status *billing.Status
		draft  bool
		open   bool
		want   billing.Status
	}{
		{"unset is draft", nil, true, true, billing.StatusDraft},
		{"estimate", status(billing.StatusEstimate), false, true, billing.StatusEstimate},
		{"sent", status(billing.StatusSent), false, true, billing.StatusSent},
		{"paid", status(billing.StatusPaid), false, false, billing.StatusPaid},
		{"canceled", status(billing.StatusCanceled), false, false, billing.StatusCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{StatusID: tt.status}
			if got := inv.Status(); got != tt.want {
				t.Errorf("Status() = %v, want %v", got, tt.want)
			}
			if got := inv.IsDraft(); got != tt.draft {
				t.Errorf("IsDraft() = %v, want %v", got, tt.draft)
			}
			if got := inv.IsOpen(); got != tt.open {
				t.Errorf("IsOpen() = %v, want %v", got, tt.open)
			}
		})
	}
}

func TestInvoice_Overdue(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := &Invoice{StatusID: status(billing.StatusSent), DueDate: &due}
	if !inv.Overdue(due) {
		t.Error("expected overdue on the due date")
	}
	if inv.Overdue(due.AddDate(0, 0, -1)) {
		t.Error("not overdue before the due date")
	}
}

func TestInvoice_CalcLines(t *testing.T) {
	inv := &Invoice{Lines: []InvoiceLine{
		{Price: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(3), Discount: decimal.NewFromInt(10)},
	}}
	lines := inv.CalcLines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if got := lines[0].Total(); !got.Equal(decimal.NewFromInt(27)) {
		t.Errorf("Total() = %s, want 27", got)
	}
}

func TestInvoice_NotifiedUsers(t *testing.T) {
	same, other := uint(1), uint(2)
	if got := (&Invoice{AuthorID: 1, AssignedToID: &same}).NotifiedUsers(); len(got) != 1 {
		t.Errorf("expected deduplicated recipients, got %v", got)
	}
	got := (&Invoice{AuthorID: 1, AssignedToID: &other}).NotifiedUsers()
	if len(got) != 2 || got[1] != 2 {
		t.Errorf("unexpected recipients %v", got)
	}
}

func TestInvoice_String(t *testing.T) {
	inv := &Invoice{
		Number:   "INV-1",
		StatusID: status(billing.StatusSent),
		Amount:   decimal.NewFromInt(50),
		Currency: "EUR",
		Contact:  &Contact{FirstName: "Ada", LastName: "Lovelace"},
	}
	want := "#INV-1 (sent): EUR 50.00 (Ada Lovelace)"
	if got := inv.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := inv.Filename(); got != "invoice-INV-1.pdf" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestInvoiceLine_Strings(t *testing.T) {
	l := &InvoiceLine{Tax: decimal.NewNullDecimal(decimal.RequireFromString("19.6")), Discount: decimal.NewFromInt(5)}
	if got := l.TaxString(); got != "19.60%" {
		t.Errorf("TaxString() = %q", got)
	}
	if got := l.DiscountString(); got != "5.00%" {
		t.Errorf("DiscountString() = %q", got)
	}
	if got := (&InvoiceLine{}).TaxString(); got != "" {
		t.Errorf("TaxString() on unset tax = %q", got)
	}
}

func TestPermission_Code(t *testing.T) {
	p := &Profile{Permissions: []Permission{{ResourceType: "invoice", Action: "view"}, {ResourceType: "payment", Action: "update"}}}
	codes := p.Codes()
	if len(codes) != 2 || codes[0] != "invoice:view" || codes[1] != "payment:update" {
		t.Errorf("Codes() = %v", codes)
	}
}

func TestContact_Name(t *testing.T) {
	if got := (&Contact{Company: "Acme", FirstName: "X"}).Name(); got != "Acme" {
		t.Errorf("Name() = %q", got)
	}
	if got := (&Contact{LastName: "Doe"}).Name(); got != "Doe" {
		t.Errorf("Name() = %q", got)
	}
}
