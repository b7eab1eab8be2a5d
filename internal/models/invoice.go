package models

import (
	"strings"
	"time"

	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/shopspring/decimal"
)

// Invoice is a billing document of one project. Amount, Balance, StatusID
// and PaidDate are cached figures maintained by the invoice service.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Number      string `gorm:"size:255;uniqueIndex;not null" json:"number"`
	Subject     string `gorm:"size:255" json:"subject,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	OrderNumber string `gorm:"size:255" json:"order_number,omitempty"`
	Currency    string `gorm:"size:5" json:"currency,omitempty"`
	Language    string `gorm:"size:5" json:"language,omitempty"`

	InvoiceDate time.Time  `gorm:"not null;index" json:"invoice_date"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	PaidDate    *time.Time `json:"paid_date,omitempty"`

	// Discount is a percentage applied to the whole invoice.
	Discount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	Amount   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Balance  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance"`

	// StatusID is nullable; an unset status reads as a draft.
	StatusID *billing.Status `gorm:"index" json:"status_id,omitempty"`

	ProjectID    uint  `gorm:"index;not null" json:"project_id"`
	ContactID    *uint `gorm:"index" json:"contact_id,omitempty"`
	AuthorID     uint  `gorm:"index" json:"author_id"`
	AssignedToID *uint `gorm:"index" json:"assigned_to_id,omitempty"`
	TemplateID   *uint `json:"template_id,omitempty"`

	// PublicKey is mixed into public link tokens; rotating it revokes links.
	PublicKey string `gorm:"size:36" json:"-"`

	Project  *Project         `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Contact  *Contact         `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Lines    []InvoiceLine    `gorm:"foreignKey:InvoiceID" json:"lines,omitempty"`
	Payments []InvoicePayment `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
	Comments []InvoiceComment `gorm:"foreignKey:InvoiceID" json:"comments,omitempty"`
}

// GetUserID returns the author, for ownership checks.
func (i *Invoice) GetUserID() uint {
	return i.AuthorID
}

// Status returns the stored status, treating unset as DRAFT.
func (i *Invoice) Status() billing.Status {
	if i.StatusID == nil {
		return billing.StatusDraft
	}
	return *i.StatusID
}

func (i *Invoice) IsDraft() bool    { return billing.IsDraft(i.StatusID) }
func (i *Invoice) IsEstimate() bool { return billing.Is(i.StatusID, billing.StatusEstimate) }
func (i *Invoice) IsSent() bool     { return billing.Is(i.StatusID, billing.StatusSent) }
func (i *Invoice) IsPaid() bool     { return billing.Is(i.StatusID, billing.StatusPaid) }
func (i *Invoice) IsCanceled() bool { return billing.Is(i.StatusID, billing.StatusCanceled) }
func (i *Invoice) IsOpen() bool     { return billing.IsOpen(i.StatusID) }

// Overdue reports a sent invoice past its due date.
func (i *Invoice) Overdue(today time.Time) bool {
	return billing.Overdue(i.StatusID, i.DueDate, today)
}

// RemainingBalance is amount minus balance.
func (i *Invoice) RemainingBalance() decimal.Decimal {
	return billing.Remaining(i.Amount, i.Balance)
}

// CalcLines converts the lines for the calculator.
func (i *Invoice) CalcLines() []billing.Line {
	out := make([]billing.Line, len(i.Lines))
	for n := range i.Lines {
		out[n] = i.Lines[n].Calc()
	}
	return out
}

// CalcPayments converts the payments for the status engine.
func (i *Invoice) CalcPayments() []billing.Payment {
	out := make([]billing.Payment, len(i.Payments))
	for n, p := range i.Payments {
		out[n] = billing.Payment{Amount: p.Amount, Date: p.PaymentDate}
	}
	return out
}

// NotifiedUsers are the author and the assignee, without duplicates.
func (i *Invoice) NotifiedUsers() []uint {
	var ids []uint
	if i.AuthorID != 0 {
		ids = append(ids, i.AuthorID)
	}
	if i.AssignedToID != nil && *i.AssignedToID != 0 && *i.AssignedToID != i.AuthorID {
		ids = append(ids, *i.AssignedToID)
	}
	return ids
}

// Filename is the download name of the rendered invoice.
func (i *Invoice) Filename() string {
	return "invoice-" + i.Number + ".pdf"
}

// String renders "#INV-1 (sent): EUR 50.00 (Acme)".
func (i *Invoice) String() string {
	var b strings.Builder
	b.WriteString("#" + i.Number + " (" + i.Status().String() + "): ")
	b.WriteString(money.FormatCurrency(i.Amount, i.Currency))
	if i.Contact != nil && i.Contact.Name() != "" {
		b.WriteString(" (" + i.Contact.Name() + ")")
	}
	return b.String()
}

// InvoiceLine is one billable row.
type InvoiceLine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvoiceID uint  `gorm:"index;not null" json:"invoice_id"`
	ProductID *uint `gorm:"index" json:"product_id,omitempty"`
	Position  int   `gorm:"default:0" json:"position"`

	Description string              `gorm:"type:text" json:"description"`
	Price       decimal.Decimal     `gorm:"type:decimal(15,2);not null" json:"price"`
	Quantity    decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Tax         decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"tax"`
	Discount    decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"discount"`
	Units       string              `gorm:"size:255" json:"units,omitempty"`
}

// Calc converts the line for the calculator.
func (l *InvoiceLine) Calc() billing.Line {
	return billing.Line{
		Price:    l.Price,
		Quantity: l.Quantity,
		Discount: l.Discount,
		Tax:      l.Tax,
		Units:    l.Units,
	}
}

// Total is price × quantity less the line discount.
func (l *InvoiceLine) Total() decimal.Decimal { return l.Calc().Total() }

// TaxString renders the tax rate as "20.00%", empty when unset.
func (l *InvoiceLine) TaxString() string { return money.FormatPercent(l.Tax) }

// DiscountString renders the discount as "10.00%".
func (l *InvoiceLine) DiscountString() string {
	return money.FormatPercent(decimal.NewNullDecimal(l.Discount))
}

// InvoicePayment is money received against an invoice.
type InvoicePayment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvoiceID   uint            `gorm:"index;not null" json:"invoice_id"`
	AuthorID    uint            `gorm:"index" json:"author_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"not null;index" json:"payment_date"`
	Description string          `gorm:"type:text" json:"description,omitempty"`

	// OperationID links the payment to a finance operation when the finance
	// ledger is enabled.
	OperationID *uint `gorm:"index" json:"operation_id,omitempty"`
}

// InvoiceComment is a note left on an invoice.
type InvoiceComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	InvoiceID uint      `gorm:"index;not null" json:"invoice_id"`
	AuthorID  uint      `gorm:"index" json:"author_id"`
	Comments  string    `gorm:"type:text;not null" json:"comments"`
}

// InvoiceTemplate selects a document layout for rendered reports.
type InvoiceTemplate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Layout      string    `gorm:"size:50;not null" json:"layout"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
}

// GetProjectID returns the owning project, for project-scoped checks.
func (i *Invoice) GetProjectID() uint {
	return i.ProjectID
}
