// Package store persists invoices, lines, payments and comments with gorm.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/numbering"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope is a named status subset.
type Scope string

const (
	ScopeAll        Scope = ""
	ScopeOpen       Scope = "open"
	ScopePaid       Scope = "paid"
	ScopeSentOrPaid Scope = "sent_or_paid"
)

// Filter narrows ListInvoices and the sums. Zero values mean "any".
type Filter struct {
	// ProjectIDs restricts results to visible projects; nil means no
	// restriction, an empty non-nil slice matches nothing.
	ProjectIDs   []uint
	ProjectID    uint
	ContactID    uint
	AuthorID     uint
	AssignedToID uint
	Status       *billing.Status
	Scope        Scope
	Search       string
	// From and To bound invoice_date to [From, To).
	From *time.Time
	To   *time.Time
	// OverdueOn keeps sent invoices due on or before the given day.
	OverdueOn *time.Time
	Limit     int
	Offset    int
}

// CurrencySum is the amount total of one currency.
type CurrencySum struct {
	Currency string
	Amount   decimal.Decimal
	Count    int64
}

// Store is the persistence contract of the invoice service.
type Store interface {
	numbering.Counter

	// WithTx runs fn against a store bound to one transaction.
	WithTx(ctx context.Context, fn func(Store) error) error

	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	SaveInvoice(ctx context.Context, inv *models.Invoice) error
	FindInvoice(ctx context.Context, id uint) (*models.Invoice, error)
	DeleteInvoice(ctx context.Context, id uint) error
	ListInvoices(ctx context.Context, f Filter) ([]models.Invoice, error)
	SumByCurrency(ctx context.Context, f Filter) ([]CurrencySum, error)

	FindLine(ctx context.Context, invoiceID, lineID uint) (*models.InvoiceLine, error)
	CreateLine(ctx context.Context, l *models.InvoiceLine) error
	SaveLine(ctx context.Context, l *models.InvoiceLine) error
	DeleteLine(ctx context.Context, invoiceID, lineID uint) error

	FindPayment(ctx context.Context, invoiceID, paymentID uint) (*models.InvoicePayment, error)
	CreatePayment(ctx context.Context, p *models.InvoicePayment) error
	SavePayment(ctx context.Context, p *models.InvoicePayment) error
	DeletePayment(ctx context.Context, invoiceID, paymentID uint) error

	CreateComment(ctx context.Context, c *models.InvoiceComment) error

	// FindTemplates loads templates in the requested order.
	FindTemplates(ctx context.Context, ids []uint) ([]models.InvoiceTemplate, error)

	// DB is the connection the store writes with, bound to the transaction
	// inside WithTx.
	DB() *gorm.DB
}

// Gorm implements Store on a gorm connection.
type Gorm struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// DB exposes the connection, for collaborators sharing it.
func (s *Gorm) DB() *gorm.DB { return s.db }

func (s *Gorm) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Gorm) WithTx(ctx context.Context, fn func(Store) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx})
	})
}

func (s *Gorm) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	return translate(s.conn(ctx).Create(inv).Error)
}

// SaveInvoice writes the invoice row only; lines and payments have their own
// methods.
func (s *Gorm) SaveInvoice(ctx context.Context, inv *models.Invoice) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(inv).Error)
}

func (s *Gorm) FindInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.conn(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date, id") }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("Contact").
		Preload("Project").
		First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("invoice", id)
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// DeleteInvoice removes the invoice with its lines, payments and comments.
func (s *Gorm) DeleteInvoice(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&models.InvoiceLine{}, &models.InvoicePayment{}, &models.InvoiceComment{}} {
			if err := tx.Where("invoice_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Invoice{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("invoice", id)
		}
		return nil
	})
}

func (s *Gorm) filtered(ctx context.Context, f Filter) *gorm.DB {
	q := s.conn(ctx).Model(&models.Invoice{})
	if f.ProjectIDs != nil {
		if len(f.ProjectIDs) == 0 {
			q = q.Where("1 = 0")
		} else {
			q = q.Where("project_id IN ?", f.ProjectIDs)
		}
	}
	if f.ProjectID != 0 {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.ContactID != 0 {
		q = q.Where("contact_id = ?", f.ContactID)
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.AssignedToID != 0 {
		q = q.Where("assigned_to_id = ?", f.AssignedToID)
	}
	if f.Status != nil {
		q = q.Where("status_id = ?", *f.Status)
	}
	switch f.Scope {
	case ScopeOpen:
		q = q.Where("(status_id IS NULL OR status_id NOT IN ?)", []billing.Status{billing.StatusPaid, billing.StatusCanceled})
	case ScopePaid:
		q = q.Where("status_id = ?", billing.StatusPaid)
	case ScopeSentOrPaid:
		q = q.Where("status_id IN ?", []billing.Status{billing.StatusSent, billing.StatusPaid})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(number) LIKE @s OR LOWER(subject) LIKE @s OR LOWER(description) LIKE @s)",
			map[string]any{"s": like})
	}
	if f.From != nil {
		q = q.Where("invoice_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("invoice_date < ?", *f.To)
	}
	if f.OverdueOn != nil {
		q = q.Where("status_id = ? AND due_date IS NOT NULL AND due_date < ?",
			billing.StatusSent, numbering.Day(*f.OverdueOn).To)
	}
	return q
}

func (s *Gorm) ListInvoices(ctx context.Context, f Filter) ([]models.Invoice, error) {
	q := s.filtered(ctx, f).Preload("Contact").Order("invoice_date DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var out []models.Invoice
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SumByCurrency groups the filtered invoices by currency. Amounts are summed
// in Go so that sqlite and postgres agree on precision.
func (s *Gorm) SumByCurrency(ctx context.Context, f Filter) ([]CurrencySum, error) {
	var rows []struct {
		Currency string
		Amount   decimal.Decimal
	}
	if err := s.filtered(ctx, f).Select("currency, amount").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	var out []CurrencySum
	index := map[string]int{}
	for _, r := range rows {
		i, ok := index[r.Currency]
		if !ok {
			i = len(out)
			index[r.Currency] = i
			out = append(out, CurrencySum{Currency: r.Currency, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(r.Amount)
		out[i].Count++
	}
	return out, nil
}

func (s *Gorm) FindLine(ctx context.Context, invoiceID, lineID uint) (*models.InvoiceLine, error) {
	var l models.InvoiceLine
	err := s.conn(ctx).Where("invoice_id = ?", invoiceID).First(&l, lineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("invoice line", lineID)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Gorm) CreateLine(ctx context.Context, l *models.InvoiceLine) error {
	return s.conn(ctx).Create(l).Error
}

func (s *Gorm) SaveLine(ctx context.Context, l *models.InvoiceLine) error {
	return s.conn(ctx).Save(l).Error
}

func (s *Gorm) DeleteLine(ctx context.Context, invoiceID, lineID uint) error {
	res := s.conn(ctx).Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceLine{}, lineID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("invoice line", lineID)
	}
	return nil
}

func (s *Gorm) FindPayment(ctx context.Context, invoiceID, paymentID uint) (*models.InvoicePayment, error) {
	var p models.InvoicePayment
	err := s.conn(ctx).Where("invoice_id = ?", invoiceID).First(&p, paymentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("invoice payment", paymentID)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Gorm) CreatePayment(ctx context.Context, p *models.InvoicePayment) error {
	return s.conn(ctx).Create(p).Error
}

func (s *Gorm) SavePayment(ctx context.Context, p *models.InvoicePayment) error {
	return s.conn(ctx).Save(p).Error
}

func (s *Gorm) DeletePayment(ctx context.Context, invoiceID, paymentID uint) error {
	res := s.conn(ctx).Where("invoice_id = ?", invoiceID).Delete(&models.InvoicePayment{}, paymentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("invoice payment", paymentID)
	}
	return nil
}

func (s *Gorm) CreateComment(ctx context.Context, c *models.InvoiceComment) error {
	return s.conn(ctx).Create(c).Error
}

func (s *Gorm) FindTemplates(ctx context.Context, ids []uint) ([]models.InvoiceTemplate, error) {
	var found []models.InvoiceTemplate
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.InvoiceTemplate, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	out := make([]models.InvoiceTemplate, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, notFound("invoice template", id)
		}
		out = append(out, t)
	}
	return out, nil
}

// LastInvoiceID is the highest invoice id, 0 when there is none.
func (s *Gorm) LastInvoiceID(ctx context.Context) (uint, error) {
	var id uint
	err := s.conn(ctx).Model(&models.Invoice{}).Select("COALESCE(MAX(id), 0)").Scan(&id).Error
	return id, err
}

func (s *Gorm) CountInvoices(ctx context.Context, q numbering.CountQuery) (int64, error) {
	db := s.conn(ctx).Model(&models.Invoice{}).
		Where("invoice_date >= ? AND invoice_date < ?", q.From, q.To)
	if q.ProjectID != 0 {
		db = db.Where("project_id = ?", q.ProjectID)
	}
	var n int64
	err := db.Count(&n).Error
	return n, err
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateInvoiceNumber
	}
	return err
}
