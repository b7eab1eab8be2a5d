package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/money"
	"github.com/diewo77/go-invoicing/internal/notify"
	"github.com/diewo77/go-invoicing/internal/numbering"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceInput is a new invoice as submitted. Numeric fields are raw text
// and accept a comma as decimal separator.
type InvoiceInput struct {
	ProjectID    uint
	Number       string
	Subject      string
	Description  string
	OrderNumber  string
	Currency     string
	Language     string
	ContactID    *uint
	AssignedToID *uint
	TemplateID   *uint
	InvoiceDate  time.Time
	DueDate      *time.Time
	Discount     string
	Status       *billing.Status
	Lines        []LineInput
}

// InvoicePatch holds the header fields to change; nil fields are kept.
type InvoicePatch struct {
	ProjectID    *uint
	Number       *string
	Subject      *string
	Description  *string
	OrderNumber  *string
	Currency     *string
	Language     *string
	ContactID    *uint
	AssignedToID *uint
	TemplateID   *uint
	InvoiceDate  *time.Time
	DueDate      *time.Time
	Discount     *string
	Status       *billing.Status
}

func parseDiscount(raw string, b *validation.Builder) decimal.Decimal {
	d, err := money.ParseDefault(raw, decimal.Zero)
	if err != nil {
		b.Fail("discount", "not_a_number", err)
		return decimal.Zero
	}
	validation.Percent("discount", d, b.Violations())
	return d
}

func checkStatusValue(st *billing.Status, b *validation.Builder) {
	if st != nil && !st.Valid() {
		b.Fail("status", "invalid", nil)
	}
}

// checkStatus runs the status guard on the cached figures of inv.
func checkStatus(inv *models.Invoice) error {
	if err := billing.CheckStatus(inv.StatusID, inv.Amount, inv.Balance); err != nil {
		return validation.Field("status", "inconsistent", err)
	}
	return nil
}

func numberError(err error) error {
	if errors.Is(err, store.ErrDuplicateInvoiceNumber) {
		return validation.Field("number", "taken", err)
	}
	return err
}

// snapshot recomputes inv from its lines without touching the store.
func (s *InvoiceService) snapshot(ctx context.Context, inv *models.Invoice) (billing.Snapshot, error) {
	withTax, err := s.settings.TotalWithTax(ctx, inv.ProjectID)
	if err != nil {
		return billing.Snapshot{}, err
	}
	return billing.Recompute(billing.Input{
		Lines:    inv.CalcLines(),
		Discount: inv.Discount,
		Status:   inv.StatusID,
		Balance:  inv.Balance,
		PaidDate: inv.PaidDate,
	}, s.settings.BillingMode(), withTax), nil
}

// recompute refreshes the cached amount of inv.
func (s *InvoiceService) recompute(ctx context.Context, inv *models.Invoice) error {
	snap, err := s.snapshot(ctx, inv)
	if err != nil {
		return err
	}
	inv.Amount = snap.Amount
	return nil
}

// persist recomputes, guards and saves inv. When derive is set, a SENT or
// PAID invoice with payments gets its status and paid date re-derived from
// the new amount.
func (s *InvoiceService) persist(ctx context.Context, st store.Store, inv *models.Invoice, derive bool) error {
	if err := s.recompute(ctx, inv); err != nil {
		return err
	}
	rebalance(inv, derive)
	if err := checkStatus(inv); err != nil {
		return err
	}
	return numberError(st.SaveInvoice(ctx, inv))
}

// rebalance caps the cached balance at the amount and, with derive,
// settles a SENT or PAID invoice again.
func rebalance(inv *models.Invoice, derive bool) {
	if len(inv.Payments) == 0 {
		return
	}
	r := billing.Settle(inv.Amount, inv.CalcPayments())
	inv.Balance = r.Balance
	if derive && (inv.IsSent() || inv.IsPaid()) {
		inv.StatusID = billing.NewStatus(r.Status)
		inv.PaidDate = r.PaidDate
	}
}

// NextNumber expands the number format of a project without reserving it.
func (s *InvoiceService) NextNumber(ctx context.Context, projectID uint) (string, error) {
	return s.nextNumber(ctx, s.store, projectID)
}

func (s *InvoiceService) nextNumber(ctx context.Context, st store.Store, projectID uint) (string, error) {
	format, err := s.settings.NumberFormat(ctx, projectID)
	if err != nil {
		return "", err
	}
	lang, err := s.settings.Language(ctx, projectID)
	if err != nil {
		return "", err
	}
	g := numbering.NewGenerator(st, numbering.WithClock(s.now), numbering.WithLanguage(lang))
	return g.Apply(ctx, format, projectID)
}

// Create validates and stores a new invoice with its lines. A blank number
// is generated from the project's number format.
func (s *InvoiceService) Create(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if in.ProjectID == 0 {
		return nil, validation.Field("project", "required", nil)
	}
	if !s.auth.CanCreate(ctx, in.ProjectID) {
		return nil, ErrForbidden
	}

	b := validation.NewBuilder()
	inv := &models.Invoice{
		ProjectID:    in.ProjectID,
		AuthorID:     userID,
		Number:       strings.TrimSpace(in.Number),
		Subject:      in.Subject,
		Description:  in.Description,
		OrderNumber:  in.OrderNumber,
		Currency:     in.Currency,
		Language:     in.Language,
		ContactID:    in.ContactID,
		AssignedToID: in.AssignedToID,
		TemplateID:   in.TemplateID,
		InvoiceDate:  in.InvoiceDate,
		DueDate:      in.DueDate,
		Discount:     parseDiscount(in.Discount, b),
		Balance:      decimal.Zero,
		StatusID:     in.Status,
		PublicKey:    uuid.NewString(),
	}
	checkStatusValue(in.Status, b)
	for i, l := range in.Lines {
		line := parseLine(l, b, fmt.Sprintf("lines[%d].", i))
		if line.Position == 0 {
			line.Position = i + 1
		}
		inv.Lines = append(inv.Lines, line)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	if inv.StatusID == nil {
		inv.StatusID = billing.NewStatus(billing.StatusDraft)
	}
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = s.today()
	}
	if inv.Currency == "" {
		if inv.Currency, err = s.settings.Currency(ctx, inv.ProjectID); err != nil {
			return nil, err
		}
	}

	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if inv.Number == "" {
			n, err := s.nextNumber(ctx, tx, inv.ProjectID)
			if err != nil {
				return err
			}
			inv.Number = n
		}
		if inv.Number == "" {
			return validation.Field("number", "required", nil)
		}
		if err := s.recompute(ctx, inv); err != nil {
			return err
		}
		if err := checkStatus(inv); err != nil {
			return err
		}
		return numberError(tx.CreateInvoice(ctx, inv))
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Uint("invoice_id", inv.ID).Str("number", inv.Number).Msg("invoice created")
	s.notify(ctx, notify.Event{
		Kind:       notify.KindInvoiceCreated,
		InvoiceID:  inv.ID,
		Number:     inv.Number,
		Title:      "Invoice " + inv.Number + " created",
		Message:    inv.String(),
		Recipients: inv.NotifiedUsers(),
	})
	return inv, nil
}

// Get loads an invoice the acting user may view.
func (s *InvoiceService) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	inv, err := s.store.FindInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.auth.CanView(ctx, inv.ProjectID) {
		return nil, ErrForbidden
	}
	return inv, nil
}

// List returns the invoices matching f within the projects the acting user
// may view.
func (s *InvoiceService) List(ctx context.Context, f store.Filter) ([]models.Invoice, error) {
	f, err := s.visible(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.store.ListInvoices(ctx, f)
}

func (s *InvoiceService) visible(ctx context.Context, f store.Filter) (store.Filter, error) {
	projects, err := s.auth.VisibleProjects(ctx)
	if err != nil {
		return f, err
	}
	if f.ProjectIDs == nil {
		f.ProjectIDs = projects
		return f, nil
	}
	allowed := []uint{}
	for _, id := range f.ProjectIDs {
		if slices.Contains(projects, id) {
			allowed = append(allowed, id)
		}
	}
	f.ProjectIDs = allowed
	return f, nil
}

// editable loads an invoice the acting user may edit.
func (s *InvoiceService) editable(ctx context.Context, st store.Store, id uint) (*models.Invoice, error) {
	inv, err := st.FindInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.auth.CanEdit(ctx, inv) {
		return nil, ErrForbidden
	}
	return inv, nil
}

// Update applies p to the invoice header. A status write goes through the
// status guard and a project move needs a permission on the target project.
func (s *InvoiceService) Update(ctx context.Context, id uint, p InvoicePatch) (*models.Invoice, error) {
	var inv *models.Invoice
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		if inv, err = s.editable(ctx, tx, id); err != nil {
			return err
		}
		if p.ProjectID != nil && *p.ProjectID != inv.ProjectID {
			targets, err := s.auth.AllowedTargetProjects(ctx)
			if err != nil {
				return err
			}
			if !slices.Contains(targets, *p.ProjectID) {
				return ErrForbidden
			}
			inv.ProjectID = *p.ProjectID
			inv.Project = nil
		}
		if err := applyPatch(inv, p); err != nil {
			return err
		}
		return s.persist(ctx, tx, inv, p.Status == nil)
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Uint("invoice_id", inv.ID).Msg("invoice updated")
	return inv, nil
}

func applyPatch(inv *models.Invoice, p InvoicePatch) error {
	b := validation.NewBuilder()
	if p.Number != nil {
		inv.Number = strings.TrimSpace(*p.Number)
		validation.Required("number", inv.Number, b.Violations())
	}
	setString(&inv.Subject, p.Subject)
	setString(&inv.Description, p.Description)
	setString(&inv.OrderNumber, p.OrderNumber)
	setString(&inv.Currency, p.Currency)
	setString(&inv.Language, p.Language)
	if p.ContactID != nil {
		inv.ContactID = p.ContactID
		inv.Contact = nil
	}
	if p.AssignedToID != nil {
		inv.AssignedToID = p.AssignedToID
	}
	if p.TemplateID != nil {
		inv.TemplateID = p.TemplateID
	}
	if p.InvoiceDate != nil {
		inv.InvoiceDate = *p.InvoiceDate
	}
	if p.DueDate != nil {
		inv.DueDate = p.DueDate
	}
	if p.Discount != nil {
		inv.Discount = parseDiscount(*p.Discount, b)
	}
	if p.Status != nil {
		checkStatusValue(p.Status, b)
		inv.StatusID = billing.NewStatus(*p.Status)
	}
	return b.Err()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// SetStatus writes an explicit status.
func (s *InvoiceService) SetStatus(ctx context.Context, id uint, st billing.Status) (*models.Invoice, error) {
	return s.Update(ctx, id, InvoicePatch{Status: &st})
}

// Cancel moves the invoice to CANCELED.
func (s *InvoiceService) Cancel(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.SetStatus(ctx, id, billing.StatusCanceled)
}

// Delete removes the invoice, its children and the finance operations of
// its payments.
func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		inv, err := tx.FindInvoice(ctx, id)
		if err != nil {
			return err
		}
		if !s.auth.CanDelete(ctx, inv) {
			return ErrForbidden
		}
		for i := range inv.Payments {
			if err := s.dropOperation(ctx, tx, inv, &inv.Payments[i]); err != nil {
				return err
			}
		}
		return tx.DeleteInvoice(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Debug().Uint("invoice_id", id).Msg("invoice deleted")
	return nil
}

// Snapshot returns the recomputed figures of a visible invoice.
func (s *InvoiceService) Snapshot(ctx context.Context, id uint) (billing.Snapshot, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return billing.Snapshot{}, err
	}
	return s.snapshot(ctx, inv)
}

// Recompute refreshes and stores the cached amount of an invoice, for
// example after the billing mode changed.
func (s *InvoiceService) Recompute(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv *models.Invoice
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		if inv, err = s.editable(ctx, tx, id); err != nil {
			return err
		}
		return s.persist(ctx, tx, inv, true)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}
