// Package services implements the invoice operations on top of the store:
// every mutation recomputes the cached figures before it persists them.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/diewo77/go-invoicing/auth"
	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/finance"
	"github.com/diewo77/go-invoicing/internal/notify"
	"github.com/diewo77/go-invoicing/internal/numbering"
	"github.com/diewo77/go-invoicing/internal/policy"
	"github.com/diewo77/go-invoicing/internal/report"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/rs/zerolog"
)

// Settings is the part of settings.Provider the service reads.
type Settings interface {
	BillingMode() billing.Mode
	PublicLinks() bool
	FinanceEnabled() bool
	Secret() string
	CompanyName() string
	CompanyInfo() string
	NumberFormat(ctx context.Context, projectID uint) (string, error)
	TotalWithTax(ctx context.Context, projectID uint) (bool, error)
	Language(ctx context.Context, projectID uint) (string, error)
	Currency(ctx context.Context, projectID uint) (string, error)
}

// Authorizer answers the permission questions of the acting user.
type Authorizer interface {
	CanView(ctx context.Context, projectID uint) bool
	CanCreate(ctx context.Context, projectID uint) bool
	CanEdit(ctx context.Context, r policy.Owned) bool
	CanDelete(ctx context.Context, r policy.Owned) bool
	CanComment(ctx context.Context, projectID uint) bool
	CanEditPayments(ctx context.Context, projectID uint) bool
	CanDestroyPayment(ctx context.Context, projectID uint, linkedOperation bool) bool
	CanAddOperations(ctx context.Context, projectID uint) bool
	CanDeleteOperations(ctx context.Context, projectID uint) bool
	VisibleProjects(ctx context.Context) ([]uint, error)
	AllowedTargetProjects(ctx context.Context) ([]uint, error)
}

// FinanceLedger records the operations linked to payments. The conn
// argument is the transaction-bound store the payment is written with.
type FinanceLedger interface {
	Create(ctx context.Context, conn finance.Conn, e finance.Entry) (uint, error)
	Update(ctx context.Context, conn finance.Conn, id uint, e finance.Entry) error
	Delete(ctx context.Context, conn finance.Conn, id uint) error
}

// Dependencies wires an InvoiceService. Store, Settings and Auth are
// required. Finance is optional and only used when the settings enable it.
type Dependencies struct {
	Store    store.Store
	Settings Settings
	Auth     Authorizer
	Notifier notify.Notifier
	Finance  FinanceLedger
	Renderer report.Renderer
	Links    *report.Links
	// BaseURL is the address public links point to.
	BaseURL string
	Now     func() time.Time
	Log     zerolog.Logger
}

type InvoiceService struct {
	store    store.Store
	settings Settings
	auth     Authorizer
	notifier notify.Notifier
	finance  FinanceLedger
	renderer report.Renderer
	links    *report.Links
	baseURL  string
	now      func() time.Time
	log      zerolog.Logger
}

func NewInvoiceService(d Dependencies) (*InvoiceService, error) {
	switch {
	case d.Store == nil:
		return nil, fmt.Errorf("%w: store", ErrMissingDependency)
	case d.Settings == nil:
		return nil, fmt.Errorf("%w: settings", ErrMissingDependency)
	case d.Auth == nil:
		return nil, fmt.Errorf("%w: authorizer", ErrMissingDependency)
	}
	s := &InvoiceService{
		store:    d.Store,
		settings: d.Settings,
		auth:     d.Auth,
		notifier: d.Notifier,
		renderer: d.Renderer,
		links:    d.Links,
		baseURL:  d.BaseURL,
		now:      d.Now,
		log:      d.Log,
	}
	if d.Settings.FinanceEnabled() {
		s.finance = d.Finance
	}
	if s.notifier == nil {
		s.notifier = notify.Nop{}
	}
	if s.renderer == nil {
		s.renderer = report.PDFRenderer{}
	}
	if s.links == nil {
		s.links = report.NewLinks(d.Settings.Secret(), d.Settings.PublicLinks())
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Today is midnight of the service clock's current day.
func (s *InvoiceService) Today() time.Time { return s.today() }

func (s *InvoiceService) today() time.Time {
	return numbering.Midnight(s.now())
}

func currentUser(ctx context.Context) (uint, error) {
	id, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return 0, ErrForbidden
	}
	return id, nil
}

// notify delivers e and only logs failures.
func (s *InvoiceService) notify(ctx context.Context, e notify.Event) {
	if len(e.Recipients) == 0 && len(e.Cc) == 0 {
		return
	}
	if err := s.notifier.Notify(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("kind", e.Kind).Uint("invoice_id", e.InvoiceID).Msg("notification failed")
	}
}
