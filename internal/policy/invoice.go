package policy

import (
	"context"
	"time"

	"github.com/diewo77/go-invoicing/auth"
	"github.com/diewo77/go-invoicing/gate"
	"gorm.io/gorm"
)

// Owned is a project resource with an author.
type Owned interface {
	GetUserID() uint
	GetProjectID() uint
}

// ProjectLister enumerates the projects a user could be granted access to.
type ProjectLister interface {
	ProjectIDs(ctx context.Context) ([]uint, error)
}

// InvoicePolicy evaluates invoice permissions for the user carried by the
// context (see auth.WithUserID). Anonymous contexts are denied everything.
type InvoicePolicy struct {
	gate     *gate.Gate[Member]
	projects ProjectLister
}

// NewInvoicePolicy creates a policy over resolver; projects may be nil when
// project enumeration is not needed.
func NewInvoicePolicy(resolver gate.ProfileResolver[Member], projects ProjectLister) *InvoicePolicy {
	return &InvoicePolicy{gate: gate.New(resolver), projects: projects}
}

// Cached couples a policy with the cache in front of its resolver.
type Cached struct {
	*InvoicePolicy
	Cache *gate.CachedResolver[Member]
}

// NewDBPolicy wires the project_members resolver behind a TTL cache.
func NewDBPolicy(db *gorm.DB, cacheTTL time.Duration) *Cached {
	cache := gate.NewCachedResolver[Member](NewDBMemberResolver(db), cacheTTL)
	return &Cached{
		InvoicePolicy: NewInvoicePolicy(cache, DBProjects{DB: db}),
		Cache:         cache,
	}
}

func (p *InvoicePolicy) member(ctx context.Context, projectID uint) (Member, bool) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return Member{}, false
	}
	return Member{UserID: userID, ProjectID: projectID}, true
}

// Allowed reports whether the acting user holds perm in projectID.
func (p *InvoicePolicy) Allowed(ctx context.Context, projectID uint, perm gate.Permission) bool {
	m, ok := p.member(ctx, projectID)
	return ok && p.gate.Allows(ctx, m, perm)
}

func (p *InvoicePolicy) allowedAny(ctx context.Context, projectID uint, perms ...gate.Permission) bool {
	m, ok := p.member(ctx, projectID)
	return ok && p.gate.AllowsAny(ctx, m, perms...)
}

// isAuthor reports whether the acting user wrote r.
func isAuthor(ctx context.Context, r Owned) bool {
	userID, ok := auth.UserIDFromContext(ctx)
	return ok && r.GetUserID() == userID
}

func (p *InvoicePolicy) CanView(ctx context.Context, projectID uint) bool {
	return p.Allowed(ctx, projectID, PermViewInvoices)
}

func (p *InvoicePolicy) CanCreate(ctx context.Context, projectID uint) bool {
	return p.Allowed(ctx, projectID, PermAddInvoices)
}

// CanEdit: edit_invoices, or edit_own_invoices on an invoice the user wrote.
func (p *InvoicePolicy) CanEdit(ctx context.Context, r Owned) bool {
	if p.Allowed(ctx, r.GetProjectID(), PermEditInvoices) {
		return true
	}
	return isAuthor(ctx, r) && p.Allowed(ctx, r.GetProjectID(), PermEditOwnInvoices)
}

// CanDelete: delete_invoices, or edit_own_invoices on an invoice the user wrote.
func (p *InvoicePolicy) CanDelete(ctx context.Context, r Owned) bool {
	if p.Allowed(ctx, r.GetProjectID(), PermDeleteInvoices) {
		return true
	}
	return isAuthor(ctx, r) && p.Allowed(ctx, r.GetProjectID(), PermEditOwnInvoices)
}

func (p *InvoicePolicy) CanComment(ctx context.Context, projectID uint) bool {
	return p.Allowed(ctx, projectID, PermCommentInvoices)
}

func (p *InvoicePolicy) CanEditPayments(ctx context.Context, projectID uint) bool {
	return p.Allowed(ctx, projectID, PermEditPayments)
}

// CanDestroyPayment additionally requires delete_operations when the
// payment is linked to a finance operation.
func (p *InvoicePolicy) CanDestroyPayment(ctx context.Context, projectID uint, linkedOperation bool) bool {
	if !p.CanEditPayments(ctx, projectID) {
		return false
	}
	return !linkedOperation || p.CanDeleteOperations(ctx, projectID)
}

func (p *InvoicePolicy) CanAddOperations(ctx context.Context, projectID uint) bool {
	return p.Allowed(ctx, projectID, PermAddOperations)
}

func (p *InvoicePolicy) CanDeleteOperations(ctx context.Context, projectID uint) bool {
	return p.Allowed(ctx, projectID, PermDeleteOperations)
}

// VisibleProjects lists the projects whose invoices the user may view.
func (p *InvoicePolicy) VisibleProjects(ctx context.Context) ([]uint, error) {
	return p.filterProjects(ctx, PermViewInvoices)
}

// AllowedTargetProjects lists the projects an invoice may be created in or
// moved to by the user.
func (p *InvoicePolicy) AllowedTargetProjects(ctx context.Context) ([]uint, error) {
	return p.filterProjects(ctx, PermAddInvoices, PermEditInvoices, PermEditOwnInvoices)
}

func (p *InvoicePolicy) filterProjects(ctx context.Context, perms ...gate.Permission) ([]uint, error) {
	out := []uint{}
	if p.projects == nil {
		return out, nil
	}
	ids, err := p.projects.ProjectIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if p.allowedAny(ctx, id, perms...) {
			out = append(out, id)
		}
	}
	return out, nil
}
