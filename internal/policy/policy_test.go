package policy

import (
	"context"
	"testing"

	"github.com/diewo77/go-invoicing/auth"
	"github.com/diewo77/go-invoicing/gate"
	"github.com/diewo77/go-invoicing/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type doc struct{ author, project uint }

func (d doc) GetUserID() uint    { return d.author }
func (d doc) GetProjectID() uint { return d.project }

type projectList []uint

func (l projectList) ProjectIDs(context.Context) ([]uint, error) { return l, nil }

func newPolicy() *InvoicePolicy {
	r := gate.NewStaticResolver[Member]()
	r.Set(Member{UserID: 1, ProjectID: 10}, gate.NewStaticProfile(1, "manager", gate.NewPermission(ResourceInvoice, gate.WildcardAll), PermEditPayments))
	r.Set(Member{UserID: 2, ProjectID: 10}, gate.NewStaticProfile(2, "author", PermViewInvoices, PermEditOwnInvoices))
	r.Set(Member{UserID: 3, ProjectID: 10}, gate.NewStaticProfile(3, "accountant", PermViewInvoices, PermEditPayments, PermAddOperations))
	r.Set(Member{UserID: 3, ProjectID: 20}, gate.NewStaticProfile(3, "creator", PermAddInvoices))
	return NewInvoicePolicy(r, projectList{10, 20, 30})
}

func as(user uint) context.Context {
	return auth.WithUserID(context.Background(), user)
}

func TestInvoicePolicy_Predicates(t *testing.T) {
	p := newPolicy()
	own := doc{author: 2, project: 10}
	other := doc{author: 9, project: 10}

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"manager views", p.CanView(as(1), 10), true},
		{"manager edits any", p.CanEdit(as(1), other), true},
		{"manager deletes any", p.CanDelete(as(1), other), true},
		{"author edits own", p.CanEdit(as(2), own), true},
		{"author deletes own", p.CanDelete(as(2), own), true},
		{"author cannot edit others", p.CanEdit(as(2), other), false},
		{"author cannot delete others", p.CanDelete(as(2), other), false},
		{"author cannot comment", p.CanComment(as(2), 10), false},
		{"accountant edits payments", p.CanEditPayments(as(3), 10), true},
		{"accountant destroys plain payment", p.CanDestroyPayment(as(3), 10, false), true},
		{"linked payment needs delete_operations", p.CanDestroyPayment(as(3), 10, true), false},
		{"manager lacks operations", p.CanAddOperations(as(1), 10), false},
		{"accountant adds operations", p.CanAddOperations(as(3), 10), true},
		{"membership is per project", p.CanView(as(1), 20), false},
		{"anonymous denied", p.CanView(context.Background(), 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestInvoicePolicy_Projects(t *testing.T) {
	p := newPolicy()
	ids, err := p.AllowedTargetProjects(as(3))
	if err != nil {
		t.Fatalf("allowed projects: %v", err)
	}
	if len(ids) != 1 || ids[0] != 20 {
		t.Errorf("AllowedTargetProjects() = %v, want [20]", ids)
	}

	ids, err = p.VisibleProjects(as(2))
	if err != nil {
		t.Fatalf("visible projects: %v", err)
	}
	if len(ids) != 1 || ids[0] != 10 {
		t.Errorf("VisibleProjects() = %v, want [10]", ids)
	}

	ids, _ = p.VisibleProjects(context.Background())
	if len(ids) != 0 {
		t.Errorf("anonymous sees %v", ids)
	}
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbi, err := gorm.Open(sqlite.Open("file:policy_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbi.AutoMigrate(&models.Permission{}, &models.Profile{}, &models.Project{}, &models.Member{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return dbi
}

func TestDBMemberResolver_MergesGlobalGrant(t *testing.T) {
	dbi := setupDB(t)
	view := models.Permission{ResourceType: "invoice", Action: "view"}
	pay := models.Permission{ResourceType: "payment", Action: "update"}
	viewer := models.Profile{Name: "viewer", Permissions: []models.Permission{view}}
	accountant := models.Profile{Name: "accountant", Permissions: []models.Permission{pay}}
	for _, p := range []*models.Profile{&viewer, &accountant} {
		if err := dbi.Create(p).Error; err != nil {
			t.Fatalf("profile: %v", err)
		}
	}
	for _, m := range []models.Member{
		{UserID: 5, ProjectID: 0, ProfileID: viewer.ID},
		{UserID: 5, ProjectID: 7, ProfileID: accountant.ID},
	} {
		if err := dbi.Create(&m).Error; err != nil {
			t.Fatalf("member: %v", err)
		}
	}

	r := NewDBMemberResolver(dbi)
	prof, err := r.Resolve(context.Background(), Member{UserID: 5, ProjectID: 7})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if prof == nil || !prof.HasPermission(PermViewInvoices) || !prof.HasPermission(PermEditPayments) {
		t.Fatalf("expected merged permissions, got %v", prof)
	}
	if prof.Name() != "viewer+accountant" {
		t.Errorf("Name() = %q", prof.Name())
	}

	prof, err = r.Resolve(context.Background(), Member{UserID: 5, ProjectID: 8})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if prof.HasPermission(PermEditPayments) {
		t.Error("project grant leaked into another project")
	}

	prof, err = r.Resolve(context.Background(), Member{UserID: 6, ProjectID: 7})
	if err != nil || prof != nil {
		t.Errorf("expected no profile, got %v, %v", prof, err)
	}
}

func TestNewDBPolicy(t *testing.T) {
	dbi := setupDB(t)
	if err := dbi.Create(&models.Project{Name: "Acme", Identifier: "acme"}).Error; err != nil {
		t.Fatalf("project: %v", err)
	}
	p := NewDBPolicy(dbi, 0)
	ids, err := p.VisibleProjects(as(1))
	if err != nil {
		t.Fatalf("visible: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("user without grants sees %v", ids)
	}
	p.Cache.InvalidateAll()
}
