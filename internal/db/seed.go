package db

import (
	"errors"

	"github.com/diewo77/go-invoicing/gate"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/policy"
	"github.com/diewo77/go-invoicing/internal/report"
	"gorm.io/gorm"
)

// Seed creates the permissions, default profiles and document templates.
// It is safe to run repeatedly.
func Seed(db *gorm.DB) error {
	if err := SeedProfiles(db); err != nil {
		return err
	}
	return SeedTemplates(db)
}

var permissionDescriptions = map[gate.Permission]string{
	gate.PermissionSuperAdmin:   "Full system access",
	"invoice:*":                 "All invoice actions",
	"payment:*":                 "All payment actions",
	"operation:*":               "All finance operation actions",
	policy.PermViewInvoices:     "View invoices",
	policy.PermAddInvoices:      "Create invoices",
	policy.PermEditInvoices:     "Edit invoices",
	policy.PermEditOwnInvoices:  "Edit own invoices",
	policy.PermDeleteInvoices:   "Delete invoices",
	policy.PermCommentInvoices:  "Comment invoices",
	policy.PermEditPayments:     "Edit invoice payments",
	policy.PermAddOperations:    "Add finance operations",
	policy.PermDeleteOperations: "Delete finance operations",
}

func seededPermissions() []gate.Permission {
	perms := []gate.Permission{gate.PermissionSuperAdmin, "invoice:*", "payment:*", "operation:*"}
	return append(perms, policy.All()...)
}

// SeedPermissions creates every permission the invoice module checks.
func SeedPermissions(db *gorm.DB) error {
	for _, p := range seededPermissions() {
		resource, action := p.Parse()
		perm := models.Permission{ResourceType: resource, Action: string(action), Description: permissionDescriptions[p]}
		result := db.Where("resource_type = ? AND action = ?", resource, string(action)).FirstOrCreate(&perm)
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// DefaultProfiles are the system profiles and their permission codes.
var DefaultProfiles = []struct {
	Name        string
	Description string
	Permissions []gate.Permission
}{
	{
		Name:        "admin",
		Description: "Full system administrator with all permissions",
		Permissions: []gate.Permission{gate.PermissionSuperAdmin},
	},
	{
		Name:        "manager",
		Description: "Manage invoices, payments and finance operations",
		Permissions: []gate.Permission{"invoice:*", "payment:*", "operation:*"},
	},
	{
		Name:        "accountant",
		Description: "Record payments on invoices and comment them",
		Permissions: []gate.Permission{
			policy.PermViewInvoices, policy.PermCommentInvoices, policy.PermEditPayments,
			policy.PermAddOperations, policy.PermDeleteOperations,
		},
	},
	{
		Name:        "author",
		Description: "Create invoices and edit the ones they wrote",
		Permissions: []gate.Permission{
			policy.PermViewInvoices, policy.PermAddInvoices, policy.PermEditOwnInvoices, policy.PermCommentInvoices,
		},
	},
	{
		Name:        "viewer",
		Description: "Read-only access to invoices",
		Permissions: []gate.Permission{policy.PermViewInvoices},
	},
}

// SeedProfiles creates the default profiles and resets their permissions.
func SeedProfiles(db *gorm.DB) error {
	if err := SeedPermissions(db); err != nil {
		return err
	}
	for _, p := range DefaultProfiles {
		var profile models.Profile
		err := db.Where("name = ?", p.Name).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.Profile{Name: p.Name, Description: p.Description, IsSystem: true}
			err = db.Create(&profile).Error
		}
		if err != nil {
			return err
		}

		var perms []models.Permission
		for _, code := range p.Permissions {
			resource, action := code.Parse()
			var perm models.Permission
			if err := db.Where("resource_type = ? AND action = ?", resource, string(action)).First(&perm).Error; err != nil {
				return err
			}
			perms = append(perms, perm)
		}
		if err := db.Model(&profile).Association("Permissions").Replace(perms); err != nil {
			return err
		}
	}
	return nil
}

// SeedTemplates creates one document template per layout.
func SeedTemplates(db *gorm.DB) error {
	for _, layout := range report.Layouts() {
		t := models.InvoiceTemplate{Name: layout, Layout: layout}
		if err := db.Where("name = ?", layout).FirstOrCreate(&t).Error; err != nil {
			return err
		}
	}
	return nil
}

// Grant gives a user a profile in a project; project 0 grants it everywhere.
func Grant(db *gorm.DB, userID, projectID uint, profileName string) error {
	var profile models.Profile
	if err := db.Where("name = ?", profileName).First(&profile).Error; err != nil {
		return err
	}
	m := models.Member{UserID: userID, ProjectID: projectID, ProfileID: profile.ID}
	return db.Where("user_id = ? AND project_id = ? AND profile_id = ?", userID, projectID, profile.ID).
		FirstOrCreate(&m).Error
}
