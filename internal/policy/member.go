package policy

import (
	"context"

	"github.com/diewo77/go-invoicing/gate"
	"github.com/diewo77/go-invoicing/internal/models"
	"gorm.io/gorm"
)

// Member is the authorization subject: a user acting within a project.
type Member struct {
	UserID    uint
	ProjectID uint
}

// DBMemberResolver fetches the profiles granted to a user in a project from
// project_members. Global grants (project 0) are merged in.
type DBMemberResolver struct {
	DB *gorm.DB
}

// NewDBMemberResolver creates a new database-backed member resolver.
func NewDBMemberResolver(db *gorm.DB) *DBMemberResolver {
	return &DBMemberResolver{DB: db}
}

// Resolve merges every profile granted to the member. Returns nil when the
// user holds no grant in the project.
func (r *DBMemberResolver) Resolve(ctx context.Context, m Member) (gate.Profile, error) {
	var rows []models.Member
	err := r.DB.WithContext(ctx).
		Preload("Profile.Permissions").
		Where("user_id = ? AND project_id IN ?", m.UserID, []uint{0, m.ProjectID}).
		Order("project_id, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	profiles := make([]gate.Profile, 0, len(rows))
	for _, row := range rows {
		if row.Profile != nil {
			profiles = append(profiles, &dbProfileAdapter{profile: row.Profile})
		}
	}
	return gate.Merge(profiles...), nil
}

// dbProfileAdapter wraps a models.Profile to implement gate.Profile interface.
type dbProfileAdapter struct {
	profile *models.Profile
}

func (a *dbProfileAdapter) ID() uint     { return a.profile.ID }
func (a *dbProfileAdapter) Name() string { return a.profile.Name }

// HasPermission checks the stored permissions, honouring wildcards.
func (a *dbProfileAdapter) HasPermission(perm gate.Permission) bool {
	for _, p := range a.profile.Permissions {
		if gate.NewPermission(p.ResourceType, gate.Action(p.Action)).Matches(perm) {
			return true
		}
	}
	return false
}

func (a *dbProfileAdapter) Permissions() []gate.Permission {
	result := make([]gate.Permission, len(a.profile.Permissions))
	for i, p := range a.profile.Permissions {
		result[i] = gate.NewPermission(p.ResourceType, gate.Action(p.Action))
	}
	return result
}

// DBProjects lists candidate project ids from the projects table.
type DBProjects struct {
	DB *gorm.DB
}

func (p DBProjects) ProjectIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := p.DB.WithContext(ctx).Model(&models.Project{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}
