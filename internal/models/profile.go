package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile groups permissions. Members are granted a profile per project.
type Profile struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Name        string         `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string         `gorm:"size:500" json:"description,omitempty"`
	IsSystem    bool           `gorm:"default:false" json:"is_system"`
	// Many-to-many via profile_permissions.
	Permissions []Permission `gorm:"many2many:profile_permissions;" json:"permissions,omitempty"`
}

// Codes returns the "resource:action" code of every permission.
func (p *Profile) Codes() []string {
	out := make([]string, len(p.Permissions))
	for i, perm := range p.Permissions {
		out[i] = perm.Code()
	}
	return out
}

// Permission is a single action allowed on a resource type, such as
// "invoice:update_own" or "payment:update".
type Permission struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	ResourceType string         `gorm:"size:50;not null;index:idx_perm_resource_action" json:"resource_type"`
	Action       string         `gorm:"size:50;not null;index:idx_perm_resource_action" json:"action"`
	Description  string         `gorm:"size:200" json:"description,omitempty"`
}

// Code returns the permission in "resource:action" format for matching.
func (p Permission) Code() string {
	return p.ResourceType + ":" + p.Action
}

// Member grants a profile to a user within a project. ProjectID 0 is a
// global grant that applies to every project.
type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"uniqueIndex:idx_member;not null" json:"user_id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_member;not null;default:0" json:"project_id"`
	ProfileID uint      `gorm:"uniqueIndex:idx_member;not null" json:"profile_id"`
	Profile   *Profile  `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
}

// All returns every model, in migration order.
func All() []any {
	return []any{
		&Permission{}, &Profile{}, &User{}, &Project{}, &Member{}, &Contact{},
		&InvoiceTemplate{}, &Invoice{}, &InvoiceLine{}, &InvoicePayment{},
		&InvoiceComment{}, &ProjectSetting{}, &Notification{}, &Operation{},
	}
}

func (Member) TableName() string { return "project_members" }
