package models

import (
	"strings"
	"time"
)

// Project owns invoices and scopes memberships and settings.
type Project struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Identifier string    `gorm:"size:100;uniqueIndex;not null" json:"identifier"`
}

// Contact is the billed party.
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	FirstName string    `gorm:"size:255" json:"first_name,omitempty"`
	LastName  string    `gorm:"size:255" json:"last_name,omitempty"`
	Company   string    `gorm:"size:255" json:"company,omitempty"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Address   string    `gorm:"size:500" json:"address,omitempty"`
	City      string    `gorm:"size:100" json:"city,omitempty"`
	Country   string    `gorm:"size:100" json:"country,omitempty"`
}

// Name is the company name, or the person's name for individuals.
func (c *Contact) Name() string {
	if c.Company != "" {
		return c.Company
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
