package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a member of the host application. Only the fields needed to
// address notifications are kept.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string    `gorm:"size:255" json:"name,omitempty"`
}

// Notification is one message delivered to one user.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	InvoiceID uint      `gorm:"index" json:"invoice_id"`
	Kind      string    `gorm:"size:50;not null" json:"kind"`
	Title     string    `gorm:"size:255" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Read      bool      `gorm:"default:false" json:"read"`
	// Cc is true when the user was copied rather than addressed.
	Cc bool `gorm:"default:false" json:"cc"`
}

// ProjectSetting overrides a global invoice setting for one project.
type ProjectSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_setting;not null" json:"project_id"`
	Name      string    `gorm:"uniqueIndex:idx_project_setting;size:100;not null" json:"name"`
	Value     string    `gorm:"type:text" json:"value"`
}

// Operation is a finance ledger entry created from a payment.
type Operation struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	ProjectID     uint            `gorm:"index;not null" json:"project_id"`
	AuthorID      uint            `json:"author_id"`
	AccountID     uint            `gorm:"index;not null" json:"account_id"`
	CategoryID    uint            `gorm:"index;not null" json:"category_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	OperationDate time.Time       `gorm:"not null" json:"operation_date"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	InvoiceID     uint            `gorm:"index" json:"invoice_id"`
}
