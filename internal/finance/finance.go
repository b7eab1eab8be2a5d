// Package finance records payments as operations of a finance ledger. It is
// optional; the invoice service runs without it when finance is disabled.
package finance

import (
	"context"
	"errors"
	"time"

	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOperationNotFound = errors.New("operation not found")
	// ErrLinkedToPayment is returned when an operation owned by an invoice
	// payment is edited or removed directly.
	ErrLinkedToPayment = errors.New("operation is linked to an invoice payment")
)

// Entry is the operation derived from one payment.
type Entry struct {
	ProjectID   uint
	InvoiceID   uint
	AuthorID    uint
	AccountID   uint
	CategoryID  uint
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// Complete reports whether both account and category are chosen.
func (e Entry) Complete() bool {
	return e.AccountID != 0 && e.CategoryID != 0
}

// Conn is a connection to write through, such as a transaction-bound store.
type Conn interface {
	DB() *gorm.DB
}

// Ledger stores operations with gorm. A nil Conn writes through the
// ledger's own connection.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger { return &Ledger{db: db} }

func (l *Ledger) conn(ctx context.Context, c Conn) *gorm.DB {
	if c != nil {
		return c.DB().WithContext(ctx)
	}
	return l.db.WithContext(ctx)
}

func (e Entry) apply(op *models.Operation) {
	op.ProjectID = e.ProjectID
	op.InvoiceID = e.InvoiceID
	op.AuthorID = e.AuthorID
	op.AccountID = e.AccountID
	op.CategoryID = e.CategoryID
	op.Amount = e.Amount
	op.OperationDate = e.Date
	op.Description = e.Description
}

// Create inserts the operation of a payment and returns its id.
func (l *Ledger) Create(ctx context.Context, c Conn, e Entry) (uint, error) {
	var op models.Operation
	e.apply(&op)
	if err := l.conn(ctx, c).Create(&op).Error; err != nil {
		return 0, err
	}
	return op.ID, nil
}

// Update rewrites the operation from e.
func (l *Ledger) Update(ctx context.Context, c Conn, id uint, e Entry) error {
	db := l.conn(ctx, c)
	var op models.Operation
	if err := db.First(&op, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOperationNotFound
		}
		return err
	}
	e.apply(&op)
	return db.Save(&op).Error
}

// Delete removes an operation.
func (l *Ledger) Delete(ctx context.Context, c Conn, id uint) error {
	res := l.conn(ctx, c).Delete(&models.Operation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOperationNotFound
	}
	return nil
}

// Find loads one operation.
func (l *Ledger) Find(ctx context.Context, id uint) (*models.Operation, error) {
	var op models.Operation
	if err := l.db.WithContext(ctx).First(&op, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, err
	}
	return &op, nil
}

// Linked reports whether an invoice payment owns the operation.
func (l *Ledger) Linked(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := l.db.WithContext(ctx).Model(&models.InvoicePayment{}).Where("operation_id = ?", id).Count(&n).Error
	return n > 0, err
}

// Remove deletes an operation that no payment owns. Payment-owned
// operations go away with their payment.
func (l *Ledger) Remove(ctx context.Context, id uint) error {
	linked, err := l.Linked(ctx, id)
	if err != nil {
		return err
	}
	if linked {
		return ErrLinkedToPayment
	}
	return l.Delete(ctx, nil, id)
}
