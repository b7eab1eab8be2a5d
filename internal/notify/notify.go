// Package notify delivers invoice events to users. Delivery is best effort:
// callers log failures and carry on.
package notify

import (
	"context"
	"errors"

	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Event kinds.
const (
	KindInvoiceCreated      = "invoice_created"
	KindInvoiceCommentAdded = "invoice_comment_added"
	KindPaymentCreated      = "invoice_payment_created"
)

// Event is one notification about an invoice.
type Event struct {
	Kind       string
	InvoiceID  uint
	Number     string
	Title      string
	Message    string
	Recipients []uint
	// Cc receives a copy; duplicates of Recipients are dropped.
	Cc []uint
}

// Notifier delivers events.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// LogNotifier writes events to a logger.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Notify(_ context.Context, e Event) error {
	n.Log.Info().
		Str("kind", e.Kind).
		Uint("invoice_id", e.InvoiceID).
		Str("number", e.Number).
		Uints("recipients", e.Recipients).
		Uints("cc", e.Cc).
		Msg(e.Title)
	return nil
}

// StoreNotifier persists one notifications row per recipient.
type StoreNotifier struct {
	DB *gorm.DB
}

func (n StoreNotifier) Notify(ctx context.Context, e Event) error {
	seen := map[uint]bool{}
	var rows []models.Notification
	add := func(ids []uint, cc bool) {
		for _, id := range ids {
			if id == 0 || seen[id] {
				continue
			}
			seen[id] = true
			rows = append(rows, models.Notification{
				UserID: id, InvoiceID: e.InvoiceID, Kind: e.Kind,
				Title: e.Title, Message: e.Message, Cc: cc,
			})
		}
	}
	add(e.Recipients, false)
	add(e.Cc, true)
	if len(rows) == 0 {
		return nil
	}
	return n.DB.WithContext(ctx).Create(&rows).Error
}

// Multi fans an event out to several notifiers, joining their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }
