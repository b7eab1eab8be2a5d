package services

import (
	"context"
	"strings"

	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/notify"
	"github.com/diewo77/go-invoicing/validation"
)

// AddComment leaves a note on an invoice and notifies its author and
// assignee.
func (s *InvoiceService) AddComment(ctx context.Context, invoiceID uint, text string) (*models.InvoiceComment, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validation.Field("comments", "required", nil)
	}
	inv, err := s.store.FindInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !s.auth.CanComment(ctx, inv.ProjectID) {
		return nil, ErrForbidden
	}
	c := &models.InvoiceComment{InvoiceID: inv.ID, AuthorID: userID, Comments: text}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	s.notify(ctx, notify.Event{
		Kind:       notify.KindInvoiceCommentAdded,
		InvoiceID:  inv.ID,
		Number:     inv.Number,
		Title:      "Comment on invoice " + inv.Number,
		Message:    text,
		Recipients: inv.NotifiedUsers(),
	})
	return c, nil
}
