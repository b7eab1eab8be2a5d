package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateInvoiceNumber is returned when the unique constraint on
	// invoices.number rejects a write.
	ErrDuplicateInvoiceNumber = errors.New("invoice number already taken")
)

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}
