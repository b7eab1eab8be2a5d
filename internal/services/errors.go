package services

import "errors"

var (
	// ErrForbidden is returned when the acting user lacks the permission an
	// operation needs, or when there is no acting user at all.
	ErrForbidden = errors.New("forbidden")

	// ErrMissingDependency is returned by NewInvoiceService.
	ErrMissingDependency = errors.New("missing service dependency")

	// ErrUnknownPeriod is returned by SumByPeriod for an unrecognized name.
	ErrUnknownPeriod = errors.New("unknown period")
)
