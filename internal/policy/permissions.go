// Package policy answers the invoice authorization questions on top of
// project-scoped gate profiles.
package policy

import "github.com/diewo77/go-invoicing/gate"

// Resource types.
const (
	ResourceInvoice   = "invoice"
	ResourcePayment   = "payment"
	ResourceOperation = "operation"
)

var (
	PermViewInvoices     = gate.NewPermission(ResourceInvoice, gate.ActionView)
	PermAddInvoices      = gate.NewPermission(ResourceInvoice, gate.ActionCreate)
	PermEditInvoices     = gate.NewPermission(ResourceInvoice, gate.ActionUpdate)
	PermEditOwnInvoices  = gate.NewPermission(ResourceInvoice, gate.ActionUpdateOwn)
	PermDeleteInvoices   = gate.NewPermission(ResourceInvoice, gate.ActionDelete)
	PermCommentInvoices  = gate.NewPermission(ResourceInvoice, gate.ActionComment)
	PermEditPayments     = gate.NewPermission(ResourcePayment, gate.ActionUpdate)
	PermAddOperations    = gate.NewPermission(ResourceOperation, gate.ActionCreate)
	PermDeleteOperations = gate.NewPermission(ResourceOperation, gate.ActionDelete)
)

// All lists every permission known to the invoice module, for seeding.
func All() []gate.Permission {
	return []gate.Permission{
		PermViewInvoices, PermAddInvoices, PermEditInvoices, PermEditOwnInvoices,
		PermDeleteInvoices, PermCommentInvoices, PermEditPayments,
		PermAddOperations, PermDeleteOperations,
	}
}
