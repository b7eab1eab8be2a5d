package report

import "strings"

// Macros usable in mail subjects and bodies.
var Macros = []string{
	"{%contact.first_name%}", "{%contact.last_name%}", "{%contact.name%}", "{%contact.company%}",
	"{%invoice.number%}", "{%invoice.invoice_date%}", "{%invoice.due_date%}", "{%invoice.public_link%}",
}

// MacroValues supplies the contact fields the document does not carry.
type MacroValues struct {
	FirstName string
	LastName  string
	Company   string
}

// ExpandMacros fills the mail macros of s from d.
func ExpandMacros(s string, d Document, c MacroValues) string {
	due := ""
	if d.DueDate != nil {
		due = d.DueDate.Format("2006-01-02")
	}
	r := strings.NewReplacer(
		"{%contact.first_name%}", c.FirstName,
		"{%contact.last_name%}", c.LastName,
		"{%contact.name%}", d.ContactName,
		"{%contact.company%}", c.Company,
		"{%invoice.number%}", d.Number,
		"{%invoice.invoice_date%}", d.InvoiceDate.Format("2006-01-02"),
		"{%invoice.due_date%}", due,
		"{%invoice.public_link%}", d.PublicLink,
	)
	return r.Replace(s)
}
