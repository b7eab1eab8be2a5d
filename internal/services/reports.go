package services

import (
	"context"

	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/report"
)

// document builds the render model of inv for the selected templates.
func (s *InvoiceService) document(ctx context.Context, inv *models.Invoice, templateIDs []uint) (report.Document, error) {
	snap, err := s.snapshot(ctx, inv)
	if err != nil {
		return report.Document{}, err
	}
	lang, err := s.settings.Language(ctx, inv.ProjectID)
	if err != nil {
		return report.Document{}, err
	}
	return report.NewDocument(inv, snap, report.Options{
		Language:    lang,
		CompanyName: s.settings.CompanyName(),
		CompanyInfo: s.settings.CompanyInfo(),
		PublicLink:  s.links.URL(s.baseURL, inv.ID, inv.PublicKey, templateIDs),
	}), nil
}

func (s *InvoiceService) build(ctx context.Context, inv *models.Invoice, templateIDs []uint) (report.Report, error) {
	if len(templateIDs) == 0 && inv.TemplateID != nil {
		templateIDs = []uint{*inv.TemplateID}
	}
	if len(templateIDs) == 0 {
		return report.Report{}, report.ErrNoTemplates
	}
	templates, err := s.store.FindTemplates(ctx, templateIDs)
	if err != nil {
		return report.Report{}, err
	}
	doc, err := s.document(ctx, inv, templateIDs)
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(ctx, s.renderer, doc, templates)
}

// Report renders a visible invoice with the selected templates, falling
// back to the invoice's own template.
func (s *InvoiceService) Report(ctx context.Context, id uint, templateIDs []uint) (report.Report, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return report.Report{}, err
	}
	return s.build(ctx, inv, templateIDs)
}

// PublicReport renders an invoice for a public link holder. No user is
// needed; the token must match the invoice and the template selection.
func (s *InvoiceService) PublicReport(ctx context.Context, id uint, templateIDs []uint, token string) (report.Report, error) {
	inv, err := s.store.FindInvoice(ctx, id)
	if err != nil {
		return report.Report{}, err
	}
	if err := s.links.Verify(token, inv.ID, inv.PublicKey, templateIDs); err != nil {
		return report.Report{}, err
	}
	return s.build(ctx, inv, templateIDs)
}

// PublicLink returns the public address of a visible invoice.
func (s *InvoiceService) PublicLink(ctx context.Context, id uint, templateIDs []uint) (string, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !s.links.Enabled() {
		return "", report.ErrPublicLinksDisabled
	}
	return s.links.URL(s.baseURL, inv.ID, inv.PublicKey, templateIDs), nil
}

// Text is the plain text rendition of a visible invoice.
func (s *InvoiceService) Text(ctx context.Context, id uint) (string, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	doc, err := s.document(ctx, inv, nil)
	if err != nil {
		return "", err
	}
	return report.Text(doc)
}

// ExpandMacros fills the mail macros of tmpl for a visible invoice.
func (s *InvoiceService) ExpandMacros(ctx context.Context, id uint, tmpl string) (string, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	doc, err := s.document(ctx, inv, nil)
	if err != nil {
		return "", err
	}
	var c report.MacroValues
	if inv.Contact != nil {
		c = report.MacroValues{FirstName: inv.Contact.FirstName, LastName: inv.Contact.LastName, Company: inv.Contact.Company}
	}
	return report.ExpandMacros(tmpl, doc, c), nil
}
