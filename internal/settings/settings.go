// Package settings resolves invoice settings, preferring a project override
// over the global configuration.
package settings

import (
	"context"
	"errors"
	"strings"

	"github.com/diewo77/go-invoicing/internal/billing"
	"github.com/diewo77/go-invoicing/internal/config"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/numbering"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Names of the project-overridable settings.
const (
	NumberFormat = "invoices_invoice_number_format"
	DisableTaxes = "invoices_disable_taxes"
	Template     = "invoices_template"
	Units        = "invoices_units"
	Language     = "invoices_language"
	Currency     = "invoices_default_currency"
)

// ErrUnknownSetting is returned by Set for names outside the list above.
var ErrUnknownSetting = errors.New("unknown invoice setting")

var known = map[string]bool{
	NumberFormat: true, DisableTaxes: true, Template: true,
	Units: true, Language: true, Currency: true,
}

// Source looks up project overrides. ok is false when none is stored.
type Source interface {
	Get(ctx context.Context, projectID uint, name string) (value string, ok bool, err error)
}

// Provider answers setting lookups for the invoice service.
type Provider struct {
	global config.InvoicesConfig
	source Source
}

// New returns a provider; source may be nil when overrides are not used.
func New(global config.InvoicesConfig, source Source) *Provider {
	return &Provider{global: global, source: source}
}

func (p *Provider) TaxExclusive() bool      { return p.global.TaxExclusive }
func (p *Provider) DiscountAfterTax() bool  { return p.global.DiscountAfterTax }
func (p *Provider) TotalIncludingTax() bool { return p.global.TotalIncludingTax }
func (p *Provider) PublicLinks() bool       { return p.global.PublicLinks }
func (p *Provider) FinanceEnabled() bool    { return p.global.FinanceEnabled }
func (p *Provider) ProductsEnabled() bool   { return p.global.ProductsEnabled }
func (p *Provider) Secret() string          { return p.global.Secret }
func (p *Provider) CompanyName() string     { return p.global.CompanyName }
func (p *Provider) CompanyInfo() string     { return p.global.CompanyInfo }

// BillingMode is the calculator mode of the process.
func (p *Provider) BillingMode() billing.Mode {
	return billing.Mode{TaxExclusive: p.TaxExclusive(), DiscountAfterTax: p.DiscountAfterTax()}
}

func (p *Provider) lookup(ctx context.Context, projectID uint, name, fallback string) (string, error) {
	if p.source == nil || projectID == 0 {
		return fallback, nil
	}
	v, ok, err := p.source.Get(ctx, projectID, name)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	return v, nil
}

// NumberFormat is the invoice number template of the project.
func (p *Provider) NumberFormat(ctx context.Context, projectID uint) (string, error) {
	def := p.global.NumberFormat
	if def == "" {
		def = numbering.DefaultFormat
	}
	return p.lookup(ctx, projectID, NumberFormat, def)
}

// DisableTaxes reports whether taxes are hidden for the project.
func (p *Provider) DisableTaxes(ctx context.Context, projectID uint) (bool, error) {
	v, err := p.lookup(ctx, projectID, DisableTaxes, formatBool(p.global.DisableTaxes))
	if err != nil {
		return false, err
	}
	return parseBool(v), nil
}

// TotalWithTax reports whether documents print the taxed total.
func (p *Provider) TotalWithTax(ctx context.Context, projectID uint) (bool, error) {
	disabled, err := p.DisableTaxes(ctx, projectID)
	if err != nil {
		return false, err
	}
	return !disabled && p.TotalIncludingTax(), nil
}

// Template is the default document template name of the project.
func (p *Provider) Template(ctx context.Context, projectID uint) (string, error) {
	return p.lookup(ctx, projectID, Template, p.global.Template)
}

// Units lists the unit labels offered for lines.
func (p *Provider) Units(ctx context.Context, projectID uint) ([]string, error) {
	v, err := p.lookup(ctx, projectID, Units, strings.Join(p.global.Units, "\n"))
	if err != nil {
		return nil, err
	}
	return config.SplitList(v), nil
}

// Language of generated numbers and documents.
func (p *Provider) Language(ctx context.Context, projectID uint) (string, error) {
	return p.lookup(ctx, projectID, Language, p.global.Language)
}

// Currency assigned to new invoices without one.
func (p *Provider) Currency(ctx context.Context, projectID uint) (string, error) {
	return p.lookup(ctx, projectID, Currency, p.global.Currency)
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// DBSource stores overrides in the project_settings table.
type DBSource struct {
	db *gorm.DB
}

func NewDBSource(db *gorm.DB) *DBSource { return &DBSource{db: db} }

func (s *DBSource) Get(ctx context.Context, projectID uint, name string) (string, bool, error) {
	var rows []models.ProjectSetting
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND name = ?", projectID, name).
		Limit(1).Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return "", false, err
	}
	return rows[0].Value, true, nil
}

// Set stores or replaces an override.
func (s *DBSource) Set(ctx context.Context, projectID uint, name, value string) error {
	if !known[name] {
		return ErrUnknownSetting
	}
	row := models.ProjectSetting{ProjectID: projectID, Name: name, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
