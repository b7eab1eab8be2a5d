// Package numbering expands invoice number templates such as
// "#INV/%%YEAR%%%%MONTH%%%%DAY%%-%%ID%%".
package numbering

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/diewo77/go-invoicing/i18n"
)

// DefaultFormat is used when no number format is configured.
const DefaultFormat = "#INV/%%YEAR%%%%MONTH%%%%DAY%%-%%ID%%"

// CountQuery selects invoices dated in [From, To), optionally within one
// project (ProjectID 0 means any project).
type CountQuery struct {
	From      time.Time
	To        time.Time
	ProjectID uint
}

// Counter answers the running-counter questions of the template tokens.
type Counter interface {
	LastInvoiceID(ctx context.Context) (uint, error)
	CountInvoices(ctx context.Context, q CountQuery) (int64, error)
}

// Generator substitutes tokens using a Counter and a clock.
type Generator struct {
	counter Counter
	now     func() time.Time
	lang    string
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLanguage sets the language of month names.
func WithLanguage(lang string) Option {
	return func(g *Generator) { g.lang = lang }
}

func NewGenerator(counter Counter, opts ...Option) *Generator {
	g := &Generator{counter: counter, now: time.Now, lang: i18n.Default}
	for _, o := range opts {
		o(g)
	}
	return g
}

type env struct {
	ctx       context.Context
	g         *Generator
	today     time.Time
	projectID uint
}

type token struct {
	re    *regexp.Regexp
	value func(e *env) (string, error)
}

// tokens are applied in this order; every occurrence of a token gets the
// same value.
var tokens = []token{
	{regexp.MustCompile(`%%ID%%|\{\{id\}\}`), func(e *env) (string, error) {
		last, err := e.g.counter.LastInvoiceID(e.ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%02d", last+1), nil
	}},
	{regexp.MustCompile(`%%YEAR%%|\{\{year\}\}`), func(e *env) (string, error) {
		return fmt.Sprintf("%04d", e.today.Year()), nil
	}},
	{regexp.MustCompile(`%%MONTH%%|\{\{month\}\}`), func(e *env) (string, error) {
		return fmt.Sprintf("%02d", int(e.today.Month())), nil
	}},
	{regexp.MustCompile(`\{\{month_name\}\}`), func(e *env) (string, error) {
		return i18n.MonthName(e.g.lang, e.today.Month()), nil
	}},
	{regexp.MustCompile(`\{\{month_short_name\}\}`), func(e *env) (string, error) {
		return i18n.MonthShortName(e.g.lang, e.today.Month()), nil
	}},
	{regexp.MustCompile(`%%DAY%%|\{\{day\}\}`), func(e *env) (string, error) {
		return fmt.Sprintf("%02d", e.today.Day()), nil
	}},
	{regexp.MustCompile(`%%DAILY_ID%%|\{\{daily_id\}\}`), func(e *env) (string, error) {
		return e.count("%02d", Day(e.today), 0)
	}},
	{regexp.MustCompile(`%%MONTHLY_ID%%|\{\{monthly_id\}\}`), func(e *env) (string, error) {
		return e.count("%03d", Month(e.today), 0)
	}},
	{regexp.MustCompile(`%%YEARLY_ID%%|\{\{yearly_id\}\}`), func(e *env) (string, error) {
		return e.count("%04d", Year(e.today), 0)
	}},
	{regexp.MustCompile(`%%MONTHLY_PROJECT_ID%%|\{\{monthly_project_id\}\}`), func(e *env) (string, error) {
		return e.count("%03d", Month(e.today), e.projectID)
	}},
	{regexp.MustCompile(`%%YEARLY_PROJECT_ID%%|\{\{yearly_project_id\}\}`), func(e *env) (string, error) {
		return e.count("%04d", Year(e.today), e.projectID)
	}},
}

func (e *env) count(layout string, r Range, projectID uint) (string, error) {
	n, err := e.g.counter.CountInvoices(e.ctx, CountQuery{From: r.From, To: r.To, ProjectID: projectID})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(layout, n+1), nil
}

// Apply expands every token of format. The counter is only queried for
// tokens that occur in format.
func (g *Generator) Apply(ctx context.Context, format string, projectID uint) (string, error) {
	e := &env{ctx: ctx, g: g, today: g.now(), projectID: projectID}
	out := format
	for _, t := range tokens {
		if !t.re.MatchString(out) {
			continue
		}
		v, err := t.value(e)
		if err != nil {
			return "", fmt.Errorf("invoice number: %w", err)
		}
		out = t.re.ReplaceAllLiteralString(out, v)
	}
	return out, nil
}
