package validation

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Violations maps a field name to a violation code ("required", "out_of_range").
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records code for field unless the field already has a violation.
func (v Violations) Add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required")
	}
}

func Positive(field string, val decimal.Decimal, v Violations) {
	if !val.IsPositive() {
		v.Add(field, "must_be_positive")
	}
}

func NotNegative(field string, val decimal.Decimal, v Violations) {
	if val.IsNegative() {
		v.Add(field, "must_not_be_negative")
	}
}

func Range(field string, val, minVal, maxVal decimal.Decimal, v Violations) {
	if val.LessThan(minVal) || val.GreaterThan(maxVal) {
		v.Add(field, "out_of_range")
	}
}

// Percent checks 0 <= val <= 100.
func Percent(field string, val decimal.Decimal, v Violations) {
	Range(field, val, decimal.Zero, decimal.NewFromInt(100), v)
}

// Error is a field-level validation failure. Causes holds the sentinel
// errors behind the violations so callers can match them with errors.Is.
type Error struct {
	Violations Violations
	Causes     []error
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e.Violations[f]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *Error) Unwrap() []error { return e.Causes }

// Field builds an Error for a single field.
func Field(field, code string, cause error) *Error {
	e := &Error{Violations: Violations{field: code}}
	if cause != nil {
		e.Causes = []error{cause}
	}
	return e
}

// Builder collects violations with their causes.
type Builder struct {
	v      Violations
	causes []error
}

func NewBuilder() *Builder { return &Builder{v: Violations{}} }

func (b *Builder) Violations() Violations { return b.v }

// Fail records a violation and its cause.
func (b *Builder) Fail(field, code string, cause error) {
	b.v.Add(field, code)
	if cause != nil {
		b.causes = append(b.causes, cause)
	}
}

// Err returns nil when nothing failed.
func (b *Builder) Err() error {
	if b.v.Empty() {
		return nil
	}
	return &Error{Violations: b.v, Causes: b.causes}
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
