package report

import (
	"errors"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/diewo77/go-invoicing/auth"
)

var (
	// ErrPublicLinksDisabled is returned when tokens are presented while
	// public links are switched off.
	ErrPublicLinksDisabled = errors.New("public links are disabled")
	ErrInvalidToken        = errors.New("invalid public link token")
)

// Links signs and checks public invoice links.
type Links struct {
	signer  *auth.Signer
	enabled bool
}

func NewLinks(secret string, enabled bool) *Links {
	return &Links{signer: auth.NewSigner(secret), enabled: enabled}
}

func (l *Links) Enabled() bool { return l.enabled }

func parts(invoiceID uint, publicKey string, templateIDs []uint) []string {
	ids := slices.Clone(templateIDs)
	slices.Sort(ids)
	return []string{strconv.FormatUint(uint64(invoiceID), 10), publicKey, strings.Join(auth.IDs(ids...), ",")}
}

// Token binds an invoice and a template selection. The order of templateIDs
// does not matter.
func (l *Links) Token(invoiceID uint, publicKey string, templateIDs []uint) string {
	return l.signer.Sign(parts(invoiceID, publicKey, templateIDs)...)
}

// Verify checks a presented token.
func (l *Links) Verify(token string, invoiceID uint, publicKey string, templateIDs []uint) error {
	if !l.enabled {
		return ErrPublicLinksDisabled
	}
	if !l.signer.Verify(token, parts(invoiceID, publicKey, templateIDs)...) {
		return ErrInvalidToken
	}
	return nil
}

// Params are the query parameters of a public link.
func (l *Links) Params(invoiceID uint, publicKey string, templateIDs []uint) url.Values {
	v := url.Values{}
	v.Set("invoice_id", strconv.FormatUint(uint64(invoiceID), 10))
	for _, id := range templateIDs {
		v.Add("invoice_template[ids][]", strconv.FormatUint(uint64(id), 10))
	}
	v.Set("token", l.Token(invoiceID, publicKey, templateIDs))
	return v
}

// URL appends the link parameters to base. Returns "" when links are
// disabled.
func (l *Links) URL(base string, invoiceID uint, publicKey string, templateIDs []uint) string {
	if !l.enabled {
		return ""
	}
	return base + "?" + l.Params(invoiceID, publicKey, templateIDs).Encode()
}
