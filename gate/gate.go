// Package gate is a small permission checkpoint. Subjects are resolved to a
// Profile holding "resource:action" permissions, and the Gate answers
// whether a subject holds a given permission.
//
// The subject type is generic so the same machinery works for plain user
// IDs or for composite keys such as a (user, project) membership:
//   - Gate[uint] when permissions are global
//   - Gate[Member] when permissions depend on the project
package gate

import (
	"context"
	"errors"
)

// Sentinel errors returned by Gate.Authorize.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoProfile    = errors.New("no profile for subject")
)

// Action describes the kind of operation a subject wants to perform.
type Action string

const (
	ActionView      Action = "view"
	ActionList      Action = "list"
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionUpdateOwn Action = "update_own"
	ActionDelete    Action = "delete"
	ActionComment   Action = "comment"
)

// Gate checks permissions for subjects of type U.
type Gate[U comparable] struct {
	resolver ProfileResolver[U]
}

// New creates a gate backed by resolver.
func New[U comparable](resolver ProfileResolver[U]) *Gate[U] {
	return &Gate[U]{resolver: resolver}
}

// Authorize returns nil when subject holds perm. The zero subject is
// always rejected.
func (g *Gate[U]) Authorize(ctx context.Context, subject U, perm Permission) error {
	var zero U
	if subject == zero {
		return ErrUnauthorized
	}
	profile, err := g.resolver.Resolve(ctx, subject)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNoProfile
	}
	if !profile.HasPermission(perm) {
		return ErrUnauthorized
	}
	return nil
}

// Allows is Authorize as a bool.
func (g *Gate[U]) Allows(ctx context.Context, subject U, perm Permission) bool {
	return g.Authorize(ctx, subject, perm) == nil
}

// AllowsAny reports whether subject holds at least one of perms.
func (g *Gate[U]) AllowsAny(ctx context.Context, subject U, perms ...Permission) bool {
	for _, p := range perms {
		if g.Allows(ctx, subject, p) {
			return true
		}
	}
	return false
}
