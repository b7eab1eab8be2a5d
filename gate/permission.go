package gate

import (
	"fmt"
	"strings"
)

// Permission is an allowed action on a resource type, written
// "resource:action" (e.g. "invoice:view", "payment:update").
type Permission string

// Wildcards
const (
	WildcardAll                     = "*"
	PermissionSuperAdmin Permission = "*:*"
)

// NewPermission creates a permission from resource type and action.
func NewPermission(resourceType string, action Action) Permission {
	return Permission(resourceType + ":" + string(action))
}

// ParsePermission validates the "resource:action" form.
func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.TrimSpace(s))
	res, act := p.Parse()
	if res == "" || act == "" {
		return "", fmt.Errorf("invalid permission %q", s)
	}
	return p, nil
}

// Parse splits a permission into resource type and action. Malformed
// permissions give two empty strings.
func (p Permission) Parse() (resourceType string, action Action) {
	res, act, ok := strings.Cut(string(p), ":")
	if !ok {
		return "", ""
	}
	return res, Action(act)
}

// Matches reports whether p grants requested. "*:*" grants everything and
// "invoice:*" grants every invoice action.
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionSuperAdmin || p == requested {
		return true
	}
	res, act := p.Parse()
	reqRes, _ := requested.Parse()
	return res != "" && res == reqRes && string(act) == WildcardAll
}
