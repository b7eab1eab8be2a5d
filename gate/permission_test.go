package gate_test

import (
	"testing"

	"github.com/diewo77/go-invoicing/gate"
)

func TestPermission_NewPermission(t *testing.T) {
	perm := gate.NewPermission("invoice", gate.ActionUpdateOwn)
	if perm != "invoice:update_own" {
		t.Errorf("expected 'invoice:update_own', got '%s'", perm)
	}
}

func TestPermission_Parse(t *testing.T) {
	res, act := gate.Permission("payment:update").Parse()
	if res != "payment" || act != gate.ActionUpdate {
		t.Errorf("unexpected parse result '%s' '%s'", res, act)
	}
	res, act = gate.Permission("invalid").Parse()
	if res != "" || act != "" {
		t.Errorf("expected empty strings, got '%s' and '%s'", res, act)
	}
}

func TestParsePermission(t *testing.T) {
	if _, err := gate.ParsePermission(" invoice:view "); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "invoice", ":view", "invoice:"} {
		if _, err := gate.ParsePermission(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestPermission_Matches(t *testing.T) {
	tests := []struct {
		granted   gate.Permission
		requested gate.Permission
		want      bool
	}{
		{"invoice:view", "invoice:view", true},
		{"invoice:view", "invoice:update", false},
		{"invoice:view", "payment:view", false},
		{gate.PermissionSuperAdmin, "operation:delete", true},
		{"invoice:*", "invoice:update_own", true},
		{"invoice:*", "payment:update", false},
		{"broken", "broken", true},
		{"broken", "other", false},
	}
	for _, tt := range tests {
		if got := tt.granted.Matches(tt.requested); got != tt.want {
			t.Errorf("%s.Matches(%s) = %v, want %v", tt.granted, tt.requested, got, tt.want)
		}
	}
}
