package gate_test

import (
	"context"
	"testing"

	"github.com/diewo77/go-invoicing/gate"
)

func TestStaticProfile_HasPermission(t *testing.T) {
	profile := gate.NewStaticProfile(1, "accountant",
		gate.NewPermission("invoice", gate.ActionView),
		gate.NewPermission("payment", gate.ActionUpdate),
	)

	if !profile.HasPermission("payment:update") {
		t.Error("should have payment:update permission")
	}
	if profile.HasPermission("invoice:delete") {
		t.Error("should not have invoice:delete permission")
	}
}

func TestStaticProfile_PermissionsSorted(t *testing.T) {
	profile := gate.NewStaticProfile(1, "p", "payment:update", "invoice:view", "invoice:comment")
	got := profile.Permissions()
	want := []gate.Permission{"invoice:comment", "invoice:view", "payment:update"}
	if len(got) != len(want) {
		t.Fatalf("expected %d permissions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("permission %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMerge(t *testing.T) {
	if gate.Merge() != nil {
		t.Fatal("expected nil for empty merge")
	}
	merged := gate.Merge(
		gate.NewStaticProfile(1, "viewer", "invoice:view"),
		nil,
		gate.NewStaticProfile(2, "payer", "payment:update"),
	)
	if merged.Name() != "viewer+payer" {
		t.Errorf("unexpected name %q", merged.Name())
	}
	if !merged.HasPermission("invoice:view") || !merged.HasPermission("payment:update") {
		t.Error("merged profile should hold both permissions")
	}
}

func TestStaticResolver(t *testing.T) {
	resolver := gate.NewStaticResolver[uint]()
	resolver.Set(1, gate.NewStaticProfile(1, "viewer", "invoice:view"))

	resolved, err := resolver.Resolve(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved == nil || resolved.Name() != "viewer" {
		t.Fatalf("expected viewer profile, got %v", resolved)
	}

	missing, err := resolver.Resolve(context.Background(), 99)
	if err != nil || missing != nil {
		t.Errorf("expected nil profile and nil error, got %v, %v", missing, err)
	}
}
