package model_test

import (
	"testing"

	"github.com/ktmart/marketplace-api/internal/model"
)

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want model.Role
	}{
		{"seller", model.RoleSeller},
		{"  Seller ", model.RoleSeller},
		{"admin", model.RoleAdmin},
		{"ADMIN", model.RoleAdmin},
		{"buyer", model.RoleBuyer},
		{"", model.RoleBuyer},
		{"something-else", model.RoleBuyer},
	}
	for _, tc := range cases {
		if got := model.NormalizeRole(tc.in); got != tc.want {
			t.Fatalf("NormalizeRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoleFlags(t *testing.T) {
	if !(model.User{}).IsBuyer() {
		t.Fatalf("a user without a role must count as a buyer")
	}
	if (model.User{Role: model.RoleSeller}).IsBuyer() {
		t.Fatalf("a seller is not a buyer")
	}
	if !(model.User{Role: model.RoleAdmin}).IsAdmin() {
		t.Fatalf("expected IsAdmin for admin role")
	}
}
