package usecase

import (
	"context"
	"testing"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
)

func TestPermissionService_HasPermission(t *testing.T) {
	roles := newTestRoleRepo()
	roles.byUser[1] = domain.RoleWithMenus{
		Role: domain.Role{ID: 2, Name: "Editor", CanView: true, CanUpdate: true},
		Menus: []domain.Menu{
			{ID: 1, Name: "Users", URL: "api/user"},
			{ID: 2, Name: "Products", URL: "API/Product"},
		},
	}

	svc := NewPermissionService(roles)

	cases := []struct {
		name     string
		action   domain.Action
		resource string
		want     bool
	}{
		{name: "allowed action and menu", action: domain.ActionView, resource: "api/user", want: true},
		{name: "menu match is case-insensitive", action: domain.ActionUpdate, resource: "api/product", want: true},
		{name: "missing action flag", action: domain.ActionDelete, resource: "api/user", want: false},
		{name: "no menu for resource", action: domain.ActionView, resource: "api/role", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.HasPermission(context.Background(), 1, tc.action, tc.resource)
			if err != nil {
				t.Fatalf("HasPermission returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPermissionService_NoRoleDenies(t *testing.T) {
	svc := NewPermissionService(newTestRoleRepo())

	got, err := svc.HasPermission(context.Background(), 42, domain.ActionView, "api/user")
	if err != nil {
		t.Fatalf("HasPermission returned error: %v", err)
	}
	if got {
		t.Fatal("expected denial for user without a role")
	}
}

func TestPermissionService_FreshReadPerCall(t *testing.T) {
	roles := newTestRoleRepo()
	roles.byUser[1] = domain.RoleWithMenus{
		Role:  domain.Role{ID: 2, CanView: true},
		Menus: []domain.Menu{{ID: 1, URL: "api/user"}},
	}

	svc := NewPermissionService(roles)

	got, err := svc.HasPermission(context.Background(), 1, domain.ActionView, "api/user")
	if err != nil || !got {
		t.Fatalf("expected initial grant, got %v, %v", got, err)
	}

	// Revoking the flag must take effect on the very next check.
	updated := roles.byUser[1]
	updated.CanView = false
	roles.byUser[1] = updated

	got, err = svc.HasPermission(context.Background(), 1, domain.ActionView, "api/user")
	if err != nil {
		t.Fatalf("HasPermission returned error: %v", err)
	}
	if got {
		t.Fatal("expected revocation to apply immediately")
	}
}
