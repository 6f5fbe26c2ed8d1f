package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("curator", "/admin/auctions/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetAdminRoles(1, []string{"curator"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/auctions/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/auctions/42", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("curator", "/admin/auctions", "GET"); err != nil {
		t.Fatalf("grant curator policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("desk", "/admin/contacts", "GET"); err != nil {
		t.Fatalf("grant desk policy failed: %v", err)
	}

	if err := svc.SetAdminRoles(2, []string{"curator"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	if err := svc.SetAdminRoles(2, []string{"desk"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:desk" {
		t.Fatalf("roles want [role:desk], got=%v", roles)
	}

	if allow, _ := svc.EnforceAdmin(2, "/admin/auctions", "GET"); allow {
		t.Fatalf("expected old role permission removed")
	}
	if allow, _ := svc.EnforceAdmin(2, "/admin/contacts", "GET"); !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/vouchers/:id", want: "/admin/vouchers/:id"},
		{in: "/admin/vouchers/:id", want: "/admin/vouchers/:id"},
		{in: "admin/vouchers", want: "/admin/vouchers"},
		{in: "/api/v1x/admin", want: "/api/v1x/admin"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		if got := NormalizeObject(item.in); got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap should be idempotent: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	want := map[string]bool{"role:auditor": true, "role:operations": true, "role:support": true}
	for _, role := range roles {
		delete(want, role)
	}
	if len(want) != 0 {
		t.Fatalf("builtin roles missing: %v", want)
	}

	if err := svc.SetAdminRoles(3, []string{"support"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}
	tests := []struct {
		path   string
		method string
		want   bool
	}{
		{"/api/v1/admin/auctions", "GET", true},
		{"/api/v1/admin/auctions", "POST", false},
		{"/api/v1/admin/vouchers/:id/redeem", "POST", true},
		{"/api/v1/admin/contacts/:id/status", "PATCH", true},
		{"/api/v1/admin/vouchers/:id", "DELETE", false},
	}
	for _, tt := range tests {
		allow, err := svc.EnforceAdmin(3, tt.path, tt.method)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tt.method, tt.path, err)
		}
		if allow != tt.want {
			t.Fatalf("%s %s: want %v got %v", tt.method, tt.path, tt.want, allow)
		}
	}

	if err := svc.DeleteRole("operations"); !errors.Is(err, ErrRoleImmutable) {
		t.Fatalf("expected ErrRoleImmutable, got %v", err)
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "curator", want: "role:curator"},
		{in: "role:curator", want: "role:curator"},
		{in: "  floor  desk ", want: "role:floor_desk"},
		{in: "role:", wantErr: ErrRoleRequired},
		{in: "   ", wantErr: ErrRoleRequired},
	}
	for _, item := range cases {
		got, err := NormalizeRole(item.in)
		if !errors.Is(err, item.wantErr) || got != item.want {
			t.Fatalf("normalize role %q: want (%q, %v) got (%q, %v)", item.in, item.want, item.wantErr, got, err)
		}
	}
}
