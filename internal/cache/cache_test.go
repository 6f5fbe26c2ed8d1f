package cache

import (
	"context"
	"testing"
	"time"

	"github.com/bidmart-admin/internal/config"
	"github.com/bidmart-admin/internal/models"
)

func TestDisabledCacheDegradesSilently(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	ctx := context.Background()
	if Enabled() {
		t.Fatalf("cache should be disabled")
	}
	if err := SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache should be a no-op: %v", err)
	}
	var out map[string]int
	hit, err := GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("get on disabled cache should miss: hit=%v err=%v", hit, err)
	}
	if err := Del(ctx, "k"); err != nil {
		t.Fatalf("del on disabled cache failed: %v", err)
	}
}

func TestKeyPrefix(t *testing.T) {
	if got := Key(" dashboard:overview "); got != redisPrefix+":dashboard:overview" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := Key(""); got != redisPrefix {
		t.Fatalf("empty key should map to prefix, got %s", got)
	}
}

func TestBuildAdminAuthState(t *testing.T) {
	invalidBefore := time.Unix(1700000000, 0)
	state := BuildAdminAuthState(&models.Admin{ID: 3, Username: "ops", TokenVersion: 2, TokenInvalidBefore: &invalidBefore})
	if state.AdminID != 3 || state.TokenVersion != 2 || state.TokenInvalidBefore != 1700000000 {
		t.Fatalf("unexpected state: %+v", state)
	}
	if BuildAdminAuthState(nil) != nil {
		t.Fatalf("nil admin should produce nil state")
	}
}

func TestAdminAuthStateAccepts(t *testing.T) {
	state := &AdminAuthState{AdminID: 1, TokenVersion: 3, TokenInvalidBefore: 1700000000}
	tests := []struct {
		name     string
		version  uint64
		issuedAt time.Time
		want     bool
	}{
		{"current token", 3, time.Unix(1700000500, 0), true},
		{"issued at cutoff", 3, time.Unix(1700000000, 0), true},
		{"issued before password change", 3, time.Unix(1699999999, 0), false},
		{"stale version", 2, time.Unix(1700000500, 0), false},
		{"missing iat", 3, time.Time{}, false},
	}
	for _, tt := range tests {
		if got := state.Accepts(tt.version, tt.issuedAt); got != tt.want {
			t.Errorf("%s: Accepts = %v, want %v", tt.name, got, tt.want)
		}
	}
	open := &AdminAuthState{AdminID: 1, TokenVersion: 0}
	if !open.Accepts(0, time.Time{}) {
		t.Errorf("state without cutoff should accept matching version")
	}
}
