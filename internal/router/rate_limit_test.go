package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"username":" Ops.Lead "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("username")(c)
	if key != "ops.lead|1.2.3.4" {
		t.Fatalf("key want ops.lead|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Ops.Lead") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	tests := []struct {
		name    string
		limiter *RateLimiter
	}{
		{"nil limiter", nil},
		{"no client", NewRateLimiter(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1})},
	}
	for _, tt := range tests {
		allowed, wait, err := tt.limiter.Allow(context.Background(), "1.2.3.4")
		if err != nil || !allowed || wait != 0 {
			t.Fatalf("%s: expected pass-through, got allowed=%v wait=%v err=%v", tt.name, allowed, wait, err)
		}
	}
}

func TestRateLimitRuleKey(t *testing.T) {
	rule := RateLimitRule{Prefix: "bm:rate:admin_login"}
	if got := rule.key("ops|1.2.3.4"); got != "bm:rate:admin_login:ops|1.2.3.4" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := (RateLimitRule{}).key("1.2.3.4"); got != "1.2.3.4" {
		t.Fatalf("unexpected key without prefix %s", got)
	}
	if (RateLimitRule{WindowSeconds: 60}).enabled() {
		t.Fatalf("rule without max requests must be disabled")
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, body := range []string{``, `not json`, `{"username": 42}`, `{"other":"x"}`} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
		c.Request.RemoteAddr = "5.6.7.8:1234"
		if key := KeyByIPAndJSONField("username")(c); key != "5.6.7.8" {
			t.Fatalf("body %q: expected ip fallback, got %s", body, key)
		}
	}
}
