package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, size int
		total      int64
		want       int64
	}{
		{1, 20, 0, 0},
		{1, 20, 20, 1},
		{2, 20, 21, 2},
		{1, 0, 5, 0},
	}
	for _, tt := range tests {
		if got := NewPagination(tt.page, tt.size, tt.total).TotalPage; got != tt.want {
			t.Errorf("NewPagination(%d,%d,%d).TotalPage = %d, want %d", tt.page, tt.size, tt.total, got, tt.want)
		}
	}
}

func TestErrorCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Set("request_id", "req-9")
		ErrorWithData(c, CodeConflict, "voucher not redeemable", gin.H{"reason": "maxed"})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int               `json:"status_code"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.StatusCode != CodeConflict || resp.Data["reason"] != "maxed" || resp.Data["request_id"] != "req-9" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSuccessWithPageShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		SuccessWithPage(c, []int{1, 2}, NewPagination(1, 2, 3))
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	for _, key := range []string{"status_code", "msg", "data", "pagination"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing top-level key %s in %s", key, w.Body.String())
		}
	}
}
