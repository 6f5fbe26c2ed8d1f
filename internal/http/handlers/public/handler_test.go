package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bidmart-admin/internal/clock"
	"github.com/bidmart-admin/internal/config"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var publicTestNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type publicTestResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupPublicHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:public_handler_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	c := provider.Build(&config.Config{}, db, nil, clock.Fixed{T: publicTestNow})
	return New(c), db
}

func serve(t *testing.T, method, route, target string, handler gin.HandlerFunc, body []byte) publicTestResponse {
	t.Helper()
	engine := gin.New()
	engine.Handle(method, route, handler)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected http 200, got %d", w.Code)
	}
	var resp publicTestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func seedPublicAuctions(t *testing.T, db *gorm.DB) {
	t.Helper()
	category := models.Category{Slug: "watches", Name: "Watches"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{CategoryID: category.ID, Slug: "chrono", Title: "Chrono", IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	rows := []models.Auction{
		{ProductID: product.ID, AuctionNumber: 1, StartTime: publicTestNow.Add(-48 * time.Hour), EndTime: publicTestNow.Add(-24 * time.Hour), IsActive: true},
		{ProductID: product.ID, AuctionNumber: 2, StartTime: publicTestNow.Add(-time.Hour), EndTime: publicTestNow.Add(time.Hour), IsActive: true},
		{ProductID: product.ID, AuctionNumber: 3, StartTime: publicTestNow.Add(time.Hour), EndTime: publicTestNow.Add(2 * time.Hour), IsActive: true},
		{ProductID: product.ID, AuctionNumber: 4, StartTime: publicTestNow.Add(-time.Hour), EndTime: publicTestNow.Add(time.Hour), IsActive: false},
	}
	for i := range rows {
		// 故意写入过期的状态缓存，响应必须重新推导
		rows[i].Status = "upcoming"
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("create auction failed: %v", err)
		}
	}
	if err := db.Model(&models.Auction{}).Where("auction_number = ?", 4).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate auction failed: %v", err)
	}
}

func TestGetAuctionsByDerivedStatus(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	seedPublicAuctions(t, db)

	tests := []struct {
		name    string
		query   string
		numbers []int
		status  string
	}{
		{"default live", "", []int{2}, "live"},
		{"ended", "?status=ended", []int{1}, "ended"},
		{"upcoming", "?status=upcoming", []int{3}, "upcoming"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serve(t, http.MethodGet, "/auctions", "/auctions"+tt.query, h.GetAuctions, nil)
			if resp.StatusCode != 0 {
				t.Fatalf("expected success, got %d (%s)", resp.StatusCode, resp.Msg)
			}
			var items []PublicAuctionView
			if err := json.Unmarshal(resp.Data, &items); err != nil {
				t.Fatalf("decode items failed: %v", err)
			}
			if len(items) != len(tt.numbers) {
				t.Fatalf("expected %d auctions, got %d", len(tt.numbers), len(items))
			}
			for i, item := range items {
				if item.AuctionNumber != tt.numbers[i] || item.Status != tt.status {
					t.Fatalf("unexpected auction %+v", item)
				}
			}
		})
	}
}

func TestGetAuctionsRejectsUnknownStatus(t *testing.T) {
	h, _ := setupPublicHandlerTest(t)
	resp := serve(t, http.MethodGet, "/auctions", "/auctions?status=paused", h.GetAuctions, nil)
	if resp.StatusCode != 400 {
		t.Fatalf("expected status_code 400, got %d", resp.StatusCode)
	}
}

func TestSubmitContactFieldErrors(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	body, _ := json.Marshal(map[string]interface{}{
		"kind":    "contact",
		"name":    "",
		"email":   "not-an-email",
		"message": "hello",
	})
	resp := serve(t, http.MethodPost, "/contact", "/contact", h.SubmitContact, body)
	if resp.StatusCode != 400 {
		t.Fatalf("expected status_code 400, got %d", resp.StatusCode)
	}
	var data struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode fields failed: %v", err)
	}
	if data.Fields["name"] == "" || data.Fields["email"] == "" {
		t.Fatalf("expected name and email errors, got %v", data.Fields)
	}
	var count int64
	db.Model(&models.ContactMessage{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid submission must not be stored, got %d rows", count)
	}
}

func TestSubmitContactStoresNewMessage(t *testing.T) {
	h, _ := setupPublicHandlerTest(t)
	body, _ := json.Marshal(map[string]interface{}{
		"kind":    "feedback",
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "Smooth bidding",
		"rating":  5,
	})
	resp := serve(t, http.MethodPost, "/contact", "/contact", h.SubmitContact, body)
	if resp.StatusCode != 0 {
		t.Fatalf("expected success, got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var data struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data failed: %v", err)
	}
	if data.ID == 0 || data.Status != "new" {
		t.Fatalf("unexpected contact result %+v", data)
	}
}
