package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bidmart-admin/internal/clock"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var serviceTestNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// movableClock 可拨动的测试时钟
type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time { return c.now }

func (c *movableClock) Set(t time.Time) { c.now = t }

var _ clock.Clock = (*movableClock)(nil)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
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
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, slug string) *models.Product {
	t.Helper()
	category := models.Category{Slug: "cat-" + slug, Name: "Category " + slug}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID: category.ID,
		Slug:       slug,
		Title:      "Product " + slug,
		BasePrice:  models.NewMoneyFromInt(100),
		IsActive:   true,
	}
	if err := repository.NewProductRepository(db).Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
