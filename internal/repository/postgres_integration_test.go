//go:build integration
// +build integration

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupPostgresIntegrationDB 启动 PostgreSQL 容器并完成迁移
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skip postgres integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("bidmart_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start postgres container failed: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string failed: %v", err)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresConcurrentLastUseRedemption(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewVoucherRepository(db)
	now := time.Now().UTC()

	voucher := &models.Voucher{
		Code:       "PGLAST",
		Type:       constants.VoucherTypeJoin,
		MaxUses:    3,
		ExpiryDate: now.Add(time.Hour),
		IsActive:   true,
	}
	if err := repo.Create(voucher); err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var ok bool
			err := repo.Transaction(func(tx *gorm.DB) error {
				var err error
				ok, err = repo.WithTx(tx).AppendUsage(&models.VoucherUsage{VoucherID: voucher.ID, UserID: "pg", UsedAt: time.Now().UTC()})
				return err
			})
			if err != nil {
				t.Errorf("append usage failed: %v", err)
				return
			}
			if ok {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if accepted != voucher.MaxUses {
		t.Fatalf("accepted want %d got %d", voucher.MaxUses, accepted)
	}
	got, err := repo.GetByID(voucher.ID)
	if err != nil || got == nil {
		t.Fatalf("reload voucher failed: %v", err)
	}
	if len(got.UsedBy) != voucher.MaxUses || got.UsedCount != voucher.MaxUses {
		t.Fatalf("usage state mismatch: len=%d count=%d", len(got.UsedBy), got.UsedCount)
	}
}

func TestPostgresAuctionStatusFilter(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	products := NewProductRepository(db)
	auctions := NewAuctionRepository(db)
	now := time.Date(2025, 1, 10, 11, 0, 0, 0, time.UTC)

	product := &models.Product{CategoryID: 1, Slug: "pg-vase", Title: "Vase", IsActive: true}
	if err := products.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	for i, window := range [][2]time.Time{
		{now.Add(-2 * time.Hour), now.Add(-time.Hour)},
		{now.Add(-time.Hour), now},
		{now.Add(time.Hour), now.Add(2 * time.Hour)},
	} {
		auction := &models.Auction{ProductID: product.ID, AuctionNumber: i + 1, StartTime: window[0], EndTime: window[1], IsActive: true}
		if err := auctions.Create(auction); err != nil {
			t.Fatalf("create auction failed: %v", err)
		}
	}

	for status, want := range map[string]int64{
		constants.AuctionStatusEnded:    1,
		constants.AuctionStatusLive:     1,
		constants.AuctionStatusUpcoming: 1,
	} {
		_, total, err := auctions.List(AuctionListFilter{Status: status, Now: now})
		if err != nil {
			t.Fatalf("list %s failed: %v", status, err)
		}
		if total != want {
			t.Fatalf("status %s want %d got %d", status, want, total)
		}
	}
}
