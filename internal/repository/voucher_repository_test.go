package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"

	"gorm.io/gorm"
)

func createVoucher(t *testing.T, repo *GormVoucherRepository, code string, maxUses int, expiry time.Time, active bool) *models.Voucher {
	t.Helper()
	voucher := &models.Voucher{
		Code:       code,
		Type:       constants.VoucherTypeJoin,
		MaxUses:    maxUses,
		ExpiryDate: expiry,
		IsActive:   true,
	}
	if err := repo.Create(voucher); err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}
	if !active {
		if err := repo.SetActive(voucher.ID, false); err != nil {
			t.Fatalf("deactivate voucher failed: %v", err)
		}
	}
	return voucher
}

func appendUsage(t *testing.T, repo *GormVoucherRepository, voucherID uint, userID string, at time.Time) bool {
	t.Helper()
	var ok bool
	err := repo.Transaction(func(tx *gorm.DB) error {
		var err error
		ok, err = repo.WithTx(tx).AppendUsage(&models.VoucherUsage{VoucherID: voucherID, UserID: userID, UsedAt: at})
		return err
	})
	if err != nil {
		t.Fatalf("append usage failed: %v", err)
	}
	return ok
}

func TestVoucherAppendUsageRespectsCapacity(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewVoucherRepository(db)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	voucher := createVoucher(t, repo, "TWICE", 2, now.Add(24*time.Hour), true)

	if !appendUsage(t, repo, voucher.ID, "u1", now) || !appendUsage(t, repo, voucher.ID, "u2", now.Add(time.Minute)) {
		t.Fatalf("first two usages should be accepted")
	}
	if appendUsage(t, repo, voucher.ID, "u3", now.Add(2*time.Minute)) {
		t.Fatalf("third usage should be refused")
	}

	got, err := repo.GetByID(voucher.ID)
	if err != nil || got == nil {
		t.Fatalf("reload voucher failed: %v", err)
	}
	if len(got.UsedBy) != 2 || got.UsedCount != 2 {
		t.Fatalf("unexpected usage state: len=%d count=%d", len(got.UsedBy), got.UsedCount)
	}
	if got.UsedBy[0].UserID != "u1" || got.UsedBy[1].UserID != "u2" {
		t.Fatalf("usages should be ordered by used_at: %+v", got.UsedBy)
	}
}

func TestVoucherAppendUsageConcurrentLastUse(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewVoucherRepository(db)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	voucher := createVoucher(t, repo, "LASTONE", 1, now.Add(time.Hour), true)

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Transaction(func(tx *gorm.DB) error {
				ok, err := repo.WithTx(tx).AppendUsage(&models.VoucherUsage{VoucherID: voucher.ID, UserID: "racer", UsedAt: now})
				results[i] = ok
				return err
			})
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, ok := range results {
		if ok {
			accepted++
		}
	}
	if accepted != 1 {
		t.Fatalf("exactly one concurrent redemption should win, got %d", accepted)
	}
}

func TestVoucherUpdateDoesNotTouchUsages(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewVoucherRepository(db)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	voucher := createVoucher(t, repo, "EDITME", 3, now.Add(time.Hour), true)
	appendUsage(t, repo, voucher.ID, "u1", now)

	stale, _ := repo.GetByID(voucher.ID)
	stale.UsedCount = 0
	stale.UsedBy = nil
	stale.MaxUses = 5
	stale.Code = "EDITED"
	if ok, err := repo.Update(stale); err != nil || !ok {
		t.Fatalf("update failed: ok=%v err=%v", ok, err)
	}

	got, _ := repo.GetByID(voucher.ID)
	if got.Code != "EDITED" || got.MaxUses != 5 {
		t.Fatalf("editable fields not saved: %+v", got)
	}
	if got.UsedCount != 1 || len(got.UsedBy) != 1 {
		t.Fatalf("usage state must survive edits: count=%d len=%d", got.UsedCount, len(got.UsedBy))
	}
}

func TestVoucherUpdateRejectsMaxUsesBelowStoredUsage(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewVoucherRepository(db)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	voucher := createVoucher(t, repo, "SHRINK", 3, now.Add(time.Hour), true)

	// 读取快照后又发生了一次核销
	snapshot, _ := repo.GetByID(voucher.ID)
	appendUsage(t, repo, voucher.ID, "u1", now)
	appendUsage(t, repo, voucher.ID, "u2", now)

	snapshot.MaxUses = 1
	ok, err := repo.Update(snapshot)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if ok {
		t.Fatalf("max_uses below stored usage must not be written")
	}
	got, _ := repo.GetByID(voucher.ID)
	if got.MaxUses != 3 || got.UsedCount != 2 {
		t.Fatalf("voucher should be unchanged, got max=%d used=%d", got.MaxUses, got.UsedCount)
	}

	snapshot.MaxUses = 2
	if ok, err := repo.Update(snapshot); err != nil || !ok {
		t.Fatalf("max_uses equal to usage should be accepted: ok=%v err=%v", ok, err)
	}
}

func TestVoucherCodeLookupIsCaseInsensitive(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewVoucherRepository(db)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	voucher := createVoucher(t, repo, "Spring-25", 1, now.Add(time.Hour), true)

	got, err := repo.GetByCode("spring-25")
	if err != nil || got == nil || got.ID != voucher.ID {
		t.Fatalf("lookup by lower-case code failed: %+v %v", got, err)
	}
	count, err := repo.CountByCode("SPRING-25", 0)
	if err != nil || count != 1 {
		t.Fatalf("count by code want 1 got %d err=%v", count, err)
	}
	count, _ = repo.CountByCode("SPRING-25", voucher.ID)
	if count != 0 {
		t.Fatalf("excluded id should not be counted")
	}
}

func TestVoucherListFiltersByDerivedStatus(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewVoucherRepository(db)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	createVoucher(t, repo, "OFF", 1, now.Add(-time.Hour), false)
	createVoucher(t, repo, "OLD", 1, now.Add(-time.Hour), true)
	full := createVoucher(t, repo, "FULL", 1, now.Add(time.Hour), true)
	appendUsage(t, repo, full.ID, "u1", now.Add(-time.Minute))
	createVoucher(t, repo, "OPEN", 1, now.Add(time.Hour), true)

	for status, code := range map[string]string{
		constants.VoucherStatusInactive: "OFF",
		constants.VoucherStatusExpired:  "OLD",
		constants.VoucherStatusMaxed:    "FULL",
		constants.VoucherStatusActive:   "OPEN",
	} {
		rows, total, err := repo.List(VoucherListFilter{Status: status, Now: now})
		if err != nil {
			t.Fatalf("list %s failed: %v", status, err)
		}
		if total != 1 || rows[0].Code != code {
			t.Fatalf("status %s want %s got total=%d rows=%+v", status, code, total, rows)
		}
	}
}
