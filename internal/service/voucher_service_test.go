package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/repository"
	"github.com/bidmart-admin/internal/rules"
)

type voucherFixture struct {
	admin     *VoucherAdminService
	redeem    *VoucherRedemptionService
	clock     *movableClock
	productID uint
	otherID   uint
}

func newVoucherFixture(t *testing.T) voucherFixture {
	t.Helper()
	db := setupServiceTestDB(t)
	product := seedProduct(t, db, "ring")
	other := seedProduct(t, db, "vase")
	clk := &movableClock{now: serviceTestNow}
	repo := repository.NewVoucherRepository(db)
	return voucherFixture{
		admin:     NewVoucherAdminService(repo, repository.NewVoucherUsageRepository(db), repository.NewProductRepository(db), clk),
		redeem:    NewVoucherRedemptionService(repo, clk),
		clock:     clk,
		productID: product.ID,
		otherID:   other.ID,
	}
}

func voucherInput(code, maxUses string, products ...uint) VoucherInput {
	return VoucherInput{Candidate: rules.VoucherCandidate{
		Code:               code,
		Type:               constants.VoucherTypeDiscount,
		DiscountAmount:     "15",
		MaxUses:            maxUses,
		ExpiryDate:         serviceTestNow.Add(48 * time.Hour).Format(time.RFC3339),
		ApplicableProducts: products,
	}}
}

func TestVoucherAdminCreateRejectsDuplicateCodeIgnoringCase(t *testing.T) {
	f := newVoucherFixture(t)
	if _, err := f.admin.Create(voucherInput("SPRING25", "5")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err := f.admin.Create(voucherInput("spring25", "5"))
	if !errors.Is(err, ErrVoucherInvalid) {
		t.Fatalf("expected ErrVoucherInvalid, got %v", err)
	}
	if !fieldErrorsOf(t, err).Has(rules.FieldCode) {
		t.Fatalf("expected code field error")
	}
}

func TestVoucherAdminCreateRejectsUnknownProduct(t *testing.T) {
	f := newVoucherFixture(t)
	_, err := f.admin.Create(voucherInput("SCOPED", "5", f.productID, 9999))
	if !fieldErrorsOf(t, err).Has(rules.FieldApplicableProducts) {
		t.Fatalf("expected applicable_products error, got %v", err)
	}
}

func TestVoucherRedeemLifecycle(t *testing.T) {
	f := newVoucherFixture(t)
	view, err := f.admin.Create(voucherInput("VIP", "2", f.productID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if view.Status != constants.VoucherStatusActive || view.UsageCount != 0 {
		t.Fatalf("unexpected fresh view: %+v", view)
	}

	check, err := f.redeem.Check("vip", f.otherID)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if check.OK || check.Reason != constants.RedeemReasonNotApplicable {
		t.Fatalf("expected not applicable, got %+v", check.RedeemDecision)
	}

	for i, user := range []string{"u1", "u2"} {
		if _, err := f.redeem.Redeem(RedeemInput{Code: "VIP", ProductID: f.productID, UserID: user}); err != nil {
			t.Fatalf("redeem %d failed: %v", i, err)
		}
	}

	_, err = f.redeem.Redeem(RedeemInput{Code: "VIP", ProductID: f.productID, UserID: "u3"})
	var rejected *RedeemRejectedError
	if !errors.As(err, &rejected) || rejected.Reason != constants.RedeemReasonMaxed {
		t.Fatalf("expected maxed rejection, got %v", err)
	}
	if !errors.Is(err, ErrVoucherNotRedeemable) {
		t.Fatalf("rejection should unwrap to ErrVoucherNotRedeemable")
	}

	got, err := f.admin.Get(view.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != constants.VoucherStatusMaxed || got.UsagePercent != 100 {
		t.Fatalf("expected maxed at 100%%, got %s %.1f", got.Status, got.UsagePercent)
	}
	if got.UsedBy[0].UserID != "u1" || got.UsedBy[1].UserID != "u2" {
		t.Fatalf("usages should keep insertion order: %+v", got.UsedBy)
	}

	f.clock.Set(serviceTestNow.Add(72 * time.Hour))
	got, _ = f.admin.Get(view.ID)
	if got.Status != constants.VoucherStatusExpired {
		t.Fatalf("expired should outrank maxed, got %s", got.Status)
	}
}

func TestVoucherRedeemConcurrentLastUse(t *testing.T) {
	f := newVoucherFixture(t)
	view, err := f.admin.Create(voucherInput("LAST1", "1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		maxed     int
	)
	for _, user := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			_, err := f.redeem.Redeem(RedeemInput{VoucherID: view.ID, ProductID: f.productID, UserID: user})
			mu.Lock()
			defer mu.Unlock()
			var rejected *RedeemRejectedError
			switch {
			case err == nil:
				successes++
			case errors.As(err, &rejected) && rejected.Reason == constants.RedeemReasonMaxed:
				maxed++
			default:
				t.Errorf("unexpected redeem error: %v", err)
			}
		}(user)
	}
	wg.Wait()

	if successes != 1 || maxed != 1 {
		t.Fatalf("expected exactly one success and one maxed, got %d/%d", successes, maxed)
	}
	got, err := f.admin.Get(view.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.UsageCount != 1 {
		t.Fatalf("expected one usage, got %d", got.UsageCount)
	}
}

func TestVoucherAdminUpdateGuardsUsage(t *testing.T) {
	f := newVoucherFixture(t)
	view, err := f.admin.Create(voucherInput("KEEP", "3"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for _, user := range []string{"a", "b"} {
		if _, err := f.redeem.Redeem(RedeemInput{Code: "KEEP", ProductID: f.productID, UserID: user}); err != nil {
			t.Fatalf("redeem failed: %v", err)
		}
	}

	_, err = f.admin.Update(view.ID, voucherInput("KEEP", "1"))
	if !fieldErrorsOf(t, err).Has(rules.FieldMaxUses) {
		t.Fatalf("expected max_uses error, got %v", err)
	}

	updated, err := f.admin.Update(view.ID, voucherInput("KEEP", "10"))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.UsageCount != 2 || updated.UsagePercent != 20 {
		t.Fatalf("update must not touch usages, got count=%d percent=%.1f", updated.UsageCount, updated.UsagePercent)
	}
}

func TestVoucherRedeemInactive(t *testing.T) {
	f := newVoucherFixture(t)
	view, err := f.admin.Create(voucherInput("OFF", "3"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := f.admin.SetActive(view.ID, false); err != nil {
		t.Fatalf("set active failed: %v", err)
	}
	_, err = f.redeem.Redeem(RedeemInput{Code: "OFF", ProductID: f.productID, UserID: "u"})
	var rejected *RedeemRejectedError
	if !errors.As(err, &rejected) || rejected.Reason != constants.RedeemReasonInactive {
		t.Fatalf("expected inactive rejection, got %v", err)
	}

	rows, total, err := f.admin.List(VoucherListQuery{Status: constants.VoucherStatusInactive})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || rows[0].Status != constants.VoucherStatusInactive {
		t.Fatalf("expected one inactive voucher, got %d", total)
	}
}

// redeemAfterRead 在首次读取优惠码后插入一次核销，模拟编辑与核销交错
type redeemAfterRead struct {
	repository.VoucherRepository
	once   sync.Once
	redeem func()
}

func (r *redeemAfterRead) GetByID(id uint) (*models.Voucher, error) {
	v, err := r.VoucherRepository.GetByID(id)
	r.once.Do(r.redeem)
	return v, err
}

func TestVoucherAdminUpdateRechecksUsageAtWrite(t *testing.T) {
	db := setupServiceTestDB(t)
	product := seedProduct(t, db, "clock")
	clk := &movableClock{now: serviceTestNow}
	repo := repository.NewVoucherRepository(db)
	redeem := NewVoucherRedemptionService(repo, clk)
	setup := NewVoucherAdminService(repo, repository.NewVoucherUsageRepository(db), repository.NewProductRepository(db), clk)

	view, err := setup.Create(voucherInput("RACE", "3"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := redeem.Redeem(RedeemInput{VoucherID: view.ID, ProductID: product.ID, UserID: "first"}); err != nil {
		t.Fatalf("redeem failed: %v", err)
	}

	racing := &redeemAfterRead{VoucherRepository: repo, redeem: func() {
		if _, err := redeem.Redeem(RedeemInput{VoucherID: view.ID, ProductID: product.ID, UserID: "second"}); err != nil {
			t.Errorf("interleaved redeem failed: %v", err)
		}
	}}
	admin := NewVoucherAdminService(racing, repository.NewVoucherUsageRepository(db), repository.NewProductRepository(db), clk)

	_, err = admin.Update(view.ID, voucherInput("RACE", "1"))
	if !fieldErrorsOf(t, err).Has(rules.FieldMaxUses) {
		t.Fatalf("expected max_uses error, got %v", err)
	}

	got, err := setup.Get(view.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.UsageCount > got.MaxUses {
		t.Fatalf("usage %d exceeds max uses %d", got.UsageCount, got.MaxUses)
	}
	if got.MaxUses != 3 || got.UsageCount != 2 {
		t.Fatalf("voucher should keep max=3 with 2 usages, got max=%d used=%d", got.MaxUses, got.UsageCount)
	}
}
