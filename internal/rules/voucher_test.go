package rules

import (
	"testing"
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"
)

var voucherNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func usages(n int) []models.VoucherUsage {
	out := make([]models.VoucherUsage, n)
	for i := range out {
		out[i] = models.VoucherUsage{UserID: "u", UsedAt: voucherNow.Add(-time.Hour)}
	}
	return out
}

func TestEvaluateVoucherPriority(t *testing.T) {
	past := voucherNow.Add(-time.Hour)
	future := voucherNow.Add(time.Hour)
	cases := []struct {
		name string
		v    models.Voucher
		want string
	}{
		{"all failing reports inactive", models.Voucher{IsActive: false, ExpiryDate: past, MaxUses: 2, UsedBy: usages(2)}, constants.VoucherStatusInactive},
		{"expired beats maxed", models.Voucher{IsActive: true, ExpiryDate: past, MaxUses: 2, UsedBy: usages(2)}, constants.VoucherStatusExpired},
		{"maxed", models.Voucher{IsActive: true, ExpiryDate: future, MaxUses: 2, UsedBy: usages(2)}, constants.VoucherStatusMaxed},
		{"over capacity still maxed", models.Voucher{IsActive: true, ExpiryDate: future, MaxUses: 1, UsedBy: usages(3)}, constants.VoucherStatusMaxed},
		{"active", models.Voucher{IsActive: true, ExpiryDate: future, MaxUses: 2, UsedBy: usages(1)}, constants.VoucherStatusActive},
		{"expiry instant still active", models.Voucher{IsActive: true, ExpiryDate: voucherNow, MaxUses: 1}, constants.VoucherStatusActive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EvaluateVoucher(&tc.v, voucherNow); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
			if again := EvaluateVoucher(&tc.v, voucherNow); again != tc.want {
				t.Fatalf("second evaluation differs: %s", again)
			}
		})
	}
}

func TestUsagePercentClamped(t *testing.T) {
	cases := []struct {
		maxUses int
		used    int
		want    float64
	}{
		{4, 0, 0},
		{4, 1, 25},
		{4, 4, 100},
		{2, 5, 100},
		{0, 0, 0},
		{0, 1, 100},
	}
	for _, tc := range cases {
		v := &models.Voucher{MaxUses: tc.maxUses, UsedBy: usages(tc.used)}
		if got := UsagePercent(v); got != tc.want {
			t.Fatalf("UsagePercent(max=%d used=%d)=%v want %v", tc.maxUses, tc.used, got, tc.want)
		}
		if UsageCount(v) != tc.used {
			t.Fatalf("UsageCount mismatch")
		}
	}
}

func TestCanRedeemScenario(t *testing.T) {
	v := &models.Voucher{
		IsActive:           true,
		ExpiryDate:         voucherNow.Add(24 * time.Hour),
		MaxUses:            2,
		UsedBy:             usages(1),
		ApplicableProducts: models.UintArray{1},
	}
	if d := CanRedeem(v, RedeemContext{ProductID: 1, Now: voucherNow}); !d.OK {
		t.Fatalf("expected accept, got %+v", d)
	}
	d := CanRedeem(v, RedeemContext{ProductID: 2, Now: voucherNow})
	if d.OK || d.Reason != constants.RedeemReasonNotApplicable {
		t.Fatalf("expected not-applicable rejection, got %+v", d)
	}
	if len(v.UsedBy) != 1 {
		t.Fatalf("guard must not mutate usage records")
	}
}

func TestCanRedeemEmptyScopeAppliesToAll(t *testing.T) {
	v := &models.Voucher{IsActive: true, ExpiryDate: voucherNow.Add(time.Hour), MaxUses: 1}
	for _, productID := range []uint{1, 42, 9999} {
		if d := CanRedeem(v, RedeemContext{ProductID: productID, Now: voucherNow}); !d.OK {
			t.Fatalf("empty scope should accept product %d, got %+v", productID, d)
		}
	}
}

func TestCanRedeemReportsEligibilityReason(t *testing.T) {
	v := &models.Voucher{IsActive: true, ExpiryDate: voucherNow.Add(time.Hour), MaxUses: 1, UsedBy: usages(1), ApplicableProducts: models.UintArray{5}}
	d := CanRedeem(v, RedeemContext{ProductID: 6, Now: voucherNow})
	if d.OK || d.Reason != constants.RedeemReasonMaxed {
		t.Fatalf("eligibility should be checked before scope, got %+v", d)
	}
}

func TestProductScope(t *testing.T) {
	if !AllProducts().IsAll() || !AllProducts().Allows(123) {
		t.Fatalf("AllProducts should allow everything")
	}
	restricted := RestrictedTo([]uint{3, 4})
	if restricted.IsAll() || !restricted.Allows(3) || restricted.Allows(5) {
		t.Fatalf("unexpected restricted scope behaviour")
	}
	if RestrictedTo(nil).Allows(1) {
		t.Fatalf("empty restricted scope should allow nothing")
	}
	if !ScopeOf(&models.Voucher{}).IsAll() {
		t.Fatalf("empty storage form should decode to all products")
	}
}

func TestValidateVoucher(t *testing.T) {
	future := voucherNow.Add(48 * time.Hour).Format(time.RFC3339)
	base := VoucherCandidate{Code: "SPRING_25", Type: constants.VoucherTypeJoin, MaxUses: "10", ExpiryDate: future}

	if errs := ValidateVoucher(base, voucherNow); !errs.Empty() {
		t.Fatalf("expected valid voucher, got %v", errs)
	}

	cases := []struct {
		name   string
		mutate func(*VoucherCandidate)
		field  string
		want   bool
	}{
		{"short code", func(c *VoucherCandidate) { c.Code = "ab" }, FieldCode, true},
		{"long code", func(c *VoucherCandidate) { c.Code = "ABCDEFGHIJKLMNOPQRSTU" }, FieldCode, true},
		{"bad char", func(c *VoucherCandidate) { c.Code = "HELLO!" }, FieldCode, true},
		{"discount missing amount", func(c *VoucherCandidate) { c.Type = constants.VoucherTypeDiscount }, FieldDiscountAmount, true},
		{"discount zero", func(c *VoucherCandidate) { c.Type = constants.VoucherTypeDiscount; c.DiscountAmount = "0" }, FieldDiscountAmount, true},
		{"discount ok", func(c *VoucherCandidate) { c.Type = constants.VoucherTypeDiscount; c.DiscountAmount = "5" }, FieldDiscountAmount, false},
		{"join ignores amount", func(c *VoucherCandidate) { c.DiscountAmount = "-1" }, FieldDiscountAmount, false},
		{"unknown type", func(c *VoucherCandidate) { c.Type = "bogus" }, FieldType, true},
		{"zero max uses", func(c *VoucherCandidate) { c.MaxUses = "0" }, FieldMaxUses, true},
		{"fractional max uses", func(c *VoucherCandidate) { c.MaxUses = "1.5" }, FieldMaxUses, true},
		{"max uses beyond int32", func(c *VoucherCandidate) { c.MaxUses = "2147483648" }, FieldMaxUses, true},
		{"max uses wrapping uint64", func(c *VoucherCandidate) { c.MaxUses = "18446744073709551617" }, FieldMaxUses, true},
		{"max uses at int32 max", func(c *VoucherCandidate) { c.MaxUses = "2147483647" }, FieldMaxUses, false},
		{"expiry now", func(c *VoucherCandidate) { c.ExpiryDate = voucherNow.Format(time.RFC3339) }, FieldExpiryDate, true},
		{"zero product id", func(c *VoucherCandidate) { c.ApplicableProducts = []uint{0} }, FieldApplicableProducts, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			errs := ValidateVoucher(c, voucherNow)
			if errs.Has(tc.field) != tc.want {
				t.Fatalf("field %s error=%v want %v (%v)", tc.field, errs.Has(tc.field), tc.want, errs)
			}
		})
	}
}

func TestVoucherCandidateValues(t *testing.T) {
	c := VoucherCandidate{
		Code:               " WELCOME ",
		Type:               "JOIN",
		DiscountAmount:     "9",
		MaxUses:            "3",
		ExpiryDate:         "2025-04-01T00:00:00Z",
		ApplicableProducts: []uint{5, 2, 5},
	}
	v := c.Values()
	if v.Code != "WELCOME" || v.Type != constants.VoucherTypeJoin || v.MaxUses != 3 {
		t.Fatalf("unexpected values: %+v", v)
	}
	if !v.DiscountAmount.IsZero() {
		t.Fatalf("join voucher should not carry a discount")
	}
	if len(v.ApplicableProducts) != 2 || v.ApplicableProducts[0] != 2 {
		t.Fatalf("applicable products not normalized: %v", v.ApplicableProducts)
	}
}
