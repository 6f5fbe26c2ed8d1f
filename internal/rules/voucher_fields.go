package rules

import (
	"regexp"
	"strings"
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"
)

// 优惠码表单字段名
const (
	FieldCode               = "code"
	FieldType               = "type"
	FieldDiscountAmount     = "discount_amount"
	FieldMaxUses            = "max_uses"
	FieldExpiryDate         = "expiry_date"
	FieldApplicableProducts = "applicable_products"
)

var voucherCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)

// VoucherCandidate 待校验的优惠码表单
type VoucherCandidate struct {
	Code               string
	Type               string
	DiscountAmount     string
	MaxUses            string
	ExpiryDate         string
	ApplicableProducts []uint
}

// VoucherValues 校验通过后的优惠码字段
type VoucherValues struct {
	Code               string
	Type               string
	DiscountAmount     models.Money
	MaxUses            int
	ExpiryDate         time.Time
	ApplicableProducts models.UintArray
}

// ValidateVoucher 校验优惠码表单，过期时间必须晚于 now
func ValidateVoucher(candidate VoucherCandidate, now time.Time) FieldErrors {
	errs := FieldErrors{}

	code := strings.TrimSpace(candidate.Code)
	switch {
	case code == "":
		errs.Add(FieldCode, "code is required")
	case !voucherCodePattern.MatchString(code):
		errs.Add(FieldCode, "code must be 3-20 letters, digits, '-' or '_'")
	}

	switch strings.ToLower(strings.TrimSpace(candidate.Type)) {
	case constants.VoucherTypeDiscount:
		checkPositive(errs, FieldDiscountAmount, "discount amount", candidate.DiscountAmount)
	case constants.VoucherTypeJoin:
	case "":
		errs.Add(FieldType, "type is required")
	default:
		errs.Add(FieldType, "type must be join or discount")
	}

	maxUses, present, ok := parseWholeNumber(candidate.MaxUses)
	switch {
	case !present:
		errs.Add(FieldMaxUses, "max uses is required")
	case !ok || maxUses < 1:
		errs.Add(FieldMaxUses, "max uses must be an integer of at least 1")
	}

	expiry, ok := ParseInstant(candidate.ExpiryDate)
	switch {
	case strings.TrimSpace(candidate.ExpiryDate) == "":
		errs.Add(FieldExpiryDate, "expiry date is required")
	case !ok:
		errs.Add(FieldExpiryDate, "expiry date is invalid")
	case !expiry.After(now):
		errs.Add(FieldExpiryDate, "expiry date must be in the future")
	}

	for _, id := range candidate.ApplicableProducts {
		if id == 0 {
			errs.Add(FieldApplicableProducts, "applicable products contain an invalid id")
			break
		}
	}

	return errs
}

// Values 转换表单字段；仅应在 ValidateVoucher 通过后调用
func (c VoucherCandidate) Values() VoucherValues {
	maxUses, _, _ := parseWholeNumber(c.MaxUses)
	expiry, _ := ParseInstant(c.ExpiryDate)
	values := VoucherValues{
		Code:               strings.TrimSpace(c.Code),
		Type:               strings.ToLower(strings.TrimSpace(c.Type)),
		MaxUses:            int(maxUses),
		ExpiryDate:         expiry,
		ApplicableProducts: models.UintArray(c.ApplicableProducts).Normalize(),
	}
	if values.Type == constants.VoucherTypeDiscount {
		values.DiscountAmount = moneyOf(c.DiscountAmount)
	}
	return values
}
