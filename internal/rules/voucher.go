package rules

import (
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"
)

// EvaluateVoucher 计算优惠码当前状态，按 inactive > expired > maxed > active 的顺序命中即返回
func EvaluateVoucher(v *models.Voucher, now time.Time) string {
	if v == nil || !v.IsActive {
		return constants.VoucherStatusInactive
	}
	if now.After(v.ExpiryDate) {
		return constants.VoucherStatusExpired
	}
	if UsageCount(v) >= v.MaxUses {
		return constants.VoucherStatusMaxed
	}
	return constants.VoucherStatusActive
}

// UsageCount 已使用次数
func UsageCount(v *models.Voucher) int {
	if v == nil {
		return 0
	}
	return len(v.UsedBy)
}

// UsagePercent 使用进度百分比，上限 100
func UsagePercent(v *models.Voucher) float64 {
	if v == nil {
		return 0
	}
	used := UsageCount(v)
	if v.MaxUses <= 0 {
		if used > 0 {
			return 100
		}
		return 0
	}
	pct := float64(used) / float64(v.MaxUses) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// ProductScope 优惠码适用范围：全部拍品，或限定的拍品集合
type ProductScope struct {
	all bool
	ids map[uint]struct{}
}

// AllProducts 适用于全部拍品
func AllProducts() ProductScope {
	return ProductScope{all: true}
}

// RestrictedTo 仅适用于指定拍品；传入空集合表示不适用于任何拍品
func RestrictedTo(ids []uint) ProductScope {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return ProductScope{ids: set}
}

// ScopeOf 解码存储格式：空数组即全部拍品
func ScopeOf(v *models.Voucher) ProductScope {
	if v == nil || len(v.ApplicableProducts) == 0 {
		return AllProducts()
	}
	return RestrictedTo(v.ApplicableProducts)
}

// IsAll 是否适用全部拍品
func (s ProductScope) IsAll() bool {
	return s.all
}

// Allows 指定拍品是否在范围内
func (s ProductScope) Allows(productID uint) bool {
	if s.all {
		return true
	}
	_, ok := s.ids[productID]
	return ok
}

// RedeemContext 核销上下文
type RedeemContext struct {
	ProductID uint
	Now       time.Time
}

// RedeemDecision 核销判定结果，拒绝时 Reason 为单一原因
type RedeemDecision struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// CanRedeem 判定优惠码能否用于指定拍品，只做判定不修改使用记录
func CanRedeem(v *models.Voucher, ctx RedeemContext) RedeemDecision {
	if status := EvaluateVoucher(v, ctx.Now); status != constants.VoucherStatusActive {
		return RedeemDecision{Reason: status}
	}
	if !ScopeOf(v).Allows(ctx.ProductID) {
		return RedeemDecision{Reason: constants.RedeemReasonNotApplicable}
	}
	return RedeemDecision{OK: true}
}
