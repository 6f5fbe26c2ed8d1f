package service

import (
	"errors"
	"strings"

	"github.com/bidmart-admin/internal/clock"
	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/repository"
	"github.com/bidmart-admin/internal/rules"

	"gorm.io/gorm"
)

// VoucherRedemptionService 优惠码核销服务
type VoucherRedemptionService struct {
	repo  repository.VoucherRepository
	clock clock.Clock
}

// NewVoucherRedemptionService 创建核销服务
func NewVoucherRedemptionService(repo repository.VoucherRepository, clk clock.Clock) *VoucherRedemptionService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &VoucherRedemptionService{repo: repo, clock: clk}
}

// RedeemInput 核销输入
type RedeemInput struct {
	Code      string
	VoucherID uint
	ProductID uint
	UserID    string
	UserName  string
}

// RedeemCheckResult 核销预检结果
type RedeemCheckResult struct {
	rules.RedeemDecision
	Code           string       `json:"code"`
	Type           string       `json:"type"`
	DiscountAmount models.Money `json:"discount_amount"`
}

// Check 只读预检，不写入使用记录
func (s *VoucherRedemptionService) Check(code string, productID uint) (*RedeemCheckResult, error) {
	code = strings.TrimSpace(code)
	if code == "" || productID == 0 {
		return nil, ErrVoucherInvalid
	}
	voucher, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, ErrNotFound
	}
	decision := rules.CanRedeem(voucher, rules.RedeemContext{ProductID: productID, Now: s.clock.Now()})
	result := &RedeemCheckResult{
		RedeemDecision: decision,
		Code:           voucher.Code,
		Type:           voucher.Type,
	}
	if voucher.Type == constants.VoucherTypeDiscount {
		result.DiscountAmount = voucher.DiscountAmount
	}
	return result, nil
}

// Redeem 在事务内复核并条件追加使用记录；并发抢占最后一次时落败方返回 maxed
func (s *VoucherRedemptionService) Redeem(input RedeemInput) (*models.VoucherUsage, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" || input.ProductID == 0 || (input.VoucherID == 0 && strings.TrimSpace(input.Code) == "") {
		return nil, ErrVoucherInvalid
	}

	var usage *models.VoucherUsage
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var (
			voucher *models.Voucher
			err     error
		)
		if input.VoucherID > 0 {
			voucher, err = repo.GetByID(input.VoucherID)
		} else {
			voucher, err = repo.GetByCode(input.Code)
		}
		if err != nil {
			return err
		}
		if voucher == nil {
			return ErrNotFound
		}

		now := s.clock.Now()
		decision := rules.CanRedeem(voucher, rules.RedeemContext{ProductID: input.ProductID, Now: now})
		if !decision.OK {
			return &RedeemRejectedError{Reason: decision.Reason}
		}

		candidate := &models.VoucherUsage{
			VoucherID: voucher.ID,
			UserID:    userID,
			UserName:  strings.TrimSpace(input.UserName),
			ProductID: input.ProductID,
			UsedAt:    now.UTC(),
		}
		appended, err := repo.AppendUsage(candidate)
		if err != nil {
			return err
		}
		if !appended {
			return &RedeemRejectedError{Reason: constants.RedeemReasonMaxed}
		}
		usage = candidate
		return nil
	})
	if err != nil {
		var rejected *RedeemRejectedError
		if errors.As(err, &rejected) {
			logger.Warnw("voucher_redeem_rejected",
				"code", input.Code,
				"voucher_id", input.VoucherID,
				"product_id", input.ProductID,
				"user_id", userID,
				"reason", rejected.Reason,
			)
		}
		return nil, err
	}
	logger.Infow("voucher_redeemed",
		"voucher_id", usage.VoucherID,
		"product_id", usage.ProductID,
		"user_id", usage.UserID,
	)
	return usage, nil
}
