package admin

import (
	"errors"
	"strings"

	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"
	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/rules"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// VoucherRequest 创建/更新优惠码请求；applicable_products 为空表示全部拍品
type VoucherRequest struct {
	Code               string    `json:"code"`
	Type               string    `json:"type"`
	DiscountAmount     formValue `json:"discount_amount"`
	MaxUses            formValue `json:"max_uses"`
	ExpiryDate         formValue `json:"expiry_date"`
	ApplicableProducts []uint    `json:"applicable_products"`
	IsActive           *bool     `json:"is_active"`
}

func (r VoucherRequest) toInput() service.VoucherInput {
	return service.VoucherInput{
		Candidate: rules.VoucherCandidate{
			Code:               r.Code,
			Type:               r.Type,
			DiscountAmount:     r.DiscountAmount.String(),
			MaxUses:            r.MaxUses.String(),
			ExpiryDate:         r.ExpiryDate.String(),
			ApplicableProducts: r.ApplicableProducts,
		},
		IsActive: r.IsActive,
	}
}

// RedeemRequest 核销请求
type RedeemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
	UserName  string `json:"user_name"`
}

// GetAdminVouchers 优惠码列表
func (h *Handler) GetAdminVouchers(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	vouchers, total, err := h.VoucherAdminService.List(service.VoucherListQuery{
		Page:     page,
		PageSize: pageSize,
		Code:     strings.TrimSpace(c.Query("code")),
		Type:     c.Query("type"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.voucher_fetch_failed", err)
		return
	}
	pageResponse(c, vouchers, page, pageSize, total)
}

// GetAdminVoucher 优惠码详情
func (h *Handler) GetAdminVoucher(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	voucher, err := h.VoucherAdminService.Get(id)
	if err != nil {
		respondVoucherError(c, err, "error.voucher_fetch_failed")
		return
	}
	response.Success(c, voucher)
}

// CreateVoucher 创建优惠码
func (h *Handler) CreateVoucher(c *gin.Context) {
	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	voucher, err := h.VoucherAdminService.Create(req.toInput())
	if err != nil {
		respondVoucherError(c, err, "error.voucher_create_failed")
		return
	}
	response.Success(c, voucher)
}

// UpdateVoucher 更新优惠码
func (h *Handler) UpdateVoucher(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	voucher, err := h.VoucherAdminService.Update(id, req.toInput())
	if err != nil {
		respondVoucherError(c, err, "error.voucher_update_failed")
		return
	}
	response.Success(c, voucher)
}

// DeleteVoucher 删除优惠码
func (h *Handler) DeleteVoucher(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.VoucherAdminService.Delete(id); err != nil {
		respondVoucherError(c, err, "error.voucher_delete_failed")
		return
	}
	h.audit(c, "voucher_delete", "voucher", idString(id), nil)
	response.Success(c, gin.H{"deleted": true})
}

// SetVoucherActive 启用/停用优惠码
func (h *Handler) SetVoucherActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	voucher, err := h.VoucherAdminService.SetActive(id, *req.IsActive)
	if err != nil {
		respondVoucherError(c, err, "error.voucher_update_failed")
		return
	}
	response.Success(c, voucher)
}

// GetVoucherUsages 使用记录
func (h *Handler) GetVoucherUsages(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ReadPagination(c)
	usages, total, err := h.VoucherAdminService.ListUsages(id, page, pageSize)
	if err != nil {
		respondVoucherError(c, err, "error.voucher_fetch_failed")
		return
	}
	pageResponse(c, usages, page, pageSize, total)
}

// RedeemVoucher 后台代用户核销
func (h *Handler) RedeemVoucher(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	usage, err := h.VoucherRedemptionService.Redeem(service.RedeemInput{
		VoucherID: id,
		ProductID: req.ProductID,
		UserID:    req.UserID,
		UserName:  req.UserName,
	})
	if err != nil {
		if handlershared.RespondRedeemRejected(c, err) {
			return
		}
		respondVoucherError(c, err, "error.voucher_redeem_failed")
		return
	}
	h.audit(c, "voucher_redeem", "voucher", idString(id), models.JSONMap{
		"product_id": req.ProductID,
		"user_id":    req.UserID,
		"usage_id":   usage.ID,
	})
	response.Success(c, usage)
}

func respondVoucherError(c *gin.Context, err error, fallbackKey string) {
	if respondValidation(c, "error.voucher_invalid", err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.voucher_not_found", nil)
	case errors.Is(err, service.ErrVoucherCodeExists):
		respondError(c, response.CodeConflict, "error.voucher_code_exists", nil)
	case errors.Is(err, service.ErrVoucherInvalid):
		respondError(c, response.CodeBadRequest, "error.voucher_invalid", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}
