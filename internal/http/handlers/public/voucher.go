package public

import (
	"errors"

	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// VoucherCheckRequest 优惠券预检请求
type VoucherCheckRequest struct {
	Code      string `json:"code" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
}

// CheckVoucher 预检优惠券对指定拍品是否可用，不写入使用记录
func (h *Handler) CheckVoucher(c *gin.Context) {
	var req VoucherCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.VoucherRedemptionService.Check(req.Code, req.ProductID)
	if err != nil {
		respondVoucherCheckError(c, err)
		return
	}
	requestLog(c).Debugw("voucher_checked", "code", result.Code, "product_id", req.ProductID, "ok", result.OK, "reason", result.Reason)
	response.Success(c, result)
}

func respondVoucherCheckError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.voucher_not_found", nil)
	case errors.Is(err, service.ErrVoucherInvalid):
		respondError(c, response.CodeBadRequest, "error.voucher_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.voucher_fetch_failed", err)
	}
}
