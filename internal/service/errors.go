package service

import (
	"errors"

	"github.com/bidmart-admin/internal/rules"
)

// 通用错误
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrJWTSecretMissing   = errors.New("jwt secret missing")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrCaptchaDisabled    = errors.New("captcha disabled")
	ErrSlugExists         = errors.New("slug already exists")
	ErrCategoryInUse      = errors.New("category in use")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryInvalid    = errors.New("category invalid")
	ErrProductInvalid     = errors.New("product invalid")
	ErrProductInUse       = errors.New("product has auctions")
	ErrProductNotFound    = errors.New("product not found")
	ErrAdminUsername      = errors.New("admin username invalid")
	ErrAdminExists        = errors.New("admin username already exists")
)

// 拍卖/优惠码/留言错误
var (
	ErrAuctionInvalid       = errors.New("auction invalid")
	ErrVoucherInvalid       = errors.New("voucher invalid")
	ErrVoucherCodeExists    = errors.New("voucher code already exists")
	ErrVoucherNotRedeemable = errors.New("voucher not redeemable")
	ErrContactInvalid       = errors.New("contact message invalid")
	ErrContactStatusInvalid = errors.New("contact status invalid")
)

// ValidationError 表单校验失败，携带全部字段错误
type ValidationError struct {
	Kind   error
	Fields rules.FieldErrors
}

func (e *ValidationError) Error() string {
	if e.Kind == nil {
		return e.Fields.Error()
	}
	return e.Kind.Error() + ": " + e.Fields.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func newValidationError(kind error, fields rules.FieldErrors) *ValidationError {
	return &ValidationError{Kind: kind, Fields: fields}
}

// RedeemRejectedError 核销被拒绝，Reason 为单一原因
type RedeemRejectedError struct {
	Reason string
}

func (e *RedeemRejectedError) Error() string {
	return "voucher not redeemable: " + e.Reason
}

func (e *RedeemRejectedError) Unwrap() error {
	return ErrVoucherNotRedeemable
}
