package shared

import (
	"errors"

	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// RespondCaptchaError 把验证码错误映射为响应，err 为 nil 时返回 false；未知错误使用 fallbackKey
func RespondCaptchaError(c *gin.Context, err error, fallbackKey string) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrCaptchaRequired):
		RespondError(c, response.CodeBadRequest, "error.captcha_required", nil)
	case errors.Is(err, service.ErrCaptchaInvalid):
		RespondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
	case errors.Is(err, service.ErrCaptchaDisabled):
		RespondError(c, response.CodeBadRequest, "error.captcha_unavailable", nil)
	default:
		RespondError(c, response.CodeInternal, fallbackKey, err)
	}
	return true
}
