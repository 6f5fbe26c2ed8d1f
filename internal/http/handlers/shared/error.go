package shared

import (
	"errors"

	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/i18n"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	if err != nil {
		RequestLog(c).Errorw("handler_error", "code", code, "message_key", key, "error", err)
	}
	response.Error(c, code, msg)
}

// RespondValidation 字段校验失败时返回 fields 映射；非校验错误返回 false。
func RespondValidation(c *gin.Context, key string, err error) bool {
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	msg := i18n.T(i18n.ResolveLocale(c), key)
	response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{"fields": verr.Fields})
	return true
}

// RespondRedeemRejected 核销被拒绝时返回拒绝原因；非拒绝错误返回 false。
func RespondRedeemRejected(c *gin.Context, err error) bool {
	var rejected *service.RedeemRejectedError
	if !errors.As(err, &rejected) {
		return false
	}
	msg := i18n.T(i18n.ResolveLocale(c), "error.voucher_not_redeemable")
	response.ErrorWithData(c, response.CodeConflict, msg, gin.H{"ok": false, "reason": rejected.Reason})
	return true
}
