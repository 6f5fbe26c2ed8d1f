package public

import (
	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"
	"github.com/bidmart-admin/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 获取后台登录用的图片验证码
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if handlershared.RespondCaptchaError(c, err, "error.captcha_generate_failed") {
		return
	}
	response.Success(c, challenge)
}
