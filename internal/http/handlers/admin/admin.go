package admin

import (
	"errors"
	"time"

	"github.com/bidmart-admin/internal/constants"
	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"
	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string                       `json:"username" binding:"required"`
	Password string                       `json:"password" binding:"required"`
	Captcha  service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// AdminSummary 登录后返回的管理员摘要
type AdminSummary struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	IsSuper     bool   `json:"is_super"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string       `json:"token"`
	User      AdminSummary `json:"user"`
	ExpiresAt string       `json:"expires_at"`
}

func summarizeAdmin(admin *models.Admin) AdminSummary {
	return AdminSummary{
		ID:          admin.ID,
		Username:    admin.Username,
		DisplayName: admin.DisplayName,
		IsSuper:     admin.IsSuper,
	}
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	err := h.CaptchaService.Verify(constants.CaptchaSceneAdminLogin, req.Captcha)
	if handlershared.RespondCaptchaError(c, err, "error.captcha_verify_failed") {
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		requestLog(c).Warnw("admin_login_failed", "username", req.Username, "client_ip", c.ClientIP())
		respondError(c, response.CodeUnauthorized, "error.admin_login_invalid", nil)
		return
	case err != nil:
		respondError(c, response.CodeInternal, "error.login_failed", err)
		return
	}

	c.Set("admin_id", admin.ID)
	c.Set("username", admin.Username)
	h.audit(c, "admin_login", "admin", idString(admin.ID), nil)
	response.Success(c, LoginResponse{
		Token:     token,
		User:      summarizeAdmin(admin),
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetAdminProfile 当前登录管理员信息
func (h *Handler) GetAdminProfile(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_fetch_failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return
	}
	response.Success(c, admin)
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改密码，成功后该管理员已签发的 Token 全部失效
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		h.audit(c, "admin_password_change", "admin", idString(id), nil)
		response.Success(c, gin.H{"updated": true})
	case errors.Is(err, service.ErrInvalidPassword):
		respondError(c, response.CodeBadRequest, "error.password_old_invalid", nil)
	case errors.Is(err, service.ErrWeakPassword):
		respondPasswordPolicyError(c, err)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}
