package admin

import (
	"errors"
	"net/url"
	"strings"

	"github.com/bidmart-admin/internal/authz"
	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"
	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/i18n"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

type authzCreateAdminPayload struct {
	Username    string   `json:"username" binding:"required"`
	Password    string   `json:"password" binding:"required"`
	DisplayName string   `json:"display_name"`
	IsSuper     bool     `json:"is_super"`
	Roles       []string `json:"roles"`
}

// GetAuthzMe 获取当前管理员权限快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	isSuper, _ := c.Get("admin_is_super")
	response.Success(c, gin.H{
		"admin_id": adminID,
		"is_super": isSuper == true,
		"roles":    roles,
		"policies": policies,
	})
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	h.audit(c, "authz_role_create", "role", role, nil)
	response.Success(c, gin.H{"role": role})
}

// DeleteAuthzRole 删除角色，预置角色不可删除
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondAuthzError(c, err)
		return
	}
	h.audit(c, "authz_role_delete", "role", role, nil)
	response.Success(c, gin.H{"deleted": true})
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondAuthzError(c, err)
		return
	}
	h.audit(c, "authz_policy_grant", "role", req.Role, models.JSONMap{"object": req.Object, "method": req.Action})
	response.Success(c, gin.H{"granted": true})
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondAuthzError(c, err)
		return
	}
	h.audit(c, "authz_policy_revoke", "role", req.Role, models.JSONMap{"object": req.Object, "method": req.Action})
	response.Success(c, gin.H{"revoked": true})
}

// ListAuthzAdmins 获取管理员列表及其角色
func (h *Handler) ListAuthzAdmins(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	items := make([]gin.H, 0, len(admins))
	for _, admin := range admins {
		roles, roleErr := h.AuthzService.GetAdminRoles(admin.ID)
		if roleErr != nil {
			respondError(c, response.CodeInternal, "error.authz_fetch_failed", roleErr)
			return
		}
		items = append(items, gin.H{
			"id":            admin.ID,
			"username":      admin.Username,
			"display_name":  admin.DisplayName,
			"is_super":      admin.IsSuper,
			"last_login_at": admin.LastLoginAt,
			"created_at":    admin.CreatedAt,
			"roles":         roles,
		})
	}
	response.Success(c, items)
}

// CreateAuthzAdmin 创建管理员并分配角色
func (h *Handler) CreateAuthzAdmin(c *gin.Context) {
	var req authzCreateAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	admin, err := h.AuthService.CreateAdmin(req.Username, req.Password, req.DisplayName, req.IsSuper)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminUsername):
			respondError(c, response.CodeBadRequest, "error.admin_username_invalid", nil)
		case errors.Is(err, service.ErrAdminExists):
			respondError(c, response.CodeConflict, "error.admin_username_exists", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondPasswordPolicyError(c, err)
		default:
			respondError(c, response.CodeInternal, "error.admin_create_failed", err)
		}
		return
	}
	if len(req.Roles) > 0 {
		if err := h.AuthzService.SetAdminRoles(admin.ID, req.Roles); err != nil {
			respondAuthzError(c, err)
			return
		}
	}
	h.audit(c, "authz_admin_create", "admin", idString(admin.ID), models.JSONMap{"username": admin.Username, "is_super": admin.IsSuper, "roles": req.Roles})
	response.Success(c, admin)
}

// GetAuthzAdminRoles 获取管理员角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzAdminRoles 覆盖设置管理员角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeBadRequest, "error.admin_id_invalid", nil)
		return
	}
	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondAuthzError(c, err)
		return
	}
	h.audit(c, "authz_admin_roles_update", "admin", idString(adminID), models.JSONMap{"username": admin.Username, "roles": req.Roles})
	response.Success(c, gin.H{"updated": true})
}

func respondAuthzError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authz.ErrRoleImmutable):
		respondError(c, response.CodeBadRequest, "error.role_immutable", nil)
	case errors.Is(err, authz.ErrRoleRequired), errors.Is(err, authz.ErrRoleReserved), errors.Is(err, authz.ErrActionRequired):
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
	default:
		respondError(c, response.CodeInternal, "error.authz_update_failed", err)
	}
}

func respondPasswordPolicyError(c *gin.Context, err error) {
	var perr *service.PasswordPolicyError
	if !errors.As(err, &perr) {
		respondError(c, response.CodeBadRequest, "error.password_weak", nil)
		return
	}
	msg := i18n.Sprintf(i18n.ResolveLocale(c), perr.MessageKey(), perr.MessageArgs()...)
	response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{"violations": perr.Violations})
}

func parseAdminIDParam(c *gin.Context) (uint, bool) {
	id, ok := handlershared.ParsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.admin_id_invalid", nil)
		return 0, false
	}
	return id, true
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
