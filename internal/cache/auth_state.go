package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/bidmart-admin/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// AdminAuthState 管理员鉴权快照；JWT 校验优先读取该快照，避免每次请求回源数据库
type AdminAuthState struct {
	AdminID            uint   `json:"admin_id"`
	Username           string `json:"username"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"` // Unix 秒，0 表示未设置
	IsSuper            bool   `json:"is_super"`
}

// BuildAdminAuthState 从管理员记录构建快照
func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	state := &AdminAuthState{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		IsSuper:      admin.IsSuper,
	}
	if admin.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = admin.TokenInvalidBefore.Unix()
	}
	return state
}

// Accepts 判断某个 Token 是否仍然有效：版本一致且签发时间不早于失效线
func (s *AdminAuthState) Accepts(tokenVersion uint64, issuedAt time.Time) bool {
	if s == nil || s.TokenVersion != tokenVersion {
		return false
	}
	if s.TokenInvalidBefore <= 0 {
		return true
	}
	if issuedAt.IsZero() {
		return false
	}
	return issuedAt.Unix() >= s.TokenInvalidBefore
}

func adminAuthStateKey(adminID uint) string {
	return "auth:admin:" + strconv.FormatUint(uint64(adminID), 10)
}

// GetAdminAuthState 读取快照，缓存未启用或未命中时 hit 为 false
func GetAdminAuthState(ctx context.Context, adminID uint) (state *AdminAuthState, hit bool, err error) {
	if adminID == 0 {
		return nil, false, nil
	}
	var cached AdminAuthState
	if hit, err = GetJSON(ctx, adminAuthStateKey(adminID), &cached); err != nil || !hit {
		return nil, false, err
	}
	return &cached, true, nil
}

// SetAdminAuthState 写入快照
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.AdminID == 0 {
		return nil
	}
	return SetJSON(ctx, adminAuthStateKey(state.AdminID), state, authStateCacheTTL)
}
