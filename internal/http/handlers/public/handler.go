package public

import "github.com/bidmart-admin/internal/provider"

// Handler 公开接口处理器入口
// 说明：该处理器仅用于免登录的前台 API。
type Handler struct {
	*provider.Container
}

// New 创建公开接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
