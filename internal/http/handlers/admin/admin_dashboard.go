package admin

import (
	"strconv"

	"github.com/bidmart-admin/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 获取后台仪表盘总览，force_refresh=true 时跳过缓存
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	forceRefresh, err := strconv.ParseBool(c.DefaultQuery("force_refresh", "false"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	data, err := h.DashboardService.GetOverview(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, data)
}
