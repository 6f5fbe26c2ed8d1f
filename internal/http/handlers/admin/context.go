package admin

import (
	"strconv"

	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"
	"github.com/bidmart-admin/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "admin_id", "error.admin_id_invalid", "error.admin_id_type_invalid")
}

func currentUsername(c *gin.Context) string {
	if value, ok := c.Get("username"); ok {
		if name, ok := value.(string); ok {
			return name
		}
	}
	return ""
}

// pathID 读取路径 id，非法时直接写入 400 响应
func pathID(c *gin.Context) (uint, bool) {
	id, ok := handlershared.ParsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return id, true
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func pageResponse(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	response.SuccessWithPage(c, data, handlershared.BuildPagination(page, pageSize, total))
}

// getAdminIDQuiet 读取当前管理员 ID，不写响应
func getAdminIDQuiet(c *gin.Context) (uint, bool) {
	value, ok := c.Get("admin_id")
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok && id > 0
}
