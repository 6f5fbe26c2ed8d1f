package router

import (
	"sort"
	"strings"

	"github.com/bidmart-admin/internal/authz"
	"github.com/bidmart-admin/internal/http/response"

	"github.com/gin-gonic/gin"
)

const adminRoutePrefix = "/api/v1/admin/"

// PermissionCatalogItem 可授权的后台接口
type PermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// permissionCatalog 从已注册路由生成权限目录，登录接口与预检方法不参与授权
func permissionCatalog(routes gin.RoutesInfo) []PermissionCatalogItem {
	items := make([]PermissionCatalogItem, 0, len(routes))
	seen := make(map[string]bool, len(routes))
	for _, route := range routes {
		method := strings.ToUpper(route.Method)
		switch {
		case method == "OPTIONS", method == "HEAD":
			continue
		case !strings.HasPrefix(route.Path, adminRoutePrefix), route.Path == adminRoutePrefix+"login":
			continue
		}
		object := authz.NormalizeObject(route.Path)
		permission := method + ":" + object
		if seen[permission] {
			continue
		}
		seen[permission] = true
		items = append(items, PermissionCatalogItem{
			Module:     permissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Method < b.Method
	})
	return items
}

// permissionModule 取 /admin 之后的第一段作为模块名
func permissionModule(object string) string {
	segments := strings.Split(strings.Trim(object, "/ "), "/")
	switch {
	case segments[0] == "":
		return "system"
	case segments[0] == "admin" && len(segments) > 1:
		return segments[1]
	default:
		return segments[0]
	}
}

func permissionCatalogHandler(engine *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, permissionCatalog(engine.Routes()))
	}
}
