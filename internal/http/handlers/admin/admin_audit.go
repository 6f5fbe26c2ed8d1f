package admin

import (
	"time"

	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"
	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/repository"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs 查询后台操作审计日志
func (h *Handler) ListAuditLogs(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	operatorID, ok := handlershared.ParseQueryUint(c, "operator_admin_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	filter := repository.AuditLogListFilter{
		Page:            page,
		PageSize:        pageSize,
		OperatorAdminID: operatorID,
		Action:          c.Query("action"),
		ResourceType:    c.Query("resource_type"),
		ResourceID:      c.Query("resource_id"),
	}
	if from, ok := parseQueryTime(c, "created_from"); !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	} else if from != nil {
		filter.CreatedFrom = from
	}
	if to, ok := parseQueryTime(c, "created_to"); !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	} else if to != nil {
		filter.CreatedTo = to
	}

	logs, total, err := h.AuditService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.audit_fetch_failed", err)
		return
	}
	pageResponse(c, logs, page, pageSize, total)
}

// audit 记录敏感操作：写审计表并输出结构化日志
func (h *Handler) audit(c *gin.Context, action, resourceType, resourceID string, detail models.JSONMap) {
	operatorID, _ := getAdminIDQuiet(c)
	requestID, _ := c.Get("request_id")
	id, _ := requestID.(string)
	requestLog(c).Infow("admin_audit",
		"action", action,
		"resource_type", resourceType,
		"resource_id", resourceID,
		"operator_admin_id", operatorID,
		"operator_username", currentUsername(c),
	)
	if h.AuditService == nil {
		return
	}
	h.AuditService.Record(service.AuditRecordInput{
		OperatorAdminID:  operatorID,
		OperatorUsername: currentUsername(c),
		Action:           action,
		ResourceType:     resourceType,
		ResourceID:       resourceID,
		RequestID:        id,
		Detail:           detail,
	})
}

func parseQueryTime(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}
