package service

import (
	"strings"

	"github.com/bidmart-admin/internal/clock"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/repository"
)

// AuditRecordInput 审计记录输入
type AuditRecordInput struct {
	OperatorAdminID  uint
	OperatorUsername string
	Action           string
	ResourceType     string
	ResourceID       string
	RequestID        string
	Detail           models.JSONMap
}

// AuditService 后台操作审计服务
type AuditService struct {
	repo  repository.AuditLogRepository
	clock clock.Clock
}

// NewAuditService 创建审计服务
func NewAuditService(repo repository.AuditLogRepository, clk clock.Clock) *AuditService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &AuditService{repo: repo, clock: clk}
}

// Record 写入审计日志；写入失败只记录告警，不影响业务结果
func (s *AuditService) Record(input AuditRecordInput) {
	if s == nil || s.repo == nil {
		return
	}
	action := strings.TrimSpace(input.Action)
	if input.OperatorAdminID == 0 || action == "" {
		return
	}
	item := &models.AuditLog{
		OperatorAdminID:  input.OperatorAdminID,
		OperatorUsername: strings.TrimSpace(input.OperatorUsername),
		Action:           action,
		ResourceType:     strings.TrimSpace(input.ResourceType),
		ResourceID:       strings.TrimSpace(input.ResourceID),
		RequestID:        strings.TrimSpace(input.RequestID),
		Detail:           input.Detail,
		CreatedAt:        s.clock.Now(),
	}
	if err := s.repo.Create(item); err != nil {
		logger.Warnw("audit_log_write_failed", "action", action, "operator_admin_id", input.OperatorAdminID, "error", err)
	}
}

// List 管理端查询审计日志
func (s *AuditService) List(filter repository.AuditLogListFilter) ([]models.AuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AuditLog{}, 0, nil
	}
	return s.repo.List(filter)
}
