package models

import "time"

// AuditLog 后台操作审计日志
// 说明：记录权限变更、核销、删除等敏感操作，支持按操作人、动作与资源检索。
type AuditLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	OperatorAdminID  uint      `gorm:"index;not null" json:"operator_admin_id"`
	OperatorUsername string    `gorm:"type:varchar(100);index;not null;default:''" json:"operator_username"`
	Action           string    `gorm:"type:varchar(100);index;not null" json:"action"`
	ResourceType     string    `gorm:"type:varchar(50);index;not null;default:''" json:"resource_type"`
	ResourceID       string    `gorm:"type:varchar(120);index;not null;default:''" json:"resource_id"`
	RequestID        string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	Detail           JSONMap   `gorm:"type:json" json:"detail"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AuditLog) TableName() string {
	return "audit_logs"
}
