package models

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage 联系/反馈留言
type ContactMessage struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                    // 主键
	Kind      string         `gorm:"type:varchar(20);not null;index" json:"kind"`             // 类型（contact/feedback）
	Name      string         `gorm:"type:varchar(120);not null" json:"name"`                  // 姓名
	Email     string         `gorm:"type:varchar(255);not null;index" json:"email"`           // 邮箱
	Subject   string         `gorm:"type:varchar(255)" json:"subject"`                        // 主题
	Message   string         `gorm:"type:text;not null" json:"message"`                       // 内容
	Rating    int            `gorm:"not null;default:0" json:"rating"`                        // 评分（仅 feedback，1-5）
	Status    string         `gorm:"type:varchar(20);not null;default:'new';index" json:"status"` // 处理状态（new/read/replied/archived）
	AdminNote string         `gorm:"type:text" json:"admin_note"`                             // 管理员备注
	HandledAt *time.Time     `json:"handled_at"`                                              // 最近处理时间
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}
