package models

import (
	"time"
)

// VoucherUsage 优惠码使用记录，只追加不修改
type VoucherUsage struct {
	ID        uint      `gorm:"primarykey" json:"id"`                         // 主键
	VoucherID uint      `gorm:"index;not null" json:"voucher_id"`             // 优惠码ID
	UserID    string    `gorm:"type:varchar(64);index;not null" json:"user_id"` // 用户ID
	UserName  string    `gorm:"type:varchar(120)" json:"user_name"`           // 用户名
	ProductID uint      `gorm:"index;not null;default:0" json:"product_id"`   // 核销时的拍品ID
	UsedAt    time.Time `gorm:"index;not null" json:"used_at"`                // 使用时间
}

// TableName 指定表名
func (VoucherUsage) TableName() string {
	return "voucher_usages"
}
