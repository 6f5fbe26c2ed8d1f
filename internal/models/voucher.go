package models

import (
	"time"

	"gorm.io/gorm"
)

// Voucher 优惠码
// ApplicableProducts 为空表示适用于全部拍品。
type Voucher struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                         // 主键
	Code               string         `gorm:"type:varchar(20);index;not null" json:"code"`                  // 优惠码
	Type               string         `gorm:"type:varchar(20);not null" json:"type"`                        // 类型（join/discount）
	DiscountAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额（仅 discount 有效）
	ApplicableProducts UintArray      `gorm:"type:json" json:"applicable_products"`                         // 适用拍品ID集合
	MaxUses            int            `gorm:"not null;default:1" json:"max_uses"`                           // 总使用上限
	UsedCount          int            `gorm:"not null;default:0" json:"-"`                                  // 已使用次数（与 UsedBy 同事务写入）
	ExpiryDate         time.Time      `gorm:"not null;index" json:"expiry_date"`                            // 过期时间
	IsActive           bool           `gorm:"not null;default:true;index" json:"is_active"`                 // 是否启用
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	UsedBy []VoucherUsage `gorm:"foreignKey:VoucherID" json:"used_by"` // 使用记录（按使用时间升序）
}

// TableName 指定表名
func (Voucher) TableName() string {
	return "vouchers"
}
