package models

import (
	"time"
)

// Auction 拍卖场次
// Status 只是查询用的缓存列，展示与业务判断一律按开始/结束时间重新推导。
type Auction struct {
	ID                uint      `gorm:"primarykey" json:"id"`                                                     // 主键
	ProductID         uint      `gorm:"not null;uniqueIndex:idx_auction_product_number,priority:1" json:"product_id"` // 拍品ID
	AuctionNumber     int       `gorm:"not null;uniqueIndex:idx_auction_product_number,priority:2" json:"auction_number"` // 场次编号（同一拍品内唯一）
	StartTime         time.Time `gorm:"not null;index" json:"start_time"`                                         // 开始时间
	EndTime           time.Time `gorm:"not null;index" json:"end_time"`                                           // 结束时间
	StartingPrice     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"starting_price"`              // 起拍价
	MinimumIncrement  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"minimum_increment"`           // 最小加价幅度
	BidType           string    `gorm:"type:varchar(20);not null;default:'free'" json:"bid_type"`                 // 出价方式（fixed/free）
	FixedBidValue     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"fixed_bid_value"`             // 固定出价额（仅 fixed 有效）
	EntryType         string    `gorm:"type:varchar(20);not null;default:'free'" json:"entry_type"`               // 入场方式（free/paid）
	EntryFee          Money     `gorm:"type:decimal(20,2);not null;default:0" json:"entry_fee"`                   // 入场费（仅 paid 有效）
	Status            string    `gorm:"type:varchar(20);not null;default:'upcoming';index" json:"status"`         // 状态缓存（upcoming/live/ended）
	IsActive          bool      `gorm:"not null;default:true;index" json:"is_active"`                             // 是否启用
	LastOfferEnabled  bool      `gorm:"not null;default:false" json:"last_offer_enabled"`                         // 是否开启最后报价
	WinnerID          *string   `gorm:"type:varchar(64)" json:"winner_id"`                                        // 中标用户
	WinningBid        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"winning_bid"`                 // 成交价
	TotalBids         int       `gorm:"not null;default:0" json:"total_bids"`                                     // 出价次数
	TotalParticipants int       `gorm:"not null;default:0" json:"total_participants"`                             // 参与人数
	CurrentBid        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"current_bid"`                 // 当前价
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                                                  // 创建时间
	UpdatedAt         time.Time `gorm:"index" json:"updated_at"`                                                  // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 拍品信息
}

// TableName 指定表名
func (Auction) TableName() string {
	return "auctions"
}
