package rules

import (
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"
)

// ResolveStatus 由时间窗口推导拍卖状态，开始与结束时刻均视为进行中。
// end 早于 start 时 live 不可达，但结果仍然确定。
func ResolveStatus(now, start, end time.Time) string {
	if now.Before(start) {
		return constants.AuctionStatusUpcoming
	}
	if now.After(end) {
		return constants.AuctionStatusEnded
	}
	return constants.AuctionStatusLive
}

// AuctionStatus 计算拍卖当前状态，忽略存储的 Status 缓存
func AuctionStatus(now time.Time, auction *models.Auction) string {
	if auction == nil {
		return ""
	}
	return ResolveStatus(now, auction.StartTime, auction.EndTime)
}
