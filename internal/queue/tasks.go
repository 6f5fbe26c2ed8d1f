package queue

import (
	"encoding/json"
	"fmt"

	"github.com/bidmart-admin/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskAuctionStatusRefresh 拍卖状态缓存刷新任务
	TaskAuctionStatusRefresh = constants.TaskAuctionStatusRefresh
)

// AuctionStatusRefreshPayload 状态刷新任务载荷
type AuctionStatusRefreshPayload struct {
	AuctionID uint  `json:"auction_id"`
	DueAt     int64 `json:"due_at"` // 计划执行时间（Unix 秒）
}

// NewAuctionStatusRefreshTask 创建状态刷新任务
func NewAuctionStatusRefreshTask(payload AuctionStatusRefreshPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuctionStatusRefresh, body), nil
}

// ParseAuctionStatusRefreshPayload 解析任务载荷
func ParseAuctionStatusRefreshPayload(body []byte) (AuctionStatusRefreshPayload, error) {
	var payload AuctionStatusRefreshPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, err
	}
	if payload.AuctionID == 0 {
		return payload, fmt.Errorf("invalid auction id in payload")
	}
	return payload, nil
}

func auctionStatusTaskID(payload AuctionStatusRefreshPayload) string {
	return fmt.Sprintf("auction-status:%d:%d", payload.AuctionID, payload.DueAt)
}
