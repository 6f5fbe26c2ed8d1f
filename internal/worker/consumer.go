package worker

import (
	"context"
	"errors"

	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/provider"
	"github.com/bidmart-admin/internal/queue"
	"github.com/bidmart-admin/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskAuctionStatusRefresh, c.handleAuctionStatusRefresh)
}

func (c *Consumer) handleAuctionStatusRefresh(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_auction_status_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseAuctionStatusRefreshPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_auction_status_payload_invalid", "error", err)
		return errors.Join(err, asynq.SkipRetry)
	}
	if c.AuctionService == nil {
		logger.Warnw("worker_auction_status_skip_service_nil", "auction_id", payload.AuctionID)
		return nil
	}
	status, err := c.AuctionService.RefreshStatus(payload.AuctionID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Debugw("worker_auction_status_skip_not_found", "auction_id", payload.AuctionID)
			return nil
		}
		logger.Warnw("worker_auction_status_refresh_failed", "auction_id", payload.AuctionID, "error", err)
		return err
	}
	logger.Debugw("worker_auction_status_refreshed", "auction_id", payload.AuctionID, "status", status, "due_at", payload.DueAt)
	if c.DashboardService != nil {
		c.DashboardService.InvalidateOverview(context.Background())
	}
	return nil
}

// syncAuctionStatuses 批量校正所有拍卖的状态缓存
func (c *Consumer) syncAuctionStatuses() {
	if c == nil || c.AuctionService == nil {
		return
	}
	affected, err := c.AuctionService.RefreshStatuses()
	if err != nil {
		logger.Warnw("worker_auction_status_sync_failed", "error", err)
		return
	}
	if affected > 0 && c.DashboardService != nil {
		c.DashboardService.InvalidateOverview(context.Background())
	}
}
