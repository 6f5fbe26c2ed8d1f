package worker

import (
	"context"
	"errors"
	"time"

	"github.com/bidmart-admin/internal/config"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultStatusSyncInterval = time.Minute

// Service 异步队列服务
// 队列未启用时只运行状态巡检循环。
type Service struct {
	name         string
	server       *asynq.Server
	mux          *asynq.ServeMux
	consumer     *Consumer
	syncInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	interval := time.Duration(cfg.Auction.StatusSyncIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultStatusSyncInterval
	}
	svc := &Service{
		name:         "worker",
		consumer:     consumer,
		syncInterval: interval,
	}
	if cfg.Queue.Enabled {
		opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
		serverCfg.Logger = newAsynqLogger()
		svc.server = asynq.NewServer(opt, serverCfg)
		svc.mux = asynq.NewServeMux()
		consumer.Register(svc.mux)
	}
	return svc, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.consumer == nil {
		return errors.New("worker not initialized")
	}
	if s.server == nil {
		logger.Infow("worker_queue_disabled", "status_sync_interval", s.syncInterval.String())
		s.runStatusSyncLoop(ctx)
		return nil
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	// asynq 在后台消费，这里由同步循环阻塞到 ctx 结束
	s.runStatusSyncLoop(ctx)
	return nil
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		s.server.Shutdown()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) runStatusSyncLoop(ctx context.Context) {
	if s == nil || s.consumer == nil {
		return
	}
	s.consumer.syncAuctionStatuses()

	ticker := time.NewTicker(s.syncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.consumer.syncAuctionStatuses()
		}
	}
}
