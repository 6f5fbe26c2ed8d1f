package app

import (
	"errors"

	"github.com/bidmart-admin/internal/cache"
	"github.com/bidmart-admin/internal/provider"
	"github.com/bidmart-admin/internal/router"
	"github.com/bidmart-admin/internal/worker"
)

// BuildRunner 按启动模式装配 API 与 Worker 服务
func BuildRunner(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, errors.New("config is nil")
	}
	mode, err := ParseMode(opts.Mode)
	if err != nil {
		return nil, err
	}
	opts.Mode = mode
	cfg := opts.Config

	container := provider.NewContainer(cfg)
	runner := NewRunner()

	if opts.runsAPI() {
		engine := router.SetupRouter(cfg, container)
		runner.services = append(runner.services, NewHTTPService(cfg.Server, engine))
	}
	if opts.runsWorker() {
		workerService, err := worker.NewService(cfg, worker.NewConsumer(container))
		if err != nil {
			return nil, err
		}
		runner.services = append(runner.services, workerService)
	}

	if container.QueueClient != nil {
		runner.OnClose(container.QueueClient.Close)
	}
	runner.OnClose(cache.Close)
	return runner, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	runner, err := BuildRunner(opts)
	if err != nil {
		return err
	}
	opts.Logger.Infow("app_start",
		"addr", opts.Config.Server.Addr(),
		"mode", opts.Mode,
		"database", opts.Config.Database.Driver,
		"queue_enabled", opts.Config.Queue.Enabled,
	)
	return RunWithOptions(runner, opts)
}
