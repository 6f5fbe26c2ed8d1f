package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/bidmart-admin/internal/app"
	"github.com/bidmart-admin/internal/config"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	mode := flag.String("mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()
	fmt.Printf("\033[1;36mBidMart Admin API\033[0m \033[2m(mode: %s)\033[0m\n", *mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	warn, err := app.CheckSecrets(cfg)
	if err != nil {
		stdLog.Fatalf("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
	}
	if warn {
		stdLog.Printf("警告: JWT secret 过弱或仍为默认值，建议在生产环境中更换")
	}

	if err := app.OpenDatabase(cfg.Database); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	if cfg.Server.Mode == "release" && cfg.Bootstrap.AdminPassword == "" {
		stdLog.Printf("警告: 未设置 bootstrap.admin_password，已跳过默认管理员初始化")
	} else if err := models.EnsureDefaultAdmin(models.DB, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		stdLog.Printf("警告: 初始化默认管理员失败: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	err = app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    *mode,
	})
	if err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}
