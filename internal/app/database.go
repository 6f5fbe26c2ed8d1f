package app

import (
	"fmt"

	"github.com/bidmart-admin/internal/config"
	"github.com/bidmart-admin/internal/models"
)

// OpenDatabase 连接数据库并执行自动迁移
func OpenDatabase(cfg config.DatabaseConfig) error {
	pool := models.DBPoolConfig{
		MaxOpenConns:           cfg.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Pool.ConnMaxIdleTimeSeconds,
	}
	if err := models.InitDB(cfg.Driver, cfg.DSN, pool); err != nil {
		return fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
