package provider

import (
	"github.com/bidmart-admin/internal/authz"
	"github.com/bidmart-admin/internal/cache"
	"github.com/bidmart-admin/internal/clock"
	"github.com/bidmart-admin/internal/config"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/queue"
	"github.com/bidmart-admin/internal/repository"
	"github.com/bidmart-admin/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Clock       clock.Clock

	// Repositories
	AdminRepo        repository.AdminRepository
	CategoryRepo     repository.CategoryRepository
	ProductRepo      repository.ProductRepository
	AuctionRepo      repository.AuctionRepository
	VoucherRepo      repository.VoucherRepository
	VoucherUsageRepo repository.VoucherUsageRepository
	ContactRepo      repository.ContactRepository
	DashboardRepo    repository.DashboardRepository
	AuditLogRepo     repository.AuditLogRepository

	// Services
	AuthzService             *authz.Service
	AuthService              *service.AuthService
	CaptchaService           *service.CaptchaService
	CategoryService          *service.CategoryService
	ProductService           *service.ProductService
	AuctionService           *service.AuctionService
	VoucherAdminService      *service.VoucherAdminService
	VoucherRedemptionService *service.VoucherRedemptionService
	ContactService           *service.ContactService
	DashboardService         *service.DashboardService
	AuditService             *service.AuditService
}

// NewContainer 初始化容器，使用全局数据库连接与系统时钟
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 队列未启用时客户端的投递均为空操作
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
	}

	return Build(cfg, models.DB, queueClient, clock.Real{})
}

// Build 按给定依赖装配仓库与服务
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client, clk clock.Clock) *Container {
	if clk == nil {
		clk = clock.Real{}
	}
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Clock:       clk,
	}
	c.initRepositories(db)
	c.initServices(db)
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.AuctionRepo = repository.NewAuctionRepository(db)
	c.VoucherRepo = repository.NewVoucherRepository(db)
	c.VoucherUsageRepo = repository.NewVoucherUsageRepository(db)
	c.ContactRepo = repository.NewContactRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
	c.AuditLogRepo = repository.NewAuditLogRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo, c.Clock)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.AuctionService = service.NewAuctionService(c.AuctionRepo, c.ProductRepo, c.QueueClient, c.Clock, c.Config.Auction.ScheduleStatusTasks)
	c.VoucherAdminService = service.NewVoucherAdminService(c.VoucherRepo, c.VoucherUsageRepo, c.ProductRepo, c.Clock)
	c.VoucherRedemptionService = service.NewVoucherRedemptionService(c.VoucherRepo, c.Clock)
	c.ContactService = service.NewContactService(c.ContactRepo, c.Clock)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.Clock)
	c.AuditService = service.NewAuditService(c.AuditLogRepo, c.Clock)
}
