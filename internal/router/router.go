package router

import (
	"strings"

	"github.com/bidmart-admin/internal/cache"
	"github.com/bidmart-admin/internal/config"
	adminhandlers "github.com/bidmart-admin/internal/http/handlers/admin"
	publichandlers "github.com/bidmart-admin/internal/http/handlers/public"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(log), CORSMiddleware(cfg.CORS))

	limits := newRouteLimits(cfg)
	publicHandler := publichandlers.New(c)
	r.GET("/health", publicHandler.Health)

	apiV1 := r.Group("/api/v1")
	registerPublicRoutes(apiV1.Group("/public"), publicHandler, limits)
	registerAdminRoutes(r, apiV1.Group("/admin"), adminhandlers.New(c), c, limits)
	return r
}

// routeLimits 路由级限流规则
type routeLimits struct {
	login   gin.HandlerFunc
	contact gin.HandlerFunc
}

func newRouteLimits(cfg *config.Config) routeLimits {
	prefix := strings.TrimSpace(cfg.Redis.Prefix)
	if prefix == "" {
		prefix = "bm"
	}
	client := cache.Client()
	login := cfg.Security.LoginRateLimit
	return routeLimits{
		login: RateLimitMiddleware(client, RateLimitRule{
			Prefix:        prefix + ":rate:admin_login",
			WindowSeconds: login.WindowSeconds,
			MaxRequests:   login.MaxAttempts,
			BlockSeconds:  login.BlockSeconds,
			MessageKey:    "error.login_too_many",
		}, KeyByIPAndJSONField("username")),
		// 留言入口 Redis 故障时放行
		contact: RateLimitMiddleware(client, RateLimitRule{
			Prefix:        prefix + ":rate:contact",
			WindowSeconds: 60,
			MaxRequests:   5,
			FailOpen:      true,
		}, KeyByIP),
	}
}

func registerPublicRoutes(g *gin.RouterGroup, h *publichandlers.Handler, limits routeLimits) {
	g.GET("/captcha/image", h.GetImageCaptcha)
	g.GET("/categories", h.GetCategories)
	g.GET("/auctions", h.GetAuctions)
	g.POST("/contact", limits.contact, h.SubmitContact)
	g.POST("/vouchers/check", h.CheckVoucher)
}

func registerAdminRoutes(engine *gin.Engine, g *gin.RouterGroup, h *adminhandlers.Handler, c *provider.Container, limits routeLimits) {
	g.POST("/login", limits.login, h.AdminLogin)

	authorized := g.Group("", JWTAuthMiddleware(c.AuthService), AdminRBACMiddleware(c.AuthzService))
	authorized.GET("/profile", h.GetAdminProfile)
	authorized.PUT("/password", h.UpdateAdminPassword)
	authorized.GET("/dashboard/overview", h.GetDashboardOverview)

	categories := authorized.Group("/categories")
	categories.GET("", h.GetAdminCategories)
	categories.POST("", h.CreateCategory)
	categories.PUT("/:id", h.UpdateCategory)
	categories.DELETE("/:id", h.DeleteCategory)

	products := authorized.Group("/products")
	products.GET("", h.GetAdminProducts)
	products.GET("/:id", h.GetAdminProduct)
	products.POST("", h.CreateProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)

	auctions := authorized.Group("/auctions")
	auctions.GET("", h.GetAdminAuctions)
	auctions.POST("/preview-status", h.PreviewAuctionStatus)
	auctions.GET("/:id", h.GetAdminAuction)
	auctions.POST("", h.CreateAuction)
	auctions.PUT("/:id", h.UpdateAuction)
	auctions.PATCH("/:id/active", h.SetAuctionActive)
	auctions.DELETE("/:id", h.DeleteAuction)

	vouchers := authorized.Group("/vouchers")
	vouchers.GET("", h.GetAdminVouchers)
	vouchers.GET("/:id", h.GetAdminVoucher)
	vouchers.POST("", h.CreateVoucher)
	vouchers.PUT("/:id", h.UpdateVoucher)
	vouchers.PATCH("/:id/active", h.SetVoucherActive)
	vouchers.DELETE("/:id", h.DeleteVoucher)
	vouchers.GET("/:id/usages", h.GetVoucherUsages)
	vouchers.POST("/:id/redeem", h.RedeemVoucher)

	contacts := authorized.Group("/contacts")
	contacts.GET("", h.GetAdminContacts)
	contacts.GET("/:id", h.GetAdminContact)
	contacts.PATCH("/:id", h.UpdateContact)
	contacts.PATCH("/:id/status", h.UpdateContactStatus)
	contacts.DELETE("/:id", h.DeleteContact)

	authorized.GET("/audit-logs", h.ListAuditLogs)

	authzGroup := authorized.Group("/authz")
	authzGroup.GET("/me", h.GetAuthzMe)
	authzGroup.GET("/permissions/catalog", permissionCatalogHandler(engine))
	authzGroup.GET("/roles", h.ListAuthzRoles)
	authzGroup.POST("/roles", h.CreateAuthzRole)
	authzGroup.DELETE("/roles/:role", h.DeleteAuthzRole)
	authzGroup.GET("/roles/:role/policies", h.GetAuthzRolePolicies)
	authzGroup.POST("/policies", h.GrantAuthzPolicy)
	authzGroup.DELETE("/policies", h.RevokeAuthzPolicy)
	authzGroup.GET("/admins", h.ListAuthzAdmins)
	authzGroup.POST("/admins", h.CreateAuthzAdmin)
	authzGroup.GET("/admins/:id/roles", h.GetAuthzAdminRoles)
	authzGroup.PUT("/admins/:id/roles", h.SetAuthzAdminRoles)
}
