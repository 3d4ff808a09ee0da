package router

import (
	"time"

	"github.com/davidmodfyi/feather-api/internal/handlers"
	"github.com/davidmodfyi/feather-api/internal/middleware"
	"github.com/davidmodfyi/feather-api/internal/services"
	"github.com/davidmodfyi/feather-api/pkg/mailer"
	"github.com/davidmodfyi/feather-api/pkg/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(db *gorm.DB, sessions *session.Manager, m mailer.Mailer) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	registerRoutes(router, db, sessions, m)
	return router
}

// 注册所有路由。路径是对外合同，不要随意调整
func registerRoutes(router *gin.Engine, db *gorm.DB, sessions *session.Manager, m mailer.Mailer) {

	auth := middleware.NewAuthMiddleware(sessions)

	authHandler := handlers.NewAuthHandler(services.NewUserService(db), sessions)
	catalogHandler := handlers.NewCatalogHandler(services.NewCatalogService(db))
	cartHandler := handlers.NewCartHandler(services.NewCartService(db))
	orderHandler := handlers.NewOrderHandler(services.NewOrderService(db, m))
	accountHandler := handlers.NewAccountHandler(services.NewUserService(db))

	api := router.Group("/api")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)

		// 认证（无需登录）
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/me", auth.RequireLogin(), authHandler.Me)

		// 经销商范围的列表
		api.GET("/items", auth.RequireLogin(), catalogHandler.Items)
		api.GET("/accounts", auth.RequireLogin(), catalogHandler.Accounts)

		// 购物车
		api.GET("/cart", auth.RequireLogin(), cartHandler.List)
		api.POST("/cart", auth.RequireLogin(), cartHandler.Add)
		api.PUT("/cart/:itemId", auth.RequireLogin(), cartHandler.Update)
		api.DELETE("/cart/:itemId", auth.RequireLogin(), cartHandler.Remove)
		api.DELETE("/cart", auth.RequireLogin(), cartHandler.Clear)

		// 订单
		api.POST("/submit-order", auth.RequireLogin(), orderHandler.Submit)
		api.GET("/orders", auth.RequireLogin(), orderHandler.List)
		api.GET("/orders/:orderId/items", auth.RequireLogin(), orderHandler.Items)

		// 账户开通（仅管理员）
		api.POST("/connect-account", auth.RequireLogin(), auth.RequireAdmin(), accountHandler.Connect)
	}
}

// healthCheck 健康检查
func healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
