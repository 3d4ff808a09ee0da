package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davidmodfyi/feather-api/internal/database"
	"github.com/davidmodfyi/feather-api/internal/router"
	"github.com/davidmodfyi/feather-api/pkg/config"
	"github.com/davidmodfyi/feather-api/pkg/logger"
	"github.com/davidmodfyi/feather-api/pkg/mailer"
	"github.com/davidmodfyi/feather-api/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger := logger.GetLogger()
	appLogger.Info("Starting Feather Storefront API...")

	// 初始化数据库
	if err := database.Initialize(cfg); err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			appLogger.Error("Failed to close database:", err)
		}
	}()

	// 执行数据库迁移
	if err := database.Migrate(); err != nil {
		appLogger.Fatalf("Failed to migrate database: %v", err)
	}

	// 执行种子数据初始化
	if err := seedData(); err != nil {
		appLogger.Fatalf("Failed to initialize seed data: %v", err)
	}

	// 设置Gin模式
	gin.SetMode(cfg.Server.Mode)

	// 会话存储：redis后端TTL由键过期实现，memory后端靠定时清理
	store, cleanup, err := buildSessionStore(cfg)
	if err != nil {
		appLogger.Fatalf("Failed to initialize session store: %v", err)
	}
	defer cleanup()

	ttl, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		ttl = 24 * time.Hour
	}
	sessions := session.NewManager(store, cfg.Session.CookieName, ttl, cfg.Session.Secure)

	// 每分钟清理一次过期会话
	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 1m", func() {
		if err := store.DeleteExpired(context.Background()); err != nil {
			appLogger.Errorf("Failed to sweep expired sessions: %v", err)
		}
	}); err != nil {
		appLogger.Fatalf("Failed to schedule session sweep: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// 订单报表投递
	orderMailer := mailer.NewSMTPMailer(&cfg.SMTP)

	// 设置路由
	r := router.SetupRouter(database.GetDB(), sessions, orderMailer)

	// 启动服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	appLogger.Infof("Server started on port %s", cfg.Server.Port)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	if err := server.Close(); err != nil {
		appLogger.Error("Server forced to shutdown:", err)
	}
	appLogger.Info("Server exited")
}

// buildSessionStore 按配置选择会话存储后端
func buildSessionStore(cfg *config.Config) (session.Store, func(), error) {
	if cfg.Session.Store == "redis" {
		store := session.NewRedisStore(&session.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err := store.Ping(); err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := store.Close(); err != nil {
				logger.GetLogger().Error("Failed to close Redis:", err)
			}
		}
		return store, cleanup, nil
	}

	return session.NewMemoryStore(), func() {}, nil
}
