package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"film-vault/internal/api/handler"
	"film-vault/internal/api/middleware"
	"film-vault/internal/api/router"
	"film-vault/internal/app"
	"film-vault/internal/config"
	"film-vault/pkg/logger"

	_ "film-vault/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Film Vault API
// @version 1.0
// @description 电影点播与实时访客统计 API 服务

// @host 127.0.0.1:8000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to init application", zap.Error(err))
	}
	defer a.Close()

	gin.SetMode(cfg.App.Mode)

	r, err := router.NewEngine(cfg.App.TrustedProxies)
	if err != nil {
		logger.Fatal("Failed to create router", zap.Error(err))
	}

	adminMiddleware := middleware.AdminRequired(a.Users.GetRole)

	r.GET("/healthz", healthCheckHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r,
		handler.NewWatchHandler(a.Watches),
		handler.NewCommentHandler(a.Comments),
		handler.NewDownloadHandler(a.Downloads),
		handler.NewAnalyticsHandler(a.Analytics),
		handler.NewMovieHandler(a.Movies),
		handler.NewAdminHandler(a.Movies, a.Reconcile, a.ReconcileRequester()),
		adminMiddleware,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
		zap.String("database", cfg.Database.Driver),
		zap.Duration("active_window", a.Watches.ActiveWindow()),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
	})
}
