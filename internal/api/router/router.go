package router

import (
	"fmt"

	"film-vault/internal/api/handler"
	"film-vault/internal/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewEngine 创建带公共中间件的 Gin 引擎
// trustedProxies 之外的对端发来的 X-Forwarded-For 不会被采信
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r, nil
}

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	watchHandler *handler.WatchHandler,
	commentHandler *handler.CommentHandler,
	downloadHandler *handler.DownloadHandler,
	analyticsHandler *handler.AnalyticsHandler,
	movieHandler *handler.MovieHandler,
	adminHandler *handler.AdminHandler,
	adminMiddleware gin.HandlerFunc,
) {
	public := r.Group("", middleware.OptionalAuth())

	// --- 观看模块 ---
	watch := public.Group("/watch")
	{
		// 非 POST 请求由处理函数返回 400，而不是 404/405
		watch.Any("/start/:movie_id/", watchHandler.Start)
		watch.Any("/stop/:watch_id/", watchHandler.Stop)

		watch.GET("/:movie_id/", movieHandler.WatchPage)
		watch.POST("/:movie_id/", commentHandler.Create)
		watch.GET("/:movie_id/viewers/", watchHandler.Viewers)
		watch.GET("/:movie_id/comments/", commentHandler.Feed)
		watch.POST("/:movie_id/comments/", commentHandler.Create)
	}

	public.GET("/comment_count/:movie_id/", commentHandler.Count)
	public.GET("/download/:movie_id/", downloadHandler.Download)

	// --- 电影目录 ---
	public.GET("/search_suggestions/", movieHandler.Suggestions)
	public.GET("/latest/", movieHandler.Latest)

	api := public.Group("/api")
	{
		api.GET("/movies/", movieHandler.Home)

		// --- 访客统计 ---
		api.GET("/visitor-stats/", analyticsHandler.VisitorStats)
		api.GET("/visitor-chart/", analyticsHandler.VisitorChart)
		api.GET("/visitor-country/", analyticsHandler.VisitorCountry)
		api.GET("/visitor-map/", analyticsHandler.VisitorMap)
	}

	// --- 管理接口 ---
	admin := r.Group("/api/admin", middleware.AuthRequired(), adminMiddleware)
	{
		admin.POST("/movies/", adminHandler.CreateMovie)
		admin.POST("/reconcile/", adminHandler.Reconcile)
		admin.POST("/search/sync/", adminHandler.SyncSearch)
	}
}
