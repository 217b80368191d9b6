package handler

import (
	"context"
	"time"

	"film-vault/internal/api/dto"
	"film-vault/internal/api/middleware"
	"film-vault/internal/api/response"
	infraKafka "film-vault/internal/infra/kafka"
	"film-vault/internal/service"
	"film-vault/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	movieService     *service.MovieService
	reconcileService *service.ReconcileService
	requester        service.ReconcileRequester
}

// NewAdminHandler requester 为 nil 时不支持异步对账
func NewAdminHandler(movieService *service.MovieService, reconcileService *service.ReconcileService, requester service.ReconcileRequester) *AdminHandler {
	return &AdminHandler{movieService: movieService, reconcileService: reconcileService, requester: requester}
}

// CreateMovie 新增电影
// @Summary 新增电影
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovieCreateRequest true "电影信息"
// @Success 201 {object} dto.MovieInfo
// @Failure 400 {object} response.ErrorResponse
// @Router /api/admin/movies/ [post]
func (h *AdminHandler) CreateMovie(c *gin.Context) {
	var req dto.MovieCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid movie: "+err.Error())
		return
	}

	info, err := h.movieService.CreateMovie(c.Request.Context(), &req)
	if err != nil {
		handleMovieError(c, err)
		return
	}
	response.Created(c, info)
}

// Reconcile 按历史记录重算播放数与下载数
// async=true 时投递到 Kafka 由 worker 执行
// @Summary 计数对账
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param dry_run query bool false "只报告差异"
// @Param movie_id query int false "只处理这一部电影"
// @Param async query bool false "异步执行"
// @Success 200 {object} service.ReconcileReport
// @Success 202 {object} dto.ReconcileQueuedData
// @Router /api/admin/reconcile/ [post]
func (h *AdminHandler) Reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, msgInvalidRequest)
		return
	}

	if req.Async {
		if h.requester == nil {
			response.ServiceUnavailable(c, "Async reconcile is not available")
			return
		}
		userID, _ := middleware.GetCurrentUserID(c)
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		err := h.requester.RequestReconcile(ctx, &infraKafka.ReconcileRequest{
			DryRun:      req.DryRun,
			MovieID:     req.MovieID,
			RequestedBy: userID,
			RequestedAt: time.Now().UTC(),
		})
		if err != nil {
			logger.Error("Failed to queue reconcile", zap.Error(err))
			response.ServiceUnavailable(c, "Failed to queue reconcile")
			return
		}
		response.Accepted(c, dto.ReconcileQueuedData{Status: "queued", DryRun: req.DryRun, MovieID: req.MovieID})
		return
	}

	report, err := h.reconcileService.Reconcile(c.Request.Context(), service.ReconcileOptions{
		DryRun:  req.DryRun,
		MovieID: req.MovieID,
	})
	if err != nil {
		handleMovieError(c, err)
		return
	}
	response.OK(c, report)
}

// SyncSearch 全量同步搜索索引
// @Summary 同步搜索索引
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SearchSyncData
// @Failure 503 {object} response.ErrorResponse
// @Router /api/admin/search/sync/ [post]
func (h *AdminHandler) SyncSearch(c *gin.Context) {
	data, err := h.movieService.SyncSearchIndex(c.Request.Context())
	if err != nil {
		handleMovieError(c, err)
		return
	}
	response.OK(c, data)
}
