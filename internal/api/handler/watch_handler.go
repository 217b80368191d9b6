package handler

import (
	"errors"

	"film-vault/internal/api/dto"
	"film-vault/internal/api/middleware"
	"film-vault/internal/api/response"
	"film-vault/internal/service"
	"film-vault/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WatchHandler struct {
	watchService *service.WatchService
}

func NewWatchHandler(watchService *service.WatchService) *WatchHandler {
	return &WatchHandler{watchService: watchService}
}

// Start 开始观看
// @Summary 开始观看
// @Tags watch
// @Produce json
// @Param movie_id path int true "电影ID"
// @Success 200 {object} dto.WatchStartedData
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /watch/start/{movie_id}/ [post]
func (h *WatchHandler) Start(c *gin.Context) {
	if !requirePOST(c) {
		return
	}
	movieID, err := parseIDParam(c, "movie_id")
	if err != nil {
		response.BadRequest(c, msgInvalidRequest)
		return
	}

	watch, err := h.watchService.StartWatch(c.Request.Context(), movieID, clientIP(c), middleware.CurrentUserID(c))
	if err != nil {
		handleWatchError(c, err)
		return
	}

	response.OK(c, dto.WatchStartedData{WatchID: watch.ID, Status: "started"})
}

// Stop 结束观看，重复调用返回相同时长
// @Summary 结束观看
// @Tags watch
// @Produce json
// @Param watch_id path int true "观看记录ID"
// @Success 200 {object} dto.WatchStoppedData
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /watch/stop/{watch_id}/ [post]
func (h *WatchHandler) Stop(c *gin.Context) {
	if !requirePOST(c) {
		return
	}
	watchID, err := parseIDParam(c, "watch_id")
	if err != nil {
		response.NotFound(c, "Watch session not found")
		return
	}

	duration, err := h.watchService.StopWatch(c.Request.Context(), watchID)
	if err != nil {
		handleWatchError(c, err)
		return
	}

	response.OK(c, dto.WatchStoppedData{Status: "stopped", Duration: duration})
}

// Viewers 当前在线观看人数
// @Summary 在线观看人数
// @Tags watch
// @Produce json
// @Param movie_id path int true "电影ID"
// @Success 200 {object} dto.CountData
// @Router /watch/{movie_id}/viewers/ [get]
func (h *WatchHandler) Viewers(c *gin.Context) {
	movieID, err := parseIDParam(c, "movie_id")
	if err != nil {
		response.BadRequest(c, msgInvalidRequest)
		return
	}

	count, err := h.watchService.LiveViewerCount(c.Request.Context(), movieID)
	if err != nil {
		handleWatchError(c, err)
		return
	}

	response.OK(c, dto.CountData{Count: count})
}

func handleWatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMovieNotFound):
		response.NotFound(c, "Movie not found")
	case errors.Is(err, service.ErrWatchNotFound):
		response.NotFound(c, "Watch session not found")
	default:
		logger.Error("Watch handler error", zap.Error(err))
		response.InternalError(c, "Internal server error")
	}
}
