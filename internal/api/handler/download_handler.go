package handler

import (
	"errors"
	"net/http"

	"film-vault/internal/api/middleware"
	"film-vault/internal/api/response"
	"film-vault/internal/service"
	"film-vault/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DownloadHandler struct {
	downloadService *service.DownloadService
}

func NewDownloadHandler(downloadService *service.DownloadService) *DownloadHandler {
	return &DownloadHandler{downloadService: downloadService}
}

// Download 记录下载并重定向到下载地址
// 没有下载地址时返回纯文本 404，保持旧客户端依赖的格式
// @Summary 下载电影
// @Tags movies
// @Param movie_id path int true "电影ID"
// @Success 302
// @Failure 404 {string} string "No download link available for this movie."
// @Router /download/{movie_id}/ [get]
func (h *DownloadHandler) Download(c *gin.Context) {
	movieID, err := parseIDParam(c, "movie_id")
	if err != nil {
		response.PlainNotFound(c, "Movie not found.")
		return
	}

	target, err := h.downloadService.Download(c.Request.Context(), movieID, clientIP(c), middleware.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoDownloadURL):
			response.PlainNotFound(c, "No download link available for this movie.")
		case errors.Is(err, service.ErrMovieNotFound):
			response.PlainNotFound(c, "Movie not found.")
		case errors.Is(err, service.ErrStorageUnavailable):
			response.ServiceUnavailable(c, "Download storage is unavailable")
		default:
			logger.Error("Download failed", zap.Int64("movie_id", movieID), zap.Error(err))
			response.InternalError(c, "Internal server error")
		}
		return
	}

	c.Redirect(http.StatusFound, target)
}
