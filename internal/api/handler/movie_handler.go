package handler

import (
	"errors"

	"film-vault/internal/api/dto"
	"film-vault/internal/api/response"
	"film-vault/internal/service"
	"film-vault/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MovieHandler struct {
	movieService *service.MovieService
}

func NewMovieHandler(movieService *service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

// Home 首页数据
// @Summary 电影列表
// @Tags movies
// @Produce json
// @Param q query string false "片名关键字"
// @Param genre query string false "类型"
// @Param sort query string false "trending | new"
// @Success 200 {object} dto.HomeData
// @Router /api/movies/ [get]
func (h *MovieHandler) Home(c *gin.Context) {
	var req dto.HomeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, msgInvalidRequest)
		return
	}

	data, err := h.movieService.Home(c.Request.Context(), &req)
	if err != nil {
		handleMovieError(c, err)
		return
	}
	response.OK(c, data)
}

// WatchPage 观看页数据
// @Summary 观看页
// @Tags movies
// @Produce json
// @Param movie_id path int true "电影ID"
// @Success 200 {object} dto.WatchPageData
// @Failure 404 {object} response.ErrorResponse
// @Router /watch/{movie_id}/ [get]
func (h *MovieHandler) WatchPage(c *gin.Context) {
	movieID, err := parseIDParam(c, "movie_id")
	if err != nil {
		response.NotFound(c, "Movie not found")
		return
	}

	data, err := h.movieService.WatchPage(c.Request.Context(), movieID)
	if err != nil {
		handleMovieError(c, err)
		return
	}
	response.OK(c, data)
}

// Suggestions 搜索联想，返回数组
// @Summary 搜索建议
// @Tags movies
// @Produce json
// @Param q query string false "关键字"
// @Success 200 {array} dto.MovieSuggestion
// @Router /search_suggestions/ [get]
func (h *MovieHandler) Suggestions(c *gin.Context) {
	items, err := h.movieService.Suggestions(c.Request.Context(), c.Query("q"))
	if err != nil {
		handleMovieError(c, err)
		return
	}
	response.OK(c, items)
}

// Latest 最近 10 分钟上传的电影，返回数组
// @Summary 最新上传
// @Tags movies
// @Produce json
// @Success 200 {array} dto.LatestMovie
// @Router /latest/ [get]
func (h *MovieHandler) Latest(c *gin.Context) {
	items, err := h.movieService.Latest(c.Request.Context())
	if err != nil {
		handleMovieError(c, err)
		return
	}
	response.OK(c, items)
}

func handleMovieError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMovieNotFound):
		response.NotFound(c, "Movie not found")
	case errors.Is(err, service.ErrSearchUnavailable):
		response.ServiceUnavailable(c, "Search index is not configured")
	default:
		logger.Error("Movie handler error", zap.Error(err))
		response.InternalError(c, "Internal server error")
	}
}
