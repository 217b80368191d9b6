package handler

import (
	"errors"
	"strconv"

	"film-vault/internal/api/dto"
	"film-vault/internal/api/middleware"
	"film-vault/internal/api/response"
	"film-vault/internal/service"
	"film-vault/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create 发表评论，表单与 JSON 均可
// @Summary 发表评论
// @Tags comments
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param movie_id path int true "电影ID"
// @Param body body dto.CommentCreateRequest true "评论内容"
// @Success 200 {object} dto.CommentCreatedData
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /watch/{movie_id}/comments/ [post]
func (h *CommentHandler) Create(c *gin.Context) {
	movieID, err := parseIDParam(c, "movie_id")
	if err != nil {
		response.BadRequest(c, msgInvalidRequest)
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid comment: "+err.Error())
		return
	}

	data, err := h.commentService.Create(c.Request.Context(), movieID, middleware.CurrentUserID(c), &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, data)
}

// Feed 轮询 since 之后的新评论
// @Summary 评论轮询
// @Tags comments
// @Produce json
// @Param movie_id path int true "电影ID"
// @Param since query int false "上次收到的最大评论ID"
// @Success 200 {object} dto.CommentFeedData
// @Failure 404 {object} response.ErrorResponse
// @Router /watch/{movie_id}/comments/ [get]
func (h *CommentHandler) Feed(c *gin.Context) {
	movieID, err := parseIDParam(c, "movie_id")
	if err != nil {
		response.BadRequest(c, msgInvalidRequest)
		return
	}

	var since int64
	if v := c.Query("since"); v != "" {
		since, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid since")
			return
		}
	}

	data, err := h.commentService.Feed(c.Request.Context(), movieID, since)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, data)
}

// Count 评论总数
// @Summary 评论总数
// @Tags comments
// @Produce json
// @Param movie_id path int true "电影ID"
// @Success 200 {object} dto.CountData
// @Failure 404 {object} response.ErrorResponse
// @Router /comment_count/{movie_id}/ [get]
func (h *CommentHandler) Count(c *gin.Context) {
	movieID, err := parseIDParam(c, "movie_id")
	if err != nil {
		response.BadRequest(c, msgInvalidRequest)
		return
	}

	count, err := h.commentService.Count(c.Request.Context(), movieID)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, dto.CountData{Count: count})
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyComment):
		response.BadRequest(c, "Comment text is required")
	case errors.Is(err, service.ErrMovieNotFound):
		response.NotFound(c, "Movie not found")
	default:
		logger.Error("Comment handler error", zap.Error(err))
		response.InternalError(c, "Internal server error")
	}
}
