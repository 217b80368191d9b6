package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"film-vault/internal/api/dto"
	"film-vault/internal/model"
	"film-vault/internal/repository"

	"github.com/dustin/go-humanize"
	"gorm.io/gorm"
)

var ErrEmptyComment = errors.New("comment text is required")

type CommentService struct {
	commentRepo *repository.CommentRepository
	movieRepo   *repository.MovieRepository
	watches     *WatchService
	now         func() time.Time
}

func NewCommentService(commentRepo *repository.CommentRepository, movieRepo *repository.MovieRepository, watches *WatchService) *CommentService {
	return &CommentService{commentRepo: commentRepo, movieRepo: movieRepo, watches: watches, now: time.Now}
}

func (s *CommentService) getMovie(ctx context.Context, movieID int64) (*model.Movie, error) {
	movie, err := s.movieRepo.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return movie, nil
}

// Create 发表评论，登录用户记录 userID，否则使用访客昵称
func (s *CommentService) Create(ctx context.Context, movieID int64, userID *int64, req *dto.CommentCreateRequest) (*dto.CommentCreatedData, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	if _, err := s.getMovie(ctx, movieID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		MovieID:   movieID,
		UserID:    userID,
		GuestName: strings.TrimSpace(req.GuestName),
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.GetByIDWithUser(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	count, err := s.commentRepo.CountByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	return &dto.CommentCreatedData{
		Count:         count,
		LatestComment: s.toCommentInfo(created),
	}, nil
}

// Feed 轮询增量评论，附带评论总数、播放数与在线人数
func (s *CommentService) Feed(ctx context.Context, movieID, sinceID int64) (*dto.CommentFeedData, error) {
	movie, err := s.getMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListSince(ctx, movieID, sinceID)
	if err != nil {
		return nil, err
	}
	count, err := s.commentRepo.CountByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	live, err := s.watches.LiveViewerCount(ctx, movieID)
	if err != nil {
		return nil, err
	}

	return &dto.CommentFeedData{
		Comments:    s.toCommentInfos(comments),
		Count:       count,
		TotalViews:  movie.TotalViews,
		LiveViewers: live,
	}, nil
}

// Count 电影评论数
func (s *CommentService) Count(ctx context.Context, movieID int64) (int64, error) {
	if _, err := s.getMovie(ctx, movieID); err != nil {
		return 0, err
	}
	return s.commentRepo.CountByMovie(ctx, movieID)
}

func (s *CommentService) toCommentInfos(comments []model.Comment) []dto.CommentInfo {
	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		items = append(items, s.toCommentInfo(&comments[i]))
	}
	return items
}

func (s *CommentService) toCommentInfo(c *model.Comment) dto.CommentInfo {
	var username *string
	if c.User != nil {
		name := c.User.UserName
		username = &name
	}
	return dto.CommentInfo{
		ID:               c.ID,
		GuestName:        c.GuestName,
		User:             username,
		DisplayName:      c.DisplayName(),
		Text:             c.Text,
		CreatedAtDisplay: humanize.RelTime(c.CreatedAt, s.now(), "ago", "from now"),
		CreatedAtISO:     c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
