package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"film-vault/internal/api/dto"
	infraKafka "film-vault/internal/infra/kafka"
	"film-vault/internal/model"
	"film-vault/internal/repository"
	"film-vault/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	homeSectionLimit = 6
	suggestionLimit  = 5
	latestWindow     = 10 * time.Minute
)

// SearchIndex 电影搜索索引，由 Elasticsearch 实现；为 nil 时搜索走数据库
type SearchIndex interface {
	Suggest(ctx context.Context, q string, size int) ([]int64, error)
	IndexMovie(ctx context.Context, movie *model.Movie) error
	BulkIndex(ctx context.Context, movies []model.Movie) (success, failed int, err error)
}

type MovieService struct {
	db          *gorm.DB
	movieRepo   *repository.MovieRepository
	commentRepo *repository.CommentRepository
	watches     *WatchService
	comments    *CommentService
	index       SearchIndex
	publisher   EventPublisher
	now         func() time.Time
}

func NewMovieService(
	db *gorm.DB,
	movieRepo *repository.MovieRepository,
	commentRepo *repository.CommentRepository,
	watches *WatchService,
	comments *CommentService,
	index SearchIndex,
	publisher EventPublisher,
) *MovieService {
	return &MovieService{
		db:          db,
		movieRepo:   movieRepo,
		commentRepo: commentRepo,
		watches:     watches,
		comments:    comments,
		index:       index,
		publisher:   publisher,
		now:         time.Now,
	}
}

// Home 首页：筛选后的电影列表、热门与最新各 6 部、类型列表与总数
func (s *MovieService) Home(ctx context.Context, req *dto.HomeRequest) (*dto.HomeData, error) {
	filter := repository.MovieFilter{
		Query: strings.TrimSpace(req.Q),
		Genre: strings.TrimSpace(req.Genre),
		Sort:  strings.TrimSpace(req.Sort),
	}

	movies, err := s.movieRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	trending, err := s.movieRepo.Trending(ctx, homeSectionLimit)
	if err != nil {
		return nil, err
	}
	newest, err := s.movieRepo.Newest(ctx, homeSectionLimit)
	if err != nil {
		return nil, err
	}
	genres, err := s.movieRepo.GenreNames(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.movieRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.HomeData{
		SearchQuery:   filter.Query,
		SelectedGenre: filter.Genre,
		SelectedSort:  filter.Sort,
		Trending:      toMovieInfos(trending),
		NewReleases:   toMovieInfos(newest),
		Movies:        toMovieInfos(movies),
		Genres:        genres,
		TotalMovies:   total,
	}, nil
}

// WatchPage 观看页：电影信息、评论（新的在前）、最新评论 ID、播放数与在线人数
func (s *MovieService) WatchPage(ctx context.Context, movieID int64) (*dto.WatchPageData, error) {
	movie, err := s.movieRepo.GetByIDWithGenre(ctx, movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.ListNewestFirst(ctx, movieID)
	if err != nil {
		return nil, err
	}
	live, err := s.watches.LiveViewerCount(ctx, movieID)
	if err != nil {
		return nil, err
	}

	var lastCommentID int64
	if len(comments) > 0 {
		lastCommentID = comments[0].ID
	}

	return &dto.WatchPageData{
		Movie:         toMovieInfo(movie),
		Comments:      s.comments.toCommentInfos(comments),
		LastCommentID: lastCommentID,
		TotalViews:    movie.TotalViews,
		LiveViewers:   live,
	}, nil
}

// Suggestions 片名联想，最多 5 条；ES 不可用或出错时降级到数据库
func (s *MovieService) Suggestions(ctx context.Context, q string) ([]dto.MovieSuggestion, error) {
	q = strings.TrimSpace(q)

	if s.index != nil && q != "" {
		items, err := s.suggestFromIndex(ctx, q)
		if err == nil {
			return items, nil
		}
		logger.Warn("ES suggest failed, fallback to DB", zap.Error(err))
	}

	movies, err := s.movieRepo.SearchByName(ctx, q, suggestionLimit)
	if err != nil {
		return nil, err
	}
	return toSuggestions(movies), nil
}

func (s *MovieService) suggestFromIndex(ctx context.Context, q string) ([]dto.MovieSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	ids, err := s.index.Suggest(ctx, q, suggestionLimit)
	if err != nil {
		return nil, err
	}

	movies, err := s.movieRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 按 ES 的相关度顺序输出，索引里残留的已删除电影直接跳过
	byID := make(map[int64]model.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}
	ordered := make([]model.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			ordered = append(ordered, m)
		}
	}
	return toSuggestions(ordered), nil
}

// Latest 最近 10 分钟内上传的电影
func (s *MovieService) Latest(ctx context.Context) ([]dto.LatestMovie, error) {
	movies, err := s.movieRepo.UploadedSince(ctx, s.now().UTC().Add(-latestWindow))
	if err != nil {
		return nil, err
	}

	items := make([]dto.LatestMovie, 0, len(movies))
	for i := range movies {
		m := &movies[i]
		items = append(items, dto.LatestMovie{
			ID:          m.ID,
			Name:        m.Name,
			ImageURL:    m.ImageURL,
			Genre:       m.GenreName(),
			DownloadURL: m.DownloadURL,
		})
	}
	return items, nil
}

// CreateMovie 新增电影，类型按名称查找，不存在时创建
// 写入搜索索引与发送事件都是尽力而为
func (s *MovieService) CreateMovie(ctx context.Context, req *dto.MovieCreateRequest) (*dto.MovieInfo, error) {
	movie := &model.Movie{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		DownloadURL: req.DownloadURL,
		UploadedAt:  s.now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if name := strings.TrimSpace(req.Genre); name != "" {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Genre{Name: name}).Error; err != nil {
				return err
			}
			genre := &model.Genre{}
			if err := tx.Where("name = ?", name).First(genre).Error; err != nil {
				return err
			}
			movie.GenreID = &genre.ID
			movie.Genre = genre
		}
		return s.movieRepo.WithTx(tx).Create(ctx, movie)
	})
	if err != nil {
		return nil, err
	}

	if s.index != nil {
		if err := s.index.IndexMovie(ctx, movie); err != nil {
			logger.Warn("Failed to index movie", zap.Int64("movie_id", movie.ID), zap.Error(err))
		}
	}
	publishEvent(s.publisher, &infraKafka.MovieEvent{
		Type:       infraKafka.EventMovieCreated,
		MovieID:    movie.ID,
		OccurredAt: movie.UploadedAt,
	})

	info := toMovieInfo(movie)
	return &info, nil
}

// SyncMovie 将单部电影的最新数据写入搜索索引
func (s *MovieService) SyncMovie(ctx context.Context, movieID int64) error {
	if s.index == nil {
		return nil
	}
	movie, err := s.movieRepo.GetByIDWithGenre(ctx, movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}
	return s.index.IndexMovie(ctx, movie)
}

// SyncSearchIndex 全量同步电影到搜索索引
func (s *MovieService) SyncSearchIndex(ctx context.Context) (*dto.SearchSyncData, error) {
	if s.index == nil {
		return nil, ErrSearchUnavailable
	}
	movies, err := s.movieRepo.List(ctx, repository.MovieFilter{})
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return &dto.SearchSyncData{}, nil
	}

	success, failed, err := s.index.BulkIndex(ctx, movies)
	if err != nil {
		return nil, err
	}
	return &dto.SearchSyncData{Success: success, Failed: failed}, nil
}

// ErrSearchUnavailable 未配置搜索索引
var ErrSearchUnavailable = errors.New("search index is not configured")

func toMovieInfo(m *model.Movie) dto.MovieInfo {
	return dto.MovieInfo{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Genre:         m.GenreName(),
		ImageURL:      m.ImageURL,
		VideoURL:      m.VideoURL,
		DownloadURL:   m.DownloadURL,
		TotalViews:    m.TotalViews,
		DownloadCount: m.DownloadCount,
		UploadedAt:    m.UploadedAt,
	}
}

func toMovieInfos(movies []model.Movie) []dto.MovieInfo {
	items := make([]dto.MovieInfo, 0, len(movies))
	for i := range movies {
		items = append(items, toMovieInfo(&movies[i]))
	}
	return items
}

func toSuggestions(movies []model.Movie) []dto.MovieSuggestion {
	items := make([]dto.MovieSuggestion, 0, len(movies))
	for _, m := range movies {
		items = append(items, dto.MovieSuggestion{ID: m.ID, Name: m.Name})
	}
	return items
}
