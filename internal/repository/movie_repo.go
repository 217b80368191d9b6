package repository

import (
	"context"
	"strings"
	"time"

	"film-vault/internal/model"

	"gorm.io/gorm"
)

// 首页排序方式
const (
	SortNew      = "new"
	SortTrending = "trending"
)

// MovieFilter 首页列表筛选条件
type MovieFilter struct {
	Query string // 片名模糊匹配，不区分大小写
	Genre string // 类型名，不区分大小写
	Sort  string // new | trending
}

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *MovieRepository) WithTx(tx *gorm.DB) *MovieRepository {
	return &MovieRepository{db: tx}
}

func (r *MovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.WithContext(ctx).First(&movie, id).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *MovieRepository) GetByIDWithGenre(ctx context.Context, id int64) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.WithContext(ctx).Preload("Genre").First(&movie, id).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetByIDs 按 ID 批量查询，结果顺序不保证
func (r *MovieRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Movie, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var movies []model.Movie
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&movies).Error
	return movies, err
}

// List 首页电影列表
func (r *MovieRepository) List(ctx context.Context, filter MovieFilter) ([]model.Movie, error) {
	query := r.db.WithContext(ctx).Model(&model.Movie{}).Preload("Genre")

	if q := strings.TrimSpace(filter.Query); q != "" {
		query = query.Where("LOWER(movies.name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if g := strings.TrimSpace(filter.Genre); g != "" {
		query = query.Joins("JOIN genres ON genres.id = movies.genre_id").
			Where("LOWER(genres.name) = ?", strings.ToLower(g))
	}

	switch filter.Sort {
	case SortTrending:
		query = query.Order("movies.download_count DESC").Order("movies.uploaded_at DESC")
	default:
		query = query.Order("movies.uploaded_at DESC")
	}

	var movies []model.Movie
	err := query.Order("movies.id DESC").Find(&movies).Error
	return movies, err
}

// Trending 下载量最高的电影
func (r *MovieRepository) Trending(ctx context.Context, limit int) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.WithContext(ctx).Preload("Genre").
		Order("download_count DESC").Order("uploaded_at DESC").Order("id DESC").
		Limit(limit).Find(&movies).Error
	return movies, err
}

// Newest 最新上传的电影
func (r *MovieRepository) Newest(ctx context.Context, limit int) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.WithContext(ctx).Preload("Genre").
		Order("uploaded_at DESC").Order("id DESC").
		Limit(limit).Find(&movies).Error
	return movies, err
}

// UploadedSince 指定时间之后上传的电影，新的在前
func (r *MovieRepository) UploadedSince(ctx context.Context, since time.Time) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.WithContext(ctx).Preload("Genre").
		Where("uploaded_at >= ?", since.UTC()).
		Order("uploaded_at DESC").Order("id DESC").
		Find(&movies).Error
	return movies, err
}

// SearchByName 片名模糊搜索，用于搜索建议的 DB 降级
func (r *MovieRepository) SearchByName(ctx context.Context, q string, limit int) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(q))+"%").
		Order("id ASC").Limit(limit).Find(&movies).Error
	return movies, err
}

// GenreNames 至少有一部电影的类型名，按名称排序
func (r *MovieRepository) GenreNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&model.Genre{}).
		Distinct("genres.name").
		Joins("JOIN movies ON movies.genre_id = genres.id").
		Where("genres.name <> ''").
		Order("genres.name ASC").
		Pluck("genres.name", &names).Error
	return names, err
}

func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Movie{}).Count(&count).Error
	return count, err
}

// IncrementViews 播放次数原子加一
func (r *MovieRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "total_views")
}

// IncrementDownloads 下载次数原子加一
func (r *MovieRepository) IncrementDownloads(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "download_count")
}

func (r *MovieRepository) increment(ctx context.Context, id int64, column string) error {
	result := r.db.WithContext(ctx).Model(&model.Movie{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForReconcile 对账用电影列表，movieID 非空时只取这一部
func (r *MovieRepository) ListForReconcile(ctx context.Context, movieID *int64) ([]model.Movie, error) {
	query := r.db.WithContext(ctx).Model(&model.Movie{}).
		Select("id", "name", "total_views", "download_count")
	if movieID != nil {
		query = query.Where("id = ?", *movieID)
	}
	var movies []model.Movie
	err := query.Order("id ASC").Find(&movies).Error
	return movies, err
}

// SetCounters 用对账结果覆盖两个计数
func (r *MovieRepository) SetCounters(ctx context.Context, id, views, downloads int64) error {
	result := r.db.WithContext(ctx).Model(&model.Movie{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"total_views":    views,
			"download_count": downloads,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
