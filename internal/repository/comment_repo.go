package repository

import (
	"context"

	"film-vault/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) GetByIDWithUser(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListSince 电影下 id 大于 sinceID 的评论，按 id 升序，用于轮询增量
func (r *CommentRepository) ListSince(ctx context.Context, movieID, sinceID int64) ([]model.Comment, error) {
	query := r.db.WithContext(ctx).Preload("User").Where("movie_id = ?", movieID)
	if sinceID > 0 {
		query = query.Where("id > ?", sinceID)
	}

	var comments []model.Comment
	err := query.Order("id ASC").Find(&comments).Error
	return comments, err
}

// ListNewestFirst 电影全部评论，最新的在前
func (r *CommentRepository) ListNewestFirst(ctx context.Context, movieID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).Preload("User").
		Where("movie_id = ?", movieID).
		Order("id DESC").Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) CountByMovie(ctx context.Context, movieID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("movie_id = ?", movieID).Count(&count).Error
	return count, err
}
