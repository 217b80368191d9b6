package repository

import (
	"context"

	"film-vault/internal/model"

	"gorm.io/gorm"
)

type DownloadRepository struct {
	db *gorm.DB
}

func NewDownloadRepository(db *gorm.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *DownloadRepository) WithTx(tx *gorm.DB) *DownloadRepository {
	return &DownloadRepository{db: tx}
}

func (r *DownloadRepository) Create(ctx context.Context, history *model.DownloadHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// CountByMovie 每部电影的下载记录数，movieID 非空时只统计这一部
func (r *DownloadRepository) CountByMovie(ctx context.Context, movieID *int64) (map[int64]int64, error) {
	return countByMovie(r.db.WithContext(ctx).Model(&model.DownloadHistory{}), movieID)
}
