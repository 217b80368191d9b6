package repository

import (
	"context"
	"time"

	"film-vault/internal/model"

	"gorm.io/gorm"
)

type WatchRepository struct {
	db *gorm.DB
}

func NewWatchRepository(db *gorm.DB) *WatchRepository {
	return &WatchRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *WatchRepository) WithTx(tx *gorm.DB) *WatchRepository {
	return &WatchRepository{db: tx}
}

func (r *WatchRepository) Create(ctx context.Context, watch *model.WatchHistory) error {
	return r.db.WithContext(ctx).Create(watch).Error
}

func (r *WatchRepository) GetByID(ctx context.Context, id int64) (*model.WatchHistory, error) {
	var watch model.WatchHistory
	err := r.db.WithContext(ctx).First(&watch, id).Error
	if err != nil {
		return nil, err
	}
	return &watch, nil
}

// CloseOpenSessions 关闭 (movie, ip) 上所有进行中的会话，duration 保持为空
func (r *WatchRepository) CloseOpenSessions(ctx context.Context, movieID int64, ip string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.WatchHistory{}).
		Where("movie_id = ? AND ip_address = ? AND end_time IS NULL", movieID, ip).
		UpdateColumn("end_time", at.UTC())
	return result.RowsAffected, result.Error
}

// CloseIfOpen 仅当会话仍未结束时写入结束时间与时长，返回是否写入
func (r *WatchRepository) CloseIfOpen(ctx context.Context, id int64, end time.Time, duration time.Duration) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.WatchHistory{}).
		Where("id = ? AND end_time IS NULL", id).
		UpdateColumns(map[string]interface{}{
			"end_time": end.UTC(),
			"duration": duration,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountLive 统计电影在 since 之后开始且仍未结束的会话
func (r *WatchRepository) CountLive(ctx context.Context, movieID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WatchHistory{}).
		Where("movie_id = ? AND end_time IS NULL AND start_time >= ?", movieID, since.UTC()).
		Count(&count).Error
	return count, err
}

// CountOpen 统计 (movie, ip) 上未结束的会话
func (r *WatchRepository) CountOpen(ctx context.Context, movieID int64, ip string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WatchHistory{}).
		Where("movie_id = ? AND ip_address = ? AND end_time IS NULL", movieID, ip).
		Count(&count).Error
	return count, err
}

// LatestByIPs 每个 IP 最近开始的一条会话（附带电影），没有会话的 IP 不在结果中
func (r *WatchRepository) LatestByIPs(ctx context.Context, ips []string) (map[string]*model.WatchHistory, error) {
	result := make(map[string]*model.WatchHistory, len(ips))
	if len(ips) == 0 {
		return result, nil
	}

	latest := r.db.Table("watch_histories AS w2").Select("w2.id").
		Where("w2.ip_address = watch_histories.ip_address").
		Order("w2.start_time DESC").Order("w2.id DESC").
		Limit(1)

	var watches []model.WatchHistory
	err := r.db.WithContext(ctx).Preload("Movie").
		Where("watch_histories.ip_address IN ?", ips).
		Where("watch_histories.id = (?)", latest).
		Find(&watches).Error
	if err != nil {
		return nil, err
	}

	for i := range watches {
		result[watches[i].IPAddress] = &watches[i]
	}
	return result, nil
}

type ipCount struct {
	IPAddress string
	Count     int64
}

// CountByIP 每个 IP 的观看记录数
func (r *WatchRepository) CountByIP(ctx context.Context, ips []string) (map[string]int64, error) {
	result := make(map[string]int64, len(ips))
	if len(ips) == 0 {
		return result, nil
	}

	var rows []ipCount
	err := r.db.WithContext(ctx).Model(&model.WatchHistory{}).
		Select("ip_address, COUNT(id) AS count").
		Where("ip_address IN ?", ips).
		Group("ip_address").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.IPAddress] = row.Count
	}
	return result, nil
}

type movieCount struct {
	MovieID int64
	Count   int64
}

// CountByMovie 每部电影的观看记录数，movieID 非空时只统计这一部
func (r *WatchRepository) CountByMovie(ctx context.Context, movieID *int64) (map[int64]int64, error) {
	return countByMovie(r.db.WithContext(ctx).Model(&model.WatchHistory{}), movieID)
}

func countByMovie(query *gorm.DB, movieID *int64) (map[int64]int64, error) {
	if movieID != nil {
		query = query.Where("movie_id = ?", *movieID)
	}

	var rows []movieCount
	err := query.Select("movie_id, COUNT(id) AS count").Group("movie_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[int64]int64, len(rows))
	for _, row := range rows {
		result[row.MovieID] = row.Count
	}
	return result, nil
}
