package repository

import (
	"context"
	"time"

	"film-vault/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VisitorRepository struct {
	db *gorm.DB
}

func NewVisitorRepository(db *gorm.DB) *VisitorRepository {
	return &VisitorRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *VisitorRepository) WithTx(tx *gorm.DB) *VisitorRepository {
	return &VisitorRepository{db: tx}
}

// Upsert 以单条 INSERT ... ON CONFLICT 语句登记一次访问：
// 新 IP 插入 visit_count=1；已有 IP 累加 visit_count、刷新 last_visit，
// 地理字段只在新值非空时覆盖，保留最后一次有效的地理数据。
func (r *VisitorRepository) Upsert(ctx context.Context, ip string, country, city string, lat, lng float64, at time.Time) (*model.Visitor, error) {
	at = at.UTC()
	candidate := &model.Visitor{
		IPAddress:  ip,
		Country:    country,
		City:       city,
		Lat:        lat,
		Lng:        lng,
		FirstVisit: at,
		LastVisit:  at,
		VisitCount: 1,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ip_address"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"visit_count": gorm.Expr("visitors.visit_count + 1"),
			"last_visit":  gorm.Expr("excluded.last_visit"),
			"country":     gorm.Expr("CASE WHEN excluded.country <> '' THEN excluded.country ELSE visitors.country END"),
			"city":        gorm.Expr("CASE WHEN excluded.city <> '' THEN excluded.city ELSE visitors.city END"),
			"lat":         gorm.Expr("CASE WHEN excluded.lat <> 0 THEN excluded.lat ELSE visitors.lat END"),
			"lng":         gorm.Expr("CASE WHEN excluded.lng <> 0 THEN excluded.lng ELSE visitors.lng END"),
		}),
	}).Create(candidate).Error
	if err != nil {
		return nil, err
	}

	return r.GetByIP(ctx, ip)
}

func (r *VisitorRepository) GetByIP(ctx context.Context, ip string) (*model.Visitor, error) {
	var visitor model.Visitor
	err := r.db.WithContext(ctx).Where("ip_address = ?", ip).First(&visitor).Error
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

// ListByLastVisit 全部访客，最近访问的在前
func (r *VisitorRepository) ListByLastVisit(ctx context.Context) ([]model.Visitor, error) {
	var visitors []model.Visitor
	err := r.db.WithContext(ctx).Order("last_visit DESC").Order("id DESC").Find(&visitors).Error
	return visitors, err
}

// CountLastVisitBetween 统计 last_visit 落在 [start, end) 的访客
func (r *VisitorRepository) CountLastVisitBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Visitor{}).
		Where("last_visit >= ? AND last_visit < ?", start.UTC(), end.UTC()).
		Count(&count).Error
	return count, err
}

// CountryCount 国家分组统计行
type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

// CountByCountry 按国家分组计数，数量多的在前
func (r *VisitorRepository) CountByCountry(ctx context.Context) ([]CountryCount, error) {
	var rows []CountryCount
	err := r.db.WithContext(ctx).Model(&model.Visitor{}).
		Select("country, COUNT(id) AS count").
		Group("country").
		Order("count DESC").Order("country ASC").
		Scan(&rows).Error
	return rows, err
}
