package service

import (
	"context"
	"time"

	"film-vault/internal/geoip"
	"film-vault/internal/model"
	"film-vault/internal/repository"

	"gorm.io/gorm"
)

// GeoResolver IP 地理位置解析，失败时返回空 Location
type GeoResolver interface {
	Resolve(ctx context.Context, ip string) geoip.Location
}

type VisitorService struct {
	visitorRepo *repository.VisitorRepository
	resolver    GeoResolver
	now         func() time.Time
}

func NewVisitorService(visitorRepo *repository.VisitorRepository, resolver GeoResolver) *VisitorService {
	return &VisitorService{visitorRepo: visitorRepo, resolver: resolver, now: time.Now}
}

// RecordVisit 登记一次访问
// 地理位置在事务外解析，慢查询不会占住数据库连接
func (s *VisitorService) RecordVisit(ctx context.Context, ip string) (*model.Visitor, error) {
	loc := s.resolve(ctx, ip)
	return s.upsert(ctx, s.visitorRepo, ip, loc, s.now())
}

// RecordVisitTx 在调用方的事务内登记访问，loc 需提前解析好
func (s *VisitorService) RecordVisitTx(ctx context.Context, tx *gorm.DB, ip string, loc geoip.Location, at time.Time) (*model.Visitor, error) {
	return s.upsert(ctx, s.visitorRepo.WithTx(tx), ip, loc, at)
}

func (s *VisitorService) resolve(ctx context.Context, ip string) geoip.Location {
	if s.resolver == nil {
		return geoip.Location{}
	}
	return s.resolver.Resolve(ctx, ip)
}

func (s *VisitorService) upsert(ctx context.Context, repo *repository.VisitorRepository, ip string, loc geoip.Location, at time.Time) (*model.Visitor, error) {
	return repo.Upsert(ctx, ip, loc.Country, loc.City, loc.Lat, loc.Lng, at)
}
