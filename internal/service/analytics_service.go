package service

import (
	"context"
	"time"

	"film-vault/internal/api/dto"
	"film-vault/internal/model"
	"film-vault/internal/repository"
)

const (
	chartDays       = 7
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

type AnalyticsService struct {
	visitorRepo *repository.VisitorRepository
	watchRepo   *repository.WatchRepository
	watches     *WatchService
	resolver    GeoResolver
	loc         *time.Location
	now         func() time.Time
}

func NewAnalyticsService(
	visitorRepo *repository.VisitorRepository,
	watchRepo *repository.WatchRepository,
	watches *WatchService,
	resolver GeoResolver,
	loc *time.Location,
) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{
		visitorRepo: visitorRepo,
		watchRepo:   watchRepo,
		watches:     watches,
		resolver:    resolver,
		loc:         loc,
		now:         time.Now,
	}
}

// visitorActivity 按 IP 软关联出的观看信息
type visitorActivity struct {
	latest map[string]*model.WatchHistory
	counts map[string]int64
}

func (s *AnalyticsService) loadActivity(ctx context.Context, visitors []model.Visitor) (*visitorActivity, error) {
	ips := make([]string, 0, len(visitors))
	for _, v := range visitors {
		ips = append(ips, v.IPAddress)
	}

	latest, err := s.watchRepo.LatestByIPs(ctx, ips)
	if err != nil {
		return nil, err
	}
	counts, err := s.watchRepo.CountByIP(ctx, ips)
	if err != nil {
		return nil, err
	}
	return &visitorActivity{latest: latest, counts: counts}, nil
}

// VisitorStats 访客列表，最近访问的在前
// 没有观看记录的访客永远不在线，last_movie 显示为 "-"
func (s *AnalyticsService) VisitorStats(ctx context.Context) (*dto.VisitorStatsData, error) {
	visitors, err := s.visitorRepo.ListByLastVisit(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := s.loadActivity(ctx, visitors)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.VisitorStatsRow, 0, len(visitors))
	for _, v := range visitors {
		latest := activity.latest[v.IPAddress]
		lastMovie := "-"
		if latest != nil && latest.Movie != nil {
			lastMovie = latest.Movie.Name
		}
		lastVisit := ""
		if !v.LastVisit.IsZero() {
			lastVisit = v.LastVisit.In(s.loc).Format(timestampLayout)
		}

		rows = append(rows, dto.VisitorStatsRow{
			ID:         v.ID,
			Name:       v.IPAddress,
			IP:         v.IPAddress,
			Country:    v.Country,
			City:       v.City,
			Online:     s.watches.isOnline(latest),
			VisitCount: v.VisitCount,
			WatchCount: activity.counts[v.IPAddress],
			LastVisit:  lastVisit,
			LastMovie:  lastMovie,
		})
	}

	return &dto.VisitorStatsData{Visitors: rows}, nil
}

// VisitorChart 最近 7 天（含今天）每天 last_visit 落在当天的访客数，从旧到新，没有访客的日期为 0
// 统计的是"最近一次访问在当天"的访客，不是每日访问量
func (s *AnalyticsService) VisitorChart(ctx context.Context) ([]dto.ChartPoint, error) {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	points := make([]dto.ChartPoint, 0, chartDays)
	for i := chartDays - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)

		count, err := s.visitorRepo.CountLastVisitBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		points = append(points, dto.ChartPoint{Date: start.Format(dateLayout), Count: count})
	}
	return points, nil
}

// VisitorCountries 按国家分组的访客数，多的在前
func (s *AnalyticsService) VisitorCountries(ctx context.Context) ([]dto.CountryPoint, error) {
	rows, err := s.visitorRepo.CountByCountry(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]dto.CountryPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, dto.CountryPoint{Country: r.Country, Count: r.Count})
	}
	return points, nil
}

// VisitorMap 地图数据，地理字段优先使用库中记录，缺失的字段才重新查询
func (s *AnalyticsService) VisitorMap(ctx context.Context) ([]dto.MapPoint, error) {
	visitors, err := s.visitorRepo.ListByLastVisit(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := s.loadActivity(ctx, visitors)
	if err != nil {
		return nil, err
	}

	points := make([]dto.MapPoint, 0, len(visitors))
	for _, v := range visitors {
		point := dto.MapPoint{
			IP:         v.IPAddress,
			Country:    v.Country,
			City:       v.City,
			Lat:        v.Lat,
			Lng:        v.Lng,
			Online:     s.watches.isOnline(activity.latest[v.IPAddress]),
			VisitCount: v.VisitCount,
			WatchCount: activity.counts[v.IPAddress],
		}

		if s.resolver != nil && (point.Country == "" || point.City == "" || point.Lat == 0 || point.Lng == 0) {
			fresh := s.resolver.Resolve(ctx, v.IPAddress)
			if point.Country == "" {
				point.Country = fresh.Country
			}
			if point.City == "" {
				point.City = fresh.City
			}
			if point.Lat == 0 {
				point.Lat = fresh.Lat
			}
			if point.Lng == 0 {
				point.Lng = fresh.Lng
			}
		}

		points = append(points, point)
	}
	return points, nil
}
