package geoip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"film-vault/internal/metrics"
	"film-vault/pkg/logger"

	"github.com/oschwald/geoip2-golang"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

var errLookupTimeout = errors.New("geoip lookup timed out")

// Location 地理位置。查询成功时 Country 一定非空，否则四个字段全部为零值
type Location struct {
	Country string  `json:"country"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// IsEmpty 是否没有地理数据
func (l Location) IsEmpty() bool {
	return l == Location{}
}

// CityLookuper mmdb 查询接口，*geoip2.Reader 满足该接口
type CityLookuper interface {
	City(ip net.IP) (*geoip2.City, error)
}

// Cache 查询结果缓存，只缓存非空结果
type Cache interface {
	Get(ctx context.Context, ip string) (Location, bool, error)
	Set(ctx context.Context, ip string, loc Location, ttl time.Duration) error
}

// Options Resolver 配置
type Options struct {
	Timeout        time.Duration
	CacheTTL       time.Duration
	BreakerTimeout time.Duration
	Cache          Cache
}

// Resolver 尽力而为的 IP 地理位置解析器，任何失败都返回空 Location，不返回错误
type Resolver struct {
	reader  CityLookuper
	cache   Cache
	timeout time.Duration
	ttl     time.Duration
	cb      *gobreaker.CircuitBreaker[Location]
}

// Open 打开 MaxMind mmdb 文件
func Open(path string) (*geoip2.Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("geoip database unavailable: %w", err)
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database: %w", err)
	}
	return reader, nil
}

// NewResolver 创建解析器；reader 为 nil 时所有查询都返回空结果
func NewResolver(reader CityLookuper, opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = 500 * time.Millisecond
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = time.Minute
	}

	cb := gobreaker.NewCircuitBreaker[Location](gobreaker.Settings{
		Name:        "geoip",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("GeoIP circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.GeoIPBreakerState.Set(float64(to))
		},
	})

	return &Resolver{
		reader:  reader,
		cache:   opts.Cache,
		timeout: opts.Timeout,
		ttl:     opts.CacheTTL,
		cb:      cb,
	}
}

// Resolve 查询 IP 的地理位置
// 非公网地址直接返回空结果，不访问缓存和 mmdb
func (r *Resolver) Resolve(ctx context.Context, ip string) Location {
	ip = NormalizeIP(ip)
	if !IsPublicIP(ip) {
		metrics.GeoIPLookups.WithLabelValues("skipped").Inc()
		return Location{}
	}
	if r == nil || r.reader == nil {
		metrics.GeoIPLookups.WithLabelValues("miss").Inc()
		return Location{}
	}

	if r.cache != nil {
		if loc, ok, err := r.cache.Get(ctx, ip); err != nil {
			logger.Debug("GeoIP cache get failed", zap.String("ip", ip), zap.Error(err))
		} else if ok && !loc.IsEmpty() {
			metrics.GeoIPLookups.WithLabelValues("cache_hit").Inc()
			return loc
		}
	}

	loc, err := r.cb.Execute(func() (Location, error) {
		return r.lookup(ctx, ip)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.GeoIPLookups.WithLabelValues("breaker_open").Inc()
		return Location{}
	case errors.Is(err, errLookupTimeout):
		metrics.GeoIPLookups.WithLabelValues("timeout").Inc()
		logger.Warn("GeoIP lookup timed out", zap.String("ip", ip), zap.Duration("timeout", r.timeout))
		return Location{}
	case err != nil:
		metrics.GeoIPLookups.WithLabelValues("error").Inc()
		logger.Debug("GeoIP lookup failed", zap.String("ip", ip), zap.Error(err))
		return Location{}
	case loc.IsEmpty():
		metrics.GeoIPLookups.WithLabelValues("miss").Inc()
		return Location{}
	}

	metrics.GeoIPLookups.WithLabelValues("hit").Inc()
	if r.cache != nil {
		if err := r.cache.Set(ctx, ip, loc, r.ttl); err != nil {
			logger.Debug("GeoIP cache set failed", zap.String("ip", ip), zap.Error(err))
		}
	}
	return loc
}

type lookupResult struct {
	loc Location
	err error
}

// lookup 在超时时间内完成一次 mmdb 查询；reader panic 也按失败处理
func (r *Resolver) lookup(ctx context.Context, ip string) (Location, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan lookupResult, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- lookupResult{err: fmt.Errorf("geoip reader panic: %v", p)}
			}
		}()
		record, err := r.reader.City(net.ParseIP(ip))
		if err != nil {
			done <- lookupResult{err: err}
			return
		}
		done <- lookupResult{loc: toLocation(record)}
	}()

	select {
	case res := <-done:
		return res.loc, res.err
	case <-ctx.Done():
		return Location{}, errLookupTimeout
	}
}

// toLocation 没有国家名时视为未命中，不返回部分字段
func toLocation(record *geoip2.City) Location {
	if record == nil {
		return Location{}
	}
	country := record.Country.Names["en"]
	if country == "" {
		return Location{}
	}
	return Location{
		Country: country,
		City:    record.City.Names["en"],
		Lat:     record.Location.Latitude,
		Lng:     record.Location.Longitude,
	}
}
