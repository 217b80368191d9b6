// Package app 组装各进程共用的基础设施与服务
package app

import (
	"context"
	"time"

	"film-vault/internal/config"
	"film-vault/internal/geoip"
	"film-vault/internal/infra/database"
	infraES "film-vault/internal/infra/elasticsearch"
	infraKafka "film-vault/internal/infra/kafka"
	infraMinio "film-vault/internal/infra/minio"
	infraRedis "film-vault/internal/infra/redis"
	"film-vault/internal/model"
	"film-vault/internal/repository"
	"film-vault/internal/service"
	"film-vault/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 一个进程内的全部依赖
// 可选组件（Redis、MinIO、Kafka、Elasticsearch、GeoIP 数据库）未配置或连接失败时降级运行
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Producer *infraKafka.Producer

	Users *repository.UserRepository

	Visitors  *service.VisitorService
	Watches   *service.WatchService
	Downloads *service.DownloadService
	Reconcile *service.ReconcileService
	Analytics *service.AnalyticsService
	Comments  *service.CommentService
	Movies    *service.MovieService

	closers []func() error
}

// New 连接数据库并按配置初始化可选组件
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := database.Init(&cfg.Database); err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(model.All()...); err != nil {
		_ = database.Close()
		return nil, err
	}

	a := &App{Config: cfg, DB: database.Get()}
	a.closers = append(a.closers, database.Close)

	var (
		cache     geoip.Cache
		presigner service.ObjectPresigner
		publisher service.EventPublisher
		index     service.SearchIndex
	)

	if cfg.Redis.Enabled() {
		client, err := infraRedis.New(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, GeoIP cache disabled", zap.Error(err))
		} else {
			cache = infraRedis.NewGeoCache(client)
			a.closers = append(a.closers, client.Close)
		}
	}

	if cfg.MinIO.Enabled() {
		p, err := infraMinio.NewPresigner(&cfg.MinIO)
		if err != nil {
			logger.Warn("MinIO unavailable, s3:// downloads disabled", zap.Error(err))
		} else {
			presigner = p
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		a.Producer = infraKafka.NewProducer(&cfg.Kafka)
		publisher = a.Producer
		a.closers = append(a.closers, a.Producer.Close)
	}

	if len(cfg.Elasticsearch.Hosts) > 0 {
		client, err := infraES.NewClient(&cfg.Elasticsearch)
		if err != nil {
			logger.Warn("Elasticsearch unavailable, search will fallback to DB", zap.Error(err))
		} else {
			movieIndex := infraES.NewMovieIndex(client, cfg.Elasticsearch.MoviesIndex())
			ensureCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := movieIndex.EnsureIndex(ensureCtx); err != nil {
				logger.Warn("Elasticsearch index init failed", zap.Error(err))
			}
			cancel()
			index = movieIndex
		}
	}

	resolver := newResolver(&cfg.GeoIP, cache)
	if closer, ok := resolver.reader.(interface{ Close() error }); ok {
		a.closers = append(a.closers, closer.Close)
	}

	db := a.DB
	movieRepo := repository.NewMovieRepository(db)
	watchRepo := repository.NewWatchRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)
	downloadRepo := repository.NewDownloadRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	a.Users = repository.NewUserRepository(db)

	a.Visitors = service.NewVisitorService(visitorRepo, resolver.Resolver)
	a.Watches = service.NewWatchService(db, movieRepo, watchRepo, a.Visitors, publisher, cfg.Presence.ActiveWindowDuration())
	a.Downloads = service.NewDownloadService(db, movieRepo, downloadRepo, presigner, publisher)
	a.Reconcile = service.NewReconcileService(movieRepo, watchRepo, downloadRepo)
	a.Analytics = service.NewAnalyticsService(visitorRepo, watchRepo, a.Watches, resolver.Resolver, cfg.App.Location())
	a.Comments = service.NewCommentService(commentRepo, movieRepo, a.Watches)
	a.Movies = service.NewMovieService(db, movieRepo, commentRepo, a.Watches, a.Comments, index, publisher)

	return a, nil
}

// ReconcileRequester Kafka 未配置时返回 nil
func (a *App) ReconcileRequester() service.ReconcileRequester {
	if a.Producer == nil {
		return nil
	}
	return a.Producer
}

// Close 按初始化的逆序释放资源
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
}

type geoResolver struct {
	*geoip.Resolver
	reader geoip.CityLookuper
}

// newResolver 数据库文件缺失时只告警一次，之后所有查询返回空结果
func newResolver(cfg *config.GeoIPConfig, cache geoip.Cache) geoResolver {
	var reader geoip.CityLookuper
	if r, err := geoip.Open(cfg.Path); err != nil {
		logger.Warn("GeoIP database not loaded, geo data will be empty",
			zap.String("path", cfg.Path),
			zap.Error(err),
		)
	} else {
		reader = r
		logger.Info("GeoIP database loaded", zap.String("path", cfg.Path))
	}

	return geoResolver{
		Resolver: geoip.NewResolver(reader, geoip.Options{
			Timeout:        cfg.TimeoutDuration(),
			CacheTTL:       cfg.CacheTTLDuration(),
			BreakerTimeout: cfg.BreakerTimeoutDuration(),
			Cache:          cache,
		}),
		reader: reader,
	}
}
