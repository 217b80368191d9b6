package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"film-vault/internal/app"
	"film-vault/internal/config"
	infraKafka "film-vault/internal/infra/kafka"
	"film-vault/internal/service"
	"film-vault/pkg/logger"

	"go.uber.org/zap"
)

// worker 消费 Kafka：执行异步对账请求，并在电影数据变化后刷新搜索索引
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Fatal("Kafka brokers are not configured, worker has nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to init application", zap.Error(err))
	}
	defer a.Close()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		infraKafka.StartReconcileConsumer(ctx,
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic(infraKafka.TopicStatsReconcile),
			"film-vault-reconcile",
			func(ctx context.Context, req *infraKafka.ReconcileRequest) error {
				report, err := a.Reconcile.Reconcile(ctx, service.ReconcileOptions{
					DryRun:  req.DryRun,
					MovieID: req.MovieID,
				})
				if err != nil {
					return err
				}
				logger.Info("Async reconcile finished",
					zap.Int64("requested_by", req.RequestedBy),
					zap.Int("changed", report.Changed),
					zap.Int("failed", len(report.Failures)),
				)
				return nil
			},
		)
	}()

	go func() {
		defer wg.Done()
		infraKafka.StartMovieEventConsumer(ctx,
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic(infraKafka.TopicMovieEvents),
			"film-vault-search-sync",
			func(ctx context.Context, event *infraKafka.MovieEvent) error {
				// 播放数和下载数影响搜索排序，开始观看与下载都需要刷新文档
				switch event.Type {
				case infraKafka.EventWatchStarted, infraKafka.EventDownloaded, infraKafka.EventMovieCreated:
				default:
					return nil
				}
				err := a.Movies.SyncMovie(ctx, event.MovieID)
				if errors.Is(err, service.ErrMovieNotFound) {
					logger.Debug("Skip sync for deleted movie", zap.Int64("movie_id", event.MovieID))
					return nil
				}
				return err
			},
		)
	}()

	logger.Info("Worker started",
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	wg.Wait()
	logger.Info("Worker stopped")
}
