package service

import (
	"context"
	"time"

	infraKafka "film-vault/internal/infra/kafka"
	"film-vault/internal/metrics"
	"film-vault/pkg/logger"

	"go.uber.org/zap"
)

// EventPublisher 电影事件发布，由 Kafka 生产者实现
type EventPublisher interface {
	PublishMovieEvent(ctx context.Context, event *infraKafka.MovieEvent) error
}

// ReconcileRequester 投递异步对账请求
type ReconcileRequester interface {
	RequestReconcile(ctx context.Context, req *infraKafka.ReconcileRequest) error
}

// publishEvent 尽力而为地发布事件，失败只记日志
// 事件在事务提交之后发送，与请求的取消解耦
func publishEvent(publisher EventPublisher, event *infraKafka.MovieEvent) {
	if publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := publisher.PublishMovieEvent(ctx, event); err != nil {
		metrics.EventsPublished.WithLabelValues(event.Type, "error").Inc()
		logger.Warn("Failed to publish movie event",
			zap.String("type", event.Type),
			zap.Int64("movie_id", event.MovieID),
			zap.Error(err),
		)
		return
	}
	metrics.EventsPublished.WithLabelValues(event.Type, "ok").Inc()
}
