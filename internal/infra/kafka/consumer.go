package kafka

import (
	"context"
	"encoding/json"
	"time"

	"film-vault/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MovieEventHandler 处理电影事件的回调函数
type MovieEventHandler func(ctx context.Context, event *MovieEvent) error

// ReconcileHandler 处理对账请求的回调函数
type ReconcileHandler func(ctx context.Context, req *ReconcileRequest) error

// StartMovieEventConsumer 启动电影事件消费者（阻塞，需在 goroutine 中运行）
func StartMovieEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handler MovieEventHandler) {
	consume(ctx, brokers, topic, groupID, func(ctx context.Context, msg kafka.Message) {
		var event MovieEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("Failed to unmarshal movie event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			return
		}

		if err := handler(ctx, &event); err != nil {
			logger.Error("Failed to handle movie event",
				zap.String("type", event.Type),
				zap.Int64("movie_id", event.MovieID),
				zap.Error(err),
			)
		}
	})
}

// StartReconcileConsumer 启动对账请求消费者（阻塞，需在 goroutine 中运行）
func StartReconcileConsumer(ctx context.Context, brokers []string, topic, groupID string, handler ReconcileHandler) {
	consume(ctx, brokers, topic, groupID, func(ctx context.Context, msg kafka.Message) {
		var req ReconcileRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			logger.Error("Failed to unmarshal reconcile request",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			return
		}

		logger.Info("Received reconcile request",
			zap.Bool("dry_run", req.DryRun),
			zap.Any("movie_id", req.MovieID),
		)

		if err := handler(ctx, &req); err != nil {
			logger.Error("Failed to handle reconcile request", zap.Error(err))
		}
	})
}

// consume ctx 取消后退出
func consume(ctx context.Context, brokers []string, topic, groupID string, handle func(context.Context, kafka.Message)) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka consumer stopped", zap.String("topic", topic))
	}()

	logger.Info("Kafka consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		handle(ctx, msg)
	}
}
