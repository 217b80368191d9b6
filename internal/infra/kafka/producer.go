package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"film-vault/internal/config"
	"film-vault/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// topic 逻辑名，实际 topic 由 kafka.topics 配置映射
const (
	TopicMovieEvents    = "movie_events"
	TopicStatsReconcile = "stats_reconcile"
)

// 电影事件类型
const (
	EventWatchStarted = "watch_started"
	EventWatchStopped = "watch_stopped"
	EventDownloaded   = "downloaded"
	EventMovieCreated = "movie_created"
)

// MovieEvent 电影相关事件消息体
type MovieEvent struct {
	Type       string    `json:"type"`
	MovieID    int64     `json:"movie_id"`
	WatchID    int64     `json:"watch_id,omitempty"`
	UserID     *int64    `json:"user_id,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	Duration   string    `json:"duration,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReconcileRequest 计数对账请求消息体
type ReconcileRequest struct {
	MovieID     *int64    `json:"movie_id,omitempty"`
	DryRun      bool      `json:"dry_run"`
	RequestedBy int64     `json:"requested_by,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// Producer Kafka 生产者
type Producer struct {
	writer *kafka.Writer
	cfg    *config.KafkaConfig
}

// NewProducer 创建 Kafka 生产者
// 异步写入，请求路径不等待 broker 确认，失败在回调里记日志
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to deliver kafka messages",
					zap.Int("count", len(messages)),
					zap.Error(err),
				)
			}
		},
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return &Producer{writer: writer, cfg: cfg}
}

// PublishMovieEvent 发送电影事件，按电影 ID 分区保证同一电影事件有序
func (p *Producer) PublishMovieEvent(ctx context.Context, event *MovieEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	return p.send(ctx, p.cfg.Topic(TopicMovieEvents), fmt.Sprintf("movie-%d", event.MovieID), event)
}

// RequestReconcile 投递一次对账请求，由 worker 执行
func (p *Producer) RequestReconcile(ctx context.Context, req *ReconcileRequest) error {
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now().UTC()
	}
	key := "all"
	if req.MovieID != nil {
		key = fmt.Sprintf("movie-%d", *req.MovieID)
	}
	return p.send(ctx, p.cfg.Topic(TopicStatsReconcile), key, req)
}

func (p *Producer) send(ctx context.Context, topic, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal kafka message: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send kafka message: %w", err)
	}

	logger.Debug("Kafka message sent",
		zap.String("topic", topic),
		zap.String("key", key),
	)
	return nil
}

// Close 关闭生产者，等待异步消息发送完成
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
