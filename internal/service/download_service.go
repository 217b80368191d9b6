package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	infraKafka "film-vault/internal/infra/kafka"
	infraMinio "film-vault/internal/infra/minio"
	"film-vault/internal/metrics"
	"film-vault/internal/model"
	"film-vault/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrNoDownloadURL      = errors.New("no download link available for this movie")
	ErrStorageUnavailable = errors.New("object storage is not configured")
)

// ObjectPresigner 为 s3://bucket/key 形式的下载地址生成限时链接
type ObjectPresigner interface {
	PresignedGetURL(ctx context.Context, bucket, object string) (string, error)
}

type DownloadService struct {
	db           *gorm.DB
	movieRepo    *repository.MovieRepository
	downloadRepo *repository.DownloadRepository
	presigner    ObjectPresigner
	publisher    EventPublisher
	now          func() time.Time
}

func NewDownloadService(
	db *gorm.DB,
	movieRepo *repository.MovieRepository,
	downloadRepo *repository.DownloadRepository,
	presigner ObjectPresigner,
	publisher EventPublisher,
) *DownloadService {
	return &DownloadService{
		db:           db,
		movieRepo:    movieRepo,
		downloadRepo: downloadRepo,
		presigner:    presigner,
		publisher:    publisher,
		now:          time.Now,
	}
}

// Download 记录一次下载并返回重定向地址
// 下载记录与 download_count 加一在同一事务内完成；地址解析失败时不记录
func (s *DownloadService) Download(ctx context.Context, movieID int64, ip string, userID *int64) (string, error) {
	movie, err := s.movieRepo.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrMovieNotFound
		}
		return "", err
	}
	if movie.DownloadURL == "" {
		return "", ErrNoDownloadURL
	}

	target, err := s.resolveTarget(ctx, movie.DownloadURL)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		history := &model.DownloadHistory{
			MovieID:      movie.ID,
			UserID:       userID,
			IPAddress:    ip,
			DownloadedAt: now,
		}
		if err := s.downloadRepo.WithTx(tx).Create(ctx, history); err != nil {
			return err
		}
		return s.movieRepo.WithTx(tx).IncrementDownloads(ctx, movie.ID)
	})
	if err != nil {
		return "", err
	}

	metrics.Downloads.Inc()
	publishEvent(s.publisher, &infraKafka.MovieEvent{
		Type:       infraKafka.EventDownloaded,
		MovieID:    movie.ID,
		UserID:     userID,
		IPAddress:  ip,
		OccurredAt: now,
	})

	return target, nil
}

func (s *DownloadService) resolveTarget(ctx context.Context, raw string) (string, error) {
	bucket, object, ok := infraMinio.ParseObjectURL(raw)
	if !ok {
		return raw, nil
	}
	if s.presigner == nil {
		return "", ErrStorageUnavailable
	}
	target, err := s.presigner.PresignedGetURL(ctx, bucket, object)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", raw, err)
	}
	return target, nil
}
