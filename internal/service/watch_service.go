package service

import (
	"context"
	"errors"
	"time"

	infraKafka "film-vault/internal/infra/kafka"
	"film-vault/internal/metrics"
	"film-vault/internal/model"
	"film-vault/internal/repository"
	"film-vault/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrWatchNotFound = errors.New("watch session not found")
)

// DefaultActiveWindow 未配置时"正在观看"的判定窗口
const DefaultActiveWindow = 10 * time.Minute

type WatchService struct {
	db        *gorm.DB
	movieRepo *repository.MovieRepository
	watchRepo *repository.WatchRepository
	visitors  *VisitorService
	publisher EventPublisher
	window    time.Duration
	now       func() time.Time
}

func NewWatchService(
	db *gorm.DB,
	movieRepo *repository.MovieRepository,
	watchRepo *repository.WatchRepository,
	visitors *VisitorService,
	publisher EventPublisher,
	window time.Duration,
) *WatchService {
	if window <= 0 {
		window = DefaultActiveWindow
	}
	return &WatchService{
		db:        db,
		movieRepo: movieRepo,
		watchRepo: watchRepo,
		visitors:  visitors,
		publisher: publisher,
		window:    window,
		now:       time.Now,
	}
}

// ActiveWindow 返回在线判定窗口
func (s *WatchService) ActiveWindow() time.Duration {
	return s.window
}

// StartWatch 开始观看
// 在同一事务内：播放数加一（锁住电影行）、关闭该 (movie, ip) 上所有未结束会话（不计算时长）、
// 创建新会话、登记访客。每次开始都计为一次播放，包括快速重复开始。
func (s *WatchService) StartWatch(ctx context.Context, movieID int64, ip string, userID *int64) (*model.WatchHistory, error) {
	loc := s.visitors.resolve(ctx, ip)
	now := s.now().UTC()

	var (
		watch      *model.WatchHistory
		superseded int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		movies := s.movieRepo.WithTx(tx)
		watches := s.watchRepo.WithTx(tx)

		// 先写电影行：行锁让同一电影的并发开始排队，
		// 后到的事务在关闭旧会话时能看到先提交的会话
		if err := movies.IncrementViews(ctx, movieID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMovieNotFound
			}
			return err
		}

		closed, err := watches.CloseOpenSessions(ctx, movieID, ip, now)
		if err != nil {
			return err
		}
		superseded = closed

		watch = &model.WatchHistory{
			MovieID:   movieID,
			UserID:    userID,
			IPAddress: ip,
			StartTime: now,
		}
		if err := watches.Create(ctx, watch); err != nil {
			return err
		}

		if ip != "" {
			if _, err := s.visitors.RecordVisitTx(ctx, tx, ip, loc, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WatchSessionsStarted.Inc()
	metrics.WatchSessionsSuperseded.Add(float64(superseded))
	logger.Debug("Watch session started",
		zap.Int64("movie_id", movieID),
		zap.Int64("watch_id", watch.ID),
		zap.String("ip", ip),
		zap.Int64("superseded", superseded),
	)

	publishEvent(s.publisher, &infraKafka.MovieEvent{
		Type:       infraKafka.EventWatchStarted,
		MovieID:    movieID,
		WatchID:    watch.ID,
		UserID:     userID,
		IPAddress:  ip,
		OccurredAt: now,
	})

	return watch, nil
}

// StopWatch 结束观看，返回 HH:MM:SS 格式的时长
// 已结束的会话不做修改，直接返回原时长（被顶替关闭的会话为 00:00:00）
func (s *WatchService) StopWatch(ctx context.Context, watchID int64) (string, error) {
	watch, err := s.watchRepo.GetByID(ctx, watchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrWatchNotFound
		}
		return "", err
	}

	if watch.State() == model.SessionClosed {
		metrics.WatchSessionsStopped.WithLabelValues("already_closed").Inc()
		return watch.DurationHMS(), nil
	}

	watch.Stop(s.now().UTC())
	updated, err := s.watchRepo.CloseIfOpen(ctx, watch.ID, *watch.EndTime, *watch.Duration)
	if err != nil {
		return "", err
	}
	if !updated {
		// 并发的 stop 或 start 先一步关闭了会话，以库里的结果为准
		current, err := s.watchRepo.GetByID(ctx, watchID)
		if err != nil {
			return "", err
		}
		metrics.WatchSessionsStopped.WithLabelValues("already_closed").Inc()
		return current.DurationHMS(), nil
	}

	metrics.WatchSessionsStopped.WithLabelValues("closed").Inc()
	duration := watch.DurationHMS()

	publishEvent(s.publisher, &infraKafka.MovieEvent{
		Type:       infraKafka.EventWatchStopped,
		MovieID:    watch.MovieID,
		WatchID:    watch.ID,
		UserID:     watch.UserID,
		IPAddress:  watch.IPAddress,
		Duration:   duration,
		OccurredAt: *watch.EndTime,
	})

	return duration, nil
}

// LiveViewerCount 电影当前在线观看人数：未结束且在窗口内开始的会话数
func (s *WatchService) LiveViewerCount(ctx context.Context, movieID int64) (int64, error) {
	return s.watchRepo.CountLive(ctx, movieID, s.now().UTC().Add(-s.window))
}

// isOnline 访客最近一次会话仍在进行且在窗口内开始
func (s *WatchService) isOnline(latest *model.WatchHistory) bool {
	return latest.IsLive(s.now().UTC(), s.window)
}
