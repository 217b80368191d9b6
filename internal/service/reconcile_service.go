package service

import (
	"context"
	"fmt"

	"film-vault/internal/metrics"
	"film-vault/internal/repository"
	"film-vault/pkg/logger"

	"go.uber.org/zap"
)

// ReconcileOptions 对账参数
type ReconcileOptions struct {
	DryRun  bool
	MovieID *int64
}

// ReconcileChange 一部电影的计数差异
type ReconcileChange struct {
	MovieID      int64  `json:"movie_id"`
	Name         string `json:"name"`
	OldViews     int64  `json:"old_views"`
	NewViews     int64  `json:"new_views"`
	OldDownloads int64  `json:"old_downloads"`
	NewDownloads int64  `json:"new_downloads"`
}

func (c ReconcileChange) String() string {
	return fmt.Sprintf("Movie %d '%s': views %d -> %d, downloads %d -> %d",
		c.MovieID, c.Name, c.OldViews, c.NewViews, c.OldDownloads, c.NewDownloads)
}

// ReconcileFailure 单部电影更新失败
type ReconcileFailure struct {
	MovieID int64  `json:"movie_id"`
	Error   string `json:"error"`
}

// ReconcileReport 对账结果
type ReconcileReport struct {
	DryRun   bool               `json:"dry_run"`
	Scanned  int                `json:"scanned"`
	Changed  int                `json:"changed"`
	Changes  []ReconcileChange  `json:"changes"`
	Failures []ReconcileFailure `json:"failures"`
}

type ReconcileService struct {
	movieRepo    *repository.MovieRepository
	watchRepo    *repository.WatchRepository
	downloadRepo *repository.DownloadRepository
}

func NewReconcileService(
	movieRepo *repository.MovieRepository,
	watchRepo *repository.WatchRepository,
	downloadRepo *repository.DownloadRepository,
) *ReconcileService {
	return &ReconcileService{movieRepo: movieRepo, watchRepo: watchRepo, downloadRepo: downloadRepo}
}

// Reconcile 按观看/下载记录重新计算 total_views 与 download_count
// 单部电影写入失败记入 Failures 并继续；DryRun 只报告差异不写库
func (s *ReconcileService) Reconcile(ctx context.Context, opts ReconcileOptions) (*ReconcileReport, error) {
	watchCounts, err := s.watchRepo.CountByMovie(ctx, opts.MovieID)
	if err != nil {
		return nil, fmt.Errorf("count watch history: %w", err)
	}
	downloadCounts, err := s.downloadRepo.CountByMovie(ctx, opts.MovieID)
	if err != nil {
		return nil, fmt.Errorf("count download history: %w", err)
	}

	movies, err := s.movieRepo.ListForReconcile(ctx, opts.MovieID)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	if opts.MovieID != nil && len(movies) == 0 {
		return nil, ErrMovieNotFound
	}

	report := &ReconcileReport{
		DryRun:   opts.DryRun,
		Scanned:  len(movies),
		Changes:  []ReconcileChange{},
		Failures: []ReconcileFailure{},
	}

	for _, m := range movies {
		change := ReconcileChange{
			MovieID:      m.ID,
			Name:         m.Name,
			OldViews:     m.TotalViews,
			NewViews:     watchCounts[m.ID],
			OldDownloads: m.DownloadCount,
			NewDownloads: downloadCounts[m.ID],
		}
		if change.OldViews == change.NewViews && change.OldDownloads == change.NewDownloads {
			continue
		}

		if !opts.DryRun {
			if err := s.movieRepo.SetCounters(ctx, m.ID, change.NewViews, change.NewDownloads); err != nil {
				logger.Error("Reconcile movie failed", zap.Int64("movie_id", m.ID), zap.Error(err))
				report.Failures = append(report.Failures, ReconcileFailure{MovieID: m.ID, Error: err.Error()})
				continue
			}
		}

		report.Changes = append(report.Changes, change)
		report.Changed++
		logger.Info("Reconcile movie counters",
			zap.Bool("dry_run", opts.DryRun),
			zap.String("change", change.String()),
		)
	}

	metrics.RecordReconcile(report.Changed, len(report.Failures), opts.DryRun)
	logger.Info("Reconcile completed",
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("scanned", report.Scanned),
		zap.Int("changed", report.Changed),
		zap.Int("failed", len(report.Failures)),
	)

	return report, nil
}
