package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"film-vault/internal/geoip"
	infraKafka "film-vault/internal/infra/kafka"
	"film-vault/internal/repository"
	"film-vault/internal/testutil"

	"gorm.io/gorm"
)

type fakeResolver struct {
	mu    sync.Mutex
	byIP  map[string]geoip.Location
	calls map[string]int
}

func newFakeResolver(byIP map[string]geoip.Location) *fakeResolver {
	if byIP == nil {
		byIP = map[string]geoip.Location{}
	}
	return &fakeResolver{byIP: byIP, calls: map[string]int{}}
}

func (f *fakeResolver) Resolve(_ context.Context, ip string) geoip.Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[ip]++
	return f.byIP[ip]
}

func (f *fakeResolver) Calls(ip string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[ip]
}

type fakePublisher struct {
	mu     sync.Mutex
	events []infraKafka.MovieEvent
	err    error
}

func (f *fakePublisher) PublishMovieEvent(_ context.Context, event *infraKafka.MovieEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, *event)
	return nil
}

func (f *fakePublisher) Types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.Type)
	}
	return types
}

// testEnv 基于内存 sqlite 组装的全部服务
type testEnv struct {
	db        *gorm.DB
	resolver  *fakeResolver
	publisher *fakePublisher

	movieRepo    *repository.MovieRepository
	watchRepo    *repository.WatchRepository
	visitorRepo  *repository.VisitorRepository
	downloadRepo *repository.DownloadRepository
	commentRepo  *repository.CommentRepository

	visitors  *VisitorService
	watches   *WatchService
	downloads *DownloadService
	reconcile *ReconcileService
	analytics *AnalyticsService
	comments  *CommentService
	movies    *MovieService
}

func newTestEnv(t *testing.T, geo map[string]geoip.Location) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	env := &testEnv{
		db:           db,
		resolver:     newFakeResolver(geo),
		publisher:    &fakePublisher{},
		movieRepo:    repository.NewMovieRepository(db),
		watchRepo:    repository.NewWatchRepository(db),
		visitorRepo:  repository.NewVisitorRepository(db),
		downloadRepo: repository.NewDownloadRepository(db),
		commentRepo:  repository.NewCommentRepository(db),
	}

	env.visitors = NewVisitorService(env.visitorRepo, env.resolver)
	env.watches = NewWatchService(db, env.movieRepo, env.watchRepo, env.visitors, env.publisher, 10*time.Minute)
	env.downloads = NewDownloadService(db, env.movieRepo, env.downloadRepo, nil, env.publisher)
	env.reconcile = NewReconcileService(env.movieRepo, env.watchRepo, env.downloadRepo)
	env.analytics = NewAnalyticsService(env.visitorRepo, env.watchRepo, env.watches, env.resolver, time.UTC)
	env.comments = NewCommentService(env.commentRepo, env.movieRepo, env.watches)
	env.movies = NewMovieService(db, env.movieRepo, env.commentRepo, env.watches, env.comments, nil, env.publisher)
	return env
}
