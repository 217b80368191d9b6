package repository

import (
	"context"
	"testing"
	"time"

	"film-vault/internal/model"
	"film-vault/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestWatchCloseIfOpenOnlyOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWatchRepository(db)
	ctx := context.Background()
	movie := testutil.CreateMovie(t, db, "Hotel Rwanda")

	start := time.Now().UTC().Add(-time.Minute)
	watch := &model.WatchHistory{MovieID: movie.ID, IPAddress: "1.2.3.4", StartTime: start}
	require.NoError(t, repo.Create(ctx, watch))

	ok, err := repo.CloseIfOpen(ctx, watch.ID, start.Add(time.Minute), time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.CloseIfOpen(ctx, watch.ID, start.Add(time.Hour), time.Hour)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := repo.GetByID(ctx, watch.ID)
	require.NoError(t, err)
	require.Equal(t, model.SessionClosed, got.State())
	require.Equal(t, time.Minute, *got.Duration)
	require.WithinDuration(t, start.Add(time.Minute), *got.EndTime, time.Millisecond)
}

func TestWatchCountLiveAndLatest(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWatchRepository(db)
	ctx := context.Background()
	m1 := testutil.CreateMovie(t, db, "First")
	m2 := testutil.CreateMovie(t, db, "Second")

	now := time.Now().UTC()
	ended := now.Add(-time.Minute)
	rows := []*model.WatchHistory{
		{MovieID: m1.ID, IPAddress: "1.1.1.1", StartTime: now.Add(-2 * time.Minute)},
		{MovieID: m1.ID, IPAddress: "2.2.2.2", StartTime: now.Add(-30 * time.Minute)},
		{MovieID: m1.ID, IPAddress: "3.3.3.3", StartTime: now.Add(-3 * time.Minute), EndTime: &ended},
		{MovieID: m2.ID, IPAddress: "1.1.1.1", StartTime: now.Add(-20 * time.Minute)},
	}
	for _, w := range rows {
		require.NoError(t, repo.Create(ctx, w))
	}

	live, err := repo.CountLive(ctx, m1.ID, now.Add(-10*time.Minute))
	require.NoError(t, err)
	require.EqualValues(t, 1, live)

	latest, err := repo.LatestByIPs(ctx, []string{"1.1.1.1", "3.3.3.3", "9.9.9.9"})
	require.NoError(t, err)
	require.Len(t, latest, 2)
	require.Equal(t, m1.ID, latest["1.1.1.1"].MovieID)
	require.Equal(t, "First", latest["1.1.1.1"].Movie.Name)
	require.Equal(t, model.SessionClosed, latest["3.3.3.3"].State())

	counts, err := repo.CountByIP(ctx, []string{"1.1.1.1", "2.2.2.2", "9.9.9.9"})
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"1.1.1.1": 2, "2.2.2.2": 1}, counts)

	byMovie, err := repo.CountByMovie(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{m1.ID: 3, m2.ID: 1}, byMovie)

	single, err := repo.CountByMovie(ctx, &m2.ID)
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{m2.ID: 1}, single)

	closed, err := repo.CloseOpenSessions(ctx, m1.ID, "1.1.1.1", now)
	require.NoError(t, err)
	require.EqualValues(t, 1, closed)
	open, err := repo.CountOpen(ctx, m1.ID, "1.1.1.1")
	require.NoError(t, err)
	require.Zero(t, open)
}

// 在线判定只看 start_time 与 end_time，会话表不保留心跳列
func TestWatchHistorySchemaHasNoHeartbeatColumn(t *testing.T) {
	db := testutil.NewDB(t)

	require.True(t, db.Migrator().HasColumn(&model.WatchHistory{}, "start_time"))
	require.True(t, db.Migrator().HasColumn(&model.WatchHistory{}, "end_time"))
	require.False(t, db.Migrator().HasColumn(&model.WatchHistory{}, "last_seen"))
	require.False(t, db.Migrator().HasIndex(&model.WatchHistory{}, "idx_watch_last_seen"))
}
