package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchHistoryStateMachine(t *testing.T) {
	var none *WatchHistory
	require.Equal(t, SessionNone, none.State())
	require.Equal(t, "none", none.State().String())

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	w := &WatchHistory{StartTime: start}
	require.Equal(t, SessionOpen, w.State())

	require.True(t, w.Stop(start.Add(90*time.Minute+5*time.Second)))
	require.Equal(t, SessionClosed, w.State())
	require.Equal(t, "01:30:05", w.DurationHMS())

	// 再次 Stop 不改变结束时间与时长
	end := *w.EndTime
	require.False(t, w.Stop(start.Add(5*time.Hour)))
	require.Equal(t, end, *w.EndTime)
	require.Equal(t, "01:30:05", w.DurationHMS())
}

func TestWatchHistoryStopClampsClockSkew(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	w := &WatchHistory{StartTime: start}
	require.True(t, w.Stop(start.Add(-time.Second)))
	require.Equal(t, "00:00:00", w.DurationHMS())
	require.False(t, w.EndTime.Before(w.StartTime))
}

func TestWatchHistorySupersededHasNoDuration(t *testing.T) {
	end := time.Now()
	w := &WatchHistory{StartTime: end.Add(-time.Minute), EndTime: &end}
	require.Equal(t, SessionClosed, w.State())
	require.Nil(t, w.Duration)
	require.Equal(t, "00:00:00", w.DurationHMS())
}

func TestWatchHistoryIsLive(t *testing.T) {
	now := time.Now()
	window := 10 * time.Minute

	fresh := &WatchHistory{StartTime: now.Add(-time.Minute)}
	require.True(t, fresh.IsLive(now, window))

	stale := &WatchHistory{StartTime: now.Add(-11 * time.Minute)}
	require.False(t, stale.IsLive(now, window))
	require.Equal(t, SessionOpen, stale.State())

	closed := &WatchHistory{StartTime: now.Add(-time.Minute)}
	closed.Stop(now)
	require.False(t, closed.IsLive(now, window))

	var none *WatchHistory
	require.False(t, none.IsLive(now, window))
}

func TestCommentDisplayName(t *testing.T) {
	require.Equal(t, "alice", (&Comment{User: &User{UserName: "alice"}, GuestName: "x"}).DisplayName())
	require.Equal(t, "bob", (&Comment{GuestName: "bob"}).DisplayName())
	require.Equal(t, "Guest", (&Comment{}).DisplayName())
}
