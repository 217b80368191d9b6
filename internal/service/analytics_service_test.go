package service

import (
	"context"
	"testing"
	"time"

	"film-vault/internal/api/dto"
	"film-vault/internal/geoip"
	"film-vault/internal/model"
	"film-vault/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestVisitorStatsOnlineAndLastMovie(t *testing.T) {
	env := newTestEnv(t, map[string]geoip.Location{
		"41.186.0.10": {Country: "Rwanda", City: "Kigali", Lat: -1.95, Lng: 30.06},
	})
	ctx := context.Background()
	movie := testutil.CreateMovie(t, env.db, "Hotel Rwanda")

	_, err := env.watches.StartWatch(ctx, movie.ID, "41.186.0.10", nil)
	require.NoError(t, err)

	// 只访问过、没有观看记录的访客
	_, err = env.visitors.RecordVisit(ctx, "8.8.4.4")
	require.NoError(t, err)

	// 观看已结束的访客
	env.watches.now = func() time.Time { return time.Now().Add(-time.Hour) }
	stopped, err := env.watches.StartWatch(ctx, movie.ID, "1.0.0.1", nil)
	require.NoError(t, err)
	env.watches.now = time.Now
	_, err = env.watches.StopWatch(ctx, stopped.ID)
	require.NoError(t, err)

	data, err := env.analytics.VisitorStats(ctx)
	require.NoError(t, err)
	require.Len(t, data.Visitors, 3)

	rows := make(map[string]dto.VisitorStatsRow)
	for _, r := range data.Visitors {
		rows[r.IP] = r
	}

	kigali := rows["41.186.0.10"]
	require.True(t, kigali.Online)
	require.Equal(t, "Hotel Rwanda", kigali.LastMovie)
	require.Equal(t, "Rwanda", kigali.Country)
	require.Equal(t, kigali.IP, kigali.Name)
	require.EqualValues(t, 1, kigali.WatchCount)
	require.Len(t, kigali.LastVisit, len("2006-01-02 15:04:05"))

	idle := rows["8.8.4.4"]
	require.False(t, idle.Online)
	require.Equal(t, "-", idle.LastMovie)
	require.Zero(t, idle.WatchCount)

	require.False(t, rows["1.0.0.1"].Online)
	require.Equal(t, "Hotel Rwanda", rows["1.0.0.1"].LastMovie)
}

func TestVisitorCountsSeparateVisitsFromWatches(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	movie := testutil.CreateMovie(t, env.db, "Sometimes in April")

	for i := 0; i < 2; i++ {
		_, err := env.visitors.RecordVisit(ctx, "5.5.5.5")
		require.NoError(t, err)
	}
	_, err := env.watches.StartWatch(ctx, movie.ID, "5.5.5.5", nil)
	require.NoError(t, err)

	data, err := env.analytics.VisitorStats(ctx)
	require.NoError(t, err)
	require.Len(t, data.Visitors, 1)
	require.EqualValues(t, 3, data.Visitors[0].VisitCount)
	require.EqualValues(t, 1, data.Visitors[0].WatchCount)

	points, err := env.analytics.VisitorMap(ctx)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.EqualValues(t, 3, points[0].VisitCount)
	require.EqualValues(t, 1, points[0].WatchCount)
}

func TestVisitorStatsStaleOpenSessionIsOffline(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	movie := testutil.CreateMovie(t, env.db, "Crashed Client")

	env.watches.now = func() time.Time { return time.Now().Add(-30 * time.Minute) }
	_, err := env.watches.StartWatch(ctx, movie.ID, "3.3.3.3", nil)
	require.NoError(t, err)
	env.watches.now = time.Now

	data, err := env.analytics.VisitorStats(ctx)
	require.NoError(t, err)
	require.Len(t, data.Visitors, 1)
	require.False(t, data.Visitors[0].Online)
}

func TestVisitorChartZeroFilled(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	env.analytics.now = func() time.Time { return now }

	visits := map[string]time.Time{
		"1.1.1.1": now.Add(-time.Hour),
		"2.2.2.2": now.Add(-2 * time.Hour),
		"3.3.3.3": now.AddDate(0, 0, -2),
		"4.4.4.4": now.AddDate(0, 0, -6),
		"5.5.5.5": now.AddDate(0, 0, -9),
	}
	for ip, at := range visits {
		_, err := env.visitorRepo.Upsert(ctx, ip, "", "", 0, 0, at)
		require.NoError(t, err)
	}

	points, err := env.analytics.VisitorChart(ctx)
	require.NoError(t, err)
	require.Equal(t, []dto.ChartPoint{
		{Date: "2025-03-04", Count: 1},
		{Date: "2025-03-05", Count: 0},
		{Date: "2025-03-06", Count: 0},
		{Date: "2025-03-07", Count: 0},
		{Date: "2025-03-08", Count: 1},
		{Date: "2025-03-09", Count: 0},
		{Date: "2025-03-10", Count: 2},
	}, points)
}

func TestVisitorChartUsesConfiguredTimezone(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	kigali := time.FixedZone("CAT", 2*60*60)
	env.analytics.loc = kigali
	now := time.Date(2025, 3, 10, 1, 0, 0, 0, kigali)
	env.analytics.now = func() time.Time { return now }

	// UTC 3 月 9 日 23:30 在 UTC+2 已经是 3 月 10 日
	_, err := env.visitorRepo.Upsert(ctx, "1.1.1.1", "", "", 0, 0, time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	points, err := env.analytics.VisitorChart(ctx)
	require.NoError(t, err)
	require.Len(t, points, 7)
	require.Equal(t, dto.ChartPoint{Date: "2025-03-10", Count: 1}, points[6])
}

func TestVisitorCountriesSorted(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	for ip, country := range map[string]string{
		"1.1.1.1": "Rwanda",
		"1.1.1.2": "Rwanda",
		"1.1.1.3": "Kenya",
		"1.1.1.4": "Rwanda",
		"1.1.1.5": "Uganda",
		"1.1.1.6": "Kenya",
	} {
		_, err := env.visitorRepo.Upsert(ctx, ip, country, "", 0, 0, time.Now())
		require.NoError(t, err)
	}

	points, err := env.analytics.VisitorCountries(ctx)
	require.NoError(t, err)
	require.Equal(t, []dto.CountryPoint{
		{Country: "Rwanda", Count: 3},
		{Country: "Kenya", Count: 2},
		{Country: "Uganda", Count: 1},
	}, points)
}

func TestVisitorMapFallsBackOnlyForEmptyFields(t *testing.T) {
	env := newTestEnv(t, map[string]geoip.Location{
		"41.186.0.10": {Country: "Rwanda", City: "Kigali", Lat: -1.95, Lng: 30.06},
		"102.22.0.1":  {Country: "Kenya", City: "Nairobi", Lat: -1.29, Lng: 36.82},
	})
	ctx := context.Background()
	now := time.Now()

	// 完整的地理数据不触发查询
	_, err := env.visitorRepo.Upsert(ctx, "41.186.0.10", "Rwanda", "Butare", -2.6, 29.7, now)
	require.NoError(t, err)
	// 只有国家，其余字段从新查询补齐
	_, err = env.visitorRepo.Upsert(ctx, "102.22.0.1", "Kenya (stored)", "", 0, 0, now.Add(-time.Minute))
	require.NoError(t, err)

	points, err := env.analytics.VisitorMap(ctx)
	require.NoError(t, err)
	require.Len(t, points, 2)

	require.Equal(t, "41.186.0.10", points[0].IP)
	require.Equal(t, "Butare", points[0].City)
	require.Equal(t, 0, env.resolver.Calls("41.186.0.10"))

	require.Equal(t, "Kenya (stored)", points[1].Country)
	require.Equal(t, "Nairobi", points[1].City)
	require.InDelta(t, -1.29, points[1].Lat, 1e-9)
	require.InDelta(t, 36.82, points[1].Lng, 1e-9)
	require.Equal(t, 1, env.resolver.Calls("102.22.0.1"))
	require.EqualValues(t, 1, points[1].VisitCount)
}

func TestVisitorMapOnlineFlag(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	movie := testutil.CreateMovie(t, env.db, "Live")

	_, err := env.watches.StartWatch(ctx, movie.ID, "9.9.9.9", nil)
	require.NoError(t, err)

	points, err := env.analytics.VisitorMap(ctx)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.True(t, points[0].Online)
	require.EqualValues(t, 1, points[0].WatchCount)

	var visitor model.Visitor
	require.NoError(t, env.db.Where("ip_address = ?", "9.9.9.9").First(&visitor).Error)
	require.EqualValues(t, 1, visitor.VisitCount)
}
