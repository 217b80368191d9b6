package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"film-vault/internal/model"
	"film-vault/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMovieIncrementsAreAtomic(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMovieRepository(db)
	movie := testutil.CreateMovie(t, db, "Hotel Rwanda")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, repo.IncrementViews(ctx, movie.ID))
			require.NoError(t, repo.IncrementDownloads(ctx, movie.ID))
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, movie.ID)
	require.NoError(t, err)
	require.EqualValues(t, 20, got.TotalViews)
	require.EqualValues(t, 20, got.DownloadCount)
}

func TestMovieIncrementUnknown(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMovieRepository(db)
	require.ErrorIs(t, repo.IncrementViews(context.Background(), 999), gorm.ErrRecordNotFound)
}

func TestMovieListFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	drama := testutil.CreateGenre(t, db, "Drama")
	comedy := testutil.CreateGenre(t, db, "Comedy")
	testutil.CreateGenre(t, db, "Horror") // 没有电影的类型不出现在下拉列表

	base := time.Now().UTC().Add(-time.Hour)
	old := testutil.CreateMovie(t, db, "Sometimes in April", func(m *model.Movie) {
		m.GenreID = &drama.ID
		m.UploadedAt = base
		m.DownloadCount = 50
	})
	mid := testutil.CreateMovie(t, db, "Grey Matter", func(m *model.Movie) {
		m.GenreID = &drama.ID
		m.UploadedAt = base.Add(10 * time.Minute)
		m.DownloadCount = 5
	})
	newest := testutil.CreateMovie(t, db, "Kinyarwanda Comedy Night", func(m *model.Movie) {
		m.GenreID = &comedy.ID
		m.UploadedAt = base.Add(20 * time.Minute)
	})

	all, err := repo.List(ctx, MovieFilter{})
	require.NoError(t, err)
	require.Equal(t, []int64{newest.ID, mid.ID, old.ID}, movieIDs(all))
	require.Equal(t, "Comedy", all[0].GenreName())

	trending, err := repo.List(ctx, MovieFilter{Sort: SortTrending})
	require.NoError(t, err)
	require.Equal(t, []int64{old.ID, mid.ID, newest.ID}, movieIDs(trending))

	byName, err := repo.List(ctx, MovieFilter{Query: "MATTER"})
	require.NoError(t, err)
	require.Equal(t, []int64{mid.ID}, movieIDs(byName))

	byGenre, err := repo.List(ctx, MovieFilter{Genre: "drama"})
	require.NoError(t, err)
	require.Equal(t, []int64{mid.ID, old.ID}, movieIDs(byGenre))

	genres, err := repo.GenreNames(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Comedy", "Drama"}, genres)

	recent, err := repo.UploadedSince(ctx, base.Add(15*time.Minute))
	require.NoError(t, err)
	require.Equal(t, []int64{newest.ID}, movieIDs(recent))

	suggestions, err := repo.SearchByName(ctx, "april", 5)
	require.NoError(t, err)
	require.Equal(t, []int64{old.ID}, movieIDs(suggestions))

	top, err := repo.Trending(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []int64{old.ID, mid.ID}, movieIDs(top))
}

func TestMovieSetCounters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()
	movie := testutil.CreateMovie(t, db, "Munyurangabo")

	require.NoError(t, repo.SetCounters(ctx, movie.ID, 7, 3))
	got, err := repo.GetByID(ctx, movie.ID)
	require.NoError(t, err)
	require.EqualValues(t, 7, got.TotalViews)
	require.EqualValues(t, 3, got.DownloadCount)

	require.ErrorIs(t, repo.SetCounters(ctx, 12345, 1, 1), gorm.ErrRecordNotFound)
}

func movieIDs(movies []model.Movie) []int64 {
	ids := make([]int64, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
	}
	return ids
}
