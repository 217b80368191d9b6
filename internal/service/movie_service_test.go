package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"film-vault/internal/api/dto"
	infraKafka "film-vault/internal/infra/kafka"
	"film-vault/internal/model"
	"film-vault/internal/repository"
	"film-vault/internal/testutil"

	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	ids       []int64
	err       error
	indexed   []int64
	bulkCalls int
}

func (f *fakeIndex) Suggest(_ context.Context, _ string, _ int) ([]int64, error) {
	return f.ids, f.err
}

func (f *fakeIndex) IndexMovie(_ context.Context, movie *model.Movie) error {
	f.indexed = append(f.indexed, movie.ID)
	return f.err
}

func (f *fakeIndex) BulkIndex(_ context.Context, movies []model.Movie) (int, int, error) {
	f.bulkCalls++
	if f.err != nil {
		return 0, 0, f.err
	}
	return len(movies), 0, nil
}

func TestHomeFiltersAndSections(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	drama := testutil.CreateGenre(t, env.db, "Drama")
	testutil.CreateGenre(t, env.db, "Unused")

	base := time.Now().UTC().Add(-time.Hour)
	testutil.CreateMovie(t, env.db, "Hotel Rwanda", func(m *model.Movie) {
		m.GenreID = &drama.ID
		m.DownloadCount = 9
		m.UploadedAt = base
	})
	testutil.CreateMovie(t, env.db, "Sometimes in April", func(m *model.Movie) {
		m.GenreID = &drama.ID
		m.UploadedAt = base.Add(time.Minute)
	})
	testutil.CreateMovie(t, env.db, "Lion King", func(m *model.Movie) {
		m.DownloadCount = 3
		m.UploadedAt = base.Add(2 * time.Minute)
	})

	data, err := env.movies.Home(ctx, &dto.HomeRequest{Q: "  RWANDA "})
	require.NoError(t, err)
	require.Equal(t, "RWANDA", data.SearchQuery)
	require.Len(t, data.Movies, 1)
	require.Equal(t, "Drama", data.Movies[0].Genre)
	require.EqualValues(t, 3, data.TotalMovies)
	require.Equal(t, []string{"Drama"}, data.Genres)
	require.Equal(t, "Hotel Rwanda", data.Trending[0].Name)
	require.Equal(t, "Lion King", data.NewReleases[0].Name)

	data, err = env.movies.Home(ctx, &dto.HomeRequest{Genre: "drama", Sort: repository.SortTrending})
	require.NoError(t, err)
	require.Len(t, data.Movies, 2)
	require.Equal(t, "Hotel Rwanda", data.Movies[0].Name)
}

func TestWatchPage(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	movie := testutil.CreateMovie(t, env.db, "Hotel Rwanda")

	_, err := env.watches.StartWatch(ctx, movie.ID, "1.2.3.4", nil)
	require.NoError(t, err)
	_, err = env.comments.Create(ctx, movie.ID, nil, &dto.CommentCreateRequest{Text: "first"})
	require.NoError(t, err)
	latest, err := env.comments.Create(ctx, movie.ID, nil, &dto.CommentCreateRequest{Text: "second"})
	require.NoError(t, err)

	page, err := env.movies.WatchPage(ctx, movie.ID)
	require.NoError(t, err)
	require.Equal(t, "Hotel Rwanda", page.Movie.Name)
	require.Equal(t, latest.LatestComment.ID, page.LastCommentID)
	require.Equal(t, "second", page.Comments[0].Text)
	require.EqualValues(t, 1, page.TotalViews)
	require.EqualValues(t, 1, page.LiveViewers)

	_, err = env.movies.WatchPage(ctx, 404)
	require.ErrorIs(t, err, ErrMovieNotFound)
}

func TestSuggestionsPreferIndexOrder(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	a := testutil.CreateMovie(t, env.db, "Rwanda Rising")
	b := testutil.CreateMovie(t, env.db, "Hotel Rwanda")

	env.movies.index = &fakeIndex{ids: []int64{b.ID, 9999, a.ID}}
	items, err := env.movies.Suggestions(ctx, "rwa")
	require.NoError(t, err)
	require.Equal(t, []dto.MovieSuggestion{
		{ID: b.ID, Name: "Hotel Rwanda"},
		{ID: a.ID, Name: "Rwanda Rising"},
	}, items)
}

func TestSuggestionsFallBackToDatabase(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	for _, name := range []string{"Rwanda 1", "Rwanda 2", "Rwanda 3", "Rwanda 4", "Rwanda 5", "Rwanda 6", "Other"} {
		testutil.CreateMovie(t, env.db, name)
	}

	env.movies.index = &fakeIndex{err: errors.New("connection refused")}
	items, err := env.movies.Suggestions(ctx, "rwanda")
	require.NoError(t, err)
	require.Len(t, items, 5)
	require.Equal(t, "Rwanda 1", items[0].Name)

	env.movies.index = nil
	items, err = env.movies.Suggestions(ctx, "other")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestLatestOnlyRecentUploads(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	now := time.Now().UTC()
	env.movies.now = func() time.Time { return now }

	testutil.CreateMovie(t, env.db, "Old", func(m *model.Movie) { m.UploadedAt = now.Add(-11 * time.Minute) })
	testutil.CreateMovie(t, env.db, "Fresh", func(m *model.Movie) {
		m.UploadedAt = now.Add(-time.Minute)
		m.DownloadURL = "https://cdn.example.com/fresh.mp4"
	})

	items, err := env.movies.Latest(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Fresh", items[0].Name)
	require.Equal(t, "https://cdn.example.com/fresh.mp4", items[0].DownloadURL)
}

func TestCreateMovieReusesGenreAndIndexes(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	index := &fakeIndex{}
	env.movies.index = index

	first, err := env.movies.CreateMovie(ctx, &dto.MovieCreateRequest{Name: "Hotel Rwanda", Genre: "Drama"})
	require.NoError(t, err)
	require.Equal(t, "Drama", first.Genre)

	second, err := env.movies.CreateMovie(ctx, &dto.MovieCreateRequest{Name: "Sometimes in April", Genre: "Drama"})
	require.NoError(t, err)

	var genres int64
	require.NoError(t, env.db.Model(&model.Genre{}).Count(&genres).Error)
	require.EqualValues(t, 1, genres)

	require.Equal(t, []int64{first.ID, second.ID}, index.indexed)
	require.Equal(t, []string{infraKafka.EventMovieCreated, infraKafka.EventMovieCreated}, env.publisher.Types())

	sync, err := env.movies.SyncSearchIndex(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, sync.Success)
	require.Equal(t, 1, index.bulkCalls)
}

func TestSyncSearchIndexWithoutIndex(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.movies.SyncSearchIndex(context.Background())
	require.ErrorIs(t, err, ErrSearchUnavailable)
}
