package service

import (
	"context"
	"errors"
	"testing"

	infraKafka "film-vault/internal/infra/kafka"
	"film-vault/internal/model"
	"film-vault/internal/testutil"

	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	err error
}

func (f *fakePresigner) PresignedGetURL(_ context.Context, bucket, object string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://minio.local/" + bucket + "/" + object + "?X-Amz-Signature=abc", nil
}

func countDownloads(t *testing.T, env *testEnv, movieID int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(&model.DownloadHistory{}).Where("movie_id = ?", movieID).Count(&n).Error)
	return n
}

func TestDownloadRecordsHistoryAndCounter(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	movie := testutil.CreateMovie(t, env.db, "Lion King", func(m *model.Movie) {
		m.DownloadURL = "https://cdn.example.com/lion-king.mp4"
	})

	target, err := env.downloads.Download(ctx, movie.ID, "1.2.3.4", nil)
	require.NoError(t, err)
	require.Equal(t, movie.DownloadURL, target)

	_, err = env.downloads.Download(ctx, movie.ID, "1.2.3.4", nil)
	require.NoError(t, err)

	got, err := env.movieRepo.GetByID(ctx, movie.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, got.DownloadCount)
	require.EqualValues(t, 2, countDownloads(t, env, movie.ID))
	require.Equal(t, []string{infraKafka.EventDownloaded, infraKafka.EventDownloaded}, env.publisher.Types())
}

func TestDownloadWithoutURL(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	movie := testutil.CreateMovie(t, env.db, "No Link")

	_, err := env.downloads.Download(ctx, movie.ID, "1.2.3.4", nil)
	require.ErrorIs(t, err, ErrNoDownloadURL)
	require.Zero(t, countDownloads(t, env, movie.ID))

	_, err = env.downloads.Download(ctx, 999, "1.2.3.4", nil)
	require.ErrorIs(t, err, ErrMovieNotFound)
}

func TestDownloadObjectURL(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	movie := testutil.CreateMovie(t, env.db, "Stored", func(m *model.Movie) {
		m.DownloadURL = "s3://movies/stored.mp4"
	})

	// 未配置对象存储时不记录下载
	_, err := env.downloads.Download(ctx, movie.ID, "1.2.3.4", nil)
	require.ErrorIs(t, err, ErrStorageUnavailable)
	require.Zero(t, countDownloads(t, env, movie.ID))

	env.downloads.presigner = &fakePresigner{err: errors.New("minio down")}
	_, err = env.downloads.Download(ctx, movie.ID, "1.2.3.4", nil)
	require.Error(t, err)
	require.Zero(t, countDownloads(t, env, movie.ID))

	env.downloads.presigner = &fakePresigner{}
	target, err := env.downloads.Download(ctx, movie.ID, "1.2.3.4", nil)
	require.NoError(t, err)
	require.Equal(t, "https://minio.local/movies/stored.mp4?X-Amz-Signature=abc", target)
	require.EqualValues(t, 1, countDownloads(t, env, movie.ID))
}
