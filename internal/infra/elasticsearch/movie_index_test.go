package elasticsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"film-vault/internal/model"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *MovieIndex {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewMovieIndex(client, "movies-test")
}

func TestSuggestReturnsIDsInOrder(t *testing.T) {
	var body map[string]interface{}
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movies-test/_search", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_source":{"id":7}},{"_source":{"id":3}}]}}`)
	})

	ids, err := idx.Suggest(context.Background(), "hot", 5)
	require.NoError(t, err)
	require.Equal(t, []int64{7, 3}, ids)
	require.EqualValues(t, 5, body["size"])
}

func TestSuggestPropagatesErrors(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"bad"}`)
	})

	_, err := idx.Suggest(context.Background(), "hot", 5)
	require.Error(t, err)
}

func TestBulkIndexCountsItems(t *testing.T) {
	var lines []string
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/_bulk", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		lines = strings.Split(strings.TrimSpace(string(raw)), "\n")
		_, _ = io.WriteString(w, `{"errors":true,"items":[{"index":{"status":201}},{"index":{"status":400}}]}`)
	})

	movies := []model.Movie{
		{ID: 1, Name: "Hotel Rwanda", UploadedAt: time.Now()},
		{ID: 2, Name: "Grey Matter", UploadedAt: time.Now(), Genre: &model.Genre{Name: "Drama"}},
	}
	success, failed, err := idx.BulkIndex(context.Background(), movies)
	require.NoError(t, err)
	require.Equal(t, 1, success)
	require.Equal(t, 1, failed)
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], `"_id":"1"`)
	require.Contains(t, lines[3], `"genre":"Drama"`)
}
