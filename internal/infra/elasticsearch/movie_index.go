package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"film-vault/internal/model"
	"film-vault/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// MovieDoc ES 电影文档
type MovieDoc struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Genre         string `json:"genre"`
	TotalViews    int64  `json:"total_views"`
	DownloadCount int64  `json:"download_count"`
	UploadedAt    string `json:"uploaded_at"`
}

func movieToDoc(m *model.Movie) *MovieDoc {
	return &MovieDoc{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Genre:         m.GenreName(),
		TotalViews:    m.TotalViews,
		DownloadCount: m.DownloadCount,
		UploadedAt:    m.UploadedAt.UTC().Format(time.RFC3339),
	}
}

// MovieIndex movies 索引的读写
type MovieIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewMovieIndex(client *elasticsearch.Client, index string) *MovieIndex {
	if index == "" {
		index = "movies"
	}
	return &MovieIndex{client: client, index: index}
}

// EnsureIndex 索引不存在时创建
func (m *MovieIndex) EnsureIndex(ctx context.Context) error {
	resp, err := m.client.Indices.Exists([]string{m.index}, m.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Info("Elasticsearch movies index already exists", zap.String("index", m.index))
		return nil
	}

	resp, err = m.client.Indices.Create(
		m.index,
		m.client.Indices.Create.WithContext(ctx),
		m.client.Indices.Create.WithBody(strings.NewReader(moviesIndexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch movies index created", zap.String("index", m.index))
	return nil
}

// IndexMovie 写入或覆盖单部电影
func (m *MovieIndex) IndexMovie(ctx context.Context, movie *model.Movie) error {
	body, err := json.Marshal(movieToDoc(movie))
	if err != nil {
		return err
	}

	resp, err := m.client.Index(
		m.index,
		bytes.NewReader(body),
		m.client.Index.WithContext(ctx),
		m.client.Index.WithDocumentID(strconv.FormatInt(movie.ID, 10)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Movie synced to ES", zap.Int64("movie_id", movie.ID))
	return nil
}

// BulkIndex 批量写入电影
func (m *MovieIndex) BulkIndex(ctx context.Context, movies []model.Movie) (success, failed int, err error) {
	var buf bytes.Buffer
	for i := range movies {
		docBody, err := json.Marshal(movieToDoc(&movies[i]))
		if err != nil {
			failed++
			continue
		}
		fmt.Fprintf(&buf, `{"index":{"_index":%q,"_id":"%d"}}`+"\n", m.index, movies[i].ID)
		buf.Write(docBody)
		buf.WriteByte('\n')
	}

	if buf.Len() == 0 {
		return 0, failed, nil
	}

	resp, err := m.client.Bulk(bytes.NewReader(buf.Bytes()), m.client.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(movies), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(movies), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(movies), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// Suggest 片名联想，返回按相关度排序的电影 ID
func (m *MovieIndex) Suggest(ctx context.Context, q string, size int) ([]int64, error) {
	query := map[string]interface{}{
		"size":    size,
		"_source": []string{"id"},
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q,
				"type":   "bool_prefix",
				"fields": []string{"name", "name._2gram", "name._3gram"},
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	resp, err := m.client.Search(
		m.client.Search.WithContext(ctx),
		m.client.Search.WithIndex(m.index),
		m.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}
