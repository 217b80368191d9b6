package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, "film-vault", cfg.App.Name)
	require.Equal(t, 8000, cfg.App.Port)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, 10*time.Minute, cfg.Presence.ActiveWindowDuration())
	require.Equal(t, 500*time.Millisecond, cfg.GeoIP.TimeoutDuration())
	require.False(t, cfg.Redis.Enabled())
	require.False(t, cfg.MinIO.Enabled())
	require.Equal(t, "movie_events", cfg.Kafka.Topic("movie_events"))
	require.Equal(t, "movies", cfg.Elasticsearch.MoviesIndex())
	require.Same(t, cfg, Get())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  name: vault-test
  port: 9000
  timezone: Africa/Kigali
database:
  driver: sqlite
  path: /tmp/vault.db
presence:
  active_window: 5
kafka:
  brokers: ["127.0.0.1:9092"]
  topics:
    movie_events: vault.movie.events
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("FILMVAULT_APP_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "vault-test", cfg.App.Name)
	require.Equal(t, 9100, cfg.App.Port)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 5*time.Minute, cfg.Presence.ActiveWindowDuration())
	require.Equal(t, []string{"127.0.0.1:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "vault.movie.events", cfg.Kafka.Topic("movie_events"))
	require.Equal(t, "Africa/Kigali", cfg.App.Location().String())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	app := AppConfig{Timezone: "Not/AZone"}
	require.Equal(t, time.UTC, app.Location())
}
