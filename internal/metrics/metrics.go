package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "film_vault_http_request_duration_seconds",
			Help:    "HTTP 请求耗时",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// 观看会话
	WatchSessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "film_vault_watch_sessions_started_total",
			Help: "开始的观看会话数",
		},
	)

	WatchSessionsSuperseded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "film_vault_watch_sessions_superseded_total",
			Help: "被新会话顶替关闭的观看会话数",
		},
	)

	WatchSessionsStopped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "film_vault_watch_sessions_stopped_total",
			Help: "stop 调用次数，按是否首次结束区分",
		},
		[]string{"result"}, // "closed", "already_closed"
	)

	Downloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "film_vault_downloads_total",
			Help: "记录的下载次数",
		},
	)

	// GeoIP
	GeoIPLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "film_vault_geoip_lookups_total",
			Help: "GeoIP 查询次数，按结果区分",
		},
		[]string{"result"}, // "skipped", "cache_hit", "hit", "miss", "error", "timeout", "breaker_open"
	)

	GeoIPBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "film_vault_geoip_breaker_state",
			Help: "GeoIP 熔断器状态 (0=closed, 1=half-open, 2=open)",
		},
	)

	// 对账
	ReconcileMoviesChanged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "film_vault_reconcile_movies_changed_total",
			Help: "对账发现计数不一致的电影数",
		},
		[]string{"dry_run"},
	)

	ReconcileFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "film_vault_reconcile_failures_total",
			Help: "对账时单个电影更新失败次数",
		},
	)

	// 事件
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "film_vault_events_published_total",
			Help: "发送到 Kafka 的电影事件数",
		},
		[]string{"type", "result"},
	)
)

// ObserveHTTPRequest 记录一次 HTTP 请求
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// RecordReconcile 记录对账结果
func RecordReconcile(changed, failed int, dryRun bool) {
	ReconcileMoviesChanged.WithLabelValues(strconv.FormatBool(dryRun)).Add(float64(changed))
	ReconcileFailures.Add(float64(failed))
}
