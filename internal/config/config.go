package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	GeoIP         GeoIPConfig         `mapstructure:"geoip"`
	Presence      PresenceConfig      `mapstructure:"presence"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Log           LogConfig           `mapstructure:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name           string   `mapstructure:"name"`
	Version        string   `mapstructure:"version"`
	Mode           string   `mapstructure:"mode"`
	Port           int      `mapstructure:"port"`
	Timezone       string   `mapstructure:"timezone"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// Location 返回统计图表按天切分所用的时区，非法配置回退到 UTC
func (a *AppConfig) Location() *time.Location {
	if a.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres | sqlite
	Path            string `mapstructure:"path"`   // sqlite 文件路径
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
}

// DSN 返回PostgreSQL连接字符串
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig Redis配置，Host 为空时不启用
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Enabled 是否配置了 Redis
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr 返回Redis地址
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig MinIO配置，用于生成 s3:// 下载地址的预签名链接
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	PresignExpiry int    `mapstructure:"presign_expiry"` // 秒
}

// Enabled 是否配置了 MinIO
func (m *MinIOConfig) Enabled() bool {
	return m.Endpoint != ""
}

// PresignExpiryDuration 返回预签名链接有效期
func (m *MinIOConfig) PresignExpiryDuration() time.Duration {
	return time.Duration(m.PresignExpiry) * time.Second
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
}

// Topic 返回逻辑名对应的 topic，未配置时使用逻辑名本身
func (k *KafkaConfig) Topic(name string) string {
	if t, ok := k.Topics[name]; ok && t != "" {
		return t
	}
	return name
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Hosts []string          `mapstructure:"hosts"`
	Index map[string]string `mapstructure:"index"`
}

// MoviesIndex 返回电影索引名
func (e *ElasticsearchConfig) MoviesIndex() string {
	if name := e.Index["movies"]; name != "" {
		return name
	}
	return "movies"
}

// GeoIPConfig GeoIP 配置
type GeoIPConfig struct {
	Path           string `mapstructure:"path"`
	TimeoutMS      int    `mapstructure:"timeout_ms"`
	CacheTTL       int    `mapstructure:"cache_ttl"`       // 秒
	BreakerTimeout int    `mapstructure:"breaker_timeout"` // 秒
}

// TimeoutDuration 返回单次查询超时时间
func (g *GeoIPConfig) TimeoutDuration() time.Duration {
	return time.Duration(g.TimeoutMS) * time.Millisecond
}

// CacheTTLDuration 返回缓存有效期
func (g *GeoIPConfig) CacheTTLDuration() time.Duration {
	return time.Duration(g.CacheTTL) * time.Second
}

// BreakerTimeoutDuration 返回熔断后重试前的等待时间
func (g *GeoIPConfig) BreakerTimeoutDuration() time.Duration {
	return time.Duration(g.BreakerTimeout) * time.Second
}

// PresenceConfig 在线状态配置
type PresenceConfig struct {
	ActiveWindow int `mapstructure:"active_window"` // 分钟
}

// ActiveWindowDuration 返回"正在观看"的判定窗口
func (p *PresenceConfig) ActiveWindowDuration() time.Duration {
	return time.Duration(p.ActiveWindow) * time.Minute
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// ExpireDuration 返回过期时间
func (j *JWTConfig) ExpireDuration() time.Duration {
	return time.Duration(j.ExpireHours) * time.Hour
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// 全局配置实例
var globalConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "film-vault")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.port", 8000)
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.trusted_proxies", []string{})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.path", "data/film_vault.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "film_vault")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 300)

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.presign_expiry", 3600)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topics", map[string]string{
		"movie_events":    "movie_events",
		"stats_reconcile": "stats_reconcile",
	})

	v.SetDefault("elasticsearch.hosts", []string{})
	v.SetDefault("elasticsearch.index", map[string]string{"movies": "movies"})

	v.SetDefault("geoip.path", "GeoLite2-City.mmdb")
	v.SetDefault("geoip.timeout_ms", 500)
	v.SetDefault("geoip.cache_ttl", 86400)
	v.SetDefault("geoip.breaker_timeout", 60)

	v.SetDefault("presence.active_window", 10)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expire_hours", 24)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/film_vault.log")
}

// Load 加载配置文件；文件不存在时仅使用默认值和环境变量
// 环境变量前缀 FILMVAULT_，例如 FILMVAULT_DATABASE_HOST
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FILMVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	globalConfig = &cfg

	return &cfg, nil
}

// Get 获取全局配置
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded, please call Load() first")
	}
	return globalConfig
}

// Set 替换全局配置（测试用）
func Set(cfg *Config) {
	globalConfig = cfg
}

// GetJWT 获取JWT配置
func GetJWT() *JWTConfig {
	return &Get().JWT
}

// GetApp 获取应用配置
func GetApp() *AppConfig {
	return &Get().App
}
