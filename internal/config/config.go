package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Overpass  OverpassConfig
	Nominatim NominatimConfig
	Log       LogConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	VenueCacheTTL time.Duration
	StatsCacheTTL time.Duration
}

// OverpassConfig - настройки клиента Overpass API
type OverpassConfig struct {
	Endpoints      []string
	RequestTimeout time.Duration
	MinInterval    time.Duration
	WindowLength   time.Duration
	MaxPerWindow   int
	BackoffBase    time.Duration
}

// NominatimConfig - настройки клиента геокодирования
type NominatimConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
	MaxResults     int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	BatchSize         int
	MaxRetries        int
	StatsDebounceWait time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			VenueCacheTTL: time.Duration(viper.GetInt("VENUE_CACHE_TTL")) * time.Second,
			StatsCacheTTL: time.Duration(viper.GetInt("STATS_CACHE_TTL")) * time.Second,
		},
		Overpass: OverpassConfig{
			Endpoints:      parseEndpoints(viper.GetString("OVERPASS_ENDPOINTS")),
			RequestTimeout: time.Duration(viper.GetInt("OVERPASS_REQUEST_TIMEOUT")) * time.Second,
			MinInterval:    time.Duration(viper.GetInt("OVERPASS_MIN_INTERVAL_MS")) * time.Millisecond,
			WindowLength:   time.Duration(viper.GetInt("OVERPASS_WINDOW_MS")) * time.Millisecond,
			MaxPerWindow:   viper.GetInt("OVERPASS_MAX_PER_WINDOW"),
			BackoffBase:    time.Duration(viper.GetInt("OVERPASS_BACKOFF_BASE_MS")) * time.Millisecond,
		},
		Nominatim: NominatimConfig{
			BaseURL:        viper.GetString("NOMINATIM_BASE_URL"),
			UserAgent:      viper.GetString("NOMINATIM_USER_AGENT"),
			RequestTimeout: time.Duration(viper.GetInt("NOMINATIM_REQUEST_TIMEOUT")) * time.Second,
			MaxResults:     viper.GetInt("NOMINATIM_MAX_RESULTS"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			BatchSize:         viper.GetInt("WORKER_BATCH_SIZE"),
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
			StatsDebounceWait: time.Duration(viper.GetInt("WORKER_STATS_DEBOUNCE_MS")) * time.Millisecond,
		},
	}

	// Set default values if not provided
	if cfg.Cache.VenueCacheTTL == 0 {
		cfg.Cache.VenueCacheTTL = 5 * time.Minute
	}
	if cfg.Cache.StatsCacheTTL == 0 {
		cfg.Cache.StatsCacheTTL = time.Minute
	}
	if len(cfg.Overpass.Endpoints) == 0 {
		cfg.Overpass.Endpoints = []string{
			"https://overpass-api.de/api/interpreter",
			"https://overpass.kumi.systems/api/interpreter",
			"https://maps.mail.ru/osm/tools/overpass/api/interpreter",
		}
	}
	if cfg.Overpass.RequestTimeout == 0 {
		cfg.Overpass.RequestTimeout = 30 * time.Second
	}
	if cfg.Overpass.MinInterval == 0 {
		cfg.Overpass.MinInterval = 2000 * time.Millisecond
	}
	if cfg.Overpass.WindowLength == 0 {
		cfg.Overpass.WindowLength = 10000 * time.Millisecond
	}
	if cfg.Overpass.MaxPerWindow == 0 {
		cfg.Overpass.MaxPerWindow = 3
	}
	if cfg.Overpass.BackoffBase == 0 {
		cfg.Overpass.BackoffBase = 800 * time.Millisecond
	}
	if cfg.Nominatim.BaseURL == "" {
		cfg.Nominatim.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Nominatim.UserAgent == "" {
		cfg.Nominatim.UserAgent = "venue-compass/1.0"
	}
	if cfg.Nominatim.RequestTimeout == 0 {
		cfg.Nominatim.RequestTimeout = 10 * time.Second
	}
	if cfg.Nominatim.MaxResults == 0 {
		cfg.Nominatim.MaxResults = 5
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "search-log-workers"
	}
	if cfg.Worker.BatchSize == 0 {
		cfg.Worker.BatchSize = 20
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Worker.StatsDebounceWait == 0 {
		cfg.Worker.StatsDebounceWait = 2000 * time.Millisecond
	}

	return cfg, nil
}

func parseEndpoints(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
