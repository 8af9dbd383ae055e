package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/parking-microservice/internal/pkg/utils"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Geocoding GeocodingConfig
	Search    SearchConfig
	Directory DirectoryConfig
	Auth      AuthConfig
	Metrics   MetricsConfig
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
	SearchCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type GeocodingConfig struct {
	BaseURL        string
	AccessToken    string
	RequestTimeout int // seconds
}

// SearchConfig carries the nearby-search policy. The radius is fixed per
// deployment, never per request. The default center is the fallback used
// when device geolocation fails.
type SearchConfig struct {
	RadiusKm         float64
	DefaultCenterLat float64
	DefaultCenterLon float64
	GeolocationWait  time.Duration
}

type DirectoryConfig struct {
	// PlaceholderOccupancy controls whether lots synthesized from place
	// search get bounded pseudo-random capacity/availability/price. When
	// off, those fields stay zero and occupancy is reported as unknown.
	PlaceholderOccupancy bool
	PlaceKeyword         string
}

type AuthConfig struct {
	JWTSecret string
}

type MetricsConfig struct {
	Enabled bool
	Port    int
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	Stream            string
	SimulateDrift     bool
	DriftInterval     time.Duration
	CompletionCron    string
	StreamReadTimeout time.Duration
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
			SearchCacheTTL: time.Duration(viper.GetInt("SEARCH_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Geocoding: GeocodingConfig{
			BaseURL:        viper.GetString("GEOCODING_BASE_URL"),
			AccessToken:    viper.GetString("GEOCODING_ACCESS_TOKEN"),
			RequestTimeout: viper.GetInt("GEOCODING_REQUEST_TIMEOUT"),
		},
		Search: SearchConfig{
			RadiusKm:         viper.GetFloat64("SEARCH_RADIUS_KM"),
			DefaultCenterLat: viper.GetFloat64("SEARCH_DEFAULT_CENTER_LAT"),
			DefaultCenterLon: viper.GetFloat64("SEARCH_DEFAULT_CENTER_LON"),
			GeolocationWait:  time.Duration(viper.GetInt("SEARCH_GEOLOCATION_WAIT")) * time.Second,
		},
		Directory: DirectoryConfig{
			PlaceholderOccupancy: viper.GetBool("DIRECTORY_PLACEHOLDER_OCCUPANCY"),
			PlaceKeyword:         viper.GetString("DIRECTORY_PLACE_KEYWORD"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("AUTH_JWT_SECRET"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
			Port:    viper.GetInt("METRICS_PORT"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			Stream:            viper.GetString("WORKER_STREAM"),
			SimulateDrift:     viper.GetBool("WORKER_SIMULATE_DRIFT"),
			DriftInterval:     time.Duration(viper.GetInt("WORKER_DRIFT_INTERVAL")) * time.Second,
			CompletionCron:    viper.GetString("WORKER_COMPLETION_CRON"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
		},
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Geocoding.BaseURL == "" {
		cfg.Geocoding.BaseURL = "https://api.mapbox.com"
	}
	if cfg.Geocoding.RequestTimeout == 0 {
		cfg.Geocoding.RequestTimeout = 10
	}
	if !utils.ValidateRadius(cfg.Search.RadiusKm) {
		cfg.Search.RadiusKm = 5.0
	}
	if cfg.Search.DefaultCenterLat == 0 && cfg.Search.DefaultCenterLon == 0 {
		// Connaught Place, New Delhi
		cfg.Search.DefaultCenterLat = 28.6139
		cfg.Search.DefaultCenterLon = 77.2090
	}
	if cfg.Search.GeolocationWait == 0 {
		cfg.Search.GeolocationWait = 5 * time.Second
	}
	if cfg.Cache.SearchCacheTTL == 0 {
		cfg.Cache.SearchCacheTTL = 60 * time.Second
	}
	if cfg.Directory.PlaceKeyword == "" {
		cfg.Directory.PlaceKeyword = "parking"
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "parking-availability-workers"
	}
	if cfg.Worker.Stream == "" {
		cfg.Worker.Stream = "parking:availability"
	}
	if cfg.Worker.DriftInterval == 0 {
		cfg.Worker.DriftInterval = 30 * time.Second
	}
	if cfg.Worker.CompletionCron == "" {
		cfg.Worker.CompletionCron = "*/5 * * * *"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9091
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr builds the host:port Redis address.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
