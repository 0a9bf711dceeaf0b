package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Cache backends
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
	CacheBackendNone   = "none"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Maps     MapsConfig
	Emission EmissionConfig
	Worker   WorkerConfig
	Tracing  TracingConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Backend string
	TTL     time.Duration
	LRUSize int
}

type LogConfig struct {
	Level string
}

// MapsConfig - настройки Google Directions API
type MapsConfig struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	DepartureTime int64
	RPS           float64
	Burst         int
}

type EmissionConfig struct {
	Model           string
	CommuterAsTrain bool
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
	BatchSize     int
}

type TracingConfig struct {
	Endpoint    string
	ServiceName string
}

// Load читает конфигурацию из .env и переменных окружения
func Load() (*Config, error) {
	return LoadWithViper(viper.New())
}

// LoadWithViper читает конфигурацию через переданный экземпляр viper,
// чтобы CLI мог привязать свои флаги к тем же ключам
func LoadWithViper(v *viper.Viper) (*Config, error) {
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Backend: v.GetString("CACHE_BACKEND"),
			TTL:     time.Duration(v.GetInt("CACHE_TTL")) * time.Second,
			LRUSize: v.GetInt("CACHE_LRU_SIZE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Maps: MapsConfig{
			APIKey:        v.GetString("MAPS_API_KEY"),
			BaseURL:       v.GetString("MAPS_BASE_URL"),
			Timeout:       time.Duration(v.GetInt("MAPS_TIMEOUT")) * time.Second,
			DepartureTime: v.GetInt64("MAPS_DEPARTURE_TIME"),
			RPS:           v.GetFloat64("MAPS_RPS"),
			Burst:         v.GetInt("MAPS_BURST"),
		},
		Emission: EmissionConfig{
			Model:           v.GetString("EMISSION_MODEL"),
			CommuterAsTrain: v.GetBool("EMISSION_COMMUTER_AS_TRAIN"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    v.GetInt("WORKER_MAX_RETRIES"),
			BatchSize:     v.GetInt("WORKER_BATCH_SIZE"),
		},
		Tracing: TracingConfig{
			Endpoint:    v.GetString("OTLP_ENDPOINT"),
			ServiceName: v.GetString("TRACING_SERVICE_NAME"),
		},
	}

	switch cfg.Cache.Backend {
	case CacheBackendRedis, CacheBackendMemory, CacheBackendNone:
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CACHE_BACKEND", CacheBackendMemory)
	v.SetDefault("CACHE_TTL", 3600)
	v.SetDefault("CACHE_LRU_SIZE", 1024)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("MAPS_BASE_URL", "https://maps.googleapis.com/maps/api")
	v.SetDefault("MAPS_TIMEOUT", 10)
	// Mon 27 Mar 2023 08:00 CEST, a regular weekday rush hour
	v.SetDefault("MAPS_DEPARTURE_TIME", 1679896800)
	v.SetDefault("MAPS_RPS", 10)
	v.SetDefault("MAPS_BURST", 5)

	v.SetDefault("EMISSION_MODEL", "v2")
	v.SetDefault("EMISSION_COMMUTER_AS_TRAIN", false)

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "emission-workers")
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_BATCH_SIZE", 20)

	v.SetDefault("TRACING_SERVICE_NAME", "commute-emissions")
}

// RequireMapsKey проверяет наличие ключа Google Maps API
func (c *Config) RequireMapsKey() error {
	if c.Maps.APIKey == "" {
		return errors.New("MAPS_API_KEY is not set")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
