// Package config provides application configuration management
// with validation and environment parsing
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	AssetsBackendLocal = "local"
	AssetsBackendMinIO = "minio"
)

// Config represents the application configuration
type Config struct {
	Environment string
	Port        string
	Host        string
	Media       MediaConfig
	Assets      AssetsConfig
	Storage     StorageConfig
	Cache       CacheConfig
	Logging     *LoggingConfig
	Server      *ServerConfig
}

// MediaConfig controls how the catalogue is seeded
type MediaConfig struct {
	// SeedFile replaces the built-in catalogue when set
	SeedFile string
	// ShuffleSeed makes shuffles and tile heights reproducible; 0 means random
	ShuffleSeed uint64
}

// AssetsConfig selects where photo and video files are served from
type AssetsConfig struct {
	Backend   string
	Dir       string
	URLExpiry time.Duration
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	Region          string
}

// CacheConfig holds the Redis/Valkey connection used to persist deletions
type CacheConfig struct {
	Enabled         bool
	Address         string
	Password        string
	Database        int
	KeyPrefix       string
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PoolSize        int
	MinIdleConns    int
	PoolTimeout     time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
	Output string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load creates a new configuration from environment variables with validation
func Load() (*Config, error) {
	useSSL, _ := strconv.ParseBool(getEnv("STORAGE_USE_SSL", "false"))
	cacheEnabled, _ := strconv.ParseBool(getEnv("CACHE_ENABLED", "false"))
	shuffleSeed, _ := strconv.ParseUint(getEnv("SHUFFLE_SEED", "0"), 10, 64)

	readTimeout, _ := time.ParseDuration(getEnv("READ_TIMEOUT", "10s"))
	writeTimeout, _ := time.ParseDuration(getEnv("WRITE_TIMEOUT", "10s"))
	idleTimeout, _ := time.ParseDuration(getEnv("SERVER_TIMEOUT", "30s"))
	urlExpiry, _ := time.ParseDuration(getEnv("ASSETS_URL_EXPIRY", "1h"))

	config := &Config{
		Environment: getEnv("GO_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		Host:        getEnv("HOST", "localhost"),
		Media: MediaConfig{
			SeedFile:    getEnv("MEDIA_SEED_FILE", ""),
			ShuffleSeed: shuffleSeed,
		},
		Assets: AssetsConfig{
			Backend:   strings.ToLower(getEnv("ASSETS_BACKEND", AssetsBackendLocal)),
			Dir:       getEnv("ASSETS_DIR", "web/media"),
			URLExpiry: urlExpiry,
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "media"),
			UseSSL:          useSSL,
			Region:          getEnv("STORAGE_REGION", "us-east-1"),
		},
		Cache: CacheConfig{
			Enabled:         cacheEnabled,
			Address:         getEnv("CACHE_ADDRESS", "localhost:6379"),
			Password:        getEnv("CACHE_PASSWORD", ""),
			Database:        getEnvInt("CACHE_DB", 0),
			KeyPrefix:       getEnv("CACHE_KEY_PREFIX", "gallery"),
			MaxRetries:      getEnvInt("CACHE_MAX_RETRIES", 3),
			MinRetryBackoff: getEnvDuration("CACHE_MIN_RETRY_BACKOFF", 8*time.Millisecond),
			MaxRetryBackoff: getEnvDuration("CACHE_MAX_RETRY_BACKOFF", 512*time.Millisecond),
			DialTimeout:     getEnvDuration("CACHE_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:     getEnvDuration("CACHE_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:    getEnvDuration("CACHE_WRITE_TIMEOUT", 3*time.Second),
			PoolSize:        getEnvInt("CACHE_POOL_SIZE", 10),
			MinIdleConns:    getEnvInt("CACHE_MIN_IDLE_CONNS", 1),
			PoolTimeout:     getEnvDuration("CACHE_POOL_TIMEOUT", 4*time.Second),
		},
		Logging: &LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
		Server: &ServerConfig{
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
	}

	// Validate configuration before returning
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

// MustLoad loads configuration and panics on error
// Useful for startup scenarios where invalid config should crash the application
func MustLoad() *Config {
	config, err := Load()
	if err != nil {
		panic(err)
	}
	return config
}
