package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the complete gateway configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Upstream UpstreamConfig `toml:"upstream"`
	Redis    RedisConfig    `toml:"redis"`
	Storage  StorageConfig  `toml:"storage"`
	Jobs     JobsConfig     `toml:"jobs"`
}

type ServerConfig struct {
	Port int `toml:"port"`
}

// UpstreamConfig describes the inventory REST API the gateway fronts
type UpstreamConfig struct {
	BaseURL        string   `toml:"base_url"`
	FallbackPaths  []string `toml:"fallback_prefixes"` // Tried in order when a list endpoint fails
	TimeoutSeconds int      `toml:"timeout_seconds"`
	JWKSURL        string   `toml:"jwks_url"` // Optional; tokens are parsed unverified without it
	CacheTTLSecs   int      `toml:"cache_ttl_seconds"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StorageConfig holds the object store used for CSV exports
type StorageConfig struct {
	Endpoint      string `toml:"endpoint"`
	AccessKey     string `toml:"access_key"`
	SecretKey     string `toml:"secret_key"`
	UseSSL        bool   `toml:"use_ssl"`
	Bucket        string `toml:"bucket"`
	URLExpiryMins int    `toml:"url_expiry_minutes"`
}

// JobsConfig contains background refresh settings
type JobsConfig struct {
	RefreshMinutes  int    `toml:"refresh_minutes"`
	AlertMinutes    int    `toml:"alert_minutes"`
	ServiceEmail    string `toml:"service_email"`
	ServicePassword string `toml:"service_password"`
}

func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

func (u UpstreamConfig) CacheTTL() time.Duration {
	return time.Duration(u.CacheTTLSecs) * time.Second
}

func (s StorageConfig) URLExpiry() time.Duration {
	return time.Duration(s.URLExpiryMins) * time.Minute
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Upstream: UpstreamConfig{
			BaseURL:        "http://localhost:8080/api",
			FallbackPaths:  []string{"/api"},
			TimeoutSeconds: 10,
			CacheTTLSecs:   30,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Storage: StorageConfig{
			Endpoint:      "localhost:9000",
			AccessKey:     "minioadmin",
			SecretKey:     "minioadmin",
			Bucket:        "warehouse-reports",
			URLExpiryMins: 60,
		},
		Jobs: JobsConfig{RefreshMinutes: 5, AlertMinutes: 30},
	}
}

// Load reads .env (if present), then the optional TOML file at path, then
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARN: failed to load .env: %v", err)
	}

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	applyEnv(cfg)

	if cfg.Upstream.BaseURL == "" {
		return nil, errors.New("upstream base URL is required")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Upstream.BaseURL, "UPSTREAM_BASE_URL")
	setString(&cfg.Upstream.JWKSURL, "UPSTREAM_JWKS_URL")
	setInt(&cfg.Upstream.TimeoutSeconds, "UPSTREAM_TIMEOUT_SECONDS")
	setInt(&cfg.Upstream.CacheTTLSecs, "UPSTREAM_CACHE_TTL_SECONDS")

	setInt(&cfg.Server.Port, "PORT")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")

	setString(&cfg.Storage.Endpoint, "MINIO_ENDPOINT")
	setString(&cfg.Storage.AccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "MINIO_SECRET_KEY")
	setString(&cfg.Storage.Bucket, "MINIO_BUCKET")
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		cfg.Storage.UseSSL = v == "true"
	}

	setString(&cfg.Jobs.ServiceEmail, "SERVICE_EMAIL")
	setString(&cfg.Jobs.ServicePassword, "SERVICE_PASSWORD")
	setInt(&cfg.Jobs.RefreshMinutes, "REFRESH_MINUTES")
	setInt(&cfg.Jobs.AlertMinutes, "ALERT_MINUTES")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: ignoring %s=%q: %v", key, v, err)
		return
	}
	*dst = n
}
