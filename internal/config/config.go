package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsPort int    `toml:"metrics_port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	AllowedOrigins []string `toml:"allowed_origins"`

	// upstream services
	AuthServiceURL             string `toml:"auth_service_url"`
	AuthServiceTimeoutSeconds  int    `toml:"auth_service_timeout_seconds"`
	AuthCacheTTLSeconds        int    `toml:"auth_cache_ttl_seconds"`
	ProfileStoreURL            string `toml:"profile_store_url"`
	ProfileStoreTimeoutSeconds int    `toml:"profile_store_timeout_seconds"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// postgres
	PostgresHost string `toml:"postgres_host"`
	PostgresPort string `toml:"postgres_port"`
	PostgresUser string `toml:"postgres_user"`
	PostgresDB   string `toml:"postgres_db"`

	// kafka, publisher disabled when no brokers are set
	KafkaBrokers []string `toml:"kafka_brokers"`
	KafkaTopic   string   `toml:"kafka_topic"`

	PromoteRequestsPerMinute int `toml:"promote_requests_per_minute"`
}

func (c *Config) AuthServiceTimeout() time.Duration {
	return time.Duration(c.AuthServiceTimeoutSeconds) * time.Second
}

func (c *Config) AuthCacheTTL() time.Duration {
	return time.Duration(c.AuthCacheTTLSeconds) * time.Second
}

func (c *Config) ProfileStoreTimeout() time.Duration {
	return time.Duration(c.ProfileStoreTimeoutSeconds) * time.Second
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8084
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 2113
	}
	if c.AuthServiceTimeoutSeconds <= 0 {
		c.AuthServiceTimeoutSeconds = 10
	}
	if c.AuthCacheTTLSeconds <= 0 {
		c.AuthCacheTTLSeconds = 300
	}
	if c.ProfileStoreTimeoutSeconds <= 0 {
		c.ProfileStoreTimeoutSeconds = 10
	}
	if c.KafkaTopic == "" {
		c.KafkaTopic = "fitness.level-promotions"
	}
	if c.PromoteRequestsPerMinute <= 0 {
		c.PromoteRequestsPerMinute = 10
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config [%s]: %w", path, err)
	}
	return t.Get(env)
}
