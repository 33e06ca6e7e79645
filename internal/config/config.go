package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Backup     BackupConfig     `yaml:"backup"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	API        APIConfig        `yaml:"api"`
	Drafts     DraftConfig      `yaml:"drafts"`
	Exports    ExportConfig     `yaml:"exports"`
	Outbox     OutboxConfig     `yaml:"outbox"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Schedule      string `yaml:"schedule"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type APIConfig struct {
	Port      int                `yaml:"port"`
	Auth      APIAuthConfig      `yaml:"auth"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
	CORS      APICORSConfig      `yaml:"cors"`
}

type APIAuthConfig struct {
	Enabled      bool           `yaml:"enabled"`
	HeaderAPIKey string         `yaml:"header_api_key"`
	APIKeys      []APIClientKey `yaml:"api_keys"`
}

type APIClientKey struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type APICORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DraftConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type OutboxConfig struct {
	QueueKey       string `yaml:"queue_key"`
	DeadLetterKey  string `yaml:"dead_letter_key"`
	PollIntervalMS int    `yaml:"poll_interval_ms"`
	BatchSize      int    `yaml:"batch_size"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; environment variables referenced in the YAML may
	// come from the process environment instead.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}
	if c.API.Auth.Enabled && len(c.API.Auth.APIKeys) == 0 {
		return errors.New("api auth enabled but no api keys configured")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "innkeep"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.API.Auth.HeaderAPIKey == "" {
		c.API.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.API.RateLimit.RPS == 0 {
		c.API.RateLimit.RPS = 10
	}
	if c.API.RateLimit.Burst == 0 {
		c.API.RateLimit.Burst = 20
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Drafts.TTLSeconds == 0 {
		c.Drafts.TTLSeconds = 30 * 60
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
	if c.Outbox.QueueKey == "" {
		c.Outbox.QueueKey = "innkeep:events"
	}
	if c.Outbox.DeadLetterKey == "" {
		c.Outbox.DeadLetterKey = "innkeep:events:dead"
	}
	if c.Outbox.PollIntervalMS == 0 {
		c.Outbox.PollIntervalMS = 2000
	}
	if c.Outbox.BatchSize == 0 {
		c.Outbox.BatchSize = 50
	}
}
