package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Shifts     ShiftConfig      `yaml:"shifts"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	EnableRangeIndexes     bool   `yaml:"enable_range_indexes"`
}

// ShiftWindow is one nominal shift window of the operating day.
type ShiftWindow struct {
	Period int    `yaml:"period"`
	Start  string `yaml:"start"`
	End    string `yaml:"end"`
}

// ShiftConfig anchors the operating day and the three shift windows to
// the site's local time zone.
type ShiftConfig struct {
	Timezone           string        `yaml:"timezone"`
	DayStart           string        `yaml:"day_start"`
	FormDefaultMinutes int           `yaml:"form_default_minutes"`
	FormDefault        time.Duration `yaml:"-"` // Ignored by YAML parser
	Windows            []ShiftWindow `yaml:"windows"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Shifts.Timezone == "" {
		cfg.Shifts.Timezone = "UTC"
	}
	if cfg.Shifts.DayStart == "" {
		cfg.Shifts.DayStart = "07:00"
	}
	if cfg.Shifts.FormDefaultMinutes <= 0 {
		cfg.Shifts.FormDefaultMinutes = 30
	}
	cfg.Shifts.FormDefault = time.Duration(cfg.Shifts.FormDefaultMinutes) * time.Minute
	if len(cfg.Shifts.Windows) == 0 {
		cfg.Shifts.Windows = []ShiftWindow{
			{Period: 1, Start: "07:00", End: "15:00"},
			{Period: 2, Start: "15:00", End: "23:00"},
			{Period: 3, Start: "23:00", End: "07:00"},
		}
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
