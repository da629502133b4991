package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"bondi/internal/adapters/out/redisstore"
	"bondi/internal/adapters/out/sqlstore"
	"bondi/internal/jobs"
	"bondi/internal/pkg/errs"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendMemory      = "memory"
	BackendFile        = "file"
	BackendSQLite      = "sqlite"
	BackendSQLPostgres = "sql-postgres"
	BackendPostgres    = "postgres"
	BackendRedis       = "redis"
)

const envPrefix = "BONDI_"

type Config struct {
	HTTPPort  string        `yaml:"http_port"`
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"`
	Storage   StorageConfig `yaml:"storage"`
	Probe     ProbeConfig   `yaml:"probe"`
}

type StorageConfig struct {
	Backend     string `yaml:"backend"`
	AutoMigrate bool   `yaml:"auto_migrate"`

	// file
	Dir string `yaml:"dir"`

	// sqlite, sql-postgres, postgres
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`

	// redis
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	RedisPrefix   string        `yaml:"redis_prefix"`
	RedisTTL      time.Duration `yaml:"redis_ttl"`

	Resilience ResilienceConfig `yaml:"resilience"`
}

type ResilienceConfig struct {
	Enabled          bool          `yaml:"enabled"`
	FailureThreshold uint32        `yaml:"failure_threshold"`
	OpenTimeout      time.Duration `yaml:"open_timeout"`
	CallTimeout      time.Duration `yaml:"call_timeout"`
}

type ProbeConfig struct {
	Schedule string        `yaml:"schedule"`
	Timeout  time.Duration `yaml:"timeout"`
}

func DefaultConfig() Config {
	return Config{
		HTTPPort:  "8080",
		LogLevel:  "info",
		LogFormat: "text",
		Storage: StorageConfig{
			Backend:     BackendMemory,
			AutoMigrate: true,
			Dir:         "data/snapshots",
			Table:       sqlstore.DefaultTable,
			RedisAddr:   "localhost:6379",
			RedisPrefix: redisstore.DefaultPrefix,
			Resilience: ResilienceConfig{
				FailureThreshold: 5,
				OpenTimeout:      30 * time.Second,
				CallTimeout:      5 * time.Second,
			},
		},
		Probe: ProbeConfig{
			Schedule: jobs.DefaultProbeSchedule,
			Timeout:  2 * time.Second,
		},
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// at path, a .env file in the working directory and BONDI_* environment
// variables, later sources overriding earlier ones.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error

	if c.HTTPPort == "" {
		problems = append(problems, errs.NewValueIsRequiredError("http_port"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		problems = append(problems, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("log_format",
			fmt.Errorf("%q is not one of text, json", c.LogFormat)))
	}

	s := c.Storage
	switch s.Backend {
	case BackendMemory:
	case BackendFile:
		if s.Dir == "" {
			problems = append(problems, errs.NewValueIsRequiredError("storage.dir"))
		}
	case BackendSQLite, BackendSQLPostgres, BackendPostgres:
		if s.DSN == "" {
			problems = append(problems, errs.NewValueIsRequiredError("storage.dsn"))
		}
	case BackendRedis:
		if s.RedisAddr == "" {
			problems = append(problems, errs.NewValueIsRequiredError("storage.redis_addr"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("storage.backend",
			fmt.Errorf("unknown backend %q", s.Backend)))
	}

	if s.Resilience.Enabled && s.Resilience.FailureThreshold == 0 {
		problems = append(problems, errs.NewValueIsInvalidError("storage.resilience.failure_threshold"))
	}

	return errors.Join(problems...)
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, errs.NewValueIsInvalidErrorWithCause("log_level", err)
	}
	return level, nil
}

func applyEnv(cfg *Config) error {
	var problems []error

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(envPrefix+key, err))
				return
			}
			*dst = b
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(envPrefix+key, err))
				return
			}
			*dst = n
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(envPrefix+key, err))
				return
			}
			*dst = d
		}
	}

	str("HTTP_PORT", &cfg.HTTPPort)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)

	str("STORAGE_BACKEND", &cfg.Storage.Backend)
	boolean("STORAGE_AUTO_MIGRATE", &cfg.Storage.AutoMigrate)
	str("STORAGE_DIR", &cfg.Storage.Dir)
	str("STORAGE_DSN", &cfg.Storage.DSN)
	str("STORAGE_TABLE", &cfg.Storage.Table)
	str("REDIS_ADDR", &cfg.Storage.RedisAddr)
	str("REDIS_PASSWORD", &cfg.Storage.RedisPassword)
	integer("REDIS_DB", &cfg.Storage.RedisDB)
	str("REDIS_PREFIX", &cfg.Storage.RedisPrefix)
	duration("REDIS_TTL", &cfg.Storage.RedisTTL)

	boolean("STORAGE_RESILIENT", &cfg.Storage.Resilience.Enabled)
	duration("STORAGE_CALL_TIMEOUT", &cfg.Storage.Resilience.CallTimeout)

	str("PROBE_SCHEDULE", &cfg.Probe.Schedule)
	duration("PROBE_TIMEOUT", &cfg.Probe.Timeout)

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	return errors.Join(problems...)
}
