// Package config loads runtime settings from defaults, an optional YAML file
// and THISDAY_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/thisday/internal/api"
	"github.com/thesavant42/thisday/internal/models"
	"github.com/thesavant42/thisday/internal/scan"
	"gopkg.in/yaml.v3"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// CacheConfig selects and configures the response cache
type CacheConfig struct {
	Backend       string        `yaml:"backend"`
	TTL           time.Duration `yaml:"ttl"`
	Path          string        `yaml:"path"` // SQLite DSN
	CacheFailures bool          `yaml:"cache_failures"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
}

// Config holds all runtime settings
type Config struct {
	BaseURL      string        `yaml:"base_url"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	RequestPause time.Duration `yaml:"request_pause"`
	Limit        int           `yaml:"limit"`
	CeilingYear  int           `yaml:"ceiling_year"`
	FloorYear    int           `yaml:"floor_year"`
	LogLevel     string        `yaml:"log_level"`
	Cache        CacheConfig   `yaml:"cache"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		BaseURL:      api.DefaultBaseURL,
		Timeout:      30 * time.Second,
		RequestPause: api.DefaultRequestPause,
		Limit:        models.DefaultLimit,
		CeilingYear:  scan.DefaultCeilingYear,
		FloorYear:    scan.DefaultFloorYear,
		LogLevel:     "info",
		Cache: CacheConfig{
			Backend:       CacheMemory,
			TTL:           api.DefaultCacheTTL,
			CacheFailures: true,
		},
	}
}

// DefaultPath returns ~/.thisday/config.yaml
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".thisday", "config.yaml")
}

// Load applies the YAML file at path (if it exists) and then the environment
// on top of the defaults. An empty path means DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if err := cfg.mergeFile(path); err != nil {
		return cfg, err
	}
	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// mergeFile overlays the YAML file. A missing file is not an error.
func (c *Config) mergeFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	var errs []error
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	setString("THISDAY_BASE_URL", &c.BaseURL)
	setString("THISDAY_USER_AGENT", &c.UserAgent)
	setDuration("THISDAY_TIMEOUT", &c.Timeout)
	setDuration("THISDAY_REQUEST_PAUSE", &c.RequestPause)
	setInt("THISDAY_LIMIT", &c.Limit)
	setInt("THISDAY_CEILING_YEAR", &c.CeilingYear)
	setInt("THISDAY_FLOOR_YEAR", &c.FloorYear)
	setString("THISDAY_LOG_LEVEL", &c.LogLevel)
	setString("THISDAY_CACHE_BACKEND", &c.Cache.Backend)
	setDuration("THISDAY_CACHE_TTL", &c.Cache.TTL)
	setString("THISDAY_CACHE_PATH", &c.Cache.Path)
	setBool("THISDAY_CACHE_FAILURES", &c.Cache.CacheFailures)
	setString("THISDAY_REDIS_ADDR", &c.Cache.RedisAddr)
	setString("THISDAY_REDIS_PASSWORD", &c.Cache.RedisPassword)
	setInt("THISDAY_REDIS_DB", &c.Cache.RedisDB)

	return errors.Join(errs...)
}

// Validate reports settings that cannot work
func (c Config) Validate() error {
	var errs []error
	if c.BaseURL == "" {
		errs = append(errs, errors.New("base_url must not be empty"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.RequestPause < 0 {
		errs = append(errs, errors.New("request_pause must not be negative"))
	}
	if c.FloorYear > c.CeilingYear {
		errs = append(errs, fmt.Errorf("floor_year %d is after ceiling_year %d", c.FloorYear, c.CeilingYear))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch c.Cache.Backend {
	case CacheMemory, CacheSQLite, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("cache.redis_addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend %q", c.Cache.Backend))
	}
	if c.Cache.Backend != CacheNone && c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}
	return errors.Join(errs...)
}
