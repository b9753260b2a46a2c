package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/thisday/internal/api"
	"github.com/thesavant42/thisday/internal/cache"
	"github.com/thesavant42/thisday/internal/config"
	"github.com/thesavant42/thisday/internal/db"
	"github.com/thesavant42/thisday/internal/models"
	"github.com/thesavant42/thisday/internal/scan"
	"github.com/urfave/cli/v2"
)

// runtime is everything a command needs, built once from config and flags
type runtime struct {
	cfg     config.Config
	logger  *log.Logger
	client  *api.Client
	scanner *scan.Scanner
	filters models.SearchFilters
	closers []func() error
}

func (r *runtime) Close() {
	for _, c := range r.closers {
		_ = c()
	}
}

// loadConfig layers CLI flags over config.Load
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("cache") {
		cfg.Cache.Backend = c.String("cache")
	}
	if c.IsSet("cache-path") {
		cfg.Cache.Path = c.String("cache-path")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("limit") {
		cfg.Limit = c.Int("limit")
	}
	if c.IsSet("pause") {
		cfg.RequestPause = c.Duration("pause")
	}

	return cfg, cfg.Validate()
}

func newRuntime(c *cli.Context) (*runtime, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	rt := &runtime{cfg: cfg, logger: logger}

	policy := api.Policy{CacheFailures: cfg.Cache.CacheFailures}
	if cfg.RequestPause > 0 {
		policy.Pacer = api.NewIntervalPacer(cfg.RequestPause)
	}

	switch cfg.Cache.Backend {
	case config.CacheMemory:
		policy.Cache = cache.NewMemory(cfg.Cache.TTL)
	case config.CacheSQLite:
		database, err := db.New(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, database.Close)
		responses := db.NewResponseCache(database, cfg.Cache.TTL, logger)
		if n, err := responses.Prune(c.Context); err == nil && n > 0 {
			logger.Debug("Pruned expired responses", "count", n)
		}
		policy.Cache = responses
	case config.CacheRedis:
		rc, err := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		}, logger)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, rc.Close)
		policy.Cache = rc
	}

	rt.client = api.NewClient(
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.Timeout),
		api.WithUserAgent(cfg.UserAgent),
		api.WithPolicy(policy),
		api.WithLogger(logger),
	)
	rt.scanner = scan.New(rt.client,
		scan.WithYearBounds(cfg.FloorYear, cfg.CeilingYear),
		scan.WithLogger(logger),
	)

	rt.filters, err = filtersFromFlags(c, cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

func filtersFromFlags(c *cli.Context, cfg config.Config) (models.SearchFilters, error) {
	region := strings.TrimSpace(c.String("state"))
	if !strings.EqualFold(region, api.RegionAll) {
		region = strings.ToLower(region)
	} else {
		region = api.RegionAll
	}
	if !api.ValidRegion(region) {
		return models.SearchFilters{}, fmt.Errorf("unknown state %q", c.String("state"))
	}

	return models.SearchFilters{
		Region:         region,
		Keyword:        c.String("keyword"),
		FrontPagesOnly: c.Bool("front-pages"),
		Limit:          cfg.Limit,
	}, nil
}
