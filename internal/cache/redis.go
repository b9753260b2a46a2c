package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/thesavant42/thisday/internal/models"
)

const redisKeyPrefix = "thisday:response:"

// RedisConfig holds connection settings for a shared response cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis caches outcomes in Redis so several processes share one politeness budget
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewRedis connects to Redis and verifies connectivity
func NewRedis(cfg RedisConfig, logger *log.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &Redis{client: client, ttl: cfg.TTL, logger: logger}, nil
}

// key hashes the URL so arbitrary query strings make safe keys
func (r *Redis) key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%s%x", redisKeyPrefix, hash)
}

// Get returns the stored outcome; Redis errors are treated as misses
func (r *Redis) Get(ctx context.Context, key string) (models.Outcome, bool) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil && r.logger != nil {
			r.logger.Warn("Redis cache read failed", "error", err)
		}
		return models.Outcome{}, false
	}

	var outcome models.Outcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return models.Outcome{}, false
	}
	return outcome, true
}

// Set stores the outcome with the configured TTL
func (r *Redis) Set(ctx context.Context, key string, outcome models.Outcome) {
	data, err := json.Marshal(outcome)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil && r.logger != nil {
		r.logger.Warn("Redis cache write failed", "error", err)
	}
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}
