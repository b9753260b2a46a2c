package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/thisday/internal/models"
)

// PutResponse stores an outcome for a request URL, replacing any previous one
func (db *DB) PutResponse(ctx context.Context, url string, outcome models.Outcome, fetchedAt time.Time) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to encode outcome: %w", err)
	}

	var status interface{}
	if outcome.Diagnostic.Status != nil {
		status = *outcome.Diagnostic.Status
	}

	_, err = db.conn.ExecContext(ctx, upsertResponse, url, string(data), outcome.OK(), status, formatTimestamp(fetchedAt))
	if err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}
	return nil
}

// GetResponse returns the stored outcome and when it was fetched.
// Returns found=false if nothing is stored for url.
func (db *DB) GetResponse(ctx context.Context, url string) (models.Outcome, time.Time, bool, error) {
	var data, fetchedAt string
	err := db.conn.QueryRowContext(ctx, selectResponse, url).Scan(&data, &fetchedAt)
	if err == sql.ErrNoRows {
		return models.Outcome{}, time.Time{}, false, nil
	}
	if err != nil {
		return models.Outcome{}, time.Time{}, false, fmt.Errorf("failed to query response: %w", err)
	}

	var outcome models.Outcome
	if err := json.Unmarshal([]byte(data), &outcome); err != nil {
		return models.Outcome{}, time.Time{}, false, fmt.Errorf("failed to decode outcome: %w", err)
	}

	ts, err := parseTimestamp(fetchedAt)
	if err != nil {
		return models.Outcome{}, time.Time{}, false, err
	}
	return outcome, ts, true, nil
}

// DeleteResponse removes the stored outcome for url
func (db *DB) DeleteResponse(ctx context.Context, url string) error {
	if _, err := db.conn.ExecContext(ctx, deleteResponse, url); err != nil {
		return fmt.Errorf("failed to delete response: %w", err)
	}
	return nil
}

// PruneResponses deletes everything fetched before cutoff and returns the number removed
func (db *DB) PruneResponses(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := db.conn.ExecContext(ctx, deleteResponsesBefore, formatTimestamp(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to prune responses: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// ResponseCount returns the number of stored responses
func (db *DB) ResponseCount(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, selectResponseCount).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

// ResponseCache adapts DB to the archive client's cache interface with a TTL.
// Storage errors are logged and treated as misses.
type ResponseCache struct {
	db     *DB
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger
}

// NewResponseCache wraps db as a TTL response cache
func NewResponseCache(db *DB, ttl time.Duration, logger *log.Logger) *ResponseCache {
	return &ResponseCache{db: db, ttl: ttl, now: time.Now, logger: logger}
}

// Get returns a stored outcome younger than the TTL
func (c *ResponseCache) Get(ctx context.Context, key string) (models.Outcome, bool) {
	outcome, fetchedAt, found, err := c.db.GetResponse(ctx, key)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("SQLite cache read failed", "error", err)
		}
		return models.Outcome{}, false
	}
	if !found {
		return models.Outcome{}, false
	}
	if c.now().Sub(fetchedAt) > c.ttl {
		_ = c.db.DeleteResponse(ctx, key)
		return models.Outcome{}, false
	}
	return outcome, true
}

// Set stores the outcome stamped with the current time
func (c *ResponseCache) Set(ctx context.Context, key string, outcome models.Outcome) {
	if err := c.db.PutResponse(ctx, key, outcome, c.now()); err != nil && c.logger != nil {
		c.logger.Warn("SQLite cache write failed", "error", err)
	}
}

// Prune drops every expired entry
func (c *ResponseCache) Prune(ctx context.Context) (int64, error) {
	return c.db.PruneResponses(ctx, c.now().Add(-c.ttl))
}
