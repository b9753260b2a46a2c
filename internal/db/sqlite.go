package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// MemoryDSN keeps the database in process memory
const MemoryDSN = ":memory:"

// timestampFormat sorts lexically in time order, which the expiry query relies on
const timestampFormat = "2006-01-02T15:04:05.000000000Z"

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dsn and initializes the schema.
// An empty dsn or MemoryDSN keeps everything in memory.
func New(dsn string) (*DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	inMemory := strings.Contains(dsn, ":memory:")
	if !inMemory {
		// Ensure the directory exists
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to :memory: would get its own empty database
	if inMemory {
		conn.SetMaxOpenConns(1)
	}

	if _, err := conn.Exec(createResponsesTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create responses schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

// parseTimestamp parses SQLite timestamp formats
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		timestampFormat,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", ts)
}
