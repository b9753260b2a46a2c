// Package cache provides response caches for the archive client
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/thesavant42/thisday/internal/models"
)

type entry struct {
	outcome  models.Outcome
	storedAt time.Time
}

// Memory is a process-lifetime TTL cache keyed by request URL
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	entries   map[string]entry
	lastSweep time.Time
}

// NewMemory creates an in-memory cache whose entries expire after ttl
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get returns the outcome stored for key if it has not expired
func (m *Memory) Get(_ context.Context, key string) (models.Outcome, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return models.Outcome{}, false // Cache miss
	}
	if m.now().Sub(e.storedAt) > m.ttl {
		delete(m.entries, key)
		return models.Outcome{}, false // Cache miss (expired)
	}
	return e.outcome, true
}

// Set stores an outcome, replacing any previous one.
// At most once per TTL it also drops every expired entry.
func (m *Memory) Set(_ context.Context, key string, outcome models.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) > m.ttl {
		m.sweep(now)
	}
	m.entries[key] = entry{outcome: outcome, storedAt: now}
}

// sweep removes expired entries; callers hold mu
func (m *Memory) sweep(now time.Time) {
	for key, e := range m.entries {
		if now.Sub(e.storedAt) > m.ttl {
			delete(m.entries, key)
		}
	}
	m.lastSweep = now
}

// Len returns the number of stored entries, including expired ones not yet swept
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
