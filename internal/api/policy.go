package api

import (
	"context"
	"sync"
	"time"

	"github.com/thesavant42/thisday/internal/models"
)

const (
	// DefaultRequestPause is the minimum gap between consecutive network calls
	DefaultRequestPause = 120 * time.Millisecond
	// DefaultCacheTTL bounds how long an observed outcome is reused
	DefaultCacheTTL = 30 * time.Minute
)

// Cache stores outcomes keyed by final request URL
type Cache interface {
	Get(ctx context.Context, key string) (models.Outcome, bool)
	Set(ctx context.Context, key string, outcome models.Outcome)
}

// Pacer blocks until the next network call may be issued
type Pacer interface {
	Wait(ctx context.Context) error
}

// Policy bundles the politeness measures applied by the Client.
// Nil Cache disables caching; nil Pacer disables pacing.
type Policy struct {
	Cache         Cache
	Pacer         Pacer
	CacheFailures bool // also reuse failed outcomes within the TTL
}

// NoPacer never waits
type NoPacer struct{}

func (NoPacer) Wait(ctx context.Context) error { return ctx.Err() }

// IntervalPacer enforces a minimum gap between consecutive calls to Wait.
// The first call never waits.
type IntervalPacer struct {
	interval time.Duration

	mu    sync.Mutex
	last  time.Time
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewIntervalPacer creates a pacer with the given minimum gap
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	return &IntervalPacer{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait sleeps out whatever remains of the interval since the previous call
func (p *IntervalPacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() {
		if remaining := p.interval - p.now().Sub(p.last); remaining > 0 {
			if err := p.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	p.last = p.now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
