package cbr

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const refreshTimeout = 15 * time.Second

// KeyRateSource fetches a reference annual rate in percent
type KeyRateSource interface {
	GetKeyRate(ctx context.Context) (float64, error)
}

// KeyRate is a cached reference rate
type KeyRate struct {
	Rate      float64   `json:"key_rate"` // Percent per year
	FetchedAt time.Time `json:"fetched_at"`
}

// RateCache keeps the last fetched key rate for request handlers
type RateCache struct {
	source KeyRateSource
	log    *logrus.Logger
	now    func() time.Time

	mu      sync.RWMutex
	current *KeyRate
}

// NewRateCache initializes an empty cache over source
func NewRateCache(source KeyRateSource, log *logrus.Logger) *RateCache {
	return &RateCache{source: source, log: log, now: time.Now}
}

// Refresh fetches the rate and replaces the cached value. A failed fetch keeps the old value.
func (c *RateCache) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	rate, err := c.source.GetKeyRate(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh key rate: %w", err)
	}

	c.mu.Lock()
	c.current = &KeyRate{Rate: rate, FetchedAt: c.now()}
	c.mu.Unlock()
	return nil
}

// Current returns the cached rate, if any
func (c *RateCache) Current() (KeyRate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return KeyRate{}, false
	}
	return *c.current, true
}

// Schedule registers a periodic refresh on the cron scheduler
func (c *RateCache) Schedule(scheduler *cron.Cron, spec string) (cron.EntryID, error) {
	id, err := scheduler.AddFunc(spec, func() {
		if err := c.Refresh(context.Background()); err != nil {
			c.log.Warnf("Scheduled key rate refresh failed: %v", err)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("invalid key rate schedule %q: %w", spec, err)
	}
	return id, nil
}
