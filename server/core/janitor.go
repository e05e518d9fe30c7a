package core

import (
	"context"
	"time"

	"github.com/decred/slog"
)

// Janitor deletes abandoned parties: records nobody wrote to within the TTL,
// and finished matches after a short grace period. Subscribers of a reaped
// record receive a delete event like any other teardown.
type Janitor struct {
	store    *Store
	ttl      time.Duration
	grace    time.Duration
	interval time.Duration
	log      slog.Logger
}

func NewJanitor(store *Store, ttl, grace time.Duration, log slog.Logger) *Janitor {
	if log == nil {
		log = slog.Disabled
	}
	interval := ttl / 3
	if interval <= 0 || interval > 30*time.Second {
		interval = 30 * time.Second
	}
	return &Janitor{store: store, ttl: ttl, grace: grace, interval: interval, log: log}
}

// Run sweeps on a ticker until ctx is done.
func (j *Janitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.log.Infof("Janitor started (ttl=%s, grace=%s)", j.ttl, j.grace)
	for {
		select {
		case <-ctx.Done():
			j.log.Debugf("Janitor stopped")
			return nil
		case <-ticker.C:
			j.Sweep()
		}
	}
}

// Sweep runs one expiry pass and returns the removed codes.
func (j *Janitor) Sweep() []string {
	codes := j.store.Expire(j.ttl, j.grace)
	for _, code := range codes {
		j.log.Infof("Expired party %s", code)
	}
	return codes
}
