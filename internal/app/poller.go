package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/five82/glyphart/internal/glyphsvc"
	"github.com/five82/glyphart/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// HealthChecker probes the conversion service.
type HealthChecker interface {
	Health(ctx context.Context) (*glyphsvc.HealthResponse, error)
}

// RunPoller refreshes the store until ctx is cancelled. Consecutive failures
// back off exponentially up to maxBackoff.
func RunPoller(ctx context.Context, store *state.Store, client HealthChecker, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	failures := 0
	for {
		if err := refresh(ctx, store, client); err != nil {
			failures++
		} else {
			failures = 0
		}

		timer := time.NewTimer(calculateBackoff(failures, interval))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

func refresh(ctx context.Context, store *state.Store, client HealthChecker) error {
	health, err := client.Health(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		store.Update(nil, err)
		log.Warn().Err(err).Msg("health probe failed")
		return err
	}
	store.Update(health, nil)
	return nil
}

// calculateBackoff doubles base for every consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
