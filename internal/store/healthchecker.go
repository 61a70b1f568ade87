package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/medtimer/medtimer-server/internal/health"
)

const defaultProbeTimeout = 2 * time.Second

// HealthChecker monitors the store with periodic pings.
type HealthChecker struct {
	pinger       health.HealthPinger
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewHealthChecker starts unhealthy until the first successful probe.
func NewHealthChecker(p health.HealthPinger, log zerolog.Logger, probeTimeout time.Duration) *HealthChecker {
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	return &HealthChecker{
		pinger:       p,
		log:          log,
		probeTimeout: probeTimeout,
	}
}

func (hc *HealthChecker) Name() string { return "store" }

// IsHealthy returns the cached result of the last probe.
func (hc *HealthChecker) IsHealthy() bool { return hc.healthy.Load() == 1 }

// Start probes immediately and then every interval until ctx is done.
func (hc *HealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	hc.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hc.Probe(ctx)
		}
	}
}

// Probe pings the store once, records the result and returns it.
func (hc *HealthChecker) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, hc.probeTimeout)
	defer cancel()

	if err := hc.pinger.HealthPing(ctx); err != nil {
		hc.log.Error().Stack().
			Str("checker", hc.Name()).
			Str("kind", string(Classify(err))).
			Err(err).
			Msg("store health check failed")
		hc.healthy.Store(0)
		return false
	}
	hc.healthy.Store(1)
	return true
}
