package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HealthChecker is implemented by component-level checkers.
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// ServiceHealthChecker folds component checkers into one service flag.
type ServiceHealthChecker struct {
	healthy   atomic.Int32
	evaluated atomic.Bool
	deps      []HealthChecker
	log       zerolog.Logger
}

func NewServiceHealthChecker(log zerolog.Logger, deps ...HealthChecker) *ServiceHealthChecker {
	return &ServiceHealthChecker{deps: deps, log: log}
}

// IsHealthy returns the cached service health.
func (h *ServiceHealthChecker) IsHealthy() bool { return h.healthy.Load() == 1 }

// Unhealthy lists the names of components currently reporting down.
func (h *ServiceHealthChecker) Unhealthy() []string {
	var down []string
	for _, c := range h.deps {
		if !c.IsHealthy() {
			down = append(down, c.Name())
		}
	}
	return down
}

// Refresh folds the current dependency state into the service flag and
// returns it. Transitions are logged once.
func (h *ServiceHealthChecker) Refresh() bool {
	cur := int32(0)
	down := h.Unhealthy()
	if len(down) == 0 {
		cur = 1
	}
	prev := h.healthy.Swap(cur)
	first := h.evaluated.CompareAndSwap(false, true)
	if first || prev != cur {
		if cur == 1 {
			h.log.Info().Msg("service health: UP")
		} else {
			h.log.Error().Strs("down", down).Msg("service health: DOWN")
		}
	}
	return cur == 1
}

// Start re-evaluates dependency health every interval until ctx is done.
// It does not start the dependencies themselves.
func (h *ServiceHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Refresh()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Refresh()
		}
	}
}
