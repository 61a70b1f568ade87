package health

import "context"

// HealthPinger is implemented by components that can answer a cheap liveness
// probe. HealthPing returns nil when the component is reachable.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
