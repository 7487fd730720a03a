package ports

import (
	"context"

	"channel-metrics-service/internal/metrics/core/domain"
)

// EmitterPort sends one named point to the external collector. Transport
// failures are reported in the returned Delivery, never as an error.
type EmitterPort interface {
	Emit(ctx context.Context, name string, value domain.Value, hint domain.AggregationHint) domain.Delivery
}
