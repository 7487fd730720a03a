package emitter

import (
	"context"

	"channel-metrics-service/internal/metrics/core/domain"
	"channel-metrics-service/internal/metrics/core/ports"

	"go.uber.org/zap"
)

// LogEmitter writes points to the log. Used when no collector endpoint is
// configured.
type LogEmitter struct {
	logger *zap.Logger
}

var _ ports.EmitterPort = (*LogEmitter)(nil)

func NewLogEmitter(logger *zap.Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

func (e *LogEmitter) Emit(_ context.Context, name string, value domain.Value, hint domain.AggregationHint) domain.Delivery {
	e.logger.Info("metric",
		zap.String("metric", name),
		zap.Stringer("value", value),
		zap.String("hint", string(hint)),
	)
	return domain.Delivery{Name: name, Value: value, Hint: hint, Delivered: true}
}
