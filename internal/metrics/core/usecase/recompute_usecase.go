package usecase

import (
	"context"
	"fmt"

	chports "channel-metrics-service/internal/channels/core/ports"
	"channel-metrics-service/internal/metrics/core/domain"
	"channel-metrics-service/internal/metrics/core/ports"

	"go.uber.org/zap"
)

// RecomputeUseCase rebuilds every summary of a channel from the stored
// records and emits the non-zero totals.
type RecomputeUseCase struct {
	channels chports.ChannelRepositoryPort
	store    ports.SummaryStorePort
	emitter  ports.EmitterPort
	logger   *zap.Logger
}

func NewRecomputeUseCase(
	channels chports.ChannelRepositoryPort,
	store ports.SummaryStorePort,
	emitter ports.EmitterPort,
	logger *zap.Logger,
) *RecomputeUseCase {
	return &RecomputeUseCase{channels: channels, store: store, emitter: emitter, logger: logger}
}

// Execute returns the deliveries keyed by metric name. Summaries whose
// count is zero are still overwritten but not emitted.
func (uc *RecomputeUseCase) Execute(ctx context.Context, channelName string) (map[string]domain.Delivery, error) {
	if channelName == "" {
		return nil, ErrInvalidChannelName
	}

	ch, err := uc.channels.GetByName(ctx, channelName)
	if err != nil {
		return nil, err
	}

	summaries, err := uc.store.ListSummaries(ctx, ch.ID)
	if err != nil {
		return nil, fmt.Errorf("list summaries of %s: %w", ch.Name, err)
	}

	out := make(map[string]domain.Delivery, len(summaries))
	for _, s := range summaries {
		total, err := uc.store.CountRecords(ctx, ch.ID, s.CountryCode)
		if err != nil {
			return out, fmt.Errorf("count %s records: %w", s.Name(), err)
		}

		if total != 0 {
			d := uc.emitter.Emit(ctx, s.Name(), domain.IntValue(total), domain.HintLast)
			logDelivery(uc.logger, d)
			out[d.Name] = d
		}

		if err := uc.store.UpdateSummaryTotal(ctx, s.ID, total); err != nil {
			return out, fmt.Errorf("update %s: %w", s.Name(), err)
		}
	}

	return out, nil
}

func logDelivery(logger *zap.Logger, d domain.Delivery) {
	if d.Delivered {
		logger.Debug("metric emitted",
			zap.String("metric", d.Name),
			zap.Stringer("value", d.Value),
		)
		return
	}
	logger.Error("metric emission failed",
		zap.String("metric", d.Name),
		zap.Stringer("value", d.Value),
		zap.String("error", d.Error),
	)
}
