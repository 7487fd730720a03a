package usecase

import (
	"context"
	"fmt"

	chports "channel-metrics-service/internal/channels/core/ports"
	"channel-metrics-service/internal/metrics/core/domain"
	"channel-metrics-service/internal/metrics/core/ports"

	"go.uber.org/zap"
)

// ExtractUseCase emits the stored totals of a channel as they are, zero
// included, without touching the records.
type ExtractUseCase struct {
	channels chports.ChannelRepositoryPort
	store    ports.SummaryStorePort
	emitter  ports.EmitterPort
	logger   *zap.Logger
}

func NewExtractUseCase(
	channels chports.ChannelRepositoryPort,
	store ports.SummaryStorePort,
	emitter ports.EmitterPort,
	logger *zap.Logger,
) *ExtractUseCase {
	return &ExtractUseCase{channels: channels, store: store, emitter: emitter, logger: logger}
}

func (uc *ExtractUseCase) Execute(ctx context.Context, channelName string) (map[string]domain.Delivery, error) {
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
		d := uc.emitter.Emit(ctx, s.Name(), domain.IntValue(s.Total), domain.HintLast)
		logDelivery(uc.logger, d)
		out[d.Name] = d
	}

	return out, nil
}
