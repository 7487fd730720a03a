package usecase

import (
	"context"
	"fmt"

	chports "channel-metrics-service/internal/channels/core/ports"
	"channel-metrics-service/internal/metrics/core/domain"
	"channel-metrics-service/internal/metrics/core/ports"
	"channel-metrics-service/internal/worker"

	"go.uber.org/zap"
)

type ChannelExtractor interface {
	Execute(ctx context.Context, channelName string) (map[string]domain.Delivery, error)
}

// ExtractAllUseCase dispatches one extract task per known channel and
// returns without waiting for them.
type ExtractAllUseCase struct {
	channels   chports.ChannelRepositoryPort
	extract    ChannelExtractor
	dispatcher ports.DispatcherPort
	logger     *zap.Logger
}

func NewExtractAllUseCase(
	channels chports.ChannelRepositoryPort,
	extract ChannelExtractor,
	dispatcher ports.DispatcherPort,
	logger *zap.Logger,
) *ExtractAllUseCase {
	return &ExtractAllUseCase{channels: channels, extract: extract, dispatcher: dispatcher, logger: logger}
}

// Execute returns the task handle of every channel keyed by channel name.
func (uc *ExtractAllUseCase) Execute(ctx context.Context) (map[string]*worker.Handle, error) {
	chs, err := uc.channels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}

	out := make(map[string]*worker.Handle, len(chs))
	for _, ch := range chs {
		name := ch.Name
		out[name] = uc.dispatcher.Dispatch("extract:"+name, func(ctx context.Context) (any, error) {
			return uc.extract.Execute(ctx, name)
		})
	}

	uc.logger.Info("extract dispatched", zap.Int("channels", len(out)))

	return out, nil
}
