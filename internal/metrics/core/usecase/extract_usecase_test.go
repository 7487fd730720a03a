package usecase_test

import (
	"context"
	"testing"
	"time"

	channels "channel-metrics-service/internal/channels/core/domain"
	"channel-metrics-service/internal/metrics/core/domain"
	"channel-metrics-service/internal/metrics/core/usecase"
	"channel-metrics-service/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtract_EmitsStoredTotalsIncludingZero(t *testing.T) {
	store := newMemoryStore(
		domain.MetricSummary{ID: 1, ChannelID: 1, ChannelName: "mxit", CountryCode: "za", Metric: "supporter", Total: 7},
		domain.MetricSummary{ID: 2, ChannelID: 1, ChannelName: "mxit", CountryCode: "ng", Metric: "supporter", Total: 0},
	)

	emitter := new(mockEmitter)
	emitter.On("Emit", mock.Anything, "za.mxit.supporter", domain.IntValue(7), domain.HintLast).
		Return(delivered("za.mxit.supporter", domain.IntValue(7)))
	emitter.On("Emit", mock.Anything, "ng.mxit.supporter", domain.IntValue(0), domain.HintLast).
		Return(delivered("ng.mxit.supporter", domain.IntValue(0)))

	uc := usecase.NewExtractUseCase(&fakeChannelRepo{channels: []channels.Channel{mxit}}, store, emitter, zap.NewNop())

	out, err := uc.Execute(context.Background(), "mxit")
	require.NoError(t, err)
	assert.Len(t, out, 2)
	emitter.AssertExpectations(t)
}

func TestExtract_NeverRecomputes(t *testing.T) {
	store := newMemoryStore(
		domain.MetricSummary{ID: 1, ChannelID: 1, ChannelName: "mxit", CountryCode: "za", Metric: "supporter", Total: 2},
	)
	// records changed since the last recompute
	store.counts[countKey(1, "za")] = 50

	emitter := new(mockEmitter)
	emitter.On("Emit", mock.Anything, "za.mxit.supporter", domain.IntValue(2), domain.HintLast).
		Return(delivered("za.mxit.supporter", domain.IntValue(2)))

	uc := usecase.NewExtractUseCase(&fakeChannelRepo{channels: []channels.Channel{mxit}}, store, emitter, zap.NewNop())

	out, err := uc.Execute(context.Background(), "mxit")
	require.NoError(t, err)
	assert.Equal(t, domain.IntValue(2), out["za.mxit.supporter"].Value)
	assert.Empty(t, store.updates)
}

func TestExtractAll_DispatchesOnePerChannel(t *testing.T) {
	store := newMemoryStore(
		domain.MetricSummary{ID: 1, ChannelID: 1, ChannelName: "mxit", CountryCode: "za", Metric: "supporter", Total: 1},
		domain.MetricSummary{ID: 2, ChannelID: 3, ChannelName: "binu", CountryCode: "ng", Metric: "supporter", Total: 2},
	)
	chs := &fakeChannelRepo{channels: []channels.Channel{mxit, binu}}

	emitter := new(mockEmitter)
	emitter.On("Emit", mock.Anything, "za.mxit.supporter", domain.IntValue(1), domain.HintLast).
		Return(delivered("za.mxit.supporter", domain.IntValue(1)))
	emitter.On("Emit", mock.Anything, "ng.binu.supporter", domain.IntValue(2), domain.HintLast).
		Return(delivered("ng.binu.supporter", domain.IntValue(2)))

	pool := worker.NewPool(2, zap.NewNop())
	defer pool.Stop()

	extract := usecase.NewExtractUseCase(chs, store, emitter, zap.NewNop())
	uc := usecase.NewExtractAllUseCase(chs, extract, pool, zap.NewNop())

	handles, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, handles, 2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for name, h := range handles {
		assert.Equal(t, "extract:"+name, h.Name())

		res, err := h.Wait(ctx)
		require.NoError(t, err)

		deliveries, ok := res.(map[string]domain.Delivery)
		require.True(t, ok, "unexpected result type %T", res)
		assert.Len(t, deliveries, 1)
	}
	emitter.AssertExpectations(t)
}

func TestExtractAll_ListError(t *testing.T) {
	chs := &fakeChannelRepo{listErr: assert.AnError}

	pool := worker.NewPool(1, zap.NewNop())
	defer pool.Stop()

	uc := usecase.NewExtractAllUseCase(chs, nil, pool, zap.NewNop())

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
