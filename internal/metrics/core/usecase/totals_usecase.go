package usecase

import (
	"context"
	"fmt"

	"channel-metrics-service/internal/metrics/core/domain"
	"channel-metrics-service/internal/metrics/core/ports"

	"go.uber.org/zap"
)

// TotalsUseCase sums stored totals across channels for each tracked bucket
// and emits one point per bucket.
type TotalsUseCase struct {
	store      ports.SummaryStorePort
	emitter    ports.EmitterPort
	buckets    []domain.Bucket
	nullAsZero bool
	logger     *zap.Logger
}

type TotalsOption func(*TotalsUseCase)

func WithBuckets(buckets []domain.Bucket) TotalsOption {
	return func(uc *TotalsUseCase) { uc.buckets = buckets }
}

// WithNullAsZero emits 0 instead of null for buckets without summaries.
func WithNullAsZero(enabled bool) TotalsOption {
	return func(uc *TotalsUseCase) { uc.nullAsZero = enabled }
}

func NewTotalsUseCase(
	store ports.SummaryStorePort,
	emitter ports.EmitterPort,
	logger *zap.Logger,
	opts ...TotalsOption,
) (*TotalsUseCase, error) {
	uc := &TotalsUseCase{
		store:   store,
		emitter: emitter,
		buckets: domain.DefaultBuckets(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(uc)
	}

	if err := validateBuckets(uc.buckets); err != nil {
		return nil, err
	}
	return uc, nil
}

// Execute returns deliveries keyed by bucket key.
func (uc *TotalsUseCase) Execute(ctx context.Context) (map[string]domain.Delivery, error) {
	out := make(map[string]domain.Delivery, len(uc.buckets))

	for _, b := range uc.buckets {
		var filter *string
		if b.CountryCode != "" {
			cc := b.CountryCode
			filter = &cc
		}

		total, err := uc.store.SumTotals(ctx, filter)
		if err != nil {
			return out, fmt.Errorf("sum %s: %w", b.Name(), err)
		}
		if !total.Valid && uc.nullAsZero {
			total = domain.IntValue(0)
		}

		d := uc.emitter.Emit(ctx, b.Name(), total, domain.HintLast)
		logDelivery(uc.logger, d)
		out[b.Key] = d
	}

	return out, nil
}

func validateBuckets(buckets []domain.Bucket) error {
	if len(buckets) == 0 {
		return fmt.Errorf("%w: none configured", ErrInvalidBuckets)
	}

	seen := make(map[string]struct{}, len(buckets))
	for _, b := range buckets {
		if b.Key == "" || b.Metric == "" {
			return fmt.Errorf("%w: key and metric are required", ErrInvalidBuckets)
		}
		if _, dup := seen[b.Key]; dup {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidBuckets, b.Key)
		}
		seen[b.Key] = struct{}{}
	}
	return nil
}
