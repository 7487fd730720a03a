package ports

import (
	"context"
	"errors"

	"channel-metrics-service/internal/metrics/core/domain"
)

var ErrStoreUnavailable = errors.New("summary store unavailable")

type SummaryStorePort interface {
	ListSummaries(ctx context.Context, channelID int64) ([]domain.MetricSummary, error)
	// CountRecords counts stored records of the channel carrying countryCode.
	CountRecords(ctx context.Context, channelID int64, countryCode string) (int64, error)
	UpdateSummaryTotal(ctx context.Context, summaryID int64, total int64) error
	// SumTotals sums summary totals across channels. A nil countryCode sums
	// all of them; no matching rows yields a null Value.
	SumTotals(ctx context.Context, countryCode *string) (domain.Value, error)
}
