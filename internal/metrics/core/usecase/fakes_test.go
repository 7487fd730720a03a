package usecase_test

import (
	"context"
	"fmt"
	"sync"

	channels "channel-metrics-service/internal/channels/core/domain"
	chports "channel-metrics-service/internal/channels/core/ports"
	"channel-metrics-service/internal/metrics/core/domain"

	"github.com/stretchr/testify/mock"
)

type fakeChannelRepo struct {
	channels []channels.Channel
	listErr  error
}

func (f *fakeChannelRepo) GetByName(ctx context.Context, name string) (*channels.Channel, error) {
	for _, ch := range f.channels {
		if ch.Name == name {
			c := ch
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", chports.ErrChannelNotFound, name)
}

func (f *fakeChannelRepo) List(ctx context.Context) ([]channels.Channel, error) {
	return f.channels, f.listErr
}

// memoryStore keeps summaries and per-(channel, country) record counts.
type memoryStore struct {
	mu        sync.Mutex
	summaries []domain.MetricSummary
	counts    map[string]int64
	updates   map[int64]int64

	CountErr  error
	UpdateErr error
	SumFn     func(ctx context.Context, countryCode *string) (domain.Value, error)
}

func newMemoryStore(summaries ...domain.MetricSummary) *memoryStore {
	return &memoryStore{
		summaries: summaries,
		counts:    map[string]int64{},
		updates:   map[int64]int64{},
	}
}

func countKey(channelID int64, cc string) string { return fmt.Sprintf("%d|%s", channelID, cc) }

func (m *memoryStore) ListSummaries(ctx context.Context, channelID int64) ([]domain.MetricSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.MetricSummary
	for _, s := range m.summaries {
		if s.ChannelID == channelID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memoryStore) CountRecords(ctx context.Context, channelID int64, countryCode string) (int64, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[countKey(channelID, countryCode)], nil
}

func (m *memoryStore) UpdateSummaryTotal(ctx context.Context, summaryID int64, total int64) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updates[summaryID] = total
	for i := range m.summaries {
		if m.summaries[i].ID == summaryID {
			m.summaries[i].Total = total
		}
	}
	return nil
}

func (m *memoryStore) SumTotals(ctx context.Context, countryCode *string) (domain.Value, error) {
	if m.SumFn != nil {
		return m.SumFn(ctx, countryCode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		sum   int64
		found bool
	)
	for _, s := range m.summaries {
		if countryCode == nil || s.CountryCode == *countryCode {
			sum += s.Total
			found = true
		}
	}
	if !found {
		return domain.NullValue, nil
	}
	return domain.IntValue(sum), nil
}

type mockEmitter struct {
	mock.Mock
}

func (m *mockEmitter) Emit(ctx context.Context, name string, value domain.Value, hint domain.AggregationHint) domain.Delivery {
	args := m.Called(ctx, name, value, hint)
	if fn, ok := args.Get(0).(func(context.Context, string, domain.Value, domain.AggregationHint) domain.Delivery); ok {
		return fn(ctx, name, value, hint)
	}
	return args.Get(0).(domain.Delivery)
}

func delivered(name string, v domain.Value) domain.Delivery {
	return domain.Delivery{Name: name, Value: v, Hint: domain.HintLast, Delivered: true, StatusCode: 200}
}

var (
	mxit = channels.Channel{ID: 1, Name: "mxit", Kind: channels.KindMxit, DefaultCountryCode: "za"}
	binu = channels.Channel{ID: 3, Name: "binu", Kind: channels.KindBinu, DefaultCountryCode: "ng"}
)
