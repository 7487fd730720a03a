package ports

import (
	"context"
	"errors"
	"io"

	"channel-metrics-service/internal/ingest/core/domain"
)

var (
	// ErrStoreUnavailable marks failures of the store itself rather than of
	// a single row. It aborts the batch that hits it.
	ErrStoreUnavailable = errors.New("record store unavailable")

	ErrPayloadNotFound = errors.New("payload not found")
)

type RecordFilter struct {
	ChannelID   int64
	CountryCode *string // optional
	Limit       int
}

type RecordRepositoryPort interface {
	// InsertRecord:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate (channel, channel_uid)
	//   created = false, err != nil -> rejected by the store, or ErrStoreUnavailable
	InsertRecord(ctx context.Context, r *domain.Record) (created bool, err error)

	ListRecords(ctx context.Context, f RecordFilter) ([]domain.Record, error)
}

// PayloadSourcePort opens a stored CSV export by key.
type PayloadSourcePort interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
