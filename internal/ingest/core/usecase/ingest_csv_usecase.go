package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	chports "channel-metrics-service/internal/channels/core/ports"
	"channel-metrics-service/internal/ingest/core/normalizer"
	"channel-metrics-service/internal/ingest/core/ports"

	"go.uber.org/zap"
)

var (
	ErrInvalidInput        = errors.New("invalid ingest input")
	ErrSourceNotConfigured = errors.New("payload source not configured")
)

// IngestCSVUseCase writes every row of a channel export that normalizes
// cleanly. Rows are inserted one at a time without a surrounding
// transaction, so a batch may partially succeed. Dropped rows are logged
// and never retried here. Only a store outage or cancellation stops a
// batch early.
type IngestCSVUseCase struct {
	channels chports.ChannelRepositoryPort
	repo     ports.RecordRepositoryPort
	source   ports.PayloadSourcePort
	logger   *zap.Logger
}

func NewIngestCSVUseCase(
	channels chports.ChannelRepositoryPort,
	repo ports.RecordRepositoryPort,
	source ports.PayloadSourcePort,
	logger *zap.Logger,
) *IngestCSVUseCase {
	return &IngestCSVUseCase{
		channels: channels,
		repo:     repo,
		source:   source,
		logger:   logger,
	}
}

type IngestCSVInput struct {
	ChannelName string
	// DefaultCountryCode falls back to the channel's own default when empty.
	DefaultCountryCode string
	Payload            io.Reader
}

type IngestFromSourceInput struct {
	ChannelName        string
	DefaultCountryCode string
	Key                string
}

type IngestCSVResult struct {
	Channel    string
	Created    int
	Duplicates int
	Rejected   int
	Failed     int
}

func (uc *IngestCSVUseCase) Execute(ctx context.Context, in IngestCSVInput) (IngestCSVResult, error) {
	res := IngestCSVResult{Channel: in.ChannelName}

	if in.ChannelName == "" || in.Payload == nil {
		return res, ErrInvalidInput
	}

	ch, err := uc.channels.GetByName(ctx, in.ChannelName)
	if err != nil {
		return res, err
	}

	countryCode := in.DefaultCountryCode
	if countryCode == "" {
		countryCode = ch.DefaultCountryCode
	}

	batch, err := normalizer.Normalize(in.Payload, *ch, countryCode)
	if err != nil {
		return res, fmt.Errorf("normalize %s payload: %w", ch.Name, err)
	}

	log := uc.logger.With(zap.String("channel", ch.Name))

	for _, rej := range batch.Rejected {
		res.Rejected++
		log.Warn("row rejected",
			zap.Int("line", rej.Line),
			zap.String("reason", rej.Err.Error()),
		)
	}

	for i := range batch.Accepted {
		rec := &batch.Accepted[i]

		created, err := uc.repo.InsertRecord(ctx, rec)
		if err != nil {
			if errors.Is(err, ports.ErrStoreUnavailable) || ctx.Err() != nil {
				log.Error("ingest aborted",
					zap.Int("created", res.Created),
					zap.Error(err),
				)
				return res, err
			}
			res.Failed++
			log.Warn("row not stored",
				zap.String("channel_uid", rec.ChannelUID),
				zap.Error(err),
			)
			continue
		}

		if !created {
			res.Duplicates++
			log.Info("duplicate row skipped", zap.String("channel_uid", rec.ChannelUID))
			continue
		}
		res.Created++
	}

	log.Info("ingest finished",
		zap.Int("created", res.Created),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("rejected", res.Rejected),
		zap.Int("failed", res.Failed),
	)

	return res, nil
}

// ExecuteFromSource reads the export stored under in.Key and ingests it.
func (uc *IngestCSVUseCase) ExecuteFromSource(ctx context.Context, in IngestFromSourceInput) (IngestCSVResult, error) {
	if in.ChannelName == "" || in.Key == "" {
		return IngestCSVResult{Channel: in.ChannelName}, ErrInvalidInput
	}
	if uc.source == nil {
		return IngestCSVResult{Channel: in.ChannelName}, ErrSourceNotConfigured
	}

	body, err := uc.source.Open(ctx, in.Key)
	if err != nil {
		return IngestCSVResult{Channel: in.ChannelName}, err
	}
	defer body.Close()

	return uc.Execute(ctx, IngestCSVInput{
		ChannelName:        in.ChannelName,
		DefaultCountryCode: in.DefaultCountryCode,
		Payload:            body,
	})
}
