package usecase

import (
	"context"

	chports "channel-metrics-service/internal/channels/core/ports"
	"channel-metrics-service/internal/ingest/core/domain"
	"channel-metrics-service/internal/ingest/core/ports"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type ListRecordsInput struct {
	ChannelName string
	CountryCode *string
	Limit       int // 0 -> DefaultListLimit
}

type ListRecordsUseCase struct {
	channels chports.ChannelRepositoryPort
	repo     ports.RecordRepositoryPort
}

func NewListRecordsUseCase(channels chports.ChannelRepositoryPort, repo ports.RecordRepositoryPort) *ListRecordsUseCase {
	return &ListRecordsUseCase{channels: channels, repo: repo}
}

func (uc *ListRecordsUseCase) Execute(ctx context.Context, in ListRecordsInput) ([]domain.Record, error) {
	if in.ChannelName == "" || in.Limit < 0 || in.Limit > MaxListLimit {
		return nil, ErrInvalidInput
	}
	if in.Limit == 0 {
		in.Limit = DefaultListLimit
	}

	ch, err := uc.channels.GetByName(ctx, in.ChannelName)
	if err != nil {
		return nil, err
	}

	return uc.repo.ListRecords(ctx, ports.RecordFilter{
		ChannelID:   ch.ID,
		CountryCode: in.CountryCode,
		Limit:       in.Limit,
	})
}
