package ports

import (
	"context"
	"errors"

	"channel-metrics-service/internal/channels/core/domain"
)

var ErrChannelNotFound = errors.New("channel not found")

type ChannelRepositoryPort interface {
	// GetByName returns ErrChannelNotFound when no channel carries the name.
	GetByName(ctx context.Context, name string) (*domain.Channel, error)
	List(ctx context.Context) ([]domain.Channel, error)
}
