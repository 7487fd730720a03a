package postgres

import (
	"context"
	"fmt"

	"channel-metrics-service/internal/channels/core/domain"
	"channel-metrics-service/internal/channels/core/ports"
)

type ChannelRepository struct {
	db DB
}

func NewChannelRepository(db DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

var _ ports.ChannelRepositoryPort = (*ChannelRepository)(nil)

const selectChannelByNameSQL = `
SELECT id, name, default_country_code
FROM channels
WHERE name = $1;
`

const selectChannelsSQL = `
SELECT id, name, default_country_code
FROM channels
ORDER BY name;
`

func (r *ChannelRepository) GetByName(ctx context.Context, name string) (*domain.Channel, error) {
	rows, err := r.db.QueryContext(ctx, selectChannelByNameSQL, name)
	if err != nil {
		return nil, fmt.Errorf("select channel %q: %w", name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ports.ErrChannelNotFound, name)
	}

	ch, err := scanChannel(rows)
	if err != nil {
		return nil, err
	}
	return ch, rows.Err()
}

func (r *ChannelRepository) List(ctx context.Context) ([]domain.Channel, error) {
	rows, err := r.db.QueryContext(ctx, selectChannelsSQL)
	if err != nil {
		return nil, fmt.Errorf("select channels: %w", err)
	}
	defer rows.Close()

	var channels []domain.Channel
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, *ch)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return channels, nil
}

func scanChannel(rows RowScanner) (*domain.Channel, error) {
	var ch domain.Channel
	if err := rows.Scan(&ch.ID, &ch.Name, &ch.DefaultCountryCode); err != nil {
		return nil, err
	}
	ch.Kind = domain.KindOf(ch.Name)
	return &ch, nil
}
