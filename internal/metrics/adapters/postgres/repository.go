package postgres

import (
	"context"
	"errors"
	"fmt"

	"channel-metrics-service/internal/metrics/core/domain"
	"channel-metrics-service/internal/metrics/core/ports"
	"channel-metrics-service/internal/pkg/pgdb"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

const (
	tableSummaries = "metric_summaries"
	tableRecords   = "incoming_data"
)

var ErrSummaryNotFound = errors.New("metric summary not found")

func wrapErr(err error) error {
	if pgdb.IsUnavailable(err) {
		return fmt.Errorf("%w: %v", ports.ErrStoreUnavailable, err)
	}
	return err
}

// builder returns a squirrel builder using postgres placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

type SummaryRepository struct {
	db DB
}

func NewSummaryRepository(db DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

var _ ports.SummaryStorePort = (*SummaryRepository)(nil)

func (r *SummaryRepository) ListSummaries(ctx context.Context, channelID int64) ([]domain.MetricSummary, error) {
	query, args, err := builder().
		Select("ms.id", "ms.channel_id", "c.name", "ms.country_code", "ms.metric", "ms.total").
		From(tableSummaries + " ms").
		Join("channels c ON c.id = ms.channel_id").
		Where(squirrel.Eq{"ms.channel_id": channelID}).
		OrderBy("ms.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var out []domain.MetricSummary
	for rows.Next() {
		var s domain.MetricSummary
		if err := rows.Scan(&s.ID, &s.ChannelID, &s.ChannelName, &s.CountryCode, &s.Metric, &s.Total); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}

	return out, nil
}

func (r *SummaryRepository) CountRecords(ctx context.Context, channelID int64, countryCode string) (int64, error) {
	query, args, err := builder().
		Select("COUNT(*)").
		From(tableRecords).
		Where(squirrel.Eq{"channel_id": channelID, "country_code": countryCode}).
		ToSql()
	if err != nil {
		return 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, wrapErr(err)
	}
	defer rows.Close()

	var total int64
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return 0, err
		}
	}

	if err := rows.Err(); err != nil {
		return 0, wrapErr(err)
	}

	return total, nil
}

func (r *SummaryRepository) UpdateSummaryTotal(ctx context.Context, summaryID int64, total int64) error {
	query, args, err := builder().
		Update(tableSummaries).
		Set("total", total).
		Where(squirrel.Eq{"id": summaryID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapErr(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrSummaryNotFound, summaryID)
	}
	return nil
}

// SumTotals scans SUM(total), which postgres returns as a nullable numeric.
func (r *SummaryRepository) SumTotals(ctx context.Context, countryCode *string) (domain.Value, error) {
	q := builder().
		Select("SUM(total)").
		From(tableSummaries)
	if countryCode != nil {
		q = q.Where(squirrel.Eq{"country_code": *countryCode})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return domain.NullValue, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.NullValue, wrapErr(err)
	}
	defer rows.Close()

	var sum decimal.NullDecimal
	if rows.Next() {
		if err := rows.Scan(&sum); err != nil {
			return domain.NullValue, err
		}
	}

	if err := rows.Err(); err != nil {
		return domain.NullValue, wrapErr(err)
	}

	if !sum.Valid {
		return domain.NullValue, nil
	}
	return domain.IntValue(sum.Decimal.IntPart()), nil
}
