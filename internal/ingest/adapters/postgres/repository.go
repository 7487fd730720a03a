package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"channel-metrics-service/internal/ingest/core/domain"
	"channel-metrics-service/internal/ingest/core/ports"
	"channel-metrics-service/internal/pkg/pgdb"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

type RecordRepository struct {
	db DB
}

func NewRecordRepository(db DB) *RecordRepository {
	return &RecordRepository{db: db}
}

var _ ports.RecordRepositoryPort = (*RecordRepository)(nil)

const insertRecordSQL = `
INSERT INTO incoming_data (
    source_timestamp,
    channel_id,
    channel_uid,
    email,
    name,
    msisdn,
    country_code,
    age,
    location,
    gender
) VALUES (
    $1, $2, $3, $4, $5,
    $6, $7, $8, $9, $10
)
ON CONFLICT (channel_id, channel_uid) DO NOTHING;
`

func (r *RecordRepository) InsertRecord(ctx context.Context, rec *domain.Record) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertRecordSQL,
		rec.SourceTimestamp,
		rec.ChannelID,
		rec.ChannelUID,
		nullIfEmpty(rec.Email),
		nullIfEmpty(rec.Name),
		nullIfEmpty(rec.MSISDN),
		rec.CountryCode,
		rec.Age,
		nullIfEmpty(rec.Location),
		nullIfEmpty(string(rec.Gender)),
	)
	if err != nil {
		return false, classify(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, classify(err)
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

var recordColumns = []string{
	"id", "source_timestamp", "channel_id", "channel_uid", "email", "name",
	"msisdn", "country_code", "age", "location", "gender", "created_at",
}

func (r *RecordRepository) ListRecords(ctx context.Context, f ports.RecordFilter) ([]domain.Record, error) {
	q := builder().
		Select(recordColumns...).
		From("incoming_data").
		Where(squirrel.Eq{"channel_id": f.ChannelID}).
		OrderBy("source_timestamp DESC", "id DESC")

	if f.CountryCode != nil {
		q = q.Where(squirrel.Eq{"country_code": *f.CountryCode})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var (
			rec                                   domain.Record
			email, name, msisdn, location, gender sql.NullString
			age                                   sql.NullInt64
		)
		if err := rows.Scan(
			&rec.ID, &rec.SourceTimestamp, &rec.ChannelID, &rec.ChannelUID,
			&email, &name, &msisdn, &rec.CountryCode, &age, &location, &gender,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}

		rec.Email = email.String
		rec.Name = name.String
		rec.MSISDN = msisdn.String
		rec.Location = location.String
		rec.Gender = domain.Gender(gender.String)
		if age.Valid {
			a := int(age.Int64)
			rec.Age = &a
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return out, nil
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// classify separates failures of the database as a whole from errors the
// server raised for one statement.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if pgdb.IsUnavailable(err) {
		return fmt.Errorf("%w: %v", ports.ErrStoreUnavailable, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("store rejected row: %w", err)
	}
	return err
}
