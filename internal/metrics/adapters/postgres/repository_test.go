package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"testing"

	"channel-metrics-service/internal/metrics/core/domain"
	"channel-metrics-service/internal/metrics/core/ports"
	"channel-metrics-service/internal/pkg/pgdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*SummaryRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return NewSummaryRepository(pgdb.New(db)), mock
}

func TestListSummaries(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT ms.id, ms.channel_id, c.name, ms.country_code, ms.metric, ms.total " +
		"FROM metric_summaries ms JOIN channels c ON c.id = ms.channel_id WHERE ms.channel_id = $1 ORDER BY ms.id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "channel_id", "name", "country_code", "metric", "total"}).
			AddRow(int64(10), int64(3), "binu", "za", "supporter", int64(4)).
			AddRow(int64(11), int64(3), "binu", "ng", "supporter", int64(0)))

	got, err := repo.ListSummaries(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "za.binu.supporter", got[0].Name())
	assert.Equal(t, int64(4), got[0].Total)
	assert.Equal(t, int64(11), got[1].ID)
}

func TestCountRecords(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT(*) FROM incoming_data WHERE channel_id = $1 AND country_code = $2").
		WithArgs(int64(3), "za").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.CountRecords(context.Background(), 3, "za")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestUpdateSummaryTotal(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE metric_summaries SET total = $1 WHERE id = $2").
		WithArgs(int64(9), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateSummaryTotal(context.Background(), 10, 9))
}

func TestUpdateSummaryTotal_Missing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE metric_summaries SET total = $1 WHERE id = $2").
		WithArgs(int64(9), int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateSummaryTotal(context.Background(), 404, 9)
	assert.ErrorIs(t, err, ErrSummaryNotFound)
}

func TestSumTotals(t *testing.T) {
	za := "za"

	cases := []struct {
		name    string
		country *string
		query   string
		args    []driver.Value
		value   driver.Value
		want    domain.Value
	}{
		{
			name:    "country bucket",
			country: &za,
			query:   "SELECT SUM(total) FROM metric_summaries WHERE country_code = $1",
			args:    []driver.Value{"za"},
			value:   "12",
			want:    domain.IntValue(12),
		},
		{
			name:  "global bucket has no filter",
			query: "SELECT SUM(total) FROM metric_summaries",
			value: []byte("40"),
			want:  domain.IntValue(40),
		},
		{
			name:    "no rows sums to null",
			country: &za,
			query:   "SELECT SUM(total) FROM metric_summaries WHERE country_code = $1",
			args:    []driver.Value{"za"},
			value:   nil,
			want:    domain.NullValue,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			exp := mock.ExpectQuery(tc.query)
			if tc.args != nil {
				exp = exp.WithArgs(tc.args...)
			}
			exp.WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(tc.value))

			got, err := repo.SumTotals(context.Background(), tc.country)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQueryErrors(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT SUM(total) FROM metric_summaries").
		WillReturnError(errors.New("syntax error"))

	_, err := repo.SumTotals(context.Background(), nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ports.ErrStoreUnavailable))

	assert.ErrorIs(t, wrapErr(driver.ErrBadConn), ports.ErrStoreUnavailable)
	plain := errors.New("permission denied")
	assert.Same(t, plain, wrapErr(plain))
}

func TestConnectionLossIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"admin shutdown", &pq.Error{Code: "57P01"}},
		{"connection failure", &pq.Error{Code: "08006"}},
		{"network", &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectQuery("SELECT COUNT(*) FROM incoming_data WHERE channel_id = $1 AND country_code = $2").
				WithArgs(int64(1), "za").
				WillReturnError(tt.err)

			_, err := repo.CountRecords(context.Background(), 1, "za")
			assert.ErrorIs(t, err, ports.ErrStoreUnavailable)
		})
	}
}
