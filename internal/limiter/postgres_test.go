package limiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, maxFails int) (*PG, pgxmock.PgxPoolIface, time.Time) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewPG(mock, 15*time.Minute, maxFails, 10*time.Minute)
	l.now = func() time.Time { return now }
	return l, mock, now
}

func TestAllow_NoRow_Allows(t *testing.T) {
	l, mock, _ := newLimiter(t, 5)
	mock.ExpectQuery(`SELECT blocked_until FROM auth_limiter`).
		WithArgs("a@b.fr", []byte("h")).
		WillReturnError(pgx.ErrNoRows)

	ok, dur, err := l.Allow(context.Background(), "a@b.fr", []byte("h"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Zero(t, dur)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAllow_BlockedUntilFuture(t *testing.T) {
	l, mock, now := newLimiter(t, 5)
	mock.ExpectQuery(`SELECT blocked_until FROM auth_limiter`).
		WithArgs("a@b.fr", []byte("h")).
		WillReturnRows(pgxmock.NewRows([]string{"blocked_until"}).AddRow(now.Add(4 * time.Minute)))

	ok, dur, err := l.Allow(context.Background(), "a@b.fr", []byte("h"))
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 4*time.Minute, dur)
}

func TestAllow_PastBlock_Allows(t *testing.T) {
	l, mock, now := newLimiter(t, 5)
	mock.ExpectQuery(`SELECT blocked_until FROM auth_limiter`).
		WithArgs("a@b.fr", []byte("h")).
		WillReturnRows(pgxmock.NewRows([]string{"blocked_until"}).AddRow(now.Add(-time.Minute)))

	ok, _, err := l.Allow(context.Background(), "a@b.fr", []byte("h"))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAllow_DBError_Propagates(t *testing.T) {
	l, mock, _ := newLimiter(t, 5)
	mock.ExpectQuery(`SELECT blocked_until FROM auth_limiter`).
		WithArgs("a@b.fr", []byte("h")).
		WillReturnError(errors.New("db boom"))

	ok, _, err := l.Allow(context.Background(), "a@b.fr", []byte("h"))
	require.Error(t, err)
	require.False(t, ok)
}

func TestSuccess_ResetsCounters(t *testing.T) {
	l, mock, _ := newLimiter(t, 5)
	mock.ExpectExec(`INSERT INTO auth_limiter`).
		WithArgs("a@b.fr", []byte("h")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, l.Success(context.Background(), "a@b.fr", []byte("h")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFailure_BelowThreshold_NoBlock(t *testing.T) {
	l, mock, _ := newLimiter(t, 5)
	mock.ExpectQuery(`RETURNING fail_count`).
		WithArgs("a@b.fr", []byte("h"), 15*time.Minute).
		WillReturnRows(pgxmock.NewRows([]string{"fail_count"}).AddRow(2))

	blocked, dur, err := l.Failure(context.Background(), "a@b.fr", []byte("h"))
	require.NoError(t, err)
	require.False(t, blocked)
	require.Zero(t, dur)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFailure_BlocksAtThreshold(t *testing.T) {
	l, mock, now := newLimiter(t, 3)
	mock.ExpectQuery(`RETURNING fail_count`).
		WithArgs("a@b.fr", []byte("h"), 15*time.Minute).
		WillReturnRows(pgxmock.NewRows([]string{"fail_count"}).AddRow(3))
	mock.ExpectExec(`UPDATE auth_limiter SET blocked_until=\$3 WHERE email=\$1 AND ip_hash=\$2`).
		WithArgs("a@b.fr", []byte("h"), now.Add(10*time.Minute)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	blocked, dur, err := l.Failure(context.Background(), "a@b.fr", []byte("h"))
	require.NoError(t, err)
	require.True(t, blocked)
	require.Equal(t, 10*time.Minute, dur)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFailure_DBErrorOnReturning(t *testing.T) {
	l, mock, _ := newLimiter(t, 3)
	mock.ExpectQuery(`RETURNING fail_count`).
		WithArgs("a@b.fr", []byte("h"), 15*time.Minute).
		WillReturnError(errors.New("query error"))

	_, _, err := l.Failure(context.Background(), "a@b.fr", []byte("h"))
	require.Error(t, err)
}

func TestHashIP_IgnoresPort(t *testing.T) {
	t.Parallel()

	a := HashIP("1.2.3.4:123")
	b := HashIP("1.2.3.4:9999")
	c := HashIP("5.6.7.8:321")
	require.Len(t, a, 32)
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Equal(t, HashIP("1.2.3.4"), a)
}
