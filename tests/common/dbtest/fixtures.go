//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by a pool and by a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, id string, interests ...string) string {
	t.Helper()

	if interests == nil {
		interests = []string{}
	}
	_, err := db.Exec(context.Background(),
		"INSERT INTO users (id, interests) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING",
		id, interests)
	require.NoError(t, err)

	return id
}

// CreateTestConference inserts a conference directly, so start may lie in the past.
func CreateTestConference(t *testing.T, db DBLike, id string, start time.Time, capacity int) string {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO conferences (id, name, start_time, end_time, total_capacity, available_capacity)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		id, "Conference "+id, start, start.Add(2*time.Hour), capacity)
	require.NoError(t, err)

	return id
}

// MoveConferenceStart shifts the window to start while keeping its length.
func MoveConferenceStart(t *testing.T, db DBLike, id string, start time.Time) {
	t.Helper()

	tag, err := db.Exec(context.Background(), `
		UPDATE conferences
		SET end_time = $2 + (end_time - start_time), start_time = $2
		WHERE id = $1`,
		id, start)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected(), "conference %s not found", id)
}

// ExpirePromotion moves the confirmation deadline of a promoted booking into the past.
func ExpirePromotion(t *testing.T, db DBLike, bookingID uuid.UUID) {
	t.Helper()

	tag, err := db.Exec(context.Background(),
		"UPDATE bookings SET confirm_by = now() - interval '1 minute' WHERE id = $1 AND confirm_by IS NOT NULL",
		bookingID)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected(), "booking %s has no pending promotion", bookingID)
}

func AvailableCapacity(t *testing.T, db DBLike, conferenceID string) int {
	t.Helper()

	var available int
	err := db.QueryRow(context.Background(),
		"SELECT available_capacity FROM conferences WHERE id = $1", conferenceID).Scan(&available)
	require.NoError(t, err)

	return available
}

func CountBookings(t *testing.T, db DBLike, conferenceID, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM bookings WHERE conference_id = $1 AND status = $2", conferenceID, status).Scan(&n)
	require.NoError(t, err)

	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
