package repository

import (
	"context"
	"log/slog"

	"conference-booking/internal/domain/waitlist"
	"conference-booking/internal/infra/db"
	"conference-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	selectWaitlist = `SELECT w.booking_id, w.position, b.created_at
FROM waitlist_entries w
JOIN bookings b ON b.id = w.booking_id
WHERE w.conference_id = $1
ORDER BY w.position`

	deleteWaitlistEntries = `DELETE FROM waitlist_entries WHERE booking_id = ANY($1)`

	insertWaitlistEntry = `INSERT INTO waitlist_entries (booking_id, conference_id, position) VALUES ($1, $2, $3)`

	// The (conference_id, position) unique constraint is deferred, so rows can
	// be renumbered in one statement without transient collisions.
	moveWaitlistEntries = `UPDATE waitlist_entries w SET position = v.position
FROM unnest($1::uuid[], $2::int4[]) AS v(booking_id, position)
WHERE w.booking_id = v.booking_id`
)

type WaitlistRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewWaitlistRepository(dbtx db.DBTX, logger *slog.Logger) *WaitlistRepository {
	return &WaitlistRepository{db: dbtx, logger: logger}
}

func (r *WaitlistRepository) Load(ctx context.Context, conferenceID string) (*waitlist.Queue, error) {
	rows, err := r.db.Query(ctx, selectWaitlist, conferenceID)
	if err != nil {
		return nil, wrapErr(r.logger, "failed to load waitlist", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (waitlist.Entry, error) {
		var (
			id        pgtype.UUID
			position  int32
			createdAt pgtype.Timestamptz
		)
		if err := row.Scan(&id, &position, &createdAt); err != nil {
			return waitlist.Entry{}, err
		}
		return waitlist.Entry{
			BookingID: pgconv.UUIDFromPgtype(id),
			Position:  int(position),
			CreatedAt: pgconv.TimeFromPgtype(createdAt),
		}, nil
	})
	if err != nil {
		return nil, wrapErr(r.logger, "failed to scan waitlist", err)
	}
	return waitlist.ReconstructQueue(conferenceID, entries), nil
}

func (r *WaitlistRepository) Save(ctx context.Context, q *waitlist.Queue) error {
	ch := q.Changes()
	if ch.IsEmpty() {
		return nil
	}

	if len(ch.Deleted) > 0 {
		ids := make([]pgtype.UUID, len(ch.Deleted))
		for i, id := range ch.Deleted {
			ids[i] = pgconv.UUIDToPgtype(id)
		}
		if _, err := r.db.Exec(ctx, deleteWaitlistEntries, ids); err != nil {
			return wrapErr(r.logger, "failed to delete waitlist entries", err)
		}
	}

	for _, e := range ch.Inserted {
		if _, err := r.db.Exec(ctx, insertWaitlistEntry, pgconv.UUIDToPgtype(e.BookingID), q.ConferenceID(), int32(e.Position)); err != nil {
			return wrapErr(r.logger, "failed to insert waitlist entry", err)
		}
	}

	if len(ch.Moved) > 0 {
		ids := make([]pgtype.UUID, len(ch.Moved))
		positions := make([]int32, len(ch.Moved))
		for i, e := range ch.Moved {
			ids[i] = pgconv.UUIDToPgtype(e.BookingID)
			positions[i] = int32(e.Position) // #nosec G115 -- positions are bounded by the waitlist length
		}
		if _, err := r.db.Exec(ctx, moveWaitlistEntries, ids, positions); err != nil {
			return wrapErr(r.logger, "failed to renumber waitlist", err)
		}
	}

	q.MarkSaved()
	return nil
}
