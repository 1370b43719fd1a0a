package repository

import (
	"context"
	"log/slog"
	"time"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/domain/conference"
	"conference-booking/internal/infra/db"
	"conference-booking/internal/infra/repository/converter"
	"conference-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var bookingColumnsB = converter.Prefixed(converter.BookingColumns, "b")

const (
	insertBooking = `INSERT INTO bookings (` + converter.BookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	updateBooking = `UPDATE bookings SET status = $2, confirm_by = $3, updated_at = $4 WHERE id = $1`

	selectBooking = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE id = $1`

	existsActiveBooking = `SELECT EXISTS (
  SELECT 1 FROM bookings
  WHERE user_id = $1 AND conference_id = $2 AND status <> 'canceled'
)`

	// Half-open overlap: existing.start < new.end AND new.start < existing.end.
	existsOverlappingBooking = `SELECT EXISTS (
  SELECT 1 FROM bookings b
  JOIN conferences c ON c.id = b.conference_id
  WHERE b.user_id = $1
    AND b.status <> 'canceled'
    AND b.conference_id <> $2
    AND c.start_time < $4
    AND $3 < c.end_time
)`

	listWaitlistedByUser = `SELECT ` + converter.BookingColumns + ` FROM bookings
WHERE user_id = $1 AND status = 'waitlisted' AND conference_id <> $2
ORDER BY conference_id`

	listConferencesWithExpiredPromotions = `SELECT DISTINCT conference_id FROM bookings
WHERE status = 'waitlisted' AND confirm_by < $1
ORDER BY conference_id`
)

var (
	listWaitlistedByConference = `SELECT ` + bookingColumnsB + ` FROM bookings b
JOIN waitlist_entries w ON w.booking_id = b.id
WHERE b.conference_id = $1 AND b.status = 'waitlisted'
ORDER BY w.position`

	listExpiredPromotions = `SELECT ` + bookingColumnsB + ` FROM bookings b
JOIN waitlist_entries w ON w.booking_id = b.id
WHERE b.conference_id = $1 AND b.status = 'waitlisted' AND b.confirm_by < $2
ORDER BY w.position`
)

type BookingRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingRepository(dbtx db.DBTX, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{db: dbtx, logger: logger}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if _, err := r.db.Exec(ctx, insertBooking, converter.BookingToArgs(b)...); err != nil {
		return wrapErr(r.logger, "failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBooking,
		pgconv.UUIDToPgtype(b.ID()),
		b.Status().String(),
		pgconv.TimePtrToPgtype(b.ConfirmBy()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return wrapErr(r.logger, "failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(r.logger, "booking not found")
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var row converter.Bookings
	if err := r.db.QueryRow(ctx, selectBooking, pgconv.UUIDToPgtype(id)).Scan(row.ScanTargets()...); err != nil {
		return nil, wrapErr(r.logger, "failed to find booking", err)
	}
	return converter.BookingToDomain(row)
}

func (r *BookingRepository) ExistsActive(ctx context.Context, userID, conferenceID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, existsActiveBooking, userID, conferenceID).Scan(&exists); err != nil {
		return false, wrapErr(r.logger, "failed to check active booking", err)
	}
	return exists, nil
}

func (r *BookingRepository) HasOverlapping(ctx context.Context, userID string, w conference.Window, excludeConferenceID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, existsOverlappingBooking,
		userID,
		excludeConferenceID,
		pgconv.TimeToPgtype(w.Start()),
		pgconv.TimeToPgtype(w.End()),
	).Scan(&exists)
	if err != nil {
		return false, wrapErr(r.logger, "failed to check overlapping bookings", err)
	}
	return exists, nil
}

func (r *BookingRepository) ListWaitlistedByUser(ctx context.Context, userID, excludeConferenceID string) ([]*booking.Booking, error) {
	return r.list(ctx, "failed to list waitlisted bookings of user", listWaitlistedByUser, userID, excludeConferenceID)
}

func (r *BookingRepository) ListWaitlistedByConference(ctx context.Context, conferenceID string) ([]*booking.Booking, error) {
	return r.list(ctx, "failed to list waitlisted bookings of conference", listWaitlistedByConference, conferenceID)
}

func (r *BookingRepository) ListExpiredPromotions(ctx context.Context, conferenceID string, now time.Time) ([]*booking.Booking, error) {
	return r.list(ctx, "failed to list expired promotions", listExpiredPromotions, conferenceID, pgconv.TimeToPgtype(now))
}

func (r *BookingRepository) ListConferencesWithExpiredPromotions(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, listConferencesWithExpiredPromotions, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, wrapErr(r.logger, "failed to list conferences with expired promotions", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrapErr(r.logger, "failed to scan conference ids", err)
	}
	return ids, nil
}

func (r *BookingRepository) list(ctx context.Context, msg, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(r.logger, msg, err)
	}
	bookingRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (converter.Bookings, error) {
		var b converter.Bookings
		err := row.Scan(b.ScanTargets()...)
		return b, err
	})
	if err != nil {
		return nil, wrapErr(r.logger, msg, err)
	}

	out := make([]*booking.Booking, 0, len(bookingRows))
	for _, row := range bookingRows {
		b, err := converter.BookingToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
