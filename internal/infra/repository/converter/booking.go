package converter

import (
	"strings"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// Bookings mirrors a row of the bookings table.
type Bookings struct {
	ID           pgtype.UUID
	ConferenceID string
	UserID       string
	Status       string
	ConfirmBy    pgtype.Timestamptz
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

func (r *Bookings) ScanTargets() []any {
	return []any{&r.ID, &r.ConferenceID, &r.UserID, &r.Status, &r.ConfirmBy, &r.CreatedAt, &r.UpdatedAt}
}

const BookingColumns = "id, conference_id, user_id, status, confirm_by, created_at, updated_at"

func BookingToDomain(r Bookings) (*booking.Booking, error) {
	status, err := booking.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		pgconv.UUIDFromPgtype(r.ID),
		r.ConferenceID,
		r.UserID,
		status,
		pgconv.TimePtrFromPgtype(r.ConfirmBy),
		pgconv.TimeFromPgtype(r.CreatedAt),
		pgconv.TimeFromPgtype(r.UpdatedAt),
	), nil
}

// BookingToArgs returns the bookings columns in BookingColumns order.
func BookingToArgs(b *booking.Booking) []any {
	return []any{
		pgconv.UUIDToPgtype(b.ID()),
		b.ConferenceID(),
		b.UserID(),
		b.Status().String(),
		pgconv.TimePtrToPgtype(b.ConfirmBy()),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

// Prefixed qualifies every column in cols with alias.
func Prefixed(cols, alias string) string {
	parts := strings.Split(cols, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}
