//go:build unit || e2e

package builder

import (
	"time"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/usecase/commands"
	"conference-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID           uuid.UUID
	ConferenceID string
	UserID       string
	Status       booking.Status
	ConfirmBy    *time.Time
	CreatedAt    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:           uuid.New(),
		ConferenceID: "gophercon-2026",
		UserID:       "alice",
		Status:       booking.StatusWaitlisted,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(b.ID, b.ConferenceID, b.UserID, b.Status, b.ConfirmBy, b.CreatedAt, b.CreatedAt)
}

// BuildResult renders the builder as an engine result. position is reported
// only for waitlisted bookings.
func (b *BookingBuilder) BuildResult(position int) *commands.BookingResult {
	r := &commands.BookingResult{
		BookingID:    b.ID,
		ConferenceID: b.ConferenceID,
		UserID:       b.UserID,
		Status:       b.Status,
		ConfirmBy:    b.ConfirmBy,
	}
	if b.Status == booking.StatusWaitlisted {
		r.Position = &position
	}
	return r
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:           b.ID,
		ConferenceID: b.ConferenceID,
		UserID:       b.UserID,
		Status:       b.Status.String(),
		ConfirmBy:    b.ConfirmBy,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
	}
}
