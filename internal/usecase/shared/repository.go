package shared

import (
	"context"
	"time"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/domain/conference"
	"conference-booking/internal/domain/user"
	"conference-booking/internal/domain/waitlist"
	"conference-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is matched by every repository lookup that finds no row.
	ErrNotFound = errs.New("record not found")
	// ErrDuplicate is matched when an insert collides with an existing key.
	ErrDuplicate = errs.New("duplicate record")
)

type ConferenceRepository interface {
	Create(ctx context.Context, c *conference.Conference) error
	FindByID(ctx context.Context, id string) (*conference.Conference, error)
	// FindByIDForUpdate locks the conference row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*conference.Conference, error)
	UpdateCapacity(ctx context.Context, c *conference.Conference) error
	// ListStartedWithWaitlist returns ids of conferences that started at or before now
	// and still have waitlist entries.
	ListStartedWithWaitlist(ctx context.Context, now time.Time) ([]string, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id string) (*user.User, error)
	// FindByIDForUpdate serializes engine operations of one user across conferences.
	FindByIDForUpdate(ctx context.Context, id string) (*user.User, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ExistsActive(ctx context.Context, userID, conferenceID string) (bool, error)
	// HasOverlapping reports an active booking of the user on another conference
	// whose window overlaps w.
	HasOverlapping(ctx context.Context, userID string, w conference.Window, excludeConferenceID string) (bool, error)
	// ListWaitlistedByUser is ordered by conference id.
	ListWaitlistedByUser(ctx context.Context, userID, excludeConferenceID string) ([]*booking.Booking, error)
	ListWaitlistedByConference(ctx context.Context, conferenceID string) ([]*booking.Booking, error)
	ListExpiredPromotions(ctx context.Context, conferenceID string, now time.Time) ([]*booking.Booking, error)
	ListConferencesWithExpiredPromotions(ctx context.Context, now time.Time) ([]string, error)
}

type WaitlistRepository interface {
	Load(ctx context.Context, conferenceID string) (*waitlist.Queue, error)
	// Save writes q.Changes() and marks the queue saved.
	Save(ctx context.Context, q *waitlist.Queue) error
}
