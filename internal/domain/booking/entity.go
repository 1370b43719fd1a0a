package booking

import (
	"errors"
	"time"

	"conference-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errors.New("invalid booking status")

	// Returned when a caller drives the state machine from a state it does not accept.
	// Engine code checks business rules first, so seeing this means a bug.
	ErrInvalidTransition = errs.Invariant("invalid booking state transition")
)

type Booking struct {
	id           uuid.UUID
	conferenceID string
	userID       string
	status       Status
	confirmBy    *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewConfirmed(conferenceID, userID string, now time.Time) *Booking {
	return newBooking(conferenceID, userID, StatusConfirmed, now)
}

func NewWaitlisted(conferenceID, userID string, now time.Time) *Booking {
	return newBooking(conferenceID, userID, StatusWaitlisted, now)
}

func newBooking(conferenceID, userID string, status Status, now time.Time) *Booking {
	return &Booking{
		id:           uuid.New(),
		conferenceID: conferenceID,
		userID:       userID,
		status:       status,
		createdAt:    now,
		updatedAt:    now,
	}
}

func ReconstructBooking(
	id uuid.UUID,
	conferenceID, userID string,
	status Status,
	confirmBy *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		conferenceID: conferenceID,
		userID:       userID,
		status:       status,
		confirmBy:    confirmBy,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (b *Booking) transition(to Status, now time.Time) error {
	if !canTransition(b.status, to) {
		return errs.Wrapf(ErrInvalidTransition, "booking %s: %s -> %s", b.id, b.status, to)
	}
	b.status = to
	b.confirmBy = nil
	b.updatedAt = now
	return nil
}

// Confirm turns a waitlisted booking into a seat holder and drops any promotion deadline.
func (b *Booking) Confirm(now time.Time) error {
	return b.transition(StatusConfirmed, now)
}

// Cancel is terminal. The prior status is returned so the caller can release the
// matching resource (a seat or a queue place).
func (b *Booking) Cancel(now time.Time) (Status, error) {
	prior := b.status
	if err := b.transition(StatusCanceled, now); err != nil {
		return "", err
	}
	return prior, nil
}

// Promote grants the head of the waitlist a deadline to claim a seat.
func (b *Booking) Promote(deadline, now time.Time) error {
	if b.status != StatusWaitlisted {
		return errs.Wrapf(ErrInvalidTransition, "promote booking %s in status %s", b.id, b.status)
	}
	b.confirmBy = &deadline
	b.updatedAt = now
	return nil
}

// RevokePromotion clears an expired deadline; the booking stays waitlisted.
func (b *Booking) RevokePromotion(now time.Time) error {
	if b.status != StatusWaitlisted {
		return errs.Wrapf(ErrInvalidTransition, "revoke promotion of booking %s in status %s", b.id, b.status)
	}
	b.confirmBy = nil
	b.updatedAt = now
	return nil
}

func (b *Booking) IsPromoted() bool {
	return b.confirmBy != nil
}

// DeadlinePassed is true once now is strictly after confirm_by. A booking without a
// deadline never expires.
func (b *Booking) DeadlinePassed(now time.Time) bool {
	return b.confirmBy != nil && now.After(*b.confirmBy)
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ConferenceID() string  { return b.conferenceID }
func (b *Booking) UserID() string        { return b.userID }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) ConfirmBy() *time.Time { return b.confirmBy }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
