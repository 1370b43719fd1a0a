package commands

import (
	"context"

	"conference-booking/internal/domain/conference"
	"conference-booking/internal/usecase/shared"
)

// ConflictValidator rejects a booking that would double-book a user or overlap
// one of their active commitments.
type ConflictValidator struct{}

func (ConflictValidator) AlreadyBooked(ctx context.Context, tx shared.Tx, userID, conferenceID string) (bool, error) {
	return tx.Bookings().ExistsActive(ctx, userID, conferenceID)
}

// Overlaps uses the half-open test existing.start < end && start < existing.end,
// so back-to-back conferences do not conflict.
func (ConflictValidator) Overlaps(ctx context.Context, tx shared.Tx, userID string, w conference.Window, excludeConferenceID string) (bool, error) {
	return tx.Bookings().HasOverlapping(ctx, userID, w, excludeConferenceID)
}

func (v ConflictValidator) Check(ctx context.Context, tx shared.Tx, userID string, c *conference.Conference) error {
	booked, err := v.AlreadyBooked(ctx, tx, userID, c.ID())
	if err != nil {
		return err
	}
	if booked {
		return ErrAlreadyBooked
	}

	overlaps, err := v.Overlaps(ctx, tx, userID, c.Window(), c.ID())
	if err != nil {
		return err
	}
	if overlaps {
		return ErrTimeConflict
	}
	return nil
}
