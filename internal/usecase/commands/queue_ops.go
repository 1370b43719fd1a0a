package commands

import (
	"context"
	"log/slog"
	"time"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/domain/conference"
	"conference-booking/internal/domain/waitlist"
	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/usecase/shared"
)

// queueOps holds the waitlist operations shared by the allocation engine and
// the reconciliation sweeps. Every method runs inside the caller's transaction
// and expects the conference row to be locked already.
type queueOps struct {
	gracePeriod time.Duration
	logger      *slog.Logger
}

// promote gives the head of q a confirmation deadline of now plus the grace
// period. It neither changes status nor touches capacity, so it may hand a
// deadline to a head that will find no free seat when it tries to confirm.
func (o queueOps) promote(ctx context.Context, tx shared.Tx, q *waitlist.Queue, now time.Time) error {
	head, ok := q.Head()
	if !ok {
		return nil
	}

	b, err := tx.Bookings().FindByID(ctx, head.BookingID)
	if err != nil {
		return errs.Wrapf(err, "load waitlist head %s", head.BookingID)
	}
	deadline := now.Add(o.gracePeriod)
	if err := b.Promote(deadline, now); err != nil {
		return err
	}
	if err := tx.Bookings().Update(ctx, b); err != nil {
		return err
	}

	o.logger.InfoContext(ctx, "waitlist head promoted",
		"conference_id", q.ConferenceID(),
		"booking_id", b.ID().String(),
		"confirm_by", deadline)
	return nil
}

// reorder compacts positions to 1..N and persists the result. Entries keep
// their relative order, so arrival order holds except for tail moves made by
// promotion expiry.
func (o queueOps) reorder(ctx context.Context, tx shared.Tx, q *waitlist.Queue) error {
	q.Compact()
	if err := q.Validate(); err != nil {
		return err
	}
	return tx.Waitlist().Save(ctx, q)
}

// leaveQueue drops a booking from its conference's waitlist and closes the gap.
func (o queueOps) leaveQueue(ctx context.Context, tx shared.Tx, conferenceID string, b *booking.Booking) (*waitlist.Queue, error) {
	q, err := tx.Waitlist().Load(ctx, conferenceID)
	if err != nil {
		return nil, err
	}
	if !q.Remove(b.ID()) {
		return nil, errs.Wrapf(waitlist.ErrPositionsNotDense, "booking %s has no waitlist entry", b.ID())
	}
	return q, o.reorder(ctx, tx, q)
}

// displace cancels every waitlisted booking the user holds on conferences other
// than exclude, once the user has a confirmed seat. Each affected waitlist is
// compacted, and if the canceled booking held a live promotion the new head is
// promoted in its place.
func (o queueOps) displace(ctx context.Context, tx shared.Tx, userID, excludeConferenceID string, now time.Time) error {
	stale, err := tx.Bookings().ListWaitlistedByUser(ctx, userID, excludeConferenceID)
	if err != nil {
		return err
	}

	for _, s := range stale {
		if _, err := lockConference(ctx, tx, s.ConferenceID()); err != nil {
			return err
		}
		// The sweeper may have changed the booking before we got the lock.
		b, err := tx.Bookings().FindByID(ctx, s.ID())
		if err != nil {
			return err
		}
		if b.Status() != booking.StatusWaitlisted {
			continue
		}

		wasPromoted := b.IsPromoted()
		if _, err := b.Cancel(now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		q, err := o.leaveQueue(ctx, tx, b.ConferenceID(), b)
		if err != nil {
			return err
		}
		if wasPromoted {
			if err := o.promote(ctx, tx, q, now); err != nil {
				return err
			}
		}

		o.logger.InfoContext(ctx, "waitlisted booking displaced",
			"booking_id", b.ID().String(),
			"conference_id", b.ConferenceID(),
			"user_id", userID,
			"confirmed_conference_id", excludeConferenceID)
	}
	return nil
}

func lockConference(ctx context.Context, tx shared.Tx, id string) (*conference.Conference, error) {
	c, err := tx.Conferences().FindByIDForUpdate(ctx, id)
	if errs.Is(err, shared.ErrNotFound) {
		return nil, ErrConferenceNotFound
	}
	return c, err
}
