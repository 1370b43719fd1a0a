package commands

import (
	"context"
	"log/slog"
	"time"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/domain/conference"
	"conference-booking/internal/pkg/clock"
	"conference-booking/internal/pkg/config"
	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/pkg/metrics"
	"conference-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingResult struct {
	BookingID    uuid.UUID
	ConferenceID string
	UserID       string
	Status       booking.Status
	// Position is set only for a waitlisted result.
	Position  *int
	ConfirmBy *time.Time
}

func newBookingResult(b *booking.Booking, position *int) *BookingResult {
	return &BookingResult{
		BookingID:    b.ID(),
		ConferenceID: b.ConferenceID(),
		UserID:       b.UserID(),
		Status:       b.Status(),
		Position:     position,
		ConfirmBy:    b.ConfirmBy(),
	}
}

// BookingCommands is the allocation engine. Each call is one transaction that
// locks, in order, the user row, the target conference row, then any other
// conference rows touched by displacement.
type BookingCommands interface {
	Book(ctx context.Context, conferenceID, userID string) (*BookingResult, error)
	Confirm(ctx context.Context, bookingID uuid.UUID) (*BookingResult, error)
	Cancel(ctx context.Context, bookingID uuid.UUID) (*BookingResult, error)
}

type bookingUseCaseImpl struct {
	queueOps
	uow       shared.UnitOfWork
	clock     clock.Clock
	validator ConflictValidator
}

func NewBookingUseCase(uow shared.UnitOfWork, clk clock.Clock, cfg config.EngineConfig, logger *slog.Logger) BookingCommands {
	return &bookingUseCaseImpl{
		queueOps:  queueOps{gracePeriod: cfg.PromotionGracePeriod, logger: logger},
		uow:       uow,
		clock:     clk,
		validator: ConflictValidator{},
	}
}

func (uc *bookingUseCaseImpl) Book(ctx context.Context, conferenceID, userID string) (*BookingResult, error) {
	var result *BookingResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		// Lock the user first so concurrent bookings of one user on different
		// conferences see each other in the overlap check.
		_, userErr := tx.Users().FindByIDForUpdate(ctx, userID)
		if userErr != nil && !errs.Is(userErr, shared.ErrNotFound) {
			return userErr
		}

		conf, err := lockConference(ctx, tx, conferenceID)
		if err != nil {
			return err
		}
		if conf.HasStarted(now) {
			return ErrConferenceStarted
		}
		if userErr != nil {
			return ErrUserNotFound
		}
		if err := uc.validator.Check(ctx, tx, userID, conf); err != nil {
			return err
		}

		if conf.HasSeat() {
			result, err = uc.bookSeat(ctx, tx, conf, userID, now)
		} else {
			result, err = uc.joinWaitlist(ctx, tx, conf, userID, now)
		}
		return err
	})
	return uc.finish(ctx, "book", result, err)
}

func (uc *bookingUseCaseImpl) bookSeat(ctx context.Context, tx shared.Tx, conf *conference.Conference, userID string, now time.Time) (*BookingResult, error) {
	b := booking.NewConfirmed(conf.ID(), userID, now)
	if err := takeSeat(ctx, tx, conf); err != nil {
		return nil, err
	}
	if err := createBooking(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := uc.displace(ctx, tx, userID, conf.ID(), now); err != nil {
		return nil, err
	}
	return newBookingResult(b, nil), nil
}

func (uc *bookingUseCaseImpl) joinWaitlist(ctx context.Context, tx shared.Tx, conf *conference.Conference, userID string, now time.Time) (*BookingResult, error) {
	b := booking.NewWaitlisted(conf.ID(), userID, now)
	if err := createBooking(ctx, tx, b); err != nil {
		return nil, err
	}

	q, err := tx.Waitlist().Load(ctx, conf.ID())
	if err != nil {
		return nil, err
	}
	entry := q.Append(b.ID(), b.CreatedAt())
	if err := tx.Waitlist().Save(ctx, q); err != nil {
		return nil, err
	}
	return newBookingResult(b, &entry.Position), nil
}

// Confirm claims a seat for a waitlisted booking. Any waitlisted booking may
// confirm while seats are free, not only the promoted head. After the seat is
// taken the next head is always promoted, even when that seat was the last one;
// the promoted booking then meets ErrNoCapacity until another seat frees up.
func (uc *bookingUseCaseImpl) Confirm(ctx context.Context, bookingID uuid.UUID) (*BookingResult, error) {
	var result *BookingResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		b, conf, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		switch b.Status() {
		case booking.StatusCanceled:
			return ErrBookingCanceled
		case booking.StatusConfirmed:
			return ErrNotWaitlisted
		}
		if conf.HasStarted(now) {
			return ErrConferenceStarted
		}
		if b.DeadlinePassed(now) {
			return ErrDeadlinePassed
		}
		if !conf.HasSeat() {
			return ErrNoCapacity
		}

		if err := b.Confirm(now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if err := takeSeat(ctx, tx, conf); err != nil {
			return err
		}
		q, err := uc.leaveQueue(ctx, tx, conf.ID(), b)
		if err != nil {
			return err
		}
		if err := uc.displace(ctx, tx, b.UserID(), conf.ID(), now); err != nil {
			return err
		}
		if err := uc.promote(ctx, tx, q, now); err != nil {
			return err
		}

		result = newBookingResult(b, nil)
		return nil
	})
	return uc.finish(ctx, "confirm", result, err)
}

// Cancel frees whatever the booking held. A released seat promotes the waitlist
// head. A waitlisted booking leaves a compacted queue, and if it was the
// promoted head the deadline passes to the new head.
func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, bookingID uuid.UUID) (*BookingResult, error) {
	var result *BookingResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		b, conf, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status() == booking.StatusCanceled {
			return ErrBookingCanceled
		}
		if conf.HasStarted(now) {
			return ErrConferenceStarted
		}

		wasPromoted := b.IsPromoted()
		prior, err := b.Cancel(now)
		if err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}

		switch prior {
		case booking.StatusConfirmed:
			if err := conf.ReleaseSeat(); err != nil {
				return err
			}
			if err := tx.Conferences().UpdateCapacity(ctx, conf); err != nil {
				return err
			}
			q, err := tx.Waitlist().Load(ctx, conf.ID())
			if err != nil {
				return err
			}
			if err := uc.promote(ctx, tx, q, now); err != nil {
				return err
			}
		case booking.StatusWaitlisted:
			q, err := uc.leaveQueue(ctx, tx, conf.ID(), b)
			if err != nil {
				return err
			}
			if wasPromoted {
				if err := uc.promote(ctx, tx, q, now); err != nil {
					return err
				}
			}
		}

		result = newBookingResult(b, nil)
		return nil
	})
	return uc.finish(ctx, "cancel", result, err)
}

// finish records the outcome of an engine call and classifies its error.
func (uc *bookingUseCaseImpl) finish(ctx context.Context, op string, result *BookingResult, err error) (*BookingResult, error) {
	switch {
	case err == nil:
		metrics.Bookings.WithLabelValues(op, result.Status.String()).Inc()
		attrs := []any{
			"operation", op,
			"booking_id", result.BookingID.String(),
			"conference_id", result.ConferenceID,
			"user_id", result.UserID,
			"status", result.Status.String(),
		}
		if result.Position != nil {
			attrs = append(attrs, "position", *result.Position)
		}
		uc.logger.InfoContext(ctx, "booking updated", attrs...)
		return result, nil
	case IsBusinessRule(err):
		reason := RejectionReason(err)
		metrics.BookingRejections.WithLabelValues(op, reason).Inc()
		uc.logger.InfoContext(ctx, "booking rejected", "operation", op, "reason", reason)
		return nil, err
	default:
		uc.logger.ErrorContext(ctx, "booking operation failed", "operation", op, "error", err.Error())
		return nil, classify(err)
	}
}

// lockBooking takes the user and conference locks for a booking and re-reads
// it under those locks.
func lockBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, *conference.Conference, error) {
	b, err := tx.Bookings().FindByID(ctx, id)
	if errs.Is(err, shared.ErrNotFound) {
		return nil, nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	if _, err := tx.Users().FindByIDForUpdate(ctx, b.UserID()); err != nil {
		return nil, nil, err
	}
	conf, err := lockConference(ctx, tx, b.ConferenceID())
	if err != nil {
		return nil, nil, err
	}

	b, err = tx.Bookings().FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return b, conf, nil
}

func takeSeat(ctx context.Context, tx shared.Tx, conf *conference.Conference) error {
	if err := conf.TakeSeat(); err != nil {
		return err
	}
	return tx.Conferences().UpdateCapacity(ctx, conf)
}

func createBooking(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	err := tx.Bookings().Create(ctx, b)
	if errs.Is(err, shared.ErrDuplicate) {
		return ErrAlreadyBooked
	}
	return err
}
