package queries

import (
	"context"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound    = errs.New("booking not found")
	ErrConferenceNotFound = errs.New("conference not found")
)

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
}

type bookingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewBookingQueries(uow shared.UnitOfWork) BookingQueries {
	return &bookingQueriesImpl{uow: uow}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	var view *BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = toBookingView(b)

		if b.Status() != booking.StatusWaitlisted {
			return nil
		}
		wl, err := tx.Waitlist().Load(ctx, b.ConferenceID())
		if err != nil {
			return err
		}
		if pos, ok := wl.Position(b.ID()); ok {
			view.Position = &pos
		}
		return nil
	})
	if errs.Is(err, shared.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

func toBookingView(b *booking.Booking) *BookingView {
	return &BookingView{
		ID:           b.ID(),
		ConferenceID: b.ConferenceID(),
		UserID:       b.UserID(),
		Status:       b.Status().String(),
		ConfirmBy:    b.ConfirmBy(),
		CreatedAt:    b.CreatedAt(),
		UpdatedAt:    b.UpdatedAt(),
	}
}
