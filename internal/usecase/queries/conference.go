package queries

import (
	"context"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ConferenceQueries interface {
	GetByID(ctx context.Context, id string) (*ConferenceView, error)
	// ListWaitlist returns the conference's waitlist ordered by position.
	ListWaitlist(ctx context.Context, conferenceID string) ([]*WaitlistEntryView, error)
}

type conferenceQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewConferenceQueries(uow shared.UnitOfWork) ConferenceQueries {
	return &conferenceQueriesImpl{uow: uow}
}

func (q *conferenceQueriesImpl) GetByID(ctx context.Context, id string) (*ConferenceView, error) {
	var view *ConferenceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Conferences().FindByID(ctx, id)
		if err != nil {
			return err
		}
		wl, err := tx.Waitlist().Load(ctx, id)
		if err != nil {
			return err
		}
		view = &ConferenceView{
			ID:                c.ID(),
			Name:              c.Name(),
			StartsAt:          c.Start(),
			EndsAt:            c.End(),
			TotalCapacity:     c.TotalCapacity(),
			AvailableCapacity: c.AvailableCapacity(),
			WaitlistLength:    wl.Len(),
			CreatedAt:         c.CreatedAt(),
		}
		return nil
	})
	if errs.Is(err, shared.ErrNotFound) {
		return nil, ErrConferenceNotFound
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *conferenceQueriesImpl) ListWaitlist(ctx context.Context, conferenceID string) ([]*WaitlistEntryView, error) {
	var views []*WaitlistEntryView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Conferences().FindByID(ctx, conferenceID); err != nil {
			return err
		}
		waitlisted, err := tx.Bookings().ListWaitlistedByConference(ctx, conferenceID)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*booking.Booking, len(waitlisted))
		for _, b := range waitlisted {
			byID[b.ID()] = b
		}

		wl, err := tx.Waitlist().Load(ctx, conferenceID)
		if err != nil {
			return err
		}
		views = make([]*WaitlistEntryView, 0, wl.Len())
		for _, e := range wl.Entries() {
			b, ok := byID[e.BookingID]
			if !ok {
				continue
			}
			views = append(views, &WaitlistEntryView{
				Position:  e.Position,
				BookingID: e.BookingID,
				UserID:    b.UserID(),
				ConfirmBy: b.ConfirmBy(),
				CreatedAt: b.CreatedAt(),
			})
		}
		return nil
	})
	if errs.Is(err, shared.ErrNotFound) {
		return nil, ErrConferenceNotFound
	}
	if err != nil {
		return nil, err
	}
	return views, nil
}
