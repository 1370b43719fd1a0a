package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/domain/conference"
	"conference-booking/internal/domain/user"
	"conference-booking/internal/domain/waitlist"
	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type conferenceRepository struct{ tx *memTx }

func (r *conferenceRepository) Create(_ context.Context, c *conference.Conference) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.conferences[c.ID()]; ok {
		return errs.Wrapf(shared.ErrDuplicate, "conference %s", c.ID())
	}
	r.tx.st.conferences[c.ID()] = conferenceRow{
		id:                c.ID(),
		name:              c.Name(),
		start:             c.Start(),
		end:               c.End(),
		totalCapacity:     c.TotalCapacity(),
		availableCapacity: c.AvailableCapacity(),
		createdAt:         c.CreatedAt(),
	}
	return nil
}

func (r *conferenceRepository) FindByID(_ context.Context, id string) (*conference.Conference, error) {
	row, ok := r.tx.st.conferences[id]
	if !ok {
		return nil, errs.Wrapf(shared.ErrNotFound, "conference %s", id)
	}
	return conference.ReconstructConference(
		row.id, row.name,
		conference.ReconstructWindow(row.start, row.end),
		row.totalCapacity, row.availableCapacity,
		row.createdAt,
	), nil
}

// FindByIDForUpdate needs no row lock: the UoW mutex already serializes transactions.
func (r *conferenceRepository) FindByIDForUpdate(ctx context.Context, id string) (*conference.Conference, error) {
	return r.FindByID(ctx, id)
}

func (r *conferenceRepository) UpdateCapacity(_ context.Context, c *conference.Conference) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	row, ok := r.tx.st.conferences[c.ID()]
	if !ok {
		return errs.Wrapf(shared.ErrNotFound, "conference %s", c.ID())
	}
	if c.AvailableCapacity() < 0 || c.AvailableCapacity() > row.totalCapacity {
		return errs.Wrapf(conference.ErrCapacityInvariant, "conference %s: available %d", c.ID(), c.AvailableCapacity())
	}
	row.availableCapacity = c.AvailableCapacity()
	r.tx.st.conferences[c.ID()] = row
	return nil
}

func (r *conferenceRepository) ListStartedWithWaitlist(_ context.Context, now time.Time) ([]string, error) {
	queued := map[string]bool{}
	for _, e := range r.tx.st.entries {
		queued[e.conferenceID] = true
	}
	var ids []string
	for id, c := range r.tx.st.conferences {
		if queued[id] && !now.Before(c.start) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

type userRepository struct{ tx *memTx }

func (r *userRepository) Create(_ context.Context, u *user.User) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.users[u.ID()]; ok {
		return errs.Wrapf(shared.ErrDuplicate, "user %s", u.ID())
	}
	r.tx.st.users[u.ID()] = userRow{
		id:        u.ID(),
		interests: u.Interests().Strings(),
		createdAt: u.CreatedAt(),
	}
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	row, ok := r.tx.st.users[id]
	if !ok {
		return nil, errs.Wrapf(shared.ErrNotFound, "user %s", id)
	}
	interests, err := user.NewInterests(row.interests)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(row.id, interests, row.createdAt), nil
}

func (r *userRepository) FindByIDForUpdate(ctx context.Context, id string) (*user.User, error) {
	return r.FindByID(ctx, id)
}

type bookingRepository struct{ tx *memTx }

func toBookingRow(b *booking.Booking) bookingRow {
	row := bookingRow{
		id:           b.ID(),
		conferenceID: b.ConferenceID(),
		userID:       b.UserID(),
		status:       b.Status(),
		createdAt:    b.CreatedAt(),
		updatedAt:    b.UpdatedAt(),
	}
	if b.ConfirmBy() != nil {
		t := *b.ConfirmBy()
		row.confirmBy = &t
	}
	return row
}

func (row bookingRow) toDomain() *booking.Booking {
	var confirmBy *time.Time
	if row.confirmBy != nil {
		t := *row.confirmBy
		confirmBy = &t
	}
	return booking.ReconstructBooking(row.id, row.conferenceID, row.userID, row.status, confirmBy, row.createdAt, row.updatedAt)
}

func (r *bookingRepository) Create(_ context.Context, b *booking.Booking) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.conferences[b.ConferenceID()]; !ok {
		return errs.Wrapf(shared.ErrNotFound, "conference %s", b.ConferenceID())
	}
	if _, ok := r.tx.st.users[b.UserID()]; !ok {
		return errs.Wrapf(shared.ErrNotFound, "user %s", b.UserID())
	}
	if _, ok := r.tx.st.bookings[b.ID()]; ok {
		return errs.Wrapf(shared.ErrDuplicate, "booking %s", b.ID())
	}
	for _, other := range r.tx.st.bookings {
		if other.status.IsActive() && other.conferenceID == b.ConferenceID() && other.userID == b.UserID() {
			return errs.Wrapf(shared.ErrDuplicate, "active booking of %s for %s", b.UserID(), b.ConferenceID())
		}
	}
	r.tx.st.bookings[b.ID()] = toBookingRow(b)
	return nil
}

func (r *bookingRepository) Update(_ context.Context, b *booking.Booking) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.bookings[b.ID()]; !ok {
		return errs.Wrapf(shared.ErrNotFound, "booking %s", b.ID())
	}
	r.tx.st.bookings[b.ID()] = toBookingRow(b)
	return nil
}

func (r *bookingRepository) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, ok := r.tx.st.bookings[id]
	if !ok {
		return nil, errs.Wrapf(shared.ErrNotFound, "booking %s", id)
	}
	return row.toDomain(), nil
}

func (r *bookingRepository) ExistsActive(_ context.Context, userID, conferenceID string) (bool, error) {
	for _, b := range r.tx.st.bookings {
		if b.status.IsActive() && b.userID == userID && b.conferenceID == conferenceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepository) HasOverlapping(_ context.Context, userID string, w conference.Window, excludeConferenceID string) (bool, error) {
	for _, b := range r.tx.st.bookings {
		if !b.status.IsActive() || b.userID != userID || b.conferenceID == excludeConferenceID {
			continue
		}
		c := r.tx.st.conferences[b.conferenceID]
		if conference.ReconstructWindow(c.start, c.end).Overlaps(w) {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepository) list(keep func(bookingRow) bool, cmp func(a, b bookingRow) int) []*booking.Booking {
	var rows []bookingRow
	for _, b := range r.tx.st.bookings {
		if keep(b) {
			rows = append(rows, b)
		}
	}
	slices.SortFunc(rows, cmp)
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func (r *bookingRepository) ListWaitlistedByUser(_ context.Context, userID, excludeConferenceID string) ([]*booking.Booking, error) {
	return r.list(func(b bookingRow) bool {
		return b.status == booking.StatusWaitlisted && b.userID == userID && b.conferenceID != excludeConferenceID
	}, func(a, b bookingRow) int {
		return strings.Compare(a.conferenceID, b.conferenceID)
	}), nil
}

func (r *bookingRepository) ListWaitlistedByConference(_ context.Context, conferenceID string) ([]*booking.Booking, error) {
	return r.list(func(b bookingRow) bool {
		return b.status == booking.StatusWaitlisted && b.conferenceID == conferenceID
	}, r.byPosition), nil
}

func (r *bookingRepository) ListExpiredPromotions(_ context.Context, conferenceID string, now time.Time) ([]*booking.Booking, error) {
	return r.list(func(b bookingRow) bool {
		return b.status == booking.StatusWaitlisted && b.conferenceID == conferenceID &&
			b.confirmBy != nil && now.After(*b.confirmBy)
	}, r.byPosition), nil
}

func (r *bookingRepository) ListConferencesWithExpiredPromotions(_ context.Context, now time.Time) ([]string, error) {
	seen := map[string]bool{}
	var ids []string
	for _, b := range r.tx.st.bookings {
		if b.status == booking.StatusWaitlisted && b.confirmBy != nil && now.After(*b.confirmBy) && !seen[b.conferenceID] {
			seen[b.conferenceID] = true
			ids = append(ids, b.conferenceID)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (r *bookingRepository) byPosition(a, b bookingRow) int {
	return r.tx.st.entries[a.id].position - r.tx.st.entries[b.id].position
}

type waitlistRepository struct{ tx *memTx }

func (r *waitlistRepository) Load(_ context.Context, conferenceID string) (*waitlist.Queue, error) {
	var entries []waitlist.Entry
	for id, e := range r.tx.st.entries {
		if e.conferenceID != conferenceID {
			continue
		}
		entries = append(entries, waitlist.Entry{
			BookingID: id,
			Position:  e.position,
			CreatedAt: r.tx.st.bookings[id].createdAt,
		})
	}
	return waitlist.ReconstructQueue(conferenceID, entries), nil
}

func (r *waitlistRepository) Save(_ context.Context, q *waitlist.Queue) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	ch := q.Changes()
	for _, id := range ch.Deleted {
		delete(r.tx.st.entries, id)
	}
	for _, e := range slices.Concat(ch.Inserted, ch.Moved) {
		if _, ok := r.tx.st.bookings[e.BookingID]; !ok {
			return errs.Wrapf(shared.ErrNotFound, "booking %s", e.BookingID)
		}
		r.tx.st.entries[e.BookingID] = entryRow{conferenceID: q.ConferenceID(), position: e.Position}
	}
	q.MarkSaved()
	return nil
}
