package memory

import (
	"maps"
	"slices"
	"time"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrConstraintViolated = errs.Invariant("memory store constraint violated")

type conferenceRow struct {
	id                string
	name              string
	start             time.Time
	end               time.Time
	totalCapacity     int
	availableCapacity int
	createdAt         time.Time
}

type userRow struct {
	id        string
	interests []string
	createdAt time.Time
}

type bookingRow struct {
	id           uuid.UUID
	conferenceID string
	userID       string
	status       booking.Status
	confirmBy    *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

type entryRow struct {
	conferenceID string
	position     int
}

// state is copied per write transaction. Rows are values, so a shallow map
// copy is enough to isolate the copy.
type state struct {
	conferences map[string]conferenceRow
	users       map[string]userRow
	bookings    map[uuid.UUID]bookingRow
	entries     map[uuid.UUID]entryRow
}

func newState() *state {
	return &state{
		conferences: map[string]conferenceRow{},
		users:       map[string]userRow{},
		bookings:    map[uuid.UUID]bookingRow{},
		entries:     map[uuid.UUID]entryRow{},
	}
}

func (s *state) clone() *state {
	return &state{
		conferences: maps.Clone(s.conferences),
		users:       maps.Clone(s.users),
		bookings:    maps.Clone(s.bookings),
		entries:     maps.Clone(s.entries),
	}
}

// check runs the constraints a database would enforce at commit: the capacity
// ledger, one active booking per user and conference, and dense waitlists that
// hold exactly the waitlisted bookings.
func (s *state) check() error {
	confirmed := map[string]int{}
	active := map[[2]string]uuid.UUID{}
	for _, b := range s.bookings {
		if b.status == booking.StatusConfirmed {
			confirmed[b.conferenceID]++
		}
		_, queued := s.entries[b.id]
		if queued != (b.status == booking.StatusWaitlisted) {
			return errs.Wrapf(ErrConstraintViolated, "booking %s is %s but queued=%t", b.id, b.status, queued)
		}
		if !b.status.IsActive() {
			continue
		}

		key := [2]string{b.conferenceID, b.userID}
		if other, ok := active[key]; ok {
			return errs.Wrapf(ErrConstraintViolated, "bookings %s and %s are both active for %v", other, b.id, key)
		}
		active[key] = b.id
	}

	for _, c := range s.conferences {
		if c.availableCapacity != c.totalCapacity-confirmed[c.id] {
			return errs.Wrapf(ErrConstraintViolated, "conference %s: available %d, total %d, confirmed %d",
				c.id, c.availableCapacity, c.totalCapacity, confirmed[c.id])
		}
	}

	positions := map[string][]int{}
	for id, e := range s.entries {
		if _, ok := s.bookings[id]; !ok {
			return errs.Wrapf(ErrConstraintViolated, "waitlist entry %s has no booking", id)
		}
		positions[e.conferenceID] = append(positions[e.conferenceID], e.position)
	}
	for conferenceID, ps := range positions {
		slices.Sort(ps)
		for i, p := range ps {
			if p != i+1 {
				return errs.Wrapf(ErrConstraintViolated, "conference %s: waitlist positions %v are not dense", conferenceID, ps)
			}
		}
	}
	return nil
}
