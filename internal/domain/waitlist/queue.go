package waitlist

import (
	"slices"
	"time"

	"conference-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrPositionsNotDense = errs.Invariant("waitlist positions are not dense")

// Entry places one waitlisted booking in its conference's queue.
type Entry struct {
	BookingID uuid.UUID
	Position  int
	// CreatedAt is the booking's arrival time, used to break position ties.
	CreatedAt time.Time
}

// Changes is what a repository must write to move storage from the loaded
// state to the current one.
type Changes struct {
	Inserted []Entry
	Deleted  []uuid.UUID
	Moved    []Entry
}

func (c Changes) IsEmpty() bool {
	return len(c.Inserted) == 0 && len(c.Deleted) == 0 && len(c.Moved) == 0
}

// Queue is the ordered waitlist of a single conference. Entries are kept sorted
// by position; Compact restores the dense 1..N numbering after removals and
// tail moves.
type Queue struct {
	conferenceID string
	entries      []Entry
	loaded       map[uuid.UUID]int
}

func NewQueue(conferenceID string) *Queue {
	return ReconstructQueue(conferenceID, nil)
}

func ReconstructQueue(conferenceID string, entries []Entry) *Queue {
	q := &Queue{
		conferenceID: conferenceID,
		entries:      slices.Clone(entries),
		loaded:       make(map[uuid.UUID]int, len(entries)),
	}
	q.sort()
	for _, e := range q.entries {
		q.loaded[e.BookingID] = e.Position
	}
	return q
}

func (q *Queue) sort() {
	slices.SortStableFunc(q.entries, func(a, b Entry) int {
		if a.Position != b.Position {
			return a.Position - b.Position
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

func (q *Queue) ConferenceID() string { return q.conferenceID }

func (q *Queue) Len() int { return len(q.entries) }

func (q *Queue) Entries() []Entry { return slices.Clone(q.entries) }

// Head is the entry with the lowest position.
func (q *Queue) Head() (Entry, bool) {
	if len(q.entries) == 0 {
		return Entry{}, false
	}
	return q.entries[0], true
}

func (q *Queue) Position(bookingID uuid.UUID) (int, bool) {
	i := q.index(bookingID)
	if i < 0 {
		return 0, false
	}
	return q.entries[i].Position, true
}

func (q *Queue) index(bookingID uuid.UUID) int {
	return slices.IndexFunc(q.entries, func(e Entry) bool { return e.BookingID == bookingID })
}

func (q *Queue) maxPosition() int {
	if len(q.entries) == 0 {
		return 0
	}
	return q.entries[len(q.entries)-1].Position
}

// Append places a booking after the current maximum position.
func (q *Queue) Append(bookingID uuid.UUID, createdAt time.Time) Entry {
	e := Entry{BookingID: bookingID, Position: q.maxPosition() + 1, CreatedAt: createdAt}
	q.entries = append(q.entries, e)
	return e
}

func (q *Queue) Remove(bookingID uuid.UUID) bool {
	i := q.index(bookingID)
	if i < 0 {
		return false
	}
	q.entries = slices.Delete(q.entries, i, i+1)
	return true
}

// MoveToTail gives an entry the position after the current maximum.
func (q *Queue) MoveToTail(bookingID uuid.UUID) bool {
	i := q.index(bookingID)
	if i < 0 {
		return false
	}
	e := q.entries[i]
	e.Position = q.maxPosition() + 1
	q.entries = append(slices.Delete(q.entries, i, i+1), e)
	return true
}

// Compact renumbers entries 1..N keeping their relative order.
func (q *Queue) Compact() {
	q.sort()
	for i := range q.entries {
		q.entries[i].Position = i + 1
	}
}

// Validate checks the dense numbering.
func (q *Queue) Validate() error {
	for i, e := range q.entries {
		if e.Position != i+1 {
			return errs.Wrapf(ErrPositionsNotDense, "conference %s: entry %s at %d, want %d",
				q.conferenceID, e.BookingID, e.Position, i+1)
		}
	}
	return nil
}

func (q *Queue) Changes() Changes {
	var ch Changes
	current := make(map[uuid.UUID]struct{}, len(q.entries))
	for _, e := range q.entries {
		current[e.BookingID] = struct{}{}
		prev, ok := q.loaded[e.BookingID]
		switch {
		case !ok:
			ch.Inserted = append(ch.Inserted, e)
		case prev != e.Position:
			ch.Moved = append(ch.Moved, e)
		}
	}
	for id := range q.loaded {
		if _, ok := current[id]; !ok {
			ch.Deleted = append(ch.Deleted, id)
		}
	}
	slices.SortFunc(ch.Deleted, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	return ch
}

// MarkSaved makes the current state the baseline for the next Changes call.
func (q *Queue) MarkSaved() {
	clear(q.loaded)
	for _, e := range q.entries {
		q.loaded[e.BookingID] = e.Position
	}
}
