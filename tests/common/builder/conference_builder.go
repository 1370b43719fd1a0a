//go:build unit || e2e

package builder

import (
	"time"

	"conference-booking/internal/domain/conference"
	"conference-booking/internal/usecase/queries"
)

type ConferenceBuilder struct {
	ID            string
	Name          string
	Start         time.Time
	End           time.Time
	TotalCapacity int
	Now           time.Time
}

func NewConferenceBuilder() *ConferenceBuilder {
	now := time.Now().UTC().Truncate(time.Microsecond)
	start := now.Add(48 * time.Hour)
	return &ConferenceBuilder{
		ID:            "gophercon-2026",
		Name:          "GopherCon 2026",
		Start:         start,
		End:           start.Add(8 * time.Hour),
		TotalCapacity: 2,
		Now:           now,
	}
}

func (b *ConferenceBuilder) With(mutate func(*ConferenceBuilder)) *ConferenceBuilder {
	mutate(b)
	return b
}

// StartingIn shifts the window so it opens d after Now and keeps its length.
func (b *ConferenceBuilder) StartingIn(d time.Duration) *ConferenceBuilder {
	length := b.End.Sub(b.Start)
	b.Start = b.Now.Add(d)
	b.End = b.Start.Add(length)
	return b
}

func (b *ConferenceBuilder) BuildDomain() (*conference.Conference, error) {
	return conference.NewConference(b.ID, b.Name, b.Start, b.End, b.TotalCapacity, b.Now)
}

// BuildStored skips the "not in the past" rule, for seeding conferences that already started.
func (b *ConferenceBuilder) BuildStored() *conference.Conference {
	return conference.ReconstructConference(
		b.ID, b.Name,
		conference.ReconstructWindow(b.Start, b.End),
		b.TotalCapacity, b.TotalCapacity,
		b.Now,
	)
}

// BuildRequest renders the builder as a create-conference JSON body.
func (b *ConferenceBuilder) BuildRequest() map[string]any {
	return map[string]any{
		"id":             b.ID,
		"name":           b.Name,
		"starts_at":      b.Start.Format(time.RFC3339),
		"ends_at":        b.End.Format(time.RFC3339),
		"total_capacity": b.TotalCapacity,
	}
}

func (b *ConferenceBuilder) BuildView() *queries.ConferenceView {
	return &queries.ConferenceView{
		ID:                b.ID,
		Name:              b.Name,
		StartsAt:          b.Start,
		EndsAt:            b.End,
		TotalCapacity:     b.TotalCapacity,
		AvailableCapacity: b.TotalCapacity,
		CreatedAt:         b.Now,
	}
}
