package converter

import (
	"conference-booking/internal/domain/conference"
	"conference-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// Conferences mirrors a row of the conferences table.
type Conferences struct {
	ID                string
	Name              string
	StartTime         pgtype.Timestamptz
	EndTime           pgtype.Timestamptz
	TotalCapacity     int32
	AvailableCapacity int32
	CreatedAt         pgtype.Timestamptz
}

// ScanTargets lists the fields in the column order of ConferenceColumns.
func (r *Conferences) ScanTargets() []any {
	return []any{&r.ID, &r.Name, &r.StartTime, &r.EndTime, &r.TotalCapacity, &r.AvailableCapacity, &r.CreatedAt}
}

const ConferenceColumns = "id, name, start_time, end_time, total_capacity, available_capacity, created_at"

func ConferenceToDomain(r Conferences) *conference.Conference {
	return conference.ReconstructConference(
		r.ID,
		r.Name,
		conference.ReconstructWindow(pgconv.TimeFromPgtype(r.StartTime), pgconv.TimeFromPgtype(r.EndTime)),
		int(r.TotalCapacity),
		int(r.AvailableCapacity),
		pgconv.TimeFromPgtype(r.CreatedAt),
	)
}
