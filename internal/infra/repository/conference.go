package repository

import (
	"context"
	"log/slog"
	"time"

	"conference-booking/internal/domain/conference"
	"conference-booking/internal/infra/db"
	"conference-booking/internal/infra/repository/converter"
	"conference-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
)

const (
	insertConference = `INSERT INTO conferences (` + converter.ConferenceColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	selectConference = `SELECT ` + converter.ConferenceColumns + ` FROM conferences WHERE id = $1`

	updateConferenceCapacity = `UPDATE conferences SET available_capacity = $2 WHERE id = $1`

	listStartedWithWaitlist = `SELECT c.id FROM conferences c
WHERE c.start_time <= $1
  AND EXISTS (SELECT 1 FROM waitlist_entries w WHERE w.conference_id = c.id)
ORDER BY c.id`
)

type ConferenceRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewConferenceRepository(dbtx db.DBTX, logger *slog.Logger) *ConferenceRepository {
	return &ConferenceRepository{db: dbtx, logger: logger}
}

func (r *ConferenceRepository) Create(ctx context.Context, c *conference.Conference) error {
	_, err := r.db.Exec(ctx, insertConference,
		c.ID(),
		c.Name(),
		pgconv.TimeToPgtype(c.Start()),
		pgconv.TimeToPgtype(c.End()),
		c.TotalCapacity(),
		c.AvailableCapacity(),
		pgconv.TimeToPgtype(c.CreatedAt()),
	)
	if err != nil {
		return wrapErr(r.logger, "failed to create conference", err)
	}
	return nil
}

func (r *ConferenceRepository) FindByID(ctx context.Context, id string) (*conference.Conference, error) {
	return r.find(ctx, selectConference, id)
}

func (r *ConferenceRepository) FindByIDForUpdate(ctx context.Context, id string) (*conference.Conference, error) {
	return r.find(ctx, selectConference+" FOR UPDATE", id)
}

func (r *ConferenceRepository) find(ctx context.Context, query, id string) (*conference.Conference, error) {
	var row converter.Conferences
	if err := r.db.QueryRow(ctx, query, id).Scan(row.ScanTargets()...); err != nil {
		return nil, wrapErr(r.logger, "failed to find conference", err)
	}
	return converter.ConferenceToDomain(row), nil
}

func (r *ConferenceRepository) UpdateCapacity(ctx context.Context, c *conference.Conference) error {
	tag, err := r.db.Exec(ctx, updateConferenceCapacity, c.ID(), c.AvailableCapacity())
	if err != nil {
		return wrapErr(r.logger, "failed to update conference capacity", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(r.logger, "conference not found")
	}
	return nil
}

func (r *ConferenceRepository) ListStartedWithWaitlist(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, listStartedWithWaitlist, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, wrapErr(r.logger, "failed to list started conferences", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrapErr(r.logger, "failed to scan started conferences", err)
	}
	return ids, nil
}
