package repository

import (
	"context"
	"log/slog"

	"conference-booking/internal/domain/user"
	"conference-booking/internal/infra/db"
	"conference-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertUser = `INSERT INTO users (id, interests, created_at) VALUES ($1, $2, $3)`
	selectUser = `SELECT id, interests, created_at FROM users WHERE id = $1`
)

type UserRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUserRepository(dbtx db.DBTX, logger *slog.Logger) *UserRepository {
	return &UserRepository{db: dbtx, logger: logger}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, insertUser, u.ID(), u.Interests().Strings(), pgconv.TimeToPgtype(u.CreatedAt()))
	if err != nil {
		return wrapErr(r.logger, "failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.find(ctx, selectUser, id)
}

// FindByIDForUpdate takes a row lock on the user. The engine takes it before any
// conference lock.
func (r *UserRepository) FindByIDForUpdate(ctx context.Context, id string) (*user.User, error) {
	return r.find(ctx, selectUser+" FOR UPDATE", id)
}

func (r *UserRepository) find(ctx context.Context, query, id string) (*user.User, error) {
	var (
		userID    string
		tags      []string
		createdAt pgtype.Timestamptz
	)
	if err := r.db.QueryRow(ctx, query, id).Scan(&userID, &tags, &createdAt); err != nil {
		return nil, wrapErr(r.logger, "failed to find user", err)
	}
	interests, err := user.NewInterests(tags)
	if err != nil {
		return nil, wrapErr(r.logger, "stored interests are invalid", err)
	}
	return user.ReconstructUser(userID, interests, pgconv.TimeFromPgtype(createdAt)), nil
}
