package commands

import (
	"context"
	"time"

	"conference-booking/internal/domain/conference"
	"conference-booking/internal/domain/user"
	"conference-booking/internal/pkg/clock"
	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/usecase/shared"
)

type CreateConferenceRequest struct {
	ID            string
	Name          string
	StartsAt      time.Time
	EndsAt        time.Time
	TotalCapacity int
}

type CreateUserRequest struct {
	ID        string
	Interests []string
}

// DirectoryCommands populates the conference and user directories the engine
// reads from. Nothing here touches capacity after creation.
type DirectoryCommands interface {
	CreateConference(ctx context.Context, req CreateConferenceRequest) (*conference.Conference, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*user.User, error)
}

type directoryUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewDirectoryUseCase(uow shared.UnitOfWork, clk clock.Clock) DirectoryCommands {
	return &directoryUseCaseImpl{uow: uow, clock: clk}
}

func (uc *directoryUseCaseImpl) CreateConference(ctx context.Context, req CreateConferenceRequest) (*conference.Conference, error) {
	c, err := conference.NewConference(req.ID, req.Name, req.StartsAt, req.EndsAt, req.TotalCapacity, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Conferences().Create(ctx, c)
	})
	if errs.Is(err, shared.ErrDuplicate) {
		return nil, ErrConferenceExists
	}
	if err != nil {
		return nil, classify(err)
	}
	return c, nil
}

func (uc *directoryUseCaseImpl) CreateUser(ctx context.Context, req CreateUserRequest) (*user.User, error) {
	interests, err := user.NewInterests(req.Interests)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}
	u, err := user.NewUser(req.ID, interests, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	if errs.Is(err, shared.ErrDuplicate) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, classify(err)
	}
	return u, nil
}
