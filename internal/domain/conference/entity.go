package conference

import (
	"errors"
	"strings"
	"time"

	"conference-booking/internal/pkg/errs"
)

const (
	MaxDuration   = 12 * time.Hour
	MaxIDLength   = 64
	MaxNameLength = 255
)

var (
	ErrEmptyID              = errors.New("conference id cannot be empty")
	ErrIDTooLong            = errors.New("conference id is too long (max 64 characters)")
	ErrEmptyName            = errors.New("conference name cannot be empty")
	ErrNameTooLong          = errors.New("conference name is too long (max 255 characters)")
	ErrInvalidWindow        = errors.New("conference end must be after start")
	ErrWindowTooLong        = errors.New("conference duration exceeds maximum")
	ErrStartInPast          = errors.New("conference cannot start in the past")
	ErrInvalidTotalCapacity = errors.New("total capacity must be positive")

	ErrCapacityInvariant = errs.Invariant("available capacity out of range")
)

// Conference is the capacity ledger row for one bookable event.
// availableCapacity is only changed through TakeSeat and ReleaseSeat.
type Conference struct {
	id                string
	name              string
	window            Window
	totalCapacity     int
	availableCapacity int
	createdAt         time.Time
}

func NewConference(id, name string, start, end time.Time, totalCapacity int, now time.Time) (*Conference, error) {
	id = strings.TrimSpace(id)
	if err := validateID(id); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	window, err := NewWindow(start, end)
	if err != nil {
		return nil, err
	}
	if window.Start().Before(now) {
		return nil, ErrStartInPast
	}

	if totalCapacity <= 0 {
		return nil, ErrInvalidTotalCapacity
	}

	return &Conference{
		id:                id,
		name:              name,
		window:            window,
		totalCapacity:     totalCapacity,
		availableCapacity: totalCapacity,
		createdAt:         now,
	}, nil
}

func ReconstructConference(id, name string, window Window, totalCapacity, availableCapacity int, createdAt time.Time) *Conference {
	return &Conference{
		id:                id,
		name:              name,
		window:            window,
		totalCapacity:     totalCapacity,
		availableCapacity: availableCapacity,
		createdAt:         createdAt,
	}
}

func validateID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if len(id) > MaxIDLength {
		return ErrIDTooLong
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// HasStarted reports whether now is at or past the start of the window.
func (c *Conference) HasStarted(now time.Time) bool {
	return !now.Before(c.window.Start())
}

func (c *Conference) HasSeat() bool {
	return c.availableCapacity > 0
}

func (c *Conference) TakeSeat() error {
	if c.availableCapacity <= 0 {
		return errs.Wrapf(ErrCapacityInvariant, "take seat on %s with available=%d", c.id, c.availableCapacity)
	}
	c.availableCapacity--
	return nil
}

func (c *Conference) ReleaseSeat() error {
	if c.availableCapacity >= c.totalCapacity {
		return errs.Wrapf(ErrCapacityInvariant, "release seat on %s with available=%d total=%d", c.id, c.availableCapacity, c.totalCapacity)
	}
	c.availableCapacity++
	return nil
}

func (c *Conference) ConfirmedCount() int {
	return c.totalCapacity - c.availableCapacity
}

func (c *Conference) ID() string             { return c.id }
func (c *Conference) Name() string           { return c.name }
func (c *Conference) Window() Window         { return c.window }
func (c *Conference) Start() time.Time       { return c.window.Start() }
func (c *Conference) End() time.Time         { return c.window.End() }
func (c *Conference) TotalCapacity() int     { return c.totalCapacity }
func (c *Conference) AvailableCapacity() int { return c.availableCapacity }
func (c *Conference) CreatedAt() time.Time   { return c.createdAt }
