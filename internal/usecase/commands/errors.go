package commands

import (
	"conference-booking/internal/pkg/errs"
)

// ErrBusinessRule matches every expected rejection below under errs.Is.
var ErrBusinessRule = errs.ErrBusinessRule

var (
	ErrConferenceNotFound = errs.Rule("conference not found")
	ErrConferenceStarted  = errs.Rule("conference has already started")
	ErrUserNotFound       = errs.Rule("user not found")
	ErrAlreadyBooked      = errs.Rule("user already holds an active booking for this conference")
	ErrTimeConflict       = errs.Rule("booking overlaps another active booking of the user")
	ErrBookingNotFound    = errs.Rule("booking not found")
	ErrBookingCanceled    = errs.Rule("booking is already canceled")
	ErrNotWaitlisted      = errs.Rule("booking is not waitlisted")
	ErrDeadlinePassed     = errs.Rule("confirmation deadline has passed")
	ErrNoCapacity         = errs.Rule("no seats available")

	ErrConferenceExists = errs.Rule("conference already exists")
	ErrUserExists       = errs.Rule("user already exists")
)

var (
	// ErrInvalidInput marks domain validation failures of directory commands.
	ErrInvalidInput            = errs.New("invalid input")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

func IsBusinessRule(err error) bool {
	return errs.IsBusinessRule(err)
}

// classify marks every unexpected error as an infrastructure failure.
func classify(err error) error {
	if err == nil || errs.IsBusinessRule(err) || errs.IsInvariant(err) || errs.Is(err, ErrInvalidInput) {
		return err
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

// RejectionReason is a stable snake_case label for a business-rule failure,
// shared by metrics and API error details.
func RejectionReason(err error) string {
	switch {
	case errs.Is(err, ErrConferenceNotFound):
		return "conference_not_found"
	case errs.Is(err, ErrConferenceStarted):
		return "conference_started"
	case errs.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errs.Is(err, ErrAlreadyBooked):
		return "already_booked"
	case errs.Is(err, ErrTimeConflict):
		return "time_conflict"
	case errs.Is(err, ErrBookingNotFound):
		return "booking_not_found"
	case errs.Is(err, ErrBookingCanceled):
		return "booking_canceled"
	case errs.Is(err, ErrNotWaitlisted):
		return "not_waitlisted"
	case errs.Is(err, ErrDeadlinePassed):
		return "deadline_passed"
	case errs.Is(err, ErrNoCapacity):
		return "no_capacity"
	case errs.Is(err, ErrConferenceExists):
		return "conference_exists"
	case errs.Is(err, ErrUserExists):
		return "user_exists"
	default:
		return "other"
	}
}
