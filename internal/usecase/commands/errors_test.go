//go:build unit

package commands_test

import (
	"testing"

	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/usecase/commands"
	"conference-booking/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rejections = []struct {
	err    error
	reason string
}{
	{commands.ErrConferenceNotFound, "conference_not_found"},
	{commands.ErrConferenceStarted, "conference_started"},
	{commands.ErrUserNotFound, "user_not_found"},
	{commands.ErrAlreadyBooked, "already_booked"},
	{commands.ErrTimeConflict, "time_conflict"},
	{commands.ErrBookingNotFound, "booking_not_found"},
	{commands.ErrBookingCanceled, "booking_canceled"},
	{commands.ErrNotWaitlisted, "not_waitlisted"},
	{commands.ErrDeadlinePassed, "deadline_passed"},
	{commands.ErrNoCapacity, "no_capacity"},
	{commands.ErrConferenceExists, "conference_exists"},
	{commands.ErrUserExists, "user_exists"},
}

func TestRejectionReason(t *testing.T) {
	seen := make(map[string]error)
	for _, tt := range rejections {
		t.Run(tt.reason, func(t *testing.T) {
			assert.Equal(t, tt.reason, commands.RejectionReason(tt.err))
			assert.Equal(t, tt.reason, commands.RejectionReason(errs.Wrapf(tt.err, "book %s", "gophercon")))
			assert.True(t, commands.IsBusinessRule(tt.err))

			prev, dup := seen[tt.reason]
			require.False(t, dup, "reason %q shared with %v", tt.reason, prev)
			seen[tt.reason] = tt.err
		})
	}

	t.Run("infrastructure failures have no reason", func(t *testing.T) {
		err := errs.Mark(errs.New("connection reset"), commands.ErrDatabaseOperationFailed)
		assert.Equal(t, "other", commands.RejectionReason(err))
		assert.False(t, commands.IsBusinessRule(err))
	})
}

func TestRejectionsAreDistinct(t *testing.T) {
	assert.False(t, errs.Is(commands.ErrNoCapacity, commands.ErrConferenceNotFound))
	assert.False(t, errs.Is(queries.ErrBookingNotFound, commands.ErrConferenceNotFound))

	for i, a := range rejections {
		for j, b := range rejections {
			wrapped := errs.Wrap(a.err, "engine")
			if i == j {
				assert.True(t, errs.Is(wrapped, b.err), a.reason)
				continue
			}
			assert.Falsef(t, errs.Is(wrapped, b.err), "%s matched %s", a.reason, b.reason)
		}
	}
}
