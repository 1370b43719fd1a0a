//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"conference-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestRule(t *testing.T) {
	errNoSeat := errs.Rule("no seat")

	t.Run("rule errors are business rule violations", func(t *testing.T) {
		assert.True(t, errs.IsBusinessRule(errNoSeat))
		assert.True(t, errs.IsBusinessRule(errs.Wrap(errNoSeat, "book")))
		assert.False(t, errs.IsInvariant(errNoSeat))
	})

	t.Run("plain errors are not business rule violations", func(t *testing.T) {
		assert.False(t, errs.IsBusinessRule(errors.New("connection reset")))
		assert.False(t, errs.IsBusinessRule(nil))
	})

	t.Run("wrapped sentinel keeps identity", func(t *testing.T) {
		wrapped := errs.Wrapf(errNoSeat, "conference %s", "gophercon")
		assert.True(t, errors.Is(wrapped, errNoSeat))
	})

	t.Run("rule errors of the same class stay distinct", func(t *testing.T) {
		errDeadline := errs.Rule("deadline passed")

		assert.False(t, errs.Is(errNoSeat, errDeadline))
		assert.False(t, errs.Is(errs.Wrap(errDeadline, "confirm"), errNoSeat))
		assert.True(t, errs.Is(errs.Wrap(errDeadline, "confirm"), errDeadline))
		assert.True(t, errs.Is(errNoSeat, errs.ErrBusinessRule))
	})

	t.Run("database marks do not make a rule error", func(t *testing.T) {
		marked := errs.Mark(errors.New("connection reset"), errs.New("database operation failed"))
		assert.False(t, errs.IsBusinessRule(marked))
	})

	t.Run("mark with nil returns the mark", func(t *testing.T) {
		assert.Equal(t, errs.ErrInvariant, errs.Mark(nil, errs.ErrInvariant))
	})
}

func TestInvariant(t *testing.T) {
	errCapacity := errs.Invariant("capacity out of range")
	errDense := errs.Invariant("positions not dense")

	assert.True(t, errs.IsInvariant(errs.Wrapf(errCapacity, "conference %s", "gophercon")))
	assert.False(t, errs.IsBusinessRule(errCapacity))
	assert.True(t, errs.Is(errDense, errs.ErrInvariant))
	assert.False(t, errs.Is(errCapacity, errDense))
	assert.False(t, errs.Is(errDense, errCapacity))
}
