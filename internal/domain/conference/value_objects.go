package conference

import (
	"time"
)

// Window is the half-open interval [start, end) a conference occupies.
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, ErrInvalidWindow
	}
	if end.Sub(start) > MaxDuration {
		return Window{}, ErrWindowTooLong
	}
	return Window{start: start, end: end}, nil
}

// ReconstructWindow skips validation for rows already persisted.
func ReconstructWindow(start, end time.Time) Window {
	return Window{start: start, end: end}
}

func (w Window) Start() time.Time { return w.start }
func (w Window) End() time.Time   { return w.end }

func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}
