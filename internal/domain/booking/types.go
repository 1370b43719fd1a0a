package booking

type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusWaitlisted Status = "waitlisted"
	StatusCanceled   Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusWaitlisted, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsActive reports whether the booking still holds a seat or a queue place.
func (s Status) IsActive() bool {
	return s == StatusConfirmed || s == StatusWaitlisted
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// transitions lists the prior states each target state accepts.
var transitions = map[Status][]Status{
	StatusConfirmed: {StatusWaitlisted},
	StatusCanceled:  {StatusConfirmed, StatusWaitlisted},
}

func canTransition(from, to Status) bool {
	for _, s := range transitions[to] {
		if s == from {
			return true
		}
	}
	return false
}
