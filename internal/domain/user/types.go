package user

import "strings"

// Interest is a lowercase tag used by recommendation features outside the booking engine.
type Interest string

func NewInterest(s string) (Interest, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if tag == "" {
		return "", ErrEmptyInterest
	}
	if len(tag) > MaxInterestLength {
		return "", ErrInterestTooLong
	}
	return Interest(tag), nil
}

func (i Interest) String() string {
	return string(i)
}
