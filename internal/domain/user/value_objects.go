package user

import (
	"errors"
	"slices"
)

const (
	MaxIDLength       = 64
	MaxInterestLength = 50
	MaxInterests      = 20
)

var (
	ErrEmptyID         = errors.New("user id cannot be empty")
	ErrIDTooLong       = errors.New("user id is too long (max 64 characters)")
	ErrEmptyInterest   = errors.New("interest cannot be empty")
	ErrInterestTooLong = errors.New("interest is too long (max 50 characters)")
	ErrTooManyInterest = errors.New("too many interests (max 20)")
)

// Interests is a sorted set of tags.
type Interests struct {
	values []Interest
}

func NewInterests(raw []string) (Interests, error) {
	values := make([]Interest, 0, len(raw))
	for _, s := range raw {
		tag, err := NewInterest(s)
		if err != nil {
			return Interests{}, err
		}
		values = append(values, tag)
	}
	slices.Sort(values)
	values = slices.Compact(values)
	if len(values) > MaxInterests {
		return Interests{}, ErrTooManyInterest
	}
	return Interests{values: values}, nil
}

func (i Interests) Values() []Interest {
	return slices.Clone(i.values)
}

func (i Interests) Strings() []string {
	out := make([]string, len(i.values))
	for n, v := range i.values {
		out[n] = v.String()
	}
	return out
}

func (i Interests) Contains(tag Interest) bool {
	_, found := slices.BinarySearch(i.values, tag)
	return found
}
