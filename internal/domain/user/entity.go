package user

import (
	"strings"
	"time"
)

// User is a requester. The booking engine only reads its identity.
type User struct {
	id        string
	interests Interests
	createdAt time.Time
}

func NewUser(id string, interests Interests, now time.Time) (*User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}
	if len(id) > MaxIDLength {
		return nil, ErrIDTooLong
	}
	return &User{
		id:        id,
		interests: interests,
		createdAt: now,
	}, nil
}

func ReconstructUser(id string, interests Interests, createdAt time.Time) *User {
	return &User{
		id:        id,
		interests: interests,
		createdAt: createdAt,
	}
}

func (u *User) ID() string           { return u.id }
func (u *User) Interests() Interests { return u.interests }
func (u *User) CreatedAt() time.Time { return u.createdAt }
