//go:build unit || e2e

package builder

import (
	"time"

	"conference-booking/internal/domain/user"
)

type UserBuilder struct {
	ID        string
	Interests []string
	Now       time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:        "alice",
		Interests: []string{"go", "Cloud"},
		Now:       time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) BuildDomain() (*user.User, error) {
	interests, err := user.NewInterests(b.Interests)
	if err != nil {
		return nil, err
	}
	return user.NewUser(b.ID, interests, b.Now)
}

func (b *UserBuilder) BuildRequest() map[string]any {
	return map[string]any{
		"id":        b.ID,
		"interests": b.Interests,
	}
}
