//go:build unit

package user_test

import (
	"strings"
	"testing"

	"conference-booking/internal/domain/user"
	"conference-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("Normal case", func(t *testing.T) {
		b := builder.NewUserBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		interests, _ := user.NewInterests(b.Interests)
		expected, _ := user.NewUser(b.ID, interests, b.Now)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.Equal(t, "alice", actual.ID())
		assert.Equal(t, []string{"cloud", "go"}, actual.Interests().Strings())
	})

	t.Run("ID validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty id rejected",
				mutate: func(b *builder.UserBuilder) { b.ID = "   " },
				errIs:  user.ErrEmptyID,
			},
			{
				name:   "max length accepted",
				mutate: func(b *builder.UserBuilder) { b.ID = strings.Repeat("u", user.MaxIDLength) },
			},
			{
				name:   "over max length rejected",
				mutate: func(b *builder.UserBuilder) { b.ID = strings.Repeat("u", user.MaxIDLength+1) },
				errIs:  user.ErrIDTooLong,
			},
		})
	})

	t.Run("interest validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "no interests accepted",
				mutate: func(b *builder.UserBuilder) { b.Interests = nil },
			},
			{
				name:   "empty interest rejected",
				mutate: func(b *builder.UserBuilder) { b.Interests = []string{"go", " "} },
				errIs:  user.ErrEmptyInterest,
			},
			{
				name:   "too long interest rejected",
				mutate: func(b *builder.UserBuilder) { b.Interests = []string{strings.Repeat("t", user.MaxInterestLength+1)} },
				errIs:  user.ErrInterestTooLong,
			},
			{
				name: "too many interests rejected",
				mutate: func(b *builder.UserBuilder) {
					b.Interests = nil
					for i := 0; i <= user.MaxInterests; i++ {
						b.Interests = append(b.Interests, strings.Repeat("x", i+1))
					}
				},
				errIs: user.ErrTooManyInterest,
			},
		})
	})
}

func TestInterests(t *testing.T) {
	interests, err := user.NewInterests([]string{" Go", "cloud", "go", "CLOUD", "databases"})
	require.NoError(t, err)

	assert.Equal(t, []string{"cloud", "databases", "go"}, interests.Strings())
	assert.True(t, interests.Contains("go"))
	assert.False(t, interests.Contains("rust"))
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
