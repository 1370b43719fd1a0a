//go:build e2e

package sweep_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"conference-booking/internal/handler/dto/response"
	"conference-booking/internal/sweeper"
	"conference-booking/tests/common/builder"
	"conference-booking/tests/common/dbtest"
	"conference-booking/tests/common/httptest"
	"conference-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type SweepSuite struct {
	e2e.SharedSuite
}

func (s *SweepSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestSweepSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SweepSuite))
}

func (s *SweepSuite) book(t *testing.T, conferenceID, userID string) response.BookingResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf("/api/conferences/%s/bookings", conferenceID), map[string]any{"user_id": userID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res
}

func (s *SweepSuite) waitlist(t *testing.T, conferenceID string) []response.WaitlistEntryResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf("/api/conferences/%s/waitlist", conferenceID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res []response.WaitlistEntryResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res
}

func (s *SweepSuite) TestExpiredPromotions() {
	s.Run("Normal case: expired head moves to the tail and the next head is promoted", func() {
		t := s.T()
		ctx := context.Background()

		conf := builder.NewConferenceBuilder().With(func(b *builder.ConferenceBuilder) { b.TotalCapacity = 1 })
		dbtest.CreateTestConference(t, s.DB, conf.ID, conf.Start, conf.TotalCapacity)
		for _, id := range []string{"alice", "bob", "carol"} {
			dbtest.CreateTestUser(t, s.DB, id)
		}

		alice := s.book(t, conf.ID, "alice")
		bob := s.book(t, conf.ID, "bob")
		carol := s.book(t, conf.ID, "carol")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings/"+alice.ID+"/cancel", nil)
		require.Equal(t, http.StatusOK, w.Code)

		dbtest.ExpirePromotion(t, s.DB, uuid.MustParse(bob.ID))
		require.NoError(t, s.Sweeper.RunOnce(ctx))

		queue := s.waitlist(t, conf.ID)
		require.Len(t, queue, 2)
		require.Equal(t, carol.ID, queue[0].BookingID)
		require.Equal(t, 1, queue[0].Position)
		require.NotNil(t, queue[0].ConfirmBy)
		require.Equal(t, bob.ID, queue[1].BookingID)
		require.Equal(t, 2, queue[1].Position)
		require.Nil(t, queue[1].ConfirmBy)

		// the seat alice released is still free for the new head
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings/"+carol.ID+"/confirm", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Normal case: nothing to do is not an error", func() {
		t := s.T()
		require.NoError(t, s.Sweeper.RunOnce(context.Background()))
	})
}

func (s *SweepSuite) TestStartedConferences() {
	s.Run("Normal case: waitlist is canceled, confirmed seats are kept", func() {
		t := s.T()

		conf := builder.NewConferenceBuilder().With(func(b *builder.ConferenceBuilder) { b.TotalCapacity = 1 })
		dbtest.CreateTestConference(t, s.DB, conf.ID, conf.Start, conf.TotalCapacity)
		for _, id := range []string{"alice", "bob", "carol"} {
			dbtest.CreateTestUser(t, s.DB, id)
		}

		s.book(t, conf.ID, "alice")
		s.book(t, conf.ID, "bob")
		s.book(t, conf.ID, "carol")

		dbtest.MoveConferenceStart(t, s.DB, conf.ID, time.Now().Add(-time.Minute))
		require.NoError(t, s.Sweeper.RunOnce(context.Background()))

		require.Empty(t, s.waitlist(t, conf.ID))
		require.Equal(t, 1, dbtest.CountBookings(t, s.DB, conf.ID, "confirmed"))
		require.Equal(t, 2, dbtest.CountBookings(t, s.DB, conf.ID, "canceled"))
		require.Equal(t, 0, dbtest.AvailableCapacity(t, s.DB, conf.ID))
	})
}

func TestRedisLocker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start Redis container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	newClient := func() *redis.Client {
		c := redis.NewClient(&redis.Options{Addr: endpoint})
		t.Cleanup(func() { _ = c.Close() })
		return c
	}
	first := sweeper.NewRedisLocker(newClient())
	second := sweeper.NewRedisLocker(newClient())
	const key = "conference-booking:test-lock"

	t.Run("Normal case: only one replica holds the lock", func(t *testing.T) {
		ok, err := first.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = second.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("Normal case: unlock by a non-owner keeps the lock", func(t *testing.T) {
		require.NoError(t, second.Unlock(ctx, key))

		ok, err := second.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("Normal case: owner unlock releases the lock", func(t *testing.T) {
		require.NoError(t, first.Unlock(ctx, key))

		ok, err := second.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, second.Unlock(ctx, key))
	})

	t.Run("Normal case: the lock expires with its TTL", func(t *testing.T) {
		ok, err := first.TryLock(ctx, key, 200*time.Millisecond)
		require.NoError(t, err)
		require.True(t, ok)

		require.Eventually(t, func() bool {
			ok, err := second.TryLock(ctx, key, time.Minute)
			return err == nil && ok
		}, 5*time.Second, 100*time.Millisecond)
	})
}
