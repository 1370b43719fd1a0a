//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/domain/conference"
	"conference-booking/internal/infra/memory"
	"conference-booking/internal/pkg/clock"
	"conference-booking/internal/pkg/config"
	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/usecase/commands"
	"conference-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type engineSuite struct {
	suite.Suite
	ctx       context.Context
	uow       *memory.UoW
	clock     *clock.MockClock
	engine    commands.BookingCommands
	sweeps    commands.ReconciliationCommands
	directory commands.DirectoryCommands
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(engineSuite))
}

func (s *engineSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = memory.NewUoW()
	s.clock = clock.NewMockClock(epoch)
	s.wire(s.uow)
}

func (s *engineSuite) wire(uow shared.UnitOfWork) {
	cfg := config.EngineConfig{PromotionGracePeriod: time.Hour, TxMaxRetries: 3}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.engine = commands.NewBookingUseCase(uow, s.clock, cfg, logger)
	s.sweeps = commands.NewReconciliationUseCase(uow, s.clock, cfg, logger)
	s.directory = commands.NewDirectoryUseCase(uow, s.clock)
}

// conference creates a two hour conference starting `in` after the current mock time.
func (s *engineSuite) conference(id string, capacity int, in time.Duration) {
	start := s.clock.Now().Add(in)
	_, err := s.directory.CreateConference(s.ctx, commands.CreateConferenceRequest{
		ID:            id,
		Name:          "Conference " + id,
		StartsAt:      start,
		EndsAt:        start.Add(2 * time.Hour),
		TotalCapacity: capacity,
	})
	s.Require().NoError(err)
}

func (s *engineSuite) users(ids ...string) {
	for _, id := range ids {
		_, err := s.directory.CreateUser(s.ctx, commands.CreateUserRequest{ID: id, Interests: []string{"go"}})
		s.Require().NoError(err)
	}
}

// rejected asserts err carries the want rejection the way the API and metrics read it.
func (s *engineSuite) rejected(err, want error, msgAndArgs ...any) {
	s.T().Helper()
	s.Require().Error(err, msgAndArgs...)
	s.Truef(errs.Is(err, want), "want %v, got %v", want, err)
	s.Equal(commands.RejectionReason(want), commands.RejectionReason(err), msgAndArgs...)
}

func (s *engineSuite) book(conferenceID, userID string) *commands.BookingResult {
	res, err := s.engine.Book(s.ctx, conferenceID, userID)
	s.Require().NoError(err)
	return res
}

func (s *engineSuite) read(fn func(tx shared.Tx) error) {
	s.Require().NoError(s.uow.WithinReadOnly(s.ctx, func(_ context.Context, tx shared.Tx) error {
		return fn(tx)
	}))
}

func (s *engineSuite) booking(id uuid.UUID) *booking.Booking {
	var b *booking.Booking
	s.read(func(tx shared.Tx) (err error) {
		b, err = tx.Bookings().FindByID(s.ctx, id)
		return err
	})
	return b
}

func (s *engineSuite) conf(id string) *conference.Conference {
	var c *conference.Conference
	s.read(func(tx shared.Tx) (err error) {
		c, err = tx.Conferences().FindByID(s.ctx, id)
		return err
	})
	return c
}

// queue returns the conference's waitlist in position order.
func (s *engineSuite) queue(conferenceID string) []uuid.UUID {
	var out []uuid.UUID
	s.read(func(tx shared.Tx) error {
		q, err := tx.Waitlist().Load(s.ctx, conferenceID)
		if err != nil {
			return err
		}
		s.Require().NoError(q.Validate())
		for _, e := range q.Entries() {
			out = append(out, e.BookingID)
		}
		return nil
	})
	return out
}

func (s *engineSuite) TestSingleSeatScenario() {
	s.conference("gophercon", 1, 24*time.Hour)
	s.users("alice", "bob")

	a := s.book("gophercon", "alice")
	s.Equal(booking.StatusConfirmed, a.Status)
	s.Nil(a.Position)
	s.Equal(0, s.conf("gophercon").AvailableCapacity())

	b := s.book("gophercon", "bob")
	s.Equal(booking.StatusWaitlisted, b.Status)
	s.Require().NotNil(b.Position)
	s.Equal(1, *b.Position)

	canceled, err := s.engine.Cancel(s.ctx, a.BookingID)
	s.Require().NoError(err)
	s.Equal(booking.StatusCanceled, canceled.Status)
	s.Equal(1, s.conf("gophercon").AvailableCapacity())

	promoted := s.booking(b.BookingID)
	s.Require().NotNil(promoted.ConfirmBy())
	s.Equal(epoch.Add(time.Hour), *promoted.ConfirmBy())

	s.clock.Add(30 * time.Minute)
	confirmed, err := s.engine.Confirm(s.ctx, b.BookingID)
	s.Require().NoError(err)
	s.Equal(booking.StatusConfirmed, confirmed.Status)
	s.Nil(confirmed.ConfirmBy)
	s.Equal(0, s.conf("gophercon").AvailableCapacity())
	s.Empty(s.queue("gophercon"))
}

func (s *engineSuite) TestFullConferenceAppendsToWaitlist() {
	s.conference("gophercon", 1, 24*time.Hour)
	s.users("alice", "bob", "carol", "dave")
	s.book("gophercon", "alice")

	for i, u := range []string{"bob", "carol", "dave"} {
		res := s.book("gophercon", u)
		s.Equal(booking.StatusWaitlisted, res.Status)
		s.Require().NotNil(res.Position)
		s.Equal(i+1, *res.Position)
	}
	s.Equal(0, s.conf("gophercon").AvailableCapacity())
}

func (s *engineSuite) TestCancelWaitlistedKeepsOrderDense() {
	s.conference("gophercon", 1, 24*time.Hour)
	s.users("alice", "bob", "carol", "dave")
	s.book("gophercon", "alice")
	bob := s.book("gophercon", "bob")
	carol := s.book("gophercon", "carol")
	dave := s.book("gophercon", "dave")

	_, err := s.engine.Cancel(s.ctx, carol.BookingID)
	s.Require().NoError(err)

	s.Equal([]uuid.UUID{bob.BookingID, dave.BookingID}, s.queue("gophercon"))
	s.Nil(s.booking(bob.BookingID).ConfirmBy(), "removing a non-promoted entry promotes nobody")
}

func (s *engineSuite) TestCancelPromotedWaitlistedHandsOffDeadline() {
	s.conference("gophercon", 1, 24*time.Hour)
	s.users("alice", "bob", "carol")
	alice := s.book("gophercon", "alice")
	bob := s.book("gophercon", "bob")
	carol := s.book("gophercon", "carol")

	_, err := s.engine.Cancel(s.ctx, alice.BookingID)
	s.Require().NoError(err)
	s.Require().True(s.booking(bob.BookingID).IsPromoted())

	s.clock.Add(10 * time.Minute)
	_, err = s.engine.Cancel(s.ctx, bob.BookingID)
	s.Require().NoError(err)

	c := s.booking(carol.BookingID)
	s.Require().NotNil(c.ConfirmBy())
	s.Equal(s.clock.Now().Add(time.Hour), *c.ConfirmBy())
	s.Equal([]uuid.UUID{carol.BookingID}, s.queue("gophercon"))
}

func (s *engineSuite) TestBookRejections() {
	s.conference("gophercon", 1, 24*time.Hour)
	s.conference("overlap", 1, 25*time.Hour)
	s.conference("adjacent", 1, 26*time.Hour)
	s.conference("soon", 1, time.Hour)
	s.users("alice", "bob")

	_, err := s.engine.Book(s.ctx, "missing", "alice")
	s.rejected(err, commands.ErrConferenceNotFound)

	_, err = s.engine.Book(s.ctx, "gophercon", "nobody")
	s.rejected(err, commands.ErrUserNotFound)

	s.book("gophercon", "alice")
	_, err = s.engine.Book(s.ctx, "gophercon", "alice")
	s.rejected(err, commands.ErrAlreadyBooked)

	_, err = s.engine.Book(s.ctx, "overlap", "alice")
	s.rejected(err, commands.ErrTimeConflict)
	s.True(commands.IsBusinessRule(err))
	s.Equal(1, s.conf("overlap").AvailableCapacity(), "a rejected booking leaves the ledger untouched")

	res := s.book("adjacent", "alice")
	s.Equal(booking.StatusConfirmed, res.Status, "back-to-back windows do not overlap")

	s.clock.Add(time.Hour)
	_, err = s.engine.Book(s.ctx, "soon", "bob")
	s.rejected(err, commands.ErrConferenceStarted)

	_, err = s.engine.Book(s.ctx, "soon", "nobody")
	s.rejected(err, commands.ErrConferenceStarted, "conference checks come before the user check")
}

func (s *engineSuite) TestWaitlistedBookingCountsForConflicts() {
	s.conference("gophercon", 1, 24*time.Hour)
	s.conference("overlap", 5, 25*time.Hour)
	s.users("alice", "bob")
	s.book("gophercon", "alice")
	s.book("gophercon", "bob")

	_, err := s.engine.Book(s.ctx, "overlap", "bob")
	s.rejected(err, commands.ErrTimeConflict)
}

func (s *engineSuite) TestConfirmRejections() {
	s.conference("gophercon", 1, 24*time.Hour)
	s.users("alice", "bob", "carol")
	alice := s.book("gophercon", "alice")
	bob := s.book("gophercon", "bob")
	carol := s.book("gophercon", "carol")

	_, err := s.engine.Confirm(s.ctx, uuid.New())
	s.rejected(err, commands.ErrBookingNotFound)

	_, err = s.engine.Confirm(s.ctx, alice.BookingID)
	s.rejected(err, commands.ErrNotWaitlisted)

	_, err = s.engine.Confirm(s.ctx, bob.BookingID)
	s.rejected(err, commands.ErrNoCapacity)

	_, err = s.engine.Cancel(s.ctx, carol.BookingID)
	s.Require().NoError(err)
	_, err = s.engine.Confirm(s.ctx, carol.BookingID)
	s.rejected(err, commands.ErrBookingCanceled)

	_, err = s.engine.Cancel(s.ctx, alice.BookingID)
	s.Require().NoError(err)
	s.clock.Add(time.Hour + time.Second)
	_, err = s.engine.Confirm(s.ctx, bob.BookingID)
	s.rejected(err, commands.ErrDeadlinePassed)
	s.Equal(1, s.conf("gophercon").AvailableCapacity())

	s.clock.Add(24 * time.Hour)
	_, err = s.engine.Confirm(s.ctx, bob.BookingID)
	s.rejected(err, commands.ErrConferenceStarted)
}

func (s *engineSuite) TestCancelRejections() {
	s.conference("gophercon", 2, 24*time.Hour)
	s.users("alice", "bob")
	alice := s.book("gophercon", "alice")
	bob := s.book("gophercon", "bob")

	_, err := s.engine.Cancel(s.ctx, uuid.New())
	s.rejected(err, commands.ErrBookingNotFound)

	_, err = s.engine.Cancel(s.ctx, alice.BookingID)
	s.Require().NoError(err)
	_, err = s.engine.Cancel(s.ctx, alice.BookingID)
	s.rejected(err, commands.ErrBookingCanceled)

	s.clock.Add(24 * time.Hour)
	_, err = s.engine.Cancel(s.ctx, bob.BookingID)
	s.rejected(err, commands.ErrConferenceStarted)
	s.Equal(1, s.conf("gophercon").AvailableCapacity())
}

func (s *engineSuite) TestConfirmPromotesEvenWithoutSeat() {
	s.conference("gophercon", 1, 24*time.Hour)
	s.users("alice", "bob", "carol")
	alice := s.book("gophercon", "alice")
	bob := s.book("gophercon", "bob")
	carol := s.book("gophercon", "carol")

	_, err := s.engine.Cancel(s.ctx, alice.BookingID)
	s.Require().NoError(err)

	// Carol is not the promoted head but may still take the free seat.
	s.clock.Add(5 * time.Minute)
	_, err = s.engine.Confirm(s.ctx, carol.BookingID)
	s.Require().NoError(err)
	s.Equal(0, s.conf("gophercon").AvailableCapacity())

	b := s.booking(bob.BookingID)
	s.Require().NotNil(b.ConfirmBy())
	s.Equal(s.clock.Now().Add(time.Hour), *b.ConfirmBy(), "head is promoted again after the last seat went")

	_, err = s.engine.Confirm(s.ctx, bob.BookingID)
	s.rejected(err, commands.ErrNoCapacity)
}

func (s *engineSuite) TestConfirmedSeatDisplacesOtherWaitlists() {
	s.conference("full", 1, 24*time.Hour)
	s.conference("open", 1, 48*time.Hour)
	s.users("owner", "alice", "bob")
	owner := s.book("full", "owner")
	alice := s.book("full", "alice")
	bob := s.book("full", "bob")

	_, err := s.engine.Cancel(s.ctx, owner.BookingID)
	s.Require().NoError(err)
	s.Require().True(s.booking(alice.BookingID).IsPromoted())

	res := s.book("open", "alice")
	s.Equal(booking.StatusConfirmed, res.Status)

	s.Equal(booking.StatusCanceled, s.booking(alice.BookingID).Status())
	s.Equal([]uuid.UUID{bob.BookingID}, s.queue("full"))
	s.True(s.booking(bob.BookingID).IsPromoted(), "displaced head hands its promotion on")
}

func (s *engineSuite) TestExpiredPromotionSoleEntry() {
	s.conference("gophercon", 1, 24*time.Hour)
	s.users("alice", "bob")
	alice := s.book("gophercon", "alice")
	bob := s.book("gophercon", "bob")
	_, err := s.engine.Cancel(s.ctx, alice.BookingID)
	s.Require().NoError(err)

	n, err := s.sweeps.HandleExpiredPromotions(s.ctx)
	s.Require().NoError(err)
	s.Zero(n, "deadline has not passed yet")

	s.clock.Add(61 * time.Minute)
	n, err = s.sweeps.HandleExpiredPromotions(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	b := s.booking(bob.BookingID)
	s.Equal(booking.StatusWaitlisted, b.Status())
	s.Require().NotNil(b.ConfirmBy())
	s.Equal(s.clock.Now().Add(time.Hour), *b.ConfirmBy())
	s.Equal([]uuid.UUID{bob.BookingID}, s.queue("gophercon"))
}

func (s *engineSuite) TestExpiredPromotionMovesToTail() {
	s.conference("gophercon", 1, 24*time.Hour)
	s.users("alice", "bob", "carol")
	alice := s.book("gophercon", "alice")
	bob := s.book("gophercon", "bob")
	carol := s.book("gophercon", "carol")
	_, err := s.engine.Cancel(s.ctx, alice.BookingID)
	s.Require().NoError(err)

	s.clock.Add(2 * time.Hour)
	n, err := s.sweeps.HandleExpiredPromotions(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	s.Equal([]uuid.UUID{carol.BookingID, bob.BookingID}, s.queue("gophercon"))
	s.False(s.booking(bob.BookingID).IsPromoted())
	s.True(s.booking(carol.BookingID).IsPromoted())

	// The requeued booking stays behind the new head until it leaves.
	_, err = s.engine.Cancel(s.ctx, carol.BookingID)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{bob.BookingID}, s.queue("gophercon"))
}

func (s *engineSuite) TestAutoCancelStartedConferences() {
	s.conference("gophercon", 1, time.Hour)
	s.conference("later", 1, 48*time.Hour)
	s.users("alice", "bob", "carol", "dave")
	alice := s.book("gophercon", "alice")
	bob := s.book("gophercon", "bob")
	s.book("later", "carol")
	dave := s.book("later", "dave")

	counts, err := s.sweeps.AutoCancelStartedConferences(s.ctx)
	s.Require().NoError(err)
	s.Empty(counts)

	s.clock.Add(time.Hour)
	counts, err = s.sweeps.AutoCancelStartedConferences(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[string]int{"gophercon": 1}, counts)

	s.Equal(booking.StatusCanceled, s.booking(bob.BookingID).Status())
	s.Equal(booking.StatusConfirmed, s.booking(alice.BookingID).Status())
	s.Equal(0, s.conf("gophercon").AvailableCapacity())
	s.Empty(s.queue("gophercon"))
	s.Equal([]uuid.UUID{dave.BookingID}, s.queue("later"))
}

// flakyUoW fails the write transactions whose 1-based index is listed.
type flakyUoW struct {
	shared.UnitOfWork
	mu     sync.Mutex
	calls  int
	failOn map[int]bool
}

func (f *flakyUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	f.mu.Lock()
	f.calls++
	fail := f.failOn[f.calls]
	f.mu.Unlock()
	if fail {
		return assert.AnError
	}
	return f.UnitOfWork.Within(ctx, fn)
}

func (s *engineSuite) TestSweepIsolatesConferenceFailures() {
	s.conference("a-conf", 1, time.Hour)
	s.conference("b-conf", 1, time.Hour)
	s.users("alice", "bob", "carol", "dave")
	s.book("a-conf", "alice")
	s.book("a-conf", "bob")
	s.book("b-conf", "carol")
	dave := s.book("b-conf", "dave")

	s.clock.Add(time.Hour)
	s.wire(&flakyUoW{UnitOfWork: s.uow, failOn: map[int]bool{1: true}})

	counts, err := s.sweeps.AutoCancelStartedConferences(s.ctx)
	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrDatabaseOperationFailed))
	s.False(commands.IsBusinessRule(err))
	s.Equal(map[string]int{"b-conf": 1}, counts)
	s.Equal(booking.StatusCanceled, s.booking(dave.BookingID).Status())
	s.Len(s.queue("a-conf"), 1, "failed conference is left as it was")
}

func (s *engineSuite) TestConcurrentBookingsNeverOverbook() {
	const seats, callers = 3, 20
	s.conference("gophercon", seats, 24*time.Hour)
	ids := make([]string, callers)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	s.users(ids...)

	var wg sync.WaitGroup
	results := make([]*commands.BookingResult, callers)
	bookErrs := make([]error, callers)
	for i, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], bookErrs[i] = s.engine.Book(s.ctx, "gophercon", id)
		}()
	}
	wg.Wait()

	confirmed, positions := 0, map[int]bool{}
	for i := range results {
		s.Require().NoError(bookErrs[i])
		if results[i].Status == booking.StatusConfirmed {
			confirmed++
			continue
		}
		positions[*results[i].Position] = true
	}
	s.Equal(seats, confirmed)
	s.Len(positions, callers-seats)
	for p := 1; p <= callers-seats; p++ {
		s.True(positions[p], "position %d assigned", p)
	}
	s.Equal(0, s.conf("gophercon").AvailableCapacity())
}

func TestConflictValidator(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUoW()
	clk := clock.NewMockClock(epoch)
	dir := commands.NewDirectoryUseCase(uow, clk)

	_, err := dir.CreateConference(ctx, commands.CreateConferenceRequest{
		ID: "a", Name: "A", StartsAt: epoch.Add(time.Hour), EndsAt: epoch.Add(3 * time.Hour), TotalCapacity: 1,
	})
	require.NoError(t, err)
	_, err = dir.CreateUser(ctx, commands.CreateUserRequest{ID: "alice"})
	require.NoError(t, err)

	engine := commands.NewBookingUseCase(uow, clk, config.EngineConfig{PromotionGracePeriod: time.Hour}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err = engine.Book(ctx, "a", "alice")
	require.NoError(t, err)

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", epoch.Add(90 * time.Minute), epoch.Add(2 * time.Hour), true},
		{"straddles start", epoch, epoch.Add(2 * time.Hour), true},
		{"ends at start", epoch, epoch.Add(time.Hour), false},
		{"starts at end", epoch.Add(3 * time.Hour), epoch.Add(4 * time.Hour), false},
	}
	v := commands.ConflictValidator{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
				got, err := v.Overlaps(ctx, tx, "alice", conference.ReconstructWindow(tc.start, tc.end), "other")
				assert.Equal(t, tc.want, got)
				return err
			})
			require.NoError(t, err)
		})
	}

	err = uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		booked, err := v.AlreadyBooked(ctx, tx, "alice", "a")
		assert.True(t, booked)
		return err
	})
	require.NoError(t, err)
}
