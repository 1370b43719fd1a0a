package memory

import (
	"context"
	"sync"

	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/usecase/shared"
)

var errReadOnly = errs.New("write in read-only transaction")

// UoW is a single-process UnitOfWork. Transactions are serialized by one mutex
// and run against a private copy of the state that replaces the shared one only
// when fn succeeds and the copy passes its constraint checks.
type UoW struct {
	mu sync.Mutex
	st *state
}

func NewUoW() *UoW {
	return &UoW{st: newState()}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	work := u.st.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	if err := work.check(); err != nil {
		return err
	}
	u.st = work
	return nil
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	return fn(ctx, &memTx{st: u.st, readOnly: true})
}

type memTx struct {
	st       *state
	readOnly bool
}

func (t *memTx) Conferences() shared.ConferenceRepository { return &conferenceRepository{tx: t} }
func (t *memTx) Users() shared.UserRepository             { return &userRepository{tx: t} }
func (t *memTx) Bookings() shared.BookingRepository       { return &bookingRepository{tx: t} }
func (t *memTx) Waitlist() shared.WaitlistRepository      { return &waitlistRepository{tx: t} }

func (t *memTx) writable() error {
	if t.readOnly {
		return errReadOnly
	}
	return nil
}
