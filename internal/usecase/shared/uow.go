package shared

import (
	"context"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic.
	// Any error returned by fn rolls back every write made through tx.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to a single transaction.
type Tx interface {
	Conferences() ConferenceRepository
	Users() UserRepository
	Bookings() BookingRepository
	Waitlist() WaitlistRepository
}
