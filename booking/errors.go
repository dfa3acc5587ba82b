package booking

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	ErrEventCancelled   = errors.New("cannot book cancelled event")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrNotOwner         = errors.New("not authorized to cancel this booking")
	ErrInvalidSeats     = errors.New("must book at least 1 seat")
)

// ErrSeatsUnavailable is returned by Store.ReserveSeats when the conditional
// decrement matched no document. The engine re-reads the event to tell a
// missing event, a cancelled event and a genuine capacity shortfall apart.
var ErrSeatsUnavailable = errors.New("seats unavailable")

// ErrTransient marks store failures that are safe to retry: timeouts,
// connection drops, contention. Stores wrap the cause with this sentinel.
var ErrTransient = errors.New("transient store failure")

// CapacityError reports the exact remaining count so a caller can retry with
// a smaller request.
type CapacityError struct {
	Available int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Only %d seats available", e.Available)
}
