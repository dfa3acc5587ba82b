package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DharunKumar-K/eventpulse/config"
	"github.com/DharunKumar-K/eventpulse/model"
)

// Store is the persistence contract the engine runs on. ReserveSeats must be
// a single atomic conditional update ("decrement availableSeats by n only if
// the event is not cancelled and availableSeats >= n"); the engine never does
// a read-then-write on the availability counter itself. ReleaseSeats must be
// the matching atomic increment, clamped so availableSeats never exceeds
// totalSeats. MarkCancelled must flip confirmed -> cancelled conditionally
// and report whether this call won the flip.
type Store interface {
	GetEvent(ctx context.Context, eventId primitive.ObjectID) (model.Event, error)
	ReserveSeats(ctx context.Context, eventId primitive.ObjectID, seats int64) error
	ReleaseSeats(ctx context.Context, eventId primitive.ObjectID, seats int64) error
	InsertBooking(ctx context.Context, booking model.Booking) error
	GetBooking(ctx context.Context, bookingId primitive.ObjectID) (model.Booking, error)
	MarkCancelled(ctx context.Context, bookingId primitive.ObjectID) (bool, error)
	ListUserBookings(ctx context.Context, userId primitive.ObjectID) ([]model.Booking, error)
}

// Engine keeps availableSeats consistent with the set of confirmed bookings:
// for every event, availableSeats + sum(confirmed seats) == totalSeats after
// every operation, including under concurrent requests against the same
// event. Whichever request commits its conditional decrement first wins the
// last seats; losers observe the updated count and fail.
type Engine struct {
	store   Store
	timeout time.Duration
	retries uint64
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store:   store,
		timeout: config.STORE_TIMEOUT,
		retries: config.RESERVE_RETRIES,
	}
}

// CreateBooking reserves seats on the event and persists a confirmed booking
// with the price frozen at booking time. If the booking insert fails after
// the seats were reserved, the reservation is rolled back so the counter
// stays consistent.
func (e *Engine) CreateBooking(ctx context.Context, userId, eventId primitive.ObjectID, seats int64) (model.Booking, error) {
	if seats < 1 {
		return model.Booking{}, ErrInvalidSeats
	}

	event, err := e.getEvent(ctx, eventId)
	if err != nil {
		return model.Booking{}, err
	}
	if event.Status == model.EventStatusCancelled {
		return model.Booking{}, ErrEventCancelled
	}

	if err := e.reserve(ctx, eventId, seats); err != nil {
		if errors.Is(err, ErrSeatsUnavailable) {
			return model.Booking{}, e.reservationFailure(ctx, eventId)
		}
		return model.Booking{}, err
	}

	booking := model.Booking{
		Id:          primitive.NewObjectID(),
		User:        userId,
		Event:       eventId,
		Seats:       seats,
		TotalPrice:  event.Price * float64(seats),
		Status:      model.BookingStatusConfirmed,
		BookingDate: time.Now().UTC(),
	}

	opCtx, cancel := e.opContext(ctx)
	defer cancel()
	if err := e.store.InsertBooking(opCtx, booking); err != nil {
		if relErr := e.release(ctx, eventId, seats); relErr != nil && !errors.Is(relErr, ErrEventNotFound) {
			return model.Booking{}, fmt.Errorf("insert booking: %v (seat rollback also failed: %w)", err, relErr)
		}
		return model.Booking{}, fmt.Errorf("insert booking: %w", err)
	}

	return booking, nil
}

// CancelBooking flips the booking to cancelled and restores its seats to the
// parent event. Only the owning user may cancel. If the parent event was
// deleted after the booking was made, the cancellation still succeeds and the
// restore step is skipped.
func (e *Engine) CancelBooking(ctx context.Context, requesterId, bookingId primitive.ObjectID) error {
	booking, err := e.getBooking(ctx, bookingId)
	if err != nil {
		return err
	}

	if booking.User != requesterId {
		return ErrNotOwner
	}
	if booking.Status == model.BookingStatusCancelled {
		return ErrAlreadyCancelled
	}

	opCtx, cancel := e.opContext(ctx)
	defer cancel()
	flipped, err := e.store.MarkCancelled(opCtx, bookingId)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if !flipped {
		// a concurrent cancel won the confirmed -> cancelled flip
		return ErrAlreadyCancelled
	}

	if err := e.release(ctx, booking.Event, booking.Seats); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil
		}
		return fmt.Errorf("restore seats: %w", err)
	}

	return nil
}

// ListForUser returns the requester's confirmed bookings, newest first.
func (e *Engine) ListForUser(ctx context.Context, userId primitive.ObjectID) ([]model.Booking, error) {
	opCtx, cancel := e.opContext(ctx)
	defer cancel()
	return e.store.ListUserBookings(opCtx, userId)
}

// reservationFailure re-reads the event to tell apart a vanished event, a
// concurrently cancelled event and a genuine capacity shortfall.
func (e *Engine) reservationFailure(ctx context.Context, eventId primitive.ObjectID) error {
	event, err := e.getEvent(ctx, eventId)
	if err != nil {
		return err
	}
	if event.Status == model.EventStatusCancelled {
		return ErrEventCancelled
	}
	return &CapacityError{Available: event.AvailableSeats}
}

func (e *Engine) reserve(ctx context.Context, eventId primitive.ObjectID, seats int64) error {
	return e.retryTransient(ctx, func(opCtx context.Context) error {
		return e.store.ReserveSeats(opCtx, eventId, seats)
	})
}

func (e *Engine) release(ctx context.Context, eventId primitive.ObjectID, seats int64) error {
	return e.retryTransient(ctx, func(opCtx context.Context) error {
		return e.store.ReleaseSeats(opCtx, eventId, seats)
	})
}

// retryTransient runs op under the per-operation timeout, retrying a bounded
// number of times with exponential backoff as long as the failure is marked
// transient. Any other failure surfaces immediately.
func (e *Engine) retryTransient(ctx context.Context, op func(context.Context) error) error {
	attempt := func() error {
		opCtx, cancel := e.opContext(ctx)
		defer cancel()
		err := op(opCtx)
		if err != nil && !errors.Is(err, ErrTransient) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	return backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, e.retries), ctx))
}

func (e *Engine) getEvent(ctx context.Context, eventId primitive.ObjectID) (model.Event, error) {
	opCtx, cancel := e.opContext(ctx)
	defer cancel()
	return e.store.GetEvent(opCtx, eventId)
}

func (e *Engine) getBooking(ctx context.Context, bookingId primitive.ObjectID) (model.Booking, error) {
	opCtx, cancel := e.opContext(ctx)
	defer cancel()
	return e.store.GetBooking(opCtx, bookingId)
}

func (e *Engine) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.timeout)
}
