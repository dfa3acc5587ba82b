package booking

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DharunKumar-K/eventpulse/model"
)

// MemStore is an in-memory Store with the same conditional-update semantics
// as the Mongo implementation. It backs the engine and handler tests.
type MemStore struct {
	mu       sync.Mutex
	events   map[primitive.ObjectID]model.Event
	bookings map[primitive.ObjectID]model.Booking
}

func NewMemStore() *MemStore {
	return &MemStore{
		events:   make(map[primitive.ObjectID]model.Event),
		bookings: make(map[primitive.ObjectID]model.Booking),
	}
}

func (s *MemStore) PutEvent(event model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.Id] = event
}

func (s *MemStore) DeleteEvent(eventId primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, eventId)
}

// Event reports the current state of an event, for assertions.
func (s *MemStore) Event(eventId primitive.ObjectID) (model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventId]
	return event, ok
}

// Events returns a snapshot of all stored events.
func (s *MemStore) Events() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]model.Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event)
	}
	return events
}

// ConfirmedSeats sums the seats of all confirmed bookings for an event.
func (s *MemStore) ConfirmedSeats(eventId primitive.ObjectID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, b := range s.bookings {
		if b.Event == eventId && b.Status == model.BookingStatusConfirmed {
			total += b.Seats
		}
	}
	return total
}

func (s *MemStore) GetEvent(ctx context.Context, eventId primitive.ObjectID) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventId]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	return event, nil
}

func (s *MemStore) ReserveSeats(ctx context.Context, eventId primitive.ObjectID, seats int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventId]
	if !ok || event.Status == model.EventStatusCancelled || event.AvailableSeats < seats {
		return ErrSeatsUnavailable
	}
	event.AvailableSeats -= seats
	s.events[eventId] = event
	return nil
}

func (s *MemStore) ReleaseSeats(ctx context.Context, eventId primitive.ObjectID, seats int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventId]
	if !ok {
		return ErrEventNotFound
	}
	event.AvailableSeats += seats
	if event.AvailableSeats > event.TotalSeats {
		event.AvailableSeats = event.TotalSeats
	}
	s.events[eventId] = event
	return nil
}

func (s *MemStore) InsertBooking(ctx context.Context, booking model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.Id] = booking
	return nil
}

func (s *MemStore) GetBooking(ctx context.Context, bookingId primitive.ObjectID) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[bookingId]
	if !ok {
		return model.Booking{}, ErrBookingNotFound
	}
	return booking, nil
}

func (s *MemStore) MarkCancelled(ctx context.Context, bookingId primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[bookingId]
	if !ok {
		return false, ErrBookingNotFound
	}
	if booking.Status != model.BookingStatusConfirmed {
		return false, nil
	}
	booking.Status = model.BookingStatusCancelled
	s.bookings[bookingId] = booking
	return true, nil
}

func (s *MemStore) ListUserBookings(ctx context.Context, userId primitive.ObjectID) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings := []model.Booking{}
	for _, b := range s.bookings {
		if b.User == userId && b.Status == model.BookingStatusConfirmed {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].BookingDate.After(bookings[j].BookingDate)
	})
	return bookings, nil
}
