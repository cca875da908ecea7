package service

import (
	"context"
	"sync"

	"github.com/eventiq/eventiq/internal/identity"
	"github.com/eventiq/eventiq/internal/model"
	"github.com/eventiq/eventiq/internal/repository"
)

// testEventID is the fixture event id shared across service tests. Event
// ids must parse as UUIDs or the services short-circuit to not-found.
const testEventID = "5fb9f0a2-3c58-4f6a-9d71-2b8c4e0d1a36"

// fakeBookingStore is an in-memory BookingStore with the same atomicity
// contract as the PostgreSQL implementation: reservation is serialized
// under a lock, short codes are unique, and payment writes only apply to
// pending bookings.
type fakeBookingStore struct {
	mu       sync.Mutex
	seats    map[string]int    // event id → remaining seats
	titles   map[string]string // event id → title
	bookings map[string]*repository.BookingWithEvent
	byCode   map[string]string // short code → ticket id
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		seats:    make(map[string]int),
		titles:   make(map[string]string),
		bookings: make(map[string]*repository.BookingWithEvent),
		byCode:   make(map[string]string),
	}
}

func (f *fakeBookingStore) addEvent(id, title string, seats int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seats[id] = seats
	f.titles[id] = title
}

func (f *fakeBookingStore) remaining(eventID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seats[eventID]
}

func (f *fakeBookingStore) Reserve(ctx context.Context, req model.CreateBookingRequest, maxCodeAttempts int) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	remaining, ok := f.seats[req.EventID]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	if remaining < req.Seats {
		return nil, &repository.InsufficientCapacityError{Remaining: remaining}
	}
	f.seats[req.EventID] = remaining - req.Seats

	var code string
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate, err := identity.NewShortCode()
		if err != nil {
			return nil, err
		}
		if _, inUse := f.byCode[candidate]; !inUse {
			code = candidate
			break
		}
	}

	booking := &repository.BookingWithEvent{
		Booking: model.Booking{
			TicketID:      identity.NewTicketID(),
			ShortCode:     code,
			EventID:       req.EventID,
			UserID:        req.UserID,
			Name:          req.Name,
			Email:         req.Email,
			Seats:         req.Seats,
			PaymentStatus: model.PaymentPending,
		},
		EventTitle: f.titles[req.EventID],
	}
	f.bookings[booking.TicketID] = booking
	f.byCode[code] = booking.TicketID

	b := booking.Booking
	return &b, nil
}

func (f *fakeBookingStore) GetByTicketID(ctx context.Context, ticketID string) (*repository.BookingWithEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[ticketID]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) GetByShortCode(ctx context.Context, code string) (*repository.BookingWithEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticketID, ok := f.byCode[code]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	copied := *f.bookings[ticketID]
	return &copied, nil
}

func (f *fakeBookingStore) ListByUser(ctx context.Context, userID string) ([]repository.BookingWithEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.BookingWithEvent
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) SetPaymentOutcome(ctx context.Context, ticketID string, status model.PaymentStatus, method string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[ticketID]
	if !ok || b.PaymentStatus != model.PaymentPending {
		return false, nil
	}
	b.PaymentStatus = status
	b.PaymentMethod = method
	return true, nil
}
