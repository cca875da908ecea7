package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eventiq/eventiq/internal/config"
	"github.com/eventiq/eventiq/internal/model"
	"github.com/eventiq/eventiq/internal/repository"
	"github.com/google/uuid"
)

// BookingStore is the persistence surface the booking, payment, and
// ticket services share. The concurrency guarantees (atomic seat
// reservation, monotonic payment writes) live behind this interface.
type BookingStore interface {
	Reserve(ctx context.Context, req model.CreateBookingRequest, maxCodeAttempts int) (*model.Booking, error)
	GetByTicketID(ctx context.Context, ticketID string) (*repository.BookingWithEvent, error)
	GetByShortCode(ctx context.Context, code string) (*repository.BookingWithEvent, error)
	ListByUser(ctx context.Context, userID string) ([]repository.BookingWithEvent, error)
	SetPaymentOutcome(ctx context.Context, ticketID string, status model.PaymentStatus, method string) (bool, error)
}

// BookingService validates booking requests and delegates the
// concurrency-safe reservation to the repository layer.
type BookingService struct {
	bookings BookingStore
	policy   config.BookingConfig
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings BookingStore, policy config.BookingConfig) *BookingService {
	return &BookingService{bookings: bookings, policy: policy}
}

// CreateBooking validates the request, reserves seats atomically, and
// returns the pending-payment booking with its fresh ticket identifier
// and short code. No error path mutates event capacity.
func (s *BookingService) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email", ErrMissingField)
	}
	if !isValidEmail(req.Email) {
		return nil, fmt.Errorf("email is not a valid address")
	}
	if req.EventID == "" {
		return nil, fmt.Errorf("%w: event", ErrMissingField)
	}
	// Reject malformed event ids before they reach the uuid column; the
	// event plainly does not exist.
	if _, err := uuid.Parse(req.EventID); err != nil {
		return nil, repository.ErrEventNotFound
	}
	if req.Seats < s.policy.MinSeats || req.Seats > s.policy.MaxSeats {
		return nil, fmt.Errorf("%w: choose between %d and %d seats",
			ErrInvalidSeatCount, s.policy.MinSeats, s.policy.MaxSeats)
	}

	booking, err := s.bookings.Reserve(ctx, req, s.policy.ShortCodeAttempts)
	if err != nil {
		// Surface domain errors directly so handlers can set correct
		// HTTP status.
		var capErr *repository.InsufficientCapacityError
		if errors.Is(err, repository.ErrEventNotFound) || errors.As(err, &capErr) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

// GetBooking returns a booking (with its event title) by ticket ID.
func (s *BookingService) GetBooking(ctx context.Context, ticketID string) (*repository.BookingWithEvent, error) {
	if _, err := uuid.Parse(ticketID); err != nil {
		return nil, repository.ErrBookingNotFound
	}
	return s.bookings.GetByTicketID(ctx, ticketID)
}

// ListUserBookings returns the authenticated user's bookings.
func (s *BookingService) ListUserBookings(ctx context.Context, userID string) ([]repository.BookingWithEvent, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
