package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/eventiq/eventiq/internal/model"
	"github.com/eventiq/eventiq/internal/repository"
	"github.com/google/uuid"
)

// minCardDigits is the simulated acceptance threshold: a card-number-like
// field with at least this many digits passes.
const minCardDigits = 13

// PaymentResult reports the outcome of a payment submission.
type PaymentResult struct {
	Booking *repository.BookingWithEvent
	// Succeeded is true when the booking's payment is completed, whether
	// by this call or an earlier one.
	Succeeded bool
	// AlreadyCompleted marks the idempotent path: the booking was paid
	// before this call, so nothing was written.
	AlreadyCompleted bool
}

// PaymentService drives the pending → completed/failed transition for a
// booking. Seat counts are never touched here; they were committed at
// reservation time.
type PaymentService struct {
	bookings BookingStore
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(bookings BookingStore) *PaymentService {
	return &PaymentService{bookings: bookings}
}

// GetForPayment loads the booking a payment page is for. A malformed
// ticket id is indistinguishable from an unknown one.
func (s *PaymentService) GetForPayment(ctx context.Context, ticketID string) (*repository.BookingWithEvent, error) {
	if _, err := uuid.Parse(ticketID); err != nil {
		return nil, repository.ErrBookingNotFound
	}
	return s.bookings.GetByTicketID(ctx, ticketID)
}

// Process runs the simulated payment for a booking.
//
// A booking that already completed is handled idempotently: the caller is
// routed to the ticket and the stored payment method is left alone. A
// booking that already failed stays failed (terminal states never
// transition). Otherwise exactly one status write happens: completed with
// a masked method descriptor when the card number carries enough digits,
// failed with no descriptor when it does not.
func (s *PaymentService) Process(ctx context.Context, ticketID string, req model.PaymentRequest) (*PaymentResult, error) {
	if _, err := uuid.Parse(ticketID); err != nil {
		return nil, repository.ErrBookingNotFound
	}
	booking, err := s.bookings.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	switch booking.PaymentStatus {
	case model.PaymentCompleted:
		return &PaymentResult{Booking: booking, Succeeded: true, AlreadyCompleted: true}, nil
	case model.PaymentFailed:
		return nil, ErrPaymentFinal
	}

	digits := cardDigits(req.CardNumber)
	if len(digits) >= minCardDigits {
		method := fmt.Sprintf("Card ending in %s", digits[len(digits)-4:])
		applied, err := s.bookings.SetPaymentOutcome(ctx, ticketID, model.PaymentCompleted, method)
		if err != nil {
			return nil, fmt.Errorf("complete payment: %w", err)
		}
		if !applied {
			// Lost a race against a concurrent submission; report
			// whatever state won.
			return s.resolveConcurrent(ctx, ticketID)
		}
		booking.PaymentStatus = model.PaymentCompleted
		booking.PaymentMethod = method
		return &PaymentResult{Booking: booking, Succeeded: true}, nil
	}

	applied, err := s.bookings.SetPaymentOutcome(ctx, ticketID, model.PaymentFailed, "")
	if err != nil {
		return nil, fmt.Errorf("fail payment: %w", err)
	}
	if !applied {
		return s.resolveConcurrent(ctx, ticketID)
	}
	booking.PaymentStatus = model.PaymentFailed
	return &PaymentResult{Booking: booking, Succeeded: false}, nil
}

// resolveConcurrent re-reads a booking whose pending-state write was beaten
// by another request.
func (s *PaymentService) resolveConcurrent(ctx context.Context, ticketID string) (*PaymentResult, error) {
	booking, err := s.bookings.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus == model.PaymentCompleted {
		return &PaymentResult{Booking: booking, Succeeded: true, AlreadyCompleted: true}, nil
	}
	return nil, ErrPaymentFinal
}

// cardDigits strips everything but digits from a card-number-like field.
func cardDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
