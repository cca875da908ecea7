package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/eventiq/eventiq/internal/identity"
	"github.com/eventiq/eventiq/internal/model"
	"github.com/eventiq/eventiq/internal/repository"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the pixel width of the generated ticket QR image.
const qrSize = 256

// TicketService renders presentable tickets and verifies presented codes
// at entry scanning.
type TicketService struct {
	bookings BookingStore
}

// NewTicketService constructs a TicketService.
func NewTicketService(bookings BookingStore) *TicketService {
	return &TicketService{bookings: bookings}
}

// Render returns the presentable ticket for a booking, including a
// scannable QR encoding of the ticket identifier.
func (s *TicketService) Render(ctx context.Context, ticketID string) (*model.Ticket, error) {
	if _, err := uuid.Parse(ticketID); err != nil {
		return nil, repository.ErrBookingNotFound
	}
	booking, err := s.bookings.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(booking.TicketID, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	return &model.Ticket{
		Booking:    booking.Booking,
		EventTitle: booking.EventTitle,
		QRImage:    base64.StdEncoding.EncodeToString(png),
	}, nil
}

// Verify resolves a presented code to a booking and reports validity plus
// an attendee/event summary. Short codes (at or below the length
// threshold) are matched case-insensitively; anything longer must parse
// as a ticket UUID. Arbitrary garbage input yields valid=false, never an
// error: this is a boundary API for scanning clients.
//
// Verification reports identity match only; payment status is not
// consulted.
func (s *TicketService) Verify(ctx context.Context, code string) model.VerificationResult {
	booking, err := s.lookup(ctx, code)
	if err != nil {
		return model.VerificationResult{Valid: false}
	}
	return model.VerificationResult{
		Valid:     true,
		Attendee:  booking.Name,
		Event:     booking.EventTitle,
		ShortCode: booking.ShortCode,
	}
}

func (s *TicketService) lookup(ctx context.Context, code string) (*repository.BookingWithEvent, error) {
	if identity.LooksLikeShortCode(code) {
		return s.bookings.GetByShortCode(ctx, identity.Normalize(code))
	}
	id, err := uuid.Parse(code)
	if err != nil {
		return nil, err
	}
	return s.bookings.GetByTicketID(ctx, id.String())
}
