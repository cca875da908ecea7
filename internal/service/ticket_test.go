package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/eventiq/eventiq/internal/model"
	"github.com/eventiq/eventiq/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketFixture(t *testing.T) (*TicketService, *model.Booking) {
	t.Helper()
	store := newFakeBookingStore()
	store.addEvent(testEventID, "GopherCon", 5)

	bookingSvc := NewBookingService(store, testPolicy())
	booking, err := bookingSvc.CreateBooking(context.Background(), validRequest(testEventID))
	require.NoError(t, err)

	return NewTicketService(store), booking
}

func TestVerify_ByShortCodeCaseInsensitive(t *testing.T) {
	svc, booking := ticketFixture(t)

	upper := svc.Verify(context.Background(), booking.ShortCode)
	lower := svc.Verify(context.Background(), strings.ToLower(booking.ShortCode))

	require.True(t, upper.Valid)
	assert.Equal(t, upper, lower, "verification must be case-insensitive")
	assert.Equal(t, "Asha Rao", upper.Attendee)
	assert.Equal(t, "GopherCon", upper.Event)
	assert.Equal(t, booking.ShortCode, upper.ShortCode)
}

func TestVerify_ByTicketID(t *testing.T) {
	svc, booking := ticketFixture(t)

	result := svc.Verify(context.Background(), booking.TicketID)
	require.True(t, result.Valid)
	assert.Equal(t, booking.ShortCode, result.ShortCode)
}

func TestVerify_GarbageInput(t *testing.T) {
	svc, _ := ticketFixture(t)

	for _, code := range []string{
		"nonexistent",
		"",
		"ZZZZZZ",
		"not-a-uuid-but-rather-long-garbage",
		"4c1f0e9e-0000-0000-0000-000000000000",
	} {
		result := svc.Verify(context.Background(), code)
		assert.False(t, result.Valid, "code %q must be invalid", code)
		assert.Empty(t, result.Attendee, "invalid result must not leak details")
	}
}

func TestVerify_IgnoresPaymentStatus(t *testing.T) {
	store := newFakeBookingStore()
	store.addEvent(testEventID, "GopherCon", 5)
	bookingSvc := NewBookingService(store, testPolicy())
	booking, err := bookingSvc.CreateBooking(context.Background(), validRequest(testEventID))
	require.NoError(t, err)

	// Fail the payment; verification still reports identity match.
	_, err = NewPaymentService(store).Process(context.Background(), booking.TicketID, model.PaymentRequest{CardNumber: "123"})
	require.NoError(t, err)

	result := NewTicketService(store).Verify(context.Background(), booking.ShortCode)
	assert.True(t, result.Valid)
}

func TestRender(t *testing.T) {
	svc, booking := ticketFixture(t)

	ticket, err := svc.Render(context.Background(), booking.TicketID)
	require.NoError(t, err)

	assert.Equal(t, "GopherCon", ticket.EventTitle)
	assert.Equal(t, booking.TicketID, ticket.Booking.TicketID)

	png, err := base64.StdEncoding.DecodeString(ticket.QRImage)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4], "QR image must be a PNG")
}

func TestRender_NotFound(t *testing.T) {
	svc, _ := ticketFixture(t)

	_, err := svc.Render(context.Background(), "0b6f1f3a-8a9f-4a6e-9f27-1c2d3e4f5a6b")
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)

	// Malformed ids resolve as not-found rather than surfacing a cast
	// failure from the uuid column.
	_, err = svc.Render(context.Background(), "abc!xyz-garbage")
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}
