package handler

import (
	"errors"
	"net/http"

	"github.com/eventiq/eventiq/internal/model"
	"github.com/eventiq/eventiq/internal/repository"
	"github.com/eventiq/eventiq/internal/service"
	"github.com/go-chi/chi/v5"
)

// BookingHandler holds HTTP handlers for the booking → payment → ticket
// lifecycle and entry verification.
type BookingHandler struct {
	bookings *service.BookingService
	payments *service.PaymentService
	tickets  *service.TicketService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(
	bookings *service.BookingService,
	payments *service.PaymentService,
	tickets *service.TicketService,
) *BookingHandler {
	return &BookingHandler{bookings: bookings, payments: payments, tickets: tickets}
}

func paymentURL(ticketID string) string {
	return "/api/payments/" + ticketID
}

func ticketURL(ticketID string) string {
	return "/api/tickets/" + ticketID
}

// CreateBooking handles POST /api/bookings.
// On success the client is pointed at the payment resource for the new
// ticket.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		req.UserID = claims.Subject
	}

	booking, err := h.bookings.CreateBooking(r.Context(), req)
	if err != nil {
		var capErr *repository.InsufficientCapacityError
		switch {
		case errors.As(err, &capErr):
			writeError(w, http.StatusConflict, "Sorry, "+capErr.Error()+".")
		case errors.Is(err, repository.ErrEventNotFound):
			writeError(w, http.StatusNotFound, "selected event does not exist")
		case errors.Is(err, service.ErrMissingField),
			errors.Is(err, service.ErrInvalidSeatCount):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"booking":     booking,
		"payment_url": paymentURL(booking.TicketID),
	})
}

// GetPayment handles GET /api/payments/{ticketID}.
// An already-completed booking redirects straight to its ticket.
func (h *BookingHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketID")

	booking, err := h.payments.GetForPayment(r.Context(), ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load booking")
		return
	}

	if booking.PaymentStatus == model.PaymentCompleted {
		http.Redirect(w, r, ticketURL(booking.TicketID), http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// SubmitPayment handles POST /api/payments/{ticketID}.
func (h *BookingHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketID")

	var req model.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.payments.Process(r.Context(), ticketID, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			writeError(w, http.StatusNotFound, "booking not found")
		case errors.Is(err, service.ErrPaymentFinal):
			writeError(w, http.StatusConflict, "payment already failed for this booking")
		default:
			writeError(w, http.StatusInternalServerError, "payment processing failed")
		}
		return
	}

	if result.AlreadyCompleted {
		http.Redirect(w, r, ticketURL(ticketID), http.StatusSeeOther)
		return
	}
	if !result.Succeeded {
		writeError(w, http.StatusBadRequest, "Payment failed. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"booking":    result.Booking,
		"ticket_url": ticketURL(ticketID),
	})
}

// GetTicket handles GET /api/tickets/{ticketID}.
func (h *BookingHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.tickets.Render(r.Context(), chi.URLParam(r, "ticketID"))
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			writeError(w, http.StatusNotFound, "ticket not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to render ticket")
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// VerifyTicket handles GET /api/verify/{code}.
// Always 200; invalid or unknown codes report valid=false.
func (h *BookingHandler) VerifyTicket(w http.ResponseWriter, r *http.Request) {
	result := h.tickets.Verify(r.Context(), chi.URLParam(r, "code"))
	writeJSON(w, http.StatusOK, result)
}
