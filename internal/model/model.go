// Package model defines the core domain types for the event ticketing system.
package model

import "time"

// EventCategory is the fixed enumeration of event types.
type EventCategory string

const (
	CategoryTech       EventCategory = "Tech"
	CategoryConcert    EventCategory = "Concert"
	CategoryConference EventCategory = "Conference"
	CategoryWorkshop   EventCategory = "Workshop"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c EventCategory) bool {
	switch c {
	case CategoryTech, CategoryConcert, CategoryConference, CategoryWorkshop:
		return true
	}
	return false
}

// Event represents a bookable event created by an organizer.
// Seats is the live remaining-capacity counter; it only decreases, and only
// through a successful reservation.
type Event struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Date        time.Time     `json:"date"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	Seats       int           `json:"seats"`
	Category    EventCategory `json:"category"`
	Price       float64       `json:"price"`
	ImageURL    string        `json:"image_url,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// PaymentStatus is the payment state of a booking.
// Transitions are pending → completed or pending → failed; completed and
// failed are terminal.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Terminal reports whether the status permits no further transition.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentFailed
}

// Booking links an attendee to an event for a number of seats.
// TicketID is the unguessable ticket identifier encoded into the
// presentable ticket; ShortCode is its human-typeable alias for manual
// check-in. Both are unique across all bookings.
type Booking struct {
	TicketID      string        `json:"ticket_id"`
	ShortCode     string        `json:"short_code"`
	EventID       string        `json:"event_id"`
	UserID        string        `json:"user_id,omitempty"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Seats         int           `json:"seats"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// User is a registered account. Bookings may reference a user but do not
// have to; anonymous booking is allowed.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Expense is a user-tracked spending record shown on the budget dashboard.
type Expense struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// ExpenseSummary aggregates a user's spending for the dashboard.
type ExpenseSummary struct {
	MonthlyTotal float64 `json:"monthly_total"`
	YearlyTotal  float64 `json:"yearly_total"`
}

// Request payloads.

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title       string        `json:"title"`
	Date        string        `json:"date"` // YYYY-MM-DD
	Location    string        `json:"location"`
	Description string        `json:"description"`
	Seats       int           `json:"seats"`
	Category    EventCategory `json:"category"`
	Price       float64       `json:"price"`
	ImageURL    string        `json:"image_url"`
}

// CreateBookingRequest is the payload for booking seats on an event.
// UserID is set by the server from the authenticated session, never by the
// client.
type CreateBookingRequest struct {
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Seats   int    `json:"seats"`
	UserID  string `json:"-"`
}

// PaymentRequest carries the simulated card details.
type PaymentRequest struct {
	CardNumber string `json:"card_number"`
	Cardholder string `json:"cardholder"`
}

// SignupRequest is the payload for user registration.
type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SigninRequest is the payload for login.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateExpenseRequest is the payload for recording an expense.
type CreateExpenseRequest struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// Response payloads.

// VerificationResult is the entry-scanning response for a presented code.
// Invalid lookups carry only valid=false; lookup internals are never
// exposed.
type VerificationResult struct {
	Valid     bool   `json:"valid"`
	Attendee  string `json:"attendee,omitempty"`
	Event     string `json:"event,omitempty"`
	ShortCode string `json:"code,omitempty"`
}

// Ticket is the presentable form of a paid-for booking, including the
// scannable encoding of the ticket identifier.
type Ticket struct {
	Booking    Booking `json:"booking"`
	EventTitle string  `json:"event_title"`
	QRImage    string  `json:"qr_image"` // base64 PNG of the ticket id
}

// AuthResponse carries the access token issued at signup/signin.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
