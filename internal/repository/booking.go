package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventiq/eventiq/internal/identity"
	"github.com/eventiq/eventiq/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL error code for a unique-constraint
// violation, used to detect short-code collisions at insert time.
const uniqueViolation = "23505"

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingWithEvent pairs a booking with the title of the event it is for,
// for ticket rendering and entry verification.
type BookingWithEvent struct {
	model.Booking
	EventTitle string `json:"event_title"`
}

// Reserve performs a concurrency-safe seat reservation inside a single
// transaction:
//
//  1. Lock the event row with SELECT ... FOR UPDATE. Concurrent
//     reservations for the same event serialize here, so two requests for
//     the last seats can never both read free capacity. A plain
//     read-then-write would overbook.
//  2. Reject if fewer seats remain than requested; the rollback leaves
//     capacity untouched.
//  3. Decrement the seat counter.
//  4. Insert the pending booking. The short code is drawn inside the same
//     transaction and the insert retried on a short-code unique violation,
//     which closes the race between "code looks free" and "code is
//     persisted".
//
// Either every step commits or none of them do; a failure mid-way never
// leaves a decrement without a booking.
func (r *BookingRepository) Reserve(ctx context.Context, req model.CreateBookingRequest, maxCodeAttempts int) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var remaining int
	err = tx.QueryRow(ctx,
		`SELECT seats FROM events WHERE id = $1 FOR UPDATE`,
		req.EventID,
	).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	if remaining < req.Seats {
		err = &InsufficientCapacityError{Remaining: remaining}
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE events SET seats = seats - $2 WHERE id = $1`,
		req.EventID, req.Seats,
	)
	if err != nil {
		return nil, fmt.Errorf("decrement seats: %w", err)
	}

	booking := &model.Booking{
		TicketID:      identity.NewTicketID(),
		EventID:       req.EventID,
		UserID:        req.UserID,
		Name:          req.Name,
		Email:         req.Email,
		Seats:         req.Seats,
		PaymentStatus: model.PaymentPending,
		CreatedAt:     time.Now().UTC(),
	}
	var userID any
	if booking.UserID != "" {
		userID = booking.UserID
	}

	// Insert-or-retry: the UNIQUE constraint on short_code is the source
	// of truth, so a collision surfaces as a constraint violation and we
	// simply draw again.
	for attempt := 0; ; attempt++ {
		booking.ShortCode, err = identity.NewShortCode()
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO bookings (ticket_id, short_code, event_id, user_id, name, email, seats, payment_status, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			booking.TicketID, booking.ShortCode, booking.EventID, userID,
			booking.Name, booking.Email, booking.Seats, booking.PaymentStatus, booking.CreatedAt,
		)
		if err == nil {
			break
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation &&
			pgErr.ConstraintName == "bookings_short_code_key" && attempt+1 < maxCodeAttempts {
			continue
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return booking, nil
}

const bookingColumns = `b.ticket_id, b.short_code, b.event_id, b.user_id, b.name, b.email,
	b.seats, b.payment_status, b.payment_method, b.created_at, e.title`

func scanBooking(row pgx.Row) (*BookingWithEvent, error) {
	var (
		b             BookingWithEvent
		userID        *string
		paymentMethod *string
	)
	err := row.Scan(
		&b.TicketID, &b.ShortCode, &b.EventID, &userID, &b.Name, &b.Email,
		&b.Seats, &b.PaymentStatus, &paymentMethod, &b.CreatedAt, &b.EventTitle,
	)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		b.UserID = *userID
	}
	if paymentMethod != nil {
		b.PaymentMethod = *paymentMethod
	}
	return &b, nil
}

// GetByTicketID returns a booking by its ticket identifier, or
// ErrBookingNotFound.
func (r *BookingRepository) GetByTicketID(ctx context.Context, ticketID string) (*BookingWithEvent, error) {
	b, err := scanBooking(r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b JOIN events e ON e.id = b.event_id
		 WHERE b.ticket_id = $1`,
		ticketID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// GetByShortCode returns a booking by its short check-in code, or
// ErrBookingNotFound. The caller is expected to normalize case first.
func (r *BookingRepository) GetByShortCode(ctx context.Context, code string) (*BookingWithEvent, error) {
	b, err := scanBooking(r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b JOIN events e ON e.id = b.event_id
		 WHERE b.short_code = $1`,
		code,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking by code: %w", err)
	}
	return b, nil
}

// ListByUser returns a user's bookings, newest first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]BookingWithEvent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b JOIN events e ON e.id = b.event_id
		 WHERE b.user_id = $1
		 ORDER BY b.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []BookingWithEvent
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// SetPaymentOutcome writes the one allowed payment transition for a
// booking. The WHERE clause only matches pending rows, so completed and
// failed stay terminal no matter how many submissions race; the returned
// bool reports whether this call performed the transition.
func (r *BookingRepository) SetPaymentOutcome(ctx context.Context, ticketID string, status model.PaymentStatus, method string) (bool, error) {
	var methodArg any
	if method != "" {
		methodArg = method
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings
		 SET payment_status = $2, payment_method = $3
		 WHERE ticket_id = $1 AND payment_status = 'pending'`,
		ticketID, status, methodArg,
	)
	if err != nil {
		return false, fmt.Errorf("update payment status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
