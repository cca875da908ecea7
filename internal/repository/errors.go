// Package repository implements all database queries for the ticketing
// system. It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"errors"
	"fmt"
)

// ErrEventNotFound is returned when the referenced event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrBookingNotFound is returned when no booking matches the identifier.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUserNotFound is returned when no user matches.
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned when a signup collides with an existing
// username or email.
var ErrUserExists = errors.New("user already exists")

// InsufficientCapacityError rejects a reservation that asks for more
// seats than the event has left. Remaining carries the live count for
// user messaging.
type InsufficientCapacityError struct {
	Remaining int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("only %d seats left", e.Remaining)
}
