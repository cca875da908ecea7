// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import "errors"

// ErrMissingField rejects a request with an empty required field. Wrap it
// with the field name for user messaging.
var ErrMissingField = errors.New("missing required field")

// ErrInvalidSeatCount rejects a seat count outside the configured bounds.
var ErrInvalidSeatCount = errors.New("invalid seat count")

// ErrInvalidCredentials rejects a signin with a wrong username or password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrPaymentFinal rejects a payment submission against a booking whose
// payment already reached a terminal failed state.
var ErrPaymentFinal = errors.New("payment already in a final state")
