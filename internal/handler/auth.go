package handler

import (
	"errors"
	"net/http"

	"github.com/eventiq/eventiq/internal/model"
	"github.com/eventiq/eventiq/internal/repository"
	"github.com/eventiq/eventiq/internal/service"
)

// AuthHandler holds HTTP handlers for user accounts.
type AuthHandler struct {
	auth     *service.AuthService
	bookings *service.BookingService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *service.AuthService, bookings *service.BookingService) *AuthHandler {
	return &AuthHandler{auth: auth, bookings: bookings}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			writeError(w, http.StatusConflict, "username or email already registered")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Signin handles POST /api/auth/signin.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req model.SigninRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.auth.Signin(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "signin failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	user, err := h.auth.GetUser(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// MyBookings handles GET /api/me/bookings.
func (h *AuthHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	bookings, err := h.bookings.ListUserBookings(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	if bookings == nil {
		bookings = []repository.BookingWithEvent{}
	}
	writeJSON(w, http.StatusOK, bookings)
}
