package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventiq/eventiq/internal/model"
	"github.com/eventiq/eventiq/internal/repository"
	"github.com/google/uuid"
)

// EventStore is the persistence surface the event service needs.
type EventStore interface {
	Create(ctx context.Context, e model.Event) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
}

// EventService orchestrates event catalog operations.
type EventService struct {
	events EventStore
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore) *EventService {
	return &EventService{events: events}
}

// CreateEvent validates the request and delegates to the repository.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title", ErrMissingField)
	}
	if req.Location == "" {
		return nil, fmt.Errorf("%w: location", ErrMissingField)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD")
	}
	if req.Seats < 0 {
		return nil, fmt.Errorf("seats must not be negative")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}
	if req.Category == "" {
		req.Category = model.CategoryTech
	}
	if !model.ValidCategory(req.Category) {
		return nil, fmt.Errorf("unknown category %q", req.Category)
	}

	return s.events.Create(ctx, model.Event{
		Title:       req.Title,
		Date:        date,
		Location:    req.Location,
		Description: req.Description,
		Seats:       req.Seats,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
}

// ListEvents returns all events ordered by date.
func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

// GetEvent returns a single event by ID. Malformed ids resolve to
// ErrEventNotFound rather than reaching the database.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrEventNotFound
	}
	return s.events.GetByID(ctx, id)
}
