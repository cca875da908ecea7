package service

import (
	"context"
	"testing"

	"github.com/eventiq/eventiq/internal/model"
	"github.com/eventiq/eventiq/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventStore struct {
	events []model.Event
}

func (f *fakeEventStore) Create(ctx context.Context, e model.Event) (*model.Event, error) {
	e.ID = uuid.New().String()
	f.events = append(f.events, e)
	copied := e
	return &copied, nil
}

func (f *fakeEventStore) List(ctx context.Context) ([]model.Event, error) {
	return f.events, nil
}

func (f *fakeEventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			copied := f.events[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrEventNotFound
}

func validEventRequest() model.CreateEventRequest {
	return model.CreateEventRequest{
		Title:    "GopherCon",
		Date:     "2026-11-05",
		Location: "Pune",
		Seats:    120,
		Price:    499,
		Category: model.CategoryTech,
	}
}

func TestCreateEvent(t *testing.T) {
	svc := NewEventService(&fakeEventStore{})

	event, err := svc.CreateEvent(context.Background(), validEventRequest())
	require.NoError(t, err)
	assert.Equal(t, "GopherCon", event.Title)
	assert.Equal(t, 2026, event.Date.Year())
	assert.Equal(t, model.CategoryTech, event.Category)
}

func TestCreateEvent_DefaultsCategory(t *testing.T) {
	svc := NewEventService(&fakeEventStore{})

	req := validEventRequest()
	req.Category = ""
	event, err := svc.CreateEvent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryTech, event.Category)
}

func TestCreateEvent_Validation(t *testing.T) {
	svc := NewEventService(&fakeEventStore{})

	tests := []struct {
		name   string
		mutate func(*model.CreateEventRequest)
	}{
		{"empty title", func(r *model.CreateEventRequest) { r.Title = " " }},
		{"empty location", func(r *model.CreateEventRequest) { r.Location = "" }},
		{"bad date", func(r *model.CreateEventRequest) { r.Date = "05/11/2026" }},
		{"negative seats", func(r *model.CreateEventRequest) { r.Seats = -1 }},
		{"negative price", func(r *model.CreateEventRequest) { r.Price = -0.01 }},
		{"unknown category", func(r *model.CreateEventRequest) { r.Category = "rodeo" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validEventRequest()
			tt.mutate(&req)
			_, err := svc.CreateEvent(context.Background(), req)
			assert.Error(t, err)
		})
	}
}

func TestGetEvent(t *testing.T) {
	store := &fakeEventStore{}
	svc := NewEventService(store)

	created, err := svc.CreateEvent(context.Background(), validEventRequest())
	require.NoError(t, err)

	got, err := svc.GetEvent(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	// Empty, malformed, and unknown ids all resolve as not-found.
	for _, id := range []string{"", "missing", "0c6a2f9d-1b4e-4d8a-8f3c-7e5a9b0d2c14"} {
		_, err = svc.GetEvent(context.Background(), id)
		assert.ErrorIs(t, err, repository.ErrEventNotFound, "id %q", id)
	}
}
