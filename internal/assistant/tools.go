package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/eventiq/eventiq/internal/service"
)

// ErrUnknownTool is returned when a tool name does not resolve.
var ErrUnknownTool = errors.New("unknown tool")

// Tool names the collaborator may invoke.
const (
	ToolListEvents = "list_events"
	ToolBookEvent  = "book_event"
)

// EventSummary is the list_events result shape.
type EventSummary struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Date           string  `json:"date"`
	Price          float64 `json:"price"`
	Location       string  `json:"location"`
	SeatsAvailable int     `json:"seats_available"`
}

// BookEventArgs are the required parameters for the book_event tool.
type BookEventArgs struct {
	EventID string `json:"event_id"`
	Seats   int    `json:"seats"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// BookEventResult carries the prefill URL that triggers client-side
// auto-fill and submission of the booking form.
type BookEventResult struct {
	Status      string `json:"status"`
	RedirectURL string `json:"redirect_url"`
}

// Registry dispatches tool invocations to the event catalog and booking
// form.
type Registry struct {
	events   *service.EventService
	sessions SessionStore
}

// NewRegistry constructs a Registry.
func NewRegistry(events *service.EventService, sessions SessionStore) *Registry {
	return &Registry{events: events, sessions: sessions}
}

// Invoke runs the named tool and records the invocation in the session's
// history.
func (r *Registry) Invoke(ctx context.Context, sessionID, name string, args json.RawMessage) (any, error) {
	var (
		result any
		err    error
	)
	switch name {
	case ToolListEvents:
		result, err = r.listEvents(ctx)
	case ToolBookEvent:
		var bookArgs BookEventArgs
		if jsonErr := json.Unmarshal(args, &bookArgs); jsonErr != nil {
			return nil, fmt.Errorf("decode %s args: %w", name, jsonErr)
		}
		result, err = r.bookEvent(ctx, bookArgs)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if err != nil {
		return nil, err
	}

	if sessionID != "" {
		entry := Message{Role: "tool", Content: name, At: time.Now().UTC()}
		if appendErr := r.sessions.Append(ctx, sessionID, entry); appendErr != nil {
			return nil, appendErr
		}
	}
	return result, nil
}

// History exposes a session's recorded conversation.
func (r *Registry) History(ctx context.Context, sessionID string) ([]Message, error) {
	return r.sessions.History(ctx, sessionID)
}

func (r *Registry) listEvents(ctx context.Context) ([]EventSummary, error) {
	events, err := r.events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]EventSummary, 0, len(events))
	for _, e := range events {
		summaries = append(summaries, EventSummary{
			ID:             e.ID,
			Title:          e.Title,
			Date:           e.Date.Format("2006-01-02"),
			Price:          e.Price,
			Location:       e.Location,
			SeatsAvailable: e.Seats,
		})
	}
	return summaries, nil
}

// bookEvent does not create the booking itself: it hands back a booking
// form URL with prefill parameters, and the client completes the flow
// through the normal booking endpoint.
func (r *Registry) bookEvent(ctx context.Context, args BookEventArgs) (*BookEventResult, error) {
	var title string
	if event, err := r.events.GetEvent(ctx, args.EventID); err == nil {
		title = event.Title
	}

	params := url.Values{}
	params.Set("auto_fill", "true")
	params.Set("event_id", args.EventID)
	params.Set("event_title", title)
	params.Set("name", args.Name)
	params.Set("email", args.Email)
	params.Set("seats", fmt.Sprintf("%d", args.Seats))

	return &BookEventResult{
		Status:      "success",
		RedirectURL: "/booking/?" + params.Encode(),
	}, nil
}
