// Package events publishes domain events about user data to a message broker.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aarthiksaathi/aarthik-be/internal/models"
)

// TypeProfileSaved is emitted after every successful profile upsert.
const TypeProfileSaved = "profile.saved"

// Event is the envelope written to the broker as JSON.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher hands events to a broker. Emit must not block on delivery.
type Publisher interface {
	Emit(ctx context.Context, e Event) error
	Close(ctx context.Context) error
}

// ProfileSaved builds the event for a stored profile.
func ProfileSaved(p models.Profile, requestID string, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       TypeProfileSaved,
		UserID:     p.UserID,
		RequestID:  requestID,
		OccurredAt: at.UTC(),
		Data:       p,
	}
}

// Discard drops every event. It is used when no broker is configured.
type Discard struct{}

func (Discard) Emit(context.Context, Event) error { return nil }
func (Discard) Close(context.Context) error      { return nil }

// Recorder keeps emitted events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close(context.Context) error { return nil }

// Events returns a copy of everything emitted so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
