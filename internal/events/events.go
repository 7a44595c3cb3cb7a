// Package events publishes pipeline milestones to an optional message broker.
package events

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Event types emitted by the pipeline.
const (
	TypeCandidatesListed    = "candidates.listed"
	TypeCompanyInvestigated = "company.investigated"
	TypeCampaignGenerated   = "campaign.generated"
	TypeMemoryReset         = "memory.reset"
)

// Event is one pipeline milestone. Generated text is not included; only sizes.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Company string    `json:"company,omitempty"`
	Market  string    `json:"market,omitempty"`
	Count   int       `json:"count,omitempty"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// New stamps an event with a fresh ULID and the current time.
func New(typ string) Event {
	now := time.Now().UTC()
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), entropy).String()
	entropyMu.Unlock()
	return Event{ID: id, Type: typ, At: now}
}

// Key is the partition key: the company when set, otherwise the type.
func (e Event) Key() string {
	if e.Company != "" {
		return e.Company
	}
	return e.Type
}

// Marshal encodes the event as JSON.
func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Discard drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }
func (discard) Close() error                         { return nil }

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of what has been published.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types returns the type of each recorded event in order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

func (r *Recorder) Close() error { return nil }
