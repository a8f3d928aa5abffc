// Package hub broadcasts engine activity to live subscribers, feeding
// the websocket stream on the HTTP server.
package hub

import (
	"log"
	"sync"
	"time"
)

const subscriberBuffer = 64

// Kind discriminates hub events.
type Kind string

const (
	// EventUpload fires when a session receives a new document.
	EventUpload Kind = "upload"
	// EventReport fires when a session's document is analyzed.
	EventReport Kind = "report"
)

// Event is one unit of engine activity: an upload landing or a report
// being built. Carries summary numbers only, never document content.
type Event struct {
	SessionID string    `json:"session_id"`
	Kind      Kind      `json:"kind"`
	Document  string    `json:"document,omitempty"`
	Lines     int       `json:"lines"`
	Matched   int       `json:"matched,omitempty"`
	Unmatched int       `json:"unmatched,omitempty"`
	Time      time.Time `json:"time"`
}

// Hub fans events out to all subscribers. Each subscriber gets a copy
// of every event; a subscriber that falls behind loses events rather
// than stalling the engine.
type Hub struct {
	mu          sync.Mutex
	subscribers []chan Event
	dropped     int64
	closed      bool
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{}
}

// Subscribe returns a buffered channel receiving every future event.
// The channel is closed when the hub shuts down.
func (h *Hub) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	if h.closed {
		close(ch)
	} else {
		h.subscribers = append(h.subscribers, ch)
	}
	h.mu.Unlock()
	return ch
}

// Publish delivers the event to every subscriber. Full subscriber
// channels drop the event for that subscriber only.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			h.dropped++
			log.Printf("hub: dropped event for slow subscriber (total dropped: %d)", h.dropped)
		}
	}
}

// Dropped returns the total number of events dropped for slow subscribers.
func (h *Hub) Dropped() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close closes all subscriber channels. Publish becomes a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
}
