// Package session owns all per-conversation state: the most recent
// uploaded document and the active filter configuration. The store is
// the single source of truth for "the current analyzable file".
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nyanyapushkina/log-analysis-bot/internal/filter"
	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
)

// Session is one conversation's isolated state. The document starts
// absent; the filter configuration exists from creation.
type Session struct {
	ID string

	mu      sync.Mutex
	doc     *model.Document
	filters *filter.Config
}

// Store holds every live session, keyed by session id. The store-level
// lock only guards the map; each session carries its own mutex, so
// operations on different sessions never contend.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for id, creating it on first use.
func (s *Store) GetOrCreate(id string) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess = &Session{ID: id, filters: filter.New()}
	s.sessions[id] = sess
	return sess
}

// Get returns the session for id, or nil if it was never created.
func (s *Store) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// SetDocument replaces the session's document with freshly uploaded
// text and returns the new document. Replacement is wholesale: the
// previous document is discarded, never merged.
func (sess *Session) SetDocument(name, text string) *model.Document {
	doc := model.NewDocument(uuid.NewString(), name, text, time.Now())
	sess.mu.Lock()
	sess.doc = doc
	sess.mu.Unlock()
	return doc
}

// Document returns the current document, or nil before the first upload.
func (sess *Session) Document() *model.Document {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.doc
}

// WithFilters runs fn with exclusive access to the session's filter
// configuration. Serializes toggles against concurrent uploads and
// snapshot reads on the same session.
func (sess *Session) WithFilters(fn func(*filter.Config) error) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.filters)
}

// Snapshot returns the current document together with an independent
// copy of the filter configuration, taken atomically. Report building
// works from this pair so a racing toggle cannot tear a report.
func (sess *Session) Snapshot() (*model.Document, *filter.Config) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.doc, sess.filters.Clone()
}

// Reset clears the document and restores the default filter
// configuration, returning the session to its initial state.
func (sess *Session) Reset() {
	sess.mu.Lock()
	sess.doc = nil
	sess.filters = filter.New()
	sess.mu.Unlock()
}
