// Package engine is the log classification core: it owns the session
// store, the active rule set, and the operations the transport
// adapters (Telegram bot, HTTP API, CLI) call into. Everything here is
// synchronous and CPU-bound; cancellation and retries belong to the
// adapters.
package engine

import (
	"fmt"
	"time"

	"github.com/nyanyapushkina/log-analysis-bot/internal/filter"
	"github.com/nyanyapushkina/log-analysis-bot/internal/hub"
	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
	"github.com/nyanyapushkina/log-analysis-bot/internal/report"
	"github.com/nyanyapushkina/log-analysis-bot/internal/rules"
	"github.com/nyanyapushkina/log-analysis-bot/internal/session"
)

// Limits holds upload policy. Thresholds come from configuration, not
// from the engine itself.
type Limits struct {
	// MaxUploadBytes caps raw upload size; zero means unlimited.
	MaxUploadBytes int64
}

// Engine ties the session store and rule provider together behind the
// operations the adapters use. Safe for concurrent use: per-session
// state is serialized by the store, the rule provider is read-only
// here.
type Engine struct {
	store  *session.Store
	rules  *rules.Provider
	events *hub.Hub
	limits Limits
}

// New creates an engine. events may be nil when no live stream is
// wanted (the CLI analyze path).
func New(store *session.Store, provider *rules.Provider, events *hub.Hub, limits Limits) *Engine {
	return &Engine{store: store, rules: provider, events: events, limits: limits}
}

// Store exposes the session store for adapters that need counts.
func (e *Engine) Store() *session.Store { return e.store }

// Rules returns the currently active rule set.
func (e *Engine) Rules() *rules.Set { return e.rules.Current() }

// Upload decodes the raw bytes and replaces the session's document.
// declaredEncoding is an optional IANA charset name; empty means UTF-8.
func (e *Engine) Upload(sessionID, name string, raw []byte, declaredEncoding string) error {
	if e.limits.MaxUploadBytes > 0 && int64(len(raw)) > e.limits.MaxUploadBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrUploadTooLarge, len(raw), e.limits.MaxUploadBytes)
	}

	text, err := decodeText(raw, declaredEncoding)
	if err != nil {
		return err
	}

	sess := e.store.GetOrCreate(sessionID)
	doc := sess.SetDocument(name, text)

	e.publish(hub.Event{
		SessionID: sessionID,
		Kind:      hub.EventUpload,
		Document:  doc.Name,
		Lines:     doc.LineCount(),
		Time:      doc.UploadedAt,
	})
	return nil
}

// Analyze builds a fresh report from the session's current document
// and filter configuration. An empty document yields an empty report;
// a missing one is ErrNoUploadedFile.
func (e *Engine) Analyze(sessionID string) (*model.Report, error) {
	sess := e.store.GetOrCreate(sessionID)
	doc, filters := sess.Snapshot()
	if doc == nil {
		return nil, fmt.Errorf("%w: session %s", ErrNoUploadedFile, sessionID)
	}

	rep := report.Build(doc, e.rules.Current(), filters)

	e.publish(hub.Event{
		SessionID: sessionID,
		Kind:      hub.EventReport,
		Document:  doc.Name,
		Lines:     rep.TotalLines,
		Matched:   rep.MatchedCount(),
		Unmatched: rep.UnmatchedCount,
		Time:      time.Now(),
	})
	return rep, nil
}

// ListFilters returns the session's filter state in canonical category
// order, for rendering toggle buttons.
func (e *Engine) ListFilters(sessionID string) []filter.Entry {
	sess := e.store.GetOrCreate(sessionID)
	var entries []filter.Entry
	_ = sess.WithFilters(func(f *filter.Config) error {
		entries = f.Entries()
		return nil
	})
	return entries
}

// ToggleFilter flips one category for the session and returns the new
// state. The change takes effect on the next Analyze, never
// retroactively.
func (e *Engine) ToggleFilter(sessionID string, cat model.Category) (bool, error) {
	if !model.ValidCategory(cat) {
		return false, fmt.Errorf("%w: %q", ErrInvalidCategory, cat)
	}
	sess := e.store.GetOrCreate(sessionID)
	var state bool
	err := sess.WithFilters(func(f *filter.Config) error {
		var terr error
		state, terr = f.Toggle(cat)
		return terr
	})
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidCategory, cat)
	}
	return state, nil
}

// ResetSession drops the session's document and restores default
// filters. A no-op for sessions that were never created.
func (e *Engine) ResetSession(sessionID string) {
	if sess := e.store.Get(sessionID); sess != nil {
		sess.Reset()
	}
}

func (e *Engine) publish(ev hub.Event) {
	if e.events != nil {
		e.events.Publish(ev)
	}
}
