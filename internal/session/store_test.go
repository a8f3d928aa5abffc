package session

import (
	"sync"
	"testing"

	"github.com/nyanyapushkina/log-analysis-bot/internal/filter"
	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
)

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	s := NewStore()

	a := s.GetOrCreate("chat-1")
	b := s.GetOrCreate("chat-1")
	if a != b {
		t.Error("expected the same session instance for one id")
	}
	if s.Count() != 1 {
		t.Errorf("expected 1 session, got %d", s.Count())
	}
}

func TestGetUnknownSession(t *testing.T) {
	s := NewStore()

	if s.Get("nope") != nil {
		t.Error("expected nil for never-created session")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewStore()

	a := s.GetOrCreate("chat-a")
	b := s.GetOrCreate("chat-b")

	a.SetDocument("a.log", "[ERROR] a only")
	_ = b.WithFilters(func(f *filter.Config) error {
		_, err := f.Toggle(model.CategoryError)
		return err
	})

	if b.Document() != nil {
		t.Error("upload to session a leaked into session b")
	}
	_ = a.WithFilters(func(f *filter.Config) error {
		if !f.IsEnabled(model.CategoryError) {
			t.Error("toggle on session b leaked into session a")
		}
		return nil
	})
}

func TestSetDocumentReplaces(t *testing.T) {
	s := NewStore()
	sess := s.GetOrCreate("chat-1")

	first := sess.SetDocument("one.log", "line one")
	second := sess.SetDocument("two.log", "line two\nline three")

	if first.UploadID == second.UploadID {
		t.Error("expected distinct upload ids")
	}

	doc := sess.Document()
	if doc.Name != "two.log" {
		t.Errorf("expected replacement document, got %q", doc.Name)
	}
	if doc.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", doc.LineCount())
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	s := NewStore()
	sess := s.GetOrCreate("chat-1")

	sess.SetDocument("a.log", "[ERROR] x")
	_ = sess.WithFilters(func(f *filter.Config) error {
		_, err := f.Toggle(model.CategoryAuth)
		return err
	})

	sess.Reset()

	if sess.Document() != nil {
		t.Error("expected no document after reset")
	}
	_ = sess.WithFilters(func(f *filter.Config) error {
		if !f.IsEnabled(model.CategoryAuth) {
			t.Error("expected default filters after reset")
		}
		return nil
	})
}

func TestSnapshotFiltersAreDetached(t *testing.T) {
	s := NewStore()
	sess := s.GetOrCreate("chat-1")
	sess.SetDocument("a.log", "x")

	_, filters := sess.Snapshot()
	_ = sess.WithFilters(func(f *filter.Config) error {
		_, err := f.Toggle(model.CategoryError)
		return err
	})

	if !filters.IsEnabled(model.CategoryError) {
		t.Error("snapshot must not observe toggles taken after it")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sess := s.GetOrCreate("shared")
			sess.SetDocument("f.log", "[ERROR] x")
			_ = sess.WithFilters(func(f *filter.Config) error {
				_, err := f.Toggle(model.CategoryWarning)
				return err
			})
			sess.Snapshot()
		}(i)
	}
	wg.Wait()

	if s.Count() != 1 {
		t.Errorf("expected 1 session, got %d", s.Count())
	}
	if s.GetOrCreate("shared").Document() == nil {
		t.Error("expected a document to survive concurrent writes")
	}
}
