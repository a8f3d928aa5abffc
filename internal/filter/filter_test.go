package filter

import (
	"testing"

	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
)

func TestNewDefaultsAllEnabled(t *testing.T) {
	f := New()

	for _, c := range model.Categories {
		if !f.IsEnabled(c) {
			t.Errorf("expected %s enabled by default", c)
		}
	}
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	f := New()

	state, err := f.Toggle(model.CategoryAuth)
	if err != nil {
		t.Fatal(err)
	}
	if state {
		t.Error("first toggle should disable")
	}

	state, err = f.Toggle(model.CategoryAuth)
	if err != nil {
		t.Fatal(err)
	}
	if !state {
		t.Error("second toggle should re-enable")
	}
	if !f.IsEnabled(model.CategoryAuth) {
		t.Error("double toggle should restore the original state")
	}
}

func TestToggleUnknownCategory(t *testing.T) {
	f := New()

	if _, err := f.Toggle(model.Category("NOPE")); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestIsEnabledUnknownCategory(t *testing.T) {
	f := New()

	if f.IsEnabled(model.Category("NOPE")) {
		t.Error("unknown category must never be enabled")
	}
}

func TestEnableAll(t *testing.T) {
	f := New()
	_, _ = f.Toggle(model.CategoryError)
	_, _ = f.Toggle(model.CategoryAuth)

	f.EnableAll()

	for _, c := range model.Categories {
		if !f.IsEnabled(c) {
			t.Errorf("expected %s enabled after EnableAll", c)
		}
	}
}

func TestEntriesCanonicalOrder(t *testing.T) {
	f := New()
	_, _ = f.Toggle(model.CategoryWarning)

	entries := f.Entries()
	if len(entries) != len(model.Categories) {
		t.Fatalf("expected %d entries, got %d", len(model.Categories), len(entries))
	}
	for i, c := range model.Categories {
		if entries[i].Category != c {
			t.Errorf("position %d: expected %s, got %s", i, c, entries[i].Category)
		}
	}
	if entries[1].Enabled {
		t.Error("expected WARNING entry disabled")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := New()
	snap := f.Clone()

	_, _ = f.Toggle(model.CategoryError)

	if !snap.IsEnabled(model.CategoryError) {
		t.Error("clone must not observe later toggles")
	}
}
