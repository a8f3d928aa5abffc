package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
)

func TestClassifyLineTokens(t *testing.T) {
	set := Default()

	cats := set.ClassifyLine("[ERROR] disk full")
	if !cats[model.CategoryError] {
		t.Errorf("expected ERROR match for bracketed tag, got %v", cats)
	}

	cats = set.ClassifyLine("critical: out of memory")
	if !cats[model.CategoryError] {
		t.Errorf("expected case-insensitive CRITICAL match, got %v", cats)
	}

	cats = set.ClassifyLine("user LOGIN ok")
	if !cats[model.CategoryAuth] {
		t.Errorf("expected AUTH match for LOGIN, got %v", cats)
	}
}

func TestClassifyLineWordBoundary(t *testing.T) {
	set := Default()

	// ERROR embedded inside a word must not match.
	cats := set.ClassifyLine("TERRORIST watchlist updated")
	if len(cats) != 0 {
		t.Errorf("expected no match for embedded token, got %v", cats)
	}

	// Punctuation-adjacent tokens must match.
	for _, line := range []string{"[ERROR] x", "ERROR: x", "x ERROR", "(error)"} {
		if !set.ClassifyLine(line)[model.CategoryError] {
			t.Errorf("expected ERROR match for %q", line)
		}
	}
}

func TestClassifyLineMultipleCategories(t *testing.T) {
	set := Default()

	cats := set.ClassifyLine("WARNING: LOGIN failed")
	if !cats[model.CategoryWarning] || !cats[model.CategoryAuth] || !cats[model.CategoryError] {
		t.Errorf("expected WARNING+AUTH+ERROR, got %v", cats)
	}
}

func TestClassifyLineUnmatched(t *testing.T) {
	set := Default()

	if cats := set.ClassifyLine("plain line"); len(cats) != 0 {
		t.Errorf("expected empty set for plain line, got %v", cats)
	}
}

func TestClassifyLinePure(t *testing.T) {
	set := Default()
	line := "[ERROR] AUTH denied"

	first := set.ClassifyLine(line)
	second := set.ClassifyLine(line)

	if len(first) != len(second) {
		t.Fatalf("two calls differ: %v vs %v", first, second)
	}
	for c := range first {
		if !second[c] {
			t.Errorf("second call missing %s", c)
		}
	}
}

func TestSetCategoriesCanonicalOrder(t *testing.T) {
	set := Default()

	got := set.Categories()
	want := []model.Category{model.CategoryError, model.CategoryWarning, model.CategoryAuth}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestNewRuleUnknownCategory(t *testing.T) {
	if _, err := NewRule("bad", model.Category("NOPE"), []string{"X"}); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestNewRuleNoTokens(t *testing.T) {
	if _, err := NewRule("empty", model.CategoryError, nil); err == nil {
		t.Error("expected error for empty token list")
	}
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")

	set, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Rules()) != 3 {
		t.Errorf("expected 3 default rules, got %d", len(set.Rules()))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected rule file to be created: %v", err)
	}

	// Loading the freshly written file must give the same rules back.
	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Rules()) != 3 {
		t.Errorf("expected 3 rules after reload, got %d", len(again.Rules()))
	}
}

func TestLoadCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "rules:\n  - name: Errors\n    category: ERROR\n    tokens: [PANIC, FATAL]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !set.ClassifyLine("kernel PANIC")[model.CategoryError] {
		t.Error("expected PANIC to classify as ERROR")
	}
	if set.ClassifyLine("[ERROR] x")[model.CategoryError] {
		t.Error("custom file should have replaced the default tokens")
	}
}

func TestLoadRejectsBadCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "rules:\n  - name: Bad\n    category: BOGUS\n    tokens: [X]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown category in rule file")
	}
}

func TestProviderReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")

	p, err := NewProvider(path)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Current().ClassifyLine("[ERROR] x")[model.CategoryError] {
		t.Fatal("default rules not active")
	}

	content := "rules:\n  - name: Errors\n    category: ERROR\n    tokens: [PANIC]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.Reload(); err != nil {
		t.Fatal(err)
	}
	if p.Current().ClassifyLine("[ERROR] x")[model.CategoryError] {
		t.Error("expected reloaded rules to drop ERROR token")
	}

	// A broken file must keep the previous set active.
	if err := os.WriteFile(path, []byte("rules: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.Reload(); err == nil {
		t.Error("expected reload error for empty rule list")
	}
	if !p.Current().ClassifyLine("PANIC")[model.CategoryError] {
		t.Error("previous rules should survive a failed reload")
	}
}
