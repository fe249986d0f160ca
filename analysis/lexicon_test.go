package analysis

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLexicon(t *testing.T) {
	lex := DefaultLexicon()
	for _, cat := range []string{"political_left", "political_right", "absolutist", "aggressive"} {
		c, ok := lex.Categories[cat]
		if !ok {
			t.Errorf("default lexicon missing category %q", cat)
			continue
		}
		if len(c.Phrases) == 0 {
			t.Errorf("category %q has no phrases", cat)
		}
		if c.Severity == "" {
			t.Errorf("category %q has no severity", cat)
		}
	}
}

func TestLoadLexicon_EmptyPathUsesDefault(t *testing.T) {
	lex, err := LoadLexicon("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lex.Categories) != 4 {
		t.Errorf("got %d categories, want the 4 defaults", len(lex.Categories))
	}
}

func TestLoadLexicon_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := `categories:
  loaded_terms:
    severity: medium
    phrases:
      - buzzword
      - synergy
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cat, ok := lex.Categories["loaded_terms"]
	if !ok {
		t.Fatal("loaded lexicon missing category loaded_terms")
	}
	if cat.Severity != "medium" || len(cat.Phrases) != 2 {
		t.Errorf("category = %+v, want medium severity and 2 phrases", cat)
	}

	got := MatchBias(lex, "All synergy, no substance.", nil, 0)
	if got.Score != 10 {
		t.Errorf("score = %d, want 10", got.Score)
	}
}

func TestLoadLexicon_Invalid(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("categories: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLexicon(empty); err == nil {
		t.Error("expected error for lexicon with no categories")
	}

	noPhrases := filepath.Join(dir, "nophrases.yaml")
	if err := os.WriteFile(noPhrases, []byte("categories:\n  x:\n    severity: low\n    phrases: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLexicon(noPhrases); err == nil {
		t.Error("expected error for category without phrases")
	}

	if _, err := LoadLexicon(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
