package analysis

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// LexiconCategory is one bias category: a severity tag and its trigger
// phrases.
type LexiconCategory struct {
	Severity string   `yaml:"severity"`
	Phrases  []string `yaml:"phrases"`
}

// Lexicon maps bias category names to their trigger phrases. Categories are
// independent signals; the same text span may flag in several of them.
type Lexicon struct {
	Categories map[string]LexiconCategory `yaml:"categories"`
}

// DefaultLexicon returns the built-in phrase lists used when no lexicon file
// is configured.
func DefaultLexicon() Lexicon {
	return Lexicon{Categories: map[string]LexiconCategory{
		"political_left": {
			Severity: "high",
			Phrases:  []string{"radical left", "socialist agenda", "woke mob", "comrade"},
		},
		"political_right": {
			Severity: "high",
			Phrases:  []string{"radical right", "fascist", "bootlicker", "maga"},
		},
		"absolutist": {
			Severity: "low",
			Phrases:  []string{"always", "never", "everyone", "nobody", "undeniably"},
		},
		"aggressive": {
			Severity: "medium",
			Phrases:  []string{"stupid", "idiot", "shut up", "disgusting", "traitor"},
		},
	}}
}

// LoadLexicon reads a lexicon YAML file. An empty path returns the built-in
// default.
func LoadLexicon(path string) (Lexicon, error) {
	if path == "" {
		return DefaultLexicon(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon: %w", err)
	}
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon: %w", err)
	}
	if len(lex.Categories) == 0 {
		return Lexicon{}, fmt.Errorf("lexicon %s defines no categories", path)
	}
	for name, cat := range lex.Categories {
		if len(cat.Phrases) == 0 {
			return Lexicon{}, fmt.Errorf("lexicon category %q has no phrases", name)
		}
	}
	return lex, nil
}

// categoryNames returns the category names in a stable order so scans are
// deterministic across runs.
func (lx Lexicon) categoryNames() []string {
	names := make([]string, 0, len(lx.Categories))
	for name := range lx.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
