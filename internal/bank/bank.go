// Package bank provides the static fallback question bank. The bank is
// loaded once from an embedded JSON file and is immutable afterwards, so
// it is safe for unsynchronized concurrent reads across sessions.
package bank

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abs6187/talentscout/internal/model"
)

//go:embed questions.json
var bankFS embed.FS

// Entry is one bank question for a (focus area, tier) pair.
type Entry struct {
	Focus string     `json:"focus"`
	Tier  model.Tier `json:"tier"`
	Text  string     `json:"text"`
}

// Bank is an immutable collection of fallback questions.
type Bank struct {
	entries []Entry
}

// Load parses the embedded question bank.
func Load() (*Bank, error) {
	data, err := bankFS.ReadFile("questions.json")
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	return &Bank{entries: entries}, nil
}

// Find returns the bank questions for the given focus area at the given
// tier. Focus keys match on a shared prefix in either direction
// ("python" matches "python3", "golang" matches "go"), mirroring how
// candidates write tech-stack entries.
func (b *Bank) Find(focus string, tier model.Tier) []Entry {
	focus = strings.ToLower(strings.TrimSpace(focus))
	var out []Entry
	for _, e := range b.entries {
		if e.Tier != tier {
			continue
		}
		if focusMatches(e.Focus, focus) {
			out = append(out, e)
		}
	}
	return out
}

func focusMatches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// Len returns the total number of bank entries.
func (b *Bank) Len() int {
	return len(b.entries)
}
