package glossary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	langpkg "subtext/internal/language"
)

// Store holds the terminology dictionary for one (sourceLang, targetLang)
// pair. Entries are keyed case-insensitively on the lowercased source term.
// The backing JSON file is read once at construction and rewritten wholesale
// on every mutation, guarded by a file lock so concurrent invocations cannot
// interleave writes.
type Store struct {
	dir        string
	sourceLang string
	targetLang string
	path       string
	entries    map[string]string
}

// Open loads (or initializes) the dictionary for a language pair.
func Open(dir, sourceLang, targetLang string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("glossary: directory required")
	}
	store := &Store{
		dir:        dir,
		sourceLang: langpkg.Normalize(sourceLang),
		targetLang: langpkg.Normalize(targetLang),
		entries:    map[string]string{},
	}
	store.path = filepath.Join(dir, fmt.Sprintf("glossary_%s_%s.json", store.sourceLang, store.targetLang))

	data, err := os.ReadFile(store.path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("glossary: read %s: %w", store.path, err)
	}
	if err := json.Unmarshal(data, &store.entries); err != nil {
		return nil, fmt.Errorf("glossary: parse %s: %w", store.path, err)
	}
	return store, nil
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Entries returns a copy of the dictionary.
func (s *Store) Entries() map[string]string {
	out := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Terms returns the source terms in sorted order for stable listings and
// prompts.
func (s *Store) Terms() []string {
	terms := make([]string, 0, len(s.entries))
	for term := range s.entries {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Lookup returns the target term for a source term, if present.
func (s *Store) Lookup(sourceTerm string) (string, bool) {
	target, ok := s.entries[strings.ToLower(strings.TrimSpace(sourceTerm))]
	return target, ok
}

// Add inserts or replaces one entry and persists the dictionary.
func (s *Store) Add(sourceTerm, targetTerm string) error {
	sourceTerm = strings.ToLower(strings.TrimSpace(sourceTerm))
	targetTerm = strings.TrimSpace(targetTerm)
	if sourceTerm == "" || targetTerm == "" {
		return fmt.Errorf("glossary: source and target terms required")
	}
	s.entries[sourceTerm] = targetTerm
	return s.persist()
}

// Remove deletes one entry and persists the dictionary. Reports whether the
// term was present.
func (s *Store) Remove(sourceTerm string) (bool, error) {
	sourceTerm = strings.ToLower(strings.TrimSpace(sourceTerm))
	if _, ok := s.entries[sourceTerm]; !ok {
		return false, nil
	}
	delete(s.entries, sourceTerm)
	return true, s.persist()
}

// Import merges entries from another JSON object file, returning the number
// of terms added or replaced.
func (s *Store) Import(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("glossary: read import file: %w", err)
	}
	var imported map[string]string
	if err := json.Unmarshal(data, &imported); err != nil {
		return 0, fmt.Errorf("glossary: parse import file: %w", err)
	}
	count := 0
	for source, target := range imported {
		source = strings.ToLower(strings.TrimSpace(source))
		target = strings.TrimSpace(target)
		if source == "" || target == "" {
			continue
		}
		s.entries[source] = target
		count++
	}
	if count == 0 {
		return 0, nil
	}
	return count, s.persist()
}

func (s *Store) persist() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("glossary: ensure directory: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("glossary: lock %s: %w", s.path, err)
	}
	defer lock.Unlock()

	encoded, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("glossary: encode: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o644); err != nil {
		return fmt.Errorf("glossary: write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("glossary: replace %s: %w", s.path, err)
	}
	return nil
}
