package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   []Analyzer
)

// Register adds an analyzer to the global registry.
func Register(a Analyzer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, a)
}

// All returns all registered analyzers sorted by ID.
func All() []Analyzer {
	registryMu.RLock()
	all := append([]Analyzer(nil), registry...)
	registryMu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].ID() < all[j].ID()
	})
	return all
}

// ByID returns the registered analyzer with the given ID, or nil.
func ByID(id string) Analyzer {
	for _, a := range All() {
		if a.ID() == id {
			return a
		}
	}
	return nil
}

// Lookup searches by analyzer ID (case-insensitive) or by name.
func Lookup(query string) (Analyzer, bool) {
	for _, a := range All() {
		if matches(a, query) {
			return a, true
		}
	}
	return nil, false
}

// Resolve resolves user-selected analyzer names/IDs.
// Empty names returns every registered analyzer.
func Resolve(names []string) ([]Analyzer, error) {
	if len(names) == 0 {
		return All(), nil
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]Analyzer, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		a, ok := Lookup(name)
		if !ok {
			return nil, unknownAnalyzerErr(name)
		}

		if _, exists := seen[a.ID()]; exists {
			continue
		}
		seen[a.ID()] = struct{}{}
		out = append(out, a)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no analyzers selected")
	}
	return out, nil
}

// SplitList parses comma-separated names.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Reset clears the registry. Used for testing.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = nil
}

func matches(a Analyzer, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return false
	}
	return strings.EqualFold(a.ID(), q) || a.Name() == strings.ToLower(q)
}

func unknownAnalyzerErr(name string) error {
	return fmt.Errorf(
		"unknown analyzer %q (available: %s)",
		name,
		strings.Join(availableNames(), ", "),
	)
}

func availableNames() []string {
	all := All()
	names := make([]string, 0, len(all))
	for _, a := range all {
		names = append(names, a.Name())
	}
	sort.Strings(names)
	return names
}
