package fluent

import "sync"

// memoizer caches constructed locale formatters keyed by value kind, locale,
// and option set. Lookups take the read lock only. Construction runs outside
// any lock so a slow build never blocks readers of other keys; when two
// goroutines race to build the same key, the first stored result wins and the
// loser's instance is discarded, so every later lookup sees one instance.
type memoizer struct {
	mu      sync.RWMutex
	entries map[string]any
}

func newMemoizer() *memoizer {
	return &memoizer{entries: make(map[string]any)}
}

func (m *memoizer) get(key string, build func() any) any {
	m.mu.RLock()
	v, ok := m.entries[key]
	m.mu.RUnlock()
	if ok {
		return v
	}
	built := build()
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.entries[key]; ok {
		return v
	}
	m.entries[key] = built
	return built
}

func (m *memoizer) size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
