package i18n

import (
	"sort"
	"sync"
)

// Store exposes read access to resolved translations.
type Store interface {
	// Get returns the translation for locale/id and ok=false if missing
	Get(locale, id string) (string, bool)
	// Locales returns the list of locales known to the store
	Locales() []string
}

// Loader retrieves the translations used to seed a runtime.
type Loader interface {
	Load() (Catalogs, error)
}

// LoaderFunc adapters allow bare functions to implement Loader interface
type LoaderFunc func() (Catalogs, error)

// Load implements Loader for LoaderFunc
func (fn LoaderFunc) Load() (Catalogs, error) {
	return fn()
}

// MemoryStore is the catalog map shared by a runtime and every view created
// with Runtime.Use. Writes merge into it and never replace a locale.
type MemoryStore struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore copies data into a new store.
func NewMemoryStore(data Catalogs) *MemoryStore {
	s := &MemoryStore{messages: make(map[string]map[string]string, len(data))}
	s.Merge(data)
	return s
}

// NewMemoryStoreFromLoader hydrates a store using the provided loader
func NewMemoryStoreFromLoader(loader Loader) (*MemoryStore, error) {
	if loader == nil {
		return NewMemoryStore(nil), nil
	}

	catalogs, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(catalogs), nil
}

// Merge deep-merges data per locale. Existing ids are overwritten, other
// ids are kept.
func (s *MemoryStore) Merge(data Catalogs) {
	if s == nil || len(data) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for locale, messages := range data {
		locale = normalizeLocale(locale)
		if locale == "" {
			continue
		}
		target := s.messages[locale]
		if target == nil {
			target = make(map[string]string, len(messages))
			s.messages[locale] = target
		}
		for id, text := range messages {
			target[id] = text
		}
	}
}

// Get returns the translation for locale/id
func (s *MemoryStore) Get(locale, id string) (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[normalizeLocale(locale)]
	if !ok {
		return "", false
	}
	text, ok := messages[id]
	return text, ok
}

// Locales returns a sorted slice with all locale codes
func (s *MemoryStore) Locales() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.messages))
	for locale := range s.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns a deep copy of the stored catalogs.
func (s *MemoryStore) Snapshot() Catalogs {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Catalogs(s.messages).Clone()
}
