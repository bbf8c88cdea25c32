package i18n

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
)

type PluralCategory string

const (
	PluralZero  PluralCategory = "zero"
	PluralOne   PluralCategory = "one"
	PluralTwo   PluralCategory = "two"
	PluralFew   PluralCategory = "few"
	PluralMany  PluralCategory = "many"
	PluralOther PluralCategory = "other"
)

var pluralCategories = []PluralCategory{
	PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther,
}

var exactLabelPattern = regexp.MustCompile(`^=\d+$`)

// IsPluralCategory reports whether label names a CLDR plural category.
func IsPluralCategory(label string) bool {
	for _, category := range pluralCategories {
		if string(category) == label {
			return true
		}
	}
	return false
}

// IsExactLabel reports whether label is an exact-match case such as "=0".
func IsExactLabel(label string) bool {
	return exactLabelPattern.MatchString(label)
}

// Catalogs holds resolved translations keyed by locale and message id.
// This is the shape accepted by Runtime.Load.
type Catalogs map[string]map[string]string

// Clone returns a deep copy.
func (c Catalogs) Clone() Catalogs {
	if c == nil {
		return nil
	}
	out := make(Catalogs, len(c))
	for locale, messages := range c {
		copied := make(map[string]string, len(messages))
		for id, text := range messages {
			copied[id] = text
		}
		out[locale] = copied
	}
	return out
}

// SourceLocation points at the file and line a message was extracted from.
// It serialises as a two element array: ["file", line].
type SourceLocation struct {
	File string
	Line int
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

func (l SourceLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{l.File, l.Line})
}

func (l *SourceLocation) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("i18n: origin must have 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &l.File); err != nil {
		return fmt.Errorf("i18n: origin file: %w", err)
	}
	if err := json.Unmarshal(raw[1], &l.Line); err != nil {
		return fmt.Errorf("i18n: origin line: %w", err)
	}
	return nil
}

// CatalogEntry is the per-locale record kept for one message.
// Defaults is only set for messages with an explicit identifier.
type CatalogEntry struct {
	Defaults    string           `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Translation string           `json:"translation" yaml:"translation"`
	Origin      []SourceLocation `json:"origin" yaml:"-"`
	Obsolete    bool             `json:"obsolete,omitempty" yaml:"obsolete,omitempty"`
}

// MarshalJSON always writes origin as a list.
func (e CatalogEntry) MarshalJSON() ([]byte, error) {
	type entry CatalogEntry
	if e.Origin == nil {
		e.Origin = []SourceLocation{}
	}
	return json.Marshal(entry(e))
}

func (e CatalogEntry) Clone() CatalogEntry {
	out := e
	if len(e.Origin) > 0 {
		out.Origin = append([]SourceLocation(nil), e.Origin...)
	}
	return out
}

// LocaleCatalog maps message ids to their entries for one locale.
type LocaleCatalog map[string]CatalogEntry

// Catalog maps locales to their catalogs. A nil LocaleCatalog marks a
// known locale that was never extracted before.
type Catalog map[string]LocaleCatalog

// Locales returns the catalog locales in sorted order.
func (c Catalog) Locales() []string {
	locales := make([]string, 0, len(c))
	for locale := range c {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// Translations flattens the catalog into runtime translations. Empty and
// obsolete entries are left out so the runtime falls back to defaults.
func (c Catalog) Translations() Catalogs {
	out := make(Catalogs, len(c))
	for locale, entries := range c {
		messages := make(map[string]string, len(entries))
		for id, entry := range entries {
			if entry.Obsolete || entry.Translation == "" {
				continue
			}
			messages[id] = entry.Translation
		}
		out[locale] = messages
	}
	return out
}

// NextEntry is a freshly extracted message before reconciliation.
type NextEntry struct {
	Defaults string
	Origin   []SourceLocation
}

// NextCatalog is the language-agnostic result of one extraction run.
type NextCatalog map[string]NextEntry

// IDs returns the message ids in sorted order.
func (c NextCatalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
