package i18n

import "sort"

// MergeOptions tune how CatalogMerger treats existing translations.
type MergeOptions struct {
	// Overwrite resets source locale translations to the new defaults (or
	// the id). Other locales are never touched.
	Overwrite bool
	// FollowDefaults lets a source locale translation that still equals its
	// previous defaults track changed defaults without Overwrite.
	FollowDefaults bool
}

// Merge reconciles the next catalog with the previous per-locale catalogs.
//
// The locale set is the key set of prev; a nil catalog marks a locale that
// was never extracted. Every id of next gets an entry in every locale; ids
// only present in prev are carried over as obsolete. Merge performs no I/O
// and does not modify its inputs.
func Merge(prev Catalog, next NextCatalog, sourceLocale string, opts MergeOptions) Catalog {
	result := make(Catalog, len(prev))

	for locale, entries := range prev {
		merged := make(LocaleCatalog, len(next)+len(entries))

		for id, nextEntry := range next {
			previous, exists := entries[id]

			entry := CatalogEntry{
				Defaults: nextEntry.Defaults,
				Origin:   append(make([]SourceLocation, 0, len(nextEntry.Origin)), nextEntry.Origin...),
			}

			if locale == sourceLocale {
				entry.Translation = sourceTranslation(id, nextEntry, previous, exists, opts)
			} else if exists {
				entry.Translation = previous.Translation
			}

			merged[id] = entry
		}

		for id, entry := range entries {
			if _, ok := next[id]; ok {
				continue
			}
			obsolete := entry.Clone()
			obsolete.Obsolete = true
			merged[id] = obsolete
		}

		result[locale] = merged
	}

	return result
}

func sourceTranslation(id string, next NextEntry, prev CatalogEntry, exists bool, opts MergeOptions) string {
	seed := next.Defaults
	if seed == "" {
		seed = id
	}

	switch {
	case !exists, opts.Overwrite, prev.Translation == "":
		return seed
	case opts.FollowDefaults && prev.Defaults != "" && prev.Translation == prev.Defaults:
		return seed
	default:
		return prev.Translation
	}
}

// CatalogStats summarises one locale catalog.
type CatalogStats struct {
	All      int
	Missing  int
	Obsolete int
}

// Stats counts entries per locale. Obsolete entries are not counted as
// missing.
func (c Catalog) Stats() map[string]CatalogStats {
	stats := make(map[string]CatalogStats, len(c))
	for locale, entries := range c {
		var s CatalogStats
		for _, entry := range entries {
			if entry.Obsolete {
				s.Obsolete++
				continue
			}
			s.All++
			if entry.Translation == "" {
				s.Missing++
			}
		}
		stats[locale] = s
	}
	return stats
}

// Clean returns a copy of c without obsolete entries.
func (c Catalog) Clean() Catalog {
	out := make(Catalog, len(c))
	for locale, entries := range c {
		if entries == nil {
			out[locale] = nil
			continue
		}
		cleaned := make(LocaleCatalog, len(entries))
		for id, entry := range entries {
			if entry.Obsolete {
				continue
			}
			cleaned[id] = entry.Clone()
		}
		out[locale] = cleaned
	}
	return out
}

// ObsoleteIDs lists the obsolete ids of a locale in sorted order.
func (c Catalog) ObsoleteIDs(locale string) []string {
	var ids []string
	for id, entry := range c[locale] {
		if entry.Obsolete {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
