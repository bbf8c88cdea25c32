package i18n

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CatalogFileName is the file holding one locale catalog inside
// <dir>/<locale>/.
const CatalogFileName = "messages.json"

// CatalogPath returns the file path of the locale catalog under dir.
func CatalogPath(dir, locale string) string {
	return filepath.Join(dir, locale, CatalogFileName)
}

// ReadCatalog reads the catalogs of locales from dir. A locale without a
// catalog file maps to nil: known, never extracted.
func ReadCatalog(dir string, locales []string) (Catalog, error) {
	catalog := make(Catalog, len(locales))
	for _, locale := range locales {
		path := CatalogPath(dir, locale)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			catalog[locale] = nil
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", path, err)
		}

		entries := LocaleCatalog{}
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &entries); err != nil {
				return nil, fmt.Errorf("i18n: decode %s: %w", path, err)
			}
		}
		catalog[locale] = entries
	}
	return catalog, nil
}

type WriteOptions struct {
	// Clean drops obsolete entries before writing.
	Clean bool
}

// WriteCatalog writes one file per locale. Locales mapped to nil are
// written as empty catalogs.
func WriteCatalog(dir string, catalog Catalog, opts WriteOptions) error {
	if opts.Clean {
		catalog = catalog.Clean()
	}

	for _, locale := range catalog.Locales() {
		entries := catalog[locale]
		if entries == nil {
			entries = LocaleCatalog{}
		}

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("i18n: encode %s: %w", locale, err)
		}
		data = append(data, '\n')

		path := CatalogPath(dir, locale)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("i18n: create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("i18n: write %s: %w", path, err)
		}
	}
	return nil
}

// CatalogLoader loads the translations of extracted catalogs, skipping
// obsolete and untranslated entries.
type CatalogLoader struct {
	Dir     string
	Locales []string
}

var _ Loader = CatalogLoader{}

func (l CatalogLoader) Load() (Catalogs, error) {
	if l.Dir == "" {
		return nil, ErrNoLoaderPaths
	}
	catalog, err := ReadCatalog(l.Dir, l.Locales)
	if err != nil {
		return nil, err
	}
	return catalog.Translations(), nil
}
