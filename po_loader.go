package i18n

import (
	"fmt"
	"os"
	"sort"

	"github.com/leonelquinteros/gotext"
)

// POLoader imports gettext catalogs. Each file holds one locale; msgid is
// the message id and the first msgstr its translation. Plural msgstr forms
// are ignored since patterns carry their own plural cases.
type POLoader struct {
	files map[string]string
}

var _ Loader = (*POLoader)(nil)

// NewPOLoader maps locales to .po file paths.
func NewPOLoader(files map[string]string) *POLoader {
	copied := make(map[string]string, len(files))
	for locale, path := range files {
		copied[locale] = path
	}
	return &POLoader{files: copied}
}

func (l *POLoader) Load() (Catalogs, error) {
	if l == nil || len(l.files) == 0 {
		return nil, ErrNoLoaderPaths
	}

	locales := make([]string, 0, len(l.files))
	for locale := range l.files {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	catalogs := make(Catalogs, len(locales))
	for _, locale := range locales {
		path := l.files[locale]
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", path, err)
		}

		po := gotext.NewPo()
		po.Parse(data)

		messages := make(map[string]string)
		for id, tr := range po.GetDomain().GetTranslations() {
			if id == "" || tr == nil {
				continue
			}
			if text := tr.Trs[0]; text != "" {
				messages[id] = text
			}
		}
		catalogs[normalizeLocale(locale)] = messages

		Logger.Debug().
			Str("locale", locale).
			Str("file", path).
			Int("messages", len(messages)).
			Msg("Loaded PO catalog")
	}

	return catalogs, nil
}
