package i18n

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale maps "cs_CZ " to "cs-CZ". Catalog keys, plural rule sets
// and fallback chains are all stored under the normalized form.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// normalizeLocales returns the sorted, distinct, non-empty normalized
// locales.
func normalizeLocales(locales []string) []string {
	out := make([]string, 0, len(locales))
	for _, locale := range locales {
		if locale = normalizeLocale(locale); locale != "" {
			out = append(out, locale)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// localeAncestors lists the locales a lookup for locale falls back to,
// nearest first. Parseable tags follow the CLDR parent chain, so es-MX
// yields es-419 then es. Anything else is trimmed one subtag at a time.
func localeAncestors(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}

	var chain []string
	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			value := parent.String()
			if value == "" || value == "und" || slices.Contains(chain, value) {
				break
			}
			chain = append(chain, value)
		}
		return chain
	}

	for i := strings.LastIndexByte(locale, '-'); i > 0; i = strings.LastIndexByte(locale, '-') {
		locale = locale[:i]
		chain = append(chain, locale)
	}
	return chain
}
