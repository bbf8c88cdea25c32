package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	jsonpatch "github.com/evanphx/json-patch"

	i18n "github.com/goliatone/go-i18n-icu"
)

// writeStats prints one row per locale. The source locale has no missing
// column since its translations are seeded.
func writeStats(out io.Writer, stats map[string]i18n.CatalogStats, locales []string, source string) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Locale\tTotal\tMissing\tObsolete")
	for _, locale := range locales {
		s := stats[locale]
		name, missing := locale, fmt.Sprint(s.Missing)
		if locale == source {
			name, missing = locale+" (source)", "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", name, s.All, missing, s.Obsolete)
	}
	return tw.Flush()
}

// writeDiff prints an RFC 7386 merge patch from the catalog on disk to the
// merged one for every locale that changed.
func writeDiff(out io.Writer, prev, next i18n.Catalog, clean bool) error {
	if clean {
		next = next.Clean()
	}
	for _, locale := range next.Locales() {
		patch, err := localePatch(prev[locale], next[locale])
		if err != nil {
			return fmt.Errorf("diff %s: %w", locale, err)
		}
		if patch == nil {
			continue
		}
		fmt.Fprintf(out, "%s:\n%s\n", i18n.CatalogPath("", locale), patch)
	}
	return nil
}

// localePatch returns nil when both catalogs encode the same document.
func localePatch(prev, next i18n.LocaleCatalog) ([]byte, error) {
	if prev == nil {
		prev = i18n.LocaleCatalog{}
	}
	if next == nil {
		next = i18n.LocaleCatalog{}
	}
	original, err := json.Marshal(prev)
	if err != nil {
		return nil, err
	}
	modified, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}

	patch, err := jsonpatch.CreateMergePatch(original, modified)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(bytes.TrimSpace(patch), []byte("{}")) {
		return nil, nil
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, patch, "", "  "); err != nil {
		return patch, nil
	}
	return indented.Bytes(), nil
}
