package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	i18n "github.com/goliatone/go-i18n-icu"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFlagsConfigAndOverrides(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "i18n.yaml", `
locales: [en, cs]
sourceLocale: en
catalogDir: locales
concurrency: 4
followDefaults: true
go:
  patterns: [./...]
markup:
  root: msg
  globs: ["views/*.html"]
log:
  level: warn
`)

	cfg, err := parseFlags([]string{
		"-config", config,
		"-out", "i18n",
		"-concurrency", "2",
		"-follow-defaults=false",
		"-locale", "de,fr", "-locale", "en",
		"-source", "fr",
		"-clean",
		"./cmd/...",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"de", "fr", "en"}, cfg.Locales)
	assert.Equal(t, "fr", cfg.SourceLocale)
	assert.Equal(t, "i18n", cfg.CatalogDir)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.False(t, cfg.FollowDefaults)
	assert.Equal(t, []string{"./cmd/..."}, cfg.Go.Patterns)
	assert.Equal(t, "msg", cfg.Markup.Root)
	assert.Equal(t, []string{"views/*.html"}, cfg.Markup.Globs)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.clean)
	assert.False(t, cfg.overwrite)
}

func TestParseFlagsWithoutConfigFile(t *testing.T) {
	cfg, err := parseFlags([]string{"-config", filepath.Join(t.TempDir(), "none.yaml"), "-locale", "en"})
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.SourceLocale)
	assert.Equal(t, "locales", cfg.CatalogDir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParseFlagsErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "none.yaml")

	_, err := parseFlags([]string{"-config", missing})
	assert.ErrorContains(t, err, "at least one locale")

	_, err = parseFlags([]string{"-config", missing, "-locale", "en", "-source", "cs"})
	assert.ErrorContains(t, err, `source locale "cs"`)

	_, err = parseFlags([]string{"-config", writeFile(t, dir, "bad.yaml", "locales: [en")})
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = parseFlags([]string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "home.html", `<trans>Welcome</trans>
<trans id="cart.count"><plural value="{count}" one="# item" other="# items"/></trans>`)

	cfg := defaultConfig()
	cfg.Locales = []string{"en", "cs"}
	cfg.SourceLocale = "en"
	cfg.CatalogDir = filepath.Join(dir, "locales")
	cfg.Markup.Globs = []string{filepath.Join(dir, "*.html")}
	cfg.diff = true
	cfg.metrics = filepath.Join(dir, "i18n.prom")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &out))

	catalog, err := i18n.ReadCatalog(cfg.CatalogDir, cfg.Locales)
	require.NoError(t, err)
	assert.Equal(t, "Welcome", catalog["en"]["Welcome"].Translation)
	assert.Equal(t, "{count, plural, one {# item} other {# items}}", catalog["en"]["cart.count"].Translation)
	assert.Equal(t, "", catalog["cs"]["Welcome"].Translation)

	assert.Contains(t, out.String(), "en (source)")
	assert.Contains(t, out.String(), "cs/messages.json:")
	assert.FileExists(t, cfg.metrics)

	// A second run over unchanged sources produces no diff.
	out.Reset()
	require.NoError(t, run(context.Background(), cfg, &out))
	assert.NotContains(t, out.String(), "messages.json:")

	writeFile(t, dir, "broken.html", `<trans><select other="x"/></trans>`)
	err = run(context.Background(), cfg, &out)
	assert.ErrorContains(t, err, "1 source units had invalid messages")
}

func TestRunWithoutSources(t *testing.T) {
	cfg := defaultConfig()
	cfg.Locales = []string{"en"}
	cfg.SourceLocale = "en"
	cfg.CatalogDir = t.TempDir()

	err := run(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorContains(t, err, "nothing to extract")
}

func TestWriteStats(t *testing.T) {
	var out bytes.Buffer
	stats := map[string]i18n.CatalogStats{
		"en": {All: 3, Obsolete: 1},
		"cs": {All: 3, Missing: 2},
	}
	require.NoError(t, writeStats(&out, stats, []string{"cs", "en"}, "en"))

	assert.Equal(t, "Locale       Total  Missing  Obsolete\n"+
		"cs           3      2        0\n"+
		"en (source)  3      -        1\n", out.String())
}

func TestLocalePatch(t *testing.T) {
	prev := i18n.LocaleCatalog{"a": {Translation: "A"}}

	patch, err := localePatch(prev, prev)
	require.NoError(t, err)
	assert.Nil(t, patch)

	patch, err = localePatch(nil, prev)
	require.NoError(t, err)
	assert.Contains(t, string(patch), `"translation": "A"`)

	patch, err = localePatch(prev, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": null}`, string(patch))
}
