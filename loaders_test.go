package i18n

import (
	"errors"
	"testing"
)

const loaderEN = `{
  "en": {
    "home.title": "Welcome",
    "home.greeting": {"translation": "Hello {name}", "origin": [["app/home.go", 4]]}
  }
}`

const loaderES = `
es:
  home.title: Bienvenido
  cart.items: "{count, plural, one {# artículo} other {# artículos}}"
`

func TestFileLoaderJSONAndYAML(t *testing.T) {
	loader := NewFileLoader(writeFile(t, "en.json", loaderEN), writeFile(t, "es.yaml", loaderES))

	catalogs, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(catalogs) != 2 {
		t.Fatalf("expected 2 locales, got %d", len(catalogs))
	}
	if catalogs["es"]["home.title"] != "Bienvenido" {
		t.Fatalf("unexpected translation for es: %v", catalogs["es"]["home.title"])
	}
	if catalogs["en"]["home.greeting"] != "Hello {name}" {
		t.Fatalf("unexpected translation for en: %v", catalogs["en"]["home.greeting"])
	}
}

func TestFileLoaderLaterFilesOverride(t *testing.T) {
	loader := NewFileLoader(
		writeFile(t, "a.json", `{"en": {"a": "first", "b": "kept"}}`),
		writeFile(t, "b.yml", "en:\n  a: second\n"),
	)

	catalogs, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if catalogs["en"]["a"] != "second" || catalogs["en"]["b"] != "kept" {
		t.Fatalf("unexpected merge result %v", catalogs["en"])
	}
}

func TestFileLoaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		loader *FileLoader
	}{
		{name: "unsupported extension", loader: NewFileLoader(writeFile(t, "en.txt", "x"))},
		{name: "missing file", loader: NewFileLoader("does/not/exist.json")},
		{name: "empty file", loader: NewFileLoader(writeFile(t, "empty.json", "{}"))},
		{name: "bad value", loader: NewFileLoader(writeFile(t, "bad.json", `{"en": {"a": 3}}`))},
		{name: "record without translation", loader: NewFileLoader(writeFile(t, "bad.json", `{"en": {"a": {"defaults": "A"}}}`))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.loader.Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := NewFileLoader().Load(); !errors.Is(err, ErrNoLoaderPaths) {
		t.Fatalf("expected ErrNoLoaderPaths, got %v", err)
	}
}

func TestFileLoaderIntegration(t *testing.T) {
	loader := NewFileLoader(writeFile(t, "en.json", loaderEN), writeFile(t, "es.yaml", loaderES))

	cfg, err := NewConfig(
		WithLoader(loader),
		WithDefaultLocale("en"),
		WithFallback("fr", "en"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	rt, err := cfg.BuildRuntime()
	if err != nil {
		t.Fatalf("BuildRuntime: %v", err)
	}

	if got := rt.Use("es").T("cart.items", Params{"count": 2}); got != "2 artículos" {
		t.Fatalf("Translate es/cart.items = %q", got)
	}
	if got := rt.Use("fr").T("home.greeting", Params{"name": "Carlos"}); got != "Hello Carlos" {
		t.Fatalf("Translate fallback = %q", got)
	}
}
