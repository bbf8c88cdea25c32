package i18n

import (
	"bytes"
	"errors"
	"testing"
	"text/template"
)

func TestTemplateHelpersTranslateInferredLocale(t *testing.T) {
	rt := NewRuntime("en")
	rt.Load(Catalogs{
		"en": {"home.title": "Welcome"},
		"cs": {"home.title": "Vítejte"},
	})

	helpers := TemplateHelpers(rt, HelperConfig{LocaleKey: "current_locale"})

	translate, ok := helpers["t"].(func(any, string, ...any) string)
	if !ok {
		t.Fatalf("t helper signature mismatch: %T", helpers["t"])
	}

	ctx := map[string]any{"current_locale": "cs"}
	if got := translate(ctx, "home.title"); got != "Vítejte" {
		t.Fatalf("translate inferred locale = %q", got)
	}
	if got := translate("en", "home.title"); got != "Welcome" {
		t.Fatalf("translate explicit locale = %q", got)
	}
	if got := translate(nil, "home.title"); got != "Welcome" {
		t.Fatalf("translate runtime locale = %q", got)
	}
	if rt.Language() != "en" {
		t.Fatalf("helpers changed runtime language to %q", rt.Language())
	}
}

func TestTemplateHelpersMissingTranslationHandler(t *testing.T) {
	rt := NewRuntime("en")

	var called bool
	onMissing := func(locale, id string, err error) string {
		called = true
		if locale != "en" {
			t.Fatalf("expected locale en, got %q", locale)
		}
		if !errors.Is(err, ErrMissingTranslation) {
			t.Fatalf("unexpected error: %v", err)
		}
		return "[missing:" + id + "]"
	}

	helpers := TemplateHelpers(rt, HelperConfig{OnMissing: onMissing})
	translate := helpers["t"].(func(any, string, ...any) string)

	if got := translate(map[string]any{"locale": "en"}, "unknown"); got != "[missing:unknown]" {
		t.Fatalf("translate missing = %q", got)
	}
	if !called {
		t.Fatal("expected missing handler invocation")
	}
}

func TestTemplateHelpersCurrentLocaleHelper(t *testing.T) {
	helpers := TemplateHelpers(nil, HelperConfig{LocaleKey: "locale"})

	currentLocale := helpers["current_locale"].(func(any) string)

	if got := currentLocale(map[string]string{"locale": "es"}); got != "es" {
		t.Fatalf("current_locale helper = %q", got)
	}
	if got := currentLocale("fr"); got != "fr" {
		t.Fatalf("current_locale fallback string = %q", got)
	}

	translate := helpers["t"].(func(any, string, ...any) string)
	if got := translate("", "foo"); got != "foo" {
		t.Fatalf("translate without runtime = %q", got)
	}
}

func TestTemplateHelpersRender(t *testing.T) {
	rt := NewRuntime("en",
		WithRuntimeFormatters(NewFormatterRegistry(WithPlainFormatters())),
		WithRuntimeStyles(map[string]Style{"pct": {"style": "percent"}}),
	)
	rt.Load(Catalogs{
		"cs": {"cart.items": "{count, plural, one {# položka} few {# položky} other {# položek}}"},
	})

	tmpl := template.Must(template.New("cart").Funcs(TemplateHelpers(rt, HelperConfig{})).Parse(
		`{{ t .Locale "cart.items" "count" .Count }} / {{ plural_form .Locale .Count }} / {{ format_number .Locale .Ratio "pct" }}`,
	))

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, map[string]any{"Locale": "cs", "Count": 3, "Ratio": 0.25})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := buf.String(); got != "3 položky / few / 25%" {
		t.Fatalf("rendered %q", got)
	}
}

func TestTemplateParams(t *testing.T) {
	params := templateParams([]any{"name", "Ann", 1, "one", "dangling"})
	if params["name"] != "Ann" || params["1"] != "one" || len(params) != 2 {
		t.Fatalf("templateParams pairs = %v", params)
	}

	single := templateParams([]any{map[string]any{"n": 2}})
	if single["n"] != 2 {
		t.Fatalf("templateParams map = %v", single)
	}

	if templateParams(nil) != nil {
		t.Fatal("expected nil params")
	}
}
