package i18n

import (
	"testing"
	"time"
)

// TestXTextProvider_DataDriven_DateFormatting validates that date styles
// render through the locale patterns
func TestXTextProvider_DataDriven_DateFormatting(t *testing.T) {
	date := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		locale   string
		style    Style
		expected string
	}{
		{locale: "es", style: Style{"style": "long"}, expected: "7 de octubre de 2025"},
		{locale: "es-MX", style: Style{"style": "long"}, expected: "7 de octubre de 2025"},
		{locale: "en", style: Style{"style": "long"}, expected: "October 7, 2025"},
		{locale: "en", style: Style{"style": "medium"}, expected: "Oct 7, 2025"},
		{locale: "en", style: nil, expected: "10/7/2025"},
		{locale: "cs", style: Style{"dateStyle": "short"}, expected: "7.10.2025"},
		{locale: "cs", style: Style{"month": "long"}, expected: "7. října 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+dateStyleName(tt.style), func(t *testing.T) {
			provider := newXTextProvider(tt.locale, NewFormattingRulesProvider(nil, nil))
			got := provider.formatDate(tt.locale, date, tt.style)
			if got != tt.expected {
				t.Errorf("formatDate(%q) = %q; want %q", tt.locale, got, tt.expected)
			}
		})
	}
}

// TestXTextProvider_FormattingRulesLoading validates that formatting rules
// are correctly loaded with fallback logic
func TestXTextProvider_FormattingRulesLoading(t *testing.T) {
	tests := []struct {
		locale       string
		expectedLang string
	}{
		{"es", "es"},
		{"es-MX", "es"},
		{"en-US", "en"},
		{"cs-CZ", "cs"},
		{"fr", "en"},
		{"unknown", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			provider := newXTextProvider(tt.locale, nil)
			if provider.rules == nil {
				t.Fatalf("rules is nil for locale %q", tt.locale)
			}
			if provider.rules.Locale != tt.expectedLang {
				t.Errorf("rules.Locale = %q; want %q", provider.rules.Locale, tt.expectedLang)
			}
		})
	}
}

func TestFormattingRulesProviderResolverAndOverrides(t *testing.T) {
	resolver := NewStaticFallbackResolver()
	resolver.Set("gl", "es")

	custom := FormattingRules{DatePatterns: DatePatternRules{Short: "{year}-{month_num}-{day}"}}
	provider := NewFormattingRulesProvider(map[string]FormattingRules{"de": custom}, resolver)

	if got := provider.Get("gl").Locale; got != "es" {
		t.Fatalf("resolver fallback = %q", got)
	}
	if got := provider.Get("de").DatePatterns.Short; got != "{year}-{month_num}-{day}" {
		t.Fatalf("override pattern = %q", got)
	}
}

func TestXTextProviderNumbers(t *testing.T) {
	en := newXTextProvider("en", nil)

	tests := []struct {
		name  string
		value any
		style Style
		want  string
	}{
		{name: "decimal", value: 1234.5, want: "1,234.5"},
		{name: "integer", value: 1234.6, style: Style{"style": "integer"}, want: "1,235"},
		{name: "percent", value: 0.25, style: Style{"style": "percent"}, want: "25%"},
		{name: "currency", value: 12, style: Style{"style": "currency", "currency": "USD"}, want: "$12.00"},
		{name: "not a number", value: "n/a", want: "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := en.formatNumber("en", tt.value, tt.style); got != tt.want {
				t.Errorf("formatNumber(%v) = %q; want %q", tt.value, got, tt.want)
			}
		})
	}
}
