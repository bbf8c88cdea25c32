package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocales(t *testing.T) {
	assert.Equal(t, "cs-CZ", normalizeLocale(" cs_CZ "))
	assert.Equal(t, []string{"cs-CZ", "en", "es"}, normalizeLocales([]string{"es", " ", "cs_CZ", "en", "cs-CZ", "es"}))
	assert.Nil(t, normalizeLocales([]string{" "}))
	assert.Nil(t, normalizeLocales(nil))
}

func TestLocaleAncestors(t *testing.T) {
	tests := []struct {
		locale string
		want   []string
	}{
		{"en-US", []string{"en"}},
		{"es_MX", []string{"es-419", "es"}},
		{"en", nil},
		{"", nil},
		{"zz-abc-!", []string{"zz-abc", "zz"}},
	}

	for _, tc := range tests {
		t.Run(tc.locale, func(t *testing.T) {
			assert.Equal(t, tc.want, localeAncestors(tc.locale))
		})
	}
}
