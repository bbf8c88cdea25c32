package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePluralOperands(t *testing.T) {
	tests := []struct {
		raw  string
		want PluralOperands
	}{
		{"1", PluralOperands{N: 1, I: 1}},
		{"-3", PluralOperands{N: 3, I: 3}},
		{"1.50", PluralOperands{N: 1.5, I: 1, V: 2, W: 1, F: 50, T: 5}},
		{"0.0", PluralOperands{N: 0, V: 1, W: 0, F: 0, T: 0}},
		{"1e3", PluralOperands{N: 1000, I: 1000}},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParsePluralOperands(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParsePluralOperands("many")
	assert.Error(t, err)
}

func TestXTextPluralRules(t *testing.T) {
	rules := NewXTextPluralRules()

	category, ok := rules.PluralCategory("pt_BR", NewPluralOperands(1), Cardinal)
	require.True(t, ok)
	assert.Equal(t, PluralOne, category)

	category, ok = rules.PluralCategory("en", NewPluralOperands(22), Ordinal)
	require.True(t, ok)
	assert.Equal(t, PluralTwo, category)

	_, ok = rules.PluralCategory("", NewPluralOperands(1), Cardinal)
	assert.False(t, ok)
}

func TestResolvePluralCategoryFallsBackToOther(t *testing.T) {
	assert.Equal(t, PluralOther, resolvePluralCategory(nil, "en", NewPluralOperands(1), Cardinal))
	assert.Equal(t, PluralOther, resolvePluralCategory(NewRuleSetTable(), "en", NewPluralOperands(1), Cardinal))
}

const czechRules = `
locales:
  cs:
    name: Czech
    cardinal:
      few:
        - - {operand: i, operator: in, ranges: [{start: 2, end: 4}]}
          - {operand: v, operator: is, values: [0]}
      one:
        - - {operand: i, operator: is, values: [1]}
          - {operand: v, operator: is, values: [0]}
      many:
        - - {operand: v, operator: is not, values: [0]}
    ordinal:
      other: []
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPluralRulesYAML(t *testing.T) {
	table, err := LoadPluralRules(writeFile(t, "rules.yaml", czechRules))
	require.NoError(t, err)
	assert.Equal(t, []string{"cs"}, table.Locales())

	tests := []struct {
		raw  string
		want PluralCategory
	}{
		{"1", PluralOne},
		{"3", PluralFew},
		{"5", PluralOther},
		{"1.5", PluralMany},
	}
	for _, tc := range tests {
		ops, err := ParsePluralOperands(tc.raw)
		require.NoError(t, err)

		got, ok := table.PluralCategory("cs-CZ", ops, Cardinal)
		require.True(t, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}

	ordinal, ok := table.PluralCategory("cs", NewPluralOperands(1), Ordinal)
	require.True(t, ok)
	assert.Equal(t, PluralOther, ordinal)

	_, ok = table.PluralCategory("de", NewPluralOperands(1), Cardinal)
	assert.False(t, ok)
}

func TestRuleSetCategoriesOrder(t *testing.T) {
	table, err := LoadPluralRules(writeFile(t, "rules.yaml", czechRules))
	require.NoError(t, err)

	var set *PluralRuleSet
	for _, s := range table.sets {
		set = s
	}
	assert.Equal(t, []PluralCategory{PluralOne, PluralFew, PluralMany, PluralOther}, set.Categories())
}

func TestLoadPluralRulesDirectJSON(t *testing.T) {
	path := writeFile(t, "rules.json", `{"xx": {"parent": "", "cardinal": {"one": [[{"operand": "n", "operator": "=", "values": [1]}]]}}}`)

	table, err := LoadPluralRules(path)
	require.NoError(t, err)

	got, ok := table.PluralCategory("xx", NewPluralOperands(1), Cardinal)
	require.True(t, ok)
	assert.Equal(t, PluralOne, got)
}

func TestLoadPluralRulesErrors(t *testing.T) {
	_, err := LoadPluralRules()
	assert.ErrorIs(t, err, ErrNoLoaderPaths)

	_, err = LoadPluralRules(writeFile(t, "bad.json", `{"xx": {"cardinal": {"plenty": []}}}`))
	assert.ErrorContains(t, err, "unknown plural category")

	_, err = LoadPluralRules(writeFile(t, "bad.json", `{"xx": {"cardinal": {"one": [[{"operand": "n", "operator": "~", "values": [1]}]]}}}`))
	assert.ErrorContains(t, err, "unknown condition operator")
}

func TestChainPluralRules(t *testing.T) {
	table, err := LoadPluralRules(writeFile(t, "rules.yaml", czechRules))
	require.NoError(t, err)

	chain := ChainPluralRules{table, XTextPluralRules{}}

	got, ok := chain.PluralCategory("cs", NewPluralOperands(2), Cardinal)
	require.True(t, ok)
	assert.Equal(t, PluralFew, got)

	got, ok = chain.PluralCategory("ru", NewPluralOperands(5), Cardinal)
	require.True(t, ok)
	assert.Equal(t, PluralMany, got)
}
