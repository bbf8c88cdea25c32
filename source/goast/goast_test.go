package goast

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	i18n "github.com/goliatone/go-i18n-icu"
)

const homeSource = `package app

import (
	t "github.com/goliatone/go-i18n-icu"
	"fmt"
)

func messages(name string, count int, parts []any, id string) []t.Descriptor {
	fmt.Sprint("not a message")
	return []t.Descriptor{
		t.Msg("Hello ", t.Var("name", name), "!"),
		t.MsgID("cart.items", t.Plural(t.Attr("value", t.Var("count", count)), t.Attr("one", "# item"), t.Attr("other", "# items"))),
		t.Msg("Share: ", t.Number(t.Var("ratio", 0.5), "percent")),
		t.Msg("Total: ", count, " of " + "many"),
		t.Msg(parts...),
		t.MsgID(id, "skipped"),
		t.Msg("Read ", t.Tag("a", "the docs")),
	}
}
`

func extract(t *testing.T, sources []i18n.SourceMessage) []i18n.ExtractedMessage {
	t.Helper()
	messages, err := i18n.NewExtractor().ExtractAll(sources)
	require.NoError(t, err)
	return messages
}

func TestParseFileSyntactic(t *testing.T) {
	sources, err := ParseFile("app/home.go", homeSource, Config{})
	require.NoError(t, err)
	require.Len(t, sources, 5)

	assert.Equal(t, i18n.Position{File: "app/home.go", Line: 11, Column: 3}, sources[0].Pos)
	assert.Equal(t, 12, sources[1].Pos.Line)

	messages := extract(t, sources)
	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		ids = append(ids, msg.ID)
	}
	assert.Equal(t, []string{
		"Hello {name}!",
		"cart.items",
		"Share: {ratio,number,percent}",
		"Total: {0} of many",
		"Read <0>the docs</0>",
	}, ids)
	assert.Equal(t, "{count, plural, one {# item} other {# items}}", messages[1].Defaults)
	assert.Equal(t, i18n.SourceLocation{File: "app/home.go", Line: 11}, messages[0].Origin)
}

func TestParseFileIgnoresOtherPackages(t *testing.T) {
	src := `package app

import i18n "example.com/other/i18n"

var _ = i18n.Msg("not ours")
`
	sources, err := ParseFile("other.go", src, Config{})
	require.NoError(t, err)
	assert.Empty(t, sources)

	sources, err = ParseFile("other.go", src, Config{PackagePath: "example.com/other/i18n"})
	require.NoError(t, err)
	require.Len(t, sources, 1)
}

func TestParseFileError(t *testing.T) {
	_, err := ParseFile("broken.go", "package", Config{})
	assert.ErrorContains(t, err, "goast: parse broken.go")
}

func TestFileUnit(t *testing.T) {
	unit := FileUnit{Path: "testdata/missing.go"}
	assert.Equal(t, "testdata/missing.go", unit.Name())

	_, err := unit.Messages(context.Background())
	assert.Error(t, err)
}

func TestLoadTypedPackage(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	units, err := Load(context.Background(), Config{Dir: root}, "./examples/basic")
	require.NoError(t, err)
	require.Len(t, units, 1)

	result, err := i18n.NewCollector().Collect(context.Background(), units...)
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	assert.Equal(t, []string{
		"You have {count, plural, one {# open invoice} other {# open invoices}}",
		"invoice.greeting",
	}, result.Catalog.IDs())

	greeting := result.Catalog["invoice.greeting"]
	assert.Equal(t, "Hello {customer}, your total is {total,number,eur}", greeting.Defaults)
	require.Len(t, greeting.Origin, 1)
	assert.Equal(t, "examples/basic/basic.go", greeting.Origin[0].File)
}
