package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgResolve(t *testing.T) {
	tests := []struct {
		name     string
		msg      Descriptor
		id       string
		defaults string
		params   Params
	}{
		{
			name: "text only",
			msg:  Msg("Hello world"),
			id:   "Hello world",
		},
		{
			name:   "named and positional values",
			msg:    Msg("Hello ", Var("name", "Ann"), ", total ", Arg(12.5)),
			id:     "Hello {name}, total {0}",
			params: Params{"name": "Ann", "0": 12.5},
		},
		{
			name:   "non string parts are positional",
			msg:    Msg("Page ", 3, " of ", 9),
			id:     "Page {0} of {1}",
			params: Params{"0": 3, "1": 9},
		},
		{
			name:     "explicit id",
			msg:      MsgID("cart.title", "Your cart"),
			id:       "cart.title",
			defaults: "Your cart",
		},
		{
			name: "plural",
			msg: Msg("You have ", Plural(
				Attr("value", Var("count", 2)),
				Attr("0", "no books"),
				Attr("one", "# book"),
				Attr("other", "# books"),
			)),
			id:     "You have {count, plural, =0 {no books} one {# book} other {# books}}",
			params: Params{"count": 2},
		},
		{
			name: "select with nested message",
			msg: Msg(Select(
				Attr("value", Var("role", "admin")),
				Attr("admin", Msg("Welcome back ", Var("name", "Ann"))),
				Attr("other", "Welcome"),
			)),
			id:     "{role, select, admin {Welcome back {name}} other {Welcome}}",
			params: Params{"role": "admin", "name": "Ann"},
		},
		{
			name:   "number with named style",
			msg:    Msg("Done: ", Number(Var("ratio", 0.5), "percent")),
			id:     "Done: {ratio,number,percent}",
			params: Params{"ratio": 0.5},
		},
		{
			name:   "inline element",
			msg:    Msg("Read ", Tag("a", "the docs"), "."),
			id:     "Read <0>the docs</0>.",
			params: nil,
		},
		{
			name:   "spliced message",
			msg:    Msg(Msg("Hi "), Var("name", "Bo")),
			id:     "Hi {name}",
			params: Params{"name": "Bo"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.msg.Resolve()
			require.NoError(t, err)
			assert.Equal(t, tc.id, got.ID)
			assert.Equal(t, tc.defaults, got.Defaults)
			assert.Equal(t, tc.params, got.Params)
		})
	}
}

func TestMsgResolveInlineStyle(t *testing.T) {
	got, err := Msg(Number(Var("n", 1.25), Style{"maximumFractionDigits": 1})).Resolve()
	require.NoError(t, err)

	assert.Equal(t, "{n,number,number0}", got.ID)
	assert.Equal(t, map[string]Style{"number0": {"maximumFractionDigits": 1}}, got.Formats)
}

func TestMsgResolveRejectsInvalidChoice(t *testing.T) {
	got, err := MsgID("broken", Plural(Attr("value", Arg(3)), Attr("other", "x"))).Resolve()
	require.ErrorIs(t, err, ErrInvalidValueType)
	assert.Equal(t, "broken", got.ID)
}

func TestDescriptorWithoutPartsIsUnchanged(t *testing.T) {
	d := Descriptor{ID: "home.title", Defaults: "Home", Params: Params{"x": 1}}

	got, err := d.Resolve()
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestMsgExplicitParamsOverride(t *testing.T) {
	d := Msg("Hello ", Var("name", "Ann"))
	d.Params = Params{"name": "Bo"}

	got, err := d.Resolve()
	require.NoError(t, err)
	assert.Equal(t, Params{"name": "Bo"}, got.Params)
}
