package i18n

import (
	"strconv"
	"strings"
)

// Params are the values substituted into a message.
type Params map[string]any

// MessageFunc renders a compiled message.
type MessageFunc func(Params) string

type compileConfig struct {
	rules      PluralRuleTable
	formatters *FormatterRegistry
	styles     map[string]Style
}

type CompileOption func(*compileConfig)

// WithCompilePluralRules sets the table used by plural and selectordinal.
func WithCompilePluralRules(table PluralRuleTable) CompileOption {
	return func(cfg *compileConfig) {
		cfg.rules = table
	}
}

// WithCompileFormatters wires number/date formatters. Without them values
// are rendered as plain strings.
func WithCompileFormatters(registry *FormatterRegistry) CompileOption {
	return func(cfg *compileConfig) {
		cfg.formatters = registry
	}
}

// WithCompileStyles registers named styles referenced as {x,number,name}.
func WithCompileStyles(styles map[string]Style) CompileOption {
	return func(cfg *compileConfig) {
		if len(styles) == 0 {
			return
		}
		if cfg.styles == nil {
			cfg.styles = make(map[string]Style, len(styles))
		}
		for name, style := range styles {
			cfg.styles[name] = style
		}
	}
}

// CompilePattern parses and compiles pattern for locale.
func CompilePattern(pattern, locale string, opts ...CompileOption) (MessageFunc, error) {
	tokens, err := Parse(pattern)
	if err != nil {
		return nil, err
	}
	return Compile(tokens, locale, opts...), nil
}

// Compile turns tokens into a MessageFunc. Messages made only of text
// compile to a constant function.
func Compile(tokens []Token, locale string, opts ...CompileOption) MessageFunc {
	if isConstant(tokens) {
		var b strings.Builder
		for _, token := range tokens {
			b.WriteString(token.(TextToken).Value)
		}
		text := strings.TrimSpace(b.String())
		return func(Params) string { return text }
	}

	cfg := compileConfig{rules: XTextPluralRules{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	c := &compiledMessage{locale: locale, cfg: cfg}
	return func(params Params) string {
		var b strings.Builder
		c.render(&b, tokens, params, nil)
		return strings.TrimSpace(b.String())
	}
}

type compiledMessage struct {
	locale string
	cfg    compileConfig
}

// octothorpe binds "#" to the offset adjusted value of the nearest plural.
// A plural without a numeric value binds an unset octothorpe that renders
// nothing.
type octothorpe struct {
	value float64
	unset bool
}

func (c *compiledMessage) render(b *strings.Builder, tokens []Token, params Params, octo *octothorpe) {
	for _, token := range tokens {
		switch t := token.(type) {
		case TextToken:
			b.WriteString(t.Value)
		case ArgumentToken:
			b.WriteString(stringify(params[t.Name]))
		case OctothorpeToken:
			if octo == nil {
				b.WriteString("#")
				continue
			}
			if octo.unset {
				continue
			}
			b.WriteString(strconv.FormatFloat(octo.value, 'f', -1, 64))
		case FormatToken:
			b.WriteString(c.format(t, params[t.Name]))
		case ChoiceToken:
			c.choice(b, t, params, octo)
		}
	}
}

func (c *compiledMessage) format(t FormatToken, value any) string {
	if value == nil {
		return ""
	}
	style := c.style(t.Style)
	if c.cfg.formatters == nil {
		return identityFormat(c.locale, value, style)
	}
	return c.cfg.formatters.Format(t.Type, c.locale, value, style)
}

func (c *compiledMessage) style(name string) Style {
	if name == "" {
		return nil
	}
	if style, ok := c.cfg.styles[name]; ok {
		return style
	}
	return Style{"style": name}
}

func (c *compiledMessage) choice(b *strings.Builder, t ChoiceToken, params Params, octo *octothorpe) {
	other, _ := t.Case(string(PluralOther))
	raw := params[t.Name]

	if t.Type == "select" {
		body, ok := t.Case(stringify(raw))
		if !ok || raw == nil {
			body = other
		}
		c.render(b, body, params, octo)
		return
	}

	n, ok := toFloat(raw)
	if !ok {
		c.render(b, other, params, &octothorpe{unset: true})
		return
	}
	n -= t.Offset

	label := strconv.FormatFloat(n, 'f', -1, 64)
	if body, ok := t.Case("=" + label); ok {
		c.render(b, body, params, &octothorpe{value: n})
		return
	}
	if body, ok := t.Case("_" + label); ok {
		c.render(b, body, params, &octothorpe{value: n})
		return
	}

	ops := NewPluralOperands(n)
	if s, isString := raw.(string); isString && t.Offset == 0 {
		if parsed, err := ParsePluralOperands(s); err == nil {
			ops = parsed
		}
	}

	kind := Cardinal
	if t.Type == "selectordinal" {
		kind = Ordinal
	}

	category := resolvePluralCategory(c.cfg.rules, c.locale, ops, kind)
	body, ok := t.Case(string(category))
	if !ok {
		body = other
	}
	c.render(b, body, params, &octothorpe{value: n})
}
