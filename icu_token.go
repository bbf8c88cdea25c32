package i18n

import (
	"strconv"
	"strings"
)

// Token is one node of a parsed ICU MessageFormat pattern.
type Token interface {
	writeTo(b *strings.Builder)
}

// TextToken is literal text.
type TextToken struct {
	Value string
}

// ArgumentToken is a simple argument: {name}.
type ArgumentToken struct {
	Name string
}

// FormatToken is a formatted argument: {name,type[,style]}.
type FormatToken struct {
	Name  string
	Type  string
	Style string
}

// ChoiceToken is a plural, selectordinal or select argument.
// Cases always contain "other".
type ChoiceToken struct {
	Name      string
	Type      string
	Offset    float64
	HasOffset bool
	Cases     []ChoiceCase
}

type ChoiceCase struct {
	Label  string
	Tokens []Token
}

// OctothorpeToken is a "#" inside a plural or selectordinal case.
type OctothorpeToken struct{}

// Case returns the tokens for label and whether the case exists.
func (t ChoiceToken) Case(label string) ([]Token, bool) {
	for _, c := range t.Cases {
		if c.Label == label {
			return c.Tokens, true
		}
	}
	return nil, false
}

func (t TextToken) writeTo(b *strings.Builder) {
	b.WriteString(t.Value)
}

func (t ArgumentToken) writeTo(b *strings.Builder) {
	b.WriteString("{")
	b.WriteString(t.Name)
	b.WriteString("}")
}

func (t FormatToken) writeTo(b *strings.Builder) {
	b.WriteString("{")
	b.WriteString(t.Name)
	b.WriteString(",")
	b.WriteString(t.Type)
	if t.Style != "" {
		b.WriteString(",")
		b.WriteString(t.Style)
	}
	b.WriteString("}")
}

func (t ChoiceToken) writeTo(b *strings.Builder) {
	b.WriteString("{")
	b.WriteString(t.Name)
	b.WriteString(", ")
	b.WriteString(t.Type)
	b.WriteString(",")
	if t.HasOffset {
		b.WriteString(" offset:")
		b.WriteString(strconv.FormatFloat(t.Offset, 'f', -1, 64))
	}
	for _, c := range t.Cases {
		b.WriteString(" ")
		b.WriteString(c.Label)
		b.WriteString(" {")
		for _, token := range c.Tokens {
			token.writeTo(b)
		}
		b.WriteString("}")
	}
	b.WriteString("}")
}

func (OctothorpeToken) writeTo(b *strings.Builder) {
	b.WriteString("#")
}

// FormatTokens prints tokens back into pattern syntax, using the same
// layout as the pattern builder.
func FormatTokens(tokens []Token) string {
	var b strings.Builder
	for _, token := range tokens {
		token.writeTo(&b)
	}
	return b.String()
}

// isConstant reports whether tokens contain only literal text.
func isConstant(tokens []Token) bool {
	for _, token := range tokens {
		if _, ok := token.(TextToken); !ok {
			return false
		}
	}
	return true
}
