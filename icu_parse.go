package i18n

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseError reports a malformed pattern and the rune offset it was found at.
type ParseError struct {
	Pattern string
	Offset  int
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("i18n: parse %q at %d: %s", e.Pattern, e.Offset, e.Msg)
}

// Parse parses an ICU MessageFormat pattern into tokens.
//
// Supported constructs are literal text, {name}, {name,type[,style]} and
// {name,plural|selectordinal|select,[offset:N] label {...} ...}. A "#"
// inside a plural or selectordinal case (including select cases nested in
// one) becomes an OctothorpeToken. Apostrophes quote special characters
// the ICU way: '' is a literal apostrophe and '{...}' is literal text.
func Parse(pattern string) (tokens []Token, err error) {
	p := &icuParser{pattern: pattern, src: []rune(pattern)}

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			tokens, err = nil, perr
		}
	}()

	tokens = p.parseMessage(false, 0)
	if !p.eof() {
		p.fail("unexpected %q", p.peek())
	}
	return tokens, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) []Token {
	tokens, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return tokens
}

type icuParser struct {
	pattern string
	src     []rune
	pos     int
}

func (p *icuParser) fail(format string, args ...any) {
	panic(&ParseError{Pattern: p.pattern, Offset: p.pos, Msg: fmt.Sprintf(format, args...)})
}

func (p *icuParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *icuParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *icuParser) peekAt(offset int) rune {
	if p.pos+offset >= len(p.src) {
		return 0
	}
	return p.src[p.pos+offset]
}

func (p *icuParser) expect(r rune) {
	if p.eof() {
		p.fail("expected %q, got end of pattern", r)
	}
	if p.peek() != r {
		p.fail("expected %q, got %q", r, p.peek())
	}
	p.pos++
}

func (p *icuParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

// parseMessage reads tokens until the end of input or an unconsumed "}"
// closing the enclosing case.
func (p *icuParser) parseMessage(inPlural bool, depth int) []Token {
	var (
		tokens []Token
		text   strings.Builder
	)

	flush := func() {
		if text.Len() == 0 {
			return
		}
		tokens = append(tokens, TextToken{Value: text.String()})
		text.Reset()
	}

	for !p.eof() {
		c := p.peek()
		switch {
		case c == '}':
			if depth == 0 {
				p.fail("unexpected %q", c)
			}
			flush()
			return tokens
		case c == '{':
			flush()
			p.pos++
			tokens = append(tokens, p.parseArgument(inPlural, depth))
		case c == '#' && inPlural:
			flush()
			p.pos++
			tokens = append(tokens, OctothorpeToken{})
		case c == '\'':
			p.readQuoted(&text, inPlural)
		default:
			text.WriteRune(c)
			p.pos++
		}
	}

	if depth > 0 {
		p.fail("unterminated case body")
	}
	flush()
	return tokens
}

func (p *icuParser) readQuoted(text *strings.Builder, inPlural bool) {
	next := p.peekAt(1)
	switch {
	case next == '\'':
		text.WriteRune('\'')
		p.pos += 2
		return
	case next == '{' || next == '}' || (next == '#' && inPlural):
	default:
		text.WriteRune('\'')
		p.pos++
		return
	}

	p.pos++
	for !p.eof() {
		c := p.peek()
		if c == '\'' {
			if p.peekAt(1) == '\'' {
				text.WriteRune('\'')
				p.pos += 2
				continue
			}
			p.pos++
			return
		}
		text.WriteRune(c)
		p.pos++
	}
}

func (p *icuParser) readName() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if unicode.IsSpace(c) || c == ',' || c == '{' || c == '}' {
			break
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *icuParser) parseArgument(inPlural bool, depth int) Token {
	p.skipSpace()
	name := p.readName()
	if name == "" {
		p.fail("expected argument name")
	}
	p.skipSpace()

	if p.peek() == '}' {
		p.pos++
		return ArgumentToken{Name: name}
	}
	p.expect(',')
	p.skipSpace()

	typ := strings.ToLower(p.readName())
	if typ == "" {
		p.fail("expected argument type for %q", name)
	}
	p.skipSpace()

	switch typ {
	case "plural", "selectordinal":
		p.expect(',')
		return p.parseChoice(name, typ, true, depth)
	case "select":
		p.expect(',')
		return p.parseChoice(name, typ, inPlural, depth)
	}

	if p.peek() == '}' {
		p.pos++
		return FormatToken{Name: name, Type: typ}
	}
	p.expect(',')

	return FormatToken{Name: name, Type: typ, Style: p.readStyle()}
}

// readStyle reads raw style text up to the closing brace of the argument.
func (p *icuParser) readStyle() string {
	start := p.pos
	nesting := 0
	for !p.eof() {
		switch p.peek() {
		case '{':
			nesting++
		case '}':
			if nesting == 0 {
				style := strings.TrimSpace(string(p.src[start:p.pos]))
				p.pos++
				return style
			}
			nesting--
		}
		p.pos++
	}
	p.fail("unterminated argument style")
	return ""
}

func (p *icuParser) parseChoice(name, typ string, casePlural bool, depth int) Token {
	token := ChoiceToken{Name: name, Type: typ}
	p.skipSpace()

	if typ != "select" && strings.HasPrefix(string(p.src[p.pos:]), "offset:") {
		p.pos += len("offset:")
		p.skipSpace()
		start := p.pos
		for !p.eof() && strings.ContainsRune("+-.0123456789", p.peek()) {
			p.pos++
		}
		offset, err := strconv.ParseFloat(string(p.src[start:p.pos]), 64)
		if err != nil {
			p.fail("invalid offset for %q", name)
		}
		token.Offset = offset
		token.HasOffset = true
	}

	for {
		p.skipSpace()
		if p.eof() {
			p.fail("unterminated %s argument %q", typ, name)
		}
		if p.peek() == '}' {
			p.pos++
			break
		}

		label := p.readName()
		if label == "" {
			p.fail("expected case label in %q", name)
		}
		p.skipSpace()
		p.expect('{')
		body := p.parseMessage(casePlural, depth+1)
		p.expect('}')
		token.Cases = append(token.Cases, ChoiceCase{Label: label, Tokens: body})
	}

	if len(token.Cases) == 0 {
		p.fail("%s argument %q has no cases", typ, name)
	}
	if _, ok := token.Case(string(PluralOther)); !ok {
		p.fail("%s argument %q is missing the other case", typ, name)
	}
	return token
}
