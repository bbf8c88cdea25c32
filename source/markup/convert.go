package markup

import (
	"regexp"
	"strconv"
	"strings"

	i18n "github.com/goliatone/go-i18n-icu"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// converter maps a scanned element tree onto extractor nodes.
type converter struct {
	file string
}

func (c converter) position(line, col int) i18n.Position {
	return i18n.Position{File: c.file, Line: line, Column: col}
}

func (c converter) nodes(items []*item) []i18n.Node {
	var out []i18n.Node
	for _, it := range items {
		out = append(out, c.node(it)...)
	}
	return out
}

func (c converter) node(it *item) []i18n.Node {
	if it.isText {
		return c.text(it.text, it.line, it.col)
	}

	pos := c.position(it.line, it.col)
	switch it.name {
	case "plural":
		return []i18n.Node{c.choice(i18n.ChoicePlural, it, pos)}
	case "select":
		return []i18n.Node{c.choice(i18n.ChoiceSelect, it, pos)}
	case "selectordinal":
		return []i18n.Node{c.choice(i18n.ChoiceSelectOrdinal, it, pos)}
	case "number":
		return []i18n.Node{c.format(i18n.FormatTypeNumber, it, pos)}
	case "date":
		return []i18n.Node{c.format(i18n.FormatTypeDate, it, pos)}
	case defaultRoot:
		return c.nodes(it.children)
	}

	return []i18n.Node{i18n.MarkupNode{
		Element:  Element{Name: it.name, Attrs: it.attrs},
		Children: c.nodes(it.children),
		Pos:      pos,
	}}
}

// text splits a text run on {…} expressions. An unterminated brace is
// kept as text.
func (c converter) text(s string, line, col int) []i18n.Node {
	var out []i18n.Node
	for s != "" {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			out = append(out, i18n.TextNode{Value: s})
			break
		}
		end := strings.IndexByte(s[open:], '}')
		if end < 0 {
			out = append(out, i18n.TextNode{Value: s})
			break
		}
		end += open

		if open > 0 {
			out = append(out, i18n.TextNode{Value: s[:open]})
		}
		pos := c.position(line+strings.Count(s[:open], "\n"), col)
		expr := strings.TrimSpace(s[open+1 : end])
		if identifier.MatchString(expr) {
			out = append(out, i18n.ArgumentNode{Name: expr, Ident: true, Pos: pos})
		} else {
			out = append(out, i18n.ArgumentNode{Pos: pos})
		}

		line += strings.Count(s[:end+1], "\n")
		s = s[end+1:]
	}
	return out
}

func (c converter) choice(kind i18n.ChoiceKind, it *item, pos i18n.Position) i18n.Node {
	node := i18n.ChoiceNode{Kind: kind, Pos: pos}
	for _, attr := range it.attrList {
		node.Attrs = append(node.Attrs, i18n.Property{
			Key:     attr.Key,
			Value:   c.operand(attr.Val, pos),
			Content: c.text(attr.Val, it.line, it.col),
			Pos:     pos,
		})
	}
	return node
}

func (c converter) format(typ string, it *item, pos i18n.Position) i18n.Node {
	node := i18n.FormatNode{Type: typ, Pos: pos}
	value, ok := it.attrs["value"]
	if !ok {
		return node
	}
	node.Args = append(node.Args, c.operand(value, pos))
	if format, ok := it.attrs["format"]; ok {
		node.Args = append(node.Args, c.operand(format, pos))
	}
	return node
}

// operand reads an attribute value: {name} is a variable, any other {…}
// an expression, digits a number and everything else a string.
func (c converter) operand(raw string, pos i18n.Position) i18n.Operand {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		expr := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
		if identifier.MatchString(expr) {
			return i18n.Operand{Kind: i18n.OperandVariable, Name: expr, Pos: pos}
		}
		return i18n.Operand{Kind: i18n.OperandExpression, Pos: pos}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return i18n.Operand{Kind: i18n.OperandNumber, Literal: trimmed, Value: f, Pos: pos}
	}
	return i18n.Operand{Kind: i18n.OperandString, Literal: raw, Value: raw, Pos: pos}
}
