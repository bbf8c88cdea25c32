package i18n

import (
	"sort"
)

// Descriptor is what Runtime.Translate resolves: an id, optional defaults
// and the values for the message arguments.
//
// Descriptors built with Msg or MsgID carry message parts instead. They are
// rendered with the same extractor and builder the extraction tools use, so
// the resolved id matches the extracted catalog key.
type Descriptor struct {
	ID       string
	Defaults string
	Params   Params
	Formats  map[string]Style

	parts []any
}

// Msg builds a message from parts. Strings are literal text; Var, Arg,
// Plural, Select, SelectOrdinal, Number, Date and Tag build the other
// constructs; any other value becomes a positional argument.
//
//	i18n.Msg("Hello ", i18n.Var("name", user.Name), "!")
func Msg(parts ...any) Descriptor {
	return Descriptor{parts: parts}
}

// MsgID is Msg with an explicit identifier.
func MsgID(id string, parts ...any) Descriptor {
	return Descriptor{ID: id, parts: parts}
}

// Resolve renders the message parts, if any, into id, defaults, params and
// formats. Descriptors without parts are returned unchanged.
func (d Descriptor) Resolve() (Descriptor, error) {
	if d.parts == nil {
		return d, nil
	}

	msg, ok, err := NewExtractor().Extract(SourceMessage{ID: d.ID, Nodes: runtimeNodes(d.parts)})
	if err != nil {
		return Descriptor{ID: d.ID}, err
	}
	if !ok {
		return Descriptor{ID: d.ID}, nil
	}

	out := Descriptor{
		ID:       msg.ID,
		Defaults: msg.Defaults,
		Params:   msg.Descriptor.Params(),
		Formats:  msg.Descriptor.CustomFormats,
	}
	if len(d.Params) > 0 {
		if out.Params == nil {
			out.Params = make(Params, len(d.Params))
		}
		for name, value := range d.Params {
			out.Params[name] = value
		}
	}
	return out, nil
}

// Value is an embedded value. Named values are variable references.
type Value struct {
	name  string
	value any
	named bool
}

// Var embeds value under the placeholder name.
func Var(name string, value any) Value {
	return Value{name: name, value: value, named: name != ""}
}

// Arg embeds value under a positional placeholder name.
func Arg(value any) Value {
	return Value{value: value}
}

// Attribute is one field of a choice: value, offset or a case.
type Attribute struct {
	Key   string
	Value any
}

func Attr(key string, value any) Attribute {
	return Attribute{Key: key, Value: value}
}

type Choice struct {
	kind  ChoiceKind
	attrs []Attribute
}

// Plural picks a case by the plural category of the value.
//
//	i18n.Plural(i18n.Attr("value", i18n.Var("count", n)),
//		i18n.Attr("one", "# book"),
//		i18n.Attr("other", "# books"))
func Plural(attrs ...Attribute) Choice {
	return Choice{kind: ChoicePlural, attrs: attrs}
}

func SelectOrdinal(attrs ...Attribute) Choice {
	return Choice{kind: ChoiceSelectOrdinal, attrs: attrs}
}

func Select(attrs ...Attribute) Choice {
	return Choice{kind: ChoiceSelect, attrs: attrs}
}

type Format struct {
	typ  string
	args []any
}

// Number formats value. The optional style is a style name, a Var holding
// a Style, or an inline Style.
func Number(value any, style ...any) Format {
	return Format{typ: FormatTypeNumber, args: append([]any{value}, style...)}
}

func Date(value any, style ...any) Format {
	return Format{typ: FormatTypeDate, args: append([]any{value}, style...)}
}

// Element is an inline markup element. Inline nodes keep only its name.
type Element struct {
	Name     string
	children []any
}

// Tag wraps children in an inline element rendered as <k>...</k>.
func Tag(name string, children ...any) Element {
	return Element{Name: name, children: children}
}

func runtimeNodes(parts []any) []Node {
	nodes := make([]Node, 0, len(parts))
	for _, part := range parts {
		if nested, ok := part.(Descriptor); ok {
			nodes = append(nodes, runtimeNodes(nested.parts)...)
			continue
		}
		nodes = append(nodes, runtimeNode(part))
	}
	return nodes
}

func runtimeNode(part any) Node {
	switch p := part.(type) {
	case string:
		return TextNode{Value: p}
	case Value:
		return ArgumentNode{Name: p.name, Ident: p.named, Value: p.value}
	case Choice:
		attrs := make([]Property, 0, len(p.attrs))
		for _, attr := range p.attrs {
			attrs = append(attrs, Property{
				Key:     attr.Key,
				Value:   runtimeOperand(attr.Value),
				Content: runtimeContent(attr.Value),
			})
		}
		return ChoiceNode{Kind: p.kind, Attrs: attrs}
	case Format:
		args := make([]Operand, 0, len(p.args))
		for _, arg := range p.args {
			args = append(args, runtimeOperand(arg))
		}
		return FormatNode{Type: p.typ, Args: args}
	case Element:
		return MarkupNode{Element: Element{Name: p.Name}, Children: runtimeNodes(p.children)}
	default:
		return ArgumentNode{Value: p}
	}
}

func runtimeOperand(value any) Operand {
	switch v := value.(type) {
	case nil:
		return Operand{}
	case Value:
		if v.named {
			return Operand{Kind: OperandVariable, Name: v.name, Value: v.value}
		}
		return Operand{Kind: OperandExpression, Value: v.value}
	case string:
		return Operand{Kind: OperandString, Literal: v, Value: v}
	case Style:
		return objectOperand(v)
	case map[string]any:
		return objectOperand(v)
	}
	if _, ok := toFloat(value); ok {
		return Operand{Kind: OperandNumber, Literal: stringify(value), Value: value}
	}
	return Operand{Kind: OperandExpression, Value: value}
}

func objectOperand(fields map[string]any) Operand {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	op := Operand{Kind: OperandObject, Value: fields}
	for _, key := range keys {
		op.Object = append(op.Object, ObjectField{Key: key, Value: fields[key]})
	}
	return op
}

func runtimeContent(value any) []Node {
	switch v := value.(type) {
	case nil:
		return nil
	case Descriptor:
		return runtimeNodes(v.parts)
	case string:
		return []Node{TextNode{Value: v}}
	case Value, Choice, Format, Element:
		return []Node{runtimeNode(v)}
	default:
		return []Node{TextNode{Value: stringify(v)}}
	}
}
