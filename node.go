package i18n

// Node is the source-independent shape of message content. Adapters turn
// their syntax trees (Go calls, markup, runtime values) into these variants
// and the Extractor dispatches on them through NodeVisitor.
type Node interface {
	Accept(v NodeVisitor) error
}

// NodeVisitor has one method per node variant.
type NodeVisitor interface {
	VisitText(n TextNode) error
	VisitArgument(n ArgumentNode) error
	VisitChoice(n ChoiceNode) error
	VisitFormat(n FormatNode) error
	VisitMarkup(n MarkupNode) error
}

// TextNode is literal message text.
type TextNode struct {
	Value string
}

// ArgumentNode is an embedded expression. Ident marks a bare variable
// reference whose Name becomes the placeholder name; other expressions get
// a synthetic numeric name.
type ArgumentNode struct {
	Name  string
	Ident bool
	Value any
	Pos   Position
}

// ChoiceNode is an unvalidated plural, select or selectordinal invocation.
type ChoiceNode struct {
	Kind  ChoiceKind
	Attrs []Property
	Pos   Position
}

// FormatNode is an unvalidated number or date invocation.
type FormatNode struct {
	Type string
	Args []Operand
	Pos  Position
}

// MarkupNode is an inline element. Element is kept opaque and stored in
// the descriptor's inline nodes without its children.
type MarkupNode struct {
	Element  any
	Children []Node
	Pos      Position
}

func (n TextNode) Accept(v NodeVisitor) error     { return v.VisitText(n) }
func (n ArgumentNode) Accept(v NodeVisitor) error { return v.VisitArgument(n) }
func (n ChoiceNode) Accept(v NodeVisitor) error   { return v.VisitChoice(n) }
func (n FormatNode) Accept(v NodeVisitor) error   { return v.VisitFormat(n) }
func (n MarkupNode) Accept(v NodeVisitor) error   { return v.VisitMarkup(n) }

// Property is one attribute of a choice invocation. Value holds the
// attribute as an operand (used by value and offset) and Content holds it
// as message content (used by cases).
type Property struct {
	Key      string
	Computed bool
	Value    Operand
	Content  []Node
	Pos      Position
}

type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandVariable
	OperandString
	OperandNumber
	OperandObject
	OperandExpression
)

func (k OperandKind) String() string {
	switch k {
	case OperandVariable:
		return "variable"
	case OperandString:
		return "string"
	case OperandNumber:
		return "number"
	case OperandObject:
		return "object"
	case OperandExpression:
		return "expression"
	default:
		return "none"
	}
}

// Operand is a value position in a choice or format invocation.
type Operand struct {
	Kind OperandKind
	// Name of a variable reference.
	Name string
	// Literal holds string and number literals in source form.
	Literal string
	// Object holds the fields of an inline key/value literal.
	Object []ObjectField
	// Value is the runtime value or source expression behind the operand.
	Value any
	Pos   Position
}

type ObjectField struct {
	Key   string
	Value any
}

func (o Operand) IsLiteral() bool {
	return o.Kind == OperandString || o.Kind == OperandNumber
}

// Style converts an object operand into a formatting style.
func (o Operand) Style() Style {
	if o.Kind != OperandObject {
		return nil
	}
	style := make(Style, len(o.Object))
	for _, field := range o.Object {
		style[field.Key] = field.Value
	}
	return style
}
