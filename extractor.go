package i18n

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SourceMessage is one top-level message handed over by an adapter.
type SourceMessage struct {
	// ID is the explicit identifier, if the source carried one.
	ID    string
	Nodes []Node
	Pos   Position
}

// ExtractedMessage is a validated message ready for the catalog.
type ExtractedMessage struct {
	ID         string
	Defaults   string
	Descriptor MessageDescriptor
	Origin     SourceLocation
}

// Pattern returns the rendered, whitespace normalized pattern.
func (m ExtractedMessage) Pattern() string {
	if m.Defaults != "" {
		return m.Defaults
	}
	return m.ID
}

// Extractor turns node trees into message descriptors.
type Extractor struct {
	builder PatternBuilder
}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract validates and renders one message. ok is false when the message
// renders to nothing.
func (e *Extractor) Extract(src SourceMessage) (ExtractedMessage, bool, error) {
	scope := &messageScope{formatNames: make(map[string]struct{})}

	desc, err := e.descend(src.Nodes, scope)
	if err != nil {
		var extractErr *ExtractError
		if errors.As(err, &extractErr) && extractErr.Pos == (Position{}) {
			extractErr.Pos = src.Pos
		}
		return ExtractedMessage{}, false, err
	}

	id, defaults, ok := e.builder.Identify(desc, src.ID)
	if !ok {
		return ExtractedMessage{}, false, nil
	}
	desc.Text = NormalizeWhitespace(desc.Text)

	return ExtractedMessage{
		ID:         id,
		Defaults:   defaults,
		Descriptor: desc,
		Origin:     src.Pos.Location(),
	}, true, nil
}

// ExtractAll extracts every message. A failing message is skipped and its
// error is joined into the returned error; the others are still returned.
func (e *Extractor) ExtractAll(sources []SourceMessage) ([]ExtractedMessage, error) {
	var (
		out  []ExtractedMessage
		errs []error
	)
	for _, src := range sources {
		msg, ok, err := e.Extract(src)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			out = append(out, msg)
		}
	}
	return out, errors.Join(errs...)
}

// messageScope is the per-message state shared by every level of one
// top-level message. It is never reused across messages.
type messageScope struct {
	arguments   int
	elements    int
	formatNames map[string]struct{}
}

func (s *messageScope) nextArgument() string {
	name := strconv.Itoa(s.arguments)
	s.arguments++
	return name
}

func (s *messageScope) nextElement() int {
	index := s.elements
	s.elements++
	return index
}

// syntheticFormatName returns <type><n> where n counts the names of that
// shape already used in the message.
func (s *messageScope) syntheticFormatName(typ string) string {
	shape := regexp.MustCompile(`^` + regexp.QuoteMeta(typ) + `\d+$`)
	count := 0
	for name := range s.formatNames {
		if shape.MatchString(name) {
			count++
		}
	}
	name := fmt.Sprintf("%s%d", typ, count)
	s.formatNames[name] = struct{}{}
	return name
}

func (e *Extractor) descend(nodes []Node, scope *messageScope) (MessageDescriptor, error) {
	v := &descriptorVisitor{extractor: e, scope: scope}
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if err := node.Accept(v); err != nil {
			return MessageDescriptor{}, err
		}
	}
	v.desc.Segments = v.segments
	v.desc.Text = e.builder.Render(v.segments)
	return v.desc, nil
}

// descriptorVisitor assembles one level of a descriptor.
type descriptorVisitor struct {
	extractor *Extractor
	scope     *messageScope
	segments  []Segment
	desc      MessageDescriptor
}

var _ NodeVisitor = (*descriptorVisitor)(nil)

func (v *descriptorVisitor) VisitText(n TextNode) error {
	if n.Value == "" {
		return nil
	}
	if last := len(v.segments) - 1; last >= 0 {
		if text, ok := v.segments[last].(TextSegment); ok {
			v.segments[last] = TextSegment{Value: text.Value + n.Value}
			return nil
		}
	}
	v.segments = append(v.segments, TextSegment{Value: n.Value})
	return nil
}

func (v *descriptorVisitor) VisitArgument(n ArgumentNode) error {
	name := n.Name
	if !n.Ident || name == "" {
		name = v.scope.nextArgument()
	}
	v.addPlaceholder(name, n.Value)
	v.segments = append(v.segments, PlaceholderSegment{Name: name})
	return nil
}

func (v *descriptorVisitor) VisitChoice(n ChoiceNode) error {
	form, value, err := v.extractor.choiceForm(n, v.scope)
	if err != nil {
		return err
	}
	v.addPlaceholder(form.Variable, value)
	for _, c := range form.Cases {
		v.absorb(c.Message)
	}
	v.segments = append(v.segments, ChoiceSegment{Form: form})
	return nil
}

func (v *descriptorVisitor) VisitFormat(n FormatNode) error {
	spec, value, style, err := v.extractor.formatSpec(n, v.scope)
	if err != nil {
		return err
	}
	v.addPlaceholder(spec.Variable, value)
	if style != nil {
		v.addFormat(spec.Style, style)
	}
	v.segments = append(v.segments, FormatSegment{Spec: spec})
	return nil
}

func (v *descriptorVisitor) VisitMarkup(n MarkupNode) error {
	index := v.scope.nextElement()
	v.desc.InlineNodes = append(v.desc.InlineNodes, n.Element)

	child, err := v.extractor.descend(n.Children, v.scope)
	if err != nil {
		return err
	}
	v.absorb(child)
	v.segments = append(v.segments, ElementSegment{Index: index, Children: child.Segments})
	return nil
}

func (v *descriptorVisitor) addPlaceholder(name string, value any) {
	for i, p := range v.desc.Placeholders {
		if p.Name == name {
			if p.Value == nil {
				v.desc.Placeholders[i].Value = value
			}
			return
		}
	}
	v.desc.Placeholders = append(v.desc.Placeholders, Placeholder{Name: name, Value: value})
}

func (v *descriptorVisitor) addFormat(name string, style Style) {
	if v.desc.CustomFormats == nil {
		v.desc.CustomFormats = make(map[string]Style)
	}
	v.desc.CustomFormats[name] = style
}

// absorb lifts the metadata of a nested descriptor into this level.
func (v *descriptorVisitor) absorb(child MessageDescriptor) {
	for _, p := range child.Placeholders {
		v.addPlaceholder(p.Name, p.Value)
	}
	v.desc.InlineNodes = append(v.desc.InlineNodes, child.InlineNodes...)
	for name, style := range child.CustomFormats {
		v.addFormat(name, style)
	}
}

var (
	numericLabel    = regexp.MustCompile(`^\d+$`)
	underscoreLabel = regexp.MustCompile(`^_\d+$`)
)

// choiceForm validates the attribute set of a choice in a fixed order and
// descends into each case. It returns the form and the value bound to the
// choice variable.
func (e *Extractor) choiceForm(n ChoiceNode, scope *messageScope) (ChoiceForm, any, error) {
	form := ChoiceForm{Kind: n.Kind}

	for _, attr := range n.Attrs {
		if attr.Computed {
			return form, nil, extractErrorf(ErrComputedLabelNotAllowed, posOr(attr.Pos, n.Pos), "in %s", n.Kind)
		}
	}

	var (
		value    *Operand
		cases    []Property
		hasValue bool
	)
	for i := range n.Attrs {
		attr := n.Attrs[i]
		switch attr.Key {
		case "value":
			if hasValue {
				return form, nil, extractErrorf(ErrInvalidValueType, posOr(attr.Pos, n.Pos), "%s has more than one value", n.Kind)
			}
			hasValue = true
			value = &n.Attrs[i].Value
		case "offset":
			if n.Kind == ChoiceSelect {
				return form, nil, extractErrorf(ErrInvalidOffset, posOr(attr.Pos, n.Pos), "select does not take an offset")
			}
			if !attr.Value.IsLiteral() {
				return form, nil, extractErrorf(ErrInvalidOffset, posOr(attr.Pos, n.Pos), "got %s", attr.Value.Kind)
			}
			form.Offset = strings.TrimSpace(attr.Value.Literal)
		default:
			cases = append(cases, attr)
		}
	}

	if !hasValue {
		return form, nil, extractErrorf(ErrMissingValue, n.Pos, "%s needs a value", n.Kind)
	}
	if value.Kind != OperandVariable || value.Name == "" {
		return form, nil, extractErrorf(ErrInvalidValueType, posOr(value.Pos, n.Pos), "got %s", value.Kind)
	}
	form.Variable = value.Name

	if len(cases) == 0 {
		return form, nil, extractErrorf(ErrMissingCases, n.Pos, "%s has no cases", n.Kind)
	}

	labels := make([]string, len(cases))
	hasOther := false
	for i, c := range cases {
		labels[i] = normalizeCaseLabel(n.Kind, c.Key)
		if labels[i] == string(PluralOther) {
			hasOther = true
		}
	}
	if !hasOther {
		return form, nil, extractErrorf(ErrMissingOtherCase, n.Pos, "%s on %q", n.Kind, form.Variable)
	}

	if n.Kind != ChoiceSelect {
		for i, label := range labels {
			if !IsPluralCategory(label) && !IsExactLabel(label) {
				return form, nil, extractErrorf(ErrInvalidCaseLabel, posOr(cases[i].Pos, n.Pos), "%q", cases[i].Key)
			}
		}
	}

	for i, c := range cases {
		message, err := e.descend(c.Content, scope)
		if err != nil {
			return form, nil, err
		}
		form.Cases = append(form.Cases, Case{Label: labels[i], Message: message})
	}

	return form, value.Value, nil
}

// normalizeCaseLabel maps numeric keys (1, _1) to exact-match labels (=1)
// for plural and selectordinal.
func normalizeCaseLabel(kind ChoiceKind, label string) string {
	if kind == ChoiceSelect {
		return label
	}
	switch {
	case numericLabel.MatchString(label):
		return "=" + label
	case underscoreLabel.MatchString(label):
		return "=" + label[1:]
	}
	return label
}

// formatSpec validates a number/date invocation. The returned style is
// non-nil when the argument defines a custom style to register.
func (e *Extractor) formatSpec(n FormatNode, scope *messageScope) (FormatSpec, any, Style, error) {
	spec := FormatSpec{Type: n.Type}

	if len(n.Args) == 0 || n.Args[0].Kind == OperandNone {
		return spec, nil, nil, extractErrorf(ErrMissingValue, n.Pos, "%s needs a value", n.Type)
	}
	value := n.Args[0]
	if value.Kind != OperandVariable || value.Name == "" {
		return spec, nil, nil, extractErrorf(ErrInvalidValueType, posOr(value.Pos, n.Pos), "got %s", value.Kind)
	}
	spec.Variable = value.Name

	if len(n.Args) > 2 {
		return spec, nil, nil, extractErrorf(ErrInvalidFormatArgument, n.Pos, "%s takes at most two arguments", n.Type)
	}
	if len(n.Args) < 2 {
		return spec, value.Value, nil, nil
	}

	var style Style
	arg := n.Args[1]
	switch arg.Kind {
	case OperandString:
		spec.Style = arg.Literal
	case OperandVariable:
		spec.Style = arg.Name
		scope.formatNames[arg.Name] = struct{}{}
		style = asStyle(arg.Value)
	case OperandObject:
		spec.Style = scope.syntheticFormatName(n.Type)
		style = arg.Style()
	default:
		return spec, nil, nil, extractErrorf(ErrInvalidFormatArgument, posOr(arg.Pos, n.Pos), "style must be a string, variable or object, got %s", arg.Kind)
	}

	return spec, value.Value, style, nil
}

func asStyle(value any) Style {
	switch v := value.(type) {
	case Style:
		return v
	case map[string]any:
		return Style(v)
	default:
		return nil
	}
}

func posOr(pos, fallback Position) Position {
	if pos == (Position{}) {
		return fallback
	}
	return pos
}
