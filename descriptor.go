package i18n

// ChoiceKind names a choice construct as it appears in ICU patterns.
type ChoiceKind string

const (
	ChoicePlural        ChoiceKind = "plural"
	ChoiceSelect        ChoiceKind = "select"
	ChoiceSelectOrdinal ChoiceKind = "selectordinal"
)

// ChoiceForm is a validated choice. Cases keep their source order and
// always include "other". Offset is empty for select.
type ChoiceForm struct {
	Kind     ChoiceKind
	Variable string
	Offset   string
	Cases    []Case
}

type Case struct {
	Label   string
	Message MessageDescriptor
}

// FormatSpec is a validated number or date argument. Style is empty when
// no style was given.
type FormatSpec struct {
	Variable string
	Type     string
	Style    string
}

// Placeholder binds a pattern argument name to its value.
type Placeholder struct {
	Name  string
	Value any
}

// MessageDescriptor is the intermediate form of one extracted message or
// of one choice case. Text is the rendered pattern of Segments.
type MessageDescriptor struct {
	Text          string
	Segments      []Segment
	Placeholders  []Placeholder
	InlineNodes   []any
	CustomFormats map[string]Style
}

// Params returns the placeholder values keyed by name.
func (d MessageDescriptor) Params() Params {
	if len(d.Placeholders) == 0 {
		return nil
	}
	params := make(Params, len(d.Placeholders))
	for _, p := range d.Placeholders {
		params[p.Name] = p.Value
	}
	return params
}

// Placeholder returns the value bound to name.
func (d MessageDescriptor) Placeholder(name string) (any, bool) {
	for _, p := range d.Placeholders {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Segment is one rendered piece of a descriptor.
type Segment interface {
	segment()
}

type TextSegment struct {
	Value string
}

type PlaceholderSegment struct {
	Name string
}

type ChoiceSegment struct {
	Form ChoiceForm
}

type FormatSegment struct {
	Spec FormatSpec
}

// ElementSegment renders as <Index>children</Index>, or <Index/> when it
// has no children.
type ElementSegment struct {
	Index    int
	Children []Segment
}

func (TextSegment) segment()        {}
func (PlaceholderSegment) segment() {}
func (ChoiceSegment) segment()      {}
func (FormatSegment) segment()      {}
func (ElementSegment) segment()     {}
