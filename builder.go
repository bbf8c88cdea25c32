package i18n

import (
	"regexp"
	"strconv"
	"strings"
)

var lineBreakIndent = regexp.MustCompile(`(?:\r\n|\r|\n)+\s+`)

// NormalizeWhitespace collapses line breaks followed by indentation into a
// single space and trims the result.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(lineBreakIndent.ReplaceAllString(text, " "))
}

// PatternBuilder renders descriptor segments into ICU MessageFormat and
// assigns message identifiers.
type PatternBuilder struct{}

// Render concatenates segments in order.
func (PatternBuilder) Render(segments []Segment) string {
	var b strings.Builder
	renderSegments(&b, segments)
	return b.String()
}

// Identify returns the message key and defaults for d. An explicit id
// different from the pattern keeps the pattern as defaults; otherwise the
// pattern is the key. ok is false when there is nothing to extract.
func (p PatternBuilder) Identify(d MessageDescriptor, explicitID string) (id, defaults string, ok bool) {
	text := NormalizeWhitespace(p.Render(d.Segments))
	if text == "" {
		return "", "", false
	}

	explicitID = strings.TrimSpace(explicitID)
	if explicitID == "" || explicitID == text {
		return text, "", true
	}
	return explicitID, text, true
}

func renderSegments(b *strings.Builder, segments []Segment) {
	for _, segment := range segments {
		switch s := segment.(type) {
		case TextSegment:
			b.WriteString(s.Value)
		case PlaceholderSegment:
			b.WriteString("{")
			b.WriteString(s.Name)
			b.WriteString("}")
		case ChoiceSegment:
			renderChoice(b, s.Form)
		case FormatSegment:
			b.WriteString("{")
			b.WriteString(s.Spec.Variable)
			b.WriteString(",")
			b.WriteString(s.Spec.Type)
			if s.Spec.Style != "" {
				b.WriteString(",")
				b.WriteString(s.Spec.Style)
			}
			b.WriteString("}")
		case ElementSegment:
			index := strconv.Itoa(s.Index)
			if len(s.Children) == 0 {
				b.WriteString("<" + index + "/>")
				continue
			}
			b.WriteString("<" + index + ">")
			renderSegments(b, s.Children)
			b.WriteString("</" + index + ">")
		}
	}
}

func renderChoice(b *strings.Builder, form ChoiceForm) {
	b.WriteString("{")
	b.WriteString(form.Variable)
	b.WriteString(", ")
	b.WriteString(string(form.Kind))
	b.WriteString(",")
	if form.Offset != "" {
		b.WriteString(" offset:")
		b.WriteString(form.Offset)
	}
	for _, c := range form.Cases {
		b.WriteString(" ")
		b.WriteString(c.Label)
		b.WriteString(" {")
		renderSegments(b, c.Message.Segments)
		b.WriteString("}")
	}
	b.WriteString("}")
}
