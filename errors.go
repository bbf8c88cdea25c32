package i18n

import (
	"errors"
	"fmt"
)

// ErrMissingTranslation indicates that no translation was found for locale/key.
var ErrMissingTranslation = errors.New("i18n: missing translation")

// ErrNoLoaderPaths is returned by file loaders configured without paths.
var ErrNoLoaderPaths = errors.New("i18n: no loader paths configured")

// Extraction error kinds. An *ExtractError unwraps to one of these.
var (
	ErrMissingValue            = errors.New("missing value")
	ErrInvalidValueType        = errors.New("value must be a variable reference")
	ErrMissingCases            = errors.New("missing cases")
	ErrMissingOtherCase        = errors.New("missing other case")
	ErrInvalidCaseLabel        = errors.New("invalid case label")
	ErrComputedLabelNotAllowed = errors.New("computed case labels are not allowed")
	ErrInvalidOffset           = errors.New("offset must be a literal")
	ErrInvalidFormatArgument   = errors.New("invalid format argument")
)

// Position locates a construct in a source unit.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	switch {
	case p.File == "":
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	case p.Column > 0:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	default:
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	}
}

// Location converts the position into a catalog origin.
func (p Position) Location() SourceLocation {
	return SourceLocation{File: p.File, Line: p.Line}
}

// ExtractError aborts the extraction of a single message.
type ExtractError struct {
	Kind   error
	Pos    Position
	Detail string
}

func (e *ExtractError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Pos, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Pos, e.Kind, e.Detail)
}

func (e *ExtractError) Unwrap() error {
	return e.Kind
}

func extractErrorf(kind error, pos Position, format string, args ...any) *ExtractError {
	return &ExtractError{Kind: kind, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}
