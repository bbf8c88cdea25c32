package i18n

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// PluralKind selects between cardinal and ordinal rules.
type PluralKind int

const (
	Cardinal PluralKind = iota
	Ordinal
)

func (k PluralKind) String() string {
	if k == Ordinal {
		return "ordinal"
	}
	return "cardinal"
}

// PluralRuleTable maps a language and a number to a plural category.
// ok is false when the table has no rules for the language.
type PluralRuleTable interface {
	PluralCategory(locale string, operands PluralOperands, kind PluralKind) (category PluralCategory, ok bool)
}

// PluralOperands are the CLDR operands of a decimal number.
// https://unicode.org/reports/tr35/tr35-numbers.html#Operands
type PluralOperands struct {
	N float64 // absolute value
	I int     // integer digits
	V int     // number of visible fraction digits, with trailing zeros
	W int     // number of visible fraction digits, without trailing zeros
	F int     // visible fraction digits, with trailing zeros
	T int     // visible fraction digits, without trailing zeros
}

// NewPluralOperands derives operands from a float. Trailing fraction zeros
// cannot be represented; use ParsePluralOperands for "1.50" style input.
func NewPluralOperands(n float64) PluralOperands {
	ops, _ := ParsePluralOperands(strconv.FormatFloat(n, 'f', -1, 64))
	return ops
}

// ParsePluralOperands derives operands from a decimal string.
func ParsePluralOperands(raw string) (PluralOperands, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "-")
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return PluralOperands{}, err
	}

	ops := PluralOperands{N: math.Abs(n)}
	intPart, fracPart, _ := strings.Cut(raw, ".")
	if strings.ContainsAny(raw, "eE") {
		intPart, fracPart, _ = strings.Cut(strconv.FormatFloat(ops.N, 'f', -1, 64), ".")
	}

	ops.I, _ = strconv.Atoi(intPart)
	if fracPart == "" {
		return ops, nil
	}

	ops.V = len(fracPart)
	ops.F, _ = strconv.Atoi(fracPart)
	trimmed := strings.TrimRight(fracPart, "0")
	ops.W = len(trimmed)
	if trimmed != "" {
		ops.T, _ = strconv.Atoi(trimmed)
	}
	return ops, nil
}

// XTextPluralRules resolves categories with the CLDR tables shipped in
// golang.org/x/text/feature/plural.
type XTextPluralRules struct{}

var _ PluralRuleTable = XTextPluralRules{}

func NewXTextPluralRules() XTextPluralRules {
	return XTextPluralRules{}
}

func (XTextPluralRules) PluralCategory(locale string, ops PluralOperands, kind PluralKind) (PluralCategory, bool) {
	locale = normalizeLocale(locale)
	if locale == "" {
		return "", false
	}

	tag, err := language.Parse(locale)
	if err != nil || tag == language.Und {
		return "", false
	}

	rules := plural.Cardinal
	if kind == Ordinal {
		rules = plural.Ordinal
	}

	form := rules.MatchPlural(tag, ops.I, ops.V, ops.W, ops.F, ops.T)
	return categoryFromForm(form), true
}

func categoryFromForm(form plural.Form) PluralCategory {
	switch form {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}

// ChainPluralRules asks each table in order and returns the first answer.
type ChainPluralRules []PluralRuleTable

func (c ChainPluralRules) PluralCategory(locale string, ops PluralOperands, kind PluralKind) (PluralCategory, bool) {
	for _, table := range c {
		if table == nil {
			continue
		}
		if category, ok := table.PluralCategory(locale, ops, kind); ok {
			return category, true
		}
	}
	return "", false
}

// resolvePluralCategory never fails: a missing table or language yields other.
func resolvePluralCategory(table PluralRuleTable, locale string, ops PluralOperands, kind PluralKind) PluralCategory {
	if table == nil {
		return PluralOther
	}
	category, ok := table.PluralCategory(locale, ops, kind)
	if !ok || category == "" {
		return PluralOther
	}
	return category
}
