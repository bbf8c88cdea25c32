package i18n

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

type PluralConditionOperator string

const (
	OperatorEquals    PluralConditionOperator = "is"
	OperatorNotEquals PluralConditionOperator = "is not"
	OperatorIn        PluralConditionOperator = "in"
	OperatorNotIn     PluralConditionOperator = "not in"
	OperatorWithin    PluralConditionOperator = "within"
	OperatorNotWithin PluralConditionOperator = "not within"
)

type PluralRange struct {
	Start float64
	End   float64
}

// PluralCondition is one relation of a CLDR rule, e.g. "n % 10 in 2..4".
type PluralCondition struct {
	Operand  string
	Mod      int
	Operator PluralConditionOperator
	Values   []float64
	Ranges   []PluralRange
}

// PluralRule matches when any of its groups matches. A group matches when
// all of its conditions hold. A rule without groups always matches.
type PluralRule struct {
	Category PluralCategory
	Groups   [][]PluralCondition
}

type PluralRuleSet struct {
	Locale      string
	DisplayName string
	Parent      string
	Cardinal    []PluralRule
	Ordinal     []PluralRule
}

// Categories lists the cardinal categories in CLDR order.
func (set *PluralRuleSet) Categories() []PluralCategory {
	if set == nil || len(set.Cardinal) == 0 {
		return nil
	}

	categories := make([]PluralCategory, 0, len(set.Cardinal))
	seen := make(map[PluralCategory]struct{}, len(set.Cardinal))
	for _, rule := range set.Cardinal {
		if rule.Category == "" {
			continue
		}
		if _, ok := seen[rule.Category]; ok {
			continue
		}
		seen[rule.Category] = struct{}{}
		categories = append(categories, rule.Category)
	}
	return categories
}

// Match evaluates the rules of the requested kind. ok is false when the set
// carries no rules of that kind.
func (set *PluralRuleSet) Match(ops PluralOperands, kind PluralKind) (PluralCategory, bool) {
	if set == nil {
		return "", false
	}

	rules := set.Cardinal
	if kind == Ordinal {
		rules = set.Ordinal
	}
	if len(rules) == 0 {
		return "", false
	}

	for _, rule := range rules {
		if rule.matches(ops) {
			return rule.Category, true
		}
	}
	return PluralOther, true
}

func (r PluralRule) matches(ops PluralOperands) bool {
	if len(r.Groups) == 0 {
		return true
	}
	for _, group := range r.Groups {
		all := true
		for _, cond := range group {
			if !cond.holds(ops) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func (c PluralCondition) holds(ops PluralOperands) bool {
	value, ok := operandValue(ops, c.Operand)
	if !ok {
		return false
	}
	if c.Mod > 0 {
		value = math.Mod(value, float64(c.Mod))
	}

	integer := value == math.Trunc(value)

	switch c.Operator {
	case OperatorEquals, OperatorIn:
		return integer && c.contains(value)
	case OperatorNotEquals, OperatorNotIn:
		return !(integer && c.contains(value))
	case OperatorWithin:
		return c.contains(value) || c.within(value)
	case OperatorNotWithin:
		return !(c.contains(value) || c.within(value))
	default:
		return false
	}
}

func (c PluralCondition) contains(value float64) bool {
	for _, v := range c.Values {
		if v == value {
			return true
		}
	}
	for _, r := range c.Ranges {
		if value >= r.Start && value <= r.End && value == math.Trunc(value) {
			return true
		}
	}
	return false
}

func (c PluralCondition) within(value float64) bool {
	for _, r := range c.Ranges {
		if value >= r.Start && value <= r.End {
			return true
		}
	}
	return false
}

func operandValue(ops PluralOperands, operand string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(operand)) {
	case "n":
		return ops.N, true
	case "i":
		return float64(ops.I), true
	case "v":
		return float64(ops.V), true
	case "w":
		return float64(ops.W), true
	case "f":
		return float64(ops.F), true
	case "t":
		return float64(ops.T), true
	default:
		return 0, false
	}
}

// RuleSetTable is a PluralRuleTable built from rule files. Lookups walk the
// locale parent chain, so rules for "pt" also serve "pt-BR".
type RuleSetTable struct {
	mu   sync.RWMutex
	sets map[string]*PluralRuleSet
}

var _ PluralRuleTable = (*RuleSetTable)(nil)

func NewRuleSetTable(sets ...*PluralRuleSet) *RuleSetTable {
	table := &RuleSetTable{sets: make(map[string]*PluralRuleSet, len(sets))}
	for _, set := range sets {
		table.Add(set)
	}
	return table
}

// Add registers or replaces the rules for set.Locale.
func (t *RuleSetTable) Add(set *PluralRuleSet) {
	if t == nil || set == nil || set.Locale == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sets[normalizeLocale(set.Locale)] = set
}

func (t *RuleSetTable) Locales() []string {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	locales := make([]string, 0, len(t.sets))
	for locale := range t.sets {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

func (t *RuleSetTable) PluralCategory(locale string, ops PluralOperands, kind PluralKind) (PluralCategory, bool) {
	if t == nil {
		return "", false
	}

	locale = normalizeLocale(locale)
	candidates := append([]string{locale}, localeAncestors(locale)...)

	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, candidate := range candidates {
		set, ok := t.sets[candidate]
		if !ok {
			continue
		}
		if category, ok := set.Match(ops, kind); ok {
			return category, true
		}
		if set.Parent != "" {
			if parent, ok := t.sets[normalizeLocale(set.Parent)]; ok {
				if category, ok := parent.Match(ops, kind); ok {
					return category, true
				}
			}
		}
	}
	return "", false
}

func parsePluralCategory(raw string) (PluralCategory, error) {
	category := PluralCategory(strings.ToLower(strings.TrimSpace(raw)))
	if IsPluralCategory(string(category)) {
		return category, nil
	}
	return "", fmt.Errorf("unknown plural category %q", raw)
}

func parseConditionOperator(raw string) (PluralConditionOperator, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(OperatorEquals), "=", "==":
		return OperatorEquals, nil
	case string(OperatorNotEquals), "!=":
		return OperatorNotEquals, nil
	case string(OperatorIn):
		return OperatorIn, nil
	case string(OperatorNotIn):
		return OperatorNotIn, nil
	case string(OperatorWithin):
		return OperatorWithin, nil
	case string(OperatorNotWithin):
		return OperatorNotWithin, nil
	default:
		return "", fmt.Errorf("unknown condition operator %q", raw)
	}
}

func pluralCategoryOrder(category PluralCategory) int {
	for i, c := range pluralCategories {
		if c == category {
			return i
		}
	}
	return len(pluralCategories)
}
