package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileLoader reads compiled catalogs (locale -> id -> pattern) from JSON or
// YAML files. Later files override earlier ones.
type FileLoader struct {
	paths []string
}

var _ Loader = (*FileLoader)(nil)

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

func (l *FileLoader) Load() (Catalogs, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, ErrNoLoaderPaths
	}

	catalogs := make(Catalogs)
	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", path, err)
		}

		src, err := decodeTranslationFile(path, data)
		if err != nil {
			return nil, fmt.Errorf("i18n: decode %s: %w", path, err)
		}
		mergeCatalogs(catalogs, src)
	}

	return catalogs, nil
}

func decodeTranslationFile(path string, data []byte) (Catalogs, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var raw map[string]map[string]any
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	if len(raw) == 0 {
		return nil, errors.New("empty translations file")
	}

	catalogs := make(Catalogs, len(raw))
	for locale, messages := range raw {
		if locale == "" {
			return nil, fmt.Errorf("empty locale in %s", path)
		}

		catalog := make(map[string]string, len(messages))
		for id, value := range messages {
			if id == "" {
				return nil, fmt.Errorf("empty id in %s/%s", locale, path)
			}
			text, err := messageText(value)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", locale, id, err)
			}
			catalog[id] = text
		}
		catalogs[locale] = catalog
	}

	return catalogs, nil
}

// messageText accepts a plain pattern or a catalog record holding a
// "translation" field.
func messageText(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case map[string]any:
		text, ok := v["translation"].(string)
		if !ok {
			return "", fmt.Errorf("record without a translation string")
		}
		return text, nil
	default:
		return "", fmt.Errorf("unsupported message value type: %T", value)
	}
}

func mergeCatalogs(dst, src Catalogs) {
	for locale, messages := range src {
		target := dst[locale]
		if target == nil {
			target = make(map[string]string, len(messages))
			dst[locale] = target
		}
		for id, text := range messages {
			target[id] = text
		}
	}
}

// LoadPluralRules reads CLDR style rule files into a table. Files are JSON
// or YAML, either wrapped in a "locales" key or keyed by locale directly:
//
//	{"locales": {"cs": {"parent": "", "cardinal": {"one": [[{"operand": "i", "operator": "is", "values": [1]}, ...]]}}}}
func LoadPluralRules(paths ...string) (*RuleSetTable, error) {
	if len(paths) == 0 {
		return nil, ErrNoLoaderPaths
	}

	table := NewRuleSetTable()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("i18n: read plural rules %s: %w", path, err)
		}
		sets, err := decodePluralRules(path, data)
		if err != nil {
			return nil, fmt.Errorf("i18n: decode plural rules %s: %w", path, err)
		}
		for _, set := range sets {
			table.Add(set)
		}
	}

	return table, nil
}

type rawPluralRulesFile struct {
	Locales map[string]rawLocaleRules `json:"locales" yaml:"locales"`
}

type rawLocaleRules struct {
	Name     string                         `json:"name" yaml:"name"`
	Parent   string                         `json:"parent" yaml:"parent"`
	Cardinal map[string][]rawConditionGroup `json:"cardinal" yaml:"cardinal"`
	Ordinal  map[string][]rawConditionGroup `json:"ordinal,omitempty" yaml:"ordinal,omitempty"`
}

type rawConditionGroup []rawCondition

type rawCondition struct {
	Operand  string     `json:"operand" yaml:"operand"`
	Mod      *int       `json:"mod,omitempty" yaml:"mod,omitempty"`
	Operator string     `json:"operator" yaml:"operator"`
	Values   []float64  `json:"values,omitempty" yaml:"values,omitempty"`
	Ranges   []rawRange `json:"ranges,omitempty" yaml:"ranges,omitempty"`
}

type rawRange struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

func decodePluralRules(path string, data []byte) ([]*PluralRuleSet, error) {
	unmarshal := json.Unmarshal
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	}

	wrapper := rawPluralRulesFile{}
	if err := unmarshal(data, &wrapper); err != nil || len(wrapper.Locales) == 0 {
		var direct map[string]rawLocaleRules
		if errDirect := unmarshal(data, &direct); errDirect != nil {
			if err != nil {
				return nil, err
			}
			return nil, errDirect
		}
		delete(direct, "locales")
		wrapper.Locales = direct
	}

	if len(wrapper.Locales) == 0 {
		return nil, fmt.Errorf("i18n: plural rule file %s has no locales", path)
	}

	locales := make([]string, 0, len(wrapper.Locales))
	for locale := range wrapper.Locales {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	result := make([]*PluralRuleSet, 0, len(locales))
	for _, locale := range locales {
		ruleSet, err := buildRuleSet(locale, wrapper.Locales[locale])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", locale, err)
		}
		result = append(result, ruleSet)
	}

	return result, nil
}

func buildRuleSet(locale string, raw rawLocaleRules) (*PluralRuleSet, error) {
	if len(raw.Cardinal) == 0 {
		return nil, fmt.Errorf("missing cardinal rules")
	}

	cardinal, err := buildRules(raw.Cardinal)
	if err != nil {
		return nil, err
	}

	var ordinal []PluralRule
	if len(raw.Ordinal) > 0 {
		if ordinal, err = buildRules(raw.Ordinal); err != nil {
			return nil, fmt.Errorf("ordinal: %w", err)
		}
	}

	return &PluralRuleSet{
		Locale:      locale,
		DisplayName: raw.Name,
		Parent:      raw.Parent,
		Cardinal:    cardinal,
		Ordinal:     ordinal,
	}, nil
}

// buildRules converts raw rules ordered by category and appends an
// unconditional other rule when the file omits it.
func buildRules(raw map[string][]rawConditionGroup) ([]PluralRule, error) {
	entries := make([]PluralRule, 0, len(raw)+1)
	for category, rawGroups := range raw {
		cat, err := parsePluralCategory(category)
		if err != nil {
			return nil, err
		}

		groups := make([][]PluralCondition, 0, len(rawGroups))
		for _, rawGroup := range rawGroups {
			conditions := make([]PluralCondition, 0, len(rawGroup))
			for _, rc := range rawGroup {
				operator, err := parseConditionOperator(rc.Operator)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", category, err)
				}
				cond := PluralCondition{
					Operand:  rc.Operand,
					Operator: operator,
					Values:   append([]float64(nil), rc.Values...),
				}
				if rc.Mod != nil {
					cond.Mod = *rc.Mod
				}
				for _, r := range rc.Ranges {
					cond.Ranges = append(cond.Ranges, PluralRange{Start: r.Start, End: r.End})
				}
				conditions = append(conditions, cond)
			}
			if len(conditions) > 0 {
				groups = append(groups, conditions)
			}
		}

		entries = append(entries, PluralRule{Category: cat, Groups: groups})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return pluralCategoryOrder(entries[i].Category) < pluralCategoryOrder(entries[j].Category)
	})

	if len(entries) == 0 || entries[len(entries)-1].Category != PluralOther {
		entries = append(entries, PluralRule{Category: PluralOther})
	}

	return entries, nil
}
