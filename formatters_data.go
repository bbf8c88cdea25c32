package i18n

import (
	"golang.org/x/text/language"
)

// formattingRulesData holds the rules shipped for the default formatter
// locales. Keep it next to defaultFormatterLocales when adding locales.
var formattingRulesData = map[string]FormattingRules{
	"en": {
		Locale: "en",
		DatePatterns: DatePatternRules{
			Short:  "{month_num}/{day}/{year}",
			Medium: "{month_short} {day}, {year}",
			Long:   "{month} {day}, {year}",
		},
		NumberRules: NumberFormatRules{DecimalSep: ".", ThousandSep: ",", SymbolPosition: "before"},
		MonthNames: []string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		MonthShort: []string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
		},
	},
	"es": {
		Locale: "es",
		DatePatterns: DatePatternRules{
			Short:  "{day}/{month_num}/{year}",
			Medium: "{day} {month_short} {year}",
			Long:   "{day} de {month} de {year}",
		},
		NumberRules: NumberFormatRules{DecimalSep: ",", ThousandSep: ".", SymbolPosition: "after"},
		MonthNames: []string{
			"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
		},
		MonthShort: []string{
			"ene", "feb", "mar", "abr", "may", "jun",
			"jul", "ago", "sept", "oct", "nov", "dic",
		},
	},
	"cs": {
		Locale: "cs",
		DatePatterns: DatePatternRules{
			Short:  "{day}.{month_num}.{year}",
			Medium: "{day}. {month_num}. {year}",
			Long:   "{day}. {month} {year}",
		},
		NumberRules: NumberFormatRules{DecimalSep: ",", ThousandSep: " ", SymbolPosition: "after"},
		MonthNames: []string{
			"ledna", "února", "března", "dubna", "května", "června",
			"července", "srpna", "září", "října", "listopadu", "prosince",
		},
		MonthShort: []string{
			"led", "úno", "bře", "dub", "kvě", "čvn",
			"čvc", "srp", "zář", "říj", "lis", "pro",
		},
	},
}

// FormattingRulesProvider resolves formatting rules for locales.
type FormattingRulesProvider struct {
	rules    map[string]FormattingRules
	resolver FallbackResolver
}

// NewFormattingRulesProvider layers overrides on top of the shipped rules.
func NewFormattingRulesProvider(overrides map[string]FormattingRules, resolver FallbackResolver) *FormattingRulesProvider {
	rules := make(map[string]FormattingRules, len(formattingRulesData)+len(overrides))
	for k, v := range formattingRulesData {
		rules[k] = v
	}
	for k, v := range overrides {
		rules[normalizeLocale(k)] = v
	}

	return &FormattingRulesProvider{
		rules:    rules,
		resolver: resolver,
	}
}

// Get tries the exact locale, the resolver chain, the base language and
// finally English.
func (p *FormattingRulesProvider) Get(locale string) *FormattingRules {
	if p == nil || p.rules == nil {
		rules := formattingRulesData["en"]
		return &rules
	}

	locale = normalizeLocale(locale)
	if rules, ok := p.rules[locale]; ok {
		return &rules
	}

	if p.resolver != nil {
		for _, candidate := range p.resolver.Resolve(locale) {
			if rules, ok := p.rules[candidate]; ok {
				return &rules
			}
		}
	}

	base, _ := language.Make(locale).Base()
	if rules, ok := p.rules[base.String()]; ok {
		return &rules
	}

	if rules, ok := p.rules["en"]; ok {
		return &rules
	}

	rules := formattingRulesData["en"]
	return &rules
}
