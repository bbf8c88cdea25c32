package i18n

// FormattingRules contains the locale patterns used by the date and number
// formatters.
type FormattingRules struct {
	Locale       string            `json:"locale" yaml:"locale"`
	DatePatterns DatePatternRules  `json:"date_patterns" yaml:"date_patterns"`
	NumberRules  NumberFormatRules `json:"number_rules" yaml:"number_rules"`
	MonthNames   []string          `json:"month_names" yaml:"month_names"`
	MonthShort   []string          `json:"month_short" yaml:"month_short"`
}

// DatePatternRules define how dates render per named style. Patterns use the
// placeholders {day}, {month}, {month_short}, {month_num} and {year}.
type DatePatternRules struct {
	Short  string `json:"short" yaml:"short"`
	Medium string `json:"medium" yaml:"medium"`
	Long   string `json:"long" yaml:"long"`
}

// NumberFormatRules override separators when x/text output is not wanted.
type NumberFormatRules struct {
	DecimalSep     string `json:"decimal_separator" yaml:"decimal_separator"`
	ThousandSep    string `json:"thousand_separator" yaml:"thousand_separator"`
	SymbolPosition string `json:"symbol_position" yaml:"symbol_position"` // "before", "after"
}
