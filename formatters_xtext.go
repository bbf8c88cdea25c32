package i18n

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// RegisterXTextFormatters registers locale aware number and date formatters
// backed by golang.org/x/text for each locale.
func RegisterXTextFormatters(registry *FormatterRegistry, rulesProvider *FormattingRulesProvider, locales ...string) {
	if registry == nil {
		return
	}

	for _, locale := range locales {
		trimmed := normalizeLocale(locale)
		if trimmed == "" {
			continue
		}

		provider := newXTextProvider(trimmed, rulesProvider)
		registry.RegisterLocale(trimmed, FormatTypeNumber, provider.formatNumber)
		registry.RegisterLocale(trimmed, FormatTypeDate, provider.formatDate)
	}
}

type xtextProvider struct {
	locale  string
	tag     language.Tag
	printer *message.Printer
	rules   *FormattingRules
}

func newXTextProvider(locale string, rulesProvider *FormattingRulesProvider) *xtextProvider {
	tag := language.Make(locale)

	var rules *FormattingRules
	if rulesProvider != nil {
		rules = rulesProvider.Get(locale)
	} else {
		rules = NewFormattingRulesProvider(nil, nil).Get(locale)
	}

	return &xtextProvider{
		locale:  locale,
		tag:     tag,
		printer: message.NewPrinter(tag),
		rules:   rules,
	}
}

func (p *xtextProvider) formatNumber(_ string, value any, style Style) string {
	n, ok := toFloat(value)
	if !ok {
		return stringify(value)
	}

	var opts []number.Option
	if min, ok := style.Int("minimumFractionDigits"); ok {
		opts = append(opts, number.MinFractionDigits(min))
	}
	if max, ok := style.Int("maximumFractionDigits"); ok {
		opts = append(opts, number.MaxFractionDigits(max))
	}

	switch style.Name() {
	case "percent":
		return p.printer.Sprint(number.Percent(n, opts...))
	case "integer":
		return p.printer.Sprint(number.Decimal(n, number.MaxFractionDigits(0)))
	case "currency":
		code, _ := style.String("currency")
		return p.formatCurrency(n, code)
	}
	return p.printer.Sprint(number.Decimal(n, opts...))
}

func (p *xtextProvider) formatCurrency(amount float64, code string) string {
	formatted := p.printer.Sprint(number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	code = strings.TrimSpace(code)
	if code == "" {
		return formatted
	}

	symbol := strings.ToUpper(code)
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = p.currencySymbol(unit)
	}

	if p.rules != nil && p.rules.NumberRules.SymbolPosition == "after" {
		return formatted + " " + symbol
	}
	return symbol + formatted
}

// currencySymbol isolates the symbol x/text prints for a zero amount.
func (p *xtextProvider) currencySymbol(unit currency.Unit) string {
	full := p.printer.Sprint(currency.Symbol(unit.Amount(0)))
	symbol := strings.TrimSpace(strings.TrimRight(full, "0.,\u00a0 "))
	if symbol == "" {
		return unit.String()
	}
	return symbol
}

func (p *xtextProvider) formatDate(_ string, value any, style Style) string {
	t, ok := toTime(value)
	if !ok {
		return stringify(value)
	}
	if p.rules == nil {
		return FormatDate(t)
	}

	pattern := p.rules.DatePatterns.Short
	switch dateStyleName(style) {
	case "medium":
		pattern = p.rules.DatePatterns.Medium
	case "long", "full":
		pattern = p.rules.DatePatterns.Long
	}
	if pattern == "" {
		return FormatDate(t)
	}
	return p.renderDate(pattern, t)
}

// dateStyleName maps named and Intl style option bags onto short, medium
// or long.
func dateStyleName(style Style) string {
	if name := style.Name(); name != "" {
		return name
	}
	if name, ok := style.String("dateStyle"); ok {
		return name
	}
	switch month, _ := style.String("month"); month {
	case "long":
		return "long"
	case "short":
		return "medium"
	}
	return "short"
}

func (p *xtextProvider) renderDate(pattern string, t time.Time) string {
	month := int(t.Month()) - 1
	replacer := strings.NewReplacer(
		"{day}", strconv.Itoa(t.Day()),
		"{month_num}", strconv.Itoa(month+1),
		"{month_short}", monthName(p.rules.MonthShort, month),
		"{month}", monthName(p.rules.MonthNames, month),
		"{year}", strconv.Itoa(t.Year()),
	)
	return replacer.Replace(pattern)
}

func monthName(names []string, month int) string {
	if month < 0 || month >= len(names) {
		return strconv.Itoa(month + 1)
	}
	return names[month]
}
