package i18n

import (
	"maps"
	"sync"
)

// FormatterRegistry resolves the FormatFunc used for an ICU argument type
// (number, date, or any custom type) in a locale. Locale overrides are
// searched along the fallback chain before the defaults.
type FormatterRegistry struct {
	mu        sync.RWMutex
	defaults  map[string]FormatFunc
	overrides map[string]map[string]FormatFunc
	resolver  FallbackResolver
	locales   []string
	cache     map[string]map[string]FormatFunc
}

var defaultFormatterLocales = []string{"en", "es", "cs"}

type formatterRegistryConfig struct {
	resolver      FallbackResolver
	locales       []string
	rulesProvider *FormattingRulesProvider
	plain         bool
}

type FormatterRegistryOption func(*formatterRegistryConfig)

func WithFormatterRegistryResolver(resolver FallbackResolver) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.resolver = resolver
	}
}

func WithFormatterRegistryLocales(locales ...string) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.locales = append(frc.locales, locales...)
	}
}

func WithFormattingRulesProvider(provider *FormattingRulesProvider) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.rulesProvider = provider
	}
}

// WithPlainFormatters skips the x/text providers and keeps only the
// locale independent defaults.
func WithPlainFormatters() FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.plain = true
	}
}

// NewFormatterRegistry seeds a registry with plain defaults and x/text
// providers for the configured (or default) locales.
func NewFormatterRegistry(opts ...FormatterRegistryOption) *FormatterRegistry {
	cfg := formatterRegistryConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	cfg.locales = normalizeLocales(cfg.locales)

	registry := &FormatterRegistry{
		defaults: map[string]FormatFunc{
			FormatTypeNumber: plainNumberFormat,
			FormatTypeDate:   plainDateFormat,
		},
		overrides: make(map[string]map[string]FormatFunc),
		resolver:  cfg.resolver,
		locales:   cfg.locales,
	}

	if !cfg.plain {
		locales := cfg.locales
		if len(locales) == 0 {
			locales = defaultFormatterLocales
		}
		rules := cfg.rulesProvider
		if rules == nil {
			rules = NewFormattingRulesProvider(nil, cfg.resolver)
		}
		RegisterXTextFormatters(registry, rules, locales...)
	}

	return registry
}

// Register sets the default implementation for an argument type.
func (r *FormatterRegistry) Register(typ string, fn FormatFunc) {
	if typ == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.defaults == nil {
		r.defaults = make(map[string]FormatFunc)
	}
	r.defaults[typ] = fn
	r.cache = nil
}

// RegisterLocale registers a locale specific override for an argument type.
func (r *FormatterRegistry) RegisterLocale(locale, typ string, fn FormatFunc) {
	locale = normalizeLocale(locale)
	if locale == "" || typ == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.overrides == nil {
		r.overrides = make(map[string]map[string]FormatFunc)
	}
	funcs := r.overrides[locale]
	if funcs == nil {
		funcs = make(map[string]FormatFunc)
		r.overrides[locale] = funcs
	}
	funcs[typ] = fn
	r.cache = nil
}

// Formatter returns the implementation for typ in locale.
func (r *FormatterRegistry) Formatter(typ, locale string) (FormatFunc, bool) {
	if r == nil || typ == "" {
		return nil, false
	}
	fn, ok := r.funcsForLocale(locale)[typ]
	return fn, ok && fn != nil
}

// Format renders value with the formatter for typ, or stringifies it when
// none is registered.
func (r *FormatterRegistry) Format(typ, locale string, value any, style Style) string {
	fn, ok := r.Formatter(typ, locale)
	if !ok {
		return identityFormat(locale, value, style)
	}
	return fn(locale, value, style)
}

func (r *FormatterRegistry) funcsForLocale(locale string) map[string]FormatFunc {
	key := normalizeLocale(locale)

	r.mu.RLock()
	if cached, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache == nil {
		r.cache = make(map[string]map[string]FormatFunc)
	} else if cached, ok := r.cache[key]; ok {
		return cached
	}

	result := make(map[string]FormatFunc, len(r.defaults))
	maps.Copy(result, r.defaults)

	// Least specific first so the requested locale wins.
	candidates := r.candidateLocales(key)
	for i := len(candidates) - 1; i >= 0; i-- {
		if funcs, ok := r.overrides[candidates[i]]; ok {
			maps.Copy(result, funcs)
		}
	}

	r.cache[key] = result
	return result
}

func (r *FormatterRegistry) candidateLocales(locale string) []string {
	if locale == "" {
		return nil
	}

	chain := []string{locale}
	var parents []string
	if r.resolver != nil {
		parents = r.resolver.Resolve(locale)
	}
	if len(parents) == 0 {
		parents = localeAncestors(locale)
	}
	for _, parent := range parents {
		if parent == "" || containsLocale(chain, parent) {
			continue
		}
		chain = append(chain, parent)
	}
	return chain
}

func containsLocale(locales []string, target string) bool {
	for _, locale := range locales {
		if locale == target {
			return true
		}
	}
	return false
}
