package i18n

// Config captures runtime, plural rule and formatter setup
type Config struct {
	DefaultLocale string
	Locales       []string
	Loader        Loader
	Store         *MemoryStore
	Resolver      FallbackResolver
	Hooks         []TranslationHook
	Styles        map[string]Style
	StrictMissing bool

	pluralRules         PluralRuleTable
	pluralRuleFiles     []string
	seedParentFallbacks bool

	formatterLocales  []string
	formattingRules   map[string]FormattingRules
	formatterRegistry *FormatterRegistry
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	cfg.Locales = normalizeLocales(cfg.Locales)
	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)

	if cfg.Store == nil {
		store, err := NewMemoryStoreFromLoader(cfg.Loader)
		if err != nil {
			return nil, err
		}
		cfg.Store = store
	}

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}

	if cfg.DefaultLocale == "" && len(cfg.Locales) > 0 {
		cfg.DefaultLocale = cfg.Locales[0]
	}

	return cfg, nil
}

// WithDefaultLocale sets the language a built runtime starts with
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithLocales registers supported locales
func WithLocales(locales ...string) Option {
	return func(c *Config) error {
		c.Locales = append(c.Locales, locales...)
		return nil
	}
}

func WithLoader(loader Loader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

func WithStore(store *MemoryStore) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

// WithParentFallbacks seeds the static resolver with the parent chain of
// every configured locale (pt-BR -> pt) unless a chain is already set.
func WithParentFallbacks() Option {
	return func(c *Config) error {
		c.seedParentFallbacks = true
		return nil
	}
}

// WithPluralRules replaces the x/text plural rules.
func WithPluralRules(table PluralRuleTable) Option {
	return func(c *Config) error {
		c.pluralRules = table
		return nil
	}
}

// EnablePluralRuleFiles loads CLDR rule files consulted before the x/text
// rules.
func EnablePluralRuleFiles(paths ...string) Option {
	return func(c *Config) error {
		c.pluralRuleFiles = append(c.pluralRuleFiles, paths...)
		return nil
	}
}

func WithFormatterLocales(locales ...string) Option {
	return func(c *Config) error {
		if len(locales) == 0 {
			return nil
		}
		c.formatterLocales = append(c.formatterLocales, locales...)
		c.formatterLocales = normalizeLocales(c.formatterLocales)
		c.formatterRegistry = nil
		return nil
	}
}

// WithFormattingRules overrides the date and number conventions of a
// locale.
func WithFormattingRules(locale string, rules FormattingRules) Option {
	return func(c *Config) error {
		locale = normalizeLocale(locale)
		if locale == "" {
			return nil
		}
		if c.formattingRules == nil {
			c.formattingRules = make(map[string]FormattingRules)
		}
		rules.Locale = locale
		c.formattingRules[locale] = rules
		c.formatterRegistry = nil
		return nil
	}
}

func WithFormatterRegistry(registry *FormatterRegistry) Option {
	return func(c *Config) error {
		c.formatterRegistry = registry
		return nil
	}
}

// WithFormatStyles registers named number/date styles for every message.
func WithFormatStyles(styles map[string]Style) Option {
	return func(c *Config) error {
		if c.Styles == nil {
			c.Styles = make(map[string]Style, len(styles))
		}
		for name, style := range styles {
			c.Styles[name] = style
		}
		return nil
	}
}

func WithTranslatorHooks(hooks ...TranslationHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

// WithStrictMissing logs missing translations at warn level.
func WithStrictMissing() Option {
	return func(c *Config) error {
		c.StrictMissing = true
		return nil
	}
}

// BuildRuntime creates a runtime for DefaultLocale over the config store.
func (cfg *Config) BuildRuntime() (*Runtime, error) {
	if cfg == nil {
		return NewRuntime(""), nil
	}

	rules, err := cfg.PluralRules()
	if err != nil {
		return nil, err
	}

	cfg.seedResolverFallbacks()

	return NewRuntime(cfg.DefaultLocale,
		WithRuntimeStore(cfg.Store),
		WithRuntimePluralRules(rules),
		WithRuntimeFormatters(cfg.FormatterRegistry()),
		WithRuntimeStyles(cfg.Styles),
		WithRuntimeFallbackResolver(cfg.Resolver),
		WithRuntimeHooks(cfg.Hooks...),
		WithRuntimeStrictMissing(cfg.StrictMissing),
	), nil
}

// PluralRules returns the rule files (if any) chained before the
// configured or x/text rules.
func (cfg *Config) PluralRules() (PluralRuleTable, error) {
	var base PluralRuleTable = XTextPluralRules{}
	if cfg.pluralRules != nil {
		base = cfg.pluralRules
	}
	if len(cfg.pluralRuleFiles) == 0 {
		return base, nil
	}

	table, err := LoadPluralRules(cfg.pluralRuleFiles...)
	if err != nil {
		return nil, err
	}
	return ChainPluralRules{table, base}, nil
}

func (cfg *Config) FormatterRegistry() *FormatterRegistry {
	if cfg == nil {
		return nil
	}
	cfg.ensureFormatterRegistry()
	return cfg.formatterRegistry
}

func (cfg *Config) TemplateHelpers(rt *Runtime, helperCfg HelperConfig) map[string]any {
	if rt == nil && cfg != nil {
		if built, err := cfg.BuildRuntime(); err == nil {
			rt = built
		}
	}
	return TemplateHelpers(rt, helperCfg)
}

func (cfg *Config) seedResolverFallbacks() {
	if !cfg.seedParentFallbacks {
		return
	}

	resolver, ok := cfg.Resolver.(*StaticFallbackResolver)
	if !ok || resolver == nil {
		return
	}

	seen := make(map[string]struct{}, len(cfg.Locales))
	var localeCandidates []string

	appendCandidate := func(locale string) {
		if locale == "" {
			return
		}
		if _, exists := seen[locale]; exists {
			return
		}
		seen[locale] = struct{}{}
		localeCandidates = append(localeCandidates, locale)
	}

	if cfg.Store != nil {
		for _, locale := range cfg.Store.Locales() {
			appendCandidate(locale)
		}
	}

	for _, locale := range cfg.Locales {
		appendCandidate(locale)
	}

	for _, locale := range localeCandidates {
		if existing := resolver.Resolve(locale); existing != nil {
			continue
		}
		chain := localeAncestors(locale)
		if len(chain) == 0 {
			continue
		}
		resolver.Set(locale, chain...)
	}
}

func (cfg *Config) ensureFormatterRegistry() {
	if cfg.formatterRegistry != nil {
		return
	}

	locales := append([]string{}, defaultFormatterLocales...)
	locales = append(locales, cfg.formatterLocales...)
	locales = append(locales, cfg.Locales...)
	locales = normalizeLocales(locales)

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}

	rulesProvider := NewFormattingRulesProvider(cfg.formattingRules, cfg.Resolver)

	cfg.formatterRegistry = NewFormatterRegistry(
		WithFormatterRegistryResolver(cfg.Resolver),
		WithFormatterRegistryLocales(locales...),
		WithFormattingRulesProvider(rulesProvider),
	)
}
