package i18n

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// TranslationSource tells where a translated pattern came from.
type TranslationSource string

const (
	SourceCatalog  TranslationSource = "catalog"
	SourceFallback TranslationSource = "fallback"
	SourceDefaults TranslationSource = "defaults"
	SourceID       TranslationSource = "id"
)

// Runtime translates message descriptors for its active language.
//
// Views created with Use share the catalog store, the compiled message
// cache and every other setting; only the language is per view. Runtime
// never fails: a missing entry falls back to the defaults, then the id, and
// a malformed pattern is rendered verbatim.
type Runtime struct {
	*runtimeShared

	mu       sync.RWMutex
	language string
}

type runtimeShared struct {
	store      *MemoryStore
	rules      PluralRuleTable
	formatters *FormatterRegistry
	styles     map[string]Style
	resolver   FallbackResolver
	hooks      []TranslationHook
	strict     bool

	// cache holds MessageFunc values keyed by compiledKey.
	cache sync.Map
}

type compiledKey struct {
	locale  string
	pattern string
}

var _ Translator = (*Runtime)(nil)

type RuntimeOption func(*runtimeShared)

// WithRuntimeStore shares an existing store instead of creating one.
func WithRuntimeStore(store *MemoryStore) RuntimeOption {
	return func(s *runtimeShared) {
		if store != nil {
			s.store = store
		}
	}
}

func WithRuntimePluralRules(table PluralRuleTable) RuntimeOption {
	return func(s *runtimeShared) {
		if table != nil {
			s.rules = table
		}
	}
}

func WithRuntimeFormatters(registry *FormatterRegistry) RuntimeOption {
	return func(s *runtimeShared) {
		s.formatters = registry
	}
}

// WithRuntimeStyles registers named format styles available to every
// message.
func WithRuntimeStyles(styles map[string]Style) RuntimeOption {
	return func(s *runtimeShared) {
		if len(styles) == 0 {
			return
		}
		if s.styles == nil {
			s.styles = make(map[string]Style, len(styles))
		}
		for name, style := range styles {
			s.styles[name] = style
		}
	}
}

// WithRuntimeFallbackResolver enables catalog lookups in fallback locales
// before the defaults are used.
func WithRuntimeFallbackResolver(resolver FallbackResolver) RuntimeOption {
	return func(s *runtimeShared) {
		s.resolver = resolver
	}
}

func WithRuntimeHooks(hooks ...TranslationHook) RuntimeOption {
	return func(s *runtimeShared) {
		for _, hook := range hooks {
			if hook != nil {
				s.hooks = append(s.hooks, hook)
			}
		}
	}
}

// WithRuntimeStrictMissing logs missing translations at warn level instead
// of debug.
func WithRuntimeStrictMissing(strict bool) RuntimeOption {
	return func(s *runtimeShared) {
		s.strict = strict
	}
}

// NewRuntime creates a runtime with language active.
func NewRuntime(language string, opts ...RuntimeOption) *Runtime {
	shared := &runtimeShared{rules: XTextPluralRules{}}
	for _, opt := range opts {
		if opt != nil {
			opt(shared)
		}
	}
	if shared.store == nil {
		shared.store = NewMemoryStore(nil)
	}
	return &Runtime{runtimeShared: shared, language: normalizeLocale(language)}
}

// Load merges catalogs into the shared store. Loaded ids replace existing
// ones; everything else is kept.
func (r *Runtime) Load(catalogs Catalogs) {
	r.store.Merge(catalogs)
}

// LoadFrom merges the catalogs returned by loader.
func (r *Runtime) LoadFrom(loader Loader) error {
	if loader == nil {
		return nil
	}
	catalogs, err := loader.Load()
	if err != nil {
		return err
	}
	r.Load(catalogs)
	return nil
}

// Activate switches the language of this view. An empty language is
// ignored.
func (r *Runtime) Activate(language string) {
	language = normalizeLocale(language)
	if language == "" {
		return
	}
	r.mu.Lock()
	r.language = language
	r.mu.Unlock()
}

func (r *Runtime) Language() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.language
}

// Use returns a view for language sharing catalogs and settings with r.
// The language of r is left unchanged.
func (r *Runtime) Use(language string) *Runtime {
	language = normalizeLocale(language)
	if language == "" {
		language = r.Language()
	}
	return &Runtime{runtimeShared: r.runtimeShared, language: language}
}

// Store returns the catalog store shared by all views.
func (r *Runtime) Store() *MemoryStore {
	return r.store
}

// Translate resolves d in the active language and renders it.
func (r *Runtime) Translate(d Descriptor) string {
	if len(r.hooks) > 0 {
		return (&HookedTranslator{next: r, hooks: r.hooks}).Translate(d)
	}
	out, _, _ := r.translateIn(r.Language(), d)
	return out
}

// T translates a message by id.
func (r *Runtime) T(id string, params Params) string {
	return r.Translate(Descriptor{ID: id, Params: params})
}

// translateIn resolves and renders d for language. The returned error is
// informational; the string is always usable.
func (r *Runtime) translateIn(language string, d Descriptor) (string, map[string]any, error) {
	resolved, err := d.Resolve()
	if err != nil {
		Logger.Debug().Err(err).Str("locale", language).Msg("Rejected message descriptor")
		return resolved.ID, map[string]any{
			metadataSource: SourceID,
			metadataLocale: language,
			metadataID:     resolved.ID,
		}, err
	}

	pattern, locale, source := r.lookup(language, resolved)
	metadata := map[string]any{
		metadataSource: source,
		metadataLocale: locale,
		metadataID:     resolved.ID,
	}

	var missing error
	if source == SourceDefaults || source == SourceID {
		missing = ErrMissingTranslation
		level := zerolog.DebugLevel
		if r.strict {
			level = zerolog.WarnLevel
		}
		logMissingOnce(level, language, resolved.ID)
	}

	fn, err := r.compiled(locale, pattern, resolved.Formats)
	if err != nil {
		return fn(resolved.Params), metadata, errors.Join(missing, err)
	}
	return fn(resolved.Params), metadata, missing
}

func (r *Runtime) lookup(language string, d Descriptor) (pattern, locale string, source TranslationSource) {
	if text, ok := r.store.Get(language, d.ID); ok && text != "" {
		return text, language, SourceCatalog
	}
	if r.resolver != nil {
		for _, fallback := range r.resolver.Resolve(language) {
			if text, ok := r.store.Get(fallback, d.ID); ok && text != "" {
				return text, fallback, SourceFallback
			}
		}
	}
	if d.Defaults != "" {
		return d.Defaults, language, SourceDefaults
	}
	return d.ID, language, SourceID
}

// Compile compiles pattern for the active language.
func (r *Runtime) Compile(pattern string) (MessageFunc, error) {
	return r.compiled(r.Language(), pattern, nil)
}

// compiled returns the cached function for (locale, pattern). Messages with
// their own format styles are compiled per call. A pattern that fails to
// parse compiles to a function returning the pattern itself.
func (r *Runtime) compiled(locale, pattern string, formats map[string]Style) (MessageFunc, error) {
	key := compiledKey{locale: locale, pattern: pattern}
	if len(formats) == 0 {
		if fn, ok := r.cache.Load(key); ok {
			return fn.(MessageFunc), nil
		}
	}

	tokens, err := Parse(pattern)
	if err != nil {
		Logger.Warn().Err(err).Str("locale", locale).Msg("Invalid message pattern")
		fn := MessageFunc(func(Params) string { return pattern })
		r.cache.Store(key, fn)
		return fn, err
	}

	fn := Compile(tokens, locale, r.compileOptions(formats)...)
	if len(formats) == 0 {
		r.cache.Store(key, fn)
	}
	return fn, nil
}

func (r *Runtime) compileOptions(formats map[string]Style) []CompileOption {
	opts := []CompileOption{
		WithCompilePluralRules(r.rules),
		WithCompileStyles(r.styles),
		WithCompileStyles(formats),
	}
	if r.formatters != nil {
		opts = append(opts, WithCompileFormatters(r.formatters))
	}
	return opts
}

func (r *Runtime) styleNamed(name string) (Style, bool) {
	if r == nil {
		return nil, false
	}
	style, ok := r.styles[name]
	return style, ok
}

// PluralForm returns the plural category of n in the active language. n is
// a number or a decimal string; anything else is other.
func (r *Runtime) PluralForm(n any, kind PluralKind) PluralCategory {
	ops, ok := pluralOperandsOf(n)
	if !ok {
		return PluralOther
	}
	return resolvePluralCategory(r.rules, r.Language(), ops, kind)
}

func pluralOperandsOf(n any) (PluralOperands, bool) {
	if s, ok := n.(string); ok {
		ops, err := ParsePluralOperands(s)
		return ops, err == nil
	}
	f, ok := toFloat(n)
	if !ok {
		return PluralOperands{}, false
	}
	return NewPluralOperands(f), true
}
