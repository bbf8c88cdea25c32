package i18n

type TranslationHook interface {
	BeforeTranslate(ctx *TranslatorHookContext)
	AfterTranslate(ctx *TranslatorHookContext)
}

// TranslatorHookContext is shared by the hooks of one translation. Before
// hooks may change Locale and Descriptor; after hooks may change Result.
type TranslatorHookContext struct {
	Locale     string
	Descriptor Descriptor
	Result     string
	Error      error
	Metadata   map[string]any
}

const (
	metadataSource = "source"
	metadataLocale = "resolved_locale"
	metadataID     = "id"
)

func (ctx *TranslatorHookContext) ensureMetadata() {
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
}

func (ctx *TranslatorHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	ctx.ensureMetadata()
	ctx.Metadata[key] = value
}

func (ctx *TranslatorHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// ResolutionMetadata describes where a translation came from.
type ResolutionMetadata struct {
	Source TranslationSource
	// Locale is the locale whose catalog (or defaults) produced the pattern.
	Locale string
	ID     string
}

// Resolution returns the resolution metadata if the translator reported it.
func (ctx *TranslatorHookContext) Resolution() (ResolutionMetadata, bool) {
	if ctx == nil || len(ctx.Metadata) == 0 {
		return ResolutionMetadata{}, false
	}

	meta := ResolutionMetadata{}
	seen := false

	if value, ok := ctx.Metadata[metadataSource]; ok {
		if source, okCast := asTranslationSource(value); okCast {
			meta.Source = source
			seen = true
		}
	}

	if value, ok := ctx.Metadata[metadataLocale].(string); ok {
		meta.Locale = value
		seen = true
	}

	if value, ok := ctx.Metadata[metadataID].(string); ok {
		meta.ID = value
		seen = true
	}

	return meta, seen
}

func asTranslationSource(value any) (TranslationSource, bool) {
	switch v := value.(type) {
	case TranslationSource:
		return v, true
	case string:
		return TranslationSource(v), true
	default:
		return "", false
	}
}

type TranslationHookFuncs struct {
	Before func(ctx *TranslatorHookContext)
	After  func(ctx *TranslatorHookContext)
}

func (h TranslationHookFuncs) BeforeTranslate(ctx *TranslatorHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h TranslationHookFuncs) AfterTranslate(ctx *TranslatorHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

var _ Translator = &HookedTranslator{}

type HookedTranslator struct {
	next  Translator
	hooks []TranslationHook
}

func WrapTranslatorWithHooks(next Translator, hooks ...TranslationHook) Translator {
	if next == nil || len(hooks) == 0 {
		return next
	}

	filtered := make([]TranslationHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}

		filtered = append(filtered, hook)
	}

	if len(filtered) == 0 {
		return next
	}

	return &HookedTranslator{next: next, hooks: filtered}
}

func (t *HookedTranslator) Translate(d Descriptor) string {
	if t == nil || t.next == nil {
		return d.ID
	}

	ctx := &TranslatorHookContext{Descriptor: d}

	mt, hasMetadata := t.next.(metadataTranslator)
	if hasMetadata {
		ctx.Locale = mt.Language()
	}

	for _, hook := range t.hooks {
		hook.BeforeTranslate(ctx)
	}

	if hasMetadata {
		result, metadata, err := mt.translateIn(ctx.Locale, ctx.Descriptor)
		for key, value := range metadata {
			ctx.SetMetadata(key, value)
		}
		ctx.Result = result
		ctx.Error = err
	} else {
		ctx.Result = t.next.Translate(ctx.Descriptor)
	}

	for _, hook := range t.hooks {
		hook.AfterTranslate(ctx)
	}

	return ctx.Result
}
