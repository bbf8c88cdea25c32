package i18n

import (
	"errors"
	"fmt"
)

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey is the key looked up when a helper receives a map as its
	// first argument.
	LocaleKey string
	// OnMissing renders ids that resolved to their defaults or the id.
	OnMissing func(locale, id string, err error) string
}

// TemplateHelpers exposes runtime helpers for text/template and
// html/template:
//
//	{{ t . "cart.items" "count" 3 }}
//	{{ plural_form . 3 }}
//	{{ current_locale . }}
//	{{ format_number . .Total "percent" }}
//
// The first argument is a locale string or a map holding the locale under
// LocaleKey; without one the runtime language is used.
func TemplateHelpers(rt *Runtime, cfg HelperConfig) map[string]any {
	localeKey := cfg.LocaleKey
	if localeKey == "" {
		localeKey = "locale"
	}

	currentLocale := func(src any) string {
		if locale := localeFromTemplateArg(src, localeKey); locale != "" {
			return locale
		}
		if rt != nil {
			return rt.Language()
		}
		return ""
	}

	translate := func(src any, id string, args ...any) string {
		if rt == nil {
			return id
		}
		locale := currentLocale(src)
		d := Descriptor{ID: id, Params: templateParams(args)}

		if cfg.OnMissing == nil {
			return rt.Use(locale).Translate(d)
		}

		var missing error
		hook := TranslationHookFuncs{After: func(ctx *TranslatorHookContext) {
			if errors.Is(ctx.Error, ErrMissingTranslation) {
				missing = ctx.Error
			}
		}}
		hooks := append(append([]TranslationHook(nil), rt.hooks...), hook)
		out := WrapTranslatorWithHooks(rt.Use(locale), hooks...).Translate(d)
		if missing != nil {
			return cfg.OnMissing(locale, id, missing)
		}
		return out
	}

	pluralForm := func(src any, n any, ordinal ...bool) string {
		if rt == nil {
			return string(PluralOther)
		}
		kind := Cardinal
		if len(ordinal) > 0 && ordinal[0] {
			kind = Ordinal
		}
		return string(rt.Use(currentLocale(src)).PluralForm(n, kind))
	}

	format := func(typ string) func(src any, value any, style ...string) string {
		return func(src any, value any, style ...string) string {
			var st Style
			if len(style) > 0 && style[0] != "" {
				st = Style{"style": style[0]}
				if rt != nil {
					if named, ok := rt.styleNamed(style[0]); ok {
						st = named
					}
				}
			}
			if rt == nil || rt.formatters == nil {
				return identityFormat("", value, st)
			}
			return rt.formatters.Format(typ, currentLocale(src), value, st)
		}
	}

	return map[string]any{
		"t":              translate,
		"plural_form":    pluralForm,
		"current_locale": currentLocale,
		"format_number":  format(FormatTypeNumber),
		"format_date":    format(FormatTypeDate),
	}
}

func localeFromTemplateArg(src any, key string) string {
	switch v := src.(type) {
	case string:
		return v
	case map[string]any:
		if locale, ok := v[key].(string); ok {
			return locale
		}
	case map[string]string:
		return v[key]
	case fmt.Stringer:
		return v.String()
	}
	return ""
}

// templateParams accepts a single map or alternating key/value pairs.
func templateParams(args []any) Params {
	if len(args) == 0 {
		return nil
	}
	if len(args) == 1 {
		switch v := args[0].(type) {
		case Params:
			return v
		case map[string]any:
			return Params(v)
		}
	}
	params := make(Params, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = stringify(args[i])
		}
		params[key] = args[i+1]
	}
	return params
}
