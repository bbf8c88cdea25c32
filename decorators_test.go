package i18n

import (
	"errors"
	"testing"
)

type recordingHook struct {
	beforeCalls int
	afterCalls  int
	lastErr     error
	lastResult  string
	resolution  ResolutionMetadata
}

func (h *recordingHook) BeforeTranslate(ctx *TranslatorHookContext) {
	h.beforeCalls++
}

func (h *recordingHook) AfterTranslate(ctx *TranslatorHookContext) {
	h.afterCalls++
	h.lastErr = ctx.Error
	h.lastResult = ctx.Result
	h.resolution, _ = ctx.Resolution()
}

func TestWrapTranslatorWithHooks(t *testing.T) {
	rt := NewRuntime("en")
	rt.Load(Catalogs{"en": {"home.title": "Welcome"}})

	recorder := &recordingHook{}
	translator := WrapTranslatorWithHooks(rt, recorder)

	if got := translator.Translate(Descriptor{ID: "home.title"}); got != "Welcome" {
		t.Fatalf("Translate() = %q want Welcome", got)
	}

	if recorder.beforeCalls != 1 || recorder.afterCalls != 1 {
		t.Fatalf("unexpected hook counts before=%d after=%d", recorder.beforeCalls, recorder.afterCalls)
	}
	if recorder.lastErr != nil {
		t.Fatalf("expected nil error in hook, got %v", recorder.lastErr)
	}
	if recorder.lastResult != "Welcome" {
		t.Fatalf("expected hook result Welcome, got %q", recorder.lastResult)
	}

	want := ResolutionMetadata{Source: SourceCatalog, Locale: "en", ID: "home.title"}
	if recorder.resolution != want {
		t.Fatalf("resolution = %+v want %+v", recorder.resolution, want)
	}
}

func TestRuntimeHooksReportMissing(t *testing.T) {
	recorder := &recordingHook{}
	rt := NewRuntime("cs", WithRuntimeHooks(recorder))

	if got := rt.Translate(MsgID("nav.home", "Home")); got != "Home" {
		t.Fatalf("Translate() = %q want Home", got)
	}

	if !errors.Is(recorder.lastErr, ErrMissingTranslation) {
		t.Fatalf("hook saw err %v, want %v", recorder.lastErr, ErrMissingTranslation)
	}
	if recorder.resolution.Source != SourceDefaults || recorder.resolution.ID != "nav.home" {
		t.Fatalf("resolution = %+v", recorder.resolution)
	}
	if recorder.beforeCalls != 1 {
		t.Fatalf("hooks ran %d times", recorder.beforeCalls)
	}
}

func TestHookCanRewriteLocaleAndResult(t *testing.T) {
	rt := NewRuntime("en")
	rt.Load(Catalogs{"cs": {"hi": "Ahoj"}})

	hook := TranslationHookFuncs{
		Before: func(ctx *TranslatorHookContext) {
			ctx.Locale = "cs"
		},
		After: func(ctx *TranslatorHookContext) {
			ctx.Result = "[" + ctx.Result + "]"
		},
	}

	if got := WrapTranslatorWithHooks(rt, hook).Translate(Descriptor{ID: "hi"}); got != "[Ahoj]" {
		t.Fatalf("Translate() = %q", got)
	}
}

type plainTranslator struct{}

func (plainTranslator) Translate(d Descriptor) string { return "plain:" + d.ID }

func TestHooksOnPlainTranslator(t *testing.T) {
	recorder := &recordingHook{}
	translator := WrapTranslatorWithHooks(plainTranslator{}, nil, recorder)

	if got := translator.Translate(Descriptor{ID: "x"}); got != "plain:x" {
		t.Fatalf("Translate() = %q", got)
	}
	if recorder.resolution != (ResolutionMetadata{}) {
		t.Fatalf("unexpected resolution %+v", recorder.resolution)
	}

	if WrapTranslatorWithHooks(plainTranslator{}) != (plainTranslator{}) {
		t.Fatal("expected translator without hooks to be returned as is")
	}
	if got := (*HookedTranslator)(nil).Translate(Descriptor{ID: "nil"}); got != "nil" {
		t.Fatalf("nil translator = %q", got)
	}
}

func TestHookContextMetadata(t *testing.T) {
	ctx := &TranslatorHookContext{}
	ctx.SetMetadata("", "ignored")
	ctx.SetMetadata(metadataSource, "fallback")

	if _, ok := ctx.MetadataValue(""); ok {
		t.Fatal("empty key must not be stored")
	}

	meta, ok := ctx.Resolution()
	if !ok || meta.Source != SourceFallback {
		t.Fatalf("Resolution() = %+v,%v", meta, ok)
	}
}
