package i18n

// Translator resolves a message descriptor to a localized string.
type Translator interface {
	Translate(d Descriptor) string
}

// metadataTranslator is implemented by translators that can render into an
// explicit locale and report how the message was resolved.
type metadataTranslator interface {
	Language() string
	translateIn(locale string, d Descriptor) (string, map[string]any, error)
}
