package i18n

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the logger used by package i18n. Replace it to redirect or
// silence library logs.
var Logger = log.With().Str("sys", "i18n").Logger()

// UseGlobalLogger rebuilds Logger from the current global zerolog logger.
// Call it after replacing log.Logger.
func UseGlobalLogger() {
	Logger = log.With().Str("sys", "i18n").Logger()
}

// missingOnce deduplicates missing translation logs. The key is
// locale+"\x00"+id.
var missingOnce sync.Map

func logMissingOnce(level zerolog.Level, locale, id string) {
	key := locale + "\x00" + id
	if _, loaded := missingOnce.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	Logger.WithLevel(level).
		Str("locale", locale).
		Str("id", id).
		Msg("Missing translation")
}
