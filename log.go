package httpstream

import "github.com/rs/zerolog"

// logger is the package-level logger used for the handful of diagnostic
// events the parser itself is responsible for (entering ERROR, hitting a
// configured limit). It is silent on the hot per-byte parsing path.
var logger zerolog.Logger

func init() {
	zerolog.CallerFieldName = "C"
	zerolog.MessageFieldName = "M"
	zerolog.LevelFieldName = "L"
	zerolog.ErrorFieldName = "E"
	zerolog.TimestampFieldName = "T"
	zerolog.ErrorStackFieldName = "S"

	logger = zerolog.Nop()
}

// SetLogger replaces the package-level logger used for parser diagnostics.
// Callers embedding this module into a larger server typically call this
// once at startup to route parser diagnostics into their own sink.
func SetLogger(l zerolog.Logger) {
	logger = l
}
