package httpstream

import "time"

// Config controls the limits and behavioral flags the streaming parser
// enforces. The zero value is not directly usable; callers get a ready
// Config from DefaultConfig() and override only the fields they care about,
// the same way the teacher's Server struct documents "a zero or negative
// value indicates the default value" on its tunables.
type Config struct {
	// MaxHeaders caps the number of header entries accepted per message.
	// Exceeding this count fails the parse with ErrTooManyHeaders.
	MaxHeaders int

	// MaxHeaderLineLength caps the length of any single header line
	// (name + ':' + value, excluding the terminating CRLF).
	MaxHeaderLineLength int

	// MaxBodySize caps the number of accumulated body bytes across the
	// whole message, for both Content-Length and chunked framing.
	MaxBodySize int64

	// MaxChunks caps the number of chunks accepted in a chunked body.
	MaxChunks int

	// MaxChunkSize caps the size any single chunk's size line may declare.
	MaxChunkSize int64

	// ValidateHeaderNames enables the header-name validator during header
	// block parsing.
	ValidateHeaderNames bool

	// ValidateHeaderValues enables the header-value validator during
	// header block parsing.
	ValidateHeaderValues bool

	// AllowUnderscoreInHeaders treats '_' as a valid header name byte.
	AllowUnderscoreInHeaders bool

	// EnablePipelining is advisory: the parser always drains as many
	// complete pipelined messages as the buffer permits in one Parse call
	// regardless of this flag's value. It exists for configuration parity
	// with callers that gate pipelining policy above this layer.
	EnablePipelining bool

	// InactivityTimeout is advisory only; per spec §5 this package performs
	// no I/O and starts no timers, so enforcing it is the caller's
	// responsibility.
	InactivityTimeout time.Duration
}

// DefaultConfig returns a Config populated with spec §6's documented
// defaults.
func DefaultConfig() Config {
	return Config{
		MaxHeaders:               256,
		MaxHeaderLineLength:      8192,
		MaxBodySize:              10 << 20, // 10 MiB
		MaxChunks:                10000,
		MaxChunkSize:             defaultMaxChunkSize,
		ValidateHeaderNames:      true,
		ValidateHeaderValues:     true,
		AllowUnderscoreInHeaders: true,
		EnablePipelining:         false,
		InactivityTimeout:        30 * time.Second,
	}
}

// normalize fills in zero-valued fields with their defaults, the same way
// the teacher's Server resolves Concurrency/ReadBufferSize lazily at Serve
// time rather than requiring every caller to build a fully-populated struct.
func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.MaxHeaders <= 0 {
		c.MaxHeaders = d.MaxHeaders
	}
	if c.MaxHeaderLineLength <= 0 {
		c.MaxHeaderLineLength = d.MaxHeaderLineLength
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = d.MaxBodySize
	}
	if c.MaxChunks <= 0 {
		c.MaxChunks = d.MaxChunks
	}
	if c.MaxChunkSize <= 0 {
		c.MaxChunkSize = d.MaxChunkSize
	}
	return c
}

// Clone returns an independent copy of c. Config holds no reference types,
// so this is a plain value copy; it exists so callers deriving a
// per-connection Config from a shared template don't need to know that,
// mirroring the teacher's CopyTo-style lifecycle helpers elsewhere.
func (c Config) Clone() Config {
	return c
}
