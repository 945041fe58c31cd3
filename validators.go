package httpstream

import "strings"

const (
	maxMethodLen      = 100
	maxHeaderNameLen  = 256
	maxHeaderValueLen = 8192
	maxTargetLen      = 8192
)

// standardMethods lets the common verbs skip the byte-by-byte token scan,
// mirroring the teacher's isValidMethod fast path for the handful of verbs
// every request actually uses.
var standardMethods = map[string]bool{
	"GET":     true,
	"HEAD":    true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"CONNECT": true,
	"OPTIONS": true,
	"TRACE":   true,
	"PATCH":   true,
}

// ValidateMethod reports whether method is a well-formed RFC 7230 token of
// at most maxMethodLen bytes.
func ValidateMethod(method string) bool {
	if len(method) == 0 || len(method) > maxMethodLen {
		return false
	}
	if standardMethods[method] {
		return true
	}
	for i := 0; i < len(method); i++ {
		if !isTokenByte(method[i]) {
			return false
		}
	}
	return true
}

// ValidateVersion reports whether version is exactly "HTTP/1.0" or "HTTP/1.1".
func ValidateVersion(version string) bool {
	return version == "HTTP/1.0" || version == "HTTP/1.1"
}

// ValidateStatusCode reports whether code lies in [100, 999].
func ValidateStatusCode(code int) bool {
	return code >= 100 && code <= 999
}

// ValidateHeaderName reports whether name is a well-formed header field
// name: a non-empty token of at most maxHeaderNameLen bytes. '_' is accepted
// only when allowUnderscore is true, per Config.AllowUnderscoreInHeaders.
func ValidateHeaderName(name string, allowUnderscore bool) bool {
	if len(name) == 0 || len(name) > maxHeaderNameLen {
		return false
	}
	check := isTokenByteAllowUnderscore
	if !allowUnderscore {
		check = func(c byte) bool { return c != '_' && isTokenByte(c) }
	}
	for i := 0; i < len(name); i++ {
		if !check(name[i]) {
			return false
		}
	}
	return true
}

// ValidateHeaderValue reports whether value is at most maxHeaderValueLen
// bytes and every byte is HTAB, LF, FF, CR, or printable ASCII.
func ValidateHeaderValue(value string) bool {
	if len(value) > maxHeaderValueLen {
		return false
	}
	for i := 0; i < len(value); i++ {
		if !isHeaderValueByte(value[i]) {
			return false
		}
	}
	return true
}

// ValidateRequestTarget reports whether target matches one of the four
// accepted request-target shapes from spec §4.1: origin-form ("/..."),
// absolute-form (contains "://"), asterisk-form ("*"), or authority-form
// (contains ':' and no '/').
func ValidateRequestTarget(target string) bool {
	if len(target) == 0 || len(target) > maxTargetLen {
		return false
	}
	if target == "*" {
		return true
	}
	if target[0] == '/' {
		return true
	}
	if strings.Contains(target, "://") {
		return true
	}
	if strings.Contains(target, ":") && !strings.Contains(target, "/") {
		return true
	}
	return false
}

// ParseContentLength parses a trimmed Content-Length header value as a
// non-negative decimal integer. Leading '+', embedded whitespace, and any
// non-digit content are rejected, matching spec §4.1.
func ParseContentLength(value string) (int64, bool) {
	v := strings.TrimSpace(value)
	if len(v) == 0 || len(v) > 19 {
		return 0, false
	}
	var n int64
	for i := 0; i < len(v); i++ {
		c := v[i]
		if !isDigit(c) {
			return 0, false
		}
		n = n*10 + int64(c-'0')
		if n < 0 {
			return 0, false
		}
	}
	return n, true
}

// defaultMaxChunkSize is the fallback cap applied when Config.MaxChunkSize
// is left at its zero value.
const defaultMaxChunkSize = 10 << 20 // 10 MiB

// ParseChunkSize parses a trimmed, case-insensitive hexadecimal chunk size,
// rejecting parse failures, overflow, and values exceeding maxSize.
func ParseChunkSize(value string, maxSize int64) (int64, bool) {
	v := strings.TrimSpace(value)
	if len(v) == 0 || len(v) > 16 {
		return 0, false
	}
	var n int64
	for i := 0; i < len(v); i++ {
		c := v[i]
		if !isHexDigit(c) {
			return 0, false
		}
		n = n*16 + int64(hexValue(c))
		if n < 0 || n > maxSize {
			return 0, false
		}
	}
	return n, true
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
