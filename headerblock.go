package httpstream

import "bytes"

// splitHeaderLine implements spec §4.4's header-line split: find the first
// ':', trim linear whitespace (SP/HTAB) from the name and value on either
// side of it, and reject a missing colon or an empty name/value after
// trimming. Folded continuation lines (obs-fold) are not supported:
// parseHeaderBlock rejects any header line that begins with linear
// whitespace before it reaches this split.
func splitHeaderLine(line []byte) (name, value string, ok bool) {
	colon := bytes.IndexByte(line, ':')
	if colon < 0 {
		return "", "", false
	}
	n := trimLWS(line[:colon])
	v := trimLWS(line[colon+1:])
	if len(n) == 0 || len(v) == 0 {
		return "", "", false
	}
	return string(n), string(v), true
}

func trimLWS(b []byte) []byte {
	start := 0
	for start < len(b) && (b[start] == ' ' || b[start] == '\t') {
		start++
	}
	end := len(b)
	for end > start && (b[end-1] == ' ' || b[end-1] == '\t') {
		end--
	}
	return b[start:end]
}

// headerBlockResult is the three-state outcome of parseHeaderBlock: exactly
// one of (header != nil), needsMore, or err is meaningful.
type headerBlockResult struct {
	header    *Header
	consumed  int
	needsMore bool
	err       *ParseError
}

// parseHeaderBlock scans buf for the block-terminating empty line (CRLF
// CRLF), splitting everything before it into header lines at CRLF and
// feeding each to splitHeaderLine, per spec §4.4. It enforces
// Config.MaxHeaderLineLength, Config.MaxHeaders, and (when enabled)
// Config.ValidateHeaderNames / Config.ValidateHeaderValues as it goes, so a
// message that would overflow a limit fails before the whole block is even
// known to be present.
func parseHeaderBlock(buf []byte, cfg Config) headerBlockResult {
	h := NewHeader()
	offset := 0

	for {
		rest := buf[offset:]
		nl := bytes.IndexByte(rest, '\n')
		if nl < 0 {
			if len(rest) > cfg.MaxHeaderLineLength {
				return headerBlockResult{err: newParseErr(ErrHeaderValueTooLong, StateHeaders,
					"header line exceeds configured limit", "")}
			}
			return headerBlockResult{needsMore: true}
		}

		lineEnd := offset + nl
		if lineEnd == offset || buf[lineEnd-1] != '\r' {
			// Either an empty line terminated by a bare LF (treated as the
			// CRLF this grammar requires would be missing) or a line not
			// CRLF-terminated at all: both are malformed per spec §6's
			// "line terminator is strictly CR LF".
			if lineEnd == offset {
				// bare "\n" with nothing before it: only valid as the
				// block terminator when preceded by a CRLF blank line,
				// which is handled below via the CRLF branch; a lone LF
				// here means the wire sent "\n\n" instead of "\r\n\r\n".
				return headerBlockResult{err: newParseErr(ErrInvalidHeader, StateHeaders,
					"block terminator missing CR", "")}
			}
			return headerBlockResult{err: newParseErr(ErrInvalidHeader, StateHeaders,
				"header line missing CR", "")}
		}

		line := buf[offset : lineEnd-1]
		if len(line) > cfg.MaxHeaderLineLength {
			return headerBlockResult{err: newParseErr(ErrHeaderValueTooLong, StateHeaders,
				"header line exceeds configured limit", "")}
		}

		if len(line) == 0 {
			// terminating empty line
			return headerBlockResult{header: h, consumed: lineEnd + 1}
		}

		if line[0] == ' ' || line[0] == '\t' {
			// obs-fold continuation line
			return headerBlockResult{err: newParseErr(ErrInvalidHeader, StateHeaders,
				"folded header line not supported", truncateDetail(string(line)))}
		}

		name, value, ok := splitHeaderLine(line)
		if !ok {
			return headerBlockResult{err: newParseErr(ErrInvalidHeader, StateHeaders,
				"malformed header line", truncateDetail(string(line)))}
		}

		if cfg.ValidateHeaderNames && !ValidateHeaderName(name, cfg.AllowUnderscoreInHeaders) {
			return headerBlockResult{err: newParseErr(ErrInvalidHeader, StateHeaders,
				"invalid header name", truncateDetail(name))}
		}
		if len(name) > maxHeaderNameLen {
			return headerBlockResult{err: newParseErr(ErrHeaderNameTooLong, StateHeaders,
				"header name exceeds configured limit", truncateDetail(name))}
		}
		if cfg.ValidateHeaderValues && !ValidateHeaderValue(value) {
			return headerBlockResult{err: newParseErr(ErrInvalidHeader, StateHeaders,
				"invalid header value", truncateDetail(value))}
		}

		if h.TotalEntries()+1 > cfg.MaxHeaders {
			return headerBlockResult{err: newParseErr(ErrTooManyHeaders, StateHeaders,
				"too many headers", "")}
		}

		h.Append(name, value)
		offset = lineEnd + 1
	}
}

func truncateDetail(s string) string {
	const max = 64
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
