package httpstream

import "bytes"

// RequestLine is the parsed request-line: "METHOD SP TARGET SP VERSION CRLF".
type RequestLine struct {
	Method  string
	Target  string
	Version string
}

// StatusLine is the parsed status-line: "VERSION SP STATUS-CODE SP REASON CRLF".
type StatusLine struct {
	Version    string
	StatusCode int
	Reason     string
}

// requestLineOutcome and statusLineOutcome are the three-state results the
// two start-line tokenizers return: exactly one of (value present),
// needsMore, or err is meaningful, per spec §4.2.
type requestLineOutcome struct {
	line      RequestLine
	consumed  int
	needsMore bool
	err       *ParseError
}

type statusLineOutcome struct {
	line      StatusLine
	consumed  int
	needsMore bool
	err       *ParseError
}

// findCRLF returns the index of the '\r' of the first CRLF in buf, or -1.
// A bare '\n' without a preceding '\r' is not treated as a line terminator:
// spec §6 requires the terminator to be strictly CR LF.
func findCRLF(buf []byte) int {
	for i := 0; i+1 < len(buf); {
		idx := bytes.IndexByte(buf[i:], '\r')
		if idx < 0 {
			return -1
		}
		pos := i + idx
		if pos+1 < len(buf) && buf[pos+1] == '\n' {
			return pos
		}
		i = pos + 1
	}
	return -1
}

// parseRequestLine implements spec §4.2's request-line tokenizer.
func parseRequestLine(buf []byte) requestLineOutcome {
	crlf := findCRLF(buf)
	hasCRLF := crlf >= 0
	lineEnd := len(buf)
	if hasCRLF {
		lineEnd = crlf
	}

	sp1 := bytes.IndexByte(buf[:lineEnd], ' ')
	if sp1 < 0 {
		if !hasCRLF {
			if lineEnd > maxMethodLen {
				return requestLineOutcome{err: newParseErr(ErrInvalidMethod, StateRequestLine,
					"method exceeds configured limit", "")}
			}
			return requestLineOutcome{needsMore: true}
		}
		return requestLineOutcome{err: newParseErr(ErrInvalidMethod, StateRequestLine,
			"request line missing method separator", "")}
	}

	method := string(buf[:sp1])
	if !ValidateMethod(method) {
		return requestLineOutcome{err: newParseErr(ErrInvalidMethod, StateRequestLine,
			"invalid method", truncateDetail(method))}
	}

	sp2 := bytes.IndexByte(buf[sp1+1:lineEnd], ' ')
	if sp2 < 0 {
		if !hasCRLF {
			if lineEnd-(sp1+1) > maxTargetLen {
				return requestLineOutcome{err: newParseErr(ErrInvalidTarget, StateRequestLine,
					"target exceeds configured limit", "")}
			}
			return requestLineOutcome{needsMore: true}
		}
		return requestLineOutcome{err: newParseErr(ErrInvalidVersion, StateRequestLine,
			"request line missing version", "")}
	}
	sp2 += sp1 + 1

	target := string(buf[sp1+1 : sp2])
	if !ValidateRequestTarget(target) {
		return requestLineOutcome{err: newParseErr(ErrInvalidTarget, StateRequestLine,
			"invalid request target", truncateDetail(target))}
	}

	if !hasCRLF {
		return requestLineOutcome{needsMore: true}
	}

	version := string(buf[sp2+1 : lineEnd])
	if !ValidateVersion(version) {
		return requestLineOutcome{err: newParseErr(ErrInvalidVersion, StateRequestLine,
			"invalid HTTP version", truncateDetail(version))}
	}

	return requestLineOutcome{
		line:     RequestLine{Method: method, Target: target, Version: version},
		consumed: lineEnd + 2,
	}
}

// parseStatusLine implements spec §4.2's status-line tokenizer. Reason
// phrases are decoded as raw bytes: Go strings place no validity constraint
// on their contents, so a malformed UTF-8 reason phrase round-trips exactly
// rather than needing an explicit replacement-character pass.
func parseStatusLine(buf []byte) statusLineOutcome {
	crlf := findCRLF(buf)
	hasCRLF := crlf >= 0
	lineEnd := len(buf)
	if hasCRLF {
		lineEnd = crlf
	}

	sp1 := bytes.IndexByte(buf[:lineEnd], ' ')
	if sp1 < 0 {
		if !hasCRLF {
			if lineEnd > 8 {
				return statusLineOutcome{err: newParseErr(ErrInvalidVersion, StateStatusLine,
					"status line missing version separator", "")}
			}
			return statusLineOutcome{needsMore: true}
		}
		return statusLineOutcome{err: newParseErr(ErrInvalidVersion, StateStatusLine,
			"status line missing version separator", "")}
	}

	version := string(buf[:sp1])
	if !ValidateVersion(version) {
		return statusLineOutcome{err: newParseErr(ErrInvalidVersion, StateStatusLine,
			"invalid HTTP version", truncateDetail(version))}
	}

	// Scan the status-code field. It must be exactly three digits; we fail
	// fast once more than three digits have accumulated without a
	// delimiter instead of waiting indefinitely for one, per spec §4.2
	// step 3's note about truncated codes.
	pos := sp1 + 1
	digits := 0
	sp2 := -1
	i := pos
	for ; i < lineEnd; i++ {
		c := buf[i]
		if isDigit(c) {
			digits++
			if digits > 3 {
				return statusLineOutcome{err: newParseErr(ErrInvalidStatusCode, StateStatusLine,
					"status code is not three digits", "")}
			}
			continue
		}
		if c == ' ' {
			sp2 = i
			break
		}
		return statusLineOutcome{err: newParseErr(ErrInvalidStatusCode, StateStatusLine,
			"invalid character in status code", "")}
	}

	if sp2 < 0 {
		// No second SP found within what's buffered so far.
		if !hasCRLF {
			return statusLineOutcome{needsMore: true}
		}
		// CRLF present immediately after the code: empty reason phrase.
		if digits != 3 {
			return statusLineOutcome{err: newParseErr(ErrInvalidStatusCode, StateStatusLine,
				"status code is not three digits", "")}
		}
		code := parseThreeDigitCode(buf[pos:i])
		if !ValidateStatusCode(code) {
			return statusLineOutcome{err: newParseErr(ErrInvalidStatusCode, StateStatusLine,
				"status code out of range", "")}
		}
		return statusLineOutcome{
			line:     StatusLine{Version: version, StatusCode: code, Reason: ""},
			consumed: lineEnd + 2,
		}
	}

	if digits != 3 {
		return statusLineOutcome{err: newParseErr(ErrInvalidStatusCode, StateStatusLine,
			"status code is not three digits", "")}
	}
	code := parseThreeDigitCode(buf[pos:sp2])
	if !ValidateStatusCode(code) {
		return statusLineOutcome{err: newParseErr(ErrInvalidStatusCode, StateStatusLine,
			"status code out of range", "")}
	}

	if !hasCRLF {
		return statusLineOutcome{needsMore: true}
	}

	reason := string(buf[sp2+1 : lineEnd])
	return statusLineOutcome{
		line:     StatusLine{Version: version, StatusCode: code, Reason: reason},
		consumed: lineEnd + 2,
	}
}

func parseThreeDigitCode(b []byte) int {
	return int(b[0]-'0')*100 + int(b[1]-'0')*10 + int(b[2]-'0')
}
