package httpstream

// tokenByteTable and headerValueByteTable are 256-entry lookup tables built
// once at init() time, following the teacher's validHeaderFieldByteTable /
// validHeaderValueByteTable approach in header.go: a branchless table lookup
// is cheaper per byte than re-evaluating the RFC 7230 rule every time.
var (
	tokenByteTable      [256]bool
	headerValueByteTable [256]bool
)

// tokenSeparators are the RFC 7230 "separators" excluded from the token
// grammar, reproduced from spec §4.1.
const tokenSeparators = "()<>@,;:\\\"/[]?={} \t"

func init() {
	for c := 0x21; c <= 0x7E; c++ {
		tokenByteTable[c] = true
	}
	for i := 0; i < len(tokenSeparators); i++ {
		tokenByteTable[tokenSeparators[i]] = false
	}

	for c := 0x20; c <= 0x7E; c++ {
		headerValueByteTable[c] = true
	}
	headerValueByteTable[0x09] = true // HTAB
	headerValueByteTable[0x0A] = true // LF
	headerValueByteTable[0x0C] = true // FF
	headerValueByteTable[0x0D] = true // CR
}

// isTokenByte reports whether c is a valid RFC 7230 token character: a
// visible, non-control ASCII byte that is not one of the token separators.
func isTokenByte(c byte) bool {
	return tokenByteTable[c]
}

// isTokenByteAllowUnderscore accepts every token byte plus '_', for header
// names when Config.AllowUnderscoreInHeaders is set. '_' is not a token
// separator, so isTokenByte accepts it too; ValidateHeaderName excludes it
// explicitly when underscores are disallowed.
func isTokenByteAllowUnderscore(c byte) bool {
	return c == '_' || tokenByteTable[c]
}

// isHeaderValueByte reports whether c may appear in a header value: HTAB,
// LF, FF, CR, or printable ASCII. Embedded CR/LF are accepted here; it is
// the header-block scanner's job to treat CRLF as a line terminator, not
// this byte-level check's.
func isHeaderValueByte(c byte) bool {
	return headerValueByteTable[c]
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
