package httpstream

import "strconv"

// MessageKind tags a Message as having been parsed from a request-line or
// a status-line.
type MessageKind int

const (
	MessageRequest MessageKind = iota
	MessageResponse
)

// TransferEncoding records which body-framing rule (spec §4.5) produced a
// Message's Body.
type TransferEncoding int

const (
	TransferIdentity TransferEncoding = iota
	TransferContentLength
	TransferChunked
)

// Message is a fully parsed HTTP/1.x request or response, per spec §3. It
// carries its Header container by move: once emitted by the Parser, a
// Message is independent of the Parser that produced it.
type Message struct {
	Kind    MessageKind
	Request RequestLine
	Status  StatusLine
	Headers *Header
	Body    []byte

	KeepAlive        bool
	TransferEncoding TransferEncoding
	// ContentLength is the parsed Content-Length, or -1 if none applied
	// (chunked framing, or no Content-Length header).
	ContentLength int64
}

// BuildRequest serializes method, target, and headers as an HTTP/1.1
// request, per spec §6's request builder contract. If body is non-empty a
// Content-Length header is appended automatically; the builder never fails
// and never validates its inputs.
func BuildRequest(method, target string, headers *Header, body []byte) []byte {
	buf := make([]byte, 0, 64+len(body))
	buf = append(buf, method...)
	buf = append(buf, ' ')
	buf = append(buf, target...)
	buf = append(buf, ' ')
	buf = append(buf, "HTTP/1.1"...)
	buf = append(buf, '\r', '\n')
	buf = appendHeaderLines(buf, headers)
	if len(body) > 0 {
		buf = append(buf, "Content-Length: "...)
		buf = append(buf, strconv.Itoa(len(body))...)
		buf = append(buf, '\r', '\n')
	}
	buf = append(buf, '\r', '\n')
	buf = append(buf, body...)
	return buf
}

// BuildResponse serializes statusCode, reason, and headers as an HTTP/1.1
// response, per spec §6's response builder contract. When reason is empty
// the standard IANA reason phrase for statusCode is substituted; unknown
// codes get an empty reason.
func BuildResponse(statusCode int, reason string, headers *Header, body []byte) []byte {
	if reason == "" {
		reason = ReasonPhrase(statusCode)
	}
	buf := make([]byte, 0, 64+len(body))
	buf = append(buf, "HTTP/1.1"...)
	buf = append(buf, ' ')
	buf = append(buf, strconv.Itoa(statusCode)...)
	buf = append(buf, ' ')
	buf = append(buf, reason...)
	buf = append(buf, '\r', '\n')
	buf = appendHeaderLines(buf, headers)
	if len(body) > 0 {
		buf = append(buf, "Content-Length: "...)
		buf = append(buf, strconv.Itoa(len(body))...)
		buf = append(buf, '\r', '\n')
	}
	buf = append(buf, '\r', '\n')
	buf = append(buf, body...)
	return buf
}

func appendHeaderLines(buf []byte, headers *Header) []byte {
	if headers == nil {
		return buf
	}
	headers.Range(func(name, value string) {
		buf = append(buf, name...)
		buf = append(buf, ':', ' ')
		buf = append(buf, value...)
		buf = append(buf, '\r', '\n')
	})
	return buf
}

// reasonPhrases is the standard IANA status-code -> reason-phrase table
// required by spec §6, covering every range that table names.
var reasonPhrases = map[int]string{
	100: "Continue",
	101: "Switching Protocols",
	102: "Processing",
	103: "Early Hints",

	200: "OK",
	201: "Created",
	202: "Accepted",
	203: "Non-Authoritative Information",
	204: "No Content",
	205: "Reset Content",
	206: "Partial Content",
	207: "Multi-Status",
	208: "Already Reported",
	226: "IM Used",

	300: "Multiple Choices",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	304: "Not Modified",
	305: "Use Proxy",
	307: "Temporary Redirect",
	308: "Permanent Redirect",

	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Content Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	416: "Range Not Satisfiable",
	417: "Expectation Failed",
	418: "I'm a teapot",
	421: "Misdirected Request",
	422: "Unprocessable Content",
	423: "Locked",
	424: "Failed Dependency",
	425: "Too Early",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",
	451: "Unavailable For Legal Reasons",

	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
	506: "Variant Also Negotiates",
	507: "Insufficient Storage",
	508: "Loop Detected",
	510: "Not Extended",
	511: "Network Authentication Required",
}

// ReasonPhrase returns the standard IANA reason phrase for code, or "" if
// code is not in the table.
func ReasonPhrase(code int) string {
	return reasonPhrases[code]
}
