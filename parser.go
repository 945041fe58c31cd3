package httpstream

import (
	"bytes"
	"strings"
)

// Parser is the streaming HTTP/1.x message parser described by spec §4.5.
// It owns a growable read buffer and all per-message state, consumes
// arbitrary byte fragments via Parse, and emits every fully parsed message
// the buffered bytes permit in one call. A Parser is not safe for
// concurrent use; callers multiplexing connections must own one Parser per
// connection, per spec §5.
type Parser struct {
	cfg Config

	state ParserState
	kind  MessageKind

	readBuf *growBuffer
	bodyBuf *growBuffer

	request RequestLine
	status  StatusLine
	headers *Header

	contentLength  int64
	transferKind   TransferEncoding
	keepAlive      bool
	chunkSize      int64
	chunkBytesRead int64
	chunkCount     int

	lastErr *ParseError

	messagesEmitted uint64
	bytesConsumed   uint64
}

// NewParser returns a Parser ready to receive bytes via Parse. The zero
// value of Config is not meaningful; pass DefaultConfig() (optionally
// overridden) or a Config obtained from it.
func NewParser(cfg Config) *Parser {
	p := &Parser{
		cfg:     cfg.normalize(),
		state:   StateIdle,
		readBuf: newGrowBuffer(),
		bodyBuf: newGrowBuffer(),
	}
	return p
}

// Stats is a read-only snapshot of a Parser's lifetime counters, useful for
// callers instrumenting a connection pool. It names no timers and performs
// no I/O, staying within spec §5's concurrency model.
type Stats struct {
	MessagesEmitted uint64
	BytesConsumed   uint64
	BufferedBytes   int
}

// Stats returns a snapshot of p's counters.
func (p *Parser) Stats() Stats {
	return Stats{
		MessagesEmitted: p.messagesEmitted,
		BytesConsumed:   p.bytesConsumed,
		BufferedBytes:   p.readBuf.len(),
	}
}

// State returns the Parser's current state.
func (p *Parser) State() ParserState {
	return p.state
}

// LastError returns the error that drove the Parser into StateError, or nil
// if the Parser has never errored (or has been Reset since). This resolves
// spec §7/§9's "error surface coarsening" open question: the streaming
// parser no longer discards the specific cause on transition to ERROR.
func (p *Parser) LastError() *ParseError {
	return p.lastErr
}

// BufferedBytes reports the number of bytes currently held in the read
// buffer that have not yet been incorporated into an emitted message.
func (p *Parser) BufferedBytes() int {
	return p.readBuf.len()
}

// Reset returns the Parser to StateIdle, discarding any in-progress message,
// the last error, and every byte still held in the read buffer.
func (p *Parser) Reset() {
	p.resetMessageState()
	p.readBuf.reset()
	p.state = StateIdle
	p.lastErr = nil
}

func (p *Parser) resetMessageState() {
	p.request = RequestLine{}
	p.status = StatusLine{}
	p.headers = nil
	p.contentLength = -1
	p.transferKind = TransferIdentity
	p.keepAlive = true
	p.chunkSize = 0
	p.chunkBytesRead = 0
	p.chunkCount = 0
	p.bodyBuf.reset()
}

// Parse feeds data into the Parser and returns every message fully
// delimited by the bytes buffered so far. Partial data is never an error:
// Parse simply returns with no new messages and the Parser remembers where
// it left off for the next call. Once the Parser has entered StateError, it
// stays there (and Parse keeps returning that same error) until Reset is
// called.
func (p *Parser) Parse(data []byte) ([]*Message, error) {
	p.readBuf.compact()
	if len(data) > 0 {
		p.readBuf.append(data)
	}

	if p.state == StateError {
		return nil, p.lastErr
	}

	var messages []*Message

	for {
		buf := p.readBuf.bytes()

		switch p.state {
		case StateIdle:
			if len(buf) < 4 {
				return messages, nil
			}
			if bytes.HasPrefix(buf, []byte("HTTP")) {
				p.kind = MessageResponse
				p.state = StateStatusLine
			} else {
				p.kind = MessageRequest
				p.state = StateRequestLine
			}
			p.resetMessageState()

		case StateRequestLine:
			res := parseRequestLine(buf)
			if res.needsMore {
				return messages, nil
			}
			if res.err != nil {
				return messages, p.fail(res.err)
			}
			p.request = res.line
			p.readBuf.advance(res.consumed)
			p.bytesConsumed += uint64(res.consumed)
			p.headers = NewHeader()
			p.state = StateHeaders

		case StateStatusLine:
			res := parseStatusLine(buf)
			if res.needsMore {
				return messages, nil
			}
			if res.err != nil {
				return messages, p.fail(res.err)
			}
			p.status = res.line
			p.readBuf.advance(res.consumed)
			p.bytesConsumed += uint64(res.consumed)
			p.headers = NewHeader()
			p.state = StateHeaders

		case StateHeaders:
			res := parseHeaderBlock(buf, p.cfg)
			if res.needsMore {
				return messages, nil
			}
			if res.err != nil {
				return messages, p.fail(res.err)
			}
			p.headers = res.header
			p.readBuf.advance(res.consumed)
			p.bytesConsumed += uint64(res.consumed)

			if perr := p.decideFraming(); perr != nil {
				return messages, p.fail(perr)
			}

			switch p.transferKind {
			case TransferChunked:
				p.state = StateBodyChunkedSize
			case TransferContentLength:
				if p.contentLength == 0 {
					messages = append(messages, p.emit())
				} else {
					p.state = StateBodyContentLength
				}
			default:
				messages = append(messages, p.emit())
			}

		case StateBodyContentLength:
			need := p.contentLength - int64(p.bodyBuf.len())
			take := int64(len(buf))
			if take > need {
				take = need
			}
			if take > 0 {
				if perr := p.appendBody(buf[:take]); perr != nil {
					return messages, p.fail(perr)
				}
				p.readBuf.advance(int(take))
				p.bytesConsumed += uint64(take)
			}
			if int64(p.bodyBuf.len()) < p.contentLength {
				return messages, nil
			}
			messages = append(messages, p.emit())

		case StateBodyChunkedSize:
			idx := findCRLF(buf)
			if idx < 0 {
				if len(buf) > p.cfg.MaxHeaderLineLength {
					return messages, p.fail(newParseErr(ErrInvalidChunkSize, StateBodyChunkedSize,
						"chunk size line exceeds configured limit", ""))
				}
				return messages, nil
			}
			line := buf[:idx]
			if semi := bytes.IndexByte(line, ';'); semi >= 0 {
				line = line[:semi]
			}
			size, ok := ParseChunkSize(string(bytes.TrimSpace(line)), p.cfg.MaxChunkSize)
			if !ok {
				return messages, p.fail(newParseErr(ErrInvalidChunkSize, StateBodyChunkedSize,
					"invalid chunk size", truncateDetail(string(line))))
			}
			p.readBuf.advance(idx + 2)
			p.bytesConsumed += uint64(idx + 2)

			if size == 0 {
				p.state = StateBodyChunkedTrailer
				continue
			}

			p.chunkCount++
			if p.chunkCount > p.cfg.MaxChunks {
				// spec §7 has no dedicated "too many chunks" code; this is
				// a chunk-framing limit violation, so it is reported under
				// the same code as a malformed chunk size.
				return messages, p.fail(newParseErr(ErrInvalidChunkSize, StateBodyChunkedSize,
					"too many chunks", ""))
			}
			p.chunkSize = size
			p.chunkBytesRead = 0
			p.state = StateBodyChunkedData

		case StateBodyChunkedData:
			remaining := p.chunkSize - p.chunkBytesRead
			take := int64(len(buf))
			if take > remaining {
				take = remaining
			}
			if take > 0 {
				if perr := p.appendBody(buf[:take]); perr != nil {
					return messages, p.fail(perr)
				}
				p.readBuf.advance(int(take))
				p.bytesConsumed += uint64(take)
				p.chunkBytesRead += take
			}
			if p.chunkBytesRead < p.chunkSize {
				return messages, nil
			}

			buf = p.readBuf.bytes()
			if len(buf) < 2 {
				return messages, nil
			}
			if buf[0] != '\r' || buf[1] != '\n' {
				return messages, p.fail(newParseErr(ErrIncompleteChunk, StateBodyChunkedData,
					"missing CRLF after chunk data", ""))
			}
			p.readBuf.advance(2)
			p.bytesConsumed += 2
			p.chunkBytesRead = 0
			p.state = StateBodyChunkedSize

		case StateBodyChunkedTrailer:
			consumed, needsMore, perr := scanTrailerEnd(buf, p.cfg)
			if perr != nil {
				return messages, p.fail(perr)
			}
			if needsMore {
				return messages, nil
			}
			p.readBuf.advance(consumed)
			p.bytesConsumed += uint64(consumed)
			messages = append(messages, p.emit())

		default:
			return messages, nil
		}
	}
}

// fail transitions the Parser to StateError and records cause as the last
// error, logging the transition per this module's ambient-logging policy
// (see log.go): the hot per-byte path stays silent, but entering ERROR is
// exactly the kind of event worth a diagnostic line.
func (p *Parser) fail(cause *ParseError) error {
	cause.State = p.state
	p.lastErr = cause
	p.state = StateError
	logger.Debug().
		Str("code", cause.Code.String()).
		Str("state", cause.State.String()).
		Msg("parser entering ERROR")
	return cause
}

// appendBody grows the body buffer by p, enforcing Config.MaxBodySize.
func (p *Parser) appendBody(b []byte) *ParseError {
	if p.cfg.MaxBodySize > 0 && int64(p.bodyBuf.len())+int64(len(b)) > p.cfg.MaxBodySize {
		logger.Debug().Int64("limit", p.cfg.MaxBodySize).Msg("body exceeds configured limit")
		return newParseErr(ErrBodyTooLarge, p.state, "body exceeds configured limit", "")
	}
	p.bodyBuf.append(b)
	return nil
}

// decideFraming applies spec §4.5's framing decision once the header block
// has been fully parsed.
func (p *Parser) decideFraming() *ParseError {
	version := p.request.Version
	if p.kind == MessageResponse {
		version = p.status.Version
	}
	p.keepAlive = version == "HTTP/1.1"

	if conn, ok := p.headers.Get("Connection"); ok && strings.ToLower(conn) == "close" {
		p.keepAlive = false
	}

	if te, ok := p.headers.Get("Transfer-Encoding"); ok && strings.Contains(strings.ToLower(te), "chunked") {
		p.transferKind = TransferChunked
		p.contentLength = -1
		return nil
	}

	if cl, ok := p.headers.Get("Content-Length"); ok {
		n, valid := ParseContentLength(cl)
		if !valid {
			return newParseErr(ErrInvalidContentLength, StateHeaders, "invalid Content-Length", truncateDetail(cl))
		}
		p.transferKind = TransferContentLength
		p.contentLength = n
		return nil
	}

	p.transferKind = TransferIdentity
	p.contentLength = -1
	return nil
}

// emit builds the Message for the just-completed parse, resets per-message
// state, compacts the read buffer, and returns to StateIdle so the next
// pipelined message (if any) starts fresh.
func (p *Parser) emit() *Message {
	msg := &Message{
		Kind:             p.kind,
		Request:          p.request,
		Status:           p.status,
		Headers:          p.headers,
		Body:             append([]byte(nil), p.bodyBuf.bytes()...),
		KeepAlive:        p.keepAlive,
		TransferEncoding: p.transferKind,
		ContentLength:    p.contentLength,
	}
	p.messagesEmitted++
	p.resetMessageState()
	p.state = StateIdle
	p.readBuf.compact()
	return msg
}

// scanTrailerEnd locates the blank-line terminator of a chunked body's
// trailer section, per spec §4.5: any trailer fields present are scanned
// over and discarded, only the terminator's position matters. The scan is
// bounded by MaxHeaders*MaxHeaderLineLength, proportionate to the header
// limits already configured, to avoid unbounded buffering of a hostile
// trailer section.
func scanTrailerEnd(buf []byte, cfg Config) (consumed int, needsMore bool, err *ParseError) {
	limit := cfg.MaxHeaders * cfg.MaxHeaderLineLength
	if bytes.HasPrefix(buf, []byte("\r\n")) {
		return 2, false, nil
	}
	idx := bytes.Index(buf, []byte("\r\n\r\n"))
	if idx >= 0 {
		return idx + 4, false, nil
	}
	if limit > 0 && len(buf) > limit {
		return 0, false, newParseErr(ErrInvalidChunkTrailer, StateBodyChunkedTrailer,
			"trailer section exceeds configured limit", "")
	}
	return 0, true, nil
}
