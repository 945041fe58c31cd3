package httpstream

import "github.com/valyala/bytebufferpool"

// growBuffer is an append-only byte buffer with an explicit read offset,
// backed by a pooled github.com/valyala/bytebufferpool.ByteBuffer. It is the
// concrete realization of spec §9's "growable byte buffer with capacity
// doubling and periodic compaction": bytebufferpool already grows its
// backing slice geometrically on append, so this type only needs to own the
// offset/compaction discipline spec §4.5 describes.
//
// The parser uses one growBuffer for the connection-wide read buffer
// (offset advances as bytes are consumed by the state machine, compacted on
// every Parse call and after every emitted message) and a second, always-
// compact growBuffer per in-progress message body.
type growBuffer struct {
	buf *bytebufferpool.ByteBuffer
	off int
}

func newGrowBuffer() *growBuffer {
	return &growBuffer{buf: bytebufferpool.Get()}
}

// append adds p to the end of the buffer.
func (b *growBuffer) append(p []byte) {
	b.buf.B = append(b.buf.B, p...)
}

// bytes returns the unconsumed portion of the buffer: [offset, len).
func (b *growBuffer) bytes() []byte {
	return b.buf.B[b.off:]
}

// len returns the number of unconsumed bytes.
func (b *growBuffer) len() int {
	return len(b.buf.B) - b.off
}

// advance marks n bytes at the front of the unconsumed region as consumed.
func (b *growBuffer) advance(n int) {
	b.off += n
}

// compact discards the consumed prefix so the unconsumed region starts at
// offset zero again, the way spec §4.5 requires on every Parse entry and
// after every emitted message.
func (b *growBuffer) compact() {
	if b.off == 0 {
		return
	}
	if b.off >= len(b.buf.B) {
		b.buf.Reset()
		b.off = 0
		return
	}
	n := copy(b.buf.B, b.buf.B[b.off:])
	b.buf.B = b.buf.B[:n]
	b.off = 0
}

// reset drops all buffered bytes and the read offset.
func (b *growBuffer) reset() {
	b.buf.Reset()
	b.off = 0
}

// release returns the backing ByteBuffer to the pool. The growBuffer must
// not be used afterward.
func (b *growBuffer) release() {
	bytebufferpool.Put(b.buf)
	b.buf = nil
}
