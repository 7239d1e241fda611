package wire

import "github.com/valyala/bytebufferpool"

// Buffer is the owning, growable byte buffer used for record and handshake
// scratch space. It is backed by a pooled bytebufferpool.ByteBuffer so that
// repeated Connect/Close cycles reuse the same underlying storage instead
// of reallocating it.
type Buffer struct {
	bb *bytebufferpool.ByteBuffer
}

// NewBuffer returns a Buffer drawn from the shared pool. Release must be
// called once the buffer is no longer needed to return it to the pool.
func NewBuffer() Buffer {
	return Buffer{bb: bytebufferpool.Get()}
}

// Release returns the underlying storage to the pool. The Buffer must not
// be used afterward.
func (b *Buffer) Release() {
	if b.bb != nil {
		bytebufferpool.Put(b.bb)
		b.bb = nil
	}
}

// Bytes returns the buffer's current contents. The slice is only valid
// until the next mutating call.
func (b *Buffer) Bytes() []byte {
	if b.bb == nil {
		return nil
	}
	return b.bb.B
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int {
	if b.bb == nil {
		return 0
	}
	return len(b.bb.B)
}

// Reset empties the buffer without releasing its storage.
func (b *Buffer) Reset() {
	if b.bb != nil {
		b.bb.Reset()
	}
}

// Append appends p to the buffer.
func (b *Buffer) Append(p []byte) {
	b.ensure()
	_, _ = b.bb.Write(p)
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.ensure()
	_ = b.bb.WriteByte(c)
}

// Consume removes the first n bytes from the front of the buffer, shifting
// the remainder down. Used by the record driver to drop a fully processed
// record from the TCP inbox.
func (b *Buffer) Consume(n int) {
	if b.bb == nil {
		return
	}
	if n >= len(b.bb.B) {
		b.bb.Reset()
		return
	}
	copy(b.bb.B, b.bb.B[n:])
	b.bb.B = b.bb.B[:len(b.bb.B)-n]
}

func (b *Buffer) ensure() {
	if b.bb == nil {
		b.bb = bytebufferpool.Get()
	}
}

// AppendU16BE appends a big-endian uint16.
func (b *Buffer) AppendU16BE(x uint16) {
	b.Append([]byte{byte(x >> 8), byte(x)})
}

// AppendU24BE appends a big-endian 24-bit integer.
func (b *Buffer) AppendU24BE(x uint32) {
	b.Append([]byte{byte(x >> 16), byte(x >> 8), byte(x)})
}

// PutU16BE overwrites the big-endian uint16 at the given offset. Used to
// back-fill length prefixes reserved earlier with placeholder zero bytes.
func PutU16BE(buf []byte, offset int, x uint16) {
	buf[offset] = byte(x >> 8)
	buf[offset+1] = byte(x)
}

// PutU24BE overwrites the big-endian 24-bit integer at the given offset.
func PutU24BE(buf []byte, offset int, x uint32) {
	buf[offset] = byte(x >> 16)
	buf[offset+1] = byte(x >> 8)
	buf[offset+2] = byte(x)
}
