package wire

import (
	"bytes"
	"encoding/binary"
)

// Writer accumulates a little-endian encoding. Writes to the underlying
// bytes.Buffer cannot fail, so the methods return nothing.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns a Writer with capacity for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	w := &Writer{}
	w.buf.Grow(sizeHint)
	return w
}

// Write appends b unchanged.
func (w *Writer) Write(b []byte) { w.buf.Write(b) }

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(b byte) { w.buf.WriteByte(b) }

// WriteUint32LE appends v in little-endian order.
func (w *Writer) WriteUint32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// WriteUint64LE appends v in little-endian order.
func (w *Writer) WriteUint64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteInt64LE appends v as a little-endian two's-complement integer.
func (w *Writer) WriteInt64LE(v int64) { w.WriteUint64LE(uint64(v)) }

// WriteCompactSize appends n in its minimal CompactSize encoding.
func (w *Writer) WriteCompactSize(n uint64) {
	var b [9]byte
	w.buf.Write(AppendCompactSize(b[:0], n))
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }
