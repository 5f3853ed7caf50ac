package wire

import "encoding/binary"

// Reader is a forward-only cursor over an immutable byte buffer.
//
// Slices returned by Read alias the underlying buffer; callers that need the
// data to outlive the input must copy it. A failed read leaves the cursor
// where it was.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

func (r *Reader) truncated() error {
	return &DecodeError{Offset: r.off, Err: ErrTruncated}
}

// Read returns the next n bytes as a view into the buffer.
func (r *Reader) Read(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, r.truncated()
	}
	b := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return b, nil
}

// ReadInto fills dst completely from the buffer.
func (r *Reader) ReadInto(dst []byte) error {
	b, err := r.Read(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, r.truncated()
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// ReadUint16LE reads a little-endian uint16.
func (r *Reader) ReadUint16LE() (uint16, error) {
	b, err := r.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUint32LE reads a little-endian uint32.
func (r *Reader) ReadUint32LE() (uint32, error) {
	b, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadUint64LE reads a little-endian uint64.
func (r *Reader) ReadUint64LE() (uint64, error) {
	b, err := r.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt64LE reads a little-endian two's-complement int64.
func (r *Reader) ReadInt64LE() (int64, error) {
	v, err := r.ReadUint64LE()
	return int64(v), err
}

// ReadCompactSize decodes a CompactSize integer, rejecting encodings that
// are longer than necessary.
func (r *Reader) ReadCompactSize() (uint64, error) {
	start := r.off
	first, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	var v, least uint64
	switch first {
	case 0xfd:
		var x uint16
		x, err = r.ReadUint16LE()
		v, least = uint64(x), 0xfd
	case 0xfe:
		var x uint32
		x, err = r.ReadUint32LE()
		v, least = uint64(x), 0x10000
	case 0xff:
		v, err = r.ReadUint64LE()
		least = 0x100000000
	default:
		return uint64(first), nil
	}
	if err != nil {
		r.off = start
		return 0, err
	}
	if v < least {
		r.off = start
		return 0, &DecodeError{Offset: start, Err: ErrNonCanonicalCompactSize}
	}
	return v, nil
}

// ReadCompactCount decodes a CompactSize used as an element count or byte
// length, bounded by MaxCompactCount.
func (r *Reader) ReadCompactCount() (int, error) {
	start := r.off
	v, err := r.ReadCompactSize()
	if err != nil {
		return 0, err
	}
	if v > MaxCompactCount {
		r.off = start
		return 0, &DecodeError{Offset: start, Err: ErrCountTooLarge}
	}
	return int(v), nil
}

// ReadCountOf reads a count of items each at least stride bytes long and
// fails early when the remaining buffer cannot possibly hold them.
func (r *Reader) ReadCountOf(stride int) (int, error) {
	start := r.off
	n, err := r.ReadCompactCount()
	if err != nil {
		return 0, err
	}
	if stride > 0 && n > r.Remaining()/stride {
		r.off = start
		return 0, &DecodeError{Offset: start, Err: ErrTruncated}
	}
	return n, nil
}

// ExpectEOF fails if any bytes remain unread.
func (r *Reader) ExpectEOF() error {
	if r.Remaining() != 0 {
		return &DecodeError{Offset: r.off, Err: ErrTrailingBytes}
	}
	return nil
}
