// Package wire provides the byte-level building blocks shared by the Zcash
// codecs: exact-length byte buffers, a bounds-checked cursor over an
// immutable buffer, Bitcoin-style CompactSize integers and a matching writer.
//
// See: https://zips.z.cash/protocol/protocol.pdf §7 (Transaction Encoding)
package wire

import (
	"errors"
	"fmt"
)

// Sentinel conditions wrapped by DecodeError.
var (
	ErrTruncated               = errors.New("unexpected end of data")
	ErrNonCanonicalCompactSize = errors.New("non-canonical compact size")
	ErrCountTooLarge           = errors.New("count exceeds maximum")
	ErrTrailingBytes           = errors.New("unconsumed trailing bytes")
)

// DecodeError reports a structural failure at a byte offset of the input.
type DecodeError struct {
	Offset int    // Offset at which the failing read started
	Field  string // Field being read, if known
	Err    error  // Underlying condition (one of the sentinels above)
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode error at offset %d (%s): %v", e.Offset, e.Field, e.Err)
	}
	return fmt.Sprintf("decode error at offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// LengthError is returned by the fixed-length constructors.
type LengthError struct {
	Type string
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("invalid length for %s: want %d bytes, got %d", e.Type, e.Want, e.Got)
}
