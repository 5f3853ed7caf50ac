// Package base58check implements Base58Check, the checksummed Base58 text
// encoding used for Zcash transparent addresses.
//
// The encoded form is Base58(payload || checksum) where checksum is the first
// four bytes of SHA256(SHA256(payload)). Each leading zero byte of the input
// is represented by a leading '1' symbol.
package base58check

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
)

// ChecksumLen is the number of checksum bytes appended to the payload.
const ChecksumLen = 4

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	// ErrInvalidEncoding is matched by every decoding failure.
	ErrInvalidEncoding = errors.New("invalid base58check encoding")

	ErrTooShort         = fmt.Errorf("%w: too short to contain a checksum", ErrInvalidEncoding)
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrInvalidEncoding)
)

// InvalidSymbolError reports a character outside the Base58 alphabet.
type InvalidSymbolError struct {
	Position int
	Symbol   rune
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("%v: invalid symbol %q at position %d", ErrInvalidEncoding, e.Symbol, e.Position)
}

func (e *InvalidSymbolError) Unwrap() error {
	return ErrInvalidEncoding
}

func checksum(payload []byte) [ChecksumLen]byte {
	h1 := sha256.Sum256(payload)
	h2 := sha256.Sum256(h1[:])
	var c [ChecksumLen]byte
	copy(c[:], h2[:ChecksumLen])
	return c
}

// Encode returns the Base58Check encoding of payload.
func Encode(payload []byte) string {
	c := checksum(payload)
	buf := make([]byte, 0, len(payload)+ChecksumLen)
	buf = append(buf, payload...)
	buf = append(buf, c[:]...)
	return base58.Encode(buf)
}

// Decode verifies and strips the checksum of a Base58Check string.
func Decode(s string) ([]byte, error) {
	for i, ch := range s {
		if ch > 0x7f || strings.IndexByte(alphabet, byte(ch)) < 0 {
			return nil, &InvalidSymbolError{Position: i, Symbol: ch}
		}
	}

	decoded := base58.Decode(s)
	if len(decoded) < ChecksumLen {
		return nil, ErrTooShort
	}

	split := len(decoded) - ChecksumLen
	payload, provided := decoded[:split], decoded[split:]
	want := checksum(payload)
	if subtle.ConstantTimeCompare(provided, want[:]) != 1 {
		return nil, ErrChecksumMismatch
	}
	return payload, nil
}

// CheckEncode encodes prefix || payload.
func CheckEncode(prefix, payload []byte) string {
	buf := make([]byte, 0, len(prefix)+len(payload))
	buf = append(buf, prefix...)
	buf = append(buf, payload...)
	return Encode(buf)
}

// CheckDecode decodes s and splits off a prefix of prefixLen bytes.
func CheckDecode(s string, prefixLen int) (prefix, payload []byte, err error) {
	decoded, err := Decode(s)
	if err != nil {
		return nil, nil, err
	}
	if len(decoded) < prefixLen {
		return nil, nil, fmt.Errorf("%w: payload shorter than %d-byte prefix", ErrInvalidEncoding, prefixLen)
	}
	return decoded[:prefixLen], decoded[prefixLen:], nil
}
