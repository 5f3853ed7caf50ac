// Package f4jumble implements the F4Jumble permutation from ZIP-316.
//
// F4Jumble is an unkeyed, length-preserving four-round Feistel network built
// from personalized BLAKE2b. Unified addresses and viewing keys are jumbled
// before Bech32m encoding so that a change to any receiver alters the whole
// string.
//
// See: https://zips.z.cash/zip-0316#jumbling
package f4jumble

import (
	"encoding/binary"
	"fmt"
	"hash"

	blake2b "github.com/minio/blake2b-simd"
)

const (
	// MinLength is the shortest message that can be jumbled.
	MinLength = 48
	// MaxLength is the longest message that can be jumbled (ℓ_H · (2^16 + 1)).
	MaxLength = 4194368

	// hashLen is ℓ_H, the BLAKE2b-512 output length used by G.
	hashLen = 64
)

var (
	personG = [13]byte{'U', 'A', '_', 'F', '4', 'J', 'u', 'm', 'b', 'l', 'e', '_', 'G'}
	personH = [13]byte{'U', 'A', '_', 'F', '4', 'J', 'u', 'm', 'b', 'l', 'e', '_', 'H'}
)

// LengthError is returned for messages outside [MinLength, MaxLength].
type LengthError struct {
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("f4jumble: message length %d outside [%d, %d]", e.Length, MinLength, MaxLength)
}

// Jumble returns F4Jumble(msg) in a new slice.
func Jumble(msg []byte) ([]byte, error) {
	out := append([]byte(nil), msg...)
	if err := Apply(out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Unjumble returns F4Jumble⁻¹(msg) in a new slice.
func Unjumble(msg []byte) ([]byte, error) {
	out := append([]byte(nil), msg...)
	if err := Apply(out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Apply permutes buf in place, or reverses the permutation when inverted.
func Apply(buf []byte, inverted bool) error {
	if len(buf) < MinLength || len(buf) > MaxLength {
		return &LengthError{Length: len(buf)}
	}

	leftLen := min(hashLen, len(buf)/2)
	left, right := buf[:leftLen], buf[leftLen:]

	var err error
	if !inverted {
		for round := byte(0); round < 2 && err == nil; round++ {
			if err = roundG(round, left, right); err == nil {
				err = roundH(round, left, right)
			}
		}
	} else {
		for round := byte(2); round > 0 && err == nil; round-- {
			if err = roundH(round-1, left, right); err == nil {
				err = roundG(round-1, left, right)
			}
		}
	}
	return err
}

// roundG XORs G_i(left) into right, one 64-byte BLAKE2b-512 block per chunk.
func roundG(i byte, left, right []byte) error {
	var person [16]byte
	copy(person[:], personG[:])
	person[13] = i

	for j := 0; j*hashLen < len(right); j++ {
		binary.LittleEndian.PutUint16(person[14:], uint16(j))
		h, err := newHash(hashLen, person[:])
		if err != nil {
			return err
		}
		h.Write(left)
		xorInto(right[j*hashLen:], h.Sum(nil))
	}
	return nil
}

// roundH XORs H_i(right) into left; H's output is exactly len(left) bytes.
func roundH(i byte, left, right []byte) error {
	var person [16]byte
	copy(person[:], personH[:])
	person[13] = i

	h, err := newHash(len(left), person[:])
	if err != nil {
		return err
	}
	h.Write(right)
	xorInto(left, h.Sum(nil))
	return nil
}

func newHash(size int, person []byte) (hash.Hash, error) {
	h, err := blake2b.New(&blake2b.Config{Size: uint8(size), Person: person})
	if err != nil {
		return nil, fmt.Errorf("f4jumble: initializing blake2b: %w", err)
	}
	return h, nil
}

// xorInto XORs src into dst over the shorter of the two.
func xorInto(dst, src []byte) {
	n := min(len(dst), len(src))
	for k := 0; k < n; k++ {
		dst[k] ^= src[k]
	}
}
