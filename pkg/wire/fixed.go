package wire

// Exact-length byte buffers. Each type is a plain array so values compare
// with == and copy by value; construction from a slice is length-checked.

// Bytes11 holds a diversifier.
type Bytes11 [11]byte

// Bytes20 holds a Hash160 digest.
type Bytes20 [20]byte

// Bytes32 holds commitments, nullifiers, keys and anchors.
type Bytes32 [32]byte

// Bytes43 holds a raw Sapling or Orchard payment address.
type Bytes43 [43]byte

// Bytes64 holds signatures.
type Bytes64 [64]byte

// Bytes80 holds an outgoing ciphertext.
type Bytes80 [80]byte

// Bytes96 holds an Orchard full viewing key.
type Bytes96 [96]byte

// Bytes192 holds a Groth16 proof.
type Bytes192 [192]byte

// Bytes296 holds a BCTV14 proof.
type Bytes296 [296]byte

// Bytes580 holds a Sapling or Orchard note ciphertext.
type Bytes580 [580]byte

// Bytes601 holds a Sprout note ciphertext.
type Bytes601 [601]byte

func fill(dst, src []byte, name string) error {
	if len(src) != len(dst) {
		return &LengthError{Type: name, Want: len(dst), Got: len(src)}
	}
	copy(dst, src)
	return nil
}

// NewBytes11 copies b, which must be exactly 11 bytes long.
func NewBytes11(b []byte) (out Bytes11, err error) {
	err = fill(out[:], b, "Bytes11")
	return
}

// NewBytes20 copies b, which must be exactly 20 bytes long.
func NewBytes20(b []byte) (out Bytes20, err error) {
	err = fill(out[:], b, "Bytes20")
	return
}

// NewBytes32 copies b, which must be exactly 32 bytes long.
func NewBytes32(b []byte) (out Bytes32, err error) {
	err = fill(out[:], b, "Bytes32")
	return
}

// NewBytes43 copies b, which must be exactly 43 bytes long.
func NewBytes43(b []byte) (out Bytes43, err error) {
	err = fill(out[:], b, "Bytes43")
	return
}

// NewBytes64 copies b, which must be exactly 64 bytes long.
func NewBytes64(b []byte) (out Bytes64, err error) {
	err = fill(out[:], b, "Bytes64")
	return
}

// NewBytes80 copies b, which must be exactly 80 bytes long.
func NewBytes80(b []byte) (out Bytes80, err error) {
	err = fill(out[:], b, "Bytes80")
	return
}

// NewBytes96 copies b, which must be exactly 96 bytes long.
func NewBytes96(b []byte) (out Bytes96, err error) {
	err = fill(out[:], b, "Bytes96")
	return
}

// NewBytes192 copies b, which must be exactly 192 bytes long.
func NewBytes192(b []byte) (out Bytes192, err error) {
	err = fill(out[:], b, "Bytes192")
	return
}

// NewBytes296 copies b, which must be exactly 296 bytes long.
func NewBytes296(b []byte) (out Bytes296, err error) {
	err = fill(out[:], b, "Bytes296")
	return
}

// NewBytes580 copies b, which must be exactly 580 bytes long.
func NewBytes580(b []byte) (out Bytes580, err error) {
	err = fill(out[:], b, "Bytes580")
	return
}

// NewBytes601 copies b, which must be exactly 601 bytes long.
func NewBytes601(b []byte) (out Bytes601, err error) {
	err = fill(out[:], b, "Bytes601")
	return
}

// Bytes returns the array as a slice.
func (b Bytes11) Bytes() []byte  { return b[:] }
func (b Bytes20) Bytes() []byte  { return b[:] }
func (b Bytes32) Bytes() []byte  { return b[:] }
func (b Bytes43) Bytes() []byte  { return b[:] }
func (b Bytes64) Bytes() []byte  { return b[:] }
func (b Bytes80) Bytes() []byte  { return b[:] }
func (b Bytes96) Bytes() []byte  { return b[:] }
func (b Bytes192) Bytes() []byte { return b[:] }
func (b Bytes296) Bytes() []byte { return b[:] }
func (b Bytes580) Bytes() []byte { return b[:] }
func (b Bytes601) Bytes() []byte { return b[:] }

// IsZero reports whether every byte is zero.
func (b Bytes32) IsZero() bool { return b == Bytes32{} }

// IsZero reports whether every byte is zero.
func (b Bytes64) IsZero() bool { return b == Bytes64{} }
