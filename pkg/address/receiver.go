package address

import (
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // Hash160 is part of the transparent address format

	"github.com/suffix-labs/zcash-codec/pkg/wire"
)

// Typecode identifies a receiver or key item inside a unified encoding.
type Typecode uint32

// Typecodes registered by ZIP-316.
const (
	TypecodeP2PKH   Typecode = 0x00
	TypecodeP2SH    Typecode = 0x01
	TypecodeSapling Typecode = 0x02
	TypecodeOrchard Typecode = 0x03
)

// Receiver payload lengths.
const (
	TransparentReceiverLen = 20
	ShieldedReceiverLen    = 43
	DiversifierLen         = 11
)

// ContributionLength returns the fixed receiver payload length for a known
// typecode, or -1.
func (tc Typecode) ContributionLength() int {
	switch tc {
	case TypecodeP2PKH, TypecodeP2SH:
		return TransparentReceiverLen
	case TypecodeSapling, TypecodeOrchard:
		return ShieldedReceiverLen
	}
	return -1
}

// IsTransparent reports whether tc is a transparent receiver type.
func (tc Typecode) IsTransparent() bool {
	return tc == TypecodeP2PKH || tc == TypecodeP2SH
}

// IsShielded reports whether tc is a shielded receiver type.
func (tc Typecode) IsShielded() bool {
	return tc == TypecodeSapling || tc == TypecodeOrchard
}

// String returns the receiver name, or the typecode in hex when unregistered.
func (tc Typecode) String() string {
	switch tc {
	case TypecodeP2PKH:
		return "p2pkh"
	case TypecodeP2SH:
		return "p2sh"
	case TypecodeSapling:
		return "sapling"
	case TypecodeOrchard:
		return "orchard"
	}
	return fmt.Sprintf("unknown(0x%02x)", uint32(tc))
}

// Receiver is the raw, pool-specific destination carried by an address.
// The set of implementations is closed: TransparentP2PKHReceiver,
// TransparentP2SHReceiver, SaplingReceiver and OrchardReceiver.
type Receiver interface {
	Typecode() Typecode
	// Bytes returns the fixed-length receiver encoding.
	Bytes() []byte
	isReceiver()
}

// TransparentReceiver is a P2PKH or P2SH receiver.
type TransparentReceiver interface {
	Receiver
	// Hash returns the 20-byte Hash160 the receiver commits to.
	Hash() wire.Bytes20
	isTransparent()
}

// TransparentP2PKHReceiver is the Hash160 of a secp256k1 public key.
type TransparentP2PKHReceiver wire.Bytes20

// TransparentP2SHReceiver is the Hash160 of a redeem script.
type TransparentP2SHReceiver wire.Bytes20

// SaplingReceiver is a raw Sapling payment address: diversifier || pk_d.
type SaplingReceiver wire.Bytes43

// OrchardReceiver is a raw Orchard payment address: diversifier || pk_d.
type OrchardReceiver wire.Bytes43

// Typecode and Bytes implement Receiver.
func (TransparentP2PKHReceiver) Typecode() Typecode { return TypecodeP2PKH }
func (TransparentP2SHReceiver) Typecode() Typecode  { return TypecodeP2SH }
func (SaplingReceiver) Typecode() Typecode          { return TypecodeSapling }
func (OrchardReceiver) Typecode() Typecode          { return TypecodeOrchard }

func (r TransparentP2PKHReceiver) Bytes() []byte { return r[:] }
func (r TransparentP2SHReceiver) Bytes() []byte  { return r[:] }
func (r SaplingReceiver) Bytes() []byte          { return r[:] }
func (r OrchardReceiver) Bytes() []byte          { return r[:] }

func (r TransparentP2PKHReceiver) Hash() wire.Bytes20 { return wire.Bytes20(r) }
func (r TransparentP2SHReceiver) Hash() wire.Bytes20  { return wire.Bytes20(r) }

func (TransparentP2PKHReceiver) isReceiver() {}
func (TransparentP2SHReceiver) isReceiver()  {}
func (SaplingReceiver) isReceiver()          {}
func (OrchardReceiver) isReceiver()          {}

func (TransparentP2PKHReceiver) isTransparent() {}
func (TransparentP2SHReceiver) isTransparent()  {}

// Diversifier returns the 11-byte diversifier.
func (r SaplingReceiver) Diversifier() wire.Bytes11 { return diversifier(r) }

// TransmissionKey returns the 32-byte diversified transmission key pk_d.
func (r SaplingReceiver) TransmissionKey() wire.Bytes32 { return transmissionKey(r) }

// Diversifier returns the 11-byte diversifier.
func (r OrchardReceiver) Diversifier() wire.Bytes11 { return diversifier(r) }

// TransmissionKey returns the 32-byte diversified transmission key pk_d.
func (r OrchardReceiver) TransmissionKey() wire.Bytes32 { return transmissionKey(r) }

func diversifier(raw [ShieldedReceiverLen]byte) (d wire.Bytes11) {
	copy(d[:], raw[:DiversifierLen])
	return d
}

func transmissionKey(raw [ShieldedReceiverLen]byte) (pk wire.Bytes32) {
	copy(pk[:], raw[DiversifierLen:])
	return pk
}

func joinShielded(d wire.Bytes11, pkd wire.Bytes32) (raw wire.Bytes43) {
	copy(raw[:DiversifierLen], d[:])
	copy(raw[DiversifierLen:], pkd[:])
	return raw
}

// NewTransparentP2PKHReceiver builds a P2PKH receiver from a 20-byte hash.
func NewTransparentP2PKHReceiver(hash []byte) (TransparentP2PKHReceiver, error) {
	b, err := wire.NewBytes20(hash)
	if err != nil {
		return TransparentP2PKHReceiver{}, fmt.Errorf("p2pkh receiver: %w", err)
	}
	return TransparentP2PKHReceiver(b), nil
}

// NewTransparentP2SHReceiver builds a P2SH receiver from a 20-byte hash.
func NewTransparentP2SHReceiver(hash []byte) (TransparentP2SHReceiver, error) {
	b, err := wire.NewBytes20(hash)
	if err != nil {
		return TransparentP2SHReceiver{}, fmt.Errorf("p2sh receiver: %w", err)
	}
	return TransparentP2SHReceiver(b), nil
}

// NewSaplingReceiver builds a Sapling receiver from its 43-byte encoding.
func NewSaplingReceiver(raw []byte) (SaplingReceiver, error) {
	b, err := wire.NewBytes43(raw)
	if err != nil {
		return SaplingReceiver{}, fmt.Errorf("sapling receiver: %w", err)
	}
	return SaplingReceiver(b), nil
}

// NewOrchardReceiver builds an Orchard receiver from its 43-byte encoding.
func NewOrchardReceiver(raw []byte) (OrchardReceiver, error) {
	b, err := wire.NewBytes43(raw)
	if err != nil {
		return OrchardReceiver{}, fmt.Errorf("orchard receiver: %w", err)
	}
	return OrchardReceiver(b), nil
}

// SaplingReceiverFromParts joins a diversifier and transmission key.
func SaplingReceiverFromParts(d wire.Bytes11, pkd wire.Bytes32) SaplingReceiver {
	return SaplingReceiver(joinShielded(d, pkd))
}

// OrchardReceiverFromParts joins a diversifier and transmission key.
func OrchardReceiverFromParts(d wire.Bytes11, pkd wire.Bytes32) OrchardReceiver {
	return OrchardReceiver(joinShielded(d, pkd))
}

// Hash160 returns RIPEMD160(SHA256(b)).
func Hash160(b []byte) wire.Bytes20 {
	sha := sha256.Sum256(b)
	r := ripemd160.New()
	r.Write(sha[:])
	var out wire.Bytes20
	copy(out[:], r.Sum(nil))
	return out
}

// P2PKHReceiverFromPublicKey hashes a serialized secp256k1 public key. The
// key must be a valid curve point in compressed or uncompressed form.
func P2PKHReceiverFromPublicKey(pubKey []byte) (TransparentP2PKHReceiver, error) {
	if _, err := secp256k1.ParsePubKey(pubKey); err != nil {
		return TransparentP2PKHReceiver{}, fmt.Errorf("parsing public key: %w", err)
	}
	return TransparentP2PKHReceiver(Hash160(pubKey)), nil
}

// P2SHReceiverFromScript hashes a redeem script.
func P2SHReceiverFromScript(redeemScript []byte) TransparentP2SHReceiver {
	return TransparentP2SHReceiver(Hash160(redeemScript))
}

// decodeReceiver builds the typed receiver for a known typecode. It returns
// nil without error for unknown typecodes.
func decodeReceiver(tc Typecode, data []byte) (Receiver, error) {
	want := tc.ContributionLength()
	if want < 0 {
		return nil, nil
	}
	if len(data) != want {
		return nil, &EncodingError{
			Layer:   LayerItem,
			Message: fmt.Sprintf("%s receiver has %d bytes, want %d", tc, len(data), want),
		}
	}
	switch tc {
	case TypecodeP2PKH:
		return NewTransparentP2PKHReceiver(data)
	case TypecodeP2SH:
		return NewTransparentP2SHReceiver(data)
	case TypecodeSapling:
		return NewSaplingReceiver(data)
	default:
		return NewOrchardReceiver(data)
	}
}
