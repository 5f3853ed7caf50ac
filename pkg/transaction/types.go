// Package transaction implements the binary encoding of Zcash transactions,
// versions 1 through 5, across the transparent, Sprout, Sapling and Orchard
// value pools.
//
// The codec is structural: it moves commitments, proofs and signatures as
// opaque fixed-length buffers and does not check consensus rules.
//
// Reference: Zcash protocol specification §7.1 and ZIP-225
// https://zips.z.cash/protocol/protocol.pdf
// https://zips.z.cash/zip-0225
package transaction

import "github.com/suffix-labs/zcash-codec/pkg/wire"

// OverwinteredFlag is bit 31 of the transaction header.
const OverwinteredFlag = 1 << 31

// RawTransaction is a decoded transaction of any supported version. Which
// fields are meaningful is determined by Version; fields a version does not
// carry are zero.
type RawTransaction struct {
	Header            uint32 // fOverwintered (bit 31) | nVersion
	VersionGroupID    uint32 // v3+
	ConsensusBranchID uint32 // v5
	LockTime          uint32
	ExpiryHeight      uint32 // v3+

	Transparent TransparentFields
	Sprout      SproutFields  // v2-v4
	Sapling     SaplingFields // v4+
	Orchard     OrchardFields // v5
}

// Version returns the header version without the overwintered flag.
func (tx *RawTransaction) Version() uint32 { return tx.Header &^ OverwinteredFlag }

// Overwintered reports whether bit 31 of the header is set.
func (tx *RawTransaction) Overwintered() bool { return tx.Header&OverwinteredFlag != 0 }

// MakeHeader builds a header value for version, setting the overwintered flag
// for versions that require it.
func MakeHeader(version uint32) uint32 {
	if version >= 3 {
		return version | OverwinteredFlag
	}
	return version
}

// TransparentFields holds the transparent inputs and outputs.
type TransparentFields struct {
	Inputs  []TxIn
	Outputs []TxOut
}

// OutPoint references a previous transparent output.
type OutPoint struct {
	Hash  TxID
	Index uint32
}

// TxIn is a transparent input.
type TxIn struct {
	PrevOut   OutPoint
	ScriptSig []byte
	Sequence  uint32
}

// TxOut is a transparent output.
type TxOut struct {
	Value        int64 // zatoshis
	ScriptPubKey []byte
}

// SproutFields holds JoinSplit descriptions.
type SproutFields struct {
	JoinSplits []JSDescription
	PubKey     wire.Bytes32 // joinSplitPubKey, present iff JoinSplits is non-empty
	Sig        wire.Bytes64 // joinSplitSig, present iff JoinSplits is non-empty
}

// JSDescription is a Sprout JoinSplit description.
type JSDescription struct {
	VPubOld        uint64
	VPubNew        uint64
	Anchor         wire.Bytes32
	Nullifiers     [2]wire.Bytes32
	Commitments    [2]wire.Bytes32
	EphemeralKey   wire.Bytes32
	RandomSeed     wire.Bytes32
	Macs           [2]wire.Bytes32
	Proof          SproutProof
	EncCiphertexts [2]wire.Bytes601
}

// SproutProof is either a BCTV14Proof (v2, v3) or a Groth16Proof (v4).
type SproutProof interface {
	Bytes() []byte
	isSproutProof()
}

// BCTV14Proof is a PHGR13 proof used by v2 and v3 JoinSplits.
type BCTV14Proof wire.Bytes296

// Groth16Proof is a Groth16 proof used by v4 JoinSplits.
type Groth16Proof wire.Bytes192

// Bytes returns the proof as a slice.
func (p BCTV14Proof) Bytes() []byte  { return p[:] }
func (p Groth16Proof) Bytes() []byte { return p[:] }

func (BCTV14Proof) isSproutProof()  {}
func (Groth16Proof) isSproutProof() {}

// SaplingFields holds the Sapling bundle.
//
// In v5 the anchor is shared by all spends and is carried in Anchor; in v4
// each spend carries its own anchor and Anchor is zero. Proofs and spend
// authorization signatures are always attached to their descriptions, even
// though v5 serializes them in separate batches.
type SaplingFields struct {
	ValueBalance int64
	Spends       []SaplingSpendDescription
	Outputs      []SaplingOutputDescription
	Anchor       wire.Bytes32 // v5, present iff Spends is non-empty
	BindingSig   wire.Bytes64 // present iff Spends or Outputs is non-empty
}

// SaplingSpendDescription is a Sapling spend.
type SaplingSpendDescription struct {
	CV           wire.Bytes32
	Anchor       wire.Bytes32 // v4 only
	Nullifier    wire.Bytes32
	Rk           wire.Bytes32
	Proof        wire.Bytes192
	SpendAuthSig wire.Bytes64
}

// SaplingOutputDescription is a Sapling output.
type SaplingOutputDescription struct {
	CV            wire.Bytes32
	Cmu           wire.Bytes32
	EphemeralKey  wire.Bytes32
	EncCiphertext wire.Bytes580
	OutCiphertext wire.Bytes80
	Proof         wire.Bytes192
}

// OrchardFields holds the Orchard bundle. Everything except Actions is
// present on the wire only when Actions is non-empty.
type OrchardFields struct {
	Actions      []OrchardAction
	Flags        byte
	ValueBalance int64
	Anchor       wire.Bytes32
	Proof        []byte // aggregated Halo 2 proof
	BindingSig   wire.Bytes64
}

// OrchardAction is an Orchard action description with its spend
// authorization signature.
type OrchardAction struct {
	CVNet         wire.Bytes32
	Nullifier     wire.Bytes32
	Rk            wire.Bytes32
	Cmx           wire.Bytes32
	EphemeralKey  wire.Bytes32
	EncCiphertext wire.Bytes580
	OutCiphertext wire.Bytes80
	SpendAuthSig  wire.Bytes64
}

// Orchard flag bits.
const (
	OrchardFlagSpendsEnabled  = 0x01
	OrchardFlagOutputsEnabled = 0x02
)
