package transaction

import (
	"encoding/binary"
	"hash"

	blake2b "github.com/minio/blake2b-simd"

	"github.com/suffix-labs/zcash-codec/pkg/wire"
)

// ZIP-244 personalizations.
// https://zips.z.cash/zip-0244
const (
	txHashPersonalizationPrefix = "ZcashTxHash_"

	headersPersonalization     = "ZTxIdHeadersHash"
	transparentPersonalization = "ZTxIdTranspaHash"
	saplingPersonalization     = "ZTxIdSaplingHash"
	orchardPersonalization     = "ZTxIdOrchardHash"

	prevoutsPersonalization = "ZTxIdPrevoutHash"
	sequencePersonalization = "ZTxIdSequencHash"
	outputsPersonalization  = "ZTxIdOutputsHash"

	saplingSpendsPersonalization            = "ZTxIdSSpendsHash"
	saplingSpendsCompactPersonalization     = "ZTxIdSSpendCHash"
	saplingSpendsNoncompactPersonalization  = "ZTxIdSSpendNHash"
	saplingOutputsPersonalization           = "ZTxIdSOutputHash"
	saplingOutputsCompactPersonalization    = "ZTxIdSOutC__Hash"
	saplingOutputsMemosPersonalization      = "ZTxIdSOutM__Hash"
	saplingOutputsNoncompactPersonalization = "ZTxIdSOutN__Hash"

	orchardCompactPersonalization    = "ZTxIdOrcActCHash"
	orchardMemosPersonalization      = "ZTxIdOrcActMHash"
	orchardNoncompactPersonalization = "ZTxIdOrcActNHash"
)

// Note ciphertext split points: the compact prefix ends after the note
// plaintext lead-in and the memo field follows it.
const (
	compactCiphertextLen = 52
	memoCiphertextEnd    = 564
)

func newDigest(personalization []byte) hash.Hash {
	h, err := blake2b.New(&blake2b.Config{Size: 32, Person: personalization})
	if err != nil {
		// Only reachable with a personalization longer than 16 bytes.
		panic(err)
	}
	return h
}

func sum(h hash.Hash) (d [32]byte) {
	copy(d[:], h.Sum(nil))
	return d
}

// digestOf hashes the concatenation of parts.
func digestOf(personalization string, parts ...[]byte) [32]byte {
	h := newDigest([]byte(personalization))
	for _, p := range parts {
		h.Write(p)
	}
	return sum(h)
}

func le32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }
func le64(v int64) []byte  { return binary.LittleEndian.AppendUint64(nil, uint64(v)) }

func (tx *RawTransaction) zip244TxID() TxID {
	header := tx.headerDigest()
	transparent := tx.transparentDigest()
	sapling := tx.saplingDigest()
	orchard := tx.orchardDigest()

	person := make([]byte, 16)
	copy(person, txHashPersonalizationPrefix)
	binary.LittleEndian.PutUint32(person[12:], tx.ConsensusBranchID)

	h := newDigest(person)
	h.Write(header[:])
	h.Write(transparent[:])
	h.Write(sapling[:])
	h.Write(orchard[:])
	return TxID(sum(h))
}

// T.1
func (tx *RawTransaction) headerDigest() [32]byte {
	return digestOf(headersPersonalization,
		le32(tx.Header),
		le32(tx.VersionGroupID),
		le32(tx.ConsensusBranchID),
		le32(tx.LockTime),
		le32(tx.ExpiryHeight),
	)
}

// T.2
func (tx *RawTransaction) transparentDigest() [32]byte {
	t := &tx.Transparent
	if len(t.Inputs) == 0 && len(t.Outputs) == 0 {
		return digestOf(transparentPersonalization)
	}

	prevouts := newDigest([]byte(prevoutsPersonalization))
	sequences := newDigest([]byte(sequencePersonalization))
	for _, in := range t.Inputs {
		prevouts.Write(in.PrevOut.Hash[:])
		prevouts.Write(le32(in.PrevOut.Index))
		sequences.Write(le32(in.Sequence))
	}

	w := wire.NewWriter(len(t.Outputs) * minTxOutLen)
	for i := range t.Outputs {
		encodeTxOut(w, &t.Outputs[i])
	}
	p, s, o := sum(prevouts), sum(sequences), digestOf(outputsPersonalization, w.Bytes())
	return digestOf(transparentPersonalization, p[:], s[:], o[:])
}

// T.3
func (tx *RawTransaction) saplingDigest() [32]byte {
	s := &tx.Sapling
	if len(s.Spends)+len(s.Outputs) == 0 {
		return digestOf(saplingPersonalization)
	}
	spends := saplingSpendsDigest(s.Spends, s.Anchor)
	outputs := saplingOutputsDigest(s.Outputs)
	return digestOf(saplingPersonalization, spends[:], outputs[:], le64(s.ValueBalance))
}

func saplingSpendsDigest(spends []SaplingSpendDescription, anchor wire.Bytes32) [32]byte {
	if len(spends) == 0 {
		return digestOf(saplingSpendsPersonalization)
	}
	compact := newDigest([]byte(saplingSpendsCompactPersonalization))
	noncompact := newDigest([]byte(saplingSpendsNoncompactPersonalization))
	for i := range spends {
		sp := &spends[i]
		compact.Write(sp.Nullifier[:])
		noncompact.Write(sp.CV[:])
		noncompact.Write(anchor[:])
		noncompact.Write(sp.Rk[:])
	}
	c, n := sum(compact), sum(noncompact)
	return digestOf(saplingSpendsPersonalization, c[:], n[:])
}

func saplingOutputsDigest(outputs []SaplingOutputDescription) [32]byte {
	if len(outputs) == 0 {
		return digestOf(saplingOutputsPersonalization)
	}
	compact := newDigest([]byte(saplingOutputsCompactPersonalization))
	memos := newDigest([]byte(saplingOutputsMemosPersonalization))
	noncompact := newDigest([]byte(saplingOutputsNoncompactPersonalization))
	for i := range outputs {
		out := &outputs[i]
		compact.Write(out.Cmu[:])
		compact.Write(out.EphemeralKey[:])
		compact.Write(out.EncCiphertext[:compactCiphertextLen])
		memos.Write(out.EncCiphertext[compactCiphertextLen:memoCiphertextEnd])
		noncompact.Write(out.CV[:])
		noncompact.Write(out.EncCiphertext[memoCiphertextEnd:])
		noncompact.Write(out.OutCiphertext[:])
	}
	c, m, n := sum(compact), sum(memos), sum(noncompact)
	return digestOf(saplingOutputsPersonalization, c[:], m[:], n[:])
}

// T.4
func (tx *RawTransaction) orchardDigest() [32]byte {
	o := &tx.Orchard
	if len(o.Actions) == 0 {
		return digestOf(orchardPersonalization)
	}
	compact := newDigest([]byte(orchardCompactPersonalization))
	memos := newDigest([]byte(orchardMemosPersonalization))
	noncompact := newDigest([]byte(orchardNoncompactPersonalization))
	for i := range o.Actions {
		a := &o.Actions[i]
		compact.Write(a.Nullifier[:])
		compact.Write(a.Cmx[:])
		compact.Write(a.EphemeralKey[:])
		compact.Write(a.EncCiphertext[:compactCiphertextLen])
		memos.Write(a.EncCiphertext[compactCiphertextLen:memoCiphertextEnd])
		noncompact.Write(a.CVNet[:])
		noncompact.Write(a.Rk[:])
		noncompact.Write(a.EncCiphertext[memoCiphertextEnd:])
		noncompact.Write(a.OutCiphertext[:])
	}
	c, m, n := sum(compact), sum(memos), sum(noncompact)
	return digestOf(orchardPersonalization, c[:], m[:], n[:], []byte{o.Flags}, le64(o.ValueBalance), o.Anchor[:])
}
