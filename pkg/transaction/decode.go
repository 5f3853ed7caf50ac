package transaction

import (
	"fmt"

	"github.com/suffix-labs/zcash-codec/pkg/wire"
)

// Decode parses a complete transaction. The input must be consumed exactly;
// trailing bytes are an error. Variable-length fields are copied, so the
// result does not alias data.
func Decode(data []byte) (*RawTransaction, error) {
	r := wire.NewReader(data)
	tx := &RawTransaction{}

	var err error
	if tx.Header, err = r.ReadUint32LE(); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	l, err := layoutFor(tx.Header)
	if err != nil {
		return nil, err
	}

	if l.versionGroupID {
		if tx.VersionGroupID, err = r.ReadUint32LE(); err != nil {
			return nil, fmt.Errorf("reading version_group_id: %w", err)
		}
	}
	if l.earlyHeader {
		if tx.ConsensusBranchID, err = r.ReadUint32LE(); err != nil {
			return nil, fmt.Errorf("reading consensus_branch_id: %w", err)
		}
		if err := decodeLockTimeAndExpiry(r, l, tx); err != nil {
			return nil, err
		}
	}

	if err := decodeTransparent(r, l.version, &tx.Transparent); err != nil {
		return nil, fmt.Errorf("parsing transparent bundle: %w", err)
	}

	if !l.earlyHeader {
		if err := decodeLockTimeAndExpiry(r, l, tx); err != nil {
			return nil, err
		}
	}

	if l.sapling {
		if err := decodeSaplingDescriptions(r, l, &tx.Sapling); err != nil {
			return nil, fmt.Errorf("parsing sapling bundle: %w", err)
		}
	}

	if l.sprout {
		if err := decodeSprout(r, l.version, &tx.Sprout); err != nil {
			return nil, fmt.Errorf("parsing sprout bundle: %w", err)
		}
	}

	if l.sapling && len(tx.Sapling.Spends)+len(tx.Sapling.Outputs) > 0 {
		if err := r.ReadInto(tx.Sapling.BindingSig[:]); err != nil {
			return nil, fmt.Errorf("reading sapling binding_sig: %w", err)
		}
	}

	if l.orchard {
		if err := decodeOrchard(r, l.version, &tx.Orchard); err != nil {
			return nil, fmt.Errorf("parsing orchard bundle: %w", err)
		}
	}

	if err := r.ExpectEOF(); err != nil {
		return nil, err
	}
	return tx, nil
}

func decodeLockTimeAndExpiry(r *wire.Reader, l layout, tx *RawTransaction) error {
	var err error
	if tx.LockTime, err = r.ReadUint32LE(); err != nil {
		return fmt.Errorf("reading lock_time: %w", err)
	}
	if l.expiryHeight {
		if tx.ExpiryHeight, err = r.ReadUint32LE(); err != nil {
			return fmt.Errorf("reading expiry_height: %w", err)
		}
	}
	return nil
}

func decodeTransparent(r *wire.Reader, version uint32, t *TransparentFields) error {
	n, err := r.ReadCountOf(minTxInLen)
	if err != nil {
		return fmt.Errorf("reading tx_in count: %w", err)
	}
	if n > 0 {
		t.Inputs = make([]TxIn, n)
	}
	for i := range t.Inputs {
		if t.Inputs[i], err = decodeTxIn(r, version); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
	}

	n, err = r.ReadCountOf(minTxOutLen)
	if err != nil {
		return fmt.Errorf("reading tx_out count: %w", err)
	}
	if n > 0 {
		t.Outputs = make([]TxOut, n)
	}
	for i := range t.Outputs {
		if t.Outputs[i], err = decodeTxOut(r, version); err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
	}
	return nil
}

func decodeTxIn(r *wire.Reader, _ uint32) (TxIn, error) {
	var in TxIn
	if err := r.ReadInto(in.PrevOut.Hash[:]); err != nil {
		return in, fmt.Errorf("reading prevout hash: %w", err)
	}
	var err error
	if in.PrevOut.Index, err = r.ReadUint32LE(); err != nil {
		return in, fmt.Errorf("reading prevout index: %w", err)
	}
	if in.ScriptSig, err = readVarBytes(r); err != nil {
		return in, fmt.Errorf("reading script_sig: %w", err)
	}
	if in.Sequence, err = r.ReadUint32LE(); err != nil {
		return in, fmt.Errorf("reading sequence: %w", err)
	}
	return in, nil
}

func decodeTxOut(r *wire.Reader, _ uint32) (TxOut, error) {
	var out TxOut
	var err error
	if out.Value, err = r.ReadInt64LE(); err != nil {
		return out, fmt.Errorf("reading value: %w", err)
	}
	if out.ScriptPubKey, err = readVarBytes(r); err != nil {
		return out, fmt.Errorf("reading script_pubkey: %w", err)
	}
	return out, nil
}

// readVarBytes reads a CompactSize-prefixed byte string as an owned copy.
// Empty strings decode as nil.
func readVarBytes(r *wire.Reader) ([]byte, error) {
	n, err := r.ReadCountOf(1)
	if err != nil {
		return nil, err
	}
	b, err := r.Read(n)
	if err != nil || n == 0 {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// decodeSaplingDescriptions reads the Sapling bundle up to, but not
// including, the binding signature. In v4 the JoinSplits sit between the
// two.
func decodeSaplingDescriptions(r *wire.Reader, l layout, s *SaplingFields) error {
	var err error
	if !l.saplingBatched {
		if s.ValueBalance, err = r.ReadInt64LE(); err != nil {
			return fmt.Errorf("reading value_balance: %w", err)
		}
	}

	spendLen, outputLen := saplingSpendV4Len, saplingOutputV4Len
	if l.saplingBatched {
		spendLen, outputLen = saplingSpendV5Len, saplingOutputV5Len
	}

	n, err := r.ReadCountOf(spendLen)
	if err != nil {
		return fmt.Errorf("reading spend count: %w", err)
	}
	if n > 0 {
		s.Spends = make([]SaplingSpendDescription, n)
	}
	for i := range s.Spends {
		if s.Spends[i], err = decodeSaplingSpend(r, l.version); err != nil {
			return fmt.Errorf("spend %d: %w", i, err)
		}
	}

	n, err = r.ReadCountOf(outputLen)
	if err != nil {
		return fmt.Errorf("reading output count: %w", err)
	}
	if n > 0 {
		s.Outputs = make([]SaplingOutputDescription, n)
	}
	for i := range s.Outputs {
		if s.Outputs[i], err = decodeSaplingOutput(r, l.version); err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
	}

	if !l.saplingBatched {
		return nil
	}

	if len(s.Spends)+len(s.Outputs) > 0 {
		if s.ValueBalance, err = r.ReadInt64LE(); err != nil {
			return fmt.Errorf("reading value_balance: %w", err)
		}
	}
	if len(s.Spends) > 0 {
		if err := r.ReadInto(s.Anchor[:]); err != nil {
			return fmt.Errorf("reading anchor: %w", err)
		}
	}

	// Batched proofs and signatures, in description order.
	proofs, err := r.Read(192 * len(s.Spends))
	if err != nil {
		return fmt.Errorf("reading spend proofs: %w", err)
	}
	sigs, err := r.Read(64 * len(s.Spends))
	if err != nil {
		return fmt.Errorf("reading spend auth sigs: %w", err)
	}
	for i := range s.Spends {
		copy(s.Spends[i].Proof[:], proofs[192*i:])
		copy(s.Spends[i].SpendAuthSig[:], sigs[64*i:])
	}

	outProofs, err := r.Read(192 * len(s.Outputs))
	if err != nil {
		return fmt.Errorf("reading output proofs: %w", err)
	}
	for i := range s.Outputs {
		copy(s.Outputs[i].Proof[:], outProofs[192*i:])
	}
	return nil
}

// decodeSaplingSpend reads one spend description. v4 descriptions carry
// their anchor, proof and signature inline; v5 descriptions carry only
// cv, nullifier and rk.
func decodeSaplingSpend(r *wire.Reader, version uint32) (SaplingSpendDescription, error) {
	var sp SaplingSpendDescription
	if version < 4 {
		return sp, &UnsupportedVersionError{Version: version, Field: "sapling spend"}
	}
	fields := []field{
		{"cv", sp.CV[:]},
		{"anchor", sp.Anchor[:]},
		{"nullifier", sp.Nullifier[:]},
		{"rk", sp.Rk[:]},
		{"zkproof", sp.Proof[:]},
		{"spend_auth_sig", sp.SpendAuthSig[:]},
	}
	if version >= 5 {
		fields = []field{
			{"cv", sp.CV[:]},
			{"nullifier", sp.Nullifier[:]},
			{"rk", sp.Rk[:]},
		}
	}
	if err := readFields(r, fields); err != nil {
		return sp, err
	}
	return sp, nil
}

func decodeSaplingOutput(r *wire.Reader, version uint32) (SaplingOutputDescription, error) {
	var out SaplingOutputDescription
	if version < 4 {
		return out, &UnsupportedVersionError{Version: version, Field: "sapling output"}
	}
	fields := []field{
		{"cv", out.CV[:]},
		{"cmu", out.Cmu[:]},
		{"ephemeral_key", out.EphemeralKey[:]},
		{"enc_ciphertext", out.EncCiphertext[:]},
		{"out_ciphertext", out.OutCiphertext[:]},
	}
	if version == 4 {
		fields = append(fields, field{"zkproof", out.Proof[:]})
	}
	if err := readFields(r, fields); err != nil {
		return out, err
	}
	return out, nil
}

func decodeSprout(r *wire.Reader, version uint32, s *SproutFields) error {
	stride := jsDescriptionBCTV14
	if version == 4 {
		stride = jsDescriptionGroth
	}
	n, err := r.ReadCountOf(stride)
	if err != nil {
		return fmt.Errorf("reading joinsplit count: %w", err)
	}
	if n == 0 {
		return nil
	}

	s.JoinSplits = make([]JSDescription, n)
	for i := range s.JoinSplits {
		var js JSDescription
		if version == 4 {
			js, err = decodeJSDescriptionGroth16(r, version)
		} else {
			js, err = decodeJSDescriptionBCTV14(r, version)
		}
		if err != nil {
			return fmt.Errorf("joinsplit %d: %w", i, err)
		}
		s.JoinSplits[i] = js
	}

	if err := r.ReadInto(s.PubKey[:]); err != nil {
		return fmt.Errorf("reading joinsplit_pubkey: %w", err)
	}
	if err := r.ReadInto(s.Sig[:]); err != nil {
		return fmt.Errorf("reading joinsplit_sig: %w", err)
	}
	return nil
}

// decodeJSDescriptionBCTV14 reads a v2/v3 JoinSplit.
func decodeJSDescriptionBCTV14(r *wire.Reader, version uint32) (JSDescription, error) {
	if version < 2 || version > 3 {
		return JSDescription{}, &UnsupportedVersionError{Version: version, Field: "BCTV14 joinsplit"}
	}
	var proof BCTV14Proof
	js, err := decodeJSDescription(r, proof[:])
	if err != nil {
		return js, err
	}
	js.Proof = proof
	return js, nil
}

// decodeJSDescriptionGroth16 reads a v4 JoinSplit.
func decodeJSDescriptionGroth16(r *wire.Reader, version uint32) (JSDescription, error) {
	if version != 4 {
		return JSDescription{}, &UnsupportedVersionError{Version: version, Field: "Groth16 joinsplit"}
	}
	var proof Groth16Proof
	js, err := decodeJSDescription(r, proof[:])
	if err != nil {
		return js, err
	}
	js.Proof = proof
	return js, nil
}

// decodeJSDescription reads the common JoinSplit layout, filling proofBuf
// with the proof bytes.
func decodeJSDescription(r *wire.Reader, proofBuf []byte) (JSDescription, error) {
	var js JSDescription
	var err error
	if js.VPubOld, err = r.ReadUint64LE(); err != nil {
		return js, fmt.Errorf("reading vpub_old: %w", err)
	}
	if js.VPubNew, err = r.ReadUint64LE(); err != nil {
		return js, fmt.Errorf("reading vpub_new: %w", err)
	}

	fixed := []field{
		{"anchor", js.Anchor[:]},
		{"nullifiers", js.Nullifiers[0][:]},
		{"nullifiers", js.Nullifiers[1][:]},
		{"commitments", js.Commitments[0][:]},
		{"commitments", js.Commitments[1][:]},
		{"ephemeral_key", js.EphemeralKey[:]},
		{"random_seed", js.RandomSeed[:]},
		{"vmacs", js.Macs[0][:]},
		{"vmacs", js.Macs[1][:]},
		{"zkproof", proofBuf},
		{"enc_ciphertexts", js.EncCiphertexts[0][:]},
		{"enc_ciphertexts", js.EncCiphertexts[1][:]},
	}
	if err := readFields(r, fixed); err != nil {
		return js, err
	}
	return js, nil
}

func decodeOrchard(r *wire.Reader, version uint32, o *OrchardFields) error {
	n, err := r.ReadCountOf(orchardActionLen)
	if err != nil {
		return fmt.Errorf("reading action count: %w", err)
	}
	if n == 0 {
		return nil
	}

	o.Actions = make([]OrchardAction, n)
	for i := range o.Actions {
		if o.Actions[i], err = decodeOrchardAction(r, version); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}

	if o.Flags, err = r.ReadByte(); err != nil {
		return fmt.Errorf("reading flags: %w", err)
	}
	if o.ValueBalance, err = r.ReadInt64LE(); err != nil {
		return fmt.Errorf("reading value_balance: %w", err)
	}
	if err := r.ReadInto(o.Anchor[:]); err != nil {
		return fmt.Errorf("reading anchor: %w", err)
	}
	if o.Proof, err = readVarBytes(r); err != nil {
		return fmt.Errorf("reading proof: %w", err)
	}

	sigs, err := r.Read(64 * n)
	if err != nil {
		return fmt.Errorf("reading spend auth sigs: %w", err)
	}
	for i := range o.Actions {
		copy(o.Actions[i].SpendAuthSig[:], sigs[64*i:])
	}

	if err := r.ReadInto(o.BindingSig[:]); err != nil {
		return fmt.Errorf("reading binding_sig: %w", err)
	}
	return nil
}

// decodeOrchardAction reads an action without its signature, which v5
// serializes in a batch after the proof.
func decodeOrchardAction(r *wire.Reader, version uint32) (OrchardAction, error) {
	var a OrchardAction
	if version < 5 {
		return a, &UnsupportedVersionError{Version: version, Field: "orchard action"}
	}
	fields := []field{
		{"cv_net", a.CVNet[:]},
		{"nullifier", a.Nullifier[:]},
		{"rk", a.Rk[:]},
		{"cmx", a.Cmx[:]},
		{"ephemeral_key", a.EphemeralKey[:]},
		{"enc_ciphertext", a.EncCiphertext[:]},
		{"out_ciphertext", a.OutCiphertext[:]},
	}
	if err := readFields(r, fields); err != nil {
		return a, err
	}
	return a, nil
}

// field names a fixed-length destination for readFields.
type field struct {
	name string
	dst  []byte
}

func readFields(r *wire.Reader, fields []field) error {
	for _, f := range fields {
		if err := r.ReadInto(f.dst); err != nil {
			return fmt.Errorf("reading %s: %w", f.name, err)
		}
	}
	return nil
}
