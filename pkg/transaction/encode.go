package transaction

import (
	"fmt"

	"github.com/suffix-labs/zcash-codec/pkg/wire"
)

// Encode serializes tx in the layout of its version. It fails with a
// *LayoutError when a field holds data the version cannot carry, so that
// Decode(Encode(tx)) reproduces tx whenever Encode succeeds.
func (tx *RawTransaction) Encode() ([]byte, error) {
	l, err := layoutFor(tx.Header)
	if err != nil {
		return nil, err
	}
	if err := tx.checkLayout(l); err != nil {
		return nil, err
	}

	w := wire.NewWriter(tx.sizeHint())
	w.WriteUint32LE(tx.Header)
	if l.versionGroupID {
		w.WriteUint32LE(tx.VersionGroupID)
	}
	if l.earlyHeader {
		w.WriteUint32LE(tx.ConsensusBranchID)
		tx.encodeLockTimeAndExpiry(w, l)
	}

	encodeTransparent(w, &tx.Transparent)

	if !l.earlyHeader {
		tx.encodeLockTimeAndExpiry(w, l)
	}

	if l.sapling {
		encodeSaplingDescriptions(w, l, &tx.Sapling)
	}
	if l.sprout {
		encodeSprout(w, &tx.Sprout)
	}
	if l.sapling && len(tx.Sapling.Spends)+len(tx.Sapling.Outputs) > 0 {
		w.Write(tx.Sapling.BindingSig[:])
	}
	if l.orchard {
		encodeOrchard(w, &tx.Orchard)
	}
	return w.Bytes(), nil
}

func (tx *RawTransaction) encodeLockTimeAndExpiry(w *wire.Writer, l layout) {
	w.WriteUint32LE(tx.LockTime)
	if l.expiryHeight {
		w.WriteUint32LE(tx.ExpiryHeight)
	}
}

func (tx *RawTransaction) sizeHint() int {
	n := 64
	for _, in := range tx.Transparent.Inputs {
		n += minTxInLen + len(in.ScriptSig) + 8
	}
	for _, out := range tx.Transparent.Outputs {
		n += minTxOutLen + len(out.ScriptPubKey) + 8
	}
	n += len(tx.Sprout.JoinSplits)*jsDescriptionBCTV14 + 96
	n += len(tx.Sapling.Spends)*saplingSpendV4Len + len(tx.Sapling.Outputs)*saplingOutputV4Len + 112
	n += len(tx.Orchard.Actions)*(orchardActionLen+64) + len(tx.Orchard.Proof) + 120
	return n
}

// checkLayout rejects values that the wire layout of l would drop.
func (tx *RawTransaction) checkLayout(l layout) error {
	fail := func(field, msg string) error {
		return &LayoutError{Version: l.version, Field: field, Message: msg}
	}

	if !l.versionGroupID && tx.VersionGroupID != 0 {
		return fail("version_group_id", "not carried before v3")
	}
	if !l.earlyHeader && tx.ConsensusBranchID != 0 {
		return fail("consensus_branch_id", "not carried before v5")
	}
	if !l.expiryHeight && tx.ExpiryHeight != 0 {
		return fail("expiry_height", "not carried before v3")
	}

	sp := &tx.Sprout
	switch {
	case !l.sprout && (len(sp.JoinSplits) > 0 || !sp.PubKey.IsZero() || !sp.Sig.IsZero()):
		return fail("joinsplits", fmt.Sprintf("not carried by v%d", l.version))
	case len(sp.JoinSplits) == 0 && (!sp.PubKey.IsZero() || !sp.Sig.IsZero()):
		return fail("joinsplit_pubkey", "present only with joinsplits")
	}
	for i, js := range sp.JoinSplits {
		switch js.Proof.(type) {
		case Groth16Proof:
			if !l.sproutGroth16 {
				return fail(fmt.Sprintf("joinsplit %d", i), "Groth16 proofs require v4")
			}
		case BCTV14Proof:
			if l.sproutGroth16 {
				return fail(fmt.Sprintf("joinsplit %d", i), "BCTV14 proofs are not valid in v4")
			}
		default:
			return fail(fmt.Sprintf("joinsplit %d", i), "missing proof")
		}
	}

	sa := &tx.Sapling
	saplingItems := len(sa.Spends) + len(sa.Outputs)
	if !l.sapling {
		if saplingItems > 0 || sa.ValueBalance != 0 || !sa.Anchor.IsZero() || !sa.BindingSig.IsZero() {
			return fail("sapling", fmt.Sprintf("not carried by v%d", l.version))
		}
	} else {
		if saplingItems == 0 && !sa.BindingSig.IsZero() {
			return fail("sapling binding_sig", "present only with spends or outputs")
		}
		if l.saplingBatched {
			if saplingItems == 0 && sa.ValueBalance != 0 {
				return fail("sapling value_balance", "present only with spends or outputs")
			}
			if len(sa.Spends) == 0 && !sa.Anchor.IsZero() {
				return fail("sapling anchor", "present only with spends")
			}
			for i, s := range sa.Spends {
				if !s.Anchor.IsZero() {
					return fail(fmt.Sprintf("sapling spend %d anchor", i), "v5 spends share the bundle anchor")
				}
			}
		} else if !sa.Anchor.IsZero() {
			return fail("sapling anchor", "v4 anchors are carried per spend")
		}
	}

	o := &tx.Orchard
	hasOrchardFields := o.Flags != 0 || o.ValueBalance != 0 || !o.Anchor.IsZero() || len(o.Proof) > 0 || !o.BindingSig.IsZero()
	if !l.orchard && (len(o.Actions) > 0 || hasOrchardFields) {
		return fail("orchard", fmt.Sprintf("not carried by v%d", l.version))
	}
	if len(o.Actions) == 0 && hasOrchardFields {
		return fail("orchard", "bundle fields present only with actions")
	}
	return nil
}

func encodeTransparent(w *wire.Writer, t *TransparentFields) {
	w.WriteCompactSize(uint64(len(t.Inputs)))
	for i := range t.Inputs {
		encodeTxIn(w, &t.Inputs[i])
	}
	w.WriteCompactSize(uint64(len(t.Outputs)))
	for i := range t.Outputs {
		encodeTxOut(w, &t.Outputs[i])
	}
}

func encodeTxIn(w *wire.Writer, in *TxIn) {
	w.Write(in.PrevOut.Hash[:])
	w.WriteUint32LE(in.PrevOut.Index)
	writeVarBytes(w, in.ScriptSig)
	w.WriteUint32LE(in.Sequence)
}

func encodeTxOut(w *wire.Writer, out *TxOut) {
	w.WriteInt64LE(out.Value)
	writeVarBytes(w, out.ScriptPubKey)
}

func writeVarBytes(w *wire.Writer, b []byte) {
	w.WriteCompactSize(uint64(len(b)))
	w.Write(b)
}

func encodeSaplingDescriptions(w *wire.Writer, l layout, s *SaplingFields) {
	if !l.saplingBatched {
		w.WriteInt64LE(s.ValueBalance)
	}

	w.WriteCompactSize(uint64(len(s.Spends)))
	for i := range s.Spends {
		sp := &s.Spends[i]
		w.Write(sp.CV[:])
		if !l.saplingBatched {
			w.Write(sp.Anchor[:])
		}
		w.Write(sp.Nullifier[:])
		w.Write(sp.Rk[:])
		if !l.saplingBatched {
			w.Write(sp.Proof[:])
			w.Write(sp.SpendAuthSig[:])
		}
	}

	w.WriteCompactSize(uint64(len(s.Outputs)))
	for i := range s.Outputs {
		out := &s.Outputs[i]
		w.Write(out.CV[:])
		w.Write(out.Cmu[:])
		w.Write(out.EphemeralKey[:])
		w.Write(out.EncCiphertext[:])
		w.Write(out.OutCiphertext[:])
		if !l.saplingBatched {
			w.Write(out.Proof[:])
		}
	}

	if !l.saplingBatched {
		return
	}
	if len(s.Spends)+len(s.Outputs) > 0 {
		w.WriteInt64LE(s.ValueBalance)
	}
	if len(s.Spends) > 0 {
		w.Write(s.Anchor[:])
	}
	for i := range s.Spends {
		w.Write(s.Spends[i].Proof[:])
	}
	for i := range s.Spends {
		w.Write(s.Spends[i].SpendAuthSig[:])
	}
	for i := range s.Outputs {
		w.Write(s.Outputs[i].Proof[:])
	}
}

func encodeSprout(w *wire.Writer, s *SproutFields) {
	w.WriteCompactSize(uint64(len(s.JoinSplits)))
	if len(s.JoinSplits) == 0 {
		return
	}
	for i := range s.JoinSplits {
		js := &s.JoinSplits[i]
		w.WriteUint64LE(js.VPubOld)
		w.WriteUint64LE(js.VPubNew)
		w.Write(js.Anchor[:])
		w.Write(js.Nullifiers[0][:])
		w.Write(js.Nullifiers[1][:])
		w.Write(js.Commitments[0][:])
		w.Write(js.Commitments[1][:])
		w.Write(js.EphemeralKey[:])
		w.Write(js.RandomSeed[:])
		w.Write(js.Macs[0][:])
		w.Write(js.Macs[1][:])
		w.Write(js.Proof.Bytes())
		w.Write(js.EncCiphertexts[0][:])
		w.Write(js.EncCiphertexts[1][:])
	}
	w.Write(s.PubKey[:])
	w.Write(s.Sig[:])
}

func encodeOrchard(w *wire.Writer, o *OrchardFields) {
	w.WriteCompactSize(uint64(len(o.Actions)))
	if len(o.Actions) == 0 {
		return
	}
	for i := range o.Actions {
		a := &o.Actions[i]
		w.Write(a.CVNet[:])
		w.Write(a.Nullifier[:])
		w.Write(a.Rk[:])
		w.Write(a.Cmx[:])
		w.Write(a.EphemeralKey[:])
		w.Write(a.EncCiphertext[:])
		w.Write(a.OutCiphertext[:])
	}
	w.WriteUint8(o.Flags)
	w.WriteInt64LE(o.ValueBalance)
	w.Write(o.Anchor[:])
	writeVarBytes(w, o.Proof)
	for i := range o.Actions {
		w.Write(o.Actions[i].SpendAuthSig[:])
	}
	w.Write(o.BindingSig[:])
}
