package transaction

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/zcash-codec/pkg/wire"
)

// fill writes a recognizable pattern derived from seed into dst.
func fill(dst []byte, seed byte) {
	for i := range dst {
		dst[i] = seed + byte(i)
	}
}

func b32(seed byte) (b wire.Bytes32) {
	fill(b[:], seed)
	return b
}

func b64(seed byte) (b wire.Bytes64) {
	fill(b[:], seed)
	return b
}

func sampleTxIn(seed byte, script []byte) TxIn {
	var hash TxID
	fill(hash[:], seed)
	return TxIn{
		PrevOut:   OutPoint{Hash: hash, Index: uint32(seed)},
		ScriptSig: script,
		Sequence:  0xfffffffe,
	}
}

func sampleTxOut(value int64) TxOut {
	return TxOut{Value: value, ScriptPubKey: []byte{0x76, 0xa9, 0x14, 0x01, 0x02, 0x88, 0xac}}
}

func sampleJoinSplit(seed byte, groth bool) JSDescription {
	js := JSDescription{
		VPubOld:      uint64(seed) * 1000,
		VPubNew:      7,
		Anchor:       b32(seed),
		Nullifiers:   [2]wire.Bytes32{b32(seed + 1), b32(seed + 2)},
		Commitments:  [2]wire.Bytes32{b32(seed + 3), b32(seed + 4)},
		EphemeralKey: b32(seed + 5),
		RandomSeed:   b32(seed + 6),
		Macs:         [2]wire.Bytes32{b32(seed + 7), b32(seed + 8)},
	}
	fill(js.EncCiphertexts[0][:], seed+9)
	fill(js.EncCiphertexts[1][:], seed+10)
	if groth {
		var p Groth16Proof
		fill(p[:], seed+11)
		js.Proof = p
	} else {
		var p BCTV14Proof
		fill(p[:], seed+11)
		js.Proof = p
	}
	return js
}

func sampleSpend(seed byte, version uint32) SaplingSpendDescription {
	sp := SaplingSpendDescription{
		CV:           b32(seed),
		Nullifier:    b32(seed + 1),
		Rk:           b32(seed + 2),
		SpendAuthSig: b64(seed + 3),
	}
	if version == 4 {
		sp.Anchor = b32(seed + 4)
	}
	fill(sp.Proof[:], seed+5)
	return sp
}

func sampleOutput(seed byte) SaplingOutputDescription {
	out := SaplingOutputDescription{
		CV:           b32(seed),
		Cmu:          b32(seed + 1),
		EphemeralKey: b32(seed + 2),
	}
	fill(out.EncCiphertext[:], seed+3)
	fill(out.OutCiphertext[:], seed+4)
	fill(out.Proof[:], seed+5)
	return out
}

func sampleAction(seed byte) OrchardAction {
	a := OrchardAction{
		CVNet:        b32(seed),
		Nullifier:    b32(seed + 1),
		Rk:           b32(seed + 2),
		Cmx:          b32(seed + 3),
		EphemeralKey: b32(seed + 4),
		SpendAuthSig: b64(seed + 5),
	}
	fill(a.EncCiphertext[:], seed+6)
	fill(a.OutCiphertext[:], seed+7)
	return a
}

func v4Transaction() *RawTransaction {
	return &RawTransaction{
		Header:         MakeHeader(4),
		VersionGroupID: SaplingVersionGroupID,
		LockTime:       500,
		ExpiryHeight:   1_000_000,
		Transparent: TransparentFields{
			Inputs:  []TxIn{sampleTxIn(1, []byte{0x51}), sampleTxIn(2, nil)},
			Outputs: []TxOut{sampleTxOut(50_000)},
		},
		Sprout: SproutFields{
			JoinSplits: []JSDescription{sampleJoinSplit(10, true)},
			PubKey:     b32(20),
			Sig:        b64(21),
		},
		Sapling: SaplingFields{
			ValueBalance: -12_345,
			Spends:       []SaplingSpendDescription{sampleSpend(30, 4)},
			Outputs:      []SaplingOutputDescription{sampleOutput(40), sampleOutput(50)},
			BindingSig:   b64(60),
		},
	}
}

func v5Transaction() *RawTransaction {
	return &RawTransaction{
		Header:            MakeHeader(5),
		VersionGroupID:    V5VersionGroupID,
		ConsensusBranchID: NU5BranchID,
		LockTime:          0,
		ExpiryHeight:      2_000_000,
		Transparent: TransparentFields{
			Inputs:  []TxIn{sampleTxIn(3, []byte{0x00, 0x14})},
			Outputs: []TxOut{sampleTxOut(1), sampleTxOut(2)},
		},
		Sapling: SaplingFields{
			ValueBalance: 10_000,
			Spends:       []SaplingSpendDescription{sampleSpend(70, 5), sampleSpend(80, 5)},
			Outputs:      []SaplingOutputDescription{sampleOutput(90)},
			Anchor:       b32(100),
			BindingSig:   b64(110),
		},
		Orchard: OrchardFields{
			Actions:      []OrchardAction{sampleAction(120), sampleAction(130)},
			Flags:        OrchardFlagSpendsEnabled | OrchardFlagOutputsEnabled,
			ValueBalance: -5,
			Anchor:       b32(140),
			Proof:        []byte{0xde, 0xad, 0xbe, 0xef, 0x01},
			BindingSig:   b64(150),
		},
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tx   *RawTransaction
	}{
		{"v1 empty", &RawTransaction{Header: MakeHeader(1)}},
		{"v1 transparent", &RawTransaction{
			Header:   MakeHeader(1),
			LockTime: 42,
			Transparent: TransparentFields{
				Inputs:  []TxIn{sampleTxIn(1, []byte{0x01, 0x02})},
				Outputs: []TxOut{sampleTxOut(10), {Value: 0}},
			},
		}},
		{"v2 no joinsplits", &RawTransaction{
			Header:      MakeHeader(2),
			Transparent: TransparentFields{Outputs: []TxOut{sampleTxOut(5)}},
		}},
		{"v2 bctv14", &RawTransaction{
			Header: MakeHeader(2),
			Sprout: SproutFields{
				JoinSplits: []JSDescription{sampleJoinSplit(1, false), sampleJoinSplit(2, false)},
				PubKey:     b32(3),
				Sig:        b64(4),
			},
		}},
		{"v3 overwinter", &RawTransaction{
			Header:         MakeHeader(3),
			VersionGroupID: OverwinterVersionGroupID,
			ExpiryHeight:   300,
			Transparent:    TransparentFields{Inputs: []TxIn{sampleTxIn(9, nil)}},
			Sprout: SproutFields{
				JoinSplits: []JSDescription{sampleJoinSplit(5, false)},
				PubKey:     b32(6),
				Sig:        b64(7),
			},
		}},
		{"v4 all pools", v4Transaction()},
		{"v4 outputs only", &RawTransaction{
			Header:         MakeHeader(4),
			VersionGroupID: SaplingVersionGroupID,
			Sapling: SaplingFields{
				Outputs:    []SaplingOutputDescription{sampleOutput(1)},
				BindingSig: b64(2),
			},
		}},
		{"v4 value balance without descriptions", &RawTransaction{
			Header:         MakeHeader(4),
			VersionGroupID: SaplingVersionGroupID,
			Sapling:        SaplingFields{ValueBalance: 77},
		}},
		{"v5 all pools", v5Transaction()},
		{"v5 empty", &RawTransaction{
			Header:            MakeHeader(5),
			VersionGroupID:    V5VersionGroupID,
			ConsensusBranchID: NU6BranchID,
		}},
		{"v5 sapling outputs only", &RawTransaction{
			Header:            MakeHeader(5),
			VersionGroupID:    V5VersionGroupID,
			ConsensusBranchID: NU5BranchID,
			Sapling: SaplingFields{
				ValueBalance: -1,
				Outputs:      []SaplingOutputDescription{sampleOutput(3)},
				BindingSig:   b64(4),
			},
		}},
		{"v5 orchard only, empty proof", &RawTransaction{
			Header:            MakeHeader(5),
			VersionGroupID:    V5VersionGroupID,
			ConsensusBranchID: NU5BranchID,
			Orchard: OrchardFields{
				Actions:    []OrchardAction{sampleAction(5)},
				Flags:      OrchardFlagOutputsEnabled,
				Anchor:     b32(6),
				BindingSig: b64(7),
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := tt.tx.Encode()
			require.NoError(t, err)

			decoded, err := Decode(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.tx, decoded)

			again, err := decoded.Encode()
			require.NoError(t, err)
			assert.Equal(t, raw, again)
		})
	}
}

func TestDecodeV5SaplingLayout(t *testing.T) {
	tx := &RawTransaction{
		Header:            MakeHeader(5),
		VersionGroupID:    V5VersionGroupID,
		ConsensusBranchID: NU5BranchID,
		LockTime:          1,
		ExpiryHeight:      2,
		Sapling: SaplingFields{
			ValueBalance: 3,
			Spends:       []SaplingSpendDescription{sampleSpend(10, 5), sampleSpend(20, 5)},
			Outputs:      []SaplingOutputDescription{sampleOutput(30)},
			Anchor:       b32(40),
			BindingSig:   b64(50),
		},
	}
	raw, err := tx.Encode()
	require.NoError(t, err)
	require.Len(t, raw, 1781)

	assert.Equal(t, uint32(0x80000005), binary.LittleEndian.Uint32(raw[0:]))
	assert.Equal(t, uint32(V5VersionGroupID), binary.LittleEndian.Uint32(raw[4:]))
	assert.Equal(t, uint32(NU5BranchID), binary.LittleEndian.Uint32(raw[8:]))
	assert.Equal(t, []byte{0, 0}, raw[20:22], "empty transparent bundle")
	assert.Equal(t, byte(2), raw[22], "spend count")

	// Spends carry only cv, nullifier and rk.
	spends := raw[23 : 23+2*96]
	assert.Equal(t, tx.Sapling.Spends[0].CV[:], spends[0:32])
	assert.Equal(t, tx.Sapling.Spends[1].Rk[:], spends[96+64:192])

	assert.Equal(t, byte(1), raw[215], "output count")
	assert.Equal(t, tx.Sapling.Anchor[:], raw[980:1012])
	assert.Equal(t, tx.Sapling.Spends[0].Proof[:], raw[1012:1204])
	assert.Equal(t, tx.Sapling.Spends[1].Proof[:], raw[1204:1396])
	assert.Equal(t, tx.Sapling.Spends[0].SpendAuthSig[:], raw[1396:1460])
	assert.Equal(t, tx.Sapling.Outputs[0].Proof[:], raw[1524:1716])
	assert.Equal(t, tx.Sapling.BindingSig[:], raw[1716:1780])
	assert.Equal(t, byte(0), raw[1780], "orchard action count")

	decoded, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, tx, decoded)
	assert.True(t, decoded.Sapling.Spends[0].Anchor.IsZero())
}

func TestDecodeTruncated(t *testing.T) {
	for _, tx := range []*RawTransaction{v4Transaction(), v5Transaction()} {
		raw, err := tx.Encode()
		require.NoError(t, err)
		for n := 0; n < len(raw); n++ {
			_, err := Decode(raw[:n])
			require.Error(t, err, "prefix of %d bytes", n)
			require.True(t, errors.Is(err, wire.ErrTruncated), "prefix of %d bytes: %v", n, err)
		}
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	raw, err := v5Transaction().Encode()
	require.NoError(t, err)

	_, err = Decode(append(raw, 0x00))
	require.ErrorIs(t, err, wire.ErrTrailingBytes)

	var de *wire.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, len(raw), de.Offset)
}

func TestDecodeHeaderErrors(t *testing.T) {
	header := func(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }

	tests := []struct {
		name   string
		header uint32
	}{
		{"version 0", 0},
		{"version 6", MakeHeader(6)},
		{"overwintered v2", 2 | OverwinteredFlag},
		{"v4 without flag", 4},
		{"v5 without flag", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(append(header(tt.header), make([]byte, 64)...))
			var uv *UnsupportedVersionError
			require.ErrorAs(t, err, &uv)
		})
	}
}

func TestDecodeNonCanonicalCount(t *testing.T) {
	// v1, tx_in count 0 encoded as 0xfd 0x00 0x00.
	raw := []byte{0x01, 0x00, 0x00, 0x00, 0xfd, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	_, err := Decode(raw)
	require.ErrorIs(t, err, wire.ErrNonCanonicalCompactSize)
}

func TestDescriptionVersionChecks(t *testing.T) {
	r := wire.NewReader(make([]byte, jsDescriptionBCTV14))
	_, err := decodeJSDescriptionBCTV14(r, 5)
	var uv *UnsupportedVersionError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, uint32(5), uv.Version)
	assert.Equal(t, 0, r.Offset())

	_, err = decodeJSDescriptionGroth16(r, 3)
	require.ErrorAs(t, err, &uv)

	_, err = decodeSaplingSpend(r, 3)
	require.ErrorAs(t, err, &uv)

	_, err = decodeSaplingOutput(r, 2)
	require.ErrorAs(t, err, &uv)

	_, err = decodeOrchardAction(r, 4)
	require.ErrorAs(t, err, &uv)
}

func TestEncodeLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tx *RawTransaction)
		field  string
	}{
		{"branch id before v5", func(tx *RawTransaction) { tx.ConsensusBranchID = 1 }, "consensus_branch_id"},
		{"bctv14 proof in v4", func(tx *RawTransaction) {
			tx.Sprout.JoinSplits[0] = sampleJoinSplit(1, false)
		}, "joinsplit 0"},
		{"missing sprout proof", func(tx *RawTransaction) { tx.Sprout.JoinSplits[0].Proof = nil }, "joinsplit 0"},
		{"joinsplit pubkey without joinsplits", func(tx *RawTransaction) { tx.Sprout.JoinSplits = nil }, "joinsplit_pubkey"},
		{"bundle anchor in v4", func(tx *RawTransaction) { tx.Sapling.Anchor = b32(1) }, "sapling anchor"},
		{"orchard in v4", func(tx *RawTransaction) { tx.Orchard.Actions = []OrchardAction{sampleAction(1)} }, "orchard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := v4Transaction()
			tt.mutate(tx)
			_, err := tx.Encode()
			var le *LayoutError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.field, le.Field)
			assert.Equal(t, uint32(4), le.Version)
		})
	}

	v5Tests := []struct {
		name   string
		mutate func(tx *RawTransaction)
		field  string
	}{
		{"joinsplits in v5", func(tx *RawTransaction) {
			tx.Sprout.JoinSplits = []JSDescription{sampleJoinSplit(1, true)}
		}, "joinsplits"},
		{"per-spend anchor in v5", func(tx *RawTransaction) { tx.Sapling.Spends[1].Anchor = b32(1) }, "sapling spend 1 anchor"},
		{"value balance without descriptions", func(tx *RawTransaction) {
			tx.Sapling.Spends, tx.Sapling.Outputs = nil, nil
			tx.Sapling.Anchor, tx.Sapling.BindingSig = wire.Bytes32{}, wire.Bytes64{}
		}, "sapling value_balance"},
		{"anchor without spends", func(tx *RawTransaction) { tx.Sapling.Spends = nil }, "sapling anchor"},
		{"orchard fields without actions", func(tx *RawTransaction) { tx.Orchard.Actions = nil }, "orchard"},
	}
	for _, tt := range v5Tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := v5Transaction()
			tt.mutate(tx)
			_, err := tx.Encode()
			var le *LayoutError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.field, le.Field)
		})
	}

	t.Run("version group id in v1", func(t *testing.T) {
		_, err := (&RawTransaction{Header: 1, VersionGroupID: 1}).Encode()
		var le *LayoutError
		require.ErrorAs(t, err, &le)
	})
	t.Run("sapling in v3", func(t *testing.T) {
		_, err := (&RawTransaction{Header: MakeHeader(3), Sapling: SaplingFields{ValueBalance: 1}}).Encode()
		var le *LayoutError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, "sapling", le.Field)
	})
	t.Run("bad header", func(t *testing.T) {
		_, err := (&RawTransaction{Header: 7}).Encode()
		var uv *UnsupportedVersionError
		require.ErrorAs(t, err, &uv)
	})
}

func TestVersionAccessors(t *testing.T) {
	tx := &RawTransaction{Header: MakeHeader(4)}
	assert.Equal(t, uint32(4), tx.Version())
	assert.True(t, tx.Overwintered())
	assert.Equal(t, uint32(0x80000004), tx.Header)

	tx = &RawTransaction{Header: MakeHeader(2)}
	assert.Equal(t, uint32(2), tx.Version())
	assert.False(t, tx.Overwintered())
}
