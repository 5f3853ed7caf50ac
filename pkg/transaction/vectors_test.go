package transaction

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/zcash-codec/internal/testvectors"
)

// checkVectors decodes each vector's tx, re-encodes it byte for byte and
// compares the computed txid, which the files store in internal byte order.
func checkVectors(t *testing.T, name string, versions ...uint32) {
	vectors := testvectors.Load(t, name)
	require.NotEmpty(t, vectors)

	for i, v := range vectors {
		raw := v.Bytes(t, "tx")

		tx, err := Decode(raw)
		require.NoError(t, err, "vector %d", i)
		assert.Contains(t, versions, tx.Version(), "vector %d", i)

		encoded, err := tx.Encode()
		require.NoError(t, err, "vector %d", i)
		assert.Equal(t, hex.EncodeToString(raw), hex.EncodeToString(encoded), "vector %d: re-encoding", i)

		id, err := tx.TxID()
		require.NoError(t, err, "vector %d", i)
		assert.Equal(t, hex.EncodeToString(v.Bytes(t, "txid")), hex.EncodeToString(id[:]), "vector %d: txid", i)
	}
}

func TestZIP244Vectors(t *testing.T) {
	checkVectors(t, "zip_0244.json", 5)
}

func TestLegacyTxIDVectors(t *testing.T) {
	checkVectors(t, "legacy_txid.json", 1, 2, 3, 4)
}
