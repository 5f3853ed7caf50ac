package transaction

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TxID identifies a transaction. The bytes are in internal order; the text
// form reverses them, as Bitcoin does.
type TxID [32]byte

// String returns the byte-reversed hex form used by block explorers and RPC.
func (id TxID) String() string { return chainhash.Hash(id).String() }

// ParseTxID decodes the 64-character reverse-order hex form.
func ParseTxID(s string) (TxID, error) {
	if len(s) != 2*chainhash.HashSize {
		return TxID{}, fmt.Errorf("txid: want %d hex characters, got %d", 2*chainhash.HashSize, len(s))
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return TxID{}, fmt.Errorf("txid: %w", err)
	}
	return TxID(*h), nil
}

// MarshalText implements encoding.TextMarshaler with the String form.
func (id TxID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler via ParseTxID.
func (id *TxID) UnmarshalText(text []byte) error {
	parsed, err := ParseTxID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// TxID computes the transaction identifier. Versions 1 through 4 use the
// double SHA-256 of the encoding; v5 uses the ZIP-244 digest tree, which
// excludes proofs and signatures.
func (tx *RawTransaction) TxID() (TxID, error) {
	l, err := layoutFor(tx.Header)
	if err != nil {
		return TxID{}, err
	}
	if err := tx.checkLayout(l); err != nil {
		return TxID{}, err
	}
	if l.version >= 5 {
		return tx.zip244TxID(), nil
	}

	raw, err := tx.Encode()
	if err != nil {
		return TxID{}, err
	}
	return TxID(chainhash.DoubleHashH(raw)), nil
}
