// Package address implements the text encodings of Zcash payment addresses:
// Base58Check transparent addresses, Bech32 Sapling addresses and ZIP-316
// unified addresses and viewing keys, together with the raw receivers they
// carry.
//
// See: https://zips.z.cash/zip-0316
package address

import "fmt"

// Address is a decoded payment address.
type Address interface {
	Network() Network
	// String returns the canonical text encoding.
	String() string
	// Receivers returns the carried receivers, most preferred first.
	Receivers() []Receiver
}

// Parse decodes any supported address string. Unified and Sapling
// encodings are recognized by their human-readable part; anything else is
// treated as a Base58Check transparent address.
func Parse(s string) (Address, error) {
	if hrp, ok := bech32HRP(s); ok {
		if _, ok := networkForHRP(hrp, func(p networkParams) string { return p.unifiedHRP }); ok {
			return ParseUnified(s)
		}
		if _, ok := networkForHRP(hrp, func(p networkParams) string { return p.saplingHRP }); ok {
			return ParseSapling(s)
		}
		if _, _, ok := viewingKeyHRP(hrp); ok {
			return nil, &EncodingError{Layer: LayerHRP, Message: fmt.Sprintf("%q is a viewing key, not an address", hrp)}
		}
	}
	return ParseTransparent(s)
}

// HasShieldedReceiver reports whether addr can receive shielded funds.
func HasShieldedReceiver(addr Address) bool {
	for _, r := range addr.Receivers() {
		if r.Typecode().IsShielded() {
			return true
		}
	}
	return false
}
