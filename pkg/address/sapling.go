package address

import (
	"fmt"
	"strings"
)

// SaplingAddress is a standalone Bech32-encoded Sapling payment address.
type SaplingAddress struct {
	network  Network
	receiver SaplingReceiver
	encoded  string
}

// NewSaplingAddress wraps a Sapling receiver for a network.
func NewSaplingAddress(net Network, r SaplingReceiver) (*SaplingAddress, error) {
	s, err := encodeBech32(net.params().saplingHRP, r[:], variantBech32)
	if err != nil {
		return nil, err
	}
	return &SaplingAddress{network: net, receiver: r, encoded: s}, nil
}

// Network returns the network the address belongs to.
func (a *SaplingAddress) Network() Network { return a.network }

// Receiver returns the single shielded receiver.
func (a *SaplingAddress) Receiver() SaplingReceiver { return a.receiver }

// Receivers returns the receiver as a one-element list.
func (a *SaplingAddress) Receivers() []Receiver { return []Receiver{a.receiver} }

// String returns the encoded address.
func (a *SaplingAddress) String() string { return a.encoded }

// ParseSapling decodes a Bech32 Sapling address.
func ParseSapling(s string) (*SaplingAddress, error) {
	hrp, data, err := decodeBech32(s, variantBech32)
	if err != nil {
		return nil, err
	}
	net, ok := networkForHRP(hrp, func(p networkParams) string { return p.saplingHRP })
	if !ok {
		return nil, &EncodingError{Layer: LayerHRP, Message: fmt.Sprintf("%q is not a Sapling prefix", hrp)}
	}
	r, err := NewSaplingReceiver(data)
	if err != nil {
		return nil, &EncodingError{Layer: LayerLength, Message: "sapling address payload", Cause: err}
	}
	return &SaplingAddress{network: net, receiver: r, encoded: strings.ToLower(s)}, nil
}
