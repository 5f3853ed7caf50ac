package address

import (
	"bytes"
	"fmt"

	"github.com/suffix-labs/zcash-codec/pkg/base58check"
)

const transparentPayloadLen = 2 + TransparentReceiverLen

// TransparentAddress is a Base58Check-encoded P2PKH or P2SH address.
type TransparentAddress struct {
	network  Network
	receiver TransparentReceiver
}

// NewTransparentAddress wraps a transparent receiver for a network.
func NewTransparentAddress(net Network, r TransparentReceiver) *TransparentAddress {
	return &TransparentAddress{network: net, receiver: r}
}

// Network returns the network the address belongs to.
func (a *TransparentAddress) Network() Network { return a.network }

// Receiver returns the P2PKH or P2SH receiver.
func (a *TransparentAddress) Receiver() TransparentReceiver { return a.receiver }

// Receivers returns the receiver as a one-element list.
func (a *TransparentAddress) Receivers() []Receiver { return []Receiver{a.receiver} }

// String returns the Base58Check encoding.
func (a *TransparentAddress) String() string {
	h := a.receiver.Hash()
	return base58check.CheckEncode(transparentPrefix(a.network, a.receiver), h[:])
}

func transparentPrefix(net Network, r TransparentReceiver) []byte {
	p := net.params()
	switch r.(type) {
	case TransparentP2SHReceiver:
		return p.p2shPrefix[:]
	default:
		return p.p2pkhPrefix[:]
	}
}

// ParseTransparent decodes a Base58Check transparent address.
func ParseTransparent(s string) (*TransparentAddress, error) {
	payload, err := base58check.Decode(s)
	if err != nil {
		return nil, &EncodingError{Layer: LayerBase58, Message: "decoding transparent address", Cause: err}
	}
	if len(payload) != transparentPayloadLen {
		return nil, &EncodingError{
			Layer:   LayerLength,
			Message: fmt.Sprintf("transparent address payload has %d bytes, want %d", len(payload), transparentPayloadLen),
		}
	}

	prefix, hash := payload[:2], payload[2:]
	for n, p := range networks {
		switch {
		case bytes.Equal(prefix, p.p2pkhPrefix[:]):
			r, err := NewTransparentP2PKHReceiver(hash)
			if err != nil {
				return nil, err
			}
			return NewTransparentAddress(Network(n), r), nil
		case bytes.Equal(prefix, p.p2shPrefix[:]):
			r, err := NewTransparentP2SHReceiver(hash)
			if err != nil {
				return nil, err
			}
			return NewTransparentAddress(Network(n), r), nil
		}
	}
	return nil, &EncodingError{Layer: LayerPrefix, Message: fmt.Sprintf("unknown transparent prefix %x", prefix)}
}

// ScriptPubKey returns the standard locking script paying to a.
func (a *TransparentAddress) ScriptPubKey() []byte {
	h := a.receiver.Hash()
	switch a.receiver.(type) {
	case TransparentP2SHReceiver:
		// OP_HASH160 <20> OP_EQUAL
		script := append([]byte{0xa9, 0x14}, h[:]...)
		return append(script, 0x87)
	default:
		// OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG
		script := append([]byte{0x76, 0xa9, 0x14}, h[:]...)
		return append(script, 0x88, 0xac)
	}
}

// FromScriptPubKey recognizes a standard P2PKH or P2SH locking script.
func FromScriptPubKey(net Network, script []byte) (*TransparentAddress, bool) {
	switch {
	case len(script) == 25 && script[0] == 0x76 && script[1] == 0xa9 && script[2] == 0x14 &&
		script[23] == 0x88 && script[24] == 0xac:
		var r TransparentP2PKHReceiver
		copy(r[:], script[3:23])
		return NewTransparentAddress(net, r), true
	case len(script) == 23 && script[0] == 0xa9 && script[1] == 0x14 && script[22] == 0x87:
		var r TransparentP2SHReceiver
		copy(r[:], script[2:22])
		return NewTransparentAddress(net, r), true
	}
	return nil, false
}
