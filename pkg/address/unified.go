package address

import (
	"fmt"
	"sort"
	"strings"
)

// UnifiedAddress is a ZIP-316 unified address bundling at most one receiver
// per pool.
type UnifiedAddress struct {
	network   Network
	receivers []Receiver // descending typecode: Orchard, Sapling, transparent
	encoded   string
}

// NewUnifiedAddress validates and encodes a set of receivers. The set must
// contain at least one shielded receiver, at most one transparent receiver
// and no repeated typecode.
func NewUnifiedAddress(net Network, receivers ...Receiver) (*UnifiedAddress, error) {
	if !net.Valid() {
		return nil, fmt.Errorf("unified address: invalid network %v", net)
	}
	if err := validateReceivers(receivers, false); err != nil {
		return nil, err
	}

	items := make([]item, len(receivers))
	for i, r := range receivers {
		items[i] = item{typecode: r.Typecode(), data: r.Bytes()}
	}
	s, err := encodeContainer(net.params().unifiedHRP, items)
	if err != nil {
		return nil, err
	}
	return &UnifiedAddress{network: net, receivers: byPreference(receivers), encoded: s}, nil
}

// Network returns the network the address belongs to.
func (ua *UnifiedAddress) Network() Network { return ua.network }

// String returns the Bech32m encoding.
func (ua *UnifiedAddress) String() string { return ua.encoded }

// Receivers returns the recognized receivers, most preferred first.
func (ua *UnifiedAddress) Receivers() []Receiver {
	return append([]Receiver(nil), ua.receivers...)
}

// Orchard returns the Orchard receiver, if present.
func (ua *UnifiedAddress) Orchard() (OrchardReceiver, bool) {
	for _, r := range ua.receivers {
		if o, ok := r.(OrchardReceiver); ok {
			return o, true
		}
	}
	return OrchardReceiver{}, false
}

// Sapling returns the Sapling receiver, if present.
func (ua *UnifiedAddress) Sapling() (SaplingReceiver, bool) {
	for _, r := range ua.receivers {
		if s, ok := r.(SaplingReceiver); ok {
			return s, true
		}
	}
	return SaplingReceiver{}, false
}

// Transparent returns the P2PKH or P2SH receiver, if present.
func (ua *UnifiedAddress) Transparent() (TransparentReceiver, bool) {
	for _, r := range ua.receivers {
		if t, ok := r.(TransparentReceiver); ok {
			return t, true
		}
	}
	return nil, false
}

// ParseUnified decodes a unified address. Items with unknown typecodes are
// skipped. An address whose only receiver is Orchard is returned as an
// *OrchardAddress; anything else is a *UnifiedAddress.
func ParseUnified(s string) (Address, error) {
	hrp, items, err := decodeContainer(s)
	if err != nil {
		return nil, err
	}
	net, ok := networkForHRP(hrp, func(p networkParams) string { return p.unifiedHRP })
	if !ok {
		return nil, &EncodingError{Layer: LayerHRP, Message: fmt.Sprintf("%q is not a unified address prefix", hrp)}
	}

	var receivers []Receiver
	unknown := 0
	for _, it := range items {
		r, err := decodeReceiver(it.typecode, it.data)
		if err != nil {
			return nil, err
		}
		if r == nil {
			unknown++
			continue
		}
		receivers = append(receivers, r)
	}
	if len(receivers) == 0 {
		return nil, &CompositionError{Message: "no recognized receivers"}
	}
	if err := validateReceivers(receivers, unknown > 0); err != nil {
		return nil, err
	}

	encoded := strings.ToLower(s)
	if len(receivers) == 1 {
		if o, ok := receivers[0].(OrchardReceiver); ok {
			return &OrchardAddress{network: net, receiver: o, encoded: encoded}, nil
		}
	}
	return &UnifiedAddress{network: net, receivers: byPreference(receivers), encoded: encoded}, nil
}

// validateReceivers enforces the composition rules. When unknown items were
// present they may be the shielded receivers, so the shielded requirement
// is relaxed.
func validateReceivers(receivers []Receiver, hasUnknown bool) error {
	if len(receivers) == 0 {
		return &CompositionError{Message: "no receivers"}
	}

	seen := make(map[Typecode]bool, len(receivers))
	var transparent, shielded int
	for _, r := range receivers {
		if r == nil {
			return &CompositionError{Message: "nil receiver"}
		}
		tc := r.Typecode()
		if seen[tc] {
			return &CompositionError{Message: fmt.Sprintf("duplicate %s receiver", tc)}
		}
		seen[tc] = true

		switch r.(type) {
		case TransparentP2PKHReceiver, TransparentP2SHReceiver:
			transparent++
		case SaplingReceiver, OrchardReceiver:
			shielded++
		default:
			return &CompositionError{Message: fmt.Sprintf("unsupported receiver type %T", r)}
		}
	}

	if transparent > 1 {
		return &CompositionError{Message: "more than one transparent receiver"}
	}
	if shielded == 0 && !hasUnknown {
		return &CompositionError{Message: "no shielded receiver"}
	}
	return nil
}

func byPreference(receivers []Receiver) []Receiver {
	out := append([]Receiver(nil), receivers...)
	sort.Slice(out, func(i, j int) bool { return out[i].Typecode() > out[j].Typecode() })
	return out
}
