package address

// OrchardAddress is a standalone Orchard receiver. Orchard has no address
// format of its own; the text form is a unified address holding only this
// receiver.
type OrchardAddress struct {
	network  Network
	receiver OrchardReceiver
	encoded  string
}

// NewOrchardAddress wraps an Orchard receiver for a network.
func NewOrchardAddress(net Network, r OrchardReceiver) (*OrchardAddress, error) {
	ua, err := NewUnifiedAddress(net, r)
	if err != nil {
		return nil, err
	}
	return &OrchardAddress{network: net, receiver: r, encoded: ua.String()}, nil
}

// Network returns the network the address belongs to.
func (a *OrchardAddress) Network() Network { return a.network }

// Receiver returns the single shielded receiver.
func (a *OrchardAddress) Receiver() OrchardReceiver { return a.receiver }

// Receivers returns the receiver as a one-element list.
func (a *OrchardAddress) Receivers() []Receiver { return []Receiver{a.receiver} }

// String returns the encoded address.
func (a *OrchardAddress) String() string { return a.encoded }
