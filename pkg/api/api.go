// Package api provides the high-level entry points of the zcash-codec
// library: transaction decoding and identification, address parsing and
// unified address construction, and ZIP 321 payment requests.
//
// The functions here accept and return text forms (hex, address strings,
// URIs) and log a one-line summary of each operation at debug level.
package api

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/suffix-labs/zcash-codec/pkg/address"
	"github.com/suffix-labs/zcash-codec/pkg/transaction"
	"github.com/suffix-labs/zcash-codec/pkg/zip321"
)

var log logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the logger used by this package.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	log = l
}

// ============================================================================
// Transactions
// ============================================================================

// TransactionSummary describes a decoded transaction.
type TransactionSummary struct {
	TxID              string `json:"txid"`
	Size              int    `json:"size"`
	Version           uint32 `json:"version"`
	Overwintered      bool   `json:"overwintered"`
	VersionGroupID    uint32 `json:"version_group_id,omitempty"`
	ConsensusBranchID uint32 `json:"consensus_branch_id,omitempty"`
	LockTime          uint32 `json:"lock_time"`
	ExpiryHeight      uint32 `json:"expiry_height,omitempty"`

	TransparentInputs  int `json:"transparent_inputs"`
	TransparentOutputs int `json:"transparent_outputs"`
	JoinSplits         int `json:"joinsplits"`
	SaplingSpends      int `json:"sapling_spends"`
	SaplingOutputs     int `json:"sapling_outputs"`
	OrchardActions     int `json:"orchard_actions"`

	SaplingValueBalance int64 `json:"sapling_value_balance"`
	OrchardValueBalance int64 `json:"orchard_value_balance"`
}

// DecodeTransactionHex decodes a hex-encoded transaction.
func DecodeTransactionHex(s string) (*transaction.RawTransaction, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid transaction hex: %w", err)
	}
	tx, err := transaction.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	log.WithFields(logrus.Fields{
		"version": tx.Version(),
		"size":    len(raw),
	}).Debug("api: transaction decoded")
	return tx, nil
}

// EncodeTransaction serializes tx.
func EncodeTransaction(tx *transaction.RawTransaction) ([]byte, error) {
	raw, err := tx.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}
	log.WithFields(logrus.Fields{
		"version": tx.Version(),
		"size":    len(raw),
	}).Debug("api: transaction encoded")
	return raw, nil
}

// TransactionID computes the identifier of tx.
func TransactionID(tx *transaction.RawTransaction) (transaction.TxID, error) {
	id, err := tx.TxID()
	if err != nil {
		return transaction.TxID{}, fmt.Errorf("failed to compute txid: %w", err)
	}
	log.WithField("txid", id.String()).Debug("api: txid computed")
	return id, nil
}

// SummarizeTransaction reports the header fields and bundle sizes of tx.
func SummarizeTransaction(tx *transaction.RawTransaction) (*TransactionSummary, error) {
	raw, err := EncodeTransaction(tx)
	if err != nil {
		return nil, err
	}
	id, err := TransactionID(tx)
	if err != nil {
		return nil, err
	}
	return &TransactionSummary{
		TxID:                id.String(),
		Size:                len(raw),
		Version:             tx.Version(),
		Overwintered:        tx.Overwintered(),
		VersionGroupID:      tx.VersionGroupID,
		ConsensusBranchID:   tx.ConsensusBranchID,
		LockTime:            tx.LockTime,
		ExpiryHeight:        tx.ExpiryHeight,
		TransparentInputs:   len(tx.Transparent.Inputs),
		TransparentOutputs:  len(tx.Transparent.Outputs),
		JoinSplits:          len(tx.Sprout.JoinSplits),
		SaplingSpends:       len(tx.Sapling.Spends),
		SaplingOutputs:      len(tx.Sapling.Outputs),
		OrchardActions:      len(tx.Orchard.Actions),
		SaplingValueBalance: tx.Sapling.ValueBalance,
		OrchardValueBalance: tx.Orchard.ValueBalance,
	}, nil
}

// ============================================================================
// Addresses
// ============================================================================

// AddressInfo describes a parsed address.
type AddressInfo struct {
	Kind      string         `json:"kind"` // transparent, sapling, orchard or unified
	Network   string         `json:"network"`
	Address   string         `json:"address"`
	Receivers []ReceiverInfo `json:"receivers"`
}

// ReceiverInfo is one receiver of an address, as hex.
type ReceiverInfo struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// ParseAddress decodes any supported address string.
func ParseAddress(s string) (*AddressInfo, error) {
	addr, err := address.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("failed to parse address: %w", err)
	}

	info := &AddressInfo{
		Kind:    addressKind(addr),
		Network: addr.Network().String(),
		Address: addr.String(),
	}
	for _, r := range addr.Receivers() {
		info.Receivers = append(info.Receivers, ReceiverInfo{
			Type: r.Typecode().String(),
			Data: hex.EncodeToString(r.Bytes()),
		})
	}
	log.WithFields(logrus.Fields{
		"kind":      info.Kind,
		"network":   info.Network,
		"receivers": len(info.Receivers),
	}).Debug("api: address parsed")
	return info, nil
}

func addressKind(addr address.Address) string {
	switch addr.(type) {
	case *address.TransparentAddress:
		return "transparent"
	case *address.SaplingAddress:
		return "sapling"
	case *address.OrchardAddress:
		return "orchard"
	default:
		return "unified"
	}
}

// UnifiedReceivers holds hex-encoded receivers for CreateUnifiedAddress.
// Empty fields are omitted from the address.
type UnifiedReceivers struct {
	P2PKH   string
	P2SH    string
	Sapling string
	Orchard string
}

// CreateUnifiedAddress builds a unified address on the named network
// ("main" or "test").
func CreateUnifiedAddress(network string, in UnifiedReceivers) (string, error) {
	net, err := address.ParseNetwork(network)
	if err != nil {
		return "", err
	}

	var receivers []address.Receiver
	add := func(name, h string, build func([]byte) (address.Receiver, error)) error {
		if h == "" {
			return nil
		}
		b, err := hex.DecodeString(h)
		if err != nil {
			return fmt.Errorf("invalid %s receiver hex: %w", name, err)
		}
		r, err := build(b)
		if err != nil {
			return fmt.Errorf("invalid %s receiver: %w", name, err)
		}
		receivers = append(receivers, r)
		return nil
	}

	steps := []struct {
		name  string
		hex   string
		build func([]byte) (address.Receiver, error)
	}{
		{"orchard", in.Orchard, func(b []byte) (address.Receiver, error) { return address.NewOrchardReceiver(b) }},
		{"sapling", in.Sapling, func(b []byte) (address.Receiver, error) { return address.NewSaplingReceiver(b) }},
		{"p2pkh", in.P2PKH, func(b []byte) (address.Receiver, error) { return address.NewTransparentP2PKHReceiver(b) }},
		{"p2sh", in.P2SH, func(b []byte) (address.Receiver, error) { return address.NewTransparentP2SHReceiver(b) }},
	}
	for _, s := range steps {
		if err := add(s.name, s.hex, s.build); err != nil {
			return "", err
		}
	}

	ua, err := address.NewUnifiedAddress(net, receivers...)
	if err != nil {
		return "", fmt.Errorf("failed to create unified address: %w", err)
	}
	log.WithFields(logrus.Fields{
		"network":   net.String(),
		"receivers": len(receivers),
	}).Debug("api: unified address created")
	return ua.String(), nil
}

// ============================================================================
// Payment requests
// ============================================================================

// ParsePaymentRequest decodes a ZIP 321 URI.
func ParsePaymentRequest(uri string) (*zip321.PaymentRequest, error) {
	req, err := zip321.Parse(strings.TrimSpace(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to parse payment request: %w", err)
	}
	log.WithField("payments", len(req.Payments)).Debug("api: payment request parsed")
	return req, nil
}
