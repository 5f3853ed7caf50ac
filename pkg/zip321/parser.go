// Package zip321 implements the ZIP 321 payment request URI format.
//
// A payment request names one or more recipients, each with an optional
// amount, memo, label and message:
//
//	zcash:<address>?amount=<amount>&memo=<memo>&message=<message>
//	zcash:?address=<addr0>&amount=<amt0>&address.1=<addr1>&amount.1=<amt1>
//
// Parameters without an index suffix belong to payment 0; indexed
// parameters use suffixes .1 through .9999. Every address is decoded with
// package address, and all payments must be on the same network.
//
// See: https://zips.z.cash/zip-0321
package zip321

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/suffix-labs/zcash-codec/pkg/address"
)

const (
	scheme = "zcash:"

	// MaxMemoLen is the size of a decoded memo field.
	MaxMemoLen = 512
	// MaxPaymentIndex is the largest parameter index suffix.
	MaxPaymentIndex = 9999
)

// PaymentRequest is a parsed ZIP 321 payment request.
type PaymentRequest struct {
	Payments []Payment // ordered by parameter index
}

// Payment is a single recipient of a payment request.
type Payment struct {
	Address address.Address
	Amount  *Zatoshis // nil when the payer chooses the amount
	Memo    []byte    // decoded memo; only valid for shielded recipients
	Label   string
	Message string

	// Other holds optional parameters this package does not interpret.
	Other map[string]string
}

// ParseError reports a malformed payment request.
type ParseError struct {
	Index   int    // payment index, or -1 when not tied to a payment
	Param   string // parameter name, if any
	Message string
}

func (e *ParseError) Error() string {
	switch {
	case e.Index < 0:
		return "zip321: " + e.Message
	case e.Param == "":
		return fmt.Sprintf("zip321: payment %d: %s", e.Index, e.Message)
	default:
		return fmt.Sprintf("zip321: payment %d: %s: %s", e.Index, e.Param, e.Message)
	}
}

// pending collects the raw parameters of one payment during parsing.
type pending struct {
	params map[string]string
}

// Parse decodes a ZIP 321 payment request URI.
func Parse(uri string) (*PaymentRequest, error) {
	if len(uri) < len(scheme) || !strings.EqualFold(uri[:len(scheme)], scheme) {
		return nil, &ParseError{Index: -1, Message: "missing zcash: scheme"}
	}
	path, query, _ := strings.Cut(uri[len(scheme):], "?")

	byIndex := make(map[int]*pending)
	get := func(idx int) *pending {
		p, ok := byIndex[idx]
		if !ok {
			p = &pending{params: make(map[string]string)}
			byIndex[idx] = p
		}
		return p
	}

	if path != "" {
		get(0).params["address"] = path
	}

	if query != "" {
		for _, part := range strings.Split(query, "&") {
			if err := addParam(part, get); err != nil {
				return nil, err
			}
		}
	}

	if len(byIndex) == 0 {
		return nil, &ParseError{Index: -1, Message: "no payments"}
	}

	indices := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	req := &PaymentRequest{Payments: make([]Payment, 0, len(indices))}
	for _, idx := range indices {
		p, err := buildPayment(idx, byIndex[idx].params)
		if err != nil {
			return nil, err
		}
		if len(req.Payments) > 0 && req.Payments[0].Address.Network() != p.Address.Network() {
			return nil, &ParseError{Index: idx, Param: "address", Message: "payments span networks"}
		}
		req.Payments = append(req.Payments, p)
	}
	return req, nil
}

// addParam records one name=value pair of the query.
func addParam(part string, get func(int) *pending) error {
	rawName, rawValue, ok := strings.Cut(part, "=")
	if !ok || rawName == "" {
		return &ParseError{Index: -1, Message: fmt.Sprintf("malformed parameter %q", part)}
	}
	name, idx, err := splitIndex(rawName)
	if err != nil {
		return err
	}
	value, err := url.PathUnescape(rawValue)
	if err != nil {
		return &ParseError{Index: idx, Param: name, Message: err.Error()}
	}

	p := get(idx)
	if _, dup := p.params[name]; dup {
		return &ParseError{Index: idx, Param: name, Message: "duplicate parameter"}
	}
	p.params[name] = value
	return nil
}

// splitIndex separates "name.N" into its name and index. A bare name is
// index 0; explicit indices are 1 to 9999 without leading zeros.
func splitIndex(s string) (string, int, error) {
	name, suffix, indexed := strings.Cut(s, ".")
	if !validParamName(name) {
		return "", 0, &ParseError{Index: -1, Message: fmt.Sprintf("invalid parameter name %q", s)}
	}
	if !indexed {
		return name, 0, nil
	}
	if suffix == "" || len(suffix) > 4 || suffix[0] == '0' || !isDigits(suffix) {
		return "", 0, &ParseError{Index: -1, Message: fmt.Sprintf("invalid parameter index in %q", s)}
	}
	idx, _ := strconv.Atoi(suffix)
	return name, idx, nil
}

func validParamName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		alpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		switch {
		case alpha:
		case i > 0 && ((c >= '0' && c <= '9') || c == '+' || c == '-'):
		default:
			return false
		}
	}
	return true
}

func buildPayment(idx int, params map[string]string) (Payment, error) {
	raw, ok := params["address"]
	if !ok {
		return Payment{}, &ParseError{Index: idx, Message: "missing address"}
	}
	addr, err := address.Parse(raw)
	if err != nil {
		return Payment{}, fmt.Errorf("zip321: payment %d: address: %w", idx, err)
	}
	p := Payment{Address: addr}

	for name, value := range params {
		switch name {
		case "address":
		case "amount":
			z, err := ParseAmount(value)
			if err != nil {
				return Payment{}, &ParseError{Index: idx, Param: name, Message: err.Error()}
			}
			p.Amount = &z
		case "memo":
			if p.Memo, err = decodeMemo(value); err != nil {
				return Payment{}, &ParseError{Index: idx, Param: name, Message: err.Error()}
			}
			if !address.HasShieldedReceiver(addr) {
				return Payment{}, &ParseError{Index: idx, Param: name, Message: "memos require a shielded recipient"}
			}
		case "label":
			p.Label = value
		case "message":
			p.Message = value
		default:
			if strings.HasPrefix(name, "req-") {
				return Payment{}, &ParseError{Index: idx, Param: name, Message: "unsupported required parameter"}
			}
			if p.Other == nil {
				p.Other = make(map[string]string)
			}
			p.Other[name] = value
		}
	}
	return p, nil
}

// decodeMemo decodes an unpadded base64url memo.
func decodeMemo(s string) ([]byte, error) {
	memo, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64url: %w", err)
	}
	if len(memo) > MaxMemoLen {
		return nil, fmt.Errorf("memo is %d bytes, limit %d", len(memo), MaxMemoLen)
	}
	return memo, nil
}

// ============================================================================
// Encoding
// ============================================================================

// Encode renders the request as a URI. A single payment puts its address
// in the URI path; several payments use indices 0 through n-1, with index
// 0 written without a suffix.
func (req *PaymentRequest) Encode() string {
	var b strings.Builder
	b.WriteString(scheme)

	var params []string
	for i, p := range req.Payments {
		suffix := ""
		if i > 0 {
			suffix = "." + strconv.Itoa(i)
		}
		add := func(name, value string) {
			params = append(params, name+suffix+"="+escape(value))
		}

		if len(req.Payments) == 1 {
			b.WriteString(p.Address.String())
		} else {
			add("address", p.Address.String())
		}
		if p.Amount != nil {
			add("amount", p.Amount.String())
		}
		if p.Memo != nil {
			add("memo", base64.RawURLEncoding.EncodeToString(p.Memo))
		}
		if p.Label != "" {
			add("label", p.Label)
		}
		if p.Message != "" {
			add("message", p.Message)
		}
		other := make([]string, 0, len(p.Other))
		for name := range p.Other {
			other = append(other, name)
		}
		sort.Strings(other)
		for _, name := range other {
			add(name, p.Other[name])
		}
	}

	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(params, "&"))
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
