package address

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

type bech32Variant int

const (
	variantBech32 bech32Variant = iota
	variantBech32m
)

func (v bech32Variant) version() bech32.Version {
	if v == variantBech32m {
		return bech32.VersionM
	}
	return bech32.Version0
}

func (v bech32Variant) String() string {
	if v == variantBech32m {
		return "bech32m"
	}
	return "bech32"
}

// encodeBech32 encodes 8-bit data under hrp. Unified encodings exceed the
// 90-character limit of BIP-173, which the encoder does not enforce.
func encodeBech32(hrp string, data []byte, v bech32Variant) (string, error) {
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", &EncodingError{Layer: LayerBech32, Message: "converting to base32", Cause: err}
	}
	s, err := encode5(hrp, conv, v)
	if err != nil {
		return "", &EncodingError{Layer: LayerBech32, Message: "encoding", Cause: err}
	}
	return s, nil
}

func encode5(hrp string, data5 []byte, v bech32Variant) (string, error) {
	if v == variantBech32m {
		return bech32.EncodeM(hrp, data5)
	}
	return bech32.Encode(hrp, data5)
}

// decodeBech32 decodes s, requiring checksum variant v, and returns the
// lowercase hrp and the 8-bit data.
func decodeBech32(s string, v bech32Variant) (string, []byte, error) {
	hrp, data5, version, err := bech32.DecodeNoLimitWithVersion(s)
	if err != nil {
		return "", nil, &EncodingError{Layer: LayerBech32, Message: "decoding", Cause: err}
	}
	if version != v.version() {
		return "", nil, &EncodingError{Layer: LayerBech32, Message: "checksum is not " + v.String()}
	}

	data, err := bech32.ConvertBits(data5, 5, 8, false)
	if err != nil {
		return "", nil, &EncodingError{Layer: LayerBech32, Message: "converting from base32", Cause: err}
	}
	return hrp, data, nil
}

// bech32HRP returns the lowercase human-readable part of s, if s has the
// shape of a Bech32 string.
func bech32HRP(s string) (string, bool) {
	sep := strings.LastIndexByte(s, '1')
	if sep < 1 {
		return "", false
	}
	return strings.ToLower(s[:sep]), true
}

// decodedLength returns the number of 8-bit bytes a well-formed Bech32
// string of this length carries, or -1 if it is too short.
func decodedLength(s string) int {
	sep := strings.LastIndexByte(s, '1')
	dataChars := len(s) - sep - 1 - 6
	if sep < 1 || dataChars < 0 {
		return -1
	}
	return dataChars * 5 / 8
}
