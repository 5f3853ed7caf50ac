package address

import "fmt"

// Layers at which a text encoding can fail.
const (
	LayerBase58   = "base58check"
	LayerBech32   = "bech32"
	LayerHRP      = "hrp"
	LayerLength   = "length"
	LayerF4Jumble = "f4jumble"
	LayerPadding  = "padding"
	LayerItem     = "item"
	LayerPrefix   = "prefix"
)

// EncodingError reports a malformed address or key string. Layer names
// which stage of decoding rejected the input.
type EncodingError struct {
	Layer   string
	Message string
	Cause   error
}

func (e *EncodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s encoding: %s: %v", e.Layer, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid %s encoding: %s", e.Layer, e.Message)
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// CompositionError reports a set of receivers or key items that violates
// the unified encoding rules.
type CompositionError struct {
	Message string
}

func (e *CompositionError) Error() string {
	return "invalid unified composition: " + e.Message
}
