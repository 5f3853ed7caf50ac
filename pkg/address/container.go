package address

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/suffix-labs/zcash-codec/pkg/f4jumble"
	"github.com/suffix-labs/zcash-codec/pkg/wire"
)

// paddingLen is the length of the HRP padding appended before jumbling.
const paddingLen = 16

// item is one typecode/value element of a unified encoding.
type item struct {
	typecode Typecode
	data     []byte
}

func padding(hrp string) []byte {
	p := make([]byte, paddingLen)
	copy(p, hrp)
	return p
}

// encodeContainer serializes items in ascending typecode order, appends the
// HRP padding, jumbles the result and Bech32m-encodes it under hrp.
func encodeContainer(hrp string, items []item) (string, error) {
	sorted := append([]item(nil), items...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].typecode < sorted[j].typecode })

	size := paddingLen
	for _, it := range sorted {
		size += wire.CompactSizeLen(uint64(it.typecode)) + wire.CompactSizeLen(uint64(len(it.data))) + len(it.data)
	}

	w := wire.NewWriter(size)
	for _, it := range sorted {
		w.WriteCompactSize(uint64(it.typecode))
		w.WriteCompactSize(uint64(len(it.data)))
		w.Write(it.data)
	}
	w.Write(padding(hrp))

	jumbled, err := f4jumble.Jumble(w.Bytes())
	if err != nil {
		return "", &EncodingError{Layer: LayerF4Jumble, Message: "jumbling", Cause: err}
	}
	return encodeBech32(hrp, jumbled, variantBech32m)
}

// decodeContainer reverses encodeContainer and returns the hrp and the items
// in encoded order. Items must have strictly ascending typecodes.
func decodeContainer(s string) (string, []item, error) {
	if n := decodedLength(s); n > f4jumble.MaxLength {
		return "", nil, &EncodingError{Layer: LayerLength, Message: fmt.Sprintf("encoding carries %d bytes, more than %d", n, f4jumble.MaxLength)}
	}

	hrp, data, err := decodeBech32(s, variantBech32m)
	if err != nil {
		return "", nil, err
	}
	if len(data) < f4jumble.MinLength || len(data) > f4jumble.MaxLength {
		return "", nil, &EncodingError{
			Layer:   LayerLength,
			Message: fmt.Sprintf("decoded length %d outside [%d, %d]", len(data), f4jumble.MinLength, f4jumble.MaxLength),
		}
	}

	if err := f4jumble.Apply(data, true); err != nil {
		return "", nil, &EncodingError{Layer: LayerF4Jumble, Message: "unjumbling", Cause: err}
	}

	body, pad := data[:len(data)-paddingLen], data[len(data)-paddingLen:]
	if !bytes.Equal(pad, padding(hrp)) {
		return "", nil, &EncodingError{Layer: LayerPadding, Message: "padding does not match human-readable part"}
	}

	items, err := readItems(body)
	if err != nil {
		return "", nil, err
	}
	return hrp, items, nil
}

func readItems(body []byte) ([]item, error) {
	r := wire.NewReader(body)
	var items []item
	for r.Remaining() > 0 {
		tc, err := r.ReadCompactCount()
		if err != nil {
			return nil, itemError("reading typecode", err)
		}
		n, err := r.ReadCompactCount()
		if err != nil {
			return nil, itemError("reading item length", err)
		}
		data, err := r.Read(n)
		if err != nil {
			return nil, itemError(fmt.Sprintf("reading typecode 0x%02x value", tc), err)
		}

		if len(items) > 0 {
			prev := items[len(items)-1].typecode
			if Typecode(tc) == prev {
				return nil, &CompositionError{Message: fmt.Sprintf("duplicate typecode %s", Typecode(tc))}
			}
			if Typecode(tc) < prev {
				return nil, &EncodingError{Layer: LayerItem, Message: fmt.Sprintf("typecode %s follows %s", Typecode(tc), prev)}
			}
		}
		items = append(items, item{typecode: Typecode(tc), data: data})
	}
	if len(items) == 0 {
		return nil, &EncodingError{Layer: LayerItem, Message: "no items"}
	}
	return items, nil
}

func itemError(msg string, err error) error {
	var de *wire.DecodeError
	if errors.As(err, &de) {
		return &EncodingError{Layer: LayerItem, Message: msg, Cause: de.Err}
	}
	return &EncodingError{Layer: LayerItem, Message: msg, Cause: err}
}
