package wire

import "encoding/binary"

// MaxCompactCount bounds CompactSize values used as counts or lengths, as
// zcashd's MAX_SIZE does.
const MaxCompactCount = 0x02000000

// CompactSizeLen returns the encoded size of n: 1, 3, 5 or 9 bytes.
func CompactSizeLen(n uint64) int {
	switch {
	case n < 0xfd:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// AppendCompactSize appends the minimal CompactSize encoding of n to dst.
func AppendCompactSize(dst []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(dst, byte(n))
	case n <= 0xffff:
		return binary.LittleEndian.AppendUint16(append(dst, 0xfd), uint16(n))
	case n <= 0xffffffff:
		return binary.LittleEndian.AppendUint32(append(dst, 0xfe), uint32(n))
	default:
		return binary.LittleEndian.AppendUint64(append(dst, 0xff), n)
	}
}
