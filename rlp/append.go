// append.go provides allocation-free building blocks for RLP encoders that
// assemble a payload field by field, such as the block header encoder.
package rlp

import (
	"math/big"

	"github.com/holiman/uint256"
)

// AppendBytes appends the RLP encoding of a byte slice to dst.
func AppendBytes(dst, data []byte) []byte {
	n := len(data)
	if n == 1 && data[0] <= 0x7f {
		return append(dst, data[0])
	}
	if n <= 55 {
		dst = append(dst, 0x80+byte(n))
		return append(dst, data...)
	}
	lb := putUintBigEndian(uint64(n))
	dst = append(dst, 0xb7+byte(len(lb)))
	dst = append(dst, lb...)
	return append(dst, data...)
}

// AppendUint64 appends the RLP encoding of a uint64 to dst and returns
// the extended slice.
func AppendUint64(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, 0x80)
	}
	if v < 128 {
		return append(dst, byte(v))
	}
	b := putUintBigEndian(v)
	dst = append(dst, 0x80+byte(len(b)))
	return append(dst, b...)
}

// AppendBigInt appends the RLP encoding of the minimal big-endian form of n.
// A nil n is treated as zero.
func AppendBigInt(dst []byte, n *big.Int) ([]byte, error) {
	b, err := MinimalBytes(n)
	if err != nil {
		return dst, err
	}
	return AppendBytes(dst, b), nil
}

// AppendUint256 appends the RLP encoding of n to dst. A nil n is treated as
// zero.
func AppendUint256(dst []byte, n *uint256.Int) []byte {
	if n == nil || n.IsZero() {
		return append(dst, 0x80)
	}
	if n.IsUint64() {
		return AppendUint64(dst, n.Uint64())
	}
	return AppendBytes(dst, n.Bytes())
}

// AppendListHeader appends an RLP list header for a payload of the given
// size to dst. The caller is responsible for appending exactly payloadSize
// bytes of encoded list items afterward.
func AppendListHeader(dst []byte, payloadSize int) []byte {
	if payloadSize <= 55 {
		return append(dst, 0xc0+byte(payloadSize))
	}
	lb := putUintBigEndian(uint64(payloadSize))
	dst = append(dst, 0xf7+byte(len(lb)))
	return append(dst, lb...)
}

// ListSize returns the RLP-encoded size of a list with the given total
// payload size.
func ListSize(payloadSize int) int {
	if payloadSize <= 55 {
		return 1 + payloadSize
	}
	return 1 + uintByteLen(uint64(payloadSize)) + payloadSize
}

// StringSize returns the RLP-encoded size of the byte string b.
func StringSize(b []byte) int {
	n := len(b)
	if n == 1 && b[0] <= 0x7f {
		return 1
	}
	if n <= 55 {
		return 1 + n
	}
	return 1 + uintByteLen(uint64(n)) + n
}

// uintByteLen returns the number of bytes needed to encode u in big-endian.
func uintByteLen(u uint64) int {
	switch {
	case u < (1 << 8):
		return 1
	case u < (1 << 16):
		return 2
	case u < (1 << 24):
		return 3
	case u < (1 << 32):
		return 4
	case u < (1 << 40):
		return 5
	case u < (1 << 48):
		return 6
	case u < (1 << 56):
		return 7
	default:
		return 8
	}
}
