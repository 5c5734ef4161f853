package rlp

import (
	"io"
	"math/big"

	"github.com/holiman/uint256"
)

// Encode writes the RLP encoding of item to w.
func Encode(w io.Writer, item Item) error {
	_, err := w.Write(EncodeItem(item))
	return err
}

// EncodeItem returns the RLP encoding of item, recursing into lists.
func EncodeItem(item Item) []byte {
	return item.appendTo(nil)
}

// EncodeBytes returns the RLP encoding of the byte string b:
// a single byte in [0x00, 0x7f] is its own encoding, strings of up to
// 55 bytes get a 0x80+len prefix, longer strings 0xb7+len(len) followed by
// the big-endian length.
func EncodeBytes(b []byte) []byte {
	return AppendBytes(make([]byte, 0, StringSize(b)), b)
}

// EncodeList encodes each item, concatenates the results and wraps them in a
// list header.
func EncodeList(items []Item) []byte {
	var payload []byte
	for _, item := range items {
		payload = item.appendTo(payload)
	}
	return WrapList(payload)
}

// WrapList wraps an already-encoded RLP payload in a list header.
func WrapList(payload []byte) []byte {
	buf := make([]byte, 0, ListSize(len(payload)))
	buf = AppendListHeader(buf, len(payload))
	return append(buf, payload...)
}

// EncodeUint64 returns the RLP encoding of u. Zero encodes as the empty
// string.
func EncodeUint64(u uint64) []byte {
	return AppendUint64(nil, u)
}

// EncodeUint returns the RLP encoding of the minimal big-endian form of n.
// Negative values fail with ErrNegativeInt; nil encodes as zero.
func EncodeUint(n *big.Int) ([]byte, error) {
	return AppendBigInt(nil, n)
}

// EncodeUint256 returns the RLP encoding of a 256-bit unsigned integer.
func EncodeUint256(n *uint256.Int) []byte {
	return AppendUint256(nil, n)
}

// MinimalBytes returns the big-endian representation of n without leading
// zero bytes. Zero yields an empty slice.
func MinimalBytes(n *big.Int) ([]byte, error) {
	if n == nil {
		return []byte{}, nil
	}
	if n.Sign() < 0 {
		return nil, ErrNegativeInt
	}
	return n.Bytes(), nil
}

// putUintBigEndian encodes u as big-endian with no leading zeros.
func putUintBigEndian(u uint64) []byte {
	switch {
	case u < (1 << 8):
		return []byte{byte(u)}
	case u < (1 << 16):
		return []byte{byte(u >> 8), byte(u)}
	case u < (1 << 24):
		return []byte{byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 32):
		return []byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 40):
		return []byte{byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 48):
		return []byte{byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 56):
		return []byte{byte(u >> 48), byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	default:
		return []byte{byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	}
}
