package rlp

import (
	"fmt"
	"math/big"
)

// Binary is a byte string adapter enforcing a fixed length on both encode
// and decode. AllowEmpty admits the zero-length string as the only
// exception, e.g. for a block nonce that is not yet known.
type Binary struct {
	Length     int
	AllowEmpty bool
}

// Validate checks v against the adapter's length rules.
func (a Binary) Validate(v []byte) error {
	if len(v) == a.Length || (a.AllowEmpty && len(v) == 0) {
		return nil
	}
	return fmt.Errorf("%w: have %d bytes, want %d", ErrWrongLength, len(v), a.Length)
}

// Append validates v and appends its RLP encoding to dst.
func (a Binary) Append(dst, v []byte) ([]byte, error) {
	if err := a.Validate(v); err != nil {
		return dst, err
	}
	return AppendBytes(dst, v), nil
}

// Encode validates v and returns its RLP encoding.
func (a Binary) Encode(v []byte) ([]byte, error) {
	return a.Append(nil, v)
}

// Decode reads the next string from s and validates its length.
func (a Binary) Decode(s *Stream) ([]byte, error) {
	b, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	if err := a.Validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

// BigEndianInt is an unsigned integer adapter. With Size zero it uses the
// minimal big-endian form; otherwise the integer is left-padded to exactly
// Size bytes.
type BigEndianInt struct {
	Size int
}

// Bytes returns the big-endian representation of n for this adapter.
func (a BigEndianInt) Bytes(n *big.Int) ([]byte, error) {
	b, err := MinimalBytes(n)
	if err != nil {
		return nil, err
	}
	if a.Size == 0 {
		return b, nil
	}
	if len(b) > a.Size {
		return nil, fmt.Errorf("%w: %d bytes do not fit in %d", ErrValueTooLarge, len(b), a.Size)
	}
	out := make([]byte, a.Size)
	copy(out[a.Size-len(b):], b)
	return out, nil
}

// Encode returns the RLP encoding of n for this adapter.
func (a BigEndianInt) Encode(n *big.Int) ([]byte, error) {
	b, err := a.Bytes(n)
	if err != nil {
		return nil, err
	}
	return EncodeBytes(b), nil
}

// Decode reads the next integer from s. Fixed-size integers must carry
// exactly Size bytes; minimal integers must not have leading zeros.
func (a BigEndianInt) Decode(s *Stream) (*big.Int, error) {
	if a.Size == 0 {
		return s.BigInt()
	}
	b, err := Binary{Length: a.Size}.Decode(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}
