package rlp

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Decode parses the first RLP value in b and returns it together with the
// unconsumed remainder. Byte strings in the returned item alias b.
//
// Decoding is strict: a single byte below 0x80 wrapped in a string prefix,
// a long-form size for a payload of 55 bytes or less, and sizes with leading
// zero bytes are all rejected with ErrCanonSize.
func Decode(b []byte) (Item, []byte, error) {
	k, content, rest, err := Split(b)
	if err != nil {
		return Item{}, b, err
	}
	item, err := decodeItem(k, content)
	if err != nil {
		return Item{}, b, err
	}
	return item, rest, nil
}

// DecodeExact parses b as exactly one RLP value.
func DecodeExact(b []byte) (Item, error) {
	item, rest, err := Decode(b)
	if err != nil {
		return Item{}, err
	}
	if len(rest) > 0 {
		return Item{}, ErrTrailingBytes
	}
	return item, nil
}

func decodeItem(k Kind, content []byte) (Item, error) {
	if k != List {
		return Item{kind: k, str: content}, nil
	}
	var elems []Item
	for len(content) > 0 {
		ek, ec, rest, err := Split(content)
		if err != nil {
			return Item{}, err
		}
		e, err := decodeItem(ek, ec)
		if err != nil {
			return Item{}, err
		}
		elems = append(elems, e)
		content = rest
	}
	return Item{kind: List, elems: elems}, nil
}

// Split returns the kind and content of the first RLP value in b together
// with the bytes that follow it.
func Split(b []byte) (k Kind, content, rest []byte, err error) {
	if len(b) == 0 {
		return 0, nil, b, ErrEmptyInput
	}
	k, ts, cs, err := readKind(b)
	if err != nil {
		return 0, nil, b, err
	}
	return k, b[ts : ts+cs], b[ts+cs:], nil
}

// readKind reads the prefix of buf and returns the value kind, the prefix
// size and the content size. The returned sizes are guaranteed to fit buf.
func readKind(buf []byte) (k Kind, tagsize, contentsize uint64, err error) {
	b := buf[0]
	switch {
	case b < 0x80:
		k = Byte
		tagsize = 0
		contentsize = 1
	case b < 0xb8:
		k = String
		tagsize = 1
		contentsize = uint64(b - 0x80)
		// A single byte below 0x80 must be encoded as itself.
		if contentsize == 1 && len(buf) > 1 && buf[1] < 0x80 {
			return 0, 0, 0, ErrCanonSize
		}
	case b < 0xc0:
		k = String
		tagsize = 1 + uint64(b-0xb7)
		contentsize, err = readSize(buf[1:], b-0xb7)
	case b < 0xf8:
		k = List
		tagsize = 1
		contentsize = uint64(b - 0xc0)
	default:
		k = List
		tagsize = 1 + uint64(b-0xf7)
		contentsize, err = readSize(buf[1:], b-0xf7)
	}
	if err != nil {
		return 0, 0, 0, err
	}
	if contentsize > uint64(len(buf))-tagsize {
		return 0, 0, 0, ErrTruncated
	}
	return k, tagsize, contentsize, nil
}

// readSize reads a long-form size of slen bytes.
func readSize(b []byte, slen byte) (uint64, error) {
	if int(slen) > len(b) {
		return 0, ErrTruncated
	}
	if b[0] == 0 {
		return 0, ErrCanonSize
	}
	s := readBigEndian(b[:slen])
	if s < 56 {
		return 0, ErrCanonSize
	}
	return s, nil
}

func readBigEndian(b []byte) uint64 {
	var val uint64
	for _, x := range b {
		val = (val << 8) | uint64(x)
	}
	return val
}

// Stream provides incremental access to RLP-encoded data held in memory.
// It applies the same canonical rules as Decode.
type Stream struct {
	data  []byte
	pos   int
	stack []int // exclusive end offsets of the open lists
}

// NewStreamFromBytes creates a stream reading from data.
func NewStreamFromBytes(data []byte) *Stream {
	return &Stream{data: data}
}

// limit returns the current read boundary.
func (s *Stream) limit() int {
	if len(s.stack) > 0 {
		return s.stack[len(s.stack)-1]
	}
	return len(s.data)
}

// next consumes the next value and returns its kind and content.
func (s *Stream) next() (Kind, []byte, error) {
	lim := s.limit()
	if s.pos >= lim {
		if len(s.stack) > 0 {
			return 0, nil, ErrEOL
		}
		return 0, nil, ErrEmptyInput
	}
	k, content, rest, err := Split(s.data[s.pos:lim])
	if err != nil {
		return 0, nil, err
	}
	s.pos = lim - len(rest)
	return k, content, nil
}

// Kind reads the type tag and content size of the next value without
// consuming it.
func (s *Stream) Kind() (Kind, uint64, error) {
	saved := s.pos
	k, content, err := s.next()
	s.pos = saved
	if err != nil {
		return 0, 0, err
	}
	return k, uint64(len(content)), nil
}

// Raw returns the complete encoding of the next value, prefix included.
func (s *Stream) Raw() ([]byte, error) {
	start := s.pos
	if _, _, err := s.next(); err != nil {
		return nil, err
	}
	return s.data[start:s.pos], nil
}

// Bytes reads an RLP string value and returns it as []byte. The result
// aliases the stream input.
func (s *Stream) Bytes() ([]byte, error) {
	k, content, err := s.next()
	if err != nil {
		return nil, err
	}
	if k == List {
		return nil, ErrExpectedString
	}
	return content, nil
}

// List reads the start of an RLP list and enters a scope for reading list
// items. Call ListEnd when done reading.
func (s *Stream) List() (uint64, error) {
	saved := s.pos
	k, content, err := s.next()
	if err != nil {
		return 0, err
	}
	if k != List {
		s.pos = saved
		return 0, ErrExpectedList
	}
	s.stack = append(s.stack, s.pos)
	s.pos -= len(content)
	return uint64(len(content)), nil
}

// ListEnd verifies that all items in the current list have been read and
// leaves its scope.
func (s *Stream) ListEnd() error {
	if len(s.stack) == 0 {
		return ErrExpectedList
	}
	if s.pos != s.stack[len(s.stack)-1] {
		return ErrNotAtEOL
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// AtListEnd reports whether the current scope has no more values.
func (s *Stream) AtListEnd() bool {
	return s.pos >= s.limit()
}

// Done reports whether the whole input has been consumed.
func (s *Stream) Done() bool {
	return len(s.stack) == 0 && s.pos == len(s.data)
}

// Item reads the next value as a full item tree.
func (s *Stream) Item() (Item, error) {
	k, content, err := s.next()
	if err != nil {
		return Item{}, err
	}
	return decodeItem(k, content)
}

// Uint64 reads an RLP-encoded unsigned integer.
func (s *Stream) Uint64() (uint64, error) {
	b, err := s.Bytes()
	if err != nil {
		return 0, err
	}
	return bytesToUint64(b)
}

// BigInt reads an RLP-encoded big integer.
func (s *Stream) BigInt() (*big.Int, error) {
	b, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	if len(b) > 0 && b[0] == 0 {
		return nil, ErrCanonInt
	}
	return new(big.Int).SetBytes(b), nil
}

// Uint256 reads an RLP-encoded integer of at most 256 bits.
func (s *Stream) Uint256() (*uint256.Int, error) {
	b, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	if len(b) > 32 {
		return nil, ErrUint256Range
	}
	if len(b) > 0 && b[0] == 0 {
		return nil, ErrCanonInt
	}
	return new(uint256.Int).SetBytes(b), nil
}
