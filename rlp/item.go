package rlp

import (
	"fmt"
	"math/big"
)

// Kind represents the type of an RLP value.
type Kind int

const (
	Byte   Kind = iota // Single byte in [0x00, 0x7f].
	String             // RLP string (including empty string).
	List               // RLP list.
)

func (k Kind) String() string {
	switch k {
	case Byte:
		return "Byte"
	case String:
		return "String"
	case List:
		return "List"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Item is a decoded or to-be-encoded RLP value: either a byte string or an
// ordered list of items.
type Item struct {
	kind  Kind
	str   []byte
	elems []Item
}

// NewString returns a byte string item.
func NewString(b []byte) Item {
	if len(b) == 1 && b[0] <= 0x7f {
		return Item{kind: Byte, str: b}
	}
	return Item{kind: String, str: b}
}

// NewList returns a list item holding elems in order.
func NewList(elems ...Item) Item {
	return Item{kind: List, elems: elems}
}

// NewUint returns the item for the minimal big-endian form of n.
func NewUint(n *big.Int) (Item, error) {
	b, err := MinimalBytes(n)
	if err != nil {
		return Item{}, err
	}
	return NewString(b), nil
}

// Kind reports whether the item is a single byte, a string or a list.
func (it Item) Kind() Kind { return it.kind }

// IsList reports whether the item is a list.
func (it Item) IsList() bool { return it.kind == List }

// Bytes returns the content of a string item. Decoded items alias the
// decoder input.
func (it Item) Bytes() ([]byte, error) {
	if it.kind == List {
		return nil, ErrExpectedString
	}
	return it.str, nil
}

// Elems returns the elements of a list item.
func (it Item) Elems() ([]Item, error) {
	if it.kind != List {
		return nil, ErrExpectedList
	}
	return it.elems, nil
}

// BigInt interprets a string item as a canonical unsigned integer.
func (it Item) BigInt() (*big.Int, error) {
	b, err := it.Bytes()
	if err != nil {
		return nil, err
	}
	if len(b) > 0 && b[0] == 0 {
		return nil, ErrCanonInt
	}
	return new(big.Int).SetBytes(b), nil
}

// Uint64 interprets a string item as a canonical unsigned integer that fits
// in 64 bits.
func (it Item) Uint64() (uint64, error) {
	b, err := it.Bytes()
	if err != nil {
		return 0, err
	}
	return bytesToUint64(b)
}

func (it Item) appendTo(dst []byte) []byte {
	if it.kind != List {
		return AppendBytes(dst, it.str)
	}
	// Encode the payload first to learn its size, then prepend the header.
	var payload []byte
	for _, e := range it.elems {
		payload = e.appendTo(payload)
	}
	dst = AppendListHeader(dst, len(payload))
	return append(dst, payload...)
}

func bytesToUint64(b []byte) (uint64, error) {
	if len(b) > 8 {
		return 0, ErrUint64Range
	}
	if len(b) > 0 && b[0] == 0 {
		return 0, ErrCanonInt
	}
	var val uint64
	for _, x := range b {
		val = (val << 8) | uint64(x)
	}
	return val, nil
}
