package rlp

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of
// these, so callers can classify failures with errors.Is.
var (
	// ErrValidation is returned when a value violates a length constraint.
	ErrValidation = errors.New("rlp: validation failed")

	// ErrEncoding is returned when a value cannot be represented in RLP.
	ErrEncoding = errors.New("rlp: encoding failed")

	// ErrDecoding is returned for malformed or non-canonical input.
	ErrDecoding = errors.New("rlp: decoding failed")
)

var (
	// ErrNegativeInt is returned when encoding a negative integer.
	ErrNegativeInt = fmt.Errorf("%w: negative integer", ErrEncoding)

	// ErrValueTooLarge is returned when an integer does not fit the target width.
	ErrValueTooLarge = fmt.Errorf("%w: value too large", ErrEncoding)

	// ErrWrongLength is returned when a fixed-length byte string has the wrong size.
	ErrWrongLength = fmt.Errorf("%w: wrong byte string length", ErrValidation)

	// ErrEmptyInput is returned when decoding zero bytes.
	ErrEmptyInput = fmt.Errorf("%w: empty input", ErrDecoding)

	// ErrTruncated is returned when a size prefix exceeds the remaining input.
	ErrTruncated = fmt.Errorf("%w: value size exceeds available input", ErrDecoding)

	// ErrExpectedString is returned when a list is encountered where a string was expected.
	ErrExpectedString = fmt.Errorf("%w: expected string", ErrDecoding)

	// ErrExpectedList is returned when a string is encountered where a list was expected.
	ErrExpectedList = fmt.Errorf("%w: expected list", ErrDecoding)

	// ErrCanonSize is returned when a value uses a non-canonical size encoding:
	// a single byte below 0x80 wrapped in a prefix, a long form for a short
	// payload, or a length with leading zero bytes.
	ErrCanonSize = fmt.Errorf("%w: non-canonical size information", ErrDecoding)

	// ErrCanonInt is returned when an integer uses non-canonical encoding (leading zeros).
	ErrCanonInt = fmt.Errorf("%w: non-canonical integer encoding", ErrDecoding)

	// ErrEOL is returned when reading past the end of the current list.
	ErrEOL = fmt.Errorf("%w: end of list", ErrDecoding)

	// ErrNotAtEOL is returned by ListEnd when list elements remain unread.
	ErrNotAtEOL = fmt.Errorf("%w: list has unread elements", ErrDecoding)

	// ErrTrailingBytes is returned when input holds more than one top-level value.
	ErrTrailingBytes = fmt.Errorf("%w: input contains more than one value", ErrDecoding)

	// ErrUint64Range is returned when a decoded integer exceeds uint64 range.
	ErrUint64Range = fmt.Errorf("%w: uint64 overflow", ErrDecoding)

	// ErrUint256Range is returned when a decoded integer exceeds 256 bits.
	ErrUint256Range = fmt.Errorf("%w: uint256 overflow", ErrDecoding)
)
