// Package crypto provides the Keccak-256 hash and secp256k1 signing used for
// header hashing and sealing.
package crypto

import (
	"golang.org/x/crypto/sha3"
)

// HashLength is the size of a Keccak-256 digest in bytes.
const HashLength = 32

// Keccak256 calculates the Keccak-256 hash of the given data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates Keccak-256 and returns it as a fixed-size array.
func Keccak256Hash(data ...[]byte) (h [HashLength]byte) {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}
