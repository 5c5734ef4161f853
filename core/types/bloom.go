package types

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/eth2030/headerhash/crypto"
	"github.com/eth2030/headerhash/rlp"
)

// BloomBitLength is the number of bits in a bloom filter (2048).
const BloomBitLength = 8 * BloomLength

// bloomInt is the fixed-width integer view of a bloom filter.
var bloomInt = rlp.BigEndianInt{Size: BloomLength}

// Bloom represents a 2048-bit bloom filter. On the wire it is always the full
// 256-byte big-endian form, never the minimal integer form.
type Bloom [BloomLength]byte

// BloomFromBig converts the integer view of a bloom filter into its
// fixed-width form. It fails for negative values and values above 2^2048-1.
func BloomFromBig(n *big.Int) (Bloom, error) {
	var b Bloom
	enc, err := bloomInt.Bytes(n)
	if err != nil {
		return b, fmt.Errorf("bloom: %w", err)
	}
	copy(b[:], enc)
	return b, nil
}

// BytesToBloom interprets b as a big-endian integer and returns its
// fixed-width bloom form. Inputs shorter than 256 bytes are left-padded.
func BytesToBloom(b []byte) (Bloom, error) {
	return BloomFromBig(new(big.Int).SetBytes(b))
}

// Big returns the integer view of the bloom filter.
func (b Bloom) Big() *big.Int {
	return new(big.Int).SetBytes(b[:])
}

// Bytes returns the 256-byte representation of the bloom filter.
func (b Bloom) Bytes() []byte { return b[:] }

// Hex returns the fixed-width 0x-prefixed hex form.
func (b Bloom) Hex() string { return hexutil.Encode(b[:]) }

// bloom9 computes the 3 bit positions for a bloom filter entry.
// It takes the first 6 bytes of keccak256(data), splits them into 3 pairs
// of 2 bytes each, and interprets each pair as a big-endian uint16 mod 2048.
func bloom9(data []byte) [3]uint {
	h := crypto.Keccak256(data)
	var bits [3]uint
	for i := 0; i < 3; i++ {
		bits[i] = uint(binary.BigEndian.Uint16(h[2*i:])) & 0x7FF // mod 2048
	}
	return bits
}

// Add sets the 3 bloom bits derived from data.
func (b *Bloom) Add(data []byte) {
	for _, bit := range bloom9(data) {
		// Bit 0 is the least significant bit of the last byte.
		b[BloomLength-1-bit/8] |= 1 << (bit % 8)
	}
}

// Test reports whether all 3 bits corresponding to data are set.
func (b Bloom) Test(data []byte) bool {
	for _, bit := range bloom9(data) {
		if b[BloomLength-1-bit/8]&(1<<(bit%8)) == 0 {
			return false
		}
	}
	return true
}
