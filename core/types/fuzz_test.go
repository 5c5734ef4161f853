package types

import (
	"bytes"
	"math/big"
	"testing"
)

// FuzzDecodeHeaderRLP checks that any accepted input is the canonical
// encoding of the decoded header.
func FuzzDecodeHeaderRLP(f *testing.F) {
	f.Add(mustFuzzHeader(f, testRawHeader()).EncodeRLP())
	f.Add(mustFuzzHeader(f, DefaultRawHeader(nil)).EncodeRLP())
	f.Add([]byte{0xc0})
	f.Add([]byte{0xf9, 0x01, 0xed})

	f.Fuzz(func(t *testing.T, data []byte) {
		h, err := DecodeHeaderRLP(data)
		if err != nil {
			return
		}
		if enc := h.EncodeRLP(); !bytes.Equal(enc, data) {
			t.Fatalf("re-encoding mismatch: input %x, got %x", data, enc)
		}
		if rlpHash(data) != h.Hash() {
			t.Fatal("hash differs from keccak of the input")
		}
	})
}

// FuzzHeaderFields builds headers from fuzz-derived field values and checks
// that the encoding round-trips and the hash variants ignore exactly their
// excluded fields.
func FuzzHeaderFields(f *testing.F) {
	f.Add([]byte("headerhash"), []byte{1, 2, 3}, uint64(1), uint64(0x42))
	f.Add([]byte{}, []byte{}, uint64(0), uint64(0))

	f.Fuzz(func(t *testing.T, extra, mix []byte, number, nonce uint64) {
		raw := testRawHeader()
		raw.Extra = extra
		raw.MixHash = mix
		raw.Number = new(big.Int).SetUint64(number)
		raw.Nonce = new(big.Int).SetUint64(nonce).FillBytes(make([]byte, NonceLength))
		h, err := NewHeader(raw)
		if err != nil {
			t.Fatal(err)
		}
		dec, err := DecodeHeaderRLP(h.EncodeRLP())
		if err != nil {
			t.Fatal(err)
		}
		if !dec.Equal(h) {
			t.Fatal("round trip changed the hash")
		}

		raw.Extra = append(bytes.Clone(raw.Extra), 0xff)
		raw.MixHash = append(bytes.Clone(raw.MixHash), 0xff)
		raw.Nonce[0] ^= 0xff
		other, err := NewHeader(raw)
		if err != nil {
			t.Fatal(err)
		}
		if other.Hash() == h.Hash() {
			t.Fatal("hash ignored a field change")
		}
		if other.MiningHash() == h.MiningHash() {
			t.Fatal("mining hash ignored the extra data change")
		}
		if other.SigningHash() == h.SigningHash() {
			t.Fatal("signing hash ignored the mix hash and nonce change")
		}
	})
}

func mustFuzzHeader(f *testing.F, raw RawHeader) *Header {
	h, err := NewHeader(raw)
	if err != nil {
		f.Fatal(err)
	}
	return h
}
