package types

import (
	"bytes"
	"errors"
	"testing"

	"github.com/eth2030/headerhash/crypto"
)

const testKeyHex = "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"

func TestSealHeader(t *testing.T) {
	key, err := crypto.HexToECDSA(testKeyHex)
	if err != nil {
		t.Fatal(err)
	}
	raw := testRawHeader()
	unsealed := mustHeader(t, raw)

	sealed, err := SealHeader(raw, key)
	if err != nil {
		t.Fatal(err)
	}
	if sealed.SigningHash() != unsealed.SigningHash() {
		t.Fatal("sealing changed the signing hash")
	}
	// The stored signing hash matches a fresh computation.
	if rlpHash(sealed.encodeFields(signingExcluded)) != unsealed.SigningHash() {
		t.Fatal("cached signing hash is stale")
	}
	if sealed.Hash() == unsealed.Hash() {
		t.Fatal("sealing should change the header hash")
	}
	extra := sealed.Extra()
	if len(extra) != len(raw.Extra)+ExtraSeal || !bytes.HasPrefix(extra, raw.Extra) {
		t.Fatalf("sealed extra data is %d bytes", len(extra))
	}

	want := Address(crypto.PubkeyToAddress(key.PublicKey))
	if want != HexToAddress("0x970e8128ab834e8eac17ab8e3812f010678cf791") {
		t.Fatalf("test key address = %s", want)
	}
	signer, err := sealed.Signer()
	if err != nil {
		t.Fatal(err)
	}
	if signer != want {
		t.Fatalf("signer = %s, want %s", signer, want)
	}

	// A decoded copy recovers the same signer.
	dec, err := DecodeHeaderRLP(sealed.EncodeRLP())
	if err != nil {
		t.Fatal(err)
	}
	if signer, err := dec.Signer(); err != nil || signer != want {
		t.Fatalf("decoded signer = %s, %v", signer, err)
	}
}

func TestRecoverSignerCache(t *testing.T) {
	key, err := crypto.HexToECDSA(testKeyHex)
	if err != nil {
		t.Fatal(err)
	}
	sealed, err := SealHeader(testRawHeader(), key)
	if err != nil {
		t.Fatal(err)
	}
	cache := crypto.NewSigCache(16)
	for i := 0; i < 3; i++ {
		signer, err := RecoverSigner(sealed, cache)
		if err != nil {
			t.Fatal(err)
		}
		if signer != Address(crypto.PubkeyToAddress(key.PublicKey)) {
			t.Fatalf("signer = %s", signer)
		}
	}
	stats := cache.Stats()
	if stats.Misses != 1 || stats.Hits != 2 || cache.Len() != 1 {
		t.Fatalf("cache stats = %+v, len %d", stats, cache.Len())
	}
}

func TestSignerMissingSeal(t *testing.T) {
	h := mustHeader(t, testRawHeader())
	if _, err := h.Seal(); !errors.Is(err, ErrMissingSeal) {
		t.Fatalf("Seal: got %v, want ErrMissingSeal", err)
	}
	if _, err := h.Signer(); !errors.Is(err, ErrMissingSeal) {
		t.Fatalf("Signer: got %v, want ErrMissingSeal", err)
	}
	if _, err := RecoverSigner(nil, nil); err == nil {
		t.Fatal("expected error for nil header")
	}
}

func TestSignerTamperedSeal(t *testing.T) {
	key, err := crypto.HexToECDSA(testKeyHex)
	if err != nil {
		t.Fatal(err)
	}
	sealed, err := SealHeader(testRawHeader(), key)
	if err != nil {
		t.Fatal(err)
	}
	raw := sealed.Raw()
	copy(raw.Extra[len(raw.Extra)-ExtraSeal:], make([]byte, ExtraSeal))
	if _, err := mustHeader(t, raw).Signer(); err == nil {
		t.Fatal("expected recovery error")
	}

	// Changing a signed field yields a different signer.
	raw = sealed.Raw()
	raw.GasUsed.SetInt64(1)
	signer, err := mustHeader(t, raw).Signer()
	if err == nil && signer == Address(crypto.PubkeyToAddress(key.PublicKey)) {
		t.Fatal("tampered header recovered the original signer")
	}
}
