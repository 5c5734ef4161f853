package types

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/eth2030/headerhash/crypto"
)

// ExtraSeal is the number of extra-data suffix bytes reserved for the
// signer seal.
const ExtraSeal = crypto.SignatureLength

// ErrMissingSeal is returned when a header's extra data is too short to hold
// a seal.
var ErrMissingSeal = errors.New("header: extra data too short for a 65-byte seal")

// SealHeader builds the header described by raw, signs its signing hash with
// key and appends the signature to the extra data. The signing hash does not
// cover extra data, so the sealed header has the same signing hash as the
// unsealed one.
func SealHeader(raw RawHeader, key *ecdsa.PrivateKey) (*Header, error) {
	h, err := NewHeader(raw)
	if err != nil {
		return nil, err
	}
	sighash := h.SigningHash()
	sig, err := crypto.Sign(sighash[:], key)
	if err != nil {
		return nil, fmt.Errorf("header: seal: %w", err)
	}
	sealed := h.clone()
	sealed.extra = make([]byte, 0, len(h.extra)+len(sig))
	sealed.extra = append(append(sealed.extra, h.extra...), sig...)
	// The signing hash is unaffected by the extra data.
	sealed.signingHash.Store(&sighash)
	return sealed, nil
}

// Seal returns the signature suffix of the extra data.
func (h *Header) Seal() ([]byte, error) {
	if len(h.extra) < ExtraSeal {
		return nil, ErrMissingSeal
	}
	return h.Extra()[len(h.extra)-ExtraSeal:], nil
}

// Signer recovers the address that sealed the header.
func (h *Header) Signer() (Address, error) {
	return RecoverSigner(h, nil)
}

// RecoverSigner recovers the address that sealed h, consulting cache when it
// is non-nil.
func RecoverSigner(h *Header, cache *crypto.SigCache) (Address, error) {
	if h == nil {
		return Address{}, errNilHeader
	}
	sig, err := h.Seal()
	if err != nil {
		return Address{}, err
	}
	sighash := h.SigningHash()
	var addr [AddressLength]byte
	if cache != nil {
		addr, err = cache.Recover(sighash[:], sig)
	} else {
		addr, err = crypto.RecoverAddress(sighash[:], sig)
	}
	if err != nil {
		return Address{}, fmt.Errorf("header: recover signer: %w", err)
	}
	return Address(addr), nil
}
