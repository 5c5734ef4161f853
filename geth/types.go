// Package geth converts between headerhash's header record and
// go-ethereum's header type. It is the bridge used to cross-check hashes
// against go-ethereum's own encoder.
package geth

import (
	"errors"
	"fmt"
	"math/big"

	gethcommon "github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/eth2030/headerhash/core/types"
)

var (
	// ErrNotRepresentable is returned when a header cannot be expressed in
	// the other type without losing information.
	ErrNotRepresentable = errors.New("geth: header not representable")

	errNilHeader = errors.New("geth: nil header")
)

// ToGethAddress converts an Address to a go-ethereum Address.
func ToGethAddress(a types.Address) gethcommon.Address {
	return gethcommon.Address(a)
}

// FromGethAddress converts a go-ethereum Address to an Address.
func FromGethAddress(a gethcommon.Address) types.Address {
	return types.Address(a)
}

// ToGethHash converts a Hash to a go-ethereum Hash.
func ToGethHash(h types.Hash) gethcommon.Hash {
	return gethcommon.Hash(h)
}

// FromGethHash converts a go-ethereum Hash to a Hash.
func FromGethHash(h gethcommon.Hash) types.Hash {
	return types.Hash(h)
}

// ToUint256 converts a non-negative *big.Int to *uint256.Int. It reports
// false if the value does not fit in 256 bits.
func ToUint256(b *big.Int) (*uint256.Int, bool) {
	if b == nil {
		return new(uint256.Int), true
	}
	u, overflow := uint256.FromBig(b)
	return u, !overflow && b.Sign() >= 0
}

// FromUint256 converts *uint256.Int to *big.Int.
func FromUint256(u *uint256.Int) *big.Int {
	if u == nil {
		return new(big.Int)
	}
	return u.ToBig()
}

// ToGethHeader converts h into a go-ethereum header carrying a base fee.
// go-ethereum stores the mix hash and nonce in fixed arrays and the gas and
// time fields as uint64, so headers with an empty nonce, a mix hash that is
// not 32 bytes, or oversized gas or time values are rejected.
func ToGethHeader(h *types.Header) (*gethtypes.Header, error) {
	if h == nil {
		return nil, errNilHeader
	}
	mix, nonce := h.MixHash(), h.Nonce()
	if len(mix) != gethcommon.HashLength {
		return nil, fmt.Errorf("%w: mix hash is %d bytes", ErrNotRepresentable, len(mix))
	}
	if len(nonce) != types.NonceLength {
		return nil, fmt.Errorf("%w: nonce is %d bytes", ErrNotRepresentable, len(nonce))
	}
	gasLimit, err := toUint64("gas_limit", h.GasLimit())
	if err != nil {
		return nil, err
	}
	gasUsed, err := toUint64("gas_used", h.GasUsed())
	if err != nil {
		return nil, err
	}
	time, err := toUint64("timestamp", h.Time())
	if err != nil {
		return nil, err
	}
	if _, ok := ToUint256(h.BaseFee()); !ok {
		return nil, fmt.Errorf("%w: base fee exceeds 256 bits", ErrNotRepresentable)
	}
	gh := &gethtypes.Header{
		ParentHash:  ToGethHash(h.ParentHash()),
		UncleHash:   ToGethHash(h.UncleHash()),
		Coinbase:    ToGethAddress(h.Coinbase()),
		Root:        ToGethHash(h.StateRoot()),
		TxHash:      ToGethHash(h.TxRoot()),
		ReceiptHash: ToGethHash(h.ReceiptRoot()),
		Bloom:       gethtypes.Bloom(h.Bloom()),
		Difficulty:  h.Difficulty(),
		Number:      h.Number(),
		GasLimit:    gasLimit,
		GasUsed:     gasUsed,
		Time:        time,
		Extra:       h.Extra(),
		MixDigest:   gethcommon.BytesToHash(mix),
		BaseFee:     h.BaseFee(),
	}
	copy(gh.Nonce[:], nonce)
	return gh, nil
}

// FromGethHeader converts a go-ethereum header into a header record. The
// geth header must carry a base fee and none of the later optional fields.
func FromGethHeader(gh *gethtypes.Header) (*types.Header, error) {
	if gh == nil {
		return nil, errNilHeader
	}
	if gh.BaseFee == nil {
		return nil, fmt.Errorf("%w: missing base fee", ErrNotRepresentable)
	}
	if gh.WithdrawalsHash != nil || gh.BlobGasUsed != nil || gh.ExcessBlobGas != nil ||
		gh.ParentBeaconRoot != nil || gh.RequestsHash != nil {
		return nil, fmt.Errorf("%w: post-London optional fields set", ErrNotRepresentable)
	}
	return types.NewHeader(types.RawHeader{
		ParentHash:  FromGethHash(gh.ParentHash),
		UncleHash:   FromGethHash(gh.UncleHash),
		Coinbase:    gh.Coinbase.Bytes(),
		StateRoot:   FromGethHash(gh.Root),
		TxRoot:      FromGethHash(gh.TxHash),
		ReceiptRoot: FromGethHash(gh.ReceiptHash),
		Bloom:       types.Bloom(gh.Bloom),
		Difficulty:  gh.Difficulty,
		Number:      gh.Number,
		GasLimit:    new(big.Int).SetUint64(gh.GasLimit),
		GasUsed:     new(big.Int).SetUint64(gh.GasUsed),
		Time:        new(big.Int).SetUint64(gh.Time),
		Extra:       gh.Extra,
		MixHash:     gh.MixDigest.Bytes(),
		Nonce:       gh.Nonce[:],
		BaseFee:     gh.BaseFee,
	})
}

func toUint64(field string, n *big.Int) (uint64, error) {
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s %s exceeds 64 bits", ErrNotRepresentable, field, n)
	}
	return n.Uint64(), nil
}
