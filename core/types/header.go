package types

import (
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/eth2030/headerhash/params"
	"github.com/eth2030/headerhash/rlp"
)

// Construction errors. Each wraps rlp.ErrValidation.
var (
	ErrInvalidCoinbase = fmt.Errorf("%w: coinbase must be 20 bytes", rlp.ErrValidation)
	ErrInvalidNonce    = fmt.Errorf("%w: nonce must be 8 bytes or empty", rlp.ErrValidation)
)

// nonceSedes accepts an 8-byte nonce or an empty one.
var nonceSedes = rlp.Binary{Length: NonceLength, AllowEmpty: true}

// RawHeader is the mutable set of field values a Header is built from. A nil
// integer means zero.
//
// The coinbase may be given as 20 raw bytes in Coinbase, as 40 hex
// characters in Coinbase, or as a hex string (optionally 0x-prefixed) in
// CoinbaseHex, which takes precedence when set.
type RawHeader struct {
	ParentHash  Hash
	UncleHash   Hash
	Coinbase    []byte
	CoinbaseHex string
	StateRoot   Hash
	TxRoot      Hash
	ReceiptRoot Hash
	Bloom       Bloom
	Difficulty  *big.Int
	Number      *big.Int
	GasLimit    *big.Int
	GasUsed     *big.Int
	Time        *big.Int
	Extra       []byte
	MixHash     []byte
	Nonce       []byte
	BaseFee     *big.Int
}

// DefaultRawHeader returns a genesis-style RawHeader using the defaults of
// cfg, or of params.DefaultConfig if cfg is nil.
func DefaultRawHeader(cfg *params.NetworkConfig) RawHeader {
	if cfg == nil {
		cfg = params.DefaultConfig()
	}
	raw := RawHeader{
		ParentHash:  Hash(cfg.GenesisPrevHash),
		UncleHash:   EmptyUncleHash,
		Coinbase:    common.CopyBytes(cfg.GenesisCoinbase[:]),
		StateRoot:   EmptyRootHash,
		TxRoot:      EmptyRootHash,
		ReceiptRoot: EmptyRootHash,
		Difficulty:  new(big.Int),
		Number:      new(big.Int),
		GasLimit:    new(big.Int).SetUint64(cfg.GenesisGasLimit),
		GasUsed:     new(big.Int),
		Time:        new(big.Int),
		Extra:       []byte{},
		MixHash:     common.CopyBytes(cfg.GenesisMixHash),
		Nonce:       []byte{},
		BaseFee:     new(big.Int),
	}
	if cfg.GenesisDifficulty != nil {
		raw.Difficulty.Set(cfg.GenesisDifficulty)
	}
	return raw
}

// Header is an immutable block header. Accessors return copies; the three
// hash derivations are computed once and cached.
type Header struct {
	parentHash  Hash
	uncleHash   Hash
	coinbase    Address
	stateRoot   Hash
	txRoot      Hash
	receiptRoot Hash
	bloom       Bloom
	difficulty  *big.Int
	number      *big.Int
	gasLimit    *big.Int
	gasUsed     *big.Int
	time        *big.Int
	extra       []byte
	mixHash     []byte
	nonce       []byte
	baseFee     *big.Int

	// Cache fields.
	hash        atomic.Pointer[Hash]
	miningHash  atomic.Pointer[Hash]
	signingHash atomic.Pointer[Hash]
}

// NewHeader validates and normalizes raw into an immutable Header. All
// slices and integers are deep-copied. Construction is all-or-nothing: a
// malformed coinbase or nonce fails with an rlp.ErrValidation error and a
// negative integer with an rlp.ErrEncoding error.
func NewHeader(raw RawHeader) (*Header, error) {
	coinbase, err := normalizeCoinbase(raw.Coinbase, raw.CoinbaseHex)
	if err != nil {
		return nil, err
	}
	if err := nonceSedes.Validate(raw.Nonce); err != nil {
		return nil, fmt.Errorf("%w: have %d bytes", ErrInvalidNonce, len(raw.Nonce))
	}
	h := &Header{
		parentHash:  raw.ParentHash,
		uncleHash:   raw.UncleHash,
		coinbase:    coinbase,
		stateRoot:   raw.StateRoot,
		txRoot:      raw.TxRoot,
		receiptRoot: raw.ReceiptRoot,
		bloom:       raw.Bloom,
		extra:       copyNonNil(raw.Extra),
		mixHash:     copyNonNil(raw.MixHash),
		nonce:       copyNonNil(raw.Nonce),
	}
	ints := []struct {
		field headerField
		src   *big.Int
		dst   **big.Int
	}{
		{fieldDifficulty, raw.Difficulty, &h.difficulty},
		{fieldNumber, raw.Number, &h.number},
		{fieldGasLimit, raw.GasLimit, &h.gasLimit},
		{fieldGasUsed, raw.GasUsed, &h.gasUsed},
		{fieldTime, raw.Time, &h.time},
		{fieldBaseFee, raw.BaseFee, &h.baseFee},
	}
	for _, in := range ints {
		v, err := copyUint(in.src)
		if err != nil {
			return nil, fmt.Errorf("header: %s: %w", in.field, err)
		}
		*in.dst = v
	}
	return h, nil
}

func normalizeCoinbase(b []byte, hexStr string) (Address, error) {
	switch {
	case hexStr != "":
		dec, err := hexutil.Decode(ensure0x(hexStr))
		if err != nil {
			return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidCoinbase, hexStr, err)
		}
		b = dec
	case len(b) == 2*AddressLength:
		dec, err := hexutil.Decode("0x" + string(b))
		if err != nil {
			return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidCoinbase, b, err)
		}
		b = dec
	}
	if len(b) != AddressLength {
		return Address{}, fmt.Errorf("%w: have %d bytes", ErrInvalidCoinbase, len(b))
	}
	return BytesToAddress(b), nil
}

func ensure0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return "0x" + s[2:]
	}
	return "0x" + s
}

func copyUint(n *big.Int) (*big.Int, error) {
	if n == nil {
		return new(big.Int), nil
	}
	if n.Sign() < 0 {
		return nil, rlp.ErrNegativeInt
	}
	return new(big.Int).Set(n), nil
}

// copyNonNil copies b, mapping nil to an empty slice.
func copyNonNil(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// ParentHash returns the hash of the parent block.
func (h *Header) ParentHash() Hash { return h.parentHash }

// UncleHash returns the hash of the RLP-encoded uncle list.
func (h *Header) UncleHash() Hash { return h.uncleHash }

// Coinbase returns the 20-byte beneficiary address.
func (h *Header) Coinbase() Address { return h.coinbase }

// StateRoot returns the state trie root.
func (h *Header) StateRoot() Hash { return h.stateRoot }

// TxRoot returns the transaction trie root.
func (h *Header) TxRoot() Hash { return h.txRoot }

// ReceiptRoot returns the receipt trie root.
func (h *Header) ReceiptRoot() Hash { return h.receiptRoot }

// Bloom returns the logs bloom filter.
func (h *Header) Bloom() Bloom { return h.bloom }

func (h *Header) Difficulty() *big.Int { return new(big.Int).Set(h.difficulty) }
func (h *Header) Number() *big.Int     { return new(big.Int).Set(h.number) }
func (h *Header) GasLimit() *big.Int   { return new(big.Int).Set(h.gasLimit) }
func (h *Header) GasUsed() *big.Int    { return new(big.Int).Set(h.gasUsed) }
func (h *Header) Time() *big.Int       { return new(big.Int).Set(h.time) }
func (h *Header) BaseFee() *big.Int    { return new(big.Int).Set(h.baseFee) }
func (h *Header) Extra() []byte        { return common.CopyBytes(h.extra) }
func (h *Header) MixHash() []byte      { return common.CopyBytes(h.mixHash) }
func (h *Header) Nonce() []byte        { return common.CopyBytes(h.nonce) }

// Raw returns a deep copy of the header's field values. NewHeader(h.Raw())
// yields a header equal to h.
func (h *Header) Raw() RawHeader {
	return RawHeader{
		ParentHash:  h.parentHash,
		UncleHash:   h.uncleHash,
		Coinbase:    common.CopyBytes(h.coinbase[:]),
		StateRoot:   h.stateRoot,
		TxRoot:      h.txRoot,
		ReceiptRoot: h.receiptRoot,
		Bloom:       h.bloom,
		Difficulty:  h.Difficulty(),
		Number:      h.Number(),
		GasLimit:    h.GasLimit(),
		GasUsed:     h.GasUsed(),
		Time:        h.Time(),
		Extra:       copyNonNil(h.extra),
		MixHash:     copyNonNil(h.mixHash),
		Nonce:       copyNonNil(h.nonce),
		BaseFee:     h.BaseFee(),
	}
}

// clone returns a shallow copy of h with empty hash caches. Field values are
// never mutated in place, so sharing them is safe.
func (h *Header) clone() *Header {
	return &Header{
		parentHash:  h.parentHash,
		uncleHash:   h.uncleHash,
		coinbase:    h.coinbase,
		stateRoot:   h.stateRoot,
		txRoot:      h.txRoot,
		receiptRoot: h.receiptRoot,
		bloom:       h.bloom,
		difficulty:  h.difficulty,
		number:      h.number,
		gasLimit:    h.gasLimit,
		gasUsed:     h.gasUsed,
		time:        h.time,
		extra:       h.extra,
		mixHash:     h.mixHash,
		nonce:       h.nonce,
		baseFee:     h.baseFee,
	}
}

// Hash returns the keccak256 hash of the RLP encoding of all 16 fields.
func (h *Header) Hash() Hash {
	return h.cachedHash(&h.hash, noFields)
}

// MiningHash returns the hash of the header without mix hash and nonce
// (14 fields). It is the proof-of-work input, known before the nonce.
func (h *Header) MiningHash() Hash {
	return h.cachedHash(&h.miningHash, miningExcluded)
}

// SigningHash returns the hash of the header without extra data (15 fields).
func (h *Header) SigningHash() Hash {
	return h.cachedHash(&h.signingHash, signingExcluded)
}

func (h *Header) cachedHash(cache *atomic.Pointer[Hash], skip fieldSet) Hash {
	if cached := cache.Load(); cached != nil {
		return *cached
	}
	hash := rlpHash(h.encodeFields(skip))
	cache.Store(&hash)
	return hash
}

// HexHash returns the 0x-prefixed hex form of Hash.
func (h *Header) HexHash() string { return h.Hash().Hex() }

// Equal reports whether h and other have the same hash. Header identity is
// hash-based: field values are not compared.
func (h *Header) Equal(other *Header) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.Hash() == other.Hash()
}

// String implements fmt.Stringer with a short debug form such as
// <Header(#0 0xd4e56740)>.
func (h *Header) String() string {
	hash := h.Hash()
	return fmt.Sprintf("<Header(#%s %s)>", h.number, hexutil.Encode(hash[:4]))
}

// errNilHeader is returned by helpers that require a header.
var errNilHeader = errors.New("header: nil header")
