package types

import (
	"fmt"
	"math/big"

	"github.com/eth2030/headerhash/crypto"
	"github.com/eth2030/headerhash/rlp"
)

// headerField identifies a header field by its position in the canonical
// encoding. The order is part of the wire format.
type headerField uint8

const (
	fieldParentHash headerField = iota
	fieldUncleHash
	fieldCoinbase
	fieldStateRoot
	fieldTxRoot
	fieldReceiptRoot
	fieldBloom
	fieldDifficulty
	fieldNumber
	fieldGasLimit
	fieldGasUsed
	fieldTime
	fieldExtra
	fieldMixHash
	fieldNonce
	fieldBaseFee

	numHeaderFields
)

var headerFieldNames = [numHeaderFields]string{
	"parent_hash",
	"uncles_hash",
	"coinbase",
	"state_root",
	"transaction_root",
	"receipts_root",
	"bloom",
	"difficulty",
	"number",
	"gas_limit",
	"gas_used",
	"timestamp",
	"extra_data",
	"mix_hash",
	"nonce",
	"base_fee_per_gas",
}

func (f headerField) String() string {
	if f < numHeaderFields {
		return headerFieldNames[f]
	}
	return fmt.Sprintf("field(%d)", uint8(f))
}

// fieldSet is a bitmask of header fields.
type fieldSet uint32

func fields(fs ...headerField) fieldSet {
	var s fieldSet
	for _, f := range fs {
		s |= 1 << f
	}
	return s
}

func (s fieldSet) has(f headerField) bool { return s&(1<<f) != 0 }

// Field exclusion sets for the hash variants.
var (
	noFields        fieldSet
	miningExcluded  = fields(fieldMixHash, fieldNonce)
	signingExcluded = fields(fieldExtra)
)

// EncodeRLP returns the canonical RLP encoding of all 16 header fields.
func (h *Header) EncodeRLP() []byte {
	return h.encodeFields(noFields)
}

// encodeFields encodes the header fields not in skip, in canonical order,
// as one RLP list.
func (h *Header) encodeFields(skip fieldSet) []byte {
	payload := make([]byte, 0, h.payloadSizeHint())
	for f := headerField(0); f < numHeaderFields; f++ {
		if skip.has(f) {
			continue
		}
		payload = h.appendField(payload, f)
	}
	return rlp.WrapList(payload)
}

func (h *Header) payloadSizeHint() int {
	// 6 hashes, coinbase and bloom with their prefixes, plus room for the
	// integers and byte strings.
	return 6*33 + 21 + 259 + 6*33 + len(h.extra) + len(h.mixHash) + 2*9
}

func (h *Header) appendField(dst []byte, f headerField) []byte {
	switch f {
	case fieldParentHash:
		return rlp.AppendBytes(dst, h.parentHash[:])
	case fieldUncleHash:
		return rlp.AppendBytes(dst, h.uncleHash[:])
	case fieldCoinbase:
		return rlp.AppendBytes(dst, h.coinbase[:])
	case fieldStateRoot:
		return rlp.AppendBytes(dst, h.stateRoot[:])
	case fieldTxRoot:
		return rlp.AppendBytes(dst, h.txRoot[:])
	case fieldReceiptRoot:
		return rlp.AppendBytes(dst, h.receiptRoot[:])
	case fieldBloom:
		return rlp.AppendBytes(dst, h.bloom[:])
	case fieldDifficulty:
		return appendUint(dst, h.difficulty)
	case fieldNumber:
		return appendUint(dst, h.number)
	case fieldGasLimit:
		return appendUint(dst, h.gasLimit)
	case fieldGasUsed:
		return appendUint(dst, h.gasUsed)
	case fieldTime:
		return appendUint(dst, h.time)
	case fieldExtra:
		return rlp.AppendBytes(dst, h.extra)
	case fieldMixHash:
		return rlp.AppendBytes(dst, h.mixHash)
	case fieldNonce:
		return rlp.AppendBytes(dst, h.nonce)
	case fieldBaseFee:
		return appendUint(dst, h.baseFee)
	default:
		panic(fmt.Sprintf("header: unknown field %d", f))
	}
}

// appendUint appends the minimal encoding of n, which NewHeader guarantees
// is non-nil and non-negative.
func appendUint(dst []byte, n *big.Int) []byte {
	return rlp.AppendBytes(dst, n.Bytes())
}

func rlpHash(enc []byte) Hash {
	return Hash(crypto.Keccak256Hash(enc))
}

var (
	hashSedes    = rlp.Binary{Length: HashLength}
	addressSedes = rlp.Binary{Length: AddressLength}
	bloomSedes   = rlp.Binary{Length: BloomLength}
)

// DecodeHeaderRLP decodes a canonical 16-field RLP header. Decoding is strict:
// non-canonical RLP, wrong fixed field lengths, non-minimal integers, missing
// or extra fields and trailing bytes are all rejected. Errors name the
// offending field.
func DecodeHeaderRLP(data []byte) (*Header, error) {
	s := rlp.NewStreamFromBytes(data)
	if _, err := s.List(); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	var raw RawHeader
	hashes := []hashTarget{
		{fieldParentHash, &raw.ParentHash},
		{fieldUncleHash, &raw.UncleHash},
	}
	if err := decodeHashes(s, hashes); err != nil {
		return nil, err
	}
	coinbase, err := addressSedes.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("header: %s: %w", fieldCoinbase, err)
	}
	raw.Coinbase = coinbase
	roots := []hashTarget{
		{fieldStateRoot, &raw.StateRoot},
		{fieldTxRoot, &raw.TxRoot},
		{fieldReceiptRoot, &raw.ReceiptRoot},
	}
	if err := decodeHashes(s, roots); err != nil {
		return nil, err
	}
	bloom, err := bloomSedes.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("header: %s: %w", fieldBloom, err)
	}
	copy(raw.Bloom[:], bloom)

	ints := []struct {
		field headerField
		dst   **big.Int
	}{
		{fieldDifficulty, &raw.Difficulty},
		{fieldNumber, &raw.Number},
		{fieldGasLimit, &raw.GasLimit},
		{fieldGasUsed, &raw.GasUsed},
		{fieldTime, &raw.Time},
	}
	for _, in := range ints {
		if *in.dst, err = s.BigInt(); err != nil {
			return nil, fmt.Errorf("header: %s: %w", in.field, err)
		}
	}
	if raw.Extra, err = s.Bytes(); err != nil {
		return nil, fmt.Errorf("header: %s: %w", fieldExtra, err)
	}
	if raw.MixHash, err = s.Bytes(); err != nil {
		return nil, fmt.Errorf("header: %s: %w", fieldMixHash, err)
	}
	if raw.Nonce, err = nonceSedes.Decode(s); err != nil {
		return nil, fmt.Errorf("header: %s: %w", fieldNonce, err)
	}
	if raw.BaseFee, err = s.BigInt(); err != nil {
		return nil, fmt.Errorf("header: %s: %w", fieldBaseFee, err)
	}

	if err := s.ListEnd(); err != nil {
		return nil, fmt.Errorf("header: too many fields: %w", err)
	}
	if !s.Done() {
		return nil, fmt.Errorf("header: %w", rlp.ErrTrailingBytes)
	}
	// NewHeader copies every slice, so the result does not alias data.
	return NewHeader(raw)
}

// hashTarget pairs a 32-byte field with its destination.
type hashTarget struct {
	field headerField
	dst   *Hash
}

func decodeHashes(s *rlp.Stream, dsts []hashTarget) error {
	for _, d := range dsts {
		b, err := hashSedes.Decode(s)
		if err != nil {
			return fmt.Errorf("header: %s: %w", d.field, err)
		}
		copy(d.dst[:], b)
	}
	return nil
}
