package types

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ToDict returns a human-readable projection of the header keyed by field
// name. Hashes, the address and byte strings are 0x-prefixed hex, integers
// are decimal strings and the bloom is its fixed-width 256-byte hex form.
// The projection is for display only and plays no part in hashing.
func (h *Header) ToDict() map[string]string {
	d := make(map[string]string, numHeaderFields)
	for f := headerField(0); f < numHeaderFields; f++ {
		d[f.String()] = h.displayField(f)
	}
	return d
}

func (h *Header) displayField(f headerField) string {
	switch f {
	case fieldParentHash:
		return h.parentHash.Hex()
	case fieldUncleHash:
		return h.uncleHash.Hex()
	case fieldCoinbase:
		return h.coinbase.Hex()
	case fieldStateRoot:
		return h.stateRoot.Hex()
	case fieldTxRoot:
		return h.txRoot.Hex()
	case fieldReceiptRoot:
		return h.receiptRoot.Hex()
	case fieldBloom:
		return h.bloom.Hex()
	case fieldDifficulty:
		return h.difficulty.String()
	case fieldNumber:
		return h.number.String()
	case fieldGasLimit:
		return h.gasLimit.String()
	case fieldGasUsed:
		return h.gasUsed.String()
	case fieldTime:
		return h.time.String()
	case fieldExtra:
		return hexutil.Encode(h.extra)
	case fieldMixHash:
		return hexutil.Encode(h.mixHash)
	case fieldNonce:
		return hexutil.Encode(h.nonce)
	case fieldBaseFee:
		return h.baseFee.String()
	default:
		return ""
	}
}
