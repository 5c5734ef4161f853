package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BlockJSON is a block record in eth_getBlockByNumber form. Only the header
// fields and the block hash are read; absent quantities are zero.
type BlockJSON struct {
	ParentHash   common.Hash   `json:"parentHash"`
	UncleHash    common.Hash   `json:"sha3Uncles"`
	Miner        hexutil.Bytes `json:"miner"`
	StateRoot    common.Hash   `json:"stateRoot"`
	TxRoot       common.Hash   `json:"transactionsRoot"`
	ReceiptsRoot common.Hash   `json:"receiptsRoot"`
	LogsBloom    hexutil.Bytes `json:"logsBloom"`
	Difficulty   *hexutil.Big  `json:"difficulty"`
	Number       *hexutil.Big  `json:"number"`
	GasLimit     *hexutil.Big  `json:"gasLimit"`
	GasUsed      *hexutil.Big  `json:"gasUsed"`
	Timestamp    *hexutil.Big  `json:"timestamp"`
	ExtraData    hexutil.Bytes `json:"extraData"`
	MixHash      hexutil.Bytes `json:"mixHash"`
	Nonce        hexutil.Bytes `json:"nonce"`
	BaseFee      *hexutil.Big  `json:"baseFeePerGas"`
	Hash         *common.Hash  `json:"hash,omitempty"`
}

// ParseBlockJSON decodes a block record. The record may be bare or wrapped
// in a JSON-RPC response object ({"result": {...}}).
func ParseBlockJSON(data []byte) (*BlockJSON, error) {
	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("block json: %w", err)
	}
	if r := bytes.TrimSpace(envelope.Result); len(r) > 0 {
		if bytes.Equal(r, []byte("null")) {
			return nil, fmt.Errorf("block json: null result")
		}
		data = r
	}
	var b BlockJSON
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("block json: %w", err)
	}
	return &b, nil
}

// LoadBlockJSON reads and decodes a block record file.
func LoadBlockJSON(path string) (*BlockJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := ParseBlockJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// RawHeader converts the record into header field values. The bloom is read
// as a big-endian integer, so shorter encodings are left-padded.
func (b *BlockJSON) RawHeader() (RawHeader, error) {
	bloom, err := BytesToBloom(b.LogsBloom)
	if err != nil {
		return RawHeader{}, fmt.Errorf("block json: logsBloom: %w", err)
	}
	return RawHeader{
		ParentHash:  Hash(b.ParentHash),
		UncleHash:   Hash(b.UncleHash),
		Coinbase:    common.CopyBytes(b.Miner),
		StateRoot:   Hash(b.StateRoot),
		TxRoot:      Hash(b.TxRoot),
		ReceiptRoot: Hash(b.ReceiptsRoot),
		Bloom:       bloom,
		Difficulty:  bigOrZero(b.Difficulty),
		Number:      bigOrZero(b.Number),
		GasLimit:    bigOrZero(b.GasLimit),
		GasUsed:     bigOrZero(b.GasUsed),
		Time:        bigOrZero(b.Timestamp),
		Extra:       common.CopyBytes(b.ExtraData),
		MixHash:     common.CopyBytes(b.MixHash),
		Nonce:       common.CopyBytes(b.Nonce),
		BaseFee:     bigOrZero(b.BaseFee),
	}, nil
}

// Header builds the header described by the record.
func (b *BlockJSON) Header() (*Header, error) {
	raw, err := b.RawHeader()
	if err != nil {
		return nil, err
	}
	return NewHeader(raw)
}

// ExpectedHash returns the recorded block hash, if any.
func (b *BlockJSON) ExpectedHash() (Hash, bool) {
	if b.Hash == nil {
		return Hash{}, false
	}
	return Hash(*b.Hash), true
}

func bigOrZero(v *hexutil.Big) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.ToInt())
}
