package ethereum

import (
	"encoding/json"
	"math/big"

	"github.com/blocktable/blocktable/pkg/config"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// EthereumQuantity is a JSON-RPC hex quantity (e.g. "0x1b4") decoded to a uint64.
type EthereumQuantity uint64

func (q EthereumQuantity) Value() uint64 {
	return uint64(q)
}

func (q EthereumQuantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexutil.EncodeUint64(uint64(q)))
}

func (q *EthereumQuantity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "quantity is not a JSON string")
	}
	if s == "" {
		*q = 0
		return nil
	}
	v, err := hexutil.DecodeUint64(s)
	if err != nil {
		return errors.Wrapf(err, "failed to decode quantity %q", s)
	}
	*q = EthereumQuantity(v)
	return nil
}

// EthereumHexString is an opaque 0x-prefixed hex string (hashes, addresses,
// bloom filters, calldata). It is carried verbatim, never re-encoded.
type EthereumHexString string

func (s EthereumHexString) Value() string {
	return string(s)
}

// EthereumBigInt is a JSON-RPC hex quantity that may exceed 64 bits
// (difficulty, wei values, gas prices).
type EthereumBigInt big.Int

func (b *EthereumBigInt) Value() *big.Int {
	return (*big.Int)(b)
}

func (b *EthereumBigInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexutil.EncodeBig((*big.Int)(b)))
}

func (b *EthereumBigInt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "quantity is not a JSON string")
	}
	if s == "" {
		*(*big.Int)(b) = big.Int{}
		return nil
	}
	v, err := hexutil.DecodeBig(s)
	if err != nil {
		return errors.Wrapf(err, "failed to decode big quantity %q", s)
	}
	(*big.Int)(b).Set(v)
	return nil
}

// EthereumBlock is a decoded eth_getBlockByNumber response with full
// transaction objects.
type EthereumBlock struct {
	ChainId          config.ChainId         `json:"-"`
	Number           EthereumQuantity       `json:"number"`
	Hash             EthereumHexString      `json:"hash"`
	ParentHash       EthereumHexString      `json:"parentHash"`
	Nonce            EthereumHexString      `json:"nonce"`
	Sha3Uncles       EthereumHexString      `json:"sha3Uncles"`
	LogsBloom        EthereumHexString      `json:"logsBloom"`
	TransactionsRoot EthereumHexString      `json:"transactionsRoot"`
	StateRoot        EthereumHexString      `json:"stateRoot"`
	Miner            EthereumHexString      `json:"miner"`
	Difficulty       EthereumBigInt         `json:"difficulty"`
	TotalDifficulty  EthereumBigInt         `json:"totalDifficulty"`
	Size             EthereumQuantity       `json:"size"`
	ExtraData        EthereumHexString      `json:"extraData"`
	GasLimit         EthereumQuantity       `json:"gasLimit"`
	GasUsed          EthereumQuantity       `json:"gasUsed"`
	Timestamp        EthereumQuantity       `json:"timestamp"`
	Transactions     []*EthereumTransaction `json:"transactions"`
	Uncles           []EthereumHexString    `json:"uncles"`
}

// EthereumTransaction is a decoded transaction object as embedded in a block.
type EthereumTransaction struct {
	Hash             EthereumHexString `json:"hash"`
	Nonce            EthereumQuantity  `json:"nonce"`
	BlockHash        EthereumHexString `json:"blockHash"`
	BlockNumber      EthereumQuantity  `json:"blockNumber"`
	TransactionIndex EthereumQuantity  `json:"transactionIndex"`
	From             EthereumHexString `json:"from"`
	To               EthereumHexString `json:"to"`
	Value            EthereumBigInt    `json:"value"`
	Gas              EthereumQuantity  `json:"gas"`
	GasPrice         EthereumBigInt    `json:"gasPrice"`
	Input            EthereumHexString `json:"input"`
}

// EthereumEventLog is a decoded eth_getLogs entry: indexed topics plus the
// unindexed data payload.
type EthereumEventLog struct {
	Address          EthereumHexString   `json:"address"`
	Topics           []EthereumHexString `json:"topics"`
	Data             EthereumHexString   `json:"data"`
	BlockNumber      EthereumQuantity    `json:"blockNumber"`
	TransactionHash  EthereumHexString   `json:"transactionHash"`
	TransactionIndex EthereumQuantity    `json:"transactionIndex"`
	BlockHash        EthereumHexString   `json:"blockHash"`
	LogIndex         EthereumQuantity    `json:"logIndex"`
	Removed          bool                `json:"removed"`
}
