// Package erc20 decodes ERC-20 Transfer events from raw logs. The Transfer
// event has no fixed wire schema: any of its three arguments may be indexed
// (a topic) or packed into the data payload, so decoding normalizes field
// placement before extraction.
package erc20

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/blocktable/blocktable/pkg/clients/ethereum"
	"github.com/blocktable/blocktable/pkg/schema"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// TransferEventSignature is the canonical event declaration whose Keccak-256
// hash appears as topic[0] of every conforming transfer log.
const TransferEventSignature = "Transfer(address,address,uint256)"

// TransferEventTopic is 0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef.
var TransferEventTopic = hexutil.Encode(crypto.Keccak256([]byte(TransferEventSignature)))

const topicWordHexLength = 64

// TransferLog is a transfer event with indexed/unindexed field placement
// normalized: From and To are full 32-byte topic words, Data is the single
// 32-byte amount word. Field value conversion is deferred to access time.
type TransferLog struct {
	Address         string
	From            string
	To              string
	Data            string
	TransactionHash string
	BlockNumber     uint64
}

// DecodeTransfer matches lg against the transfer signature and normalizes its
// field placement. ok is false when the log does not conform: a different
// topic[0], or a topic/data-word count that cannot hold the event's four
// fields. The word-count guard is a load-bearing heuristic against unrelated
// events sharing the signature hash; keep the formula as is.
func DecodeTransfer(lg *ethereum.EthereumEventLog) (*TransferLog, bool) {
	if len(lg.Topics) == 0 || !strings.EqualFold(lg.Topics[0].Value(), TransferEventTopic) {
		return nil, false
	}

	topics := make([]string, len(lg.Topics))
	for i, t := range lg.Topics {
		topics[i] = t.Value()
	}
	data := lg.Data.Value()

	if len(topics) < 3 && len(topics)+(len(data)-2)/topicWordHexLength != 4 {
		return nil, false
	}

	// Unindexed fields live in the data payload as 32-byte-aligned words.
	// Pop words off the front until the two address topics are present; the
	// next word is the amount.
	if len(topics) < 3 {
		words := data[2:]
		for len(topics) < 3 {
			w := nextWord(words)
			topics = append(topics, "0x"+w)
			words = words[len(w):]
		}
		data = "0x" + nextWord(words)
	}

	return &TransferLog{
		Address:         lg.Address.Value(),
		From:            topics[1],
		To:              topics[2],
		Data:            data,
		TransactionHash: lg.TransactionHash.Value(),
		BlockNumber:     lg.BlockNumber.Value(),
	}, true
}

func nextWord(s string) string {
	if len(s) > topicWordHexLength {
		return s[:topicWordHexLength]
	}
	return s
}

// TokenLabel maps a token contract address to a human-readable label.
// Unrecognized contracts format as ERC20(<address>).
func TokenLabel(address string) string {
	if symbol, ok := tokenLookup[strings.ToLower(address)]; ok {
		return symbol
	}
	return fmt.Sprintf("ERC20(%s)", address)
}

// H32ToH20 extracts the low 20 bytes of a 32-byte hex word, i.e. the address
// packed into a topic.
func H32ToH20(h32 string) string {
	return "0x" + h32[len(h32)-(schema.H20ByteHashStringLength-2):]
}

// HexToFloat64 converts a 0x-prefixed hex quantity to a floating value.
func HexToFloat64(hexValue string) (float64, error) {
	s := strings.TrimPrefix(hexValue, "0x")
	i, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return 0, errors.Errorf("invalid hex quantity %q", hexValue)
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	return f, nil
}

// tokenLookup maps well-known mainnet token contract addresses (lowercase)
// to their symbols. Initialized once; read-only afterwards.
var tokenLookup = map[string]string{
	"0xdac17f958d2ee523a2206206994597c13d831ec7": "USDT",
	"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": "USDC",
	"0x6b175474e89094c44da98b954eedeac495271d0f": "DAI",
	"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2": "WETH",
	"0x514910771af9ca656af840dff83e8264ecf986ca": "LINK",
	"0x9f8f72aa9304c8b593d555f12ef6589cc3a579a2": "MKR",
	"0x0d8775f648430679a709e98d2b0cb6250d2887ef": "BAT",
	"0xe41d2489571d322189246dafa5ebde1f4699f498": "ZRX",
	"0xd26114cd6ee289accf82350c8d8487fefb8ebcd5": "OMG",
	"0xb8c77482e45f1f44de1745f52c74426c631bdd52": "BNB",
	"0xf230b790e05390fc8295f4d3f60332c93bed42e2": "TRX",
	"0x86fa049857e0209aa7d9e616f7eb3b3b78ecfdb0": "EOS",
	"0x1f9840a85d5af5bf1d1762f925bdaddc4201f984": "UNI",
	"0x7fc66500c84a76ad7e9c93437bfc5ac33e2ddae9": "AAVE",
	"0x95ad61b0a150d79219dcf64e1e6cc01f0b64c4ce": "SHIB",
}
