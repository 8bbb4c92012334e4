package ethereum

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEthereumQuantity_UnmarshalJSON(t *testing.T) {
	var q EthereumQuantity
	require.NoError(t, json.Unmarshal([]byte(`"0x1b4"`), &q))
	assert.Equal(t, uint64(436), q.Value())

	require.NoError(t, json.Unmarshal([]byte(`""`), &q))
	assert.Equal(t, uint64(0), q.Value())

	assert.Error(t, json.Unmarshal([]byte(`"zz"`), &q))
	assert.Error(t, json.Unmarshal([]byte(`436`), &q))
}

func TestEthereumQuantity_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(EthereumQuantity(436))
	require.NoError(t, err)
	assert.Equal(t, `"0x1b4"`, string(out))
}

func TestEthereumBigInt_UnmarshalJSON(t *testing.T) {
	var b EthereumBigInt
	require.NoError(t, json.Unmarshal([]byte(`"0xde0b6b3a7640000"`), &b))
	assert.Equal(t, 0, b.Value().Cmp(big.NewInt(1000000000000000000)))

	assert.Error(t, json.Unmarshal([]byte(`"0xzz"`), &b))
}

func TestEthereumBlock_UnmarshalJSON(t *testing.T) {
	payload := []byte(`{
		"number": "0x1b4",
		"hash": "0xe670ec64341771606e55d6b4ca35a1a6b75ee3d5145a99d05921026d1527331",
		"parentHash": "0x9646252be9520f6e71339a8df9c55e4d7619deeb018d2a3f2d21fc165dde5eb5",
		"nonce": "0xe04d296d2460cfb8",
		"sha3Uncles": "0x1dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d49347",
		"logsBloom": "0x00",
		"transactionsRoot": "0x56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421",
		"stateRoot": "0xd5855eb08b3387c0af375e9cdb6acfc05eb8f519e419b874b6ff2ffda7ed1dff",
		"miner": "0x4e65fda2159562a496f9f3522f89122a3088497a",
		"difficulty": "0x27f07",
		"totalDifficulty": "0x27f07",
		"size": "0x27f07",
		"extraData": "0x",
		"gasLimit": "0x9f759",
		"gasUsed": "0x9f759",
		"timestamp": "0x54e34e8e",
		"transactions": [{
			"hash": "0xc6ef2fc5426d6ad6fd9e2a26abeab0aa2411b7ab17f30a99d3cb96aed1d1055b",
			"nonce": "0x0",
			"blockHash": "0xe670ec64341771606e55d6b4ca35a1a6b75ee3d5145a99d05921026d1527331",
			"blockNumber": "0x1b4",
			"transactionIndex": "0x0",
			"from": "0x407d73d8a49eeb85d32cf465507dd71d507100c1",
			"to": "0x85h43d8a49eeb85d32cf465507dd71d507100c1",
			"value": "0x7f110",
			"gas": "0x7f110",
			"gasPrice": "0x09184e72a000",
			"input": "0x603880600c6000396000f300603880600c6000396000f3603880600c6000396000f360"
		}],
		"uncles": ["0x1606e5", "0xd5145a9"]
	}`)

	var block EthereumBlock
	require.NoError(t, json.Unmarshal(payload, &block))

	assert.Equal(t, uint64(436), block.Number.Value())
	assert.Equal(t, "0x4e65fda2159562a496f9f3522f89122a3088497a", block.Miner.Value())
	assert.Equal(t, int64(163591), block.Difficulty.Value().Int64())
	assert.Equal(t, uint64(1424182926), block.Timestamp.Value())
	require.Len(t, block.Transactions, 1)
	assert.Equal(t, uint64(0), block.Transactions[0].Nonce.Value())
	assert.Equal(t, int64(520464), block.Transactions[0].Value.Value().Int64())
	require.Len(t, block.Uncles, 2)
	assert.Equal(t, "0x1606e5", block.Uncles[0].Value())
}

func TestEthereumEventLog_UnmarshalJSON(t *testing.T) {
	payload := []byte(`{
		"address": "0xdac17f958d2ee523a2206206994597c13d831ec7",
		"topics": [
			"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
			"0x000000000000000000000000aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
		],
		"data": "0x05",
		"blockNumber": "0x10",
		"transactionHash": "0xfeed",
		"transactionIndex": "0x2",
		"blockHash": "0xbead",
		"logIndex": "0x0",
		"removed": false
	}`)

	var lg EthereumEventLog
	require.NoError(t, json.Unmarshal(payload, &lg))
	assert.Equal(t, "0xdac17f958d2ee523a2206206994597c13d831ec7", lg.Address.Value())
	require.Len(t, lg.Topics, 2)
	assert.Equal(t, uint64(16), lg.BlockNumber.Value())
	assert.Equal(t, uint64(2), lg.TransactionIndex.Value())
	assert.False(t, lg.Removed)
}
