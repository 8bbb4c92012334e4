package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTable(t *testing.T) {
	for name, want := range map[string]Table{
		"block":       Table_Block,
		"transaction": Table_Transaction,
		"erc20":       Table_Erc20,
		"BLOCK":       Table_Block,
		"Erc20":       Table_Erc20,
	} {
		got, ok := ParseTable(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := ParseTable("uncles")
	assert.False(t, ok)
}

func TestTableString(t *testing.T) {
	assert.Equal(t, "block", Table_Block.String())
	assert.Equal(t, "transaction", Table_Transaction.String())
	assert.Equal(t, "erc20", Table_Erc20.String())
	assert.Equal(t, "unknown", Table(99).String())
}

func TestIsSupportedChainId(t *testing.T) {
	for _, id := range SupportedChainIds {
		assert.True(t, IsSupportedChainId(id), id)
	}
	assert.False(t, IsSupportedChainId(0))
	assert.False(t, IsSupportedChainId(ChainId(31337)))
}

func TestKebabToSnakeCase(t *testing.T) {
	assert.Equal(t, "rpc_url", KebabToSnakeCase("rpc-url"))
	assert.Equal(t, "block_number", KebabToSnakeCase("block-number"))
	assert.Equal(t, "debug", KebabToSnakeCase("debug"))
}
