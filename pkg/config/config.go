package config

import (
	"slices"
	"strings"
)

type ChainId uint

const (
	ChainId_EthereumMainnet ChainId = 1
	ChainId_EthereumHolesky ChainId = 17000
	ChainId_EthereumHoodi   ChainId = 560048
)

var (
	SupportedChainIds = []ChainId{
		ChainId_EthereumMainnet,
		ChainId_EthereumHolesky,
		ChainId_EthereumHoodi,
	}
)

// IsSupportedChainId reports whether id is a chain the scanner understands.
func IsSupportedChainId(id ChainId) bool {
	return slices.Contains(SupportedChainIds, id)
}

// Table identifies the traversal mode of a record cursor. The value is fixed
// at cursor construction and selects which row shape the cursor iterates.
type Table int

const (
	Table_Block Table = iota
	Table_Transaction
	Table_Erc20
)

func (t Table) String() string {
	switch t {
	case Table_Block:
		return "block"
	case Table_Transaction:
		return "transaction"
	case Table_Erc20:
		return "erc20"
	}
	return "unknown"
}

// ParseTable maps a table name to its Table value. The bool result reports
// whether the name is a known table.
func ParseTable(name string) (Table, bool) {
	switch strings.ToLower(name) {
	case "block":
		return Table_Block, true
	case "transaction":
		return Table_Transaction, true
	case "erc20":
		return Table_Erc20, true
	}
	return Table_Block, false
}

// KebabToSnakeCase converts a kebab-case flag name to the snake_case key
// viper uses for env var binding.
func KebabToSnakeCase(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}
