// Package schema declares the fixed columnar schemas of the three tables
// (block, transaction, erc20). Column order is part of the external contract:
// reordering requires a SchemaVersion bump.
package schema

// SchemaVersion tracks the external column-order contract.
const SchemaVersion = 1

// Hex string lengths including the 0x prefix.
const (
	H32ByteHashStringLength = 2 + 32*2 // 32-byte hashes and topics
	H20ByteHashStringLength = 2 + 20*2 // addresses
	H8BytePaddingLength     = 2 + 8*2  // block nonce
	H256BloomStringLength   = 2 + 256*2
)

// ColumnHandle describes one column of a table schema. OrdinalPosition is the
// column's fixed position in the declared schema, independent of which subset
// a query requests.
type ColumnHandle struct {
	Name            string
	Type            *ColumnType
	OrdinalPosition int
}

func newHandles(names []string, types []*ColumnType) []*ColumnHandle {
	handles := make([]*ColumnHandle, len(names))
	for i := range names {
		handles[i] = &ColumnHandle{
			Name:            names[i],
			Type:            types[i],
			OrdinalPosition: i,
		}
	}
	return handles
}

// BlockColumns returns the 18-column block table schema: 16 scalar fields in
// header order plus the two derived list columns (transaction hashes, uncle
// hashes).
func BlockColumns() []*ColumnHandle {
	return newHandles(
		[]string{
			"block_number",
			"block_hash",
			"block_parenthash",
			"block_nonce",
			"block_sha3uncles",
			"block_logsbloom",
			"block_transactionsroot",
			"block_stateroot",
			"block_miner",
			"block_difficulty",
			"block_totaldifficulty",
			"block_size",
			"block_extradata",
			"block_gaslimit",
			"block_gasused",
			"block_timestamp",
			"block_transactions",
			"block_uncles",
		},
		[]*ColumnType{
			Bigint(),
			Varchar(H32ByteHashStringLength),
			Varchar(H32ByteHashStringLength),
			Varchar(H8BytePaddingLength),
			Varchar(H32ByteHashStringLength),
			Varchar(H256BloomStringLength),
			Varchar(H32ByteHashStringLength),
			Varchar(H32ByteHashStringLength),
			Varchar(H20ByteHashStringLength),
			Bigint(),
			Bigint(),
			Integer(),
			Varchar(0),
			Integer(),
			Integer(),
			Timestamp(),
			Array(Varchar(H32ByteHashStringLength)),
			Array(Varchar(H32ByteHashStringLength)),
		},
	)
}

// TransactionColumns returns the 11-column transaction table schema.
func TransactionColumns() []*ColumnHandle {
	return newHandles(
		[]string{
			"tx_hash",
			"tx_nonce",
			"tx_blockhash",
			"tx_blocknumber",
			"tx_index",
			"tx_from",
			"tx_to",
			"tx_value",
			"tx_gas",
			"tx_gasprice",
			"tx_input",
		},
		transactionColumnTypes(),
	)
}

func transactionColumnTypes() []*ColumnType {
	return []*ColumnType{
		Varchar(H32ByteHashStringLength),
		Bigint(),
		Varchar(H32ByteHashStringLength),
		Bigint(),
		Integer(),
		Varchar(H20ByteHashStringLength),
		Varchar(H20ByteHashStringLength),
		Double(),
		Bigint(),
		Double(),
		Varchar(0),
	}
}

// TransactionRow returns the row type mirroring the transaction table's
// column order, for use as a nested structural column.
func TransactionRow() *ColumnType {
	return Row(transactionColumnTypes()...)
}

// Erc20Columns returns the 6-column transfer-event table schema.
func Erc20Columns() []*ColumnHandle {
	return newHandles(
		[]string{
			"erc20_token",
			"erc20_from",
			"erc20_to",
			"erc20_value",
			"erc20_txhash",
			"erc20_blocknumber",
		},
		[]*ColumnType{
			Varchar(0),
			Varchar(H20ByteHashStringLength),
			Varchar(H20ByteHashStringLength),
			Double(),
			Varchar(H32ByteHashStringLength),
			Bigint(),
		},
	)
}

// ColumnsForTable returns the declared schema for the given table name.
// The bool result reports whether the name is known.
func ColumnsForTable(name string) ([]*ColumnHandle, bool) {
	switch name {
	case "block":
		return BlockColumns(), true
	case "transaction":
		return TransactionColumns(), true
	case "erc20":
		return Erc20Columns(), true
	}
	return nil, false
}
