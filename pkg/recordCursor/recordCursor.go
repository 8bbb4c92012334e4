// Package recordCursor provides row-by-row iteration over one block's data in
// one of three traversal modes: the block as a single row, its transaction
// list, or its decoded ERC-20 transfer events.
package recordCursor

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/blocktable/blocktable/pkg/clients/ethereum"
	"github.com/blocktable/blocktable/pkg/config"
	"github.com/blocktable/blocktable/pkg/erc20"
	"github.com/blocktable/blocktable/pkg/schema"
	"github.com/blocktable/blocktable/pkg/serializer"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RecordCursor iterates one block in a fixed traversal mode. A cursor is
// single-threaded: Advance and the field accessors are never called
// concurrently on the same instance.
type RecordCursor struct {
	id     string
	table  config.Table
	block  *ethereum.EthereumBlock
	logger *zap.Logger

	columnHandles      []*schema.ColumnHandle
	fieldToColumnIndex []int

	// suppliers is the field accessor table for the current row, indexed by
	// declared ordinal. It is rebuilt from scratch on every advance and
	// starts empty, so accessors must not be called before the first
	// successful Advance.
	suppliers []func() any

	blockConsumed bool
	txIndex       int
	logs          *logIterator
}

// NewRecordCursor builds a cursor over block for the given table. The
// columnHandles are the subset of columns the query requested, in request
// order; fetcher is only consulted in the erc20 mode and may be nil for the
// other tables.
func NewRecordCursor(
	columnHandles []*schema.ColumnHandle,
	block *ethereum.EthereumBlock,
	table config.Table,
	fetcher LogFetcher,
	logger *zap.Logger,
) *RecordCursor {
	fieldToColumnIndex := make([]int, len(columnHandles))
	for i, handle := range columnHandles {
		fieldToColumnIndex[i] = handle.OrdinalPosition
	}

	return &RecordCursor{
		id:                 uuid.New().String(),
		table:              table,
		block:              block,
		logger:             logger,
		columnHandles:      columnHandles,
		fieldToColumnIndex: fieldToColumnIndex,
		logs:               newLogIterator(fetcher, block, logger),
	}
}

// Type returns the declared column type of the requested field.
func (rc *RecordCursor) Type(field int) (*schema.ColumnType, error) {
	if field < 0 || field >= len(rc.columnHandles) {
		return nil, errors.Errorf("invalid field index %d", field)
	}
	return rc.columnHandles[field].Type, nil
}

// CompletedBytes is an advisory size hint: the byte size of the block's raw
// encoding.
func (rc *RecordCursor) CompletedBytes() int64 {
	return int64(rc.block.Size.Value())
}

// Advance moves the cursor to the next row, rebuilding the field accessor
// table. It returns (false, nil) once the mode's underlying sequence is
// exhausted, and keeps returning it on every subsequent call. The error leg
// carries upstream log-fetch failures only.
func (rc *RecordCursor) Advance(ctx context.Context) (bool, error) {
	switch rc.table {
	case config.Table_Block:
		if rc.blockConsumed {
			return false, nil
		}
		rc.blockConsumed = true
		rc.suppliers = blockSuppliers(rc.block)
		return true, nil

	case config.Table_Transaction:
		if rc.txIndex >= len(rc.block.Transactions) {
			return false, nil
		}
		tx := rc.block.Transactions[rc.txIndex]
		rc.txIndex++
		rc.suppliers = serializer.TransactionSuppliers(tx)
		return true, nil

	case config.Table_Erc20:
		for {
			lg, ok, err := rc.logs.next(ctx)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
			transfer, ok := erc20.DecodeTransfer(lg)
			if !ok {
				// not a conforming transfer event; skip and keep scanning
				continue
			}
			rc.suppliers = transferSuppliers(transfer)
			return true, nil
		}
	}
	return false, nil
}

func (rc *RecordCursor) GetBoolean(field int) (bool, error) {
	value, _, err := rc.fieldValue(field)
	if err != nil {
		return false, err
	}
	return serializer.BooleanRepresentation(value)
}

func (rc *RecordCursor) GetLong(field int) (int64, error) {
	value, handle, err := rc.fieldValue(field)
	if err != nil {
		return 0, err
	}
	return serializer.LongRepresentation(handle.Type, value)
}

func (rc *RecordCursor) GetDouble(field int) (float64, error) {
	value, _, err := rc.fieldValue(field)
	if err != nil {
		return 0, err
	}
	return serializer.DoubleRepresentation(value)
}

func (rc *RecordCursor) GetSlice(field int) ([]byte, error) {
	value, handle, err := rc.fieldValue(field)
	if err != nil {
		return nil, err
	}
	return serializer.BytesRepresentation(handle.Type, value)
}

// GetObject serializes a structural field as the root of a fresh builder and
// returns the resulting Arrow array.
func (rc *RecordCursor) GetObject(field int) (arrow.Array, error) {
	value, handle, err := rc.fieldValue(field)
	if err != nil {
		return nil, err
	}
	return serializer.Serialize(handle.Type, nil, value)
}

// IsNull reports whether the requested field's value is null for the current
// row.
func (rc *RecordCursor) IsNull(field int) bool {
	value, _, err := rc.fieldValue(field)
	return err == nil && value == nil
}

// Close is a no-op: the cursor owns no I/O resources beyond what the node
// client manages.
func (rc *RecordCursor) Close() error {
	return nil
}

// fieldValue resolves a requested-column index to its physical ordinal and
// invokes the producer. Producers that defer a fallible conversion surface
// the failure as an error value.
func (rc *RecordCursor) fieldValue(field int) (any, *schema.ColumnHandle, error) {
	if field < 0 || field >= len(rc.columnHandles) {
		return nil, nil, errors.Errorf("invalid field index %d", field)
	}
	handle := rc.columnHandles[field]
	ordinal := rc.fieldToColumnIndex[field]
	if ordinal < 0 || ordinal >= len(rc.suppliers) {
		return nil, nil, errors.Errorf("no value for ordinal %d (cursor %s not advanced, or past end)", ordinal, rc.id)
	}
	value := rc.suppliers[ordinal]()
	if err, isErr := value.(error); isErr {
		return nil, handle, err
	}
	return value, handle, nil
}

// blockSuppliers builds the 18-entry producer table for the block row: the
// 16 header fields in declared order plus the two derived list columns.
func blockSuppliers(block *ethereum.EthereumBlock) []func() any {
	return []func() any{
		func() any { return block.Number.Value() },
		func() any { return block.Hash.Value() },
		func() any { return block.ParentHash.Value() },
		func() any { return block.Nonce.Value() },
		func() any { return block.Sha3Uncles.Value() },
		func() any { return block.LogsBloom.Value() },
		func() any { return block.TransactionsRoot.Value() },
		func() any { return block.StateRoot.Value() },
		func() any { return block.Miner.Value() },
		func() any { return block.Difficulty.Value() },
		func() any { return block.TotalDifficulty.Value() },
		func() any { return block.Size.Value() },
		func() any { return block.ExtraData.Value() },
		func() any { return block.GasLimit.Value() },
		func() any { return block.GasUsed.Value() },
		func() any { return block.Timestamp.Value() },
		func() any {
			hashes := make([]string, len(block.Transactions))
			for i, tx := range block.Transactions {
				hashes[i] = tx.Hash.Value()
			}
			return hashes
		},
		func() any {
			uncles := make([]string, len(block.Uncles))
			for i, u := range block.Uncles {
				uncles[i] = u.Value()
			}
			return uncles
		},
	}
}

// transferSuppliers builds the 6-entry producer table for a decoded transfer
// event. Conversions run lazily on field access.
func transferSuppliers(transfer *erc20.TransferLog) []func() any {
	return []func() any{
		func() any { return erc20.TokenLabel(transfer.Address) },
		func() any { return erc20.H32ToH20(transfer.From) },
		func() any { return erc20.H32ToH20(transfer.To) },
		func() any {
			amount, err := erc20.HexToFloat64(transfer.Data)
			if err != nil {
				return err
			}
			return amount
		},
		func() any { return transfer.TransactionHash },
		func() any { return transfer.BlockNumber },
	}
}
