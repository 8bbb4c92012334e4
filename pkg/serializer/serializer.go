// Package serializer converts native scalar and structural values into Arrow
// column storage matching a declared column type tree.
package serializer

import (
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/blocktable/blocktable/pkg/clients/ethereum"
	"github.com/blocktable/blocktable/pkg/schema"
	"github.com/pkg/errors"
)

// Serialize recursively writes value into column storage shaped by t.
//
// Every call except the outermost receives a non-nil parent builder and
// writes into it, returning (nil, nil). The outermost call for a request
// that needs a returned value passes builder == nil; the serializer then
// synthesizes its own builder sized for the single value and returns the
// finished Arrow array. A value whose runtime shape disagrees with t is a
// fatal, non-recoverable condition for the field.
func Serialize(t *schema.ColumnType, builder array.Builder, value any) (arrow.Array, error) {
	switch t.Kind {
	case schema.KindArray:
		return serializeList(t, builder, value)
	case schema.KindMap:
		return serializeMap(t, builder, value)
	case schema.KindRow:
		return serializeRow(t, builder, value)
	}
	if err := AppendScalar(t, builder, value); err != nil {
		return nil, err
	}
	return nil, nil
}

func serializeList(t *schema.ColumnType, builder array.Builder, value any) (arrow.Array, error) {
	if value == nil {
		if builder == nil {
			return nil, errors.New("parent builder is null")
		}
		builder.AppendNull()
		return nil, nil
	}

	list, ok := asSlice(value)
	if !ok {
		return nil, errors.Errorf("unknown object type: %T for column type %s", value, t)
	}

	if builder != nil {
		lb, ok := builder.(*array.ListBuilder)
		if !ok {
			return nil, errors.Errorf("builder %T does not match column type %s", builder, t)
		}
		lb.Append(true)
		child := lb.ValueBuilder()
		for _, element := range list {
			if _, err := Serialize(t.Element, child, element); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	// Serialization root: synthesize a builder of the element type and
	// return the elements as a first-class array.
	child := array.NewBuilder(memory.DefaultAllocator, t.Element.ArrowType())
	defer child.Release()
	child.Reserve(len(list))
	for _, element := range list {
		if _, err := Serialize(t.Element, child, element); err != nil {
			return nil, err
		}
	}
	return child.NewArray(), nil
}

func serializeMap(t *schema.ColumnType, builder array.Builder, value any) (arrow.Array, error) {
	if value == nil {
		if builder == nil {
			return nil, errors.New("parent builder is null")
		}
		builder.AppendNull()
		return nil, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, errors.Errorf("unknown object type: %T for column type %s", value, t)
	}

	synthesized := builder == nil
	var mb *array.MapBuilder
	if synthesized {
		mb = array.NewBuilder(memory.DefaultAllocator, t.ArrowType()).(*array.MapBuilder)
		defer mb.Release()
	} else {
		var ok bool
		mb, ok = builder.(*array.MapBuilder)
		if !ok {
			return nil, errors.Errorf("builder %T does not match column type %s", builder, t)
		}
	}

	mb.Append(true)
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key().Interface()
		// entries with null keys are silently dropped
		if key == nil {
			continue
		}
		if _, err := Serialize(t.Key, mb.KeyBuilder(), key); err != nil {
			return nil, err
		}
		if _, err := Serialize(t.Value, mb.ItemBuilder(), iter.Value().Interface()); err != nil {
			return nil, err
		}
	}

	if synthesized {
		return mb.NewArray(), nil
	}
	return nil, nil
}

func serializeRow(t *schema.ColumnType, builder array.Builder, value any) (arrow.Array, error) {
	if value == nil {
		if builder == nil {
			return nil, errors.New("parent builder is null")
		}
		builder.AppendNull()
		return nil, nil
	}

	// Row values are currently always transaction-shaped: a fixed positional
	// projection in transaction column order.
	tx, ok := value.(*ethereum.EthereumTransaction)
	if !ok {
		return nil, errors.Errorf("unknown object type: %T for column type %s", value, t)
	}

	suppliers := TransactionSuppliers(tx)
	if len(t.Fields) > len(suppliers) {
		return nil, errors.Errorf("row type %s has %d fields but only %d are available", t, len(t.Fields), len(suppliers))
	}

	synthesized := builder == nil
	var sb *array.StructBuilder
	if synthesized {
		sb = array.NewBuilder(memory.DefaultAllocator, t.ArrowType()).(*array.StructBuilder)
		defer sb.Release()
	} else {
		sb, ok = builder.(*array.StructBuilder)
		if !ok {
			return nil, errors.Errorf("builder %T does not match column type %s", builder, t)
		}
	}

	sb.Append(true)
	for i, fieldType := range t.Fields {
		if _, err := Serialize(fieldType, sb.FieldBuilder(i), suppliers[i]()); err != nil {
			return nil, err
		}
	}

	if synthesized {
		return sb.NewArray(), nil
	}
	return nil, nil
}

// TransactionSuppliers builds the fixed 11-entry positional producer list for
// a transaction record, in transaction column order. The cursor's
// TRANSACTION mode and nested row serialization share this projection.
func TransactionSuppliers(tx *ethereum.EthereumTransaction) []func() any {
	return []func() any{
		func() any { return tx.Hash.Value() },
		func() any { return tx.Nonce.Value() },
		func() any { return tx.BlockHash.Value() },
		func() any { return tx.BlockNumber.Value() },
		func() any { return tx.TransactionIndex.Value() },
		func() any { return tx.From.Value() },
		func() any {
			// contract creations have no recipient
			if tx.To == "" {
				return nil
			}
			return tx.To.Value()
		},
		func() any { return tx.Value.Value() },
		func() any { return tx.Gas.Value() },
		func() any { return tx.GasPrice.Value() },
		func() any { return tx.Input.Value() },
	}
}

// asSlice views value as an ordered sequence. Byte slices are scalars, not
// sequences.
func asSlice(value any) ([]any, bool) {
	if _, isBytes := value.([]byte); isBytes {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
