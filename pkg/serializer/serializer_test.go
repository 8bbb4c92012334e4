package serializer

import (
	"math/big"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/blocktable/blocktable/pkg/clients/ethereum"
	"github.com/blocktable/blocktable/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_RootListReturnsElementArray(t *testing.T) {
	typ := schema.Array(schema.Varchar(0))

	arr, err := Serialize(typ, nil, []string{"0xaa", "0xbb", "0xcc"})
	require.NoError(t, err)
	require.NotNil(t, arr)
	defer arr.Release()

	bin, ok := arr.(*array.Binary)
	require.True(t, ok)
	require.Equal(t, 3, bin.Len())
	assert.Equal(t, []byte("0xaa"), bin.Value(0))
	assert.Equal(t, []byte("0xbb"), bin.Value(1))
	assert.Equal(t, []byte("0xcc"), bin.Value(2))
}

func TestSerialize_RootListOfLists(t *testing.T) {
	typ := schema.Array(schema.Array(schema.Bigint()))

	arr, err := Serialize(typ, nil, [][]int64{{1, 2}, {3}})
	require.NoError(t, err)
	defer arr.Release()

	lst, ok := arr.(*array.List)
	require.True(t, ok)
	require.Equal(t, 2, lst.Len())

	values := lst.ListValues().(*array.Int64)
	start, end := lst.ValueOffsets(0)
	require.Equal(t, int64(0), start)
	require.Equal(t, int64(2), end)
	assert.Equal(t, int64(1), values.Value(0))
	assert.Equal(t, int64(2), values.Value(1))

	start, end = lst.ValueOffsets(1)
	require.Equal(t, int64(2), start)
	require.Equal(t, int64(3), end)
	assert.Equal(t, int64(3), values.Value(2))
}

func TestSerialize_DepthThreeListMapList(t *testing.T) {
	typ := schema.Array(schema.MapOf(schema.Varchar(0), schema.Array(schema.Bigint())))

	value := []any{
		map[string]any{"a": []int64{1, 2}},
		map[string]any{"b": []int64{3}},
	}
	arr, err := Serialize(typ, nil, value)
	require.NoError(t, err)
	defer arr.Release()

	m, ok := arr.(*array.Map)
	require.True(t, ok)
	require.Equal(t, 2, m.Len())

	keys := m.Keys().(*array.Binary)
	require.Equal(t, 2, keys.Len())
	assert.Equal(t, []byte("a"), keys.Value(0))
	assert.Equal(t, []byte("b"), keys.Value(1))

	items := m.Items().(*array.List)
	leaves := items.ListValues().(*array.Int64)
	start, end := items.ValueOffsets(0)
	require.Equal(t, int64(2), end-start)
	assert.Equal(t, int64(1), leaves.Value(int(start)))
	assert.Equal(t, int64(2), leaves.Value(int(start)+1))

	start, end = items.ValueOffsets(1)
	require.Equal(t, int64(1), end-start)
	assert.Equal(t, int64(3), leaves.Value(int(start)))
}

func TestSerialize_MapDropsNullKeys(t *testing.T) {
	typ := schema.MapOf(schema.Varchar(0), schema.Bigint())

	value := map[any]any{
		nil: int64(1),
		"k": int64(7),
	}
	arr, err := Serialize(typ, nil, value)
	require.NoError(t, err)
	defer arr.Release()

	m := arr.(*array.Map)
	require.Equal(t, 1, m.Len())
	keys := m.Keys().(*array.Binary)
	require.Equal(t, 1, keys.Len())
	assert.Equal(t, []byte("k"), keys.Value(0))
	assert.Equal(t, int64(7), m.Items().(*array.Int64).Value(0))
}

func TestSerialize_RowProjectsTransaction(t *testing.T) {
	tx := &ethereum.EthereumTransaction{
		Hash:             "0xabc",
		Nonce:            4,
		BlockHash:        "0xdef",
		BlockNumber:      100,
		TransactionIndex: 2,
		From:             "0xf00d",
		To:               "", // contract creation
		Value:            ethereum.EthereumBigInt(*big.NewInt(5)),
		Gas:              21000,
		GasPrice:         ethereum.EthereumBigInt(*big.NewInt(9)),
		Input:            "0x",
	}

	arr, err := Serialize(schema.TransactionRow(), nil, tx)
	require.NoError(t, err)
	defer arr.Release()

	st, ok := arr.(*array.Struct)
	require.True(t, ok)
	require.Equal(t, 1, st.Len())
	require.Equal(t, 11, st.NumField())

	assert.Equal(t, []byte("0xabc"), st.Field(0).(*array.Binary).Value(0))
	assert.Equal(t, int64(4), st.Field(1).(*array.Int64).Value(0))
	assert.Equal(t, int64(100), st.Field(3).(*array.Int64).Value(0))
	assert.Equal(t, []byte("0xf00d"), st.Field(5).(*array.Binary).Value(0))
	assert.True(t, st.Field(6).IsNull(0))
	assert.Equal(t, 5.0, st.Field(7).(*array.Float64).Value(0))
	assert.Equal(t, 9.0, st.Field(9).(*array.Float64).Value(0))
}

func TestSerialize_NestedNullAppendsNull(t *testing.T) {
	typ := schema.Array(schema.Bigint())
	builder := array.NewBuilder(memory.DefaultAllocator, typ.ArrowType())
	defer builder.Release()

	arr, err := Serialize(typ, builder, nil)
	require.NoError(t, err)
	require.Nil(t, arr)

	out := builder.NewArray()
	defer out.Release()
	require.Equal(t, 1, out.Len())
	assert.True(t, out.IsNull(0))
}

func TestSerialize_RootNullFails(t *testing.T) {
	for _, typ := range []*schema.ColumnType{
		schema.Array(schema.Bigint()),
		schema.MapOf(schema.Varchar(0), schema.Bigint()),
		schema.TransactionRow(),
	} {
		_, err := Serialize(typ, nil, nil)
		assert.Error(t, err, typ.String())
	}
}

func TestSerialize_ShapeMismatchFails(t *testing.T) {
	_, err := Serialize(schema.Array(schema.Bigint()), nil, "not a list")
	assert.Error(t, err)

	_, err = Serialize(schema.MapOf(schema.Varchar(0), schema.Bigint()), nil, []int64{1})
	assert.Error(t, err)

	_, err = Serialize(schema.TransactionRow(), nil, map[string]any{})
	assert.Error(t, err)
}

func TestSerialize_ByteSliceIsScalarNotList(t *testing.T) {
	_, err := Serialize(schema.Array(schema.Bigint()), nil, []byte{1, 2})
	assert.Error(t, err)
}

func TestTransactionSuppliers_ToIsNilForContractCreation(t *testing.T) {
	tx := &ethereum.EthereumTransaction{To: ""}
	suppliers := TransactionSuppliers(tx)
	require.Len(t, suppliers, 11)
	assert.Nil(t, suppliers[6]())

	tx.To = "0x1234"
	assert.Equal(t, "0x1234", TransactionSuppliers(tx)[6]())
}
