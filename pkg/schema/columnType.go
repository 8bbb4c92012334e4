package schema

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// Kind enumerates the declared column kinds: the scalar kinds plus the three
// structural kinds (array, map, row).
type Kind int

const (
	KindBoolean Kind = iota
	KindTinyint
	KindSmallint
	KindInteger
	KindBigint
	KindReal
	KindDouble
	KindDate
	KindTimestamp
	KindVarchar
	KindChar
	KindVarbinary
	KindArray
	KindMap
	KindRow
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindTinyint:
		return "tinyint"
	case KindSmallint:
		return "smallint"
	case KindInteger:
		return "integer"
	case KindBigint:
		return "bigint"
	case KindReal:
		return "real"
	case KindDouble:
		return "double"
	case KindDate:
		return "date"
	case KindTimestamp:
		return "timestamp"
	case KindVarchar:
		return "varchar"
	case KindChar:
		return "char"
	case KindVarbinary:
		return "varbinary"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindRow:
		return "row"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ColumnType is a closed tagged union describing a column's declared type.
// Exactly the fields relevant to Kind are set: Length for varchar/char,
// Element for arrays, Key/Value for maps, Fields for rows.
type ColumnType struct {
	Kind    Kind
	Length  int // declared max length for varchar/char; 0 means unbounded
	Element *ColumnType
	Key     *ColumnType
	Value   *ColumnType
	Fields  []*ColumnType
}

func Boolean() *ColumnType   { return &ColumnType{Kind: KindBoolean} }
func Tinyint() *ColumnType   { return &ColumnType{Kind: KindTinyint} }
func Smallint() *ColumnType  { return &ColumnType{Kind: KindSmallint} }
func Integer() *ColumnType   { return &ColumnType{Kind: KindInteger} }
func Bigint() *ColumnType    { return &ColumnType{Kind: KindBigint} }
func Real() *ColumnType      { return &ColumnType{Kind: KindReal} }
func Double() *ColumnType    { return &ColumnType{Kind: KindDouble} }
func Date() *ColumnType      { return &ColumnType{Kind: KindDate} }
func Timestamp() *ColumnType { return &ColumnType{Kind: KindTimestamp} }
func Varbinary() *ColumnType { return &ColumnType{Kind: KindVarbinary} }

// Varchar declares a variable-length character column. A length of 0 means
// unbounded.
func Varchar(length int) *ColumnType {
	return &ColumnType{Kind: KindVarchar, Length: length}
}

func Char(length int) *ColumnType {
	return &ColumnType{Kind: KindChar, Length: length}
}

func Array(element *ColumnType) *ColumnType {
	return &ColumnType{Kind: KindArray, Element: element}
}

func MapOf(key *ColumnType, value *ColumnType) *ColumnType {
	return &ColumnType{Kind: KindMap, Key: key, Value: value}
}

func Row(fields ...*ColumnType) *ColumnType {
	return &ColumnType{Kind: KindRow, Fields: fields}
}

// IsStructural reports whether the type is array, map or row.
func (t *ColumnType) IsStructural() bool {
	return t.Kind == KindArray || t.Kind == KindMap || t.Kind == KindRow
}

func (t *ColumnType) String() string {
	switch t.Kind {
	case KindVarchar, KindChar:
		if t.Length > 0 {
			return fmt.Sprintf("%s(%d)", t.Kind, t.Length)
		}
		return t.Kind.String()
	case KindArray:
		return fmt.Sprintf("array(%s)", t.Element)
	case KindMap:
		return fmt.Sprintf("map(%s, %s)", t.Key, t.Value)
	case KindRow:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.String()
		}
		return fmt.Sprintf("row(%s)", strings.Join(parts, ", "))
	default:
		return t.Kind.String()
	}
}

// ArrowType maps the declared type to its physical Arrow storage type. All
// long-expressed scalar kinds (integrals, date, timestamp and the real kind's
// bit pattern) share int64 storage; text and binary kinds share binary
// storage.
func (t *ColumnType) ArrowType() arrow.DataType {
	switch t.Kind {
	case KindBoolean:
		return arrow.FixedWidthTypes.Boolean
	case KindTinyint, KindSmallint, KindInteger, KindBigint, KindReal, KindDate, KindTimestamp:
		return arrow.PrimitiveTypes.Int64
	case KindDouble:
		return arrow.PrimitiveTypes.Float64
	case KindVarchar, KindChar, KindVarbinary:
		return arrow.BinaryTypes.Binary
	case KindArray:
		return arrow.ListOf(t.Element.ArrowType())
	case KindMap:
		return arrow.MapOf(t.Key.ArrowType(), t.Value.ArrowType())
	case KindRow:
		fields := make([]arrow.Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = arrow.Field{Name: fmt.Sprintf("f%d", i), Type: f.ArrowType(), Nullable: true}
		}
		return arrow.StructOf(fields...)
	}
	panic(fmt.Sprintf("no arrow mapping for column kind %s", t.Kind))
}
