package serializer

import (
	"bytes"
	"math"
	"math/big"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/blocktable/blocktable/pkg/schema"
	"github.com/pkg/errors"
)

const millisPerDay = 24 * 60 * 60 * 1000

// defaultZoneOffsetMillis is the offset of the process default timezone from
// UTC at the given instant, in milliseconds.
func defaultZoneOffsetMillis(t time.Time) int64 {
	_, offset := t.In(time.Local).Zone()
	return int64(offset) * 1000
}

// LongRepresentation converts a native value to the 64-bit integer storage
// representation of a long-expressed column kind.
//
// Date and timestamp kinds apply the process default timezone exactly once:
// dates become whole-day counts since the epoch of the timezone-corrected
// instant, timestamps become the UTC-to-local shifted millisecond value. The
// two rules are not interchangeable. Values that are already numeric (e.g.
// epoch seconds from a block header) pass through numeric coercion untouched.
func LongRepresentation(t *schema.ColumnType, value any) (int64, error) {
	switch t.Kind {
	case schema.KindDate:
		if tt, ok := value.(time.Time); ok {
			utcMillis := tt.UnixMilli() + defaultZoneOffsetMillis(tt)
			return utcMillis / millisPerDay, nil
		}
		return toInt64(value)
	case schema.KindTimestamp:
		if tt, ok := value.(time.Time); ok {
			return tt.UnixMilli() + defaultZoneOffsetMillis(tt), nil
		}
		return toInt64(value)
	case schema.KindReal:
		if f, ok := value.(float32); ok {
			return int64(int32(math.Float32bits(f))), nil
		}
		return toInt64(value)
	case schema.KindTinyint, schema.KindSmallint, schema.KindInteger, schema.KindBigint:
		return toInt64(value)
	}
	return 0, errors.Errorf("column kind %s has no long representation", t.Kind)
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case *big.Int:
		return v.Int64(), nil
	}
	return 0, errors.Errorf("unsupported numeric type: %T", value)
}

// DoubleRepresentation coerces a native numeric value to float64 by standard
// numeric widening.
func DoubleRepresentation(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f, nil
	}
	return 0, errors.Errorf("unsupported numeric type: %T", value)
}

// BooleanRepresentation is a strict pass-through: anything but a bool fails.
func BooleanRepresentation(value any) (bool, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return false, errors.Errorf("unsupported boolean field type: %T", value)
}

// BytesRepresentation converts a native value to the byte-sequence storage
// representation of a text/binary column. Strings are UTF-8 encoded, byte
// slices pass through, integers are decimal-string encoded. Varchar values
// are truncated to the declared maximum (in code points); char values are
// truncated and right-trimmed of spaces.
func BytesRepresentation(t *schema.ColumnType, value any) ([]byte, error) {
	var b []byte
	switch v := value.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	case int:
		b = []byte(strconv.FormatInt(int64(v), 10))
	case int32:
		b = []byte(strconv.FormatInt(int64(v), 10))
	case int64:
		b = []byte(strconv.FormatInt(v, 10))
	case uint64:
		b = []byte(strconv.FormatUint(v, 10))
	default:
		return nil, errors.Errorf("unsupported string field type: %T", value)
	}
	switch t.Kind {
	case schema.KindVarchar:
		b = truncateToLength(b, t.Length)
	case schema.KindChar:
		b = bytes.TrimRight(truncateToLength(b, t.Length), " ")
	}
	return b, nil
}

// truncateToLength keeps at most length code points. A length of 0 means
// unbounded.
func truncateToLength(b []byte, length int) []byte {
	if length <= 0 || utf8.RuneCount(b) <= length {
		return b
	}
	count := 0
	for i := range string(b) {
		if count == length {
			return b[:i]
		}
		count++
	}
	return b
}

// AppendScalar writes the column-native representation of value into the
// parent builder. A nil value appends an explicit null marker with no
// coercion attempted.
func AppendScalar(t *schema.ColumnType, builder array.Builder, value any) error {
	if builder == nil {
		return errors.New("parent builder is null")
	}
	if value == nil {
		builder.AppendNull()
		return nil
	}

	switch t.Kind {
	case schema.KindBoolean:
		v, err := BooleanRepresentation(value)
		if err != nil {
			return err
		}
		bb, ok := builder.(*array.BooleanBuilder)
		if !ok {
			return errors.Errorf("builder %T does not match column type %s", builder, t)
		}
		bb.Append(v)
	case schema.KindTinyint, schema.KindSmallint, schema.KindInteger, schema.KindBigint,
		schema.KindReal, schema.KindDate, schema.KindTimestamp:
		v, err := LongRepresentation(t, value)
		if err != nil {
			return err
		}
		ib, ok := builder.(*array.Int64Builder)
		if !ok {
			return errors.Errorf("builder %T does not match column type %s", builder, t)
		}
		ib.Append(v)
	case schema.KindDouble:
		v, err := DoubleRepresentation(value)
		if err != nil {
			return err
		}
		fb, ok := builder.(*array.Float64Builder)
		if !ok {
			return errors.Errorf("builder %T does not match column type %s", builder, t)
		}
		fb.Append(v)
	case schema.KindVarchar, schema.KindChar, schema.KindVarbinary:
		v, err := BytesRepresentation(t, value)
		if err != nil {
			return err
		}
		sb, ok := builder.(*array.BinaryBuilder)
		if !ok {
			return errors.Errorf("builder %T does not match column type %s", builder, t)
		}
		sb.Append(v)
	default:
		return errors.Errorf("unsupported primitive type: %s", t)
	}
	return nil
}
