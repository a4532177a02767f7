// Package dataset holds literal tabular data for fixture generation. A
// dataset is an ordered sequence of value columns declared in source code,
// one per schema column, where nil is a valid value everywhere.
//
// Value vocabulary per semantic type: bool, int/int64 (all integer widths),
// float32/float64, string (utf8, and decimal literals like "123.45"),
// []byte (binary), time.Time (date and timestamp), []any (struct tuples and
// list elements), []KV (map entries, in insertion order).
package dataset

import (
	"fmt"
	"math"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/dataeng-fixtures/orcgen/pkg/schema"
)

// KV is a single map entry. A slice of KV keeps the declared entry order.
type KV struct {
	K any
	V any
}

// Dataset pairs a declared schema with column-major literal data. Columns
// must match the schema in count and order; value types must be coercible to
// the declared types. Neither is verified here beyond letting the arrow
// builders reject what they cannot coerce.
type Dataset struct {
	Schema  schema.Schema
	Columns [][]any
}

func (d Dataset) NumRows() int {
	if len(d.Columns) == 0 {
		return 0
	}

	return len(d.Columns[0])
}

// Row assembles row i from the column-major data.
func (d Dataset) Row(i int) []any {
	row := make([]any, len(d.Columns))
	for j, col := range d.Columns {
		row[j] = col[i]
	}

	return row
}

// Record materializes the dataset into an arrow record.
func (d Dataset) Record(mem memory.Allocator) (arrow.Record, error) {
	as, err := d.Schema.Arrow()
	if err != nil {
		return nil, fmt.Errorf("converting schema: %w", err)
	}

	if len(d.Columns) != len(as.Fields()) {
		return nil, fmt.Errorf("have %d columns, schema declares %d", len(d.Columns), len(as.Fields()))
	}

	b := array.NewRecordBuilder(mem, as)
	defer b.Release()

	for i, col := range d.Columns {
		fb := b.Field(i)
		for _, v := range col {
			if err := Append(fb, v); err != nil {
				return nil, fmt.Errorf("column %s: %w", as.Field(i).Name, err)
			}
		}
	}

	return b.NewRecord(), nil
}

// Append adds a single value to an arrow array builder, appending null for
// nil values.
func Append(b array.Builder, v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}

	switch fb := b.(type) {
	case *array.BooleanBuilder:
		bv, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		fb.Append(bv)
	case *array.Int8Builder:
		iv, err := toInt64(v)
		if err != nil {
			return err
		}
		fb.Append(int8(iv))
	case *array.Int16Builder:
		iv, err := toInt64(v)
		if err != nil {
			return err
		}
		fb.Append(int16(iv))
	case *array.Int32Builder:
		iv, err := toInt64(v)
		if err != nil {
			return err
		}
		fb.Append(int32(iv))
	case *array.Int64Builder:
		iv, err := toInt64(v)
		if err != nil {
			return err
		}
		fb.Append(iv)
	case *array.Float32Builder:
		switch fv := v.(type) {
		case float32:
			fb.Append(fv)
		case float64:
			fb.Append(float32(fv))
		default:
			return fmt.Errorf("expected float, got %T", v)
		}
	case *array.Float64Builder:
		switch fv := v.(type) {
		case float64:
			fb.Append(fv)
		case float32:
			fb.Append(float64(fv))
		default:
			return fmt.Errorf("expected float, got %T", v)
		}
	case *array.Decimal128Builder:
		sv, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected decimal literal string, got %T", v)
		}
		dt := fb.Type().(*arrow.Decimal128Type)
		num, err := decimal128.FromString(sv, dt.Precision, dt.Scale)
		if err != nil {
			return fmt.Errorf("parsing decimal %q: %w", sv, err)
		}
		fb.Append(num)
	case *array.BinaryBuilder:
		switch bv := v.(type) {
		case []byte:
			fb.Append(bv)
		case string:
			fb.Append([]byte(bv))
		default:
			return fmt.Errorf("expected bytes, got %T", v)
		}
	case *array.StringBuilder:
		sv, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		fb.Append(sv)
	case *array.Date32Builder:
		tv, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time, got %T", v)
		}
		fb.Append(arrow.Date32FromTime(tv))
	case *array.TimestampBuilder:
		tv, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time, got %T", v)
		}
		ts, err := arrow.TimestampFromTime(tv, arrow.Nanosecond)
		if err != nil {
			return fmt.Errorf("converting timestamp: %w", err)
		}
		fb.Append(ts)
	case *array.StructBuilder:
		tuple, ok := v.([]any)
		if !ok {
			return fmt.Errorf("expected struct tuple, got %T", v)
		}
		if len(tuple) != fb.NumField() {
			return fmt.Errorf("struct tuple has %d values, want %d", len(tuple), fb.NumField())
		}
		fb.Append(true)
		for i, fv := range tuple {
			if err := Append(fb.FieldBuilder(i), fv); err != nil {
				return err
			}
		}
	case *array.ListBuilder:
		elems, ok := v.([]any)
		if !ok {
			return fmt.Errorf("expected list elements, got %T", v)
		}
		fb.Append(true)
		vb := fb.ValueBuilder()
		for _, ev := range elems {
			if err := Append(vb, ev); err != nil {
				return err
			}
		}
	case *array.MapBuilder:
		entries, ok := v.([]KV)
		if !ok {
			return fmt.Errorf("expected map entries, got %T", v)
		}
		fb.Append(true)
		kb, ib := fb.KeyBuilder(), fb.ItemBuilder()
		for _, kv := range entries {
			if err := Append(kb, kv.K); err != nil {
				return err
			}
			if err := Append(ib, kv.V); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported builder %T", b)
	}

	return nil
}

func toInt64(v any) (int64, error) {
	switch iv := v.(type) {
	case int:
		return int64(iv), nil
	case int8:
		return int64(iv), nil
	case int16:
		return int64(iv), nil
	case int32:
		return int64(iv), nil
	case int64:
		return iv, nil
	case uint64:
		if iv > math.MaxInt64 {
			return 0, fmt.Errorf("integer overflows int64: %d", iv)
		}
		return int64(iv), nil
	}

	return 0, fmt.Errorf("expected integer, got %T", v)
}
