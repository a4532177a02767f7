package orcfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/patrickhuang888/goorc/orc/api"

	"github.com/dataeng-fixtures/orcgen/pkg/dataset"
	"github.com/dataeng-fixtures/orcgen/pkg/schema"
)

var epochDay = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// epochDays counts days since the Unix epoch. Durations overflow on dates
// like 1582-10-15, so this goes through Unix seconds with floor division.
func epochDays(t time.Time) int32 {
	secs := t.Unix()
	days := secs / 86400
	if secs%86400 < 0 {
		days--
	}

	return int32(days)
}

// appendValue marshals one Go literal into the library's column vector. List
// and map children are flattened, with element counts kept on the parent;
// struct children only receive values for rows where the parent is present.
func appendValue(vec *api.ColumnVector, t schema.Type, v any) error {
	if v == nil {
		vec.Vector = append(vec.Vector, api.Value{Null: true})
		return nil
	}

	switch t.Kind {
	case schema.Boolean:
		bv, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		vec.Vector = append(vec.Vector, api.Value{V: bv})
	case schema.Int8, schema.Int16, schema.Int32, schema.Int64:
		iv, err := toInt64(v)
		if err != nil {
			return err
		}
		vec.Vector = append(vec.Vector, api.Value{V: iv})
	case schema.Float32:
		switch fv := v.(type) {
		case float32:
			vec.Vector = append(vec.Vector, api.Value{V: fv})
		case float64:
			vec.Vector = append(vec.Vector, api.Value{V: float32(fv)})
		default:
			return fmt.Errorf("expected float, got %T", v)
		}
	case schema.Float64:
		switch fv := v.(type) {
		case float64:
			vec.Vector = append(vec.Vector, api.Value{V: fv})
		case float32:
			vec.Vector = append(vec.Vector, api.Value{V: float64(fv)})
		default:
			return fmt.Errorf("expected float, got %T", v)
		}
	case schema.Decimal:
		sv, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected decimal literal string, got %T", v)
		}
		scaled, err := parseDecimal(sv, t.Scale)
		if err != nil {
			return err
		}
		// Decimal64 holds the unscaled value in Precision.
		vec.Vector = append(vec.Vector, api.Value{V: api.Decimal64{
			Precision: scaled,
			Scale:     int(t.Scale),
		}})
	case schema.Binary:
		switch bv := v.(type) {
		case []byte:
			vec.Vector = append(vec.Vector, api.Value{V: bv})
		case string:
			vec.Vector = append(vec.Vector, api.Value{V: []byte(bv)})
		default:
			return fmt.Errorf("expected bytes, got %T", v)
		}
	case schema.String:
		sv, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		vec.Vector = append(vec.Vector, api.Value{V: sv})
	case schema.Date:
		tv, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time, got %T", v)
		}
		vec.Vector = append(vec.Vector, api.Value{V: epochDays(tv)})
	case schema.Timestamp:
		switch tv := v.(type) {
		case time.Time:
			vec.Vector = append(vec.Vector, api.Value{V: api.GetTimestamp(tv.UTC())})
		case Timestamp:
			vec.Vector = append(vec.Vector, api.Value{V: api.Timestamp{
				Seconds: tv.Seconds,
				Nanos:   tv.Nanos,
			}})
		default:
			return fmt.Errorf("expected timestamp, got %T", v)
		}
	case schema.Struct:
		tuple, ok := v.([]any)
		if !ok {
			return fmt.Errorf("expected struct tuple, got %T", v)
		}
		if len(tuple) != len(t.Fields) {
			return fmt.Errorf("struct tuple has %d values, want %d", len(tuple), len(t.Fields))
		}
		vec.Vector = append(vec.Vector, api.Value{})
		for i, fv := range tuple {
			if err := appendValue(vec.Children[i], t.Fields[i].Type, fv); err != nil {
				return err
			}
		}
	case schema.List:
		elems, ok := v.([]any)
		if !ok {
			return fmt.Errorf("expected list elements, got %T", v)
		}
		vec.Vector = append(vec.Vector, api.Value{V: uint64(len(elems))})
		for _, ev := range elems {
			if err := appendValue(vec.Children[0], *t.Elem, ev); err != nil {
				return err
			}
		}
	case schema.Map:
		entries, ok := v.([]dataset.KV)
		if !ok {
			return fmt.Errorf("expected map entries, got %T", v)
		}
		vec.Vector = append(vec.Vector, api.Value{V: uint64(len(entries))})
		for _, kv := range entries {
			if err := appendValue(vec.Children[0], *t.Key, kv.K); err != nil {
				return err
			}
			if err := appendValue(vec.Children[1], *t.Value, kv.V); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported kind: %d", t.Kind)
	}

	return nil
}

// fromArrow extracts row i of an arrow array as a Go literal in the dataset
// value vocabulary.
func fromArrow(col arrow.Array, i int) (any, error) {
	if col.IsNull(i) {
		return nil, nil
	}

	switch a := col.(type) {
	case *array.Boolean:
		return a.Value(i), nil
	case *array.Int8:
		return int64(a.Value(i)), nil
	case *array.Int16:
		return int64(a.Value(i)), nil
	case *array.Int32:
		return int64(a.Value(i)), nil
	case *array.Int64:
		return a.Value(i), nil
	case *array.Float32:
		return a.Value(i), nil
	case *array.Float64:
		return a.Value(i), nil
	case *array.Decimal128:
		dt := a.DataType().(*arrow.Decimal128Type)
		return a.Value(i).ToString(dt.Scale), nil
	case *array.Binary:
		return a.Value(i), nil
	case *array.String:
		return a.Value(i), nil
	case *array.Date32:
		return a.Value(i).ToTime(), nil
	case *array.Timestamp:
		dt := a.DataType().(*arrow.TimestampType)
		return a.Value(i).ToTime(dt.Unit), nil
	case *array.Struct:
		tuple := make([]any, a.NumField())
		for f := 0; f < a.NumField(); f++ {
			v, err := fromArrow(a.Field(f), i)
			if err != nil {
				return nil, err
			}
			tuple[f] = v
		}
		return tuple, nil
	case *array.List:
		start, end := a.ValueOffsets(i)
		elems := make([]any, 0, end-start)
		for j := start; j < end; j++ {
			v, err := fromArrow(a.ListValues(), int(j))
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return elems, nil
	case *array.Map:
		start, end := a.ValueOffsets(i)
		entries := make([]dataset.KV, 0, end-start)
		for j := start; j < end; j++ {
			k, err := fromArrow(a.Keys(), int(j))
			if err != nil {
				return nil, err
			}
			v, err := fromArrow(a.Items(), int(j))
			if err != nil {
				return nil, err
			}
			entries = append(entries, dataset.KV{K: k, V: v})
		}
		return entries, nil
	}

	return nil, fmt.Errorf("unsupported array %T", col)
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
		return int64(iv), nil
	}

	return 0, fmt.Errorf("expected integer, got %T", v)
}

// parseDecimal converts a decimal literal like "-31256.123" into an integer
// scaled by 10^scale.
func parseDecimal(s string, scale int32) (int64, error) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
	}

	if int32(len(fracPart)) > scale {
		return 0, fmt.Errorf("decimal %q has more than %d fractional digits", s, scale)
	}
	fracPart += strings.Repeat("0", int(scale)-len(fracPart))

	scaled, err := strconv.ParseInt(intPart+fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing decimal %q: %w", s, err)
	}

	if neg {
		scaled = -scaled
	}

	return scaled, nil
}

// formatDecimal renders a scaled integer back into its literal form.
func formatDecimal(scaled int64, scale int) string {
	neg := scaled < 0
	if neg {
		scaled = -scaled
	}

	digits := strconv.FormatInt(scaled, 10)
	if scale > 0 {
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	}

	if neg {
		digits = "-" + digits
	}

	return digits
}
