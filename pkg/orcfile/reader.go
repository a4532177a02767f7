package orcfile

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/patrickhuang888/goorc/orc"
	"github.com/patrickhuang888/goorc/orc/api"

	"github.com/dataeng-fixtures/orcgen/pkg/dataset"
	"github.com/dataeng-fixtures/orcgen/pkg/schema"
)

// Read loads a whole ORC file into a single arrow record. The root data type
// must be a struct. Decoding (stripes, RLE, decompression) is the library's;
// this function only converts its column batches into arrow arrays.
//
// The type description carries no decimal precision or scale, so decimal
// columns are typed decimal(38,s) with the scale taken from the decoded
// values (0 when a column holds no values).
func Read(path string, mem memory.Allocator) (arrow.Record, schema.Schema, error) {
	lib, err := orc.NewOSFileReader(path)
	if err != nil {
		return nil, schema.Schema{}, fmt.Errorf("opening orc file: %w", err)
	}
	defer lib.Close()

	td := lib.GetSchema()

	s, err := schema.FromORC(td)
	if err != nil {
		return nil, schema.Schema{}, err
	}

	br, err := lib.CreateBatchReader(&api.BatchOption{RowSize: batchSize})
	if err != nil {
		return nil, schema.Schema{}, fmt.Errorf("creating batch reader: %w", err)
	}

	batch, err := td.CreateVector(&api.BatchOption{RowSize: batchSize})
	if err != nil {
		return nil, schema.Schema{}, fmt.Errorf("creating column batch: %w", err)
	}

	curs := make([]*cursor, len(s.Columns))
	for i := range curs {
		curs[i] = newCursor(batch.Children[i])
	}

	// Decode everything into Go literals first; the arrow types are only
	// final once the decimal scales are known.
	cols := make([][]any, len(s.Columns))

	for {
		end, err := br.Next(batch)
		if err != nil {
			return nil, schema.Schema{}, fmt.Errorf("reading batch: %w", err)
		}

		n := 0
		if len(batch.Children) > 0 {
			n = len(batch.Children[0].Vector)
		}

		for i, c := range s.Columns {
			for row := 0; row < n; row++ {
				v, err := curs[i].next(c.Type)
				if err != nil {
					return nil, schema.Schema{}, fmt.Errorf("column %s: %w", c.Name, err)
				}
				cols[i] = append(cols[i], v)
			}
		}

		resetBatch(batch)
		for _, c := range curs {
			c.reset()
		}

		if end || n == 0 {
			break
		}
	}

	for i := range s.Columns {
		refineDecimals(&s.Columns[i].Type, curs[i])
	}

	as, err := s.Arrow()
	if err != nil {
		return nil, schema.Schema{}, err
	}

	b := array.NewRecordBuilder(mem, as)
	defer b.Release()

	for i, col := range cols {
		for _, v := range col {
			if err := dataset.Append(b.Field(i), v); err != nil {
				return nil, schema.Schema{}, fmt.Errorf("column %s: %w", s.Columns[i].Name, err)
			}
		}
	}

	return b.NewRecord(), s, nil
}

// cursor walks a flattened column-vector tree, tracking the read position of
// every nested child independently. It also remembers the scale of the
// decimal values it decodes.
type cursor struct {
	vec      *api.ColumnVector
	pos      int
	children []*cursor
	scale    int
}

func newCursor(vec *api.ColumnVector) *cursor {
	return &cursor{vec: vec, scale: -1}
}

func (c *cursor) child(i int) *cursor {
	for len(c.children) <= i {
		c.children = append(c.children, newCursor(c.vec.Children[len(c.children)]))
	}

	return c.children[i]
}

func (c *cursor) reset() {
	c.pos = 0
	for _, child := range c.children {
		child.reset()
	}
}

// next converts the value at the cursor into a Go literal and advances.
func (c *cursor) next(t schema.Type) (any, error) {
	if c.pos >= len(c.vec.Vector) {
		return nil, fmt.Errorf("column vector exhausted at row %d", c.pos)
	}

	val := c.vec.Vector[c.pos]
	c.pos++

	if val.Null {
		return nil, nil
	}

	switch t.Kind {
	case schema.Boolean:
		return val.V, nil
	case schema.Int8, schema.Int16, schema.Int32, schema.Int64:
		return toInt64(val.V)
	case schema.Float32, schema.Float64:
		return val.V, nil
	case schema.Decimal:
		d, ok := val.V.(api.Decimal64)
		if !ok {
			return nil, fmt.Errorf("expected decimal, got %T", val.V)
		}
		c.scale = d.Scale
		return formatDecimal(d.Precision, d.Scale), nil
	case schema.Binary:
		return val.V, nil
	case schema.String:
		return val.V, nil
	case schema.Date:
		days, err := toInt64(val.V)
		if err != nil {
			return nil, err
		}
		return epochDay.AddDate(0, 0, int(days)), nil
	case schema.Timestamp:
		ts, ok := val.V.(api.Timestamp)
		if !ok {
			return nil, fmt.Errorf("expected timestamp, got %T", val.V)
		}
		return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC(), nil
	case schema.Struct:
		tuple := make([]any, len(t.Fields))
		for i := range t.Fields {
			v, err := c.child(i).next(t.Fields[i].Type)
			if err != nil {
				return nil, err
			}
			tuple[i] = v
		}
		return tuple, nil
	case schema.List:
		n, err := toInt64(val.V)
		if err != nil {
			return nil, err
		}
		elems := make([]any, 0, n)
		for j := int64(0); j < n; j++ {
			v, err := c.child(0).next(*t.Elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return elems, nil
	case schema.Map:
		n, err := toInt64(val.V)
		if err != nil {
			return nil, err
		}
		entries := make([]dataset.KV, 0, n)
		for j := int64(0); j < n; j++ {
			k, err := c.child(0).next(*t.Key)
			if err != nil {
				return nil, err
			}
			v, err := c.child(1).next(*t.Value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, dataset.KV{K: k, V: v})
		}
		return entries, nil
	}

	return nil, fmt.Errorf("unsupported kind: %d", t.Kind)
}

// refineDecimals fills in the decimal scales observed while decoding.
func refineDecimals(t *schema.Type, c *cursor) {
	switch t.Kind {
	case schema.Decimal:
		if c.scale >= 0 {
			t.Scale = int32(c.scale)
		}
	case schema.Struct:
		for i := range t.Fields {
			refineDecimals(&t.Fields[i].Type, c.child(i))
		}
	case schema.List:
		refineDecimals(t.Elem, c.child(0))
	case schema.Map:
		refineDecimals(t.Key, c.child(0))
		refineDecimals(t.Value, c.child(1))
	}
}
