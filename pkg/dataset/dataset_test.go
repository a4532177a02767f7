package dataset_test

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataeng-fixtures/orcgen/pkg/dataset"
	"github.com/dataeng-fixtures/orcgen/pkg/schema"
)

func TestRecordScalars(t *testing.T) {
	d := dataset.Dataset{
		Schema: schema.New(
			schema.Col("b", schema.Bool()),
			schema.Col("n", schema.I32()),
			schema.Col("f", schema.F64()),
			schema.Col("dec", schema.Dec(15, 2)),
			schema.Col("s", schema.Utf8()),
			schema.Col("day", schema.Date32()),
			schema.Col("at", schema.Ts()),
		),
		Columns: [][]any{
			{nil, true, false},
			{nil, 1, -1},
			{nil, 1.5, -1.5},
			{nil, "12.34", "-0.99"},
			{nil, "a", "🤔"},
			{nil, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC)},
			{nil, time.Date(2023, 4, 1, 20, 15, 30, 2000000, time.UTC), time.Unix(1629617204, 525777000).UTC()},
		},
	}

	rec, err := d.Record(memory.DefaultAllocator)
	require.NoError(t, err)
	defer rec.Release()

	require.EqualValues(t, 3, rec.NumRows())
	require.EqualValues(t, 7, rec.NumCols())

	for i := 0; i < int(rec.NumCols()); i++ {
		assert.True(t, rec.Column(i).IsNull(0), "row 0 of column %d should be null", i)
	}

	assert.Equal(t, true, rec.Column(0).(*array.Boolean).Value(1))
	assert.Equal(t, int32(-1), rec.Column(1).(*array.Int32).Value(2))
	assert.Equal(t, 1.5, rec.Column(2).(*array.Float64).Value(1))
	assert.Equal(t, "1234", rec.Column(3).(*array.Decimal128).Value(1).BigInt().String())
	assert.Equal(t, "🤔", rec.Column(4).(*array.String).Value(2))
	assert.EqualValues(t, 1, rec.Column(5).(*array.Date32).Value(1))
	assert.EqualValues(t, -1, rec.Column(5).(*array.Date32).Value(2))
	assert.EqualValues(t, 1629617204525777000, rec.Column(6).(*array.Timestamp).Value(2))
}

func TestRecordNested(t *testing.T) {
	d := dataset.Dataset{
		Schema: schema.New(
			schema.Col("nest", schema.StructOf(
				schema.Col("a", schema.F32()),
				schema.Col("b", schema.Bool()),
			)),
			schema.Col("value", schema.ListOf(schema.I32())),
			schema.Col("map", schema.MapOf(schema.Utf8(), schema.I32())),
		),
		Columns: [][]any{
			{
				[]any{1.0, true},
				nil,
				[]any{nil, nil},
			},
			{
				[]any{1, nil, 3},
				nil,
				[]any{},
			},
			{
				[]dataset.KV{{K: "zero", V: 0}, {K: "one", V: 1}},
				nil,
				[]dataset.KV{{K: "nill", V: nil}},
			},
		},
	}

	rec, err := d.Record(memory.DefaultAllocator)
	require.NoError(t, err)
	defer rec.Release()

	require.EqualValues(t, 3, rec.NumRows())

	nest := rec.Column(0).(*array.Struct)
	assert.False(t, nest.IsNull(0))
	assert.True(t, nest.IsNull(1))
	assert.Equal(t, float32(1.0), nest.Field(0).(*array.Float32).Value(0))
	assert.True(t, nest.Field(0).IsNull(2))

	list := rec.Column(1).(*array.List)
	start, end := list.ValueOffsets(0)
	assert.EqualValues(t, 3, end-start)
	assert.True(t, list.IsNull(1))
	assert.True(t, list.ListValues().IsNull(1))

	m := rec.Column(2).(*array.Map)
	start, end = m.ValueOffsets(0)
	assert.EqualValues(t, 2, end-start)
	assert.Equal(t, "zero", m.Keys().(*array.String).Value(0))
	assert.True(t, m.IsNull(1))
	assert.True(t, m.Items().IsNull(2))
}

func TestRecordColumnMismatch(t *testing.T) {
	d := dataset.Dataset{
		Schema:  schema.New(schema.Col("a", schema.I32())),
		Columns: [][]any{{1}, {2}},
	}

	_, err := d.Record(memory.DefaultAllocator)
	require.Error(t, err)
}

func TestRowAssembly(t *testing.T) {
	d := dataset.Dataset{
		Schema: schema.New(
			schema.Col("a", schema.I32()),
			schema.Col("b", schema.Utf8()),
		),
		Columns: [][]any{
			{1, nil, 3},
			{"x", "y", nil},
		},
	}

	assert.Equal(t, 3, d.NumRows())
	assert.Equal(t, []any{1, "x"}, d.Row(0))
	assert.Equal(t, []any{nil, "y"}, d.Row(1))
	assert.Equal(t, []any{3, nil}, d.Row(2))
}
