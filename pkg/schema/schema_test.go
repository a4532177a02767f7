package schema_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataeng-fixtures/orcgen/pkg/schema"
)

func TestSchemaString(t *testing.T) {
	testCases := []struct {
		name   string
		schema schema.Schema
		expect string
	}{
		{
			name: "scalars",
			schema: schema.New(
				schema.Col("a", schema.Bool()),
				schema.Col("b", schema.I8()),
				schema.Col("c", schema.I16()),
				schema.Col("d", schema.I32()),
				schema.Col("e", schema.I64()),
				schema.Col("f", schema.F32()),
				schema.Col("g", schema.F64()),
			),
			expect: "struct<a:boolean,b:tinyint,c:smallint,d:int,e:bigint,f:float,g:double>",
		},
		{
			name: "decimal and temporal",
			schema: schema.New(
				schema.Col("dec", schema.Dec(15, 5)),
				schema.Col("bin", schema.Bytes()),
				schema.Col("s", schema.Utf8()),
				schema.Col("day", schema.Date32()),
				schema.Col("at", schema.Ts()),
			),
			expect: "struct<dec:decimal(15,5),bin:binary,s:string,day:date,at:timestamp>",
		},
		{
			name: "nested struct",
			schema: schema.New(
				schema.Col("nest", schema.StructOf(
					schema.Col("a", schema.F32()),
					schema.Col("b", schema.Bool()),
				)),
			),
			expect: "struct<nest:struct<a:float,b:boolean>>",
		},
		{
			name: "list and map",
			schema: schema.New(
				schema.Col("value", schema.ListOf(schema.I32())),
				schema.Col("map", schema.MapOf(schema.Utf8(), schema.I32())),
			),
			expect: "struct<value:array<int>,map:map<string,int>>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.schema.String())
		})
	}
}

func TestArrowConversion(t *testing.T) {
	s := schema.New(
		schema.Col("boolean", schema.Bool()),
		schema.Col("int8", schema.I8()),
		schema.Col("decimal", schema.Dec(15, 5)),
		schema.Col("utf8", schema.Utf8()),
		schema.Col("date32", schema.Date32()),
		schema.Col("ts_utc", schema.TsTz("UTC")),
		schema.Col("values", schema.ListOf(schema.F32())),
	)

	as, err := s.Arrow()
	require.NoError(t, err)

	require.Len(t, as.Fields(), 7)

	assert.True(t, arrow.TypeEqual(arrow.FixedWidthTypes.Boolean, as.Field(0).Type))
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int8, as.Field(1).Type))
	assert.True(t, arrow.TypeEqual(&arrow.Decimal128Type{Precision: 15, Scale: 5}, as.Field(2).Type))
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, as.Field(3).Type))
	assert.True(t, arrow.TypeEqual(arrow.FixedWidthTypes.Date32, as.Field(4).Type))
	assert.True(t, arrow.TypeEqual(&arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}, as.Field(5).Type))
	assert.True(t, arrow.TypeEqual(arrow.ListOf(arrow.PrimitiveTypes.Float32), as.Field(6).Type))

	for _, f := range as.Fields() {
		assert.True(t, f.Nullable, "column %s should be nullable", f.Name)
	}
}

// The type description carries no decimal precision or scale, so decimal
// columns come back widened to decimal(38,0); everything else round-trips
// exactly.
func TestORCRoundTrip(t *testing.T) {
	for name, s := range schema.TPCH {
		t.Run(name, func(t *testing.T) {
			td, err := s.ORC()
			require.NoError(t, err)

			back, err := schema.FromORC(td)
			require.NoError(t, err)

			want := schema.Schema{Columns: make([]schema.Column, len(s.Columns))}
			for i, c := range s.Columns {
				if c.Type.Kind == schema.Decimal {
					c.Type = schema.Dec(38, 0)
				}
				want.Columns[i] = c
			}

			if diff := cmp.Diff(want, back); diff != "" {
				t.Errorf("schema mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTPCHSchemas(t *testing.T) {
	var buf bytes.Buffer

	for _, table := range schema.TPCHTables {
		s, ok := schema.TPCH[table]
		require.True(t, ok, "missing schema for %s", table)

		fmt.Fprintf(&buf, "%s: %s\n", table, s)
	}

	g := goldie.New(t)
	g.Assert(t, "tpch_schemas", buf.Bytes())
}
