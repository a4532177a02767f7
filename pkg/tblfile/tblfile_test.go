package tblfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataeng-fixtures/orcgen/pkg/schema"
	"github.com/dataeng-fixtures/orcgen/pkg/tblfile"
)

func writeTbl(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestReadRegion(t *testing.T) {
	path := writeTbl(t, "region.tbl",
		"0|AFRICA|lar deposits blithely\n"+
			"1|AMERICA|hs use ironic requests\n")

	rec, err := tblfile.Read(path, schema.TPCH["region"], memory.DefaultAllocator)
	require.NoError(t, err)
	defer rec.Release()

	require.EqualValues(t, 2, rec.NumRows())
	require.EqualValues(t, 3, rec.NumCols())

	assert.Equal(t, int64(0), rec.Column(0).(*array.Int64).Value(0))
	assert.Equal(t, "AFRICA", rec.Column(1).(*array.String).Value(0))
	assert.Equal(t, "hs use ironic requests", rec.Column(2).(*array.String).Value(1))
}

func TestReadDecimalAndDate(t *testing.T) {
	s := schema.New(
		schema.Col("qty", schema.I32()),
		schema.Col("price", schema.Dec(15, 2)),
		schema.Col("shipped", schema.Date32()),
	)

	path := writeTbl(t, "lineitem.tbl",
		"17|24386.67|1996-03-13\n"+
			"36|10.00|1970-01-02\n")

	rec, err := tblfile.Read(path, s, memory.DefaultAllocator)
	require.NoError(t, err)
	defer rec.Release()

	require.EqualValues(t, 2, rec.NumRows())

	assert.Equal(t, int32(17), rec.Column(0).(*array.Int32).Value(0))
	assert.Equal(t, "2438667", rec.Column(1).(*array.Decimal128).Value(0).BigInt().String())
	assert.EqualValues(t, 1, rec.Column(2).(*array.Date32).Value(1))
}

func TestReadNulls(t *testing.T) {
	s := schema.New(
		schema.Col("id", schema.I64()),
		schema.Col("name", schema.Utf8()),
	)

	path := writeTbl(t, "nulls.tbl", "1|\n")

	rec, err := tblfile.Read(path, s, memory.DefaultAllocator)
	require.NoError(t, err)
	defer rec.Release()

	require.EqualValues(t, 1, rec.NumRows())
	assert.True(t, rec.Column(1).IsNull(0))
}

func TestReadEmpty(t *testing.T) {
	path := writeTbl(t, "empty.tbl", "")

	rec, err := tblfile.Read(path, schema.TPCH["nation"], memory.DefaultAllocator)
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 0, rec.NumRows())
	assert.EqualValues(t, 4, rec.NumCols())
}
