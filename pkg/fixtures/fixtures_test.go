package fixtures_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataeng-fixtures/orcgen/pkg/fixtures"
	"github.com/dataeng-fixtures/orcgen/pkg/orcfile"
)

func TestFilterExpected(t *testing.T) {
	testCases := []struct {
		name   string
		paths  []string
		expect []string
	}{
		{
			name: "strips the golden-file suffix",
			paths: []string{
				"tests/integration/data/expected/TestOrcFile.test1.jsn.gz",
				"tests/integration/data/expected/demo-12-zlib.jsn.gz",
			},
			expect: []string{"TestOrcFile.test1", "demo-12-zlib"},
		},
		{
			name: "drops ignored fixtures",
			paths: []string{
				"tests/integration/data/expected/TestOrcFile.testTimestamp.jsn.gz",
				"tests/integration/data/expected/TestOrcFile.testDate1900.jsn.gz",
			},
			expect: []string{"TestOrcFile.testDate1900"},
		},
		{
			name:   "keeps names without the suffix untouched",
			paths:  []string{"expected/nested_struct"},
			expect: []string{"nested_struct"},
		},
		{
			name:   "empty",
			paths:  nil,
			expect: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, fixtures.FilterExpected(tc.paths))
		})
	}
}

func TestAllTypesShape(t *testing.T) {
	d := fixtures.AllTypes()

	require.Len(t, d.Columns, len(fixtures.AllTypesSchema.Columns))
	require.Equal(t, 11, d.NumRows())

	for i, col := range d.Columns {
		name := fixtures.AllTypesSchema.Columns[i].Name
		assert.Nil(t, col[0], "first row of %s should be null", name)
		assert.Nil(t, col[len(col)-1], "last row of %s should be null", name)
	}

	// The literal data must materialize cleanly against the declared schema.
	rec, err := d.Record(memory.DefaultAllocator)
	require.NoError(t, err)
	rec.Release()
}

func TestEncodingsShape(t *testing.T) {
	d := fixtures.Encodings()

	require.Len(t, d.Columns, len(fixtures.EncodingsSchema.Columns))
	require.Equal(t, 5, d.NumRows())

	rec, err := d.Record(memory.DefaultAllocator)
	require.NoError(t, err)
	rec.Release()
}

// Generating the per-codec files must leave exactly alltypes.<codec>.orc for
// every codec the writer implements: part files moved out, scratch
// directories removed, unimplemented codecs skipped instead of attempted.
func TestGenerateAllTypesBookkeeping(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, fixtures.GenerateAllTypes(dir, zerolog.Nop()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		require.False(t, e.IsDir(), "scratch directory %s should have been removed", e.Name())
		names = append(names, e.Name())
	}

	expect := make([]string, 0, len(orcfile.WritableCodecs()))
	for _, codec := range orcfile.WritableCodecs() {
		expect = append(expect, "alltypes."+codec+".orc")
	}
	assert.ElementsMatch(t, expect, names)

	// Same logical rows no matter the codec.
	want, _, err := orcfile.Read(filepath.Join(dir, "alltypes.none.orc"), memory.DefaultAllocator)
	require.NoError(t, err)
	defer want.Release()

	for _, codec := range orcfile.WritableCodecs()[1:] {
		got, _, err := orcfile.Read(filepath.Join(dir, "alltypes."+codec+".orc"), memory.DefaultAllocator)
		require.NoError(t, err)
		assert.True(t, array.RecordEqual(want, got), "codec %s changed the recovered values", codec)
		got.Release()
	}
}

func TestGenerateTimestamps(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, fixtures.GenerateTimestamps(dir, zerolog.Nop()))

	rec, s, err := orcfile.Read(filepath.Join(dir, "pyarrow_timestamps.orc"), memory.DefaultAllocator)
	require.NoError(t, err)
	defer rec.Release()

	require.EqualValues(t, 8, rec.NumRows())
	require.EqualValues(t, 2, rec.NumCols())
	assert.Equal(t, "struct<timestamp_notz:timestamp,timestamp_utc:timestamp>", s.String())

	notz := rec.Column(0).(*array.Timestamp)
	utc := rec.Column(1).(*array.Timestamp)
	assert.True(t, notz.IsNull(0))
	for i := 1; i < 8; i++ {
		assert.Equal(t, notz.Value(i), utc.Value(i), "row %d should hold the same instant in both columns", i)
	}

	// The overflowing file can only be checked for presence here: its rows
	// do not fit a nanosecond epoch, which is the point of the fixture.
	_, err = os.Stat(filepath.Join(dir, "overflowing_timestamps.orc"))
	require.NoError(t, err)
}
