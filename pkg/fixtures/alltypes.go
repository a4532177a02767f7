package fixtures

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dataeng-fixtures/orcgen/pkg/dataset"
	"github.com/dataeng-fixtures/orcgen/pkg/orcfile"
	"github.com/dataeng-fixtures/orcgen/pkg/schema"
)

// AllTypesSchema covers every scalar type in the vocabulary.
//
// TODO: char and varchar, and nested struct/list/map/union variants of this
// dataset.
var AllTypesSchema = schema.New(
	schema.Col("boolean", schema.Bool()),
	schema.Col("int8", schema.I8()),
	schema.Col("int16", schema.I16()),
	schema.Col("int32", schema.I32()),
	schema.Col("int64", schema.I64()),
	schema.Col("float32", schema.F32()),
	schema.Col("float64", schema.F64()),
	schema.Col("decimal", schema.Dec(15, 5)),
	schema.Col("binary", schema.Bytes()),
	schema.Col("utf8", schema.Utf8()),
	schema.Col("date32", schema.Date32()),
)

// AllTypes is the literal all-types dataset: boundary values for every
// column, with an all-null first and last row.
func AllTypes() dataset.Dataset {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	return dataset.Dataset{
		Schema: AllTypesSchema,
		Columns: [][]any{
			{nil, true, false, false, true, true, true, true, true, false, nil},
			{nil, 0, 1, -1, 127, -128, 50, 51, 52, 53, nil},
			{nil, 0, 1, -1, 32767, -32768, 50, 51, 52, 53, nil},
			{nil, 0, 1, -1, 2147483647, -2147483648, 50, 51, 52, 53, nil},
			{nil, 0, 1, -1, int64(math.MaxInt64), int64(math.MinInt64), 50, 51, 52, 53, nil},
			{nil, 0.0, 1.0, -1.0, math.Inf(1), math.Inf(-1), 3.1415927, -3.1415927, 1.1, -1.1, nil},
			{nil, 0.0, 1.0, -1.0, math.Inf(1), math.Inf(-1), 3.14159265359, -3.14159265359, 1.1, -1.1, nil},
			{nil, "0", "1", "-1", "123456789.12345", "-999999999.99999", "-31256.123", "1241000", "1.1", "0.99999", nil},
			{nil, []byte(""), []byte("a"), []byte(" "), []byte("encode"), []byte("decode"), []byte("大熊和奏"), []byte("斉藤朱夏"), []byte("鈴原希実"), []byte("🤔"), nil},
			{nil, "", "a", " ", "encode", "decode", "大熊和奏", "斉藤朱夏", "鈴原希実", "🤔", nil},
			{nil, d(1970, 1, 1), d(1970, 1, 2), d(1969, 12, 31), d(9999, 12, 31), d(1582, 10, 15), d(1582, 10, 16), d(2000, 1, 1), d(3000, 12, 31), d(1900, 1, 1), nil},
		},
	}
}

// GenerateAllTypes writes the all-types dataset once per compression codec.
// Codecs the ORC writer does not implement are skipped with a warning rather
// than attempted and failed. Each file is written into a scratch directory as
// a uuid-named part file, then the single part is moved out as
// <dir>/alltypes.<codec>.orc and the scratch directory removed, mirroring how
// distributed engines lay out their output.
func GenerateAllTypes(dir string, log zerolog.Logger) error {
	d := AllTypes()

	for _, codec := range orcfile.Codecs() {
		if !orcfile.Writable(codec) {
			log.Warn().Str("codec", codec).Msg("codec not implemented by the orc writer, skipping")
			continue
		}

		scratch := filepath.Join(dir, "alltypes."+codec)

		if err := os.RemoveAll(scratch); err != nil {
			return fmt.Errorf("clearing scratch dir: %w", err)
		}
		if err := os.MkdirAll(scratch, 0o755); err != nil {
			return fmt.Errorf("creating scratch dir: %w", err)
		}

		part := filepath.Join(scratch, fmt.Sprintf("part-%s.orc", uuid.New()))
		if err := writeDataset(part, AllTypesSchema, d, orcfile.WriterOptions{Codec: codec}); err != nil {
			return fmt.Errorf("writing alltypes.%s: %w", codec, err)
		}

		matches, err := filepath.Glob(filepath.Join(scratch, "*.orc"))
		if err != nil {
			return fmt.Errorf("globbing scratch dir: %w", err)
		}
		if len(matches) != 1 {
			return fmt.Errorf("expected a single part file in %s, found %d", scratch, len(matches))
		}

		out := filepath.Join(dir, "alltypes."+codec+".orc")
		if err := os.Rename(matches[0], out); err != nil {
			return fmt.Errorf("moving part file: %w", err)
		}
		if err := os.RemoveAll(scratch); err != nil {
			return fmt.Errorf("removing scratch dir: %w", err)
		}

		log.Info().Str("codec", codec).Msgf("wrote %s", out)
	}

	return nil
}
