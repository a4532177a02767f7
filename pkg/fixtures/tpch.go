package fixtures

import (
	"fmt"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"

	"github.com/dataeng-fixtures/orcgen/pkg/orcfile"
	"github.com/dataeng-fixtures/orcgen/pkg/schema"
	"github.com/dataeng-fixtures/orcgen/pkg/tblfile"
)

// ConvertTPCH reads <dir>/<table>.tbl for every TPC-H table and writes
// <dir>/<table>.orc with the library's default compression.
func ConvertTPCH(dir string, log zerolog.Logger) error {
	for _, table := range schema.TPCHTables {
		s := schema.TPCH[table]

		rec, err := tblfile.Read(filepath.Join(dir, table+".tbl"), s, memory.DefaultAllocator)
		if err != nil {
			return fmt.Errorf("reading %s: %w", table, err)
		}

		out := filepath.Join(dir, table+".orc")

		w, err := orcfile.NewWriter(out, s, orcfile.WriterOptions{})
		if err != nil {
			rec.Release()
			return fmt.Errorf("writing %s: %w", table, err)
		}

		if err := w.WriteRecord(rec); err != nil {
			rec.Release()
			return fmt.Errorf("writing %s: %w", table, err)
		}

		if err := w.Close(); err != nil {
			rec.Release()
			return fmt.Errorf("writing %s: %w", table, err)
		}

		log.Info().Int64("rows", rec.NumRows()).Msgf("wrote %s", out)
		rec.Release()
	}

	return nil
}
