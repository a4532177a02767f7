// Package fixtures contains the fixture-generation procedures. Each entry
// point is an independent, sequential procedure: declare a schema, lay out
// literal data (or read it from disk), hand the table to the format
// libraries, and do trivial filesystem bookkeeping on the output.
package fixtures

import (
	"fmt"

	"github.com/dataeng-fixtures/orcgen/pkg/dataset"
	"github.com/dataeng-fixtures/orcgen/pkg/orcfile"
	"github.com/dataeng-fixtures/orcgen/pkg/schema"
)

func writeDataset(path string, s schema.Schema, d dataset.Dataset, opts orcfile.WriterOptions) error {
	w, err := orcfile.NewWriter(path, s, opts)
	if err != nil {
		return err
	}

	for i := 0; i < d.NumRows(); i++ {
		if err := w.WriteRow(d.Row(i)...); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	return nil
}

func repeat(vals []any, n int) []any {
	out := make([]any, 0, len(vals)*n)
	for i := 0; i < n; i++ {
		out = append(out, vals...)
	}

	return out
}
