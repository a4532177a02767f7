// Package tblfile reads pipe-delimited .tbl files, the dbgen output format,
// against a declared schema.
package tblfile

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/dataeng-fixtures/orcgen/pkg/schema"
)

// Read parses a whole .tbl file into a single arrow record. Files are
// headerless; column names and types come from the schema, in declared
// order. The returned record is retained and owned by the caller.
func Read(path string, s schema.Schema, mem memory.Allocator) (arrow.Record, error) {
	as, err := s.Arrow()
	if err != nil {
		return nil, fmt.Errorf("converting schema: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f, as,
		csv.WithAllocator(mem),
		csv.WithComma('|'),
		csv.WithHeader(false),
		csv.WithNullReader(true, ""),
		csv.WithChunk(-1),
	)
	defer r.Release()

	if !r.Next() {
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		// Empty file: an empty record with the right schema.
		return emptyRecord(as, mem), nil
	}

	rec := r.Record()
	rec.Retain()

	if err := r.Err(); err != nil {
		rec.Release()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return rec, nil
}

func emptyRecord(as *arrow.Schema, mem memory.Allocator) arrow.Record {
	cols := make([]arrow.Array, len(as.Fields()))
	for i, f := range as.Fields() {
		cols[i] = array.MakeArrayOfNull(mem, f.Type, 0)
	}

	rec := array.NewRecord(as, cols, 0)
	for _, c := range cols {
		c.Release()
	}

	return rec
}
