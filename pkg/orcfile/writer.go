package orcfile

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/patrickhuang888/goorc/orc"
	"github.com/patrickhuang888/goorc/orc/api"
	"github.com/patrickhuang888/goorc/orc/config"

	"github.com/dataeng-fixtures/orcgen/pkg/schema"
)

// Rows are buffered into a column batch of this size before being handed to
// the library.
const batchSize = 1024

// WriterOptions are the knobs the fixture writers vary. Zero values leave the
// library defaults in place.
type WriterOptions struct {
	// Codec is one of the names returned by Codecs. Empty means the library
	// default. Only the WritableCodecs subset produces files.
	Codec string

	// CompressionBlockSize in bytes. The fixtures use a small value so that
	// compression frames cross value boundaries.
	CompressionBlockSize int

	StripeSize int
}

// Timestamp is a raw ORC timestamp: seconds since the Unix epoch plus
// nanoseconds. It exists so callers can write values that overflow a
// nanosecond epoch representation.
type Timestamp struct {
	Seconds int64
	Nanos   uint64
}

// Writer writes rows to an ORC file through the goorc library. The file
// layout, run-length encoding, compression framing and statistics are all
// the library's business; the writer only marshals values into its column
// batches.
type Writer struct {
	schema schema.Schema
	lib    orc.Writer
	batch  *api.ColumnVector
	rows   int
}

func NewWriter(path string, s schema.Schema, opts WriterOptions) (*Writer, error) {
	td, err := s.ORC()
	if err != nil {
		return nil, fmt.Errorf("converting schema: %w", err)
	}

	wopts := config.DefaultWriterOptions()

	if opts.Codec != "" {
		kind, err := Codec(opts.Codec)
		if err != nil {
			return nil, err
		}
		wopts.CompressionKind = kind
	}
	if opts.CompressionBlockSize > 0 {
		wopts.ChunkSize = opts.CompressionBlockSize
	}
	if opts.StripeSize > 0 {
		wopts.StripeSize = opts.StripeSize
	}

	lib, err := orc.NewOSFileWriter(path, td, wopts)
	if err != nil {
		return nil, fmt.Errorf("creating orc writer: %w", err)
	}

	// The library builds the vector tree itself so column ids line up with
	// the type description.
	batch, err := td.CreateVector(&api.BatchOption{RowSize: batchSize})
	if err != nil {
		return nil, fmt.Errorf("creating column batch: %w", err)
	}

	return &Writer{
		schema: s,
		lib:    lib,
		batch:  batch,
	}, nil
}

// WriteRow appends one row. Values follow the dataset value vocabulary, plus
// orcfile.Timestamp for raw timestamps.
func (w *Writer) WriteRow(vals ...any) error {
	if len(vals) != len(w.schema.Columns) {
		return fmt.Errorf("row has %d values, schema declares %d columns", len(vals), len(w.schema.Columns))
	}

	for i, v := range vals {
		if err := appendValue(w.batch.Children[i], w.schema.Columns[i].Type, v); err != nil {
			return fmt.Errorf("column %s: %w", w.schema.Columns[i].Name, err)
		}
	}

	w.rows++
	if w.rows >= batchSize {
		return w.flush()
	}

	return nil
}

// WriteRecord appends every row of an arrow record.
func (w *Writer) WriteRecord(rec arrow.Record) error {
	if int(rec.NumCols()) != len(w.schema.Columns) {
		return fmt.Errorf("record has %d columns, schema declares %d", rec.NumCols(), len(w.schema.Columns))
	}

	for i := 0; i < int(rec.NumRows()); i++ {
		row := make([]any, rec.NumCols())
		for j := 0; j < int(rec.NumCols()); j++ {
			v, err := fromArrow(rec.Column(j), i)
			if err != nil {
				return fmt.Errorf("column %s: %w", w.schema.Columns[j].Name, err)
			}
			row[j] = v
		}

		if err := w.WriteRow(row...); err != nil {
			return err
		}
	}

	return nil
}

func (w *Writer) flush() error {
	if w.rows == 0 {
		return nil
	}

	if err := w.lib.Write(w.batch); err != nil {
		return fmt.Errorf("writing batch: %w", err)
	}

	resetBatch(w.batch)
	w.rows = 0

	return nil
}

// Close flushes buffered rows and finalizes the file footer.
func (w *Writer) Close() error {
	if err := w.flush(); err != nil {
		return err
	}

	if err := w.lib.Close(); err != nil {
		return fmt.Errorf("closing orc writer: %w", err)
	}

	return nil
}

func resetBatch(batch *api.ColumnVector) {
	batch.Vector = batch.Vector[:0]
	for _, child := range batch.Children {
		resetBatch(child)
	}
}
