// Package feather writes arrow tables as Arrow IPC files, the format the
// external test suite consumes as Feather.
package feather

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

func Write(path string, rec arrow.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(rec.Schema()))
	if err != nil {
		return fmt.Errorf("creating ipc writer: %w", err)
	}

	if err := w.Write(rec); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("closing ipc writer: %w", err)
	}

	return f.Close()
}

// Read loads every record batch of an IPC file into a single slice. The
// returned records are retained and owned by the caller.
func Read(path string, mem memory.Allocator) ([]arrow.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(mem))
	if err != nil {
		return nil, fmt.Errorf("creating ipc reader: %w", err)
	}
	defer r.Close()

	var recs []arrow.Record

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			for _, r := range recs {
				r.Release()
			}
			return nil, fmt.Errorf("reading record: %w", err)
		}

		rec.Retain()
		recs = append(recs, rec)
	}

	return recs, nil
}
