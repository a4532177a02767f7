package fixtures

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/dataeng-fixtures/orcgen/pkg/dataset"
	"github.com/dataeng-fixtures/orcgen/pkg/orcfile"
	"github.com/dataeng-fixtures/orcgen/pkg/schema"
)

// TimestampsSchema holds the same instants twice: once without a zone and
// once in UTC.
//
// TODO: cover non-UTC time zones.
var TimestampsSchema = schema.New(
	schema.Col("timestamp_notz", schema.Ts()),
	schema.Col("timestamp_utc", schema.TsTz("UTC")),
)

// Timestamps is the literal timestamp dataset, one shared value sequence for
// both columns. The 2262 instant sits just inside the nanosecond-epoch range.
func Timestamps() dataset.Dataset {
	ts := func(y int, m time.Month, d, hh, mm, ss int) time.Time {
		return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
	}

	vals := []any{
		nil,
		ts(1970, 1, 1, 0, 0, 0),
		ts(1970, 1, 2, 23, 59, 59),
		ts(1969, 12, 31, 23, 59, 59),
		ts(2262, 4, 11, 11, 47, 16),
		ts(2001, 4, 13, 2, 14, 0),
		ts(2000, 1, 1, 23, 10, 10),
		ts(1900, 1, 1, 14, 25, 14),
	}

	return dataset.Dataset{
		Schema:  TimestampsSchema,
		Columns: [][]any{vals, vals},
	}
}

// OverflowingTimestampsSchema pairs a row id with a timestamp.
var OverflowingTimestampsSchema = schema.New(
	schema.Col("id", schema.I32()),
	schema.Col("timestamp", schema.Ts()),
)

// GenerateTimestamps writes pyarrow_timestamps.orc from the literal dataset
// and overflowing_timestamps.orc from raw (seconds, nanos) pairs. The second
// file holds instants that overflow a nanosecond epoch representation, which
// is why it bypasses the in-memory table layer entirely.
func GenerateTimestamps(dir string, log zerolog.Logger) error {
	out := filepath.Join(dir, "pyarrow_timestamps.orc")
	if err := writeDataset(out, TimestampsSchema, Timestamps(), orcfile.WriterOptions{}); err != nil {
		return fmt.Errorf("writing pyarrow_timestamps: %w", err)
	}
	log.Info().Msgf("wrote %s", out)

	rows := [][]any{
		{1, orcfile.Timestamp{Seconds: 12345678}},
		{2, orcfile.Timestamp{Seconds: -62135596800}},
		{3, orcfile.Timestamp{Seconds: 12345678}},
	}

	out = filepath.Join(dir, "overflowing_timestamps.orc")

	w, err := orcfile.NewWriter(out, OverflowingTimestampsSchema, orcfile.WriterOptions{})
	if err != nil {
		return fmt.Errorf("writing overflowing_timestamps: %w", err)
	}

	for _, row := range rows {
		if err := w.WriteRow(row...); err != nil {
			return fmt.Errorf("writing overflowing_timestamps: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("writing overflowing_timestamps: %w", err)
	}

	log.Info().Msgf("wrote %s", out)

	return nil
}
