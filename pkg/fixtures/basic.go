package fixtures

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"

	"github.com/dataeng-fixtures/orcgen/pkg/dataset"
	"github.com/dataeng-fixtures/orcgen/pkg/orcfile"
	"github.com/dataeng-fixtures/orcgen/pkg/schema"
)

// f32Seed makes the large float fixture reproducible between runs.
const f32Seed = 42

// Fixture is one basic ORC fixture: a declared schema, its literal data and
// the writer knobs it is written with.
type Fixture struct {
	Name   string
	Schema schema.Schema
	Opts   orcfile.WriterOptions
	Data   func() dataset.Dataset
}

// A small compression block size ensures compression frames cross value
// boundaries.
func defaultOpts() orcfile.WriterOptions {
	return orcfile.WriterOptions{Codec: "none", CompressionBlockSize: 32}
}

func zlibOpts() orcfile.WriterOptions {
	o := defaultOpts()
	o.Codec = "zlib"
	return o
}

// BasicFixtures lists the nesting and encoding fixtures in write order.
func BasicFixtures() []Fixture {
	return []Fixture{
		{
			Name: "nested_struct",
			Schema: schema.New(
				schema.Col("nest", schema.StructOf(
					schema.Col("a", schema.F32()),
					schema.Col("b", schema.Bool()),
				)),
			),
			Opts: defaultOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{{
					[]any{1.0, true},
					[]any{3.0, nil},
					[]any{nil, nil},
					nil,
					[]any{-3.0, nil},
				}}}
			},
		},
		{
			Name: "nested_array",
			Schema: schema.New(
				schema.Col("value", schema.ListOf(schema.I32())),
			),
			Opts: defaultOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{{
					[]any{1, nil, 3, 43, 5},
					[]any{5, nil, 32, 4, 15},
					[]any{16, nil, 3, 4, 5, 6},
					nil,
					[]any{3, nil},
				}}}
			},
		},
		{
			Name: "nested_array_float",
			Schema: schema.New(
				schema.Col("value", schema.ListOf(schema.F32())),
			),
			Opts: defaultOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{{
					[]any{1.0, 3.0},
					[]any{nil, 2.0},
				}}}
			},
		},
		{
			Name: "nested_array_struct",
			Schema: schema.New(
				schema.Col("value", schema.ListOf(schema.StructOf(
					schema.Col("a", schema.F32()),
					schema.Col("b", schema.I32()),
					schema.Col("c", schema.Utf8()),
				))),
			),
			Opts: defaultOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{{
					[]any{[]any{1.0, 1, "01"}, []any{2.0, 2, "02"}},
					[]any{nil, []any{3.0, 3, "03"}},
				}}}
			},
		},
		{
			Name: "nested_map",
			Schema: schema.New(
				schema.Col("map", schema.MapOf(schema.Utf8(), schema.I32())),
			),
			Opts: defaultOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{{
					[]dataset.KV{{K: "zero", V: 0}, {K: "one", V: 1}},
					nil,
					[]dataset.KV{{K: "two", V: 2}, {K: "tree", V: 3}},
					[]dataset.KV{{K: "one", V: 1}, {K: "two", V: 2}, {K: "nill", V: nil}},
				}}}
			},
		},
		{
			Name: "nested_map_struct",
			Schema: schema.New(
				schema.Col("value", schema.MapOf(schema.Utf8(), schema.StructOf(
					schema.Col("a", schema.F32()),
					schema.Col("b", schema.I32()),
					schema.Col("c", schema.Utf8()),
				))),
			),
			Opts: defaultOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{{
					[]dataset.KV{
						{K: "01", V: []any{1.0, 1, "01"}},
						{K: "02", V: []any{2.0, 1, "02"}},
					},
					nil,
					[]dataset.KV{
						{K: "03", V: []any{3.0, 3, "03"}},
						{K: "04", V: []any{4.0, 4, "04"}},
					},
				}}}
			},
		},
		{
			Name:   "test",
			Schema: EncodingsSchema,
			Opts:   defaultOpts(),
			Data:   Encodings,
		},
		{
			Name:   "long_bool",
			Schema: schema.New(schema.Col("long", schema.Bool())),
			Opts:   defaultOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{repeat([]any{true}, 32)}}
			},
		},
		{
			Name:   "long_bool_gzip",
			Schema: schema.New(schema.Col("long", schema.Bool())),
			Opts:   zlibOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{repeat([]any{true}, 32)}}
			},
		},
		{
			Name:   "string_long",
			Schema: schema.New(schema.Col("dict", schema.Utf8())),
			Opts:   defaultOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{repeat([]any{"abcd", "efgh"}, 32)}}
			},
		},
		{
			// The writer has no dictionary threshold knob; it picks the
			// string encoding itself.
			Name:   "string_dict",
			Schema: schema.New(schema.Col("dict", schema.Utf8())),
			Opts:   defaultOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{repeat([]any{"abc", "efgh"}, 32)}}
			},
		},
		{
			Name:   "string_dict_gzip",
			Schema: schema.New(schema.Col("dict", schema.Utf8())),
			Opts:   zlibOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{repeat([]any{"abc", "efgh"}, 32)}}
			},
		},
		{
			Name:   "string_long_long",
			Schema: schema.New(schema.Col("dict", schema.Utf8())),
			Opts:   defaultOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{repeat([]any{"abcd", "efgh"}, 10000/2)}}
			},
		},
		{
			Name:   "string_long_long_gzip",
			Schema: schema.New(schema.Col("dict", schema.Utf8())),
			Opts:   zlibOpts(),
			Data: func() dataset.Dataset {
				return dataset.Dataset{Columns: [][]any{repeat([]any{"abcd", "efgh"}, 10000/2)}}
			},
		},
		{
			Name:   "f32_long_long_gzip",
			Schema: schema.New(schema.Col("dict", schema.F32())),
			Opts:   zlibOpts(),
			Data: func() dataset.Dataset {
				rnd := rand.New(rand.NewSource(f32Seed))
				col := make([]any, 1000000)
				for i := range col {
					col[i] = float32(rnd.Float64())
				}
				return dataset.Dataset{Columns: [][]any{col}}
			},
		},
	}
}

// EncodingsSchema is the wide dataset whose column contents steer the
// library into its different integer, string and dictionary encodings.
var EncodingsSchema = schema.New(
	schema.Col("a", schema.F32()),
	schema.Col("b", schema.Bool()),
	schema.Col("str_direct", schema.Utf8()),
	schema.Col("d", schema.Utf8()),
	schema.Col("e", schema.Utf8()),
	schema.Col("f", schema.Utf8()),
	schema.Col("int_short_repeated", schema.I32()),
	schema.Col("int_neg_short_repeated", schema.I32()),
	schema.Col("int_delta", schema.I32()),
	schema.Col("int_neg_delta", schema.I32()),
	schema.Col("int_direct", schema.I32()),
	schema.Col("int_neg_direct", schema.I32()),
	schema.Col("bigint_direct", schema.I64()),
	schema.Col("bigint_neg_direct", schema.I64()),
	schema.Col("bigint_other", schema.I64()),
	schema.Col("utf8_increase", schema.Utf8()),
	schema.Col("utf8_decrease", schema.Utf8()),
	schema.Col("timestamp_simple", schema.Ts()),
	schema.Col("date_simple", schema.Date32()),
	schema.Col("tinyint_simple", schema.I8()),
)

func Encodings() dataset.Dataset {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	return dataset.Dataset{
		Schema: EncodingsSchema,
		Columns: [][]any{
			{1.0, 2.0, nil, 4.0, 5.0},
			{true, false, nil, true, false},
			{"a", "cccccc", nil, "ddd", "ee"},
			{"a", "bb", nil, "ccc", "ddd"},
			{"ddd", "cc", nil, "bb", "a"},
			{"aaaaa", "bbbbb", nil, "ccccc", "ddddd"},
			{5, 5, nil, 5, 5},
			{-5, -5, nil, -5, -5},
			{1, 2, nil, 4, 5},
			{5, 4, nil, 2, 1},
			{1, 6, nil, 3, 2},
			{-1, -6, nil, -3, -2},
			{1, 6, nil, 3, 2},
			{-1, -6, nil, -3, -2},
			{5, -5, 1, 5, 5},
			{"a", "bb", "ccc", "dddd", "eeeee"},
			{"eeeee", "dddd", "ccc", "bb", "a"},
			{
				time.Date(2023, 4, 1, 20, 15, 30, 2000000, time.UTC),
				time.Unix(1629617204, 525777000).UTC(),
				time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
			},
			{d(2023, 4, 1), d(2023, 3, 1), d(2023, 1, 1), d(2023, 2, 1), d(2023, 3, 1)},
			{-1, nil, 1, 127, -127},
		},
	}
}

// WriteBasicFixtures writes every basic fixture, then opens each file again
// and decodes all rows as a smoke check that the output is well formed.
func WriteBasicFixtures(dir string, log zerolog.Logger) error {
	for _, f := range BasicFixtures() {
		out := filepath.Join(dir, f.Name+".orc")

		if err := writeDataset(out, f.Schema, f.Data(), f.Opts); err != nil {
			return fmt.Errorf("writing %s: %w", f.Name, err)
		}

		rec, _, err := orcfile.Read(out, memory.DefaultAllocator)
		if err != nil {
			return fmt.Errorf("reading back %s: %w", f.Name, err)
		}
		rec.Release()

		log.Info().Msgf("wrote %s", out)
	}

	return nil
}
