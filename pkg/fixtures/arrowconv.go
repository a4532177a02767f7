package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"

	"github.com/dataeng-fixtures/orcgen/pkg/feather"
	"github.com/dataeng-fixtures/orcgen/pkg/orcfile"
)

// ignoredExpected lists golden files skipped during conversion.
var ignoredExpected = []string{
	"TestOrcFile.testTimestamp", // root data type isn't a struct
}

// FilterExpected turns golden-file paths into bare fixture names: the base
// name with the .jsn.gz suffix dropped, minus the ignore list.
func FilterExpected(paths []string) []string {
	names := make([]string, 0, len(paths))

	for _, p := range paths {
		name := strings.TrimSuffix(filepath.Base(p), ".jsn.gz")
		if slices.Contains(ignoredExpected, name) {
			continue
		}
		names = append(names, name)
	}

	return names
}

// ExpectedNames lists the fixture names under <dir>/expected.
func ExpectedNames(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "expected", "*"))
	if err != nil {
		return nil, fmt.Errorf("globbing expected files: %w", err)
	}

	return FilterExpected(paths), nil
}

// ConvertExpected converts <dir>/<name>.orc to
// <dir>/expected_arrow/<name>.feather for every golden-file name.
func ConvertExpected(dir string, log zerolog.Logger) error {
	names, err := ExpectedNames(dir)
	if err != nil {
		return err
	}

	outDir := filepath.Join(dir, "expected_arrow")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	for _, name := range names {
		log.Info().Msgf("converting %s from orc to feather", name)

		rec, _, err := orcfile.Read(filepath.Join(dir, name+".orc"), memory.DefaultAllocator)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}

		err = feather.Write(filepath.Join(outDir, name+".feather"), rec)
		rec.Release()
		if err != nil {
			return fmt.Errorf("converting %s: %w", name, err)
		}
	}

	return nil
}
