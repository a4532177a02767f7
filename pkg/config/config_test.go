package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataeng-fixtures/orcgen/pkg/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())

	assert.Equal(t, "tests/basic/data", cfg.Basic.DataDir)
	assert.Equal(t, "tests/integration/data", cfg.Integration.DataDir)
	assert.Equal(t, "benchmark_data", cfg.Benchmark.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	raw := `basic:
  data_dir: /data/basic
integration:
  data_dir: /data/integration
benchmark:
  data_dir: /data/benchmark
log_level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o644))

	cfg, err := config.NewFileSystemLoader().Load("config", dir, "ORCGEN", nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	expect := config.Config{
		Basic:       config.Basic{DataDir: "/data/basic"},
		Integration: config.Integration{DataDir: "/data/integration"},
		Benchmark:   config.Benchmark{DataDir: "/data/benchmark"},
		LogLevel:    "debug",
	}

	if diff := cmp.Diff(expect, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(cfg *config.Config)
		expectErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *config.Config) {},
		},
		{
			name: "missing data dir",
			mutate: func(cfg *config.Config) {
				cfg.Basic.DataDir = ""
			},
			expectErr: true,
		},
		{
			name: "bogus log level",
			mutate: func(cfg *config.Config) {
				cfg.LogLevel = "verbose"
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessConfigPath(t *testing.T) {
	parts, err := config.ProcessConfigPath("some/dir/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "config", parts.FileName)

	_, err = config.ProcessConfigPath("some/dir/config.json")
	assert.Error(t, err)
}

func TestResolveWithoutFile(t *testing.T) {
	cfg, err := config.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestResolveEnvOverride(t *testing.T) {
	dir := t.TempDir()

	raw := `basic:
  data_dir: /data/basic
integration:
  data_dir: /data/integration
benchmark:
  data_dir: /data/benchmark
log_level: debug
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	t.Setenv("ORCGEN_BASIC_DATA_DIR", "/env/basic")
	t.Setenv("ORCGEN_LOG_LEVEL", "warn")

	cfg, err := config.Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, "/env/basic", cfg.Basic.DataDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/data/integration", cfg.Integration.DataDir)
	assert.Equal(t, "/data/benchmark", cfg.Benchmark.DataDir)
}
