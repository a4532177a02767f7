package config

import (
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	defaultExtension = "yaml"
	defaultTagName   = "yaml"
)

type Binder interface {
	Bind(v *viper.Viper) error
}

type Loader interface {
	Load(name, path, envPrefix string, binder Binder) (Config, error)
}

// Config locates the fixture trees the tools write into. Paths are relative
// to the working directory unless absolute.
type Config struct {
	Basic       Basic       `yaml:"basic"`
	Integration Integration `yaml:"integration"`
	Benchmark   Benchmark   `yaml:"benchmark"`

	LogLevel string `yaml:"log_level"`
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Basic, validation.Required),
		validation.Field(&c.Integration, validation.Required),
		validation.Field(&c.Benchmark, validation.Required),
		validation.Field(&c.LogLevel, validation.Required, validation.In("trace", "debug", "info", "warn", "error")),
	)
}

// Basic is the tree holding the hand-declared ORC fixtures.
type Basic struct {
	DataDir string `yaml:"data_dir"`
}

func (b Basic) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.DataDir, validation.Required),
	)
}

// Integration is the tree holding golden files and their arrow conversions.
type Integration struct {
	DataDir string `yaml:"data_dir"`
}

func (i Integration) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.DataDir, validation.Required),
	)
}

// Benchmark is the tree holding TPC-H .tbl inputs and their ORC conversions.
type Benchmark struct {
	DataDir string `yaml:"data_dir"`
}

func (b Benchmark) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.DataDir, validation.Required),
	)
}

// Default reproduces the conventional directory layout.
func Default() Config {
	return Config{
		Basic:       Basic{DataDir: "tests/basic/data"},
		Integration: Integration{DataDir: "tests/integration/data"},
		Benchmark:   Benchmark{DataDir: "benchmark_data"},
		LogLevel:    "info",
	}
}

// envBindings maps environment overrides onto config keys.
var envBindings = map[string]string{
	"ORCGEN_BASIC_DATA_DIR":       "basic.data_dir",
	"ORCGEN_INTEGRATION_DATA_DIR": "integration.data_dir",
	"ORCGEN_BENCHMARK_DATA_DIR":   "benchmark.data_dir",
	"ORCGEN_LOG_LEVEL":            "log_level",
}

// Resolve loads and validates the config file when one is given and falls
// back to the conventional layout otherwise. Environment variables from
// envBindings override file values.
func Resolve(configFile string) (Config, error) {
	if configFile == "" {
		return Default(), nil
	}

	fileParts, err := ProcessConfigPath(configFile)
	if err != nil {
		return Config{}, err
	}

	cfg, err := NewFileSystemLoader().Load(fileParts.FileName, fileParts.Path, "ORCGEN", NewEnvBinder(envBindings))
	if err != nil {
		return Config{}, err
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

type FileParts struct {
	FileName string
	Path     string
}

func ProcessConfigPath(configFile string) (FileParts, error) {
	absolutePath, err := filepath.Abs(configFile)
	if err != nil {
		return FileParts{}, fmt.Errorf("convert to absolute path: %w", err)
	}

	fileName := filepath.Base(absolutePath)
	path := filepath.Dir(absolutePath)
	extension := filepath.Ext(fileName)

	if strings.ReplaceAll(strings.ToLower(extension), ".", "") != defaultExtension {
		return FileParts{}, fmt.Errorf("config file must have extension %s, got: %s", defaultExtension, extension)
	}

	return FileParts{
		FileName: fileName[:len(fileName)-len(extension)],
		Path:     path,
	}, nil
}

func NewFileSystemLoader() *FileSystemLoader {
	return &FileSystemLoader{}
}

type FileSystemLoader struct{}

func (fs *FileSystemLoader) Load(name, path, envPrefix string, b Binder) (Config, error) {
	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName(name)
	v.SetConfigType(defaultExtension)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // So that env vars are translated properly
	v.AutomaticEnv()

	if b != nil {
		err := b.Bind(v)
		if err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix(envPrefix)

	err := v.ReadInConfig()
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var config Config

	err = v.Unmarshal(&config, func(cfg *mapstructure.DecoderConfig) {
		cfg.TagName = defaultTagName // We use yaml tags in the config structs so we can marshal to yaml
	})
	if err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return config, nil
}

type EnvBinder struct {
	binders map[string]string
}

func (e *EnvBinder) Bind(v *viper.Viper) error {
	for envVar, key := range e.binders {
		err := v.BindEnv(key, envVar)
		if err != nil {
			return fmt.Errorf("bind env var %s to key %s: %w", envVar, key, err)
		}
	}

	return nil
}

func NewEnvBinder(binders map[string]string) *EnvBinder {
	return &EnvBinder{
		binders: binders,
	}
}
