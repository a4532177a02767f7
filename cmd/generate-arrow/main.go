// Command generate-arrow converts the golden-file ORC fixtures to Feather
// (Arrow IPC) files consumed by the external test suite.
package main

import (
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/dataeng-fixtures/orcgen/pkg/config"
	"github.com/dataeng-fixtures/orcgen/pkg/fixtures"
)

var (
	configFilePath = flag.String("config", "", "path to config file")
	dataDir        = flag.String("dir", "", "override the integration data directory")
)

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	cfg, err := config.Resolve(*configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing log level")
	}
	log = log.Level(level)

	dir := cfg.Integration.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}

	if err := fixtures.ConvertExpected(dir, log); err != nil {
		log.Fatal().Err(err).Msg("converting golden files")
	}
}
