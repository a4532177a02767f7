// Command generate-orc writes the all-types ORC fixtures, one file per
// compression codec.
package main

import (
	"os"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/dataeng-fixtures/orcgen/pkg/config"
	"github.com/dataeng-fixtures/orcgen/pkg/fixtures"
)

var (
	configFilePath = flag.String("config", "", "path to config file")
	dataDir        = flag.String("dir", "", "override the basic data directory")
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

	dir := cfg.Basic.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("creating data directory")
	}

	if err := fixtures.GenerateAllTypes(dir, log); err != nil {
		log.Fatal().Err(err).Msg("generating alltypes fixtures")
	}
}
