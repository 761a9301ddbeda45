// Command wiretagbench round-trips a generated corpus of records through
// both wire formats concurrently and reports how long it took.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/wiretag/wiretag/bench"
	"github.com/wiretag/wiretag/wire"
)

func main() {
	n := pflag.IntP("count", "n", 10000, "number of records to round-trip")
	pflag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	start := time.Now()
	if err := bench.RunCorpus(context.Background(), *n, wire.DefaultLimits); err != nil {
		logger.Fatal().Err(err).Msg("corpus round trip failed")
	}
	logger.Info().Int("count", *n).Dur("elapsed", time.Since(start)).Msg("corpus round trip ok")
}
