// Command wiretagdump inspects a wiretag-encoded file: it identifies the
// container format from the magic bytes and prints a schema-free tag walk
// of the body, the same way wiretagdump's ancestor tool summarized a single
// TLV record.
package main

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/wiretag/wiretag/tag"
	"github.com/wiretag/wiretag/wire"
)

func main() {
	in := pflag.StringP("in", "i", "-", "input file (or - for stdin)")
	hexIn := pflag.Bool("hex-in", false, "input is hex-encoded text, not raw bytes")
	info := pflag.Bool("info", false, "print a tag-by-tag structural dump")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug-level logging")
	pflag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log.Logger = logger

	raw, err := readInput(*in, *hexIn)
	if err != nil {
		logger.Fatal().Err(err).Str("in", *in).Msg("read input")
	}

	format, body, err := identifyContainer(raw)
	if err != nil {
		logger.Fatal().Err(err).Msg("identify container")
	}
	logger.Debug().Str("format", format).Int("bytes", len(body)).Msg("identified container")

	if !*info {
		os.Stdout.WriteString(format + "\n")
		return
	}

	r := wire.NewSliceReader(body)
	d := newDescriber(r)
	summary, err := d.describeValue()
	if err != nil {
		logger.Fatal().Err(err).Msg("dump")
	}
	os.Stdout.WriteString(format + "\n" + summary + "\n")
}

func readInput(path string, isHex bool) ([]byte, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if !isHex {
		return raw, nil
	}
	decoded, err := hex.DecodeString(string(bytes.TrimSpace(raw)))
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

func identifyContainer(raw []byte) (format string, body []byte, err error) {
	if len(raw) < 2 {
		return "", nil, wire.ErrShortBuffer
	}
	switch {
	case raw[0] == tag.EncodeMagic[0] && raw[1] == tag.EncodeMagic[1]:
		return "encode", raw[2:], nil
	case raw[0] == tag.PackMagic[0] && raw[1] == tag.PackMagic[1]:
		return "pack", raw[2:], nil
	default:
		return "unframed", raw, nil
	}
}
