// Command gomkvinfo is a small inspection CLI over package format, in the
// spirit of the teacher's example/extracter (github.com/luispater/matroska-go)
// but built on github.com/spf13/cobra the way the author's sibling media CLI
// (luispater/gemini-srt-translator-go) is, rather than a bare func main with
// hardcoded paths.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gomkv/gomkv/format"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gomkvinfo",
		Short:         "Inspect Matroska/WebM containers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "log demuxer internals to stderr")
	root.AddCommand(newProbeCmd(), newInfoCmd(), newPacketsCmd())
	return root
}

func logger() zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func openFile(path string) (*os.File, format.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	inst, err := format.Open(f, format.WithLogger(logger()))
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return f, inst, nil
}
