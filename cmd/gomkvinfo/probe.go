package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gomkv/gomkv/format"
)

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Open a file and print its track count and time base (no probe score)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			inst, err := format.Open(f, format.WithLogger(logger()))
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "no demuxer matched: %v\n", err)
				return nil
			}
			fd := inst.FormatData()
			fmt.Fprintf(cmd.OutOrStdout(), "matroska: %d track(s), timebase %d/%d\n",
				len(fd.Tracks), fd.TimeBase.Num, fd.TimeBase.Den)
			return nil
		},
	}
}
