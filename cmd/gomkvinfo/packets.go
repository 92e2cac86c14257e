package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gomkv/gomkv/matroska"
)

func newPacketsCmd() *cobra.Command {
	var (
		trackIndex int
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "packets <file>",
		Short: "Dump packet timestamps for one track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, inst, err := openFile(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			fd := inst.FormatData()
			if trackIndex < 0 || trackIndex >= len(fd.Tracks) {
				return fmt.Errorf("track index %d out of range (0..%d)", trackIndex, len(fd.Tracks)-1)
			}

			out := cmd.OutOrStdout()
			n := 0
			for limit <= 0 || n < limit {
				pkt, err := inst.ReadPacket()
				if err != nil {
					if errors.Is(err, io.EOF) {
						break
					}
					return err
				}
				if int(pkt.TrackIndex) != trackIndex {
					continue
				}
				fmt.Fprintf(out, "pts=%d dur=%d bytes=%d key=%t\n",
					pkt.Timestamp, pkt.Duration, len(pkt.Data), pkt.Flags&matroska.FlagKeyframe != 0)
				n++
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&trackIndex, "track", 0, "track index to dump")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum packets to print (0 = unlimited)")
	return cmd
}
