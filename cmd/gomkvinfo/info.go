package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gomkv/gomkv/matroska"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print container duration and per-track summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, inst, err := openFile(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			fd := inst.FormatData()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "duration: %.3fs\n", fd.Duration*fd.TimeBase.Float64())
			for i, t := range fd.Tracks {
				fmt.Fprintf(out, "track %d: id=%d type=%s codec=%s start=%d\n",
					i, t.ID, mediaTypeName(t.Ty), t.CodecIDStr, t.StartTime)
			}
			return nil
		},
	}
}

func mediaTypeName(t matroska.MediaType) string {
	switch t {
	case matroska.MediaVideo:
		return "video"
	case matroska.MediaAudio:
		return "audio"
	case matroska.MediaSubtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}
