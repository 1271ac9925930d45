package cmd

import (
	"path/filepath"
	"strings"

	"github.com/jsphweid/chartdex/midi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	exportTrack  string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVar(&exportTrack, "track", "", "track to export (defaults to the configured track)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (defaults to the chart path with .mid)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Exports a track as a MIDI file",
	Long:  `Writes the tempo map and one instrument track of a chart to a standard MIDI file, then reads the file back to check it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		parsed, err := loadChart(path)
		if err != nil {
			return err
		}

		trackKey := exportTrack
		if trackKey == "" {
			trackKey = config.DefaultTrack
		}
		s, err := midi.FromChart(parsed, trackKey)
		if err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = strings.TrimSuffix(path, filepath.Ext(path)) + ".mid"
		}
		if err := midi.WriteMidiFile(out, s); err != nil {
			return err
		}
		written, err := midi.ReadMidiFile(out)
		if err != nil {
			return errors.Wrapf(err, "could not read back %s", out)
		}
		if len(written.Tracks) != len(s.Tracks) {
			return errors.Errorf("%s has %d tracks, wrote %d", out, len(written.Tracks), len(s.Tracks))
		}
		logger.WithField("track", trackKey).Infof("wrote %s", out)
		return nil
	},
}
