package cmd

import (
	"fmt"

	"github.com/jsphweid/chartdex/chart"
	"github.com/jsphweid/chartdex/model"
	"github.com/spf13/cobra"
)

var (
	convertTicks []uint
	convertTimes []float64
	convertBeats bool
)

func init() {
	convertCmd.Flags().UintSliceVar(&convertTicks, "tick", nil, "ticks to convert to seconds")
	convertCmd.Flags().Float64SliceVar(&convertTimes, "time", nil, "seconds to convert to ticks")
	convertCmd.Flags().BoolVar(&convertBeats, "beats", false, "print the beat grid up to the last converted position")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Converts between ticks and seconds",
	Long:  `Converts ticks to seconds and seconds to ticks using the tempo map of a chart.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := loadChart(args[0])
		if err != nil {
			return err
		}
		tl, err := chart.Timeline(parsed)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		var last model.Tick
		for _, t := range convertTicks {
			tick := model.Tick(t)
			fmt.Fprintf(w, "tick %d = %.6fs\n", tick, tl.TickToTime(tick))
			if tick > last {
				last = tick
			}
		}
		for _, s := range convertTimes {
			tick := tl.TimeToTick(s)
			fmt.Fprintf(w, "%.6fs = tick %d\n", s, tick)
			if tick > last {
				last = tick
			}
		}

		if convertBeats {
			var timeSignatures []model.TimeSignature
			for _, ts := range parsed.SyncTrack.TimeSignatures {
				timeSignatures = append(timeSignatures, ts.Event)
			}
			for _, line := range tl.BeatLines(0, last, timeSignatures) {
				fmt.Fprintf(w, "%8d %10.3f  %s\n", line.Tick, line.Time, line.Kind)
			}
		}
		return nil
	},
}
