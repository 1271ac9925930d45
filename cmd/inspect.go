package cmd

import (
	"fmt"
	"io"
	"math"

	"github.com/davecgh/go-spew/spew"
	"github.com/jsphweid/chartdex/chart"
	"github.com/jsphweid/chartdex/model"
	"github.com/jsphweid/chartdex/sample"
	"github.com/jsphweid/chartdex/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	inspectTrack string
	inspectFrom  float64
	inspectTo    float64
	inspectDump  bool
	inspectLimit int
)

func init() {
	inspectCmd.Flags().StringVar(&inspectTrack, "track", "", "list the events of this track, e.g. ExpertSingle")
	inspectCmd.Flags().Float64Var(&inspectFrom, "from", 0, "window start in seconds")
	inspectCmd.Flags().Float64Var(&inspectTo, "to", math.Inf(1), "window end in seconds")
	inspectCmd.Flags().BoolVar(&inspectDump, "dump", false, "dump the whole parsed structure")
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 0, "with --track, list this many events from --from on instead of a window")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspects a chart",
	Long:  `Prints song metadata, tempo changes and per track counts, or the events of one track within a time window.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := loadChart(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if inspectDump {
			spew.Fdump(w, parsed)
			return nil
		}
		if inspectTrack != "" {
			events, ok := parsed.Tracks[inspectTrack]
			if !ok {
				return errors.Errorf("chart has no [%s] track", inspectTrack)
			}
			if inspectLimit > 0 {
				tl, err := chart.Timeline(parsed)
				if err != nil {
					return err
				}
				printEvents(w, sample.First(events, tl.TimeToTick(inspectFrom), inspectLimit))
				return nil
			}
			printEvents(w, sample.Window(events, inspectFrom, inspectTo))
			return nil
		}
		inspect(w, parsed)
		return nil
	},
}

type trackSummary struct {
	notes     int
	chords    int
	hopos     int
	taps      int
	starPower int
	events    int
}

func summarize(events []model.Timed[model.PlayEvent]) trackSummary {
	var s trackSummary
	for _, e := range events {
		switch ev := e.Event.(type) {
		case model.NoteEvent:
			s.notes += 1
			if ev.IsChord {
				s.chords += 1
			}
			if ev.IsHOPO {
				s.hopos += 1
			}
			if ev.Tap {
				s.taps += 1
			}
		case model.StarPowerEvent:
			s.starPower += 1
		case model.SimpleEvent:
			s.events += 1
		}
	}
	return s
}

func inspect(w io.Writer, c *model.ParsedChart) {
	fmt.Fprintf(w, "name: %v\n", c.Song.Name)
	fmt.Fprintf(w, "artist: %v\n", c.Song.Artist)
	fmt.Fprintf(w, "resolution: %v\n", c.Song.Resolution)
	fmt.Fprintf(w, "length: %v\n", util.FormatTimespan(chart.Length(c)))

	for _, e := range c.SyncTrack.AllEvents {
		switch ev := e.Event.(type) {
		case model.Bpm:
			fmt.Fprintf(w, "%8d %9s  bpm %v\n", ev.Tick, util.FormatTimespan(e.AssignedTime), ev.Value)
		case model.TimeSignature:
			fmt.Fprintf(w, "%8d %9s  ts %v/%v\n", ev.Tick, util.FormatTimespan(e.AssignedTime), ev.Numerator, ev.Denominator)
		}
	}
	fmt.Fprintf(w, "events: %v\n", len(c.Events))

	var noteCounts []int
	for _, key := range util.GetKeys(c.Tracks) {
		s := summarize(c.Tracks[key])
		noteCounts = append(noteCounts, s.notes)
		fmt.Fprintf(w, "[%v] notes: %v chords: %v hopos: %v taps: %v starpower: %v events: %v\n",
			key, s.notes, s.chords, s.hopos, s.taps, s.starPower, s.events)
	}
	fmt.Fprintf(w, "total notes: %v\n", util.Sum(noteCounts))
	fmt.Fprintf(w, "diagnostics: %v\n", len(c.Diagnostics))
}

func printEvents(w io.Writer, events []model.Timed[model.PlayEvent]) {
	for _, e := range events {
		prefix := fmt.Sprintf("%8d %10.3f", e.EventTick(), e.AssignedTime)
		switch ev := e.Event.(type) {
		case model.NoteEvent:
			fmt.Fprintf(w, "%s  note %d len %d hopo=%v chord=%v forced=%v tap=%v\n",
				prefix, ev.Note, ev.Duration, ev.IsHOPO, ev.IsChord, ev.Forced, ev.Tap)
		case model.StarPowerEvent:
			fmt.Fprintf(w, "%s  starpower len %d\n", prefix, ev.Duration)
		case model.SimpleEvent:
			fmt.Fprintf(w, "%s  event %q\n", prefix, ev.Value)
		}
	}
}
