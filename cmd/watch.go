package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/chartdex/chart"
	"github.com/jsphweid/chartdex/constants"
	"github.com/jsphweid/chartdex/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-parses a chart whenever it changes",
	Long:  `Polls a chart file and re-parses it after it stops changing, logging diagnostics and a summary each time.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, args[0], config.WatchInterval)
	},
}

func reparse(path string) {
	parsed, err := loadChart(path)
	if err != nil {
		logger.WithError(err).WithField("file", path).Error("could not parse chart")
		return
	}
	log := logger.WithField("file", path).WithField("length", util.FormatTimespan(chart.Length(parsed)))
	for _, key := range util.GetKeys(parsed.Tracks) {
		log = log.WithField(key, summarize(parsed.Tracks[key]).notes)
	}
	log.Info("parsed chart")
}

// watch polls the modification time every interval and re-parses once the
// file has been quiet for two intervals, so editors saving in bursts only
// trigger one parse.
func watch(ctx context.Context, path string, interval time.Duration) error {
	stats, err := os.Stat(path)
	if err != nil {
		return err
	}
	reparse(path)

	if interval <= 0 {
		interval = constants.DefaultConfig().WatchInterval
	}
	debounced := debounce.New(2 * interval)
	lastMod := stats.ModTime()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats, err := os.Stat(path)
			if err != nil {
				logger.WithError(err).WithField("file", path).Warn("could not stat chart")
				continue
			}
			if stats.ModTime().Equal(lastMod) {
				continue
			}
			lastMod = stats.ModTime()
			debounced(func() { reparse(path) })
		}
	}
}
