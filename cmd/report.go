package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/jsphweid/chartdex/chart"
	"github.com/jsphweid/chartdex/file"
	"github.com/jsphweid/chartdex/util"
	"github.com/remeh/sizedwaitgroup"
	"github.com/spf13/cobra"
)

var reportMax int

func init() {
	reportCmd.Flags().IntVar(&reportMax, "max", 0, "only parse this many charts (0 for all)")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <dir>",
	Short: "Creates a report",
	Long:  `Parses every .chart file under a directory and reports failures, diagnostics, sizes and song lengths.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := file.GatherChartPaths(args[0], reportMax)
		if err != nil {
			return err
		}
		workers := config.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		printReport(cmd.OutOrStdout(), analyzeCharts(paths, workers))
		return nil
	},
}

type chartsReport struct {
	numFiles       int64
	numFailed      int64
	numDiagnostics int64
	numTracks      int64
	totalBytes     int64
	totalLength    time.Duration
	longest        time.Duration
	longestPath    string
	failures       map[string]string
}

// analyzeCharts parses each chart on its own goroutine; parses share nothing,
// so only the report itself is locked.
func analyzeCharts(paths []string, workers int) chartsReport {
	report := chartsReport{failures: make(map[string]string)}
	var mu sync.Mutex
	swg := sizedwaitgroup.New(workers)

	for _, path := range paths {
		swg.Add()
		go func(path string) {
			defer swg.Done()

			var size int64
			if stats, err := os.Stat(path); err == nil {
				size = stats.Size()
			}
			parsed, err := loadChart(path)

			mu.Lock()
			defer mu.Unlock()
			report.numFiles += 1
			report.totalBytes += size
			if err != nil {
				report.numFailed += 1
				report.failures[path] = err.Error()
				return
			}
			report.numDiagnostics += int64(len(parsed.Diagnostics))
			report.numTracks += int64(len(parsed.Tracks))
			length := time.Duration(chart.Length(parsed) * float64(time.Second))
			report.totalLength += length
			if length > report.longest {
				report.longest = length
				report.longestPath = path
			}
		}(path)
	}
	swg.Wait()
	return report
}

func printReport(w io.Writer, report chartsReport) {
	fmt.Fprintf(w, "numFiles: %v\n", report.numFiles)
	fmt.Fprintf(w, "numFailed: %v\n", report.numFailed)
	fmt.Fprintf(w, "numDiagnostics: %v\n", report.numDiagnostics)
	fmt.Fprintf(w, "numTracks: %v\n", report.numTracks)
	fmt.Fprintf(w, "totalBytes: %v\n", humanize.Bytes(uint64(report.totalBytes)))
	fmt.Fprintf(w, "totalLength: %v\n", durafmt.Parse(report.totalLength).LimitFirstN(3))
	if report.longestPath != "" {
		fmt.Fprintf(w, "longest: %v (%v)\n", report.longestPath, durafmt.Parse(report.longest).LimitFirstN(2))
	}
	for _, path := range util.GetKeys(report.failures) {
		fmt.Fprintf(w, "failed: %v: %v\n", path, report.failures[path])
	}
}
