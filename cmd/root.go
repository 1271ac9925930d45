package cmd

import (
	"github.com/jsphweid/chartdex/chart"
	"github.com/jsphweid/chartdex/constants"
	"github.com/jsphweid/chartdex/file"
	"github.com/jsphweid/chartdex/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	config     = constants.DefaultConfig()
	logger     = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "chartdex",
	Short: "Chart timing engine",
	Long:  `Parses .chart files into timed note tracks and converts between ticks and seconds.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := constants.LoadConfig(configPath)
		if err != nil {
			return err
		}
		config = cfg

		level := config.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return err
		}
		logger.SetLevel(lvl)
		logger.SetOutput(cmd.ErrOrStderr())
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// loadChart reads and parses a chart file, logging its diagnostics.
func loadChart(path string) (*model.ParsedChart, error) {
	raw, err := file.ReadChart(path)
	if err != nil {
		return nil, err
	}
	parsed, err := chart.Parse(raw)
	if err != nil {
		return nil, err
	}
	parsed.Diagnostics.Log(logger.WithField("file", path))
	return parsed, nil
}
