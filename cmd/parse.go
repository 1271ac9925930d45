package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var parseIndent bool

func init() {
	parseCmd.Flags().BoolVar(&parseIndent, "indent", true, "indent the JSON output")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Prints a parsed chart as JSON",
	Long:  `Prints a parsed chart as JSON. Diagnostics are logged to stderr and included in the output.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := loadChart(args[0])
		if err != nil {
			return err
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		if parseIndent {
			encoder.SetIndent("", "  ")
		}
		return encoder.Encode(parsed)
	},
}
