package cmd

import (
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [file] [file]",
	Short: "Open sweep files in the terminal viewer",
	Long: `Opens one sweep file, or two side by side for comparison, in the
terminal viewer. A name that is not a file is looked up in the results
directory, so "view sim" opens sim.csv from there. Drag an inspector line with the mouse or move it with the
arrow keys to read the samples it crosses.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(args)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
