package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sumwatshade/valvegear/cmd/measure"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check sweep files for parse and integrity errors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setupLogging(viper.GetViper(), false); err != nil {
			return err
		}
		failed := 0
		for _, path := range args {
			summary, err := validateFile(path)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: FAIL (%s)\n  %v\n", path, failureKind(err), err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK %s\n", path, summary)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed validation", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateFile reads path and returns a one-line summary of its contents.
func validateFile(path string) (string, error) {
	samples, layout, err := measure.ReadFileDetect(path)
	if err != nil {
		return "", err
	}
	cols := "displacement only"
	if layout.HasPaths() {
		cols = "with lever paths"
	}
	first, last := samples[0].Angle, samples[len(samples)-1].Angle
	return fmt.Sprintf("%d rows, %g..%g deg, %s", len(samples), first, last, cols), nil
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, measure.ErrIO):
		return "io"
	case errors.Is(err, measure.ErrParse):
		return "parse"
	case errors.Is(err, measure.ErrDataIntegrity):
		return "integrity"
	}
	return "error"
}
