package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sumwatshade/valvegear/cmd/sweep"
)

var (
	sweepName    string
	sweepStep    float64
	sweepCutoffs []float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a sweep against the simulated valve gear and save it",
	Long: `Turns the crank through a full revolution, first reading the piston and
then the valve and rocking-lever end for each cutoff setting, and writes the
result as a sweep file into results.dir.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setupLogging(viper.GetViper(), false); err != nil {
			return err
		}
		if len(sweepCutoffs) != 3 {
			return fmt.Errorf("--cutoffs needs 3 values (fwd,mid,rev), got %d", len(sweepCutoffs))
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		path, err := runSweep(ctx, sweep.NewSimSession(), viper.GetString(keyResultsDir))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	sweepCmd.Flags().StringVarP(&sweepName, "name", "n", "sweep", "output file name")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", sweep.DefaultStep, "crank step in degrees")
	sweepCmd.Flags().Float64SliceVar(&sweepCutoffs, "cutoffs",
		[]float64{sweep.DefaultCutoffFwd, sweep.DefaultCutoffMid, sweep.DefaultCutoffRev},
		"forward, mid and reverse cutoff angles in degrees")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(ctx context.Context, s sweep.CadSession, dir string) (string, error) {
	r := sweep.NewRunner(s)
	r.Step = sweepStep
	r.Cutoffs = sweep.Cutoffs{Fwd: sweepCutoffs[0], Mid: sweepCutoffs[1], Rev: sweepCutoffs[2]}
	samples, err := r.Run(ctx)
	if err != nil {
		return "", err
	}
	return sweep.WriteFile(dir, sweepName, samples)
}
