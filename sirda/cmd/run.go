package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation over the whole horizon.",
	Long: "`run` simulates from day t0 to t0+horizon, prints the first and " +
		"the last state, and writes the requested outputs.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		s, err := newSession(c, logger)
		if err != nil {
			return err
		}
		defer s.close()

		simCfg, series, err := s.run()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		printState(w, "initial", simCfg.T0, simCfg.Init)
		printState(w, "final", simCfg.TEnd, series.StateAt(series.Len()-1))

		return s.writeOutputs(series)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}
