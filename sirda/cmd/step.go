package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sirda/model"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Advance the initial state by a single day.",
	Long: "`step` prints the initial state, the flow terms of the first " +
		"day and the state after one step.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		simCfg, err := c.SimConfig()
		if err != nil {
			return err
		}

		start := simCfg.Init
		flows := model.ComputeFlows(start, simCfg.Params)
		next := model.Step(start, simCfg.Params)

		w := cmd.OutOrStdout()
		printState(w, "initial", simCfg.T0, start)
		fmt.Fprintf(w,
			"flows    infections=%.12f diagnoses=%.12f ailing=%.12f recoveries=%.12f\n",
			flows.NewInfections, flows.NewDiagnoses,
			flows.NewAiling, flows.NewRecoveries)
		printState(w, "next", simCfg.T0+1, next)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.Flags().Int("t0", 0, "first day of the simulation")
}
