package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/sirda/plotting"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Run a simulation and save a figure of the series.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if c.Output.Plot == "" {
			c.Output.Plot = plotting.DefaultFilename
		}

		s, err := newSession(c, logger)
		if err != nil {
			return err
		}
		defer s.close()

		_, series, err := s.run()
		if err != nil {
			return err
		}

		return s.writeOutputs(series)
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	addRunFlags(plotCmd)
}
