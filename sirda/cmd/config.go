package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sirda/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage config files.",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config to a YAML file.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "sirda.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if path == "-" {
			return config.Write(cmd.OutOrStdout(), config.Default())
		}

		if err := config.WriteFile(path, config.Default()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}
