// Package cmd provides the command-line interface of sirda.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sirda",
	Short: "sirda simulates an epidemic with the SIRDA compartmental model.",
	Long: `sirda simulates an epidemic with five compartments: susceptible, ` +
		`infected, diagnosed, ailing and recovered. Settings come from ` +
		`flags, SIRDA_* environment variables, a YAML config file and ` +
		`built-in defaults, in that order.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML config file")
	flags.String("env-file", ".env", "env file loaded before reading SIRDA_* variables")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("dev", false, "human-readable development logging")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
