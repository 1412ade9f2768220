package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sarchlab/sirda/monitoring"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a simulation and serve its results over HTTP.",
	Long: "`serve` runs a simulation with the monitor attached and keeps " +
		"serving the results until interrupted.",
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

		port, _ := cmd.Flags().GetInt("port")
		monitor := monitoring.NewMonitor().
			WithLogger(logger).
			WithPortNumber(port)
		s.simulator.AcceptHook(monitor)

		url, err := monitor.StartServer()
		if err != nil {
			return err
		}

		_, series, err := s.run()
		if err != nil {
			return err
		}

		if err := s.writeOutputs(series); err != nil {
			return err
		}

		if open, _ := cmd.Flags().GetBool("open"); open {
			if err := monitor.OpenInBrowser(url); err != nil {
				logger.Warn("cannot open browser", zap.Error(err))
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 5*time.Second)
		defer cancel()

		return monitor.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addRunFlags(serveCmd)
	serveCmd.Flags().Int("port", 0, "port of the monitoring server, random if 0")
	serveCmd.Flags().Bool("open", false, "open the monitor in a browser")
}
