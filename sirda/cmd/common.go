package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sarchlab/sirda/config"
	"github.com/sarchlab/sirda/datarecording"
	"github.com/sarchlab/sirda/export"
	"github.com/sarchlab/sirda/logging"
	"github.com/sarchlab/sirda/model"
	"github.com/sarchlab/sirda/plotting"
	"github.com/sarchlab/sirda/sim"
)

// addRunFlags registers the flags shared by every command that runs a
// simulation.
func addRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int("t0", 0, "first day of the simulation")
	flags.Int("horizon", 0, "number of days to simulate")
	flags.String("csv", "", "write the series to this CSV file")
	flags.String("json", "", "write the series to this JSON file")
	flags.String("db", "", "record the run into this SQLite database")
	flags.String("plot", "", "save a figure of the series to this file")
	flags.String("title", "", "title of the figure")
}

func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	configFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	c, err := config.Load(configFile, envFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(c.Log.Level, c.Log.Development)
	if err != nil {
		return nil, nil, err
	}

	return c, logger, nil
}

// session is one simulation run with the outputs requested by the config.
type session struct {
	cfg       *config.Config
	logger    *zap.Logger
	simulator *sim.Simulator
	recorder  datarecording.DataRecorder
	series    *datarecording.SeriesRecorder
}

func newSession(c *config.Config, logger *zap.Logger) (*session, error) {
	s := &session{
		cfg:       c,
		logger:    logger,
		simulator: sim.NewSimulator(),
	}

	s.simulator.AcceptHook(sim.NewStepLogger(logger))

	if c.Output.DB != "" {
		recorder, err := datarecording.New(c.Output.DB)
		if err != nil {
			return nil, err
		}

		s.recorder = recorder
		s.series = datarecording.NewSeriesRecorder(recorder)
		s.simulator.AcceptHook(s.series)
	}

	return s, nil
}

func (s *session) run() (sim.Config, sim.Series, error) {
	simCfg, err := s.cfg.SimConfig()
	if err != nil {
		return sim.Config{}, sim.Series{}, err
	}

	series := s.simulator.Run(simCfg, model.Step)

	return simCfg, series, nil
}

func (s *session) writeOutputs(series sim.Series) error {
	out := s.cfg.Output

	if out.CSV != "" {
		if err := export.WriteCSVFile(out.CSV, series); err != nil {
			return err
		}

		s.logger.Info("series written", zap.String("csv", out.CSV))
	}

	if out.JSON != "" {
		if err := export.WriteJSONFile(out.JSON, series); err != nil {
			return err
		}

		s.logger.Info("series written", zap.String("json", out.JSON))
	}

	if out.Plot != "" {
		if err := plotting.NewFigure(out.PlotTitle).Save(out.Plot, series); err != nil {
			return err
		}

		s.logger.Info("figure saved", zap.String("plot", out.Plot))
	}

	if s.series != nil {
		s.logger.Info("run recorded",
			zap.String("db", out.DB),
			zap.String("run_id", s.series.LastRunID()))
	}

	return nil
}

func (s *session) close() error {
	_ = s.logger.Sync()

	if s.recorder == nil {
		return nil
	}

	return s.recorder.Close()
}

func printState(w io.Writer, label string, day int, state model.State) {
	fmt.Fprintf(w, "%-8s day %4d  %s  sum=%.12f\n", label, day, state, state.Sum())
}
