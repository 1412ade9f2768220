// Package config loads the settings of a sirda run from YAML files,
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"

	"github.com/sarchlab/sirda/model"
	"github.com/sarchlab/sirda/scenario"
	"github.com/sarchlab/sirda/sim"
)

// ErrInvalidConfig indicates settings that cannot produce a run.
var ErrInvalidConfig = errors.New("sirda: invalid config")

// Config is the full set of settings of a run.
type Config struct {
	Region        scenario.Region     `yaml:"region" mapstructure:"region"`
	TimeConstants model.TimeConstants `yaml:"time_constants" mapstructure:"time_constants"`
	Simulation    Simulation          `yaml:"simulation" mapstructure:"simulation"`
	Output        Output              `yaml:"output" mapstructure:"output"`
	Log           Log                 `yaml:"log" mapstructure:"log"`
}

// Simulation sets the horizon of a run.
type Simulation struct {
	T0      int `yaml:"t0" mapstructure:"t0"`
	Horizon int `yaml:"horizon" mapstructure:"horizon"`
}

// Output names the files a run writes. Empty names are skipped.
type Output struct {
	CSV       string `yaml:"csv" mapstructure:"csv"`
	JSON      string `yaml:"json" mapstructure:"json"`
	DB        string `yaml:"db" mapstructure:"db"`
	Plot      string `yaml:"plot" mapstructure:"plot"`
	PlotTitle string `yaml:"plot_title" mapstructure:"plot_title"`
}

// Log configures the logger.
type Log struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Development bool   `yaml:"development" mapstructure:"development"`
}

// Default returns the settings of the Santa Clara reference run.
func Default() *Config {
	return &Config{
		Region:        scenario.SantaClara(),
		TimeConstants: scenario.DefaultTimeConstants(),
		Simulation: Simulation{
			T0:      0,
			Horizon: scenario.DefaultHorizon,
		},
		Output: Output{
			PlotTitle: "SIRDA",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Validate checks that the settings can produce a run.
func Validate(c *Config) error {
	if c.Simulation.Horizon < 0 {
		return fmt.Errorf("%w: horizon %d is negative",
			ErrInvalidConfig, c.Simulation.Horizon)
	}

	if err := c.Region.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if _, err := model.NewParameters(c.TimeConstants); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Parameters derives the transition rates.
func (c *Config) Parameters() (model.Parameters, error) {
	return model.NewParameters(c.TimeConstants)
}

// SimConfig builds the run configuration, from day T0 to T0+Horizon.
func (c *Config) SimConfig() (sim.Config, error) {
	start, err := c.Region.InitialState()
	if err != nil {
		return sim.Config{}, err
	}

	params, err := c.Parameters()
	if err != nil {
		return sim.Config{}, err
	}

	t0 := c.Simulation.T0

	return sim.NewConfig(start, t0, t0+c.Simulation.Horizon, params)
}
