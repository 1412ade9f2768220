// Package scenario derives initial conditions and reference settings for
// SIRDA runs from reported case counts.
package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/sarchlab/sirda/model"
)

// ErrInvalidRegion indicates counts that cannot describe a population.
var ErrInvalidRegion = errors.New("sirda: invalid region")

// DefaultHorizon is the length of the reference run, 15 weeks.
const DefaultHorizon = 7 * 15

// Region holds the reported figures of a region that the initial state is
// derived from.
type Region struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Population is the number of inhabitants.
	Population float64 `json:"population" yaml:"population" mapstructure:"population"`

	// SusceptibleFraction is the share of the population assumed
	// susceptible.
	SusceptibleFraction float64 `json:"susceptible_fraction" yaml:"susceptible_fraction" mapstructure:"susceptible_fraction"`

	// ConfirmedCases is the number of cases confirmed recently, taken as the
	// diagnosed compartment.
	ConfirmedCases float64 `json:"confirmed_cases" yaml:"confirmed_cases" mapstructure:"confirmed_cases"`

	// AilingFraction is the number of undiagnosed ailing cases relative to
	// the confirmed ones.
	AilingFraction float64 `json:"ailing_fraction" yaml:"ailing_fraction" mapstructure:"ailing_fraction"`

	TotalCases float64 `json:"total_cases" yaml:"total_cases" mapstructure:"total_cases"`
	Deaths     float64 `json:"deaths" yaml:"deaths" mapstructure:"deaths"`
}

// SantaClara returns the figures of Santa Clara County used by the reference
// run: 1.928M inhabitants, 10% susceptible, 916 cases confirmed in the last
// two weeks, 15% more undiagnosed ailing, 119k total cases and 2089 deaths.
func SantaClara() Region {
	return Region{
		Name:                "Santa Clara County",
		Population:          1928000,
		SusceptibleFraction: 0.1,
		ConfirmedCases:      916,
		AilingFraction:      0.15,
		TotalCases:          119000,
		Deaths:              2089,
	}
}

// Validate checks that the figures describe a population.
func (r Region) Validate() error {
	switch {
	case !finiteNonNegative(r.Population):
		return fmt.Errorf("%w: population is %v", ErrInvalidRegion, r.Population)
	case !isFraction(r.SusceptibleFraction):
		return fmt.Errorf("%w: susceptible fraction %v is outside [0, 1]",
			ErrInvalidRegion, r.SusceptibleFraction)
	case !isFraction(r.AilingFraction):
		return fmt.Errorf("%w: ailing fraction %v is outside [0, 1]",
			ErrInvalidRegion, r.AilingFraction)
	case !finiteNonNegative(r.ConfirmedCases):
		return fmt.Errorf("%w: confirmed cases is %v",
			ErrInvalidRegion, r.ConfirmedCases)
	case !finiteNonNegative(r.TotalCases) || !finiteNonNegative(r.Deaths):
		return fmt.Errorf("%w: total cases %v, deaths %v",
			ErrInvalidRegion, r.TotalCases, r.Deaths)
	case r.Deaths > r.TotalCases:
		return fmt.Errorf("%w: %v deaths exceed %v total cases",
			ErrInvalidRegion, r.Deaths, r.TotalCases)
	}

	return nil
}

// RawState derives the unnormalized compartment counts. Infected counts both
// the diagnosed and the ailing cases, and recovered counts every case that
// did not die.
func (r Region) RawState() (model.State, error) {
	if err := r.Validate(); err != nil {
		return model.State{}, err
	}

	susceptible := math.Round(r.Population * r.SusceptibleFraction)
	diagnosed := r.ConfirmedCases
	ailing := math.Trunc(r.ConfirmedCases * r.AilingFraction)

	s := model.State{
		S: susceptible,
		I: ailing + diagnosed,
		D: diagnosed,
		A: ailing,
		R: r.TotalCases - r.Deaths,
	}

	return s, nil
}

// InitialState derives the normalized initial state.
func (r Region) InitialState() (model.State, error) {
	raw, err := r.RawState()
	if err != nil {
		return model.State{}, err
	}

	return model.Normalize(raw)
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func isFraction(v float64) bool {
	return v >= 0 && v <= 1
}
