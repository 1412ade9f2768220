package sim

import (
	"github.com/sarchlab/sirda/model"
)

// A StepFunc advances a state by one day.
type StepFunc func(s model.State, p model.Parameters) model.State

// A Sample is the state of the population on one day.
type Sample struct {
	Day   int
	State model.State
}

// A Simulator iterates a StepFunc over the horizon of a Config.
//
// The simulator keeps no state between runs, so one Simulator can run many
// configurations. Hooks observe the run and cannot change it.
type Simulator struct {
	HookableBase
}

// NewSimulator creates a Simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Run applies step once per day from cfg.T0 to cfg.TEnd and returns the
// five compartment series, each holding cfg.TEnd-cfg.T0+1 points.
//
// Numerical problems such as NaN are not detected; they propagate into the
// following days.
func (s *Simulator) Run(cfg Config, step StepFunc) Series {
	series := newSeries(cfg.NumSteps() + 1)

	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosRunStart, Item: cfg})

	state := cfg.Init
	s.record(&series, cfg.T0, state)

	for t := cfg.T0; t < cfg.TEnd; t++ {
		state = step(state, cfg.Params)
		s.record(&series, t+1, state)
	}

	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosRunEnd, Item: series})

	return series
}

func (s *Simulator) record(series *Series, day int, state model.State) {
	series.Append(day, state)

	s.InvokeHook(HookCtx{
		Domain: s,
		Pos:    HookPosAfterStep,
		Item:   Sample{Day: day, State: state},
	})
}

// Run runs cfg with step without any hooks.
func Run(cfg Config, step StepFunc) Series {
	return NewSimulator().Run(cfg, step)
}
