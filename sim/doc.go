// Package sim drives a SIRDA simulation.
//
// A Simulator applies a step function once per day over the horizon of a
// Config and collects one TimeSeries per compartment. Recorders, loggers and
// monitors attach to the run as Hooks.
//
//	cfg, _ := sim.NewConfig(init, 0, 105, params)
//	series := sim.Run(cfg, model.Step)
package sim
