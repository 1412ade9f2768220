package scenario

import (
	"github.com/sarchlab/sirda/model"
	"github.com/sarchlab/sirda/sim"
)

// Build combines a region, time constants and a horizon into a run
// configuration starting at day zero.
func Build(r Region, tc model.TimeConstants, horizon int) (sim.Config, error) {
	init, err := r.InitialState()
	if err != nil {
		return sim.Config{}, err
	}

	params, err := model.NewParameters(tc)
	if err != nil {
		return sim.Config{}, err
	}

	return sim.NewConfig(init, 0, horizon, params)
}

// Reference returns the configuration of the Santa Clara reference run.
func Reference() sim.Config {
	cfg, err := Build(SantaClara(), DefaultTimeConstants(), DefaultHorizon)
	if err != nil {
		panic(err)
	}

	return cfg
}
