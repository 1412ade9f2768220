package sim

import (
	"errors"
	"fmt"

	"github.com/sarchlab/sirda/model"
)

// ErrInvalidHorizon indicates a run that ends before it starts.
var ErrInvalidHorizon = errors.New("sirda: invalid simulation horizon")

// Config is everything a run needs. It is not modified by the run.
type Config struct {
	Init   model.State
	T0     int
	TEnd   int
	Params model.Parameters
}

// NewConfig creates a Config. The run covers days t0 to tEnd inclusive.
func NewConfig(
	initial model.State,
	t0, tEnd int,
	params model.Parameters,
) (Config, error) {
	if tEnd < t0 {
		return Config{}, fmt.Errorf("%w: end day %d is before start day %d",
			ErrInvalidHorizon, tEnd, t0)
	}

	c := Config{
		Init:   initial,
		T0:     t0,
		TEnd:   tEnd,
		Params: params,
	}

	return c, nil
}

// NumSteps returns the number of transition steps of the run.
func (c Config) NumSteps() int {
	return c.TEnd - c.T0
}
