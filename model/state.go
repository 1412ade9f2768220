package model

import (
	"fmt"
	"math"
	"strings"
)

// Compartment names one of the five population fractions.
type Compartment string

// The five compartments, in the order used for output.
const (
	Susceptible Compartment = "S"
	Infected    Compartment = "I"
	Diagnosed   Compartment = "D"
	Ailing      Compartment = "A"
	Recovered   Compartment = "R"
)

// Compartments lists every compartment in output order.
var Compartments = []Compartment{
	Susceptible, Infected, Diagnosed, Ailing, Recovered,
}

// Label returns the human-readable name of the compartment.
func (c Compartment) Label() string {
	switch c {
	case Susceptible:
		return "Susceptible"
	case Infected:
		return "Infected"
	case Diagnosed:
		return "Diagnosed"
	case Ailing:
		return "Ailing"
	case Recovered:
		return "Recovered"
	default:
		return string(c)
	}
}

// ParseCompartment accepts either the short ("S") or the long
// ("susceptible") name of a compartment, case-insensitively.
func ParseCompartment(name string) (Compartment, bool) {
	for _, c := range Compartments {
		if strings.EqualFold(name, string(c)) || strings.EqualFold(name, c.Label()) {
			return c, true
		}
	}

	return "", false
}

// State holds the five compartment values. When normalized, the values are
// fractions of the population.
type State struct {
	S float64 `json:"S"`
	I float64 `json:"I"`
	D float64 `json:"D"`
	A float64 `json:"A"`
	R float64 `json:"R"`
}

// Sum returns S+I+D+A+R.
func (s State) Sum() float64 {
	return s.S + s.I + s.D + s.A + s.R
}

// Get returns the value of the given compartment.
func (s State) Get(c Compartment) float64 {
	switch c {
	case Susceptible:
		return s.S
	case Infected:
		return s.I
	case Diagnosed:
		return s.D
	case Ailing:
		return s.A
	case Recovered:
		return s.R
	default:
		panic(fmt.Sprintf("unknown compartment %q", c))
	}
}

// InUnitRange reports whether every compartment lies within [0, 1].
func (s State) InUnitRange() bool {
	for _, c := range Compartments {
		v := s.Get(c)
		if v < 0 || v > 1 {
			return false
		}
	}

	return true
}

func (s State) String() string {
	return fmt.Sprintf("S=%.6f I=%.6f D=%.6f A=%.6f R=%.6f",
		s.S, s.I, s.D, s.A, s.R)
}

// Normalize divides every compartment of raw by the sum of all compartments
// so that the result sums to one.
func Normalize(raw State) (State, error) {
	for _, c := range Compartments {
		v := raw.Get(c)
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return State{}, fmt.Errorf("%w: compartment %s is %v",
				ErrInvalidInitialState, c, v)
		}
	}

	total := raw.Sum()
	if total == 0 || math.IsInf(total, 0) {
		return State{}, fmt.Errorf("%w: compartments sum to %v",
			ErrInvalidInitialState, total)
	}

	n := State{
		S: raw.S / total,
		I: raw.I / total,
		D: raw.D / total,
		A: raw.A / total,
		R: raw.R / total,
	}

	return n, nil
}
