package model

import (
	"fmt"
	"math"
)

// TimeConstants are the characteristic times, in days, that the transition
// rates are derived from. Each rate is the reciprocal of its time constant.
type TimeConstants struct {
	// ContactInfected is the time between infecting contacts made by an
	// infected individual.
	ContactInfected float64 `json:"contact_infected" yaml:"contact_infected" mapstructure:"contact_infected"`

	// ContactDiagnosed is the time between infecting contacts made by a
	// diagnosed individual.
	ContactDiagnosed float64 `json:"contact_diagnosed" yaml:"contact_diagnosed" mapstructure:"contact_diagnosed"`

	// ContactAiling is the time between infecting contacts made by an ailing
	// individual.
	ContactAiling float64 `json:"contact_ailing" yaml:"contact_ailing" mapstructure:"contact_ailing"`

	// Diagnosis is the time from infection to diagnosis.
	Diagnosis float64 `json:"diagnosis" yaml:"diagnosis" mapstructure:"diagnosis"`

	// Symptom is the time from infection to symptom onset.
	Symptom float64 `json:"symptom" yaml:"symptom" mapstructure:"symptom"`

	RecoveryInfected  float64 `json:"recovery_infected" yaml:"recovery_infected" mapstructure:"recovery_infected"`
	RecoveryDiagnosed float64 `json:"recovery_diagnosed" yaml:"recovery_diagnosed" mapstructure:"recovery_diagnosed"`
	RecoveryAiling    float64 `json:"recovery_ailing" yaml:"recovery_ailing" mapstructure:"recovery_ailing"`
}

// Parameters are the eight per-day transition rates of the model. A
// Parameters value is not modified during a simulation run.
type Parameters struct {
	Alpha   float64 `json:"alpha"`   // transmission from I
	Beta    float64 `json:"beta"`    // transmission from D
	Gamma   float64 `json:"gamma"`   // transmission from A
	Epsilon float64 `json:"epsilon"` // diagnosis
	Zeta    float64 `json:"zeta"`    // symptom onset, I to A
	Lambda  float64 `json:"lambda"`  // recovery from I
	Rho     float64 `json:"rho"`     // recovery from D
	Kappa   float64 `json:"kappa"`   // recovery from A
}

// NewParameters derives the transition rates from the given time constants.
// Every time constant must be positive and finite.
func NewParameters(tc TimeConstants) (Parameters, error) {
	for _, f := range tc.fields() {
		if err := checkTimeConstant(f.name, f.value); err != nil {
			return Parameters{}, err
		}
	}

	p := Parameters{
		Alpha:   1 / tc.ContactInfected,
		Beta:    1 / tc.ContactDiagnosed,
		Gamma:   1 / tc.ContactAiling,
		Epsilon: 1 / tc.Diagnosis,
		Zeta:    1 / tc.Symptom,
		Lambda:  1 / tc.RecoveryInfected,
		Rho:     1 / tc.RecoveryDiagnosed,
		Kappa:   1 / tc.RecoveryAiling,
	}

	return p, nil
}

// MustNewParameters is like NewParameters but panics on invalid input.
func MustNewParameters(tc TimeConstants) Parameters {
	p, err := NewParameters(tc)
	if err != nil {
		panic(err)
	}

	return p
}

type namedValue struct {
	name  string
	value float64
}

func (tc TimeConstants) fields() []namedValue {
	return []namedValue{
		{"contact_infected", tc.ContactInfected},
		{"contact_diagnosed", tc.ContactDiagnosed},
		{"contact_ailing", tc.ContactAiling},
		{"diagnosis", tc.Diagnosis},
		{"symptom", tc.Symptom},
		{"recovery_infected", tc.RecoveryInfected},
		{"recovery_diagnosed", tc.RecoveryDiagnosed},
		{"recovery_ailing", tc.RecoveryAiling},
	}
}

func checkTimeConstant(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: time constant %s is %v, must be positive",
			ErrInvalidParameter, name, v)
	}

	return nil
}
