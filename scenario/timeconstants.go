package scenario

import "github.com/sarchlab/sirda/model"

// DefaultTimeConstants returns the characteristic times of the reference
// run, in days.
func DefaultTimeConstants() model.TimeConstants {
	return model.TimeConstants{
		ContactInfected:   3,
		ContactDiagnosed:  10,
		ContactAiling:     5,
		Diagnosis:         2,
		Symptom:           5,
		RecoveryInfected:  14,
		RecoveryDiagnosed: 12,
		RecoveryAiling:    9,
	}
}
