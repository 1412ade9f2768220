package model

import "errors"

var (
	// ErrInvalidParameter indicates a time constant that cannot be turned
	// into a transition rate.
	ErrInvalidParameter = errors.New("sirda: invalid parameter")

	// ErrInvalidInitialState indicates raw compartment values that cannot be
	// normalized into population fractions.
	ErrInvalidInitialState = errors.New("sirda: invalid initial state")
)
