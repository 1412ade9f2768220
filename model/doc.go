// Package model defines the SIRDA compartmental epidemic model: the state of
// the five population fractions, the transition rates, and the one-day
// transition rule.
//
// The compartments are Susceptible (S), Infected (I, undiagnosed), Diagnosed
// (D), Ailing (A, undiagnosed with symptoms) and Recovered (R, including
// deceased).
//
//	p, _ := model.NewParameters(tc)
//	init, _ := model.Normalize(raw)
//	next := model.Step(init, p)
package model
