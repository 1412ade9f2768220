package model

// Flows are the four per-day flow terms computed from a state before it is
// advanced.
type Flows struct {
	NewInfections float64
	NewDiagnoses  float64
	NewAiling     float64
	NewRecoveries float64
}

// ComputeFlows evaluates the flow terms of one day at the given state.
func ComputeFlows(s State, p Parameters) Flows {
	contact := p.Alpha*s.I + p.Beta*s.D + p.Gamma*s.A
	outflow := p.Epsilon + p.Zeta + p.Lambda

	return Flows{
		NewInfections: s.S*contact - outflow*s.I,
		NewDiagnoses:  p.Epsilon*s.I - p.Rho*s.D,
		NewAiling:     p.Zeta*s.I - p.Kappa*s.A,
		NewRecoveries: p.Lambda*s.I + p.Rho*s.D + p.Kappa*s.A,
	}
}

// Step advances the state by one day with a single explicit Euler step.
//
// The outflow of I is booked both inside NewInfections and again through the
// diagnosis, ailing and recovery terms, and NewRecoveries is taken out of I,
// D and A alike. The total is therefore not conserved: the sum of the
// returned state is the sum of s minus twice NewRecoveries. Values are not
// clamped and may leave [0, 1].
func Step(s State, p Parameters) State {
	f := ComputeFlows(s, p)

	return State{
		S: s.S - f.NewInfections,
		I: s.I + f.NewInfections - f.NewRecoveries - f.NewAiling - f.NewDiagnoses,
		D: s.D + f.NewDiagnoses - f.NewRecoveries,
		A: s.A + f.NewAiling - f.NewRecoveries,
		R: s.R + f.NewRecoveries,
	}
}
