package model_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sirda/model"
)

var _ = Describe("Step", func() {
	var (
		params model.Parameters
		init   model.State
	)

	BeforeEach(func() {
		params = model.MustNewParameters(referenceTimeConstants())

		var err error
		init, err = model.Normalize(
			model.State{S: 192800, I: 1053, D: 916, A: 137, R: 116911})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should match the reference one-day result", func() {
		next := model.Step(init, params)

		Expect(next.S).To(BeNumerically("~", 0.6199845035276377, 1e-12))
		Expect(next.I).To(BeNumerically("~", -0.0009012408630436413, 1e-12))
		Expect(next.D).To(BeNumerically("~", 0.0038464767007469936, 1e-12))
		Expect(next.A).To(BeNumerically("~", 0.0005311061824978644, 1e-12))
		Expect(next.R).To(BeNumerically("~", 0.3754694896085519, 1e-12))
	})

	It("should be deterministic", func() {
		a := model.Step(init, params)
		b := model.Step(init, params)

		Expect(math.Float64bits(a.S)).To(Equal(math.Float64bits(b.S)))
		Expect(math.Float64bits(a.I)).To(Equal(math.Float64bits(b.I)))
		Expect(math.Float64bits(a.D)).To(Equal(math.Float64bits(b.D)))
		Expect(math.Float64bits(a.A)).To(Equal(math.Float64bits(b.A)))
		Expect(math.Float64bits(a.R)).To(Equal(math.Float64bits(b.R)))
	})

	It("should not modify its input", func() {
		before := init

		model.Step(init, params)

		Expect(init).To(Equal(before))
	})

	It("should lose twice the recoveries from the total each day", func() {
		next := model.Step(init, params)
		flows := model.ComputeFlows(init, params)

		Expect(next.Sum()).To(BeNumerically("~", 0.9989303351563907, 1e-12))
		Expect(flows.NewRecoveries).
			To(BeNumerically("~", 0.0005348324218045881, 1e-12))
		Expect(next.Sum()).To(
			BeNumerically("~", init.Sum()-2*flows.NewRecoveries, 1e-12))
	})

	It("should keep the sum drift rule for arbitrary states", func() {
		for _, s := range []model.State{
			{S: 0.9, I: 0.05, D: 0.02, A: 0.01, R: 0.02},
			{S: 0.2, I: 0.3, D: 0.1, A: 0.3, R: 0.1},
			{S: 1},
		} {
			next := model.Step(s, params)
			flows := model.ComputeFlows(s, params)

			Expect(next.Sum()).To(
				BeNumerically("~", s.Sum()-2*flows.NewRecoveries, 1e-12))
		}
	})

	It("should leave a fully susceptible population unchanged", func() {
		s := model.State{S: 1}

		Expect(model.Step(s, params)).To(Equal(s))
	})

	It("should compute each flow term from the named compartments", func() {
		s := model.State{S: 0.5, I: 0.1, D: 0.2, A: 0.05, R: 0.15}
		p := model.Parameters{
			Alpha: 1, Beta: 2, Gamma: 3, Epsilon: 0.1,
			Zeta: 0.2, Lambda: 0.3, Rho: 0.4, Kappa: 0.5,
		}

		f := model.ComputeFlows(s, p)

		Expect(f.NewInfections).To(BeNumerically("~", 0.5*(0.1+0.4+0.15)-0.6*0.1, 1e-15))
		Expect(f.NewDiagnoses).To(BeNumerically("~", 0.01-0.08, 1e-15))
		Expect(f.NewAiling).To(BeNumerically("~", 0.02-0.025, 1e-15))
		Expect(f.NewRecoveries).To(BeNumerically("~", 0.03+0.08+0.025, 1e-15))
	})

	It("should let NaN propagate", func() {
		s := model.State{S: math.NaN(), I: 0.1}

		next := model.Step(s, params)

		Expect(math.IsNaN(next.S)).To(BeTrue())
	})
})
