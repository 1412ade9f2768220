package model_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sirda/model"
)

var _ = Describe("State", func() {
	It("should normalize raw counts to fractions", func() {
		raw := model.State{S: 192800, I: 1053, D: 916, A: 137, R: 116911}

		s, err := model.Normalize(raw)

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Sum()).To(BeNumerically("~", 1.0, 1e-9))
		Expect(s.S).To(BeNumerically("~", 192800.0/311817, 1e-15))
		Expect(s.R).To(BeNumerically("~", 116911.0/311817, 1e-15))
	})

	It("should keep the sum at one for arbitrary positive counts", func() {
		for _, raw := range []model.State{
			{S: 1, I: 1, D: 1, A: 1, R: 1},
			{S: 1e9, I: 3, D: 0, A: 0, R: 0},
			{S: 0.001, I: 0.002, D: 0.003, A: 0.004, R: 0.005},
			{S: 7, I: 1e-12, D: 123456, A: 42, R: 99},
		} {
			s, err := model.Normalize(raw)

			Expect(err).NotTo(HaveOccurred())
			Expect(s.Sum()).To(BeNumerically("~", 1.0, 1e-9))
		}
	})

	It("should reject counts summing to zero", func() {
		_, err := model.Normalize(model.State{})

		Expect(err).To(MatchError(model.ErrInvalidInitialState))
	})

	It("should reject negative or non-finite counts", func() {
		_, err := model.Normalize(model.State{S: 10, I: -1})
		Expect(err).To(MatchError(model.ErrInvalidInitialState))

		_, err = model.Normalize(model.State{S: math.NaN(), I: 1})
		Expect(err).To(MatchError(model.ErrInvalidInitialState))

		_, err = model.Normalize(model.State{S: math.Inf(1), I: 1})
		Expect(err).To(MatchError(model.ErrInvalidInitialState))
	})

	It("should look up compartments by name", func() {
		s := model.State{S: 0.5, I: 0.1, D: 0.2, A: 0.05, R: 0.15}

		Expect(s.Get(model.Susceptible)).To(Equal(0.5))
		Expect(s.Get(model.Infected)).To(Equal(0.1))
		Expect(s.Get(model.Diagnosed)).To(Equal(0.2))
		Expect(s.Get(model.Ailing)).To(Equal(0.05))
		Expect(s.Get(model.Recovered)).To(Equal(0.15))
		Expect(func() { s.Get("X") }).To(Panic())
	})

	It("should parse short and long compartment names", func() {
		c, ok := model.ParseCompartment("ailing")
		Expect(ok).To(BeTrue())
		Expect(c).To(Equal(model.Ailing))

		c, ok = model.ParseCompartment("r")
		Expect(ok).To(BeTrue())
		Expect(c).To(Equal(model.Recovered))

		_, ok = model.ParseCompartment("exposed")
		Expect(ok).To(BeFalse())
	})

	It("should tell whether all compartments are within [0, 1]", func() {
		Expect(model.State{S: 1}.InUnitRange()).To(BeTrue())
		Expect(model.State{S: 1, I: -0.001}.InUnitRange()).To(BeFalse())
		Expect(model.State{R: 1.5}.InUnitRange()).To(BeFalse())
	})
})
