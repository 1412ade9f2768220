package model_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sirda/model"
)

func referenceTimeConstants() model.TimeConstants {
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

var _ = Describe("Parameters", func() {
	It("should take the reciprocal of each time constant", func() {
		p, err := model.NewParameters(referenceTimeConstants())

		Expect(err).NotTo(HaveOccurred())
		Expect(p.Alpha).To(Equal(1.0 / 3))
		Expect(p.Beta).To(Equal(1.0 / 10))
		Expect(p.Gamma).To(Equal(1.0 / 5))
		Expect(p.Epsilon).To(Equal(1.0 / 2))
		Expect(p.Zeta).To(Equal(1.0 / 5))
		Expect(p.Lambda).To(Equal(1.0 / 14))
		Expect(p.Rho).To(Equal(1.0 / 12))
		Expect(p.Kappa).To(Equal(1.0 / 9))
	})

	DescribeTable("should reject unusable time constants",
		func(mutate func(*model.TimeConstants), field string) {
			tc := referenceTimeConstants()
			mutate(&tc)

			_, err := model.NewParameters(tc)

			Expect(err).To(MatchError(model.ErrInvalidParameter))
			Expect(err.Error()).To(ContainSubstring(field))
		},
		Entry("zero",
			func(tc *model.TimeConstants) { tc.Diagnosis = 0 }, "diagnosis"),
		Entry("negative",
			func(tc *model.TimeConstants) { tc.RecoveryAiling = -9 },
			"recovery_ailing"),
		Entry("NaN",
			func(tc *model.TimeConstants) { tc.ContactInfected = math.NaN() },
			"contact_infected"),
		Entry("infinite",
			func(tc *model.TimeConstants) { tc.Symptom = math.Inf(1) },
			"symptom"),
	)

	It("should panic in MustNewParameters on invalid input", func() {
		tc := referenceTimeConstants()
		tc.ContactAiling = 0

		Expect(func() { model.MustNewParameters(tc) }).To(Panic())
	})
})
