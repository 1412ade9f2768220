package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sirda/model"
)

var _ = Describe("Series", func() {
	var series Series

	BeforeEach(func() {
		series = newSeries(3)
		series.Append(10, model.State{S: 0.9, I: 0.1})
		series.Append(11, model.State{S: 0.8, I: 0.15, R: 0.05})
		series.Append(12, model.State{S: 0.7, I: 0.2, R: 0.1})
	})

	It("should look up values by day", func() {
		v, ok := series.Infected.At(11)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(0.15))

		_, ok = series.Infected.At(9)
		Expect(ok).To(BeFalse())

		_, ok = series.Infected.At(13)
		Expect(ok).To(BeFalse())
	})

	It("should split days and values", func() {
		Expect(series.Recovered.Days()).To(Equal([]int{10, 11, 12}))
		Expect(series.Recovered.Values()).To(Equal([]float64{0, 0.05, 0.1}))
	})

	It("should rebuild samples", func() {
		samples := series.Samples()

		Expect(samples).To(HaveLen(3))
		Expect(samples[2]).To(Equal(Sample{
			Day:   12,
			State: model.State{S: 0.7, I: 0.2, R: 0.1},
		}))
	})

	It("should select compartments", func() {
		Expect(series.Compartment(model.Susceptible)).
			To(Equal(series.Susceptible))
		Expect(series.Compartment("X")).To(BeNil())
	})

	It("should panic on the final point of an empty series", func() {
		Expect(func() { TimeSeries{}.Final() }).To(Panic())
	})
})
