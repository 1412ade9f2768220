package sim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/sirda/model"
)

type hookPosMatcher struct {
	pos *HookPos
}

func atPos(pos *HookPos) gomock.Matcher {
	return hookPosMatcher{pos: pos}
}

func (m hookPosMatcher) Matches(x any) bool {
	ctx, ok := x.(HookCtx)
	return ok && ctx.Pos == m.pos
}

func (m hookPosMatcher) String() string {
	return "is hooked at " + m.pos.Name
}

func referenceConfig(t0, tEnd int) Config {
	params := model.MustNewParameters(model.TimeConstants{
		ContactInfected:   3,
		ContactDiagnosed:  10,
		ContactAiling:     5,
		Diagnosis:         2,
		Symptom:           5,
		RecoveryInfected:  14,
		RecoveryDiagnosed: 12,
		RecoveryAiling:    9,
	})

	init, err := model.Normalize(
		model.State{S: 192800, I: 1053, D: 916, A: 137, R: 116911})
	Expect(err).NotTo(HaveOccurred())

	cfg, err := NewConfig(init, t0, tEnd, params)
	Expect(err).NotTo(HaveOccurred())

	return cfg
}

var _ = Describe("Simulator", func() {
	var (
		mockCtrl  *gomock.Controller
		simulator *Simulator
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		simulator = NewSimulator()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should produce one point per day including both ends", func() {
		series := simulator.Run(referenceConfig(0, 105), model.Step)

		Expect(series.Len()).To(Equal(106))
		for _, c := range model.Compartments {
			Expect(series.Compartment(c).Len()).To(Equal(106))
		}
	})

	It("should index days consecutively from t0", func() {
		series := simulator.Run(referenceConfig(7, 30), model.Step)

		for _, c := range model.Compartments {
			ts := series.Compartment(c)
			Expect(ts[0].Day).To(Equal(7))

			for i := 1; i < ts.Len(); i++ {
				Expect(ts[i].Day).To(Equal(ts[i-1].Day + 1))
			}

			Expect(ts.Final().Day).To(Equal(30))
		}
	})

	It("should start with the initial state", func() {
		cfg := referenceConfig(0, 3)

		series := simulator.Run(cfg, model.Step)

		Expect(series.StateAt(0)).To(Equal(cfg.Init))
	})

	It("should match the reference single step", func() {
		series := simulator.Run(referenceConfig(0, 1), model.Step)

		Expect(series.Len()).To(Equal(2))
		next := series.StateAt(1)
		Expect(next.S).To(BeNumerically("~", 0.6199845035276377, 1e-12))
		Expect(next.I).To(BeNumerically("~", -0.0009012408630436413, 1e-12))
		Expect(next.D).To(BeNumerically("~", 0.0038464767007469936, 1e-12))
		Expect(next.A).To(BeNumerically("~", 0.0005311061824978644, 1e-12))
		Expect(next.R).To(BeNumerically("~", 0.3754694896085519, 1e-12))
	})

	It("should feed every step with the previous result", func() {
		cfg := referenceConfig(0, 10)

		series := simulator.Run(cfg, model.Step)

		state := cfg.Init
		for i := 1; i < series.Len(); i++ {
			state = model.Step(state, cfg.Params)
			Expect(series.StateAt(i)).To(Equal(state))
		}
	})

	It("should give independent results for repeated runs", func() {
		first := simulator.Run(referenceConfig(0, 20), model.Step)
		second := simulator.Run(referenceConfig(0, 20), model.Step)

		Expect(second).To(Equal(first))

		first.Susceptible[3].Value = 42
		Expect(second.Susceptible[3].Value).NotTo(Equal(42.0))
	})

	It("should record only the initial day when t_end equals t0", func() {
		calls := 0
		step := func(s model.State, _ model.Parameters) model.State {
			calls++
			return s
		}

		series := simulator.Run(referenceConfig(5, 5), step)

		Expect(calls).To(Equal(0))
		Expect(series.Len()).To(Equal(1))
		Expect(series.Infected[0].Day).To(Equal(5))
	})

	It("should call the step function once per day", func() {
		calls := 0
		step := func(s model.State, p model.Parameters) model.State {
			calls++
			return model.Step(s, p)
		}

		simulator.Run(referenceConfig(0, 105), step)

		Expect(calls).To(Equal(105))
	})

	It("should let NaN propagate without stopping", func() {
		cfg := referenceConfig(0, 5)
		cfg.Init.S = math.NaN()

		series := simulator.Run(cfg, model.Step)

		Expect(series.Len()).To(Equal(6))
		Expect(math.IsNaN(series.Susceptible.Final().Value)).To(BeTrue())
	})

	It("should invoke hooks at the start, after every day and at the end",
		func() {
			hook := NewMockHook(mockCtrl)
			simulator.AcceptHook(hook)
			cfg := referenceConfig(0, 3)

			start := hook.EXPECT().
				Func(atPos(HookPosRunStart)).
				Times(1)
			steps := hook.EXPECT().
				Func(atPos(HookPosAfterStep)).
				Times(4).
				After(start)
			hook.EXPECT().
				Func(atPos(HookPosRunEnd)).
				Times(1).
				After(steps)

			simulator.Run(cfg, model.Step)
		})

	It("should pass each recorded day to the hooks in order", func() {
		var days []int
		simulator.AcceptHook(HookFunc(func(ctx HookCtx) {
			if ctx.Pos != HookPosAfterStep {
				return
			}

			days = append(days, ctx.Item.(Sample).Day)
		}))

		simulator.Run(referenceConfig(2, 6), model.Step)

		Expect(days).To(Equal([]int{2, 3, 4, 5, 6}))
	})

	It("should run without hooks through the package function", func() {
		series := Run(referenceConfig(0, 105), model.Step)

		Expect(series.Len()).To(Equal(106))
		Expect(series.StateAt(105).Sum()).
			To(BeNumerically("~", 0.996080108556719, 1e-9))
	})
})

var _ = Describe("HookableBase", func() {
	It("should refuse to register the same hook twice", func() {
		h := &HookableBase{}
		logger := NewStepLogger(nil)

		h.AcceptHook(logger)

		Expect(h.NumHooks()).To(Equal(1))
		Expect(func() { h.AcceptHook(logger) }).To(Panic())
	})
})

var _ = Describe("Config", func() {
	It("should reject an end day before the start day", func() {
		_, err := NewConfig(model.State{S: 1}, 10, 9, model.Parameters{})

		Expect(err).To(MatchError(ErrInvalidHorizon))
	})

	It("should count the steps", func() {
		cfg, err := NewConfig(model.State{S: 1}, 3, 10, model.Parameters{})

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.NumSteps()).To(Equal(7))
	})
})
