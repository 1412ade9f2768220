package sim

import (
	"go.uber.org/zap"
)

// StepLogger is a hook that logs the progress of a run.
type StepLogger struct {
	logger *zap.Logger
}

// NewStepLogger returns a StepLogger that writes into the given logger. Daily
// states are logged at debug level, the start and end of a run at info level.
func NewStepLogger(logger *zap.Logger) *StepLogger {
	return &StepLogger{logger: logger}
}

// Func writes the run information into the logger.
func (h *StepLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosRunStart:
		h.logStart(ctx)
	case HookPosAfterStep:
		h.logStep(ctx)
	case HookPosRunEnd:
		h.logEnd(ctx)
	}
}

func (h *StepLogger) logStart(ctx HookCtx) {
	cfg, ok := ctx.Item.(Config)
	if !ok {
		return
	}

	h.logger.Info("simulation started",
		zap.Int("t0", cfg.T0),
		zap.Int("t_end", cfg.TEnd),
		zap.Float64("initial_sum", cfg.Init.Sum()),
	)
}

func (h *StepLogger) logStep(ctx HookCtx) {
	sample, ok := ctx.Item.(Sample)
	if !ok {
		return
	}

	if ce := h.logger.Check(zap.DebugLevel, "day"); ce != nil {
		ce.Write(
			zap.Int("day", sample.Day),
			zap.Float64("S", sample.State.S),
			zap.Float64("I", sample.State.I),
			zap.Float64("D", sample.State.D),
			zap.Float64("A", sample.State.A),
			zap.Float64("R", sample.State.R),
		)
	}

	if !sample.State.InUnitRange() {
		h.logger.Debug("state left the unit range", zap.Int("day", sample.Day))
	}
}

func (h *StepLogger) logEnd(ctx HookCtx) {
	series, ok := ctx.Item.(Series)
	if !ok || series.Len() == 0 {
		return
	}

	final := series.StateAt(series.Len() - 1)
	h.logger.Info("simulation finished",
		zap.Int("days", series.Len()),
		zap.Stringer("final", final),
		zap.Float64("final_sum", final.Sum()),
	)
}
