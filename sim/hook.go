package sim

// HookPos names a point of a run at which hooks are invoked.
type HookPos struct {
	Name string
}

// HookCtx describes one invocation: the simulator that fired it, the point
// of the run, and the value observed there.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// HookPosRunStart fires once before the first step. Item is the Config of
// the run.
var HookPosRunStart = &HookPos{Name: "RunStart"}

// HookPosAfterStep fires for every recorded day, the initial day included.
// Item is the Sample of that day.
var HookPosAfterStep = &HookPos{Name: "AfterStep"}

// HookPosRunEnd fires once after the last step. Item is the Series of the
// run.
var HookPosRunEnd = &HookPos{Name: "RunEnd"}

// Hookable is implemented by anything that lets recorders, loggers and
// monitors observe its runs.
type Hookable interface {
	// AcceptHook attaches an observer.
	AcceptHook(hook Hook)

	// NumHooks returns the number of attached observers.
	NumHooks() int

	// Hooks returns the attached observers in attachment order.
	Hooks() []Hook
}

// Hook observes a run. Hooks see values, never the simulator's own state,
// so they cannot change the outcome of a run.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc lets a plain function observe a run.
type HookFunc func(ctx HookCtx)

// Func calls f(ctx).
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase keeps the observers of a Simulator. It can be embedded by any
// other Hookable.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of attached observers.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns the attached observers.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook attaches an observer. Attaching the same recorder or logger
// twice panics, since every day would be recorded twice. HookFunc values
// cannot be compared and are always accepted.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	if _, isFunc := hook.(HookFunc); isFunc {
		return
	}

	for _, attached := range h.hookList {
		if attached == hook {
			panic("hook attached twice")
		}
	}
}

// InvokeHook passes ctx to every observer in attachment order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
